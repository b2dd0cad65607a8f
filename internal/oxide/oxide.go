// Package oxide defines the oxide vocabulary shared by every analysis
// component: symbols, molar masses, the UMF category partition, and the
// canonical display/iteration order.
//
// The canonical order is load-bearing: UMF accumulation, limit checking,
// and every table the wire contract exposes iterate oxides in this fixed
// order so identical inputs always produce identical output bytes.
package oxide

// Category partitions oxides for UMF normalization and display.
type Category int

const (
	// Flux oxides lower the melting point. Their UMF values sum to 1.0.
	Flux Category = iota
	// Amphoteric oxides behave as flux or glass former depending on context.
	Amphoteric
	// GlassFormer oxides build the glass network.
	GlassFormer
	// Colorant oxides color or texture the glaze without defining its melt.
	Colorant
)

// MolarMass maps tracked oxide symbols to molar mass in g/mol.
// Oxides absent from this table (SnO2, ZrO2, PbO, SiC) pass through the
// calculator untracked: they add batch weight but no UMF contribution.
var MolarMass = map[string]float64{
	"SiO2":  60.08,
	"Al2O3": 101.96,
	"B2O3":  69.62,
	"Na2O":  61.98,
	"K2O":   94.20,
	"CaO":   56.08,
	"MgO":   40.30,
	"ZnO":   81.38,
	"SrO":   103.62,
	"BaO":   153.33,
	"Li2O":  29.88,
	"Fe2O3": 159.69,
	"TiO2":  79.87,
	"MnO":   70.94,
	"P2O5":  141.94,
	"CoO":   74.93,
	"CuO":   79.55,
	"Cr2O3": 151.99,
	"NiO":   74.69,
}

// fluxOrder through colorantOrder fix the canonical order within each
// category. Do not reorder: output determinism depends on it.
var (
	fluxOrder        = []string{"Na2O", "K2O", "CaO", "MgO", "ZnO", "SrO", "BaO", "Li2O"}
	amphotericOrder  = []string{"Al2O3", "B2O3"}
	glassFormerOrder = []string{"SiO2"}
	colorantOrder    = []string{"Fe2O3", "TiO2", "MnO", "P2O5", "CoO", "CuO", "Cr2O3", "NiO"}
)

var categories = func() map[string]Category {
	m := make(map[string]Category, len(MolarMass))
	for _, ox := range fluxOrder {
		m[ox] = Flux
	}
	for _, ox := range amphotericOrder {
		m[ox] = Amphoteric
	}
	for _, ox := range glassFormerOrder {
		m[ox] = GlassFormer
	}
	for _, ox := range colorantOrder {
		m[ox] = Colorant
	}
	return m
}()

var canonical = func() []string {
	out := make([]string, 0, len(MolarMass))
	out = append(out, fluxOrder...)
	out = append(out, amphotericOrder...)
	out = append(out, glassFormerOrder...)
	out = append(out, colorantOrder...)
	return out
}()

// CategoryOf returns the UMF category for a tracked oxide.
// The second return is false for untracked oxides.
func CategoryOf(symbol string) (Category, bool) {
	c, ok := categories[symbol]
	return c, ok
}

// IsFlux reports whether the oxide counts toward UMF unity.
func IsFlux(symbol string) bool {
	return categories[symbol] == Flux && isTracked(symbol)
}

func isTracked(symbol string) bool {
	_, ok := categories[symbol]
	return ok
}

// Tracked reports whether the oxide has a molar mass entry and a category.
func Tracked(symbol string) bool {
	_, ok := MolarMass[symbol]
	return ok && isTracked(symbol)
}

// Canonical returns all tracked oxides in canonical order:
// flux, amphoteric, glass former, colorant.
// The returned slice is shared; callers must not mutate it.
func Canonical() []string {
	return canonical
}

// Fluxes returns the flux oxides in canonical order.
// The returned slice is shared; callers must not mutate it.
func Fluxes() []string {
	return fluxOrder
}
