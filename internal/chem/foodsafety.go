package chem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/oxide"
)

// Leachable-oxide thresholds on the unity formula. Above these, the fired
// glass may release the oxide into food acids.
var leachLimits = []struct {
	oxide     string
	threshold float64
	warning   string
}{
	{"BaO", 0.05, "**Barium** at %.3f exceeds 0.05 in the unity formula. Barium leaches readily; keep it off food surfaces or verify with a leach test."},
	{"Li2O", 0.05, "**Lithium** at %.3f exceeds 0.05 in the unity formula. High lithium can leach and also promotes crazing."},
	{"ZnO", 0.25, "**Zinc** at %.3f exceeds 0.25 in the unity formula. Zinc-saturated surfaces are prone to acid attack."},
	{"CuO", 0.02, "**Copper** at %.3f exceeds 0.02 in the unity formula. Copper is a known leacher, especially with acidic food; test before food use."},
	{"CoO", 0.03, "**Cobalt** at %.3f exceeds 0.03 in the unity formula. Heavy cobalt loading can leach from an unstable glass."},
	{"Cr2O3", 0.01, "**Chrome** at %.3f exceeds 0.01 in the unity formula. Chromium compounds should stay out of food contact."},
	{"MnO", 0.05, "**Manganese** at %.3f exceeds 0.05 in the unity formula. Manganese leaching is a neurotoxicity concern."},
	{"NiO", 0.005, "**Nickel** at %.3f exceeds 0.005 in the unity formula. Nickel is a contact allergen and leacher."},
}

// Stability bounds: outside these the glass matrix itself is suspect,
// regardless of which colorants it carries.
const (
	stableSilicaMin  = 2.0
	stableSilicaMax  = 5.0
	colorantSilica   = 2.5
	colorantAlumina  = 0.15
	bariumRecipePct  = 5.0
	boronSoftGlass   = 0.30
	boronZincPartner = 0.20
)

// CheckFoodSafety screens a recipe and its unity formula for food-surface
// concerns. The recipe should be the merged base plus colorant additions
// so colorant oxides are visible to the thresholds. An empty result means
// no flags were raised, not a guarantee of safety.
func CheckFoodSafety(recipe map[string]float64, u *UMF, db *materials.Database) []string {
	var warnings []string

	names := make([]string, 0, len(recipe))
	for name := range recipe {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if recipe[name] <= 0 {
			continue
		}
		mat := db.Lookup(name)
		if mat == nil {
			continue
		}
		if _, ok := mat.Oxides["PbO"]; ok || strings.Contains(strings.ToLower(name), "lead") {
			warnings = append(warnings, fmt.Sprintf("**Lead**: %s is lead-bearing. Lead glazes are never food safe.", name))
		}
		if _, ok := mat.Oxides["BaO"]; ok && recipe[name] > bariumRecipePct {
			warnings = append(warnings, fmt.Sprintf("**Barium**: %s at %.1f%% of the recipe. Raw barium carbonate is toxic and the fired glass can leach it.", name, recipe[name]))
		}
	}

	for _, rule := range leachLimits {
		if v := u.Oxides[rule.oxide]; v > rule.threshold {
			warnings = append(warnings, fmt.Sprintf(rule.warning, v))
		}
	}

	si := u.Oxides["SiO2"]
	al := u.Oxides["Al2O3"]
	if si > stableSilicaMax {
		warnings = append(warnings, fmt.Sprintf("**Underfired glass risk**: SiO2 at %.2f is above %.1f; the melt may not fully mature at the target cone, leaving a porous surface.", si, stableSilicaMax))
	}
	if si < stableSilicaMin {
		warnings = append(warnings, fmt.Sprintf("**Soft glass**: SiO2 at %.2f is below %.1f; low-silica glasses are chemically soft and etch in acids.", si, stableSilicaMin))
	}
	if hasColorant(u) && (si < colorantSilica || al < colorantAlumina) {
		warnings = append(warnings, fmt.Sprintf("**Unstable colored glass**: colorants in a matrix with SiO2 %.2f / Al2O3 %.2f may not be held durably; verify with a lemon or vinegar test.", si, al))
	}
	if u.Oxides["B2O3"] > boronSoftGlass && u.Oxides["ZnO"] > boronZincPartner {
		warnings = append(warnings, "**Boron-zinc combination**: high boron with high zinc makes a soft, scratch-prone glass for functional ware.")
	}

	return warnings
}

func hasColorant(u *UMF) bool {
	for ox, v := range u.Oxides {
		if v <= 0 {
			continue
		}
		if cat, ok := oxide.CategoryOf(ox); ok && cat == oxide.Colorant {
			return true
		}
	}
	return false
}
