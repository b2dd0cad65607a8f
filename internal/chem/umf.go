// Package chem implements the glaze chemistry calculations: unity
// molecular formula conversion, limit formula checking, thermal expansion
// estimation, food safety screening, batch scaling, and water additions.
//
// All maps keyed by oxide use the canonical symbols from the oxide
// package. Iteration over recipe materials is sorted by name so float
// accumulation order is deterministic for a given recipe.
package chem

import (
	"math"
	"sort"

	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/oxide"
)

// UMF holds a unity molecular formula: oxide moles normalized so the flux
// oxides sum to 1.0, plus derived aggregates.
type UMF struct {
	// Oxides maps oxide symbol to unity-normalized moles. Only oxides
	// with a non-zero contribution appear.
	Oxides map[string]float64

	// FluxMoles is the raw (pre-normalization) flux mole total per 100
	// parts of recipe.
	FluxMoles float64

	// SiAlRatio is SiO2 moles divided by Al2O3 moles, or 0 when the
	// recipe has no alumina.
	SiAlRatio float64
}

// Ratio returns Al2O3 moles divided by SiO2 moles, the conventional
// matte-gloss ordinate. Returns 0 when the formula has no silica.
func (u *UMF) Ratio() float64 {
	si := u.Oxides["SiO2"]
	if si == 0 {
		return 0
	}
	return u.Oxides["Al2O3"] / si
}

// Calculator converts recipes to unity molecular formulas against a
// materials database.
type Calculator struct {
	db *materials.Database
}

// NewCalculator returns a Calculator backed by db.
func NewCalculator(db *materials.Database) *Calculator {
	return &Calculator{db: db}
}

// UMF computes the unity molecular formula for a recipe given as material
// name to parts by weight. The result is scale-invariant: recipes that
// differ only by a constant factor produce identical formulas.
func (c *Calculator) UMF(recipe map[string]float64) (*UMF, error) {
	moles, err := c.oxideMoles(recipe)
	if err != nil {
		return nil, err
	}
	return unity(moles)
}

// oxideMoles accumulates raw oxide moles contributed by each material.
// Materials are visited in sorted name order and oxides in canonical
// order, so the same recipe always sums in the same sequence.
func (c *Calculator) oxideMoles(recipe map[string]float64) (map[string]float64, error) {
	if len(recipe) == 0 {
		return nil, NewInvalidRecipeError("recipe has no materials")
	}

	names := make([]string, 0, len(recipe))
	for name := range recipe {
		names = append(names, name)
	}
	sort.Strings(names)

	moles := make(map[string]float64)
	for _, name := range names {
		amount := recipe[name]
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return nil, NewInvalidRecipeError("material amounts must be non-negative finite numbers")
		}
		mat := c.db.Lookup(name)
		if mat == nil {
			return nil, NewUnknownMaterialError(name)
		}
		if amount == 0 {
			continue
		}
		for _, ox := range oxide.Canonical() {
			frac, ok := mat.Oxides[ox]
			if !ok || frac == 0 {
				continue
			}
			moles[ox] += amount * frac / oxide.MolarMass[ox]
		}
	}
	return moles, nil
}

// unity normalizes raw oxide moles so the flux oxides sum to 1.0.
func unity(moles map[string]float64) (*UMF, error) {
	var flux float64
	for _, ox := range oxide.Fluxes() {
		flux += moles[ox]
	}
	if flux <= 0 {
		return nil, NewDegenerateRecipeError()
	}

	out := make(map[string]float64, len(moles))
	for ox, m := range moles {
		if m == 0 {
			continue
		}
		out[ox] = m / flux
	}

	u := &UMF{Oxides: out, FluxMoles: flux}
	if al := out["Al2O3"]; al > 0 {
		u.SiAlRatio = out["SiO2"] / al
	}
	return u, nil
}
