package chem

import "github.com/roach88/glazecalc/internal/reference"

// WaterAddition is the water estimate for one application method.
type WaterAddition struct {
	WaterG float64 `json:"water_g"`
	SG     string  `json:"sg"`
}

// WaterPlan covers both application methods plus mixing guidance.
type WaterPlan struct {
	Dipping  WaterAddition `json:"dipping"`
	Spraying WaterAddition `json:"spraying"`
	Note     string        `json:"note"`
}

// WaterFor estimates starting water for a dry batch weight in grams.
// Ratios are starting points; the note directs the user to adjust to the
// target specific gravity.
func WaterFor(dryWeight float64, tables *reference.Tables) (WaterPlan, error) {
	if err := validWeight(dryWeight); err != nil {
		return WaterPlan{}, err
	}
	w := tables.Water
	return WaterPlan{
		Dipping: WaterAddition{
			WaterG: dryWeight * w.Dipping.Ratio,
			SG:     w.Dipping.SpecificGravity,
		},
		Spraying: WaterAddition{
			WaterG: dryWeight * w.Spraying.Ratio,
			SG:     w.Spraying.SpecificGravity,
		},
		Note: w.Note,
	}, nil
}
