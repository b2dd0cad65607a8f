package chem

import (
	"math"
	"sort"
)

// ScaledRow is one material line of a scaled batch.
type ScaledRow struct {
	Material string  `json:"material"`
	Percent  float64 `json:"percent"`
	Grams    float64 `json:"grams"`
}

// Scale distributes a target dry weight across a recipe in proportion to
// its amounts. Amounts need not sum to 100; they are treated as ratios.
// Rows come back ordered by descending percent, then material name, so
// the batch sheet reads largest ingredient first.
func Scale(recipe map[string]float64, targetWeight float64) ([]ScaledRow, error) {
	if err := validWeight(targetWeight); err != nil {
		return nil, err
	}
	if len(recipe) == 0 {
		return nil, NewInvalidRecipeError("recipe has no materials")
	}

	var total float64
	for _, amount := range recipe {
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return nil, NewInvalidRecipeError("material amounts must be non-negative finite numbers")
		}
		total += amount
	}
	if total <= 0 {
		return nil, NewInvalidRecipeError("recipe amounts sum to zero")
	}

	rows := make([]ScaledRow, 0, len(recipe))
	for name, amount := range recipe {
		if amount == 0 {
			continue
		}
		share := amount / total
		rows = append(rows, ScaledRow{
			Material: name,
			Percent:  share * 100,
			Grams:    share * targetWeight,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Percent != rows[j].Percent {
			return rows[i].Percent > rows[j].Percent
		}
		return rows[i].Material < rows[j].Material
	})
	return rows, nil
}

func validWeight(w float64) error {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return NewInvalidWeightError(w)
	}
	return nil
}
