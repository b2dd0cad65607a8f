package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	rows, err := Scale(map[string]float64{"Silica": 50, "Whiting": 50}, 1000)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Silica", rows[0].Material)
	assert.InDelta(t, 50.0, rows[0].Percent, 1e-9)
	assert.InDelta(t, 500.0, rows[0].Grams, 1e-9)
	assert.Equal(t, "Whiting", rows[1].Material)
}

// Amounts are ratios: a recipe summing to 200 scales identically to the
// same proportions summing to 100.
func TestScaleNormalizes(t *testing.T) {
	rows, err := Scale(map[string]float64{"Silica": 120, "Whiting": 80}, 500)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.InDelta(t, 60.0, rows[0].Percent, 1e-9)
	assert.InDelta(t, 300.0, rows[0].Grams, 1e-9)
	assert.InDelta(t, 40.0, rows[1].Percent, 1e-9)
	assert.InDelta(t, 200.0, rows[1].Grams, 1e-9)

	var total float64
	for _, r := range rows {
		total += r.Grams
	}
	assert.InDelta(t, 500.0, total, 1e-9)
}

func TestScaleOrdering(t *testing.T) {
	rows, err := Scale(map[string]float64{
		"Whiting": 20, "Silica": 30, "EPK Kaolin": 20, "Custer Feldspar": 30,
	}, 100)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Descending percent, name breaks ties.
	assert.Equal(t, "Custer Feldspar", rows[0].Material)
	assert.Equal(t, "Silica", rows[1].Material)
	assert.Equal(t, "EPK Kaolin", rows[2].Material)
	assert.Equal(t, "Whiting", rows[3].Material)
}

func TestScaleSkipsZeroRows(t *testing.T) {
	rows, err := Scale(map[string]float64{"Silica": 100, "Bentonite": 0}, 250)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Silica", rows[0].Material)
}

func TestScaleErrors(t *testing.T) {
	_, err := Scale(map[string]float64{"Silica": 100}, 0)
	assert.True(t, IsInvalidWeightError(err))

	_, err = Scale(map[string]float64{"Silica": 100}, -10)
	assert.True(t, IsInvalidWeightError(err))

	_, err = Scale(map[string]float64{}, 1000)
	assert.True(t, IsInvalidRecipeError(err))

	_, err = Scale(map[string]float64{"Silica": 0}, 1000)
	assert.True(t, IsInvalidRecipeError(err))

	_, err = Scale(map[string]float64{"Silica": -1}, 1000)
	assert.True(t, IsInvalidRecipeError(err))
}

func TestWaterFor(t *testing.T) {
	tables := loadTables(t)

	plan, err := WaterFor(1000, tables)
	require.NoError(t, err)
	assert.InDelta(t, 750.0, plan.Dipping.WaterG, 1e-9)
	assert.Equal(t, "1.45-1.47", plan.Dipping.SG)
	assert.InDelta(t, 950.0, plan.Spraying.WaterG, 1e-9)
	assert.Equal(t, "1.35", plan.Spraying.SG)
	assert.NotEmpty(t, plan.Note)

	_, err = WaterFor(0, tables)
	assert.True(t, IsInvalidWeightError(err))
}
