package glaze

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/reference"
)

func newOps(t *testing.T) *Ops {
	t.Helper()
	db, err := materials.Load()
	require.NoError(t, err)
	tables, err := reference.Load()
	require.NoError(t, err)
	return NewOps(db, tables)
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func marshalIndent(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	return append(data, '\n')
}

func TestDesignSuccess(t *testing.T) {
	ops := newOps(t)

	out := ops.Design("glossy copper green", "porcelain", "6")
	res, ok := out.(DesignResponse)
	require.True(t, ok, "got %T", out)

	assert.True(t, res.Success)
	assert.NotEmpty(t, res.RecipeTable)
	require.Len(t, res.AdditionsTable, 1)
	assert.Equal(t, "Copper Carbonate", res.AdditionsTable[0].Material)
	assert.InDelta(t, 2.0, res.AdditionsTable[0].Grams, 1e-9)
	assert.NotEmpty(t, res.UMF)
	assert.NotEmpty(t, res.Limits)
	assert.NotEmpty(t, res.FoodSafety)
	assert.NotEmpty(t, res.IngredientExplanations)
	require.NotNil(t, res.Parsed)
	assert.Equal(t, "glossy-clear", res.Parsed.Template)
	assert.Equal(t, "porcelain", res.Parsed.ClayBody)

	// Tables print largest ingredient first.
	for i := 1; i < len(res.RecipeTable); i++ {
		assert.GreaterOrEqual(t, res.RecipeTable[i-1].Grams, res.RecipeTable[i].Grams)
	}
}

func TestDesignError(t *testing.T) {
	ops := newOps(t)

	out := ops.Design("   ", "", "6")
	res, ok := out.(ErrorResponse)
	require.True(t, ok, "got %T", out)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "UNRECOGNIZED_DESCRIPTION")
}

func TestAnalyzeSuccess(t *testing.T) {
	ops := newOps(t)

	recipe := map[string]float64{
		"Ferro Frit 3134": 35, "Silica": 25, "EPK Kaolin": 15,
		"Whiting": 10, "Nepheline Syenite": 10, "Wollastonite": 5,
	}
	out := ops.Analyze(recipe, "")
	res, ok := out.(AnalyzeResponse)
	require.True(t, ok, "got %T", out)

	assert.True(t, res.Success)
	assert.InDelta(t, 2.6991, res.UMF["SiO2"], 0.02)
	assert.InDelta(t, 0.2225, res.UMF["Al2O3"], 0.02)
	assert.NotEmpty(t, res.Limits)
	assert.Contains(t, res.CTE.Note, "No clay body")
	assert.InDelta(t, 75.0, res.Water.Dipping.WaterG, 0.1)

	// Raw amounts double as grams of a 100 g batch.
	assert.Equal(t, "Ferro Frit 3134", res.RecipeTable[0].Material)
	assert.InDelta(t, 35.0, res.RecipeTable[0].Grams, 1e-9)
	assert.InDelta(t, 35.0, res.RecipeTable[0].Percent, 0.05)
}

// The analyze pipeline has no hidden nondeterminism: identical input
// marshals to identical bytes.
func TestAnalyzeDeterministic(t *testing.T) {
	ops := newOps(t)

	recipe := map[string]float64{
		"Custer Feldspar": 40, "Whiting": 20, "EPK Kaolin": 20, "Silica": 20,
	}
	first := marshalIndent(t, ops.Analyze(recipe, "stoneware"))
	second := marshalIndent(t, ops.Analyze(recipe, "stoneware"))
	assert.Equal(t, first, second)
}

func TestAnalyzeErrors(t *testing.T) {
	ops := newOps(t)

	tests := []struct {
		name    string
		recipe  map[string]float64
		errPart string
	}{
		{name: "unknown material", recipe: map[string]float64{"Kryptonite": 100}, errPart: "UNKNOWN_MATERIAL"},
		{name: "empty recipe", recipe: map[string]float64{}, errPart: "INVALID_RECIPE"},
		{name: "no flux", recipe: map[string]float64{"Silica": 100}, errPart: "DEGENERATE_RECIPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ops.Analyze(tt.recipe, "")
			res, ok := out.(ErrorResponse)
			require.True(t, ok, "got %T", out)
			assert.Contains(t, res.Error, tt.errPart)
		})
	}
}

func TestVariationSuccess(t *testing.T) {
	ops := newOps(t)

	base := ops.Design("glossy clear", "", "6").(DesignResponse)
	out := ops.Variation(base.Recipe, "more_matte", "glossy clear", "", nil, base.Parsed)
	res, ok := out.(DesignResponse)
	require.True(t, ok, "got %T", out)

	assert.True(t, res.Success)
	assert.Contains(t, res.Description, "more_matte")
	assert.Greater(t, res.UMF["Al2O3"]/res.UMF["SiO2"], base.UMF["Al2O3"]/base.UMF["SiO2"])
}

func TestVariationUnknownDirection(t *testing.T) {
	ops := newOps(t)

	out := ops.Variation(map[string]float64{"Silica": 100}, "sideways", "", "", nil, nil)
	res, ok := out.(ErrorResponse)
	require.True(t, ok, "got %T", out)
	assert.Contains(t, res.Error, "UNKNOWN_DIRECTION")
}

func TestScaleGolden(t *testing.T) {
	ops := newOps(t)

	out := ops.Scale(map[string]float64{"Silica": 50, "Whiting": 50}, 1000)
	golden(t).Assert(t, "scale_even_split", marshalIndent(t, out))
}

func TestScaleRoundingSlack(t *testing.T) {
	ops := newOps(t)

	recipe := map[string]float64{
		"Custer Feldspar": 33.3, "Whiting": 18.7, "EPK Kaolin": 21.1,
		"Silica": 22.9, "Bentonite": 4.0,
	}
	out := ops.Scale(recipe, 2500)
	res, ok := out.(ScaleResponse)
	require.True(t, ok, "got %T", out)

	var grams float64
	for _, r := range res.RecipeTable {
		grams += r.Grams
	}
	// Rounded grams reconcile within per-row rounding slack.
	assert.InDelta(t, 2500.0, grams, 0.05*float64(len(res.RecipeTable)))
	assert.Equal(t, 2500.0, res.TotalWeight)
}

func TestScaleErrors(t *testing.T) {
	ops := newOps(t)

	out := ops.Scale(map[string]float64{"Silica": 100}, 0)
	res, ok := out.(ErrorResponse)
	require.True(t, ok, "got %T", out)
	assert.Contains(t, res.Error, "INVALID_WEIGHT")

	out = ops.Scale(map[string]float64{}, 500)
	res, ok = out.(ErrorResponse)
	require.True(t, ok, "got %T", out)
	assert.Contains(t, res.Error, "INVALID_RECIPE")
}

func TestWaterGolden(t *testing.T) {
	ops := newOps(t)

	recipe := map[string]float64{"Silica": 60, "Whiting": 40}
	out := ops.Analyze(recipe, "")
	res, ok := out.(AnalyzeResponse)
	require.True(t, ok, "got %T", out)
	golden(t).Assert(t, "water_plan", marshalIndent(t, res.Water))
}

func TestEmptyArraysMarshalAsArrays(t *testing.T) {
	ops := newOps(t)

	res := ops.Design("glossy clear", "", "6").(DesignResponse)
	data := marshalIndent(t, res)
	assert.Contains(t, string(data), `"food_safety": []`)
	assert.NotContains(t, string(data), `"food_safety": null`)
	assert.Contains(t, string(data), `"color_notes": []`)
	assert.Contains(t, string(data), `"additions_table": []`)
}
