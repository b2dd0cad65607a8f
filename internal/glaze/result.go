// Package glaze exposes the four public operations (design, analyze,
// variation, scale) as tagged results matching the wire contract the
// rendering layer depends on. Field names here are frozen; changing one
// breaks downstream clients.
package glaze

import (
	"math"

	"github.com/roach88/glazecalc/internal/chem"
	"github.com/roach88/glazecalc/internal/designer"
)

// Row is one line of a recipe or additions table.
type Row struct {
	Material string  `json:"material"`
	Percent  float64 `json:"percent"`
	Grams    float64 `json:"grams"`
}

// LimitRow mirrors chem.LimitEntry with display rounding applied.
type LimitRow struct {
	Oxide  string  `json:"oxide"`
	Value  float64 `json:"value"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Status string  `json:"status"`
}

// CTEInfo carries the expansion estimate and fit note.
type CTEInfo struct {
	Value float64 `json:"value"`
	Note  string  `json:"note"`
}

// WaterMethodInfo is the water addition for one application method.
type WaterMethodInfo struct {
	WaterG float64 `json:"water_g"`
	SG     string  `json:"sg"`
}

// WaterInfo covers both application methods.
type WaterInfo struct {
	Dipping  WaterMethodInfo `json:"dipping"`
	Spraying WaterMethodInfo `json:"spraying"`
	Note     string          `json:"note"`
}

// IngredientInfo explains one material's presence.
type IngredientInfo struct {
	Material string `json:"material"`
	Role     string `json:"role"`
	Context  string `json:"context"`
}

// DesignResponse is the success shape for design and variation.
type DesignResponse struct {
	Success                bool               `json:"success"`
	Description            string             `json:"description"`
	Recipe                 map[string]float64 `json:"recipe"`
	RecipeTable            []Row              `json:"recipe_table"`
	AdditionsTable         []Row              `json:"additions_table"`
	UMF                    map[string]float64 `json:"umf"`
	Limits                 []LimitRow         `json:"limits"`
	CTE                    CTEInfo            `json:"cte"`
	FoodSafety             []string           `json:"food_safety"`
	Water                  WaterInfo          `json:"water"`
	ColorNotes             []string           `json:"color_notes"`
	Notes                  []string           `json:"notes"`
	Explanation            []string           `json:"explanation"`
	IngredientExplanations []IngredientInfo   `json:"ingredient_explanations"`
	Parsed                 *designer.Parsed   `json:"parsed"`
}

// AnalyzeResponse is the success shape for analyze: the analytic fields
// without the designer-only narrative.
type AnalyzeResponse struct {
	Success     bool               `json:"success"`
	Recipe      map[string]float64 `json:"recipe"`
	RecipeTable []Row              `json:"recipe_table"`
	UMF         map[string]float64 `json:"umf"`
	Limits      []LimitRow         `json:"limits"`
	CTE         CTEInfo            `json:"cte"`
	FoodSafety  []string           `json:"food_safety"`
	Water       WaterInfo          `json:"water"`
}

// ScaleResponse is the success shape for scale.
type ScaleResponse struct {
	Success     bool    `json:"success"`
	RecipeTable []Row   `json:"recipe_table"`
	TotalWeight float64 `json:"total_weight"`
}

// ErrorResponse is the failure shape for every operation.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func failure(err error) ErrorResponse {
	return ErrorResponse{Success: false, Error: err.Error()}
}

// Display rounding. These are presentation constants, not calculation
// precision; the underlying math stays in full float64.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func roundMap(m map[string]float64, places int) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round(v, places)
	}
	return out
}

func limitRows(entries []chem.LimitEntry) []LimitRow {
	rows := make([]LimitRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, LimitRow{
			Oxide:  e.Oxide,
			Value:  round(e.Value, 4),
			Min:    e.Min,
			Max:    e.Max,
			Status: e.Status,
		})
	}
	return rows
}

func waterInfo(p chem.WaterPlan) WaterInfo {
	return WaterInfo{
		Dipping:  WaterMethodInfo{WaterG: round(p.Dipping.WaterG, 1), SG: p.Dipping.SG},
		Spraying: WaterMethodInfo{WaterG: round(p.Spraying.WaterG, 1), SG: p.Spraying.SG},
		Note:     p.Note,
	}
}

func ingredientInfos(ings []designer.Ingredient) []IngredientInfo {
	out := make([]IngredientInfo, 0, len(ings))
	for _, ing := range ings {
		out = append(out, IngredientInfo{Material: ing.Material, Role: ing.Role, Context: ing.Context})
	}
	return out
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
