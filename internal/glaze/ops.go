package glaze

import (
	"sort"

	"github.com/roach88/glazecalc/internal/chem"
	"github.com/roach88/glazecalc/internal/designer"
	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/reference"
)

// defaultCone is assumed for analyze and for variation requests whose
// parsed record carries no cone.
const defaultCone = "6"

// Ops binds the four public operations to the shared read-only materials
// database and reference tables. All methods are pure functions of their
// inputs plus that immutable state and are safe for concurrent use.
// Every method returns a tagged result: taxonomy errors come back as an
// ErrorResponse, never as a Go error, so a serving layer cannot be taken
// down by bad input.
type Ops struct {
	db       *materials.Database
	tables   *reference.Tables
	calc     *chem.Calculator
	designer *designer.Designer
}

// NewOps wires the operations over db and tables.
func NewOps(db *materials.Database, tables *reference.Tables) *Ops {
	return &Ops{
		db:       db,
		tables:   tables,
		calc:     chem.NewCalculator(db),
		designer: designer.New(db, tables),
	}
}

// Design interprets a description and returns a full DesignResponse, or
// an ErrorResponse for blank descriptions and other taxonomy failures.
func (o *Ops) Design(description, clayBody, cone string) any {
	if cone == "" {
		cone = defaultCone
	}
	res, err := o.designer.Design(description, clayBody, cone)
	if err != nil {
		return failure(err)
	}
	return o.designResponse(res)
}

// Variation adjusts an existing recipe in a named direction and returns
// the same shape as Design.
func (o *Ops) Variation(recipe map[string]float64, direction, description, clayBody string, colorantAdditions map[string]float64, parsed *designer.Parsed) any {
	res, err := o.designer.Vary(recipe, direction, description, clayBody, colorantAdditions, parsed)
	if err != nil {
		return failure(err)
	}
	return o.designResponse(res)
}

// Analyze runs the analysis pipeline over a caller-supplied recipe.
func (o *Ops) Analyze(recipe map[string]float64, clayBody string) any {
	u, err := o.calc.UMF(recipe)
	if err != nil {
		return failure(err)
	}
	limits := chem.CheckLimits(u, defaultCone, o.tables)

	var body *materials.ClayBody
	if clayBody != "" {
		body = o.db.ClayBody(clayBody)
	}
	cte := chem.CompareCTE(u, body, o.tables)
	foodSafety := chem.CheckFoodSafety(recipe, u, o.db)

	var dryWeight float64
	for _, amt := range recipe {
		dryWeight += amt
	}
	water, err := chem.WaterFor(dryWeight, o.tables)
	if err != nil {
		return failure(err)
	}

	return AnalyzeResponse{
		Success:     true,
		Recipe:      recipe,
		RecipeTable: amountTable(recipe),
		UMF:         roundMap(u.Oxides, 4),
		Limits:      limitRows(limits),
		CTE:         CTEInfo{Value: round(cte.Value, 1), Note: cte.Note},
		FoodSafety:  nonNil(foodSafety),
		Water:       waterInfo(water),
	}
}

// Scale distributes a target dry weight across a recipe. Grams round to
// one decimal for the batch sheet; total_weight echoes back unrounded.
func (o *Ops) Scale(recipe map[string]float64, targetWeight float64) any {
	rows, err := chem.Scale(recipe, targetWeight)
	if err != nil {
		return failure(err)
	}
	table := make([]Row, 0, len(rows))
	for _, r := range rows {
		table = append(table, Row{
			Material: r.Material,
			Percent:  round(r.Percent, 1),
			Grams:    round(r.Grams, 1),
		})
	}
	return ScaleResponse{Success: true, RecipeTable: table, TotalWeight: targetWeight}
}

func (o *Ops) designResponse(res *designer.Result) DesignResponse {
	return DesignResponse{
		Success:                true,
		Description:            res.Description,
		Recipe:                 roundMap(res.Recipe, 2),
		RecipeTable:            amountTable(res.Recipe),
		AdditionsTable:         additionsTable(res.Additions, recipeTotal(res.Recipe)),
		UMF:                    roundMap(res.UMF.Oxides, 4),
		Limits:                 limitRows(res.Limits),
		CTE:                    CTEInfo{Value: round(res.CTE.Value, 1), Note: res.CTE.Note},
		FoodSafety:             nonNil(res.FoodSafety),
		Water:                  waterInfo(res.Water),
		ColorNotes:             nonNil(res.ColorNotes),
		Notes:                  nonNil(res.Notes),
		Explanation:            nonNil(res.Explanation),
		IngredientExplanations: ingredientInfos(res.Ingredients),
		Parsed:                 res.Parsed,
	}
}

func recipeTotal(recipe map[string]float64) float64 {
	var total float64
	for _, amt := range recipe {
		total += amt
	}
	return total
}

// amountTable renders a recipe whose amounts are parts of an (implied)
// 100 g batch: grams are the amounts themselves, percents their share.
func amountTable(recipe map[string]float64) []Row {
	total := recipeTotal(recipe)
	rows := make([]Row, 0, len(recipe))
	for mat, amt := range recipe {
		pct := 0.0
		if total > 0 {
			pct = amt / total * 100
		}
		rows = append(rows, Row{Material: mat, Percent: round(pct, 1), Grams: round(amt, 2)})
	}
	sortRows(rows)
	return rows
}

// additionsTable renders colorant additions with percents relative to the
// base recipe total, matching how the additions were specified.
func additionsTable(additions map[string]float64, baseTotal float64) []Row {
	rows := make([]Row, 0, len(additions))
	for mat, amt := range additions {
		pct := 0.0
		if baseTotal > 0 {
			pct = amt / baseTotal * 100
		}
		rows = append(rows, Row{Material: mat, Percent: round(pct, 1), Grams: round(amt, 2)})
	}
	sortRows(rows)
	return rows
}

// sortRows orders largest first, names breaking ties, so tables print in
// a stable, readable order.
func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Grams != rows[j].Grams {
			return rows[i].Grams > rows[j].Grams
		}
		return rows[i].Material < rows[j].Material
	})
}
