package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/glazecalc/internal/glaze"
)

// renderText produces the human-readable form of an operation result.
func renderText(result any) string {
	var b strings.Builder
	switch r := result.(type) {
	case glaze.DesignResponse:
		fmt.Fprintf(&b, "✓ %s\n\n", r.Description)
		renderRecipe(&b, "Recipe", r.RecipeTable)
		if len(r.AdditionsTable) > 0 {
			renderRecipe(&b, "Additions", r.AdditionsTable)
		}
		renderChemistry(&b, r.UMF, r.Limits, r.CTE, r.FoodSafety)
		renderWater(&b, r.Water)
		renderLines(&b, "Color notes", r.ColorNotes)
		renderLines(&b, "Notes", r.Notes)
		renderLines(&b, "How it was built", r.Explanation)
		if len(r.IngredientExplanations) > 0 {
			fmt.Fprintln(&b, "Ingredients:")
			for _, ing := range r.IngredientExplanations {
				fmt.Fprintf(&b, "  %s (%s): %s\n", ing.Material, ing.Role, ing.Context)
			}
			fmt.Fprintln(&b)
		}
	case glaze.AnalyzeResponse:
		fmt.Fprintf(&b, "✓ Analyzed %d material(s)\n\n", len(r.Recipe))
		renderRecipe(&b, "Recipe", r.RecipeTable)
		renderChemistry(&b, r.UMF, r.Limits, r.CTE, r.FoodSafety)
		renderWater(&b, r.Water)
	case glaze.ScaleResponse:
		fmt.Fprintf(&b, "✓ Scaled to %.1f g\n\n", r.TotalWeight)
		renderRecipe(&b, "Batch", r.RecipeTable)
	case glaze.ErrorResponse:
		fmt.Fprintf(&b, "✗ %s\n", r.Error)
	default:
		fmt.Fprintf(&b, "%v\n", result)
	}
	return b.String()
}

func renderRecipe(b *strings.Builder, title string, rows []glaze.Row) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	width := 0
	for _, row := range rows {
		if len(row.Material) > width {
			width = len(row.Material)
		}
	}
	for _, row := range rows {
		fmt.Fprintf(b, "  %-*s  %8.2f g  %5.1f%%\n", width, row.Material, row.Grams, row.Percent)
	}
	fmt.Fprintln(b)
}

func renderChemistry(b *strings.Builder, umf map[string]float64, limits []glaze.LimitRow, cte glaze.CTEInfo, foodSafety []string) {
	if len(umf) > 0 {
		fmt.Fprintln(b, "UMF:")
		// Limits rows carry canonical oxide order; fall back to whatever
		// the map holds for oxides without a limit entry.
		seen := make(map[string]bool, len(umf))
		for _, row := range limits {
			if v, ok := umf[row.Oxide]; ok {
				fmt.Fprintf(b, "  %-6s %7.4f  [%.3f, %.3f]  %s\n", row.Oxide, v, row.Min, row.Max, row.Status)
				seen[row.Oxide] = true
			}
		}
		for _, ox := range sortedKeys(umf) {
			if !seen[ox] {
				fmt.Fprintf(b, "  %-6s %7.4f\n", ox, umf[ox])
			}
		}
		fmt.Fprintln(b)
	}
	fmt.Fprintf(b, "Thermal expansion: %.1f (%s)\n\n", cte.Value, cte.Note)
	renderLines(b, "Food safety", foodSafety)
}

func renderWater(b *strings.Builder, w glaze.WaterInfo) {
	fmt.Fprintln(b, "Water:")
	fmt.Fprintf(b, "  dipping:  %.1f g (SG %s)\n", w.Dipping.WaterG, w.Dipping.SG)
	fmt.Fprintf(b, "  spraying: %.1f g (SG %s)\n", w.Spraying.WaterG, w.Spraying.SG)
	if w.Note != "" {
		fmt.Fprintf(b, "  %s\n", w.Note)
	}
	fmt.Fprintln(b)
}

func renderLines(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "  - %s\n", line)
	}
	fmt.Fprintln(b)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
