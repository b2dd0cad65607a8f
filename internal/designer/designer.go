package designer

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/glazecalc/internal/chem"
	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/oxide"
	"github.com/roach88/glazecalc/internal/reference"
)

// Corrective loop constants. The loop is bounded; running out of
// iterations returns the best candidate found, not an error.
const (
	maxCorrections = 5
	nudgeStep      = 2.0
	baseTotal      = 100.0

	// Tolerances before a limit violation triggers a nudge. Silica gets a
	// wider band because its range is an order of magnitude larger.
	silicaTolerance = 0.05
	oxideTolerance  = 0.01
)

// Cone thresholds for template scaling. High-fire work leans on feldspar,
// low-fire on frit.
const (
	highFireCone  = 8
	lowFireCone   = 4
	coneShiftStep = 5.0
)

// Ingredient explains one material's job in the recipe.
type Ingredient struct {
	Material string `json:"material"`
	Role     string `json:"role"`
	Context  string `json:"context"`
}

// Result is a fully analyzed designed recipe.
type Result struct {
	Description string
	Parsed      *Parsed
	Recipe      map[string]float64
	Additions   map[string]float64
	UMF         *chem.UMF
	Limits      []chem.LimitEntry
	CTE         chem.CTE
	FoodSafety  []string
	Water       chem.WaterPlan
	ColorNotes  []string
	Notes       []string
	Explanation []string
	Ingredients []Ingredient
}

// Designer builds recipes from descriptions against the shared read-only
// materials database and reference tables.
type Designer struct {
	db     *materials.Database
	tables *reference.Tables
	calc   *chem.Calculator
}

// New returns a Designer over db and tables.
func New(db *materials.Database, tables *reference.Tables) *Designer {
	return &Designer{db: db, tables: tables, calc: chem.NewCalculator(db)}
}

// Design interprets a free-text description and produces a validated,
// fully analyzed recipe for the target cone.
func (d *Designer) Design(description, clayBody, cone string) (*Result, error) {
	parsed, fired, err := parse(description, clayBody, cone, d.tables)
	if err != nil {
		return nil, err
	}

	tpl := d.tables.Template(parsed.Template)
	recipe := copyRecipe(tpl.Recipe)

	explanation := []string{
		fmt.Sprintf("Matched template %q for a %s surface (keywords: %s).",
			parsed.Template, parsed.Surface, strings.Join(parsed.Matched, ", ")),
	}
	if line := d.scaleForCone(recipe, cone); line != "" {
		explanation = append(explanation, line)
	}

	// Crystalline recipes sit outside the limit formulas on purpose; the
	// corrective loop would pull them back toward a functional glaze.
	if parsed.Surface == "crystalline" {
		explanation = append(explanation, "Crystalline base left uncorrected; limit flags below are expected for this style.")
	} else {
		recipe, explanation = d.correct(recipe, cone, explanation)
	}

	var notes []string
	if tpl.Note != "" {
		notes = append(notes, tpl.Note)
	}

	additions := make(map[string]float64)
	var colorNotes []string
	for _, rule := range fired {
		mats := make([]string, 0, len(rule.Additions))
		for mat := range rule.Additions {
			mats = append(mats, mat)
		}
		sort.Strings(mats)
		for _, mat := range mats {
			additions[mat] += baseTotal * rule.Additions[mat] / 100.0
		}
		if rule.Note != "" {
			colorNotes = append(colorNotes, rule.Note)
		}
	}
	if parsed.FoodSafe {
		notes = append(notes, "Food-safe use requested: review the food safety findings and confirm with a leach test before production use.")
	}

	res, err := d.assemble(recipe, additions, parsed, cone, description)
	if err != nil {
		return nil, err
	}
	res.Notes = notes
	res.ColorNotes = colorNotes
	res.Explanation = append(explanation, res.Explanation...)

	slog.Info("glaze designed",
		"template", parsed.Template,
		"cone", cone,
		"materials", len(recipe),
		"additions", len(additions))
	return res, nil
}

// Vary applies a named adjustment direction to an existing recipe and
// re-runs the analysis pipeline. The parsed record from the prior design
// call supplies surface and cone context without re-parsing text.
func (d *Designer) Vary(recipe map[string]float64, direction, description, clayBody string, colorantAdditions map[string]float64, parsed *Parsed) (*Result, error) {
	v, ok := d.tables.Variations[direction]
	if !ok {
		return nil, NewUnknownDirectionError(direction)
	}
	if len(recipe) == 0 {
		return nil, chem.NewInvalidRecipeError("recipe has no materials")
	}

	p := Parsed{}
	if parsed != nil {
		p = *parsed
	}
	if clayBody != "" {
		p.ClayBody = clayBody
	}
	cone := p.Cone
	if cone == "" {
		cone = "6"
		p.Cone = cone
	}

	base := copyRecipe(recipe)
	mats := make([]string, 0, len(v.Deltas))
	for mat := range v.Deltas {
		mats = append(mats, mat)
	}
	sort.Strings(mats)
	for _, mat := range mats {
		next := base[mat] + v.Deltas[mat]
		if next <= 0 {
			delete(base, mat)
			continue
		}
		base[mat] = next
	}
	renormalize(base)

	additions := make(map[string]float64, len(colorantAdditions))
	for mat, amt := range colorantAdditions {
		if scaled := amt * v.ColorFactor; scaled > 0 {
			additions[mat] = scaled
		}
	}

	res, err := d.assemble(base, additions, &p, cone, fmt.Sprintf("Variation of %q toward %s", description, direction))
	if err != nil {
		return nil, err
	}
	res.Explanation = append([]string{
		fmt.Sprintf("Adjusted from base toward %s.", direction),
		v.Summary,
	}, res.Explanation...)

	slog.Info("variation produced", "direction", direction, "materials", len(base))
	return res, nil
}

// assemble runs the shared analysis pipeline over a candidate recipe and
// its additions.
func (d *Designer) assemble(recipe, additions map[string]float64, parsed *Parsed, cone, description string) (*Result, error) {
	u, err := d.calc.UMF(recipe)
	if err != nil {
		return nil, err
	}
	limits := chem.CheckLimits(u, cone, d.tables)

	merged := copyRecipe(recipe)
	for mat, amt := range additions {
		merged[mat] += amt
	}
	mergedUMF, err := d.calc.UMF(merged)
	if err != nil {
		return nil, err
	}
	foodSafety := chem.CheckFoodSafety(merged, mergedUMF, d.db)

	var body *materials.ClayBody
	if parsed.ClayBody != "" {
		body = d.db.ClayBody(parsed.ClayBody)
	}
	cte := chem.CompareCTE(u, body, d.tables)

	var dryWeight float64
	for _, amt := range merged {
		dryWeight += amt
	}
	water, err := chem.WaterFor(dryWeight, d.tables)
	if err != nil {
		return nil, err
	}

	return &Result{
		Description: description,
		Parsed:      parsed,
		Recipe:      recipe,
		Additions:   additions,
		UMF:         u,
		Limits:      limits,
		CTE:         cte,
		FoodSafety:  foodSafety,
		Water:       water,
		Explanation: []string{fmt.Sprintf("Unity formula: SiO2 %.2f, Al2O3 %.2f, Si:Al %.1f.", u.Oxides["SiO2"], u.Oxides["Al2O3"], u.SiAlRatio)},
		Ingredients: d.explainIngredients(recipe, additions),
	}, nil
}

// scaleForCone shifts flux character to suit the firing range: high fire
// leans on feldspar, low fire on frit. Returns an explanation line when a
// shift happened.
func (d *Designer) scaleForCone(recipe map[string]float64, cone string) string {
	n, err := reference.ConeNumber(cone)
	if err != nil {
		return ""
	}
	frit := largestMatching(recipe, isFrit)
	feldspar := largestMatching(recipe, isFeldspar)
	if frit == "" || feldspar == "" {
		return ""
	}

	switch {
	case n >= highFireCone:
		shift := min(coneShiftStep, recipe[frit])
		recipe[frit] -= shift
		recipe[feldspar] += shift
		if recipe[frit] == 0 {
			delete(recipe, frit)
		}
		return fmt.Sprintf("Shifted %.0f%% from %s to %s for cone %s; high fire needs less frit.", shift, frit, feldspar, cone)
	case n <= lowFireCone:
		shift := min(coneShiftStep, recipe[feldspar])
		recipe[feldspar] -= shift
		recipe[frit] += shift
		if recipe[feldspar] == 0 {
			delete(recipe, feldspar)
		}
		return fmt.Sprintf("Shifted %.0f%% from %s to %s for cone %s; low fire needs more frit.", shift, feldspar, frit, cone)
	}
	return ""
}

// correct runs the bounded validation loop: nudge the recipe toward the
// limit formula, renormalize, re-check. Keeps the best candidate seen so
// the result never gets worse than the starting point.
func (d *Designer) correct(recipe map[string]float64, cone string, explanation []string) (map[string]float64, []string) {
	best := copyRecipe(recipe)
	bestCount, bestOver := d.violationCost(best, cone)
	if bestCount == 0 {
		return best, append(explanation, "Candidate sits inside the limit formula; no correction needed.")
	}

	current := copyRecipe(recipe)
	for i := 0; i < maxCorrections; i++ {
		v := d.firstActionableViolation(current, cone)
		if v == nil {
			break
		}
		direction := chem.StatusLow
		if v.Status == chem.StatusHigh {
			direction = chem.StatusHigh
		}
		nudge := d.tables.NudgeFor(v.Oxide, direction)
		if nudge == nil {
			break
		}
		applyNudge(current, nudge)
		renormalize(current)

		count, over := d.violationCost(current, cone)
		if count < bestCount || (count == bestCount && over < bestOver) {
			best = copyRecipe(current)
			bestCount, bestOver = count, over
		}
		if count == 0 {
			return best, append(explanation, fmt.Sprintf("Corrected to the limit formula in %d adjustment(s).", i+1))
		}
	}
	return best, append(explanation, fmt.Sprintf("Correction budget exhausted; best candidate keeps %d limit flag(s), shown below.", bestCount))
}

// firstActionableViolation returns the first beyond-tolerance limit entry
// in canonical oxide order, or nil.
func (d *Designer) firstActionableViolation(recipe map[string]float64, cone string) *chem.LimitEntry {
	u, err := d.calc.UMF(recipe)
	if err != nil {
		return nil
	}
	for _, e := range chem.CheckLimits(u, cone, d.tables) {
		if beyondTolerance(e) {
			v := e
			return &v
		}
	}
	return nil
}

// violationCost scores a candidate: beyond-tolerance violation count,
// then total overshoot distance as the tie breaker.
func (d *Designer) violationCost(recipe map[string]float64, cone string) (int, float64) {
	u, err := d.calc.UMF(recipe)
	if err != nil {
		return len(oxide.Canonical()), 0
	}
	count := 0
	var over float64
	for _, e := range chem.CheckLimits(u, cone, d.tables) {
		if !beyondTolerance(e) {
			continue
		}
		count++
		if e.Status == chem.StatusLow {
			over += e.Min - e.Value
		} else {
			over += e.Value - e.Max
		}
	}
	return count, over
}

func beyondTolerance(e chem.LimitEntry) bool {
	tol := oxideTolerance
	if e.Oxide == "SiO2" {
		tol = silicaTolerance
	}
	switch e.Status {
	case chem.StatusLow:
		return e.Min-e.Value > tol
	case chem.StatusHigh:
		return e.Value-e.Max > tol
	default:
		return false
	}
}

// applyNudge raises and lowers the nudge's materials by the fixed step.
// Lowering an absent material is a no-op; lowering clamps at zero.
func applyNudge(recipe map[string]float64, n *reference.Nudge) {
	if n.Increase != "" {
		recipe[n.Increase] += nudgeStep
	}
	if n.Decrease != "" {
		if amt, ok := recipe[n.Decrease]; ok {
			next := amt - nudgeStep
			if next <= 0 {
				delete(recipe, n.Decrease)
			} else {
				recipe[n.Decrease] = next
			}
		}
	}
}

// renormalize rescales a recipe in place so it sums to 100.
func renormalize(recipe map[string]float64) {
	var total float64
	for _, amt := range recipe {
		total += amt
	}
	if total <= 0 {
		return
	}
	for mat := range recipe {
		recipe[mat] = recipe[mat] / total * baseTotal
	}
}

func copyRecipe(recipe map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(recipe))
	for mat, amt := range recipe {
		out[mat] = amt
	}
	return out
}

func largestMatching(recipe map[string]float64, match func(string) bool) string {
	bestName := ""
	bestAmt := 0.0
	names := make([]string, 0, len(recipe))
	for name := range recipe {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if match(name) && recipe[name] > bestAmt {
			bestName, bestAmt = name, recipe[name]
		}
	}
	return bestName
}

func isFrit(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "frit") || strings.Contains(lower, "gerstley")
}

func isFeldspar(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "feldspar") || strings.Contains(lower, "nepheline") || strings.Contains(lower, "minspar")
}
