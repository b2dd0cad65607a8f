// Package reference holds the chemistry and design reference tables the
// rest of the system consults: oxide limit formulas per cone, thermal
// expansion coefficients, water ratios, base recipe templates, keyword
// rule tables, corrective nudges, and variation rules.
//
// The data lives in embedded CUE files and is decoded once at load time.
// Uses CUE SDK's Go API directly (not CLI subprocess).
package reference

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed chemistry.cue
var chemistryCUE []byte

//go:embed design.cue
var designCUE []byte

// Error code constants for reference data loading.
const (
	ErrCodeBuildFailed  = "R001" // CUE compile/unify failed
	ErrCodePathMissing  = "R002" // Expected path not present
	ErrCodeDecodeFailed = "R003" // CUE value did not decode into Go type
	ErrCodeInconsistent = "R004" // Cross-table consistency check failed
)

// LoadError represents an error in the embedded reference data.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Range is an inclusive [Min, Max] bound on a UMF oxide value.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// WaterMethod describes water addition for one application method.
type WaterMethod struct {
	Ratio           float64 `json:"ratio"`
	SpecificGravity string  `json:"specificGravity"`
}

// Water holds per-method water ratios and the shared mixing note.
type Water struct {
	Dipping  WaterMethod `json:"dipping"`
	Spraying WaterMethod `json:"spraying"`
	Note     string      `json:"note"`
}

// Template is a base recipe the designer instantiates.
type Template struct {
	ID      string             `json:"id"`
	Surface string             `json:"surface"`
	Recipe  map[string]float64 `json:"recipe"`
	Note    string             `json:"note,omitempty"`
}

// TemplateRule maps description keywords to a template.
type TemplateRule struct {
	Template string   `json:"template"`
	Keywords []string `json:"keywords"`
}

// ColorantRule maps description keywords to colorant additions.
// Group partitions rules so at most one fires per group.
type ColorantRule struct {
	ID        string             `json:"id"`
	Group     string             `json:"group"`
	Keywords  []string           `json:"keywords"`
	Additions map[string]float64 `json:"additions"`
	Note      string             `json:"note,omitempty"`
}

// Nudge is one corrective move for the validation loop: when Oxide is out
// of range in Direction, raise Increase and/or lower Decrease.
type Nudge struct {
	Oxide     string `json:"oxide"`
	Direction string `json:"direction"`
	Increase  string `json:"increase,omitempty"`
	Decrease  string `json:"decrease,omitempty"`
}

// Variation describes one named adjustment direction.
type Variation struct {
	Deltas      map[string]float64 `json:"deltas"`
	ColorFactor float64            `json:"colorFactor"`
	Summary     string             `json:"summary"`
}

// Role is the explanatory text for one material.
type Role struct {
	Role    string `json:"role"`
	Context string `json:"context"`
}

// Tables is the fully decoded reference data set.
type Tables struct {
	Limits          map[string]map[string]Range
	Expansion       map[string]float64
	Water           Water
	Templates       []Template
	DefaultTemplate string
	TemplateRules   []TemplateRule
	ColorantRules   []ColorantRule
	Nudges          []Nudge
	Variations      map[string]Variation
	Roles           map[string]Role
}

// Load compiles the embedded CUE files and decodes them into Tables.
func Load() (*Tables, error) {
	ctx := cuecontext.New()

	chem := ctx.CompileBytes(chemistryCUE)
	if err := chem.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("compiling chemistry data: %v", err)}
	}
	design := ctx.CompileBytes(designCUE)
	if err := design.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("compiling design data: %v", err)}
	}
	value := chem.Unify(design)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("unifying reference data: %v", err)}
	}

	t := &Tables{}

	if err := decodePath(value, "limits", &t.Limits); err != nil {
		return nil, err
	}
	if err := decodePath(value, "expansion", &t.Expansion); err != nil {
		return nil, err
	}
	if err := decodePath(value, "water", &t.Water); err != nil {
		return nil, err
	}
	if err := decodePath(value, "templates", &t.Templates); err != nil {
		return nil, err
	}
	if err := decodePath(value, "defaultTemplate", &t.DefaultTemplate); err != nil {
		return nil, err
	}
	if err := decodePath(value, "templateRules", &t.TemplateRules); err != nil {
		return nil, err
	}
	if err := decodePath(value, "colorantRules", &t.ColorantRules); err != nil {
		return nil, err
	}
	if err := decodePath(value, "nudges", &t.Nudges); err != nil {
		return nil, err
	}
	if err := decodePath(value, "variations", &t.Variations); err != nil {
		return nil, err
	}
	if err := decodePath(value, "roles", &t.Roles); err != nil {
		return nil, err
	}

	if err := t.check(); err != nil {
		return nil, err
	}

	slog.Info("reference tables loaded",
		"cones", len(t.Limits),
		"templates", len(t.Templates),
		"colorantRules", len(t.ColorantRules))
	return t, nil
}

func decodePath(v cue.Value, path string, out any) error {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return &LoadError{Code: ErrCodePathMissing, Message: fmt.Sprintf("reference data missing %q", path)}
	}
	if err := val.Decode(out); err != nil {
		return &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding %q: %v", path, err)}
	}
	return nil
}

// check enforces cross-table consistency so failures surface at load time
// instead of deep inside a calculation.
func (t *Tables) check() error {
	if t.Template(t.DefaultTemplate) == nil {
		return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("defaultTemplate %q has no template entry", t.DefaultTemplate)}
	}
	for _, rule := range t.TemplateRules {
		if t.Template(rule.Template) == nil {
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("template rule references unknown template %q", rule.Template)}
		}
		if len(rule.Keywords) == 0 {
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("template rule for %q has no keywords", rule.Template)}
		}
	}
	for _, rule := range t.ColorantRules {
		switch rule.Group {
		case "color", "opacifier", "effect":
		default:
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("colorant rule %q has unknown group %q", rule.ID, rule.Group)}
		}
		if len(rule.Additions) == 0 {
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("colorant rule %q has no additions", rule.ID)}
		}
	}
	for _, n := range t.Nudges {
		if n.Direction != "low" && n.Direction != "high" {
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("nudge for %s has invalid direction %q", n.Oxide, n.Direction)}
		}
		if n.Increase == "" && n.Decrease == "" {
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("nudge for %s %s names no material", n.Oxide, n.Direction)}
		}
	}
	for name, v := range t.Variations {
		if v.ColorFactor <= 0 {
			return &LoadError{Code: ErrCodeInconsistent, Message: fmt.Sprintf("variation %q has non-positive color factor", name)}
		}
	}
	return nil
}

// Template returns the template with the given id, or nil.
func (t *Tables) Template(id string) *Template {
	for i := range t.Templates {
		if t.Templates[i].ID == id {
			return &t.Templates[i]
		}
	}
	return nil
}

// LimitsFor returns the limit formula for cone, falling back to the
// nearest cone with a table when the exact cone has none. Ties between an
// equally distant lower and higher cone resolve to the lower cone. The
// returned cone label identifies which table was used.
func (t *Tables) LimitsFor(cone string) (map[string]Range, string) {
	if limits, ok := t.Limits[cone]; ok {
		return limits, cone
	}

	want, err := ConeNumber(cone)
	if err != nil {
		return nil, ""
	}

	type candidate struct {
		label string
		num   float64
	}
	var cands []candidate
	for label := range t.Limits {
		n, err := ConeNumber(label)
		if err != nil {
			continue
		}
		cands = append(cands, candidate{label: label, num: n})
	}
	if len(cands) == 0 {
		return nil, ""
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].num < cands[j].num })

	best := cands[0]
	bestDist := abs(want - best.num)
	for _, c := range cands[1:] {
		d := abs(want - c.num)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return t.Limits[best.label], best.label
}

// NudgeFor returns the corrective nudge for an oxide and direction, or nil.
func (t *Tables) NudgeFor(oxide, direction string) *Nudge {
	for i := range t.Nudges {
		if t.Nudges[i].Oxide == oxide && t.Nudges[i].Direction == direction {
			return &t.Nudges[i]
		}
	}
	return nil
}

// ConeNumber converts an Orton cone label to a numeric position. Cones
// below 1 carry a leading zero ("04" means 0-4, colder than cone 1), so
// "04" maps to -4 and "6" maps to 6.
func ConeNumber(label string) (float64, error) {
	if len(label) > 1 && label[0] == '0' {
		n, err := strconv.ParseFloat(label[1:], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid cone %q", label)
		}
		return -n, nil
	}
	n, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cone %q", label)
	}
	return n, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
