// Package designer turns free-text glaze descriptions into validated
// recipes. Interpretation is a deterministic pass over ordered keyword
// rule tables; candidate recipes then run through a bounded corrective
// loop against the limit formulas before narrative assembly.
package designer

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/glazecalc/internal/reference"
)

// Parsed captures the designer's interpretation of a description. It is
// echoed back to the caller so variation requests can replay it without
// re-parsing the text.
type Parsed struct {
	Template  string   `json:"template"`
	Surface   string   `json:"surface"`
	Matched   []string `json:"matched"`
	Colorants []string `json:"colorants"`
	FoodSafe  bool     `json:"food_safe"`
	ClayBody  string   `json:"clay_body,omitempty"`
	Cone      string   `json:"cone"`
}

// clearTerms suppress every colorant group: a clear glaze carries no
// color, opacifier, or effect additions.
var clearTerms = []string{"clear", "transparent"}

var foodSafeTerms = []string{"food safe", "food-safe", "foodsafe"}

// normalize prepares text for keyword matching: Unicode NFC then lowercase.
func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// score counts how many of the rule's keyword terms occur in text.
func score(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func matchedTerms(text string, keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// parse interprets a description against the rule tables. Every rule is
// scored by matched keyword count; the highest score wins and ties break
// to the earliest rule in table order. A non-empty description that
// matches nothing falls back to the default template; a blank description
// is an error.
func parse(description, clayBody, cone string, tables *reference.Tables) (*Parsed, []reference.ColorantRule, error) {
	text := normalize(description)
	if strings.TrimSpace(text) == "" {
		return nil, nil, NewUnrecognizedDescriptionError(description)
	}

	p := &Parsed{ClayBody: clayBody, Cone: cone}
	matched := map[string]bool{}

	bestScore := 0
	bestIdx := -1
	for i, rule := range tables.TemplateRules {
		if s := score(text, rule.Keywords); s > bestScore {
			bestScore, bestIdx = s, i
		}
	}
	if bestIdx >= 0 {
		rule := tables.TemplateRules[bestIdx]
		p.Template = rule.Template
		for _, kw := range matchedTerms(text, rule.Keywords) {
			matched[kw] = true
		}
	} else {
		p.Template = tables.DefaultTemplate
	}
	p.Surface = tables.Template(p.Template).Surface

	var fired []reference.ColorantRule
	if !containsAny(text, clearTerms) {
		for _, group := range []string{"color", "opacifier", "effect"} {
			gScore := 0
			gIdx := -1
			for i, rule := range tables.ColorantRules {
				if rule.Group != group {
					continue
				}
				if s := score(text, rule.Keywords); s > gScore {
					gScore, gIdx = s, i
				}
			}
			if gIdx >= 0 {
				rule := tables.ColorantRules[gIdx]
				fired = append(fired, rule)
				p.Colorants = append(p.Colorants, rule.ID)
				for _, kw := range matchedTerms(text, rule.Keywords) {
					matched[kw] = true
				}
			}
		}
	} else {
		for _, t := range clearTerms {
			if strings.Contains(text, t) {
				matched[t] = true
			}
		}
	}

	p.FoodSafe = containsAny(text, foodSafeTerms)

	p.Matched = make([]string, 0, len(matched))
	for kw := range matched {
		p.Matched = append(p.Matched, kw)
	}
	sort.Strings(p.Matched)

	return p, fired, nil
}
