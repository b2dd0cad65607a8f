// Package library holds the reference glaze collection and a durable
// archive of designed recipes. The reference collection is embedded and
// read-only; the archive is a SQLite database.
package library

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed references.yaml
var referencesYAML []byte

// Reference is one proven glaze recipe.
type Reference struct {
	Name        string             `json:"name" yaml:"name"`
	Source      string             `json:"source" yaml:"source"`
	Cone        string             `json:"cone" yaml:"cone"`
	Surface     string             `json:"surface" yaml:"surface"`
	Description string             `json:"description" yaml:"description"`
	Recipe      map[string]float64 `json:"recipe" yaml:"recipe"`
	Additions   map[string]float64 `json:"additions" yaml:"additions"`
	Notes       string             `json:"notes" yaml:"notes"`
}

// Library is the loaded reference collection.
type Library struct {
	refs []Reference
}

// LoadReferences decodes the embedded reference collection.
func LoadReferences() (*Library, error) {
	var doc struct {
		References []Reference `yaml:"references"`
	}
	if err := yaml.Unmarshal(referencesYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode reference library: %w", err)
	}
	for _, r := range doc.References {
		if r.Name == "" || len(r.Recipe) == 0 {
			return nil, fmt.Errorf("reference library entry %q is incomplete", r.Name)
		}
	}
	slog.Info("reference library loaded", "glazes", len(doc.References))
	return &Library{refs: doc.References}, nil
}

// Filter returns references matching source and surface. "all" or the
// empty string matches everything; surface matches as a substring.
func (l *Library) Filter(source, surface string) []Reference {
	out := make([]Reference, 0, len(l.refs))
	for _, r := range l.refs {
		if !matchesSource(r, source) || !matchesSurface(r, surface) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// All returns every reference in file order.
func (l *Library) All() []Reference {
	return l.Filter("", "")
}

func matchesSource(r Reference, source string) bool {
	return source == "" || source == "all" || r.Source == source
}

func matchesSurface(r Reference, surface string) bool {
	return surface == "" || surface == "all" ||
		strings.Contains(strings.ToLower(r.Surface), strings.ToLower(surface))
}
