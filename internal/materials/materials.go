// Package materials holds the read-only material database: each material
// name maps to its oxide weight-fraction analysis. The database is loaded
// once at startup from an embedded YAML file and never mutated afterward,
// so it is safe to share across concurrent requests without locking.
package materials

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed materials.yaml
var materialsYAML []byte

// Material is one entry in the database. Oxide fractions are weight
// fractions in [0,1]; they may sum to less than 1, the remainder being
// loss on ignition.
type Material struct {
	Name   string
	Oxides map[string]float64
	LOI    float64
}

// ClayBody describes a clay body the glaze may be fit against.
type ClayBody struct {
	ID   string  `yaml:"id" json:"id"`
	Name string  `yaml:"name" json:"name"`
	Cone string  `yaml:"cone" json:"cone"`
	CTE  float64 `yaml:"cte" json:"cte"`
}

// Database is the immutable material + clay body catalog.
type Database struct {
	materials map[string]Material
	bodies    map[string]ClayBody
	bodyOrder []string
}

type rawFile struct {
	Materials map[string]struct {
		Oxides map[string]float64 `yaml:"oxides"`
		LOI    float64            `yaml:"loi"`
	} `yaml:"materials"`
	ClayBodies []ClayBody `yaml:"clay_bodies"`
}

// Load decodes the embedded material table. It validates that every
// fraction is in [0,1] and that no analysis sums above 1 (allowing a
// small rounding slack).
func Load() (*Database, error) {
	return loadFrom(materialsYAML)
}

func loadFrom(data []byte) (*Database, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}
	if len(raw.Materials) == 0 {
		return nil, fmt.Errorf("materials table is empty")
	}

	db := &Database{
		materials: make(map[string]Material, len(raw.Materials)),
		bodies:    make(map[string]ClayBody, len(raw.ClayBodies)),
	}
	for name, m := range raw.Materials {
		sum := 0.0
		for ox, frac := range m.Oxides {
			if frac < 0 || frac > 1 {
				return nil, fmt.Errorf("material %q: oxide %s fraction %v outside [0,1]", name, ox, frac)
			}
			sum += frac
		}
		if sum+m.LOI > 1.0+0.02 {
			return nil, fmt.Errorf("material %q: analysis sums to %.4f (> 1)", name, sum+m.LOI)
		}
		db.materials[name] = Material{Name: name, Oxides: m.Oxides, LOI: m.LOI}
	}
	for _, b := range raw.ClayBodies {
		if _, dup := db.bodies[b.ID]; dup {
			return nil, fmt.Errorf("duplicate clay body id %q", b.ID)
		}
		db.bodies[b.ID] = b
		db.bodyOrder = append(db.bodyOrder, b.ID)
	}

	slog.Info("material database loaded",
		"materials", len(db.materials),
		"clay_bodies", len(db.bodies),
	)
	return db, nil
}

// Lookup returns the material analysis for a name, or nil when the
// material is not in the database.
func (db *Database) Lookup(name string) *Material {
	m, ok := db.materials[name]
	if !ok {
		return nil
	}
	return &m
}

// Has reports whether the material exists.
func (db *Database) Has(name string) bool {
	_, ok := db.materials[name]
	return ok
}

// Names returns all material names sorted alphabetically.
func (db *Database) Names() []string {
	out := make([]string, 0, len(db.materials))
	for name := range db.materials {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ClayBody returns the clay body for an id, or nil when the id is
// unknown.
func (db *Database) ClayBody(id string) *ClayBody {
	b, ok := db.bodies[id]
	if !ok {
		return nil
	}
	return &b
}

// ClayBodies returns all clay bodies in file order.
func (db *Database) ClayBodies() []ClayBody {
	out := make([]ClayBody, 0, len(db.bodyOrder))
	for _, id := range db.bodyOrder {
		out = append(out, db.bodies[id])
	}
	return out
}
