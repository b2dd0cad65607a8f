package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/oxide"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	assert.Contains(t, tables.Limits, "6")
	assert.Contains(t, tables.Limits, "04")
	assert.Contains(t, tables.Limits, "10")
	assert.NotEmpty(t, tables.Templates)
	assert.NotEmpty(t, tables.TemplateRules)
	assert.NotEmpty(t, tables.ColorantRules)
	assert.NotNil(t, tables.Template(tables.DefaultTemplate))
}

func TestLoadExpansionCoversTrackedOxides(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	for _, ox := range oxide.Canonical() {
		_, ok := tables.Expansion[ox]
		assert.True(t, ok, "no expansion coefficient for %s", ox)
	}
}

func TestLoadLimitsUseTrackedOxides(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	for cone, limits := range tables.Limits {
		for ox, r := range limits {
			assert.True(t, oxide.Tracked(ox), "cone %s limits name untracked oxide %s", cone, ox)
			assert.LessOrEqual(t, r.Min, r.Max, "cone %s %s has min above max", cone, ox)
		}
	}
}

// Every material the design tables name must exist in the materials
// database, otherwise the designer would fail at runtime.
func TestLoadMaterialsResolve(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	db, err := materials.Load()
	require.NoError(t, err)

	for _, tpl := range tables.Templates {
		total := 0.0
		for name, pct := range tpl.Recipe {
			assert.True(t, db.Has(name), "template %s uses unknown material %q", tpl.ID, name)
			total += pct
		}
		assert.InDelta(t, 100.0, total, 0.001, "template %s does not sum to 100", tpl.ID)
	}
	for _, rule := range tables.ColorantRules {
		for name := range rule.Additions {
			assert.True(t, db.Has(name), "colorant rule %s uses unknown material %q", rule.ID, name)
		}
	}
	for _, n := range tables.Nudges {
		if n.Increase != "" {
			assert.True(t, db.Has(n.Increase), "nudge %s %s increases unknown material %q", n.Oxide, n.Direction, n.Increase)
		}
		if n.Decrease != "" {
			assert.True(t, db.Has(n.Decrease), "nudge %s %s decreases unknown material %q", n.Oxide, n.Direction, n.Decrease)
		}
	}
	for name := range tables.Roles {
		assert.True(t, db.Has(name), "role text names unknown material %q", name)
	}
	for name := range tables.Variations {
		v := tables.Variations[name]
		for mat := range v.Deltas {
			assert.True(t, db.Has(mat), "variation %s adjusts unknown material %q", name, mat)
		}
	}
}

func TestLimitsFor(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name     string
		cone     string
		wantCone string
	}{
		{name: "exact mid fire", cone: "6", wantCone: "6"},
		{name: "exact low fire", cone: "04", wantCone: "04"},
		{name: "exact high fire", cone: "10", wantCone: "10"},
		{name: "nearest above mid", cone: "7", wantCone: "6"},
		{name: "nearest below high", cone: "9", wantCone: "10"},
		{name: "low fire neighbor", cone: "06", wantCone: "04"},
		{name: "tie resolves to lower cone", cone: "8", wantCone: "6"},
		{name: "tie in low range resolves lower", cone: "1", wantCone: "04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits, used := tables.LimitsFor(tt.cone)
			assert.Equal(t, tt.wantCone, used)
			assert.NotNil(t, limits)
		})
	}

	limits, used := tables.LimitsFor("not-a-cone")
	assert.Nil(t, limits)
	assert.Empty(t, used)
}

func TestConeNumber(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{label: "6", want: 6},
		{label: "10", want: 10},
		{label: "04", want: -4},
		{label: "06", want: -6},
		{label: "010", want: -10},
		{label: "0", want: 0},
	}
	for _, tt := range tests {
		got, err := ConeNumber(tt.label)
		require.NoError(t, err, "cone %q", tt.label)
		assert.Equal(t, tt.want, got, "cone %q", tt.label)
	}

	_, err := ConeNumber("hot")
	assert.Error(t, err)
}

func TestNudgeFor(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	n := tables.NudgeFor("SiO2", "low")
	require.NotNil(t, n)
	assert.Equal(t, "Silica", n.Increase)

	assert.Nil(t, tables.NudgeFor("SiO2", "sideways"))
	assert.Nil(t, tables.NudgeFor("PbO", "high"))
}

func TestWaterRatios(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.75, tables.Water.Dipping.Ratio, 1e-9)
	assert.InDelta(t, 0.95, tables.Water.Spraying.Ratio, 1e-9)
	assert.Equal(t, "1.45-1.47", tables.Water.Dipping.SpecificGravity)
	assert.Equal(t, "1.35", tables.Water.Spraying.SpecificGravity)
	assert.NotEmpty(t, tables.Water.Note)
}
