package designer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glazecalc/internal/reference"
)

func parseTables(t *testing.T) *reference.Tables {
	t.Helper()
	tables, err := reference.Load()
	require.NoError(t, err)
	return tables
}

func TestParseTemplates(t *testing.T) {
	tables := parseTables(t)

	tests := []struct {
		name         string
		description  string
		wantTemplate string
	}{
		{name: "glossy clear", description: "a glossy clear liner glaze", wantTemplate: "glossy-clear"},
		{name: "plain matte", description: "matte white", wantTemplate: "matte"},
		{name: "buttery beats plain matte", description: "a buttery matte for mugs", wantTemplate: "buttery-matte"},
		{name: "silky matte", description: "silky matte celadon", wantTemplate: "silky-matte"},
		{name: "satin", description: "satin blue", wantTemplate: "satin"},
		{name: "crystalline", description: "zinc crystalline glaze", wantTemplate: "crystalline"},
		{name: "uppercase", description: "GLOSSY CLEAR", wantTemplate: "glossy-clear"},
		{name: "fallback for unmatched text", description: "something for my teapot", wantTemplate: "glossy-clear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, err := parse(tt.description, "", "6", tables)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplate, p.Template)
		})
	}
}

func TestParseBlankDescription(t *testing.T) {
	tables := parseTables(t)

	for _, desc := range []string{"", "   ", "\t\n"} {
		_, _, err := parse(desc, "", "6", tables)
		require.Error(t, err)
		assert.True(t, IsUnrecognizedDescriptionError(err), "description %q", desc)
	}
}

func TestParseColorants(t *testing.T) {
	tables := parseTables(t)

	tests := []struct {
		name        string
		description string
		wantRules   []string
	}{
		{name: "copper green", description: "glossy copper green", wantRules: []string{"copper-green"}},
		{name: "cobalt blue", description: "a deep blue gloss", wantRules: []string{"cobalt-blue"}},
		{name: "blue green wins over blue", description: "satin blue-green", wantRules: []string{"blue-green"}},
		{name: "tenmoku", description: "classic tenmoku", wantRules: []string{"tenmoku"}},
		{name: "white opacifier", description: "matte white", wantRules: []string{"zircopax-white"}},
		{name: "color plus effect", description: "blue with rutile variegation", wantRules: []string{"cobalt-blue", "rutile-variegation"}},
		{name: "clear suppresses color", description: "clear blue transparent", wantRules: nil},
		{name: "no colorant", description: "plain satin", wantRules: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fired, err := parse(tt.description, "", "6", tables)
			require.NoError(t, err)
			ids := make([]string, 0, len(fired))
			for _, r := range fired {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantRules, ids)
			assert.Equal(t, tt.wantRules, p.Colorants)
		})
	}
}

func TestParseFoodSafe(t *testing.T) {
	tables := parseTables(t)

	p, _, err := parse("food safe glossy clear", "", "6", tables)
	require.NoError(t, err)
	assert.True(t, p.FoodSafe)

	p, _, err = parse("food-safe satin", "", "6", tables)
	require.NoError(t, err)
	assert.True(t, p.FoodSafe)

	p, _, err = parse("glossy clear", "", "6", tables)
	require.NoError(t, err)
	assert.False(t, p.FoodSafe)
}

func TestParseEchoesContext(t *testing.T) {
	tables := parseTables(t)

	p, _, err := parse("glossy clear", "porcelain", "10", tables)
	require.NoError(t, err)
	assert.Equal(t, "porcelain", p.ClayBody)
	assert.Equal(t, "10", p.Cone)
	assert.Contains(t, p.Matched, "glossy")
	assert.Contains(t, p.Matched, "clear")
}
