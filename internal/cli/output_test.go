package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glazecalc/internal/glaze"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad flag")
	assert.Equal(t, "bad flag", err.Error())
	assert.Nil(t, err.Unwrap())

	inner := errors.New("no such file")
	wrapped := WrapExitError(ExitCommandError, "reading recipe", inner)
	assert.Equal(t, "reading recipe: no such file", wrapped.Error())
	assert.Equal(t, inner, wrapped.Unwrap())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))

	// Wrapped ExitErrors still resolve through errors.As.
	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestEmitJSONPrintsWireShape(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	result := glaze.ScaleResponse{
		Success: true,
		RecipeTable: []glaze.Row{
			{Material: "Silica", Percent: 50.0, Grams: 500.0},
			{Material: "Whiting", Percent: 50.0, Grams: 500.0},
		},
		TotalWeight: 1000.0,
	}
	require.NoError(t, formatter.Emit(result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, 1000.0, decoded["total_weight"])
	// No envelope around the result.
	assert.NotContains(t, decoded, "status")
	assert.NotContains(t, decoded, "data")
}

func TestEmitFailureSetsExitCode(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Emit(glaze.ErrorResponse{Success: false, Error: "Unknown material: Moon Dust"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "Unknown material: Moon Dust", decoded["error"])
}

func TestEmitTextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Emit(glaze.ErrorResponse{Success: false, Error: "Recipe cannot be empty"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "✗ Recipe cannot be empty")
}

func TestEmitTextScale(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	result := glaze.ScaleResponse{
		Success: true,
		RecipeTable: []glaze.Row{
			{Material: "Custer Feldspar", Percent: 30.0, Grams: 300.0},
		},
		TotalWeight: 1000.0,
	}
	require.NoError(t, formatter.Emit(result))
	assert.Contains(t, buf.String(), "Scaled to 1000.0 g")
	assert.Contains(t, buf.String(), "Custer Feldspar")
}

func TestVerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: false}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	verbose := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: true}
	verbose.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String())
}
