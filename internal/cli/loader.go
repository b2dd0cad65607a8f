package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/roach88/glazecalc/internal/glaze"
	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/reference"
)

// loadOps builds the operation layer from the embedded materials
// database and reference tables.
func loadOps() (*glaze.Ops, *materials.Database, *reference.Tables, error) {
	db, err := materials.Load()
	if err != nil {
		return nil, nil, nil, WrapExitError(ExitCommandError, "loading materials database", err)
	}
	tables, err := reference.Load()
	if err != nil {
		return nil, nil, nil, WrapExitError(ExitCommandError, "loading reference tables", err)
	}
	return glaze.NewOps(db, tables), db, tables, nil
}

// readRecipe reads a recipe from a JSON file mapping material names to
// parts by weight. The path "-" reads from the command's stdin.
func readRecipe(path string, stdin io.Reader) (map[string]float64, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("reading recipe %s", path), err)
	}

	recipe := make(map[string]float64)
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("parsing recipe %s", path), err)
	}
	return recipe, nil
}
