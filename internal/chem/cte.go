package chem

import (
	"fmt"

	"github.com/roach88/glazecalc/internal/materials"
	"github.com/roach88/glazecalc/internal/reference"
)

// Fit thresholds for the glaze-body CTE comparison, in coefficient units
// (x10^-7/C). A glaze much higher than its body crazes; much lower shivers.
const (
	crazeThreshold  = 5.0
	shiverThreshold = -10.0
)

// CTE holds the estimated thermal expansion and the fit commentary.
type CTE struct {
	Value float64 `json:"value"`
	Note  string  `json:"note"`
}

// EstimateCTE computes a thermal expansion estimate (x10^-7/C) as the
// mole-fraction weighted sum of per-oxide coefficients. Mole fractions are
// taken over all oxides in the unity formula, so the estimate is
// independent of which oxide set was used for normalization.
func EstimateCTE(u *UMF, tables *reference.Tables) float64 {
	var total float64
	for _, m := range u.Oxides {
		total += m
	}
	if total == 0 {
		return 0
	}

	var cte float64
	for ox, m := range u.Oxides {
		coeff, ok := tables.Expansion[ox]
		if !ok {
			continue
		}
		cte += coeff * (m / total)
	}
	return cte
}

// CompareCTE estimates the glaze CTE and, when a clay body is known,
// annotates the fit between them.
func CompareCTE(u *UMF, body *materials.ClayBody, tables *reference.Tables) CTE {
	value := EstimateCTE(u, tables)
	if body == nil {
		return CTE{
			Value: value,
			Note:  "No clay body selected; pick one to get a crazing/shivering fit estimate.",
		}
	}

	diff := value - body.CTE
	var note string
	switch {
	case diff > crazeThreshold:
		note = fmt.Sprintf("Glaze expansion (%.1f) is well above %s (%.1f): crazing risk. Add silica or swap sodium flux for calcium to bring it down.", value, body.Name, body.CTE)
	case diff < shiverThreshold:
		note = fmt.Sprintf("Glaze expansion (%.1f) is well below %s (%.1f): shivering risk. Reduce silica or add a higher-expansion flux.", value, body.Name, body.CTE)
	default:
		note = fmt.Sprintf("Glaze expansion (%.1f) is a reasonable fit for %s (%.1f).", value, body.Name, body.CTE)
	}
	return CTE{Value: value, Note: note}
}
