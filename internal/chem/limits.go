package chem

import (
	"github.com/roach88/glazecalc/internal/oxide"
	"github.com/roach88/glazecalc/internal/reference"
)

// Limit status values. Boundary values classify as ok.
const (
	StatusLow  = "low"
	StatusOK   = "ok"
	StatusHigh = "high"
)

// boundaryEpsilon absorbs float noise at range edges so a value equal to
// min or max never misclassifies.
const boundaryEpsilon = 1e-9

// LimitEntry is one oxide's position against its reference range.
type LimitEntry struct {
	Oxide  string  `json:"oxide"`
	Value  float64 `json:"value"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Status string  `json:"status"`
}

// CheckLimits classifies each oxide of a unity formula against the limit
// ranges for the given cone. When the exact cone has no table the nearest
// cone's table is used. Oxides without a defined range are omitted.
// Entries come back in canonical oxide order.
func CheckLimits(u *UMF, cone string, tables *reference.Tables) []LimitEntry {
	limits, _ := tables.LimitsFor(cone)
	if limits == nil {
		return nil
	}

	var entries []LimitEntry
	for _, ox := range oxide.Canonical() {
		r, ok := limits[ox]
		if !ok {
			continue
		}
		value := u.Oxides[ox]
		entries = append(entries, LimitEntry{
			Oxide:  ox,
			Value:  value,
			Min:    r.Min,
			Max:    r.Max,
			Status: classify(value, r),
		})
	}
	return entries
}

func classify(value float64, r reference.Range) string {
	switch {
	case value < r.Min-boundaryEpsilon:
		return StatusLow
	case value > r.Max+boundaryEpsilon:
		return StatusHigh
	default:
		return StatusOK
	}
}

// Violations returns the entries whose status is not ok.
func Violations(entries []LimitEntry) []LimitEntry {
	var out []LimitEntry
	for _, e := range entries {
		if e.Status != StatusOK {
			out = append(out, e)
		}
	}
	return out
}
