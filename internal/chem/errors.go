package chem

import (
	"errors"
	"fmt"
)

// CalcError represents an error detected during a chemistry calculation.
//
// Calculation errors include:
//   - Unknown material: Recipe names a material not in the database
//   - Invalid recipe: Recipe is empty or has a non-positive amount
//   - Degenerate recipe: Recipe contributes no flux oxides, so unity
//     normalization is undefined
//   - Invalid weight: Batch weight is not a positive finite number
//
// CalcError includes structured fields so callers can report the exact
// material or value at fault.
type CalcError struct {
	// Code identifies the error category.
	Code CalcErrorCode

	// Message is a human-readable description.
	Message string

	// Material identifies the offending material, when one exists.
	Material string
}

// CalcErrorCode categorizes calculation errors.
type CalcErrorCode string

const (
	// ErrCodeUnknownMaterial indicates a recipe material has no analysis.
	ErrCodeUnknownMaterial CalcErrorCode = "UNKNOWN_MATERIAL"

	// ErrCodeInvalidRecipe indicates an empty recipe or non-positive amount.
	ErrCodeInvalidRecipe CalcErrorCode = "INVALID_RECIPE"

	// ErrCodeDegenerateRecipe indicates the recipe yields zero flux moles.
	ErrCodeDegenerateRecipe CalcErrorCode = "DEGENERATE_RECIPE"

	// ErrCodeInvalidWeight indicates a non-positive or non-finite batch weight.
	ErrCodeInvalidWeight CalcErrorCode = "INVALID_WEIGHT"
)

// Error implements the error interface.
func (e *CalcError) Error() string {
	if e.Material != "" {
		return fmt.Sprintf("%s: %s (material=%s)", e.Code, e.Message, e.Material)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnknownMaterialError creates a CalcError for an unresolvable material.
func NewUnknownMaterialError(material string) *CalcError {
	return &CalcError{
		Code:     ErrCodeUnknownMaterial,
		Message:  fmt.Sprintf("material %q is not in the materials database", material),
		Material: material,
	}
}

// NewInvalidRecipeError creates a CalcError for a malformed recipe.
func NewInvalidRecipeError(msg string) *CalcError {
	return &CalcError{Code: ErrCodeInvalidRecipe, Message: msg}
}

// NewDegenerateRecipeError creates a CalcError for a recipe with no flux.
func NewDegenerateRecipeError() *CalcError {
	return &CalcError{
		Code:    ErrCodeDegenerateRecipe,
		Message: "recipe contributes no flux oxides; unity formula is undefined",
	}
}

// NewInvalidWeightError creates a CalcError for a bad batch weight.
func NewInvalidWeightError(weight float64) *CalcError {
	return &CalcError{
		Code:    ErrCodeInvalidWeight,
		Message: fmt.Sprintf("batch weight must be a positive number, got %g", weight),
	}
}

// IsUnknownMaterialError reports whether err is an unknown material error.
// Uses errors.As to handle wrapped errors.
func IsUnknownMaterialError(err error) bool {
	var ce *CalcError
	return errors.As(err, &ce) && ce.Code == ErrCodeUnknownMaterial
}

// IsInvalidRecipeError reports whether err is an invalid recipe error.
func IsInvalidRecipeError(err error) bool {
	var ce *CalcError
	return errors.As(err, &ce) && ce.Code == ErrCodeInvalidRecipe
}

// IsDegenerateRecipeError reports whether err is a degenerate recipe error.
func IsDegenerateRecipeError(err error) bool {
	var ce *CalcError
	return errors.As(err, &ce) && ce.Code == ErrCodeDegenerateRecipe
}

// IsInvalidWeightError reports whether err is an invalid weight error.
func IsInvalidWeightError(err error) bool {
	var ce *CalcError
	return errors.As(err, &ce) && ce.Code == ErrCodeInvalidWeight
}
