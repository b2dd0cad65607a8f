package designer

import (
	"errors"
	"fmt"
)

// DesignError represents a failure to interpret a design request.
type DesignError struct {
	// Code identifies the error category.
	Code DesignErrorCode

	// Message is a human-readable description.
	Message string
}

// DesignErrorCode categorizes design errors.
type DesignErrorCode string

const (
	// ErrCodeUnrecognizedDescription indicates an empty or blank description.
	ErrCodeUnrecognizedDescription DesignErrorCode = "UNRECOGNIZED_DESCRIPTION"

	// ErrCodeUnknownDirection indicates a variation direction outside the
	// supported set.
	ErrCodeUnknownDirection DesignErrorCode = "UNKNOWN_DIRECTION"
)

// Error implements the error interface.
func (e *DesignError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnrecognizedDescriptionError creates a DesignError for an
// uninterpretable description.
func NewUnrecognizedDescriptionError(description string) *DesignError {
	return &DesignError{
		Code:    ErrCodeUnrecognizedDescription,
		Message: fmt.Sprintf("cannot interpret description %q; describe a surface such as \"glossy\" or \"matte\"", description),
	}
}

// NewUnknownDirectionError creates a DesignError for an unsupported
// variation direction.
func NewUnknownDirectionError(direction string) *DesignError {
	return &DesignError{
		Code:    ErrCodeUnknownDirection,
		Message: fmt.Sprintf("unknown variation direction %q", direction),
	}
}

// IsUnrecognizedDescriptionError reports whether err is an unrecognized
// description error. Uses errors.As to handle wrapped errors.
func IsUnrecognizedDescriptionError(err error) bool {
	var de *DesignError
	return errors.As(err, &de) && de.Code == ErrCodeUnrecognizedDescription
}

// IsUnknownDirectionError reports whether err is an unknown direction error.
func IsUnknownDirectionError(err error) bool {
	var de *DesignError
	return errors.As(err, &de) && de.Code == ErrCodeUnknownDirection
}
