package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/glazecalc/internal/glaze"
)

// Exit codes. Operation failures (unknown material, unrecognized
// description) exit 1 after printing a tagged result; command errors
// (bad flags, unreadable recipe files) exit 2.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// ExitError carries an exit code with an error so commands can signal
// failure severity to main.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and context to an existing error.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode resolves an error to a process exit code. Errors that are
// not ExitErrors count as operation failures.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose/diagnostic output, defaults to Writer
	Verbose   bool
}

// Emit writes an operation result in the configured format. Results are
// already tagged with a success field, so JSON output prints them
// verbatim; text output renders a human-readable report. Failure
// results additionally yield an ExitError so the process exit code
// reflects them.
func (f *OutputFormatter) Emit(result any) error {
	if f.Format == "json" {
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return WrapExitError(ExitCommandError, "encoding output", err)
		}
	} else {
		fmt.Fprint(f.Writer, renderText(result))
	}
	if e, ok := result.(glaze.ErrorResponse); ok {
		return NewExitError(ExitFailure, e.Error)
	}
	return nil
}

// VerboseLog prints a diagnostic line when verbose mode is on. It goes
// to ErrWriter so JSON on stdout stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
