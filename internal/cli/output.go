package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/n1r/internal/neutro"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Demonstration/verification failure (protocol flaw, non-positive parameters, suite failure)
	ExitCommandError = 2 // Command error (invalid flags, missing files, database errors)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// numberOut is the JSON rendering of a neutrosophic number: decimal
// strings, since the components exceed any native JSON number range.
type numberOut struct {
	A string `json:"a"`
	B string `json:"b"`
}

func toNumberOut(n neutro.Number) numberOut {
	return numberOut{A: n.A.String(), B: n.B.String()}
}

// writeJSON writes v indented to w, matching the layout of the other
// JSON-producing commands.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// counts formats integers with grouping separators for text output
// ("10,000 trials").
var counts = message.NewPrinter(language.English)

// displayDigits bounds how many leading digits of a component are shown
// in text output; 2048-bit values would otherwise drown the report.
const displayDigits = 40

// formatNumber renders a number for text output, truncating each
// component to displayDigits digits.
func formatNumber(n neutro.Number) string {
	return fmt.Sprintf("%s + %sI", truncateDigits(n.A.String(), displayDigits), truncateDigits(n.B.String(), displayDigits))
}

func truncateDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
