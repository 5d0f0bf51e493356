// Package apperrors defines the error types shared by the HTTP API and the
// command line front end.
package apperrors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the command line tool.
const (
	ExitSuccess      = 0 // Calculation completed.
	ExitErrorGeneric = 1 // Unexpected failure (I/O, configuration).
	ExitErrorInput   = 2 // The transmitter frequencies were rejected.
)

// InputError reports transmitter frequencies that cannot be screened. No
// products are generated when it is returned.
type InputError struct {
	// Field names the offending input ("f1", "f2").
	Field string
	// Message is shown to the user as is.
	Message string
}

// Error returns the user-facing message.
func (e InputError) Error() string { return e.Message }

// NewInputError creates an InputError for field with a formatted message.
func NewInputError(field, format string, a ...any) error {
	return InputError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// IsInputError reports whether err, or any error it wraps, is an InputError.
func IsInputError(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}

// ExitCode maps an error returned by a calculation to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsInputError(err):
		return ExitErrorInput
	default:
		return ExitErrorGeneric
	}
}
