// Package output provides structured output and error handling for the srcmd CLI.
package output

import "errors"

// Exit codes for the srcmd process:
// 0 = Success (document written)
// 1 = User error (bad flags, unreadable manifest)
// 2 = No candidate files found (nothing to bundle, no output written)
// 3 = System error (output open/write failure)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitNoFiles     = 2
	ExitSystemError = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad flag values, malformed manifest entries.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewNoFilesError creates an error for an empty discovery result (exit code 2).
// The locator found nothing to bundle; no output file is written.
func NewNoFilesError(message string) *ExitError {
	return &ExitError{
		Code:    ExitNoFiles,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 3).
// Use for: output file open/write errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}
