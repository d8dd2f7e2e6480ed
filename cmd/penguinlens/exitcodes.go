package main

import "fmt"

// Exit codes for the penguinlens CLI.
const (
	ExitOK             = 0 // Command succeeded.
	ExitInvalidArgs    = 1 // Bad flags, unknown view or invalid config.
	ExitStartupFailure = 2 // Dataset or config could not be loaded, or the server failed to start.
	ExitRenderFailure  = 3 // A view could not be rendered or written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError with a formatted message.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
