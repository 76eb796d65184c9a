package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when the configured attempt limit
	// is reached with validation problems still outstanding.
	ErrAttemptsExhausted = errors.New("tui: attempts exhausted")
)
