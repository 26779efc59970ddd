package app

import "errors"

// ErrQuit signals that the terminal session should exit normally.
var ErrQuit = errors.New("quit requested")

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
