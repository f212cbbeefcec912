package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInstalled means the engine executable is absent at its expected
	// path; nothing was launched.
	ErrNotInstalled = errors.New("engine not installed")

	// ErrNoText means extraction succeeded but detected no text.
	ErrNoText = errors.New("no text found")

	// ErrEmptyTranslation means the translation engine reported success but
	// returned no translated text.
	ErrEmptyTranslation = errors.New("empty translation result")
)

// ProcessError reports a process-level failure: the engine could not be
// launched or exited nonzero. Stderr holds the decoded standard-error text.
type ProcessError struct {
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("engine process failed: %s", e.Stderr)
	}
	return fmt.Sprintf("engine process failed: %v", e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ReportedError carries an error the engine itself reported through its
// structured output (any code outside the success set).
type ReportedError struct {
	Message string
}

func (e *ReportedError) Error() string { return e.Message }

// MalformedOutputError means the engine's stdout did not contain a parseable
// payload under the documented wire contract.
type MalformedOutputError struct {
	Output string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed engine output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }
