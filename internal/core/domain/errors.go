package domain

import "errors"

var (
	// ErrStateConflict is returned when an operation is requested while
	// the container is in a state that forbids it.
	ErrStateConflict = errors.New("container state conflict")

	// ErrNoConsoleBinding is returned when the inspected port bindings
	// contain zero or more than one entry for the console port. An
	// ambiguous or missing mapping is always an error, never guessed.
	ErrNoConsoleBinding = errors.New("no unambiguous console port binding")
)
