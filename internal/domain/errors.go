package domain

import "errors"

var (
	// ErrInvalidIntent marks malformed or contradictory input. Fails fast,
	// before any I/O; never retried.
	ErrInvalidIntent = errors.New("invalid trip intent")

	// ErrNoCandidates means every source for a required kind failed, or
	// every window produced zero packages.
	ErrNoCandidates = errors.New("no candidates available")

	// ErrUnknownProgram means the loyalty program code is not in the table.
	ErrUnknownProgram = errors.New("unknown loyalty program")

	// ErrNotFound is returned by repositories and remote sources for
	// missing records.
	ErrNotFound = errors.New("not found")
)
