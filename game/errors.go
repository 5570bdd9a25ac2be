package game

import "errors"

// Error taxonomy (spec §7). Invariant violations are bugs: the trainer is
// expected to crash loudly rather than silently continue on a corrupted
// history, so these are returned as plain errors for the caller to log
// fatally, not retried or swallowed.
var (
	// ErrInvalidInput marks a malformed action, wrong-length hand/board, or
	// an action requested outside the legal set.
	ErrInvalidInput = errors.New("game: invalid input")

	// ErrInvariantViolation marks a corrupted history: stacks+pot mismatch,
	// contribution mismatch after a call, round out of range, unknown node
	// type.
	ErrInvariantViolation = errors.New("game: invariant violation")
)
