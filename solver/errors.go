package solver

import "errors"

// ErrIOError marks a fatal startup failure: missing centroids or range maps
// (spec §7, "IOError").
var ErrIOError = errors.New("solver: missing required artifact, run the offline abstraction pipeline first")

// ErrOracleError marks a non-normalised equity oracle response surfaced
// upward without local retry (spec §7, "OracleError").
var ErrOracleError = errors.New("solver: equity oracle returned a non-normalised result")
