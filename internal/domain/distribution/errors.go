package distribution

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrBadEdges marks an edge set that cannot form unit-width bins.
	ErrBadEdges = errors.New("bad bin edges")

	// ErrDomainCoverage marks a raw value outside the declared edge range.
	// The edges do not cover the data domain; the run must abort.
	ErrDomainCoverage = errors.New("edges do not cover value domain")
)
