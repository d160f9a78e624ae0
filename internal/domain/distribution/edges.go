package distribution

import (
	"fmt"
)

// Edges is a contiguous ascending set of integer bin edges. n edges form
// n-1 unit-width bins; bin i covers [e[i], e[i+1]), except the final bin
// which is closed on both ends.
type Edges []int

// UnitEdges builds the edge set covering every integer score in [lo, hi].
func UnitEdges(lo, hi int) (Edges, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: empty score range [%d, %d]", ErrBadEdges, lo, hi)
	}
	e := make(Edges, 0, hi-lo+2)
	for v := lo; v <= hi+1; v++ {
		e = append(e, v)
	}
	return e, nil
}

// Validate checks that the edges form at least one unit-width bin.
func (e Edges) Validate() error {
	if len(e) < 2 {
		return fmt.Errorf("%w: need at least two edges, got %d", ErrBadEdges, len(e))
	}
	for i := 1; i < len(e); i++ {
		if e[i] != e[i-1]+1 {
			return fmt.Errorf("%w: edges %d and %d are not contiguous", ErrBadEdges, e[i-1], e[i])
		}
	}
	return nil
}

// Bins returns the number of bins formed by the edges.
func (e Edges) Bins() int {
	if len(e) < 2 {
		return 0
	}
	return len(e) - 1
}

// Low returns the lowest score covered by the edges.
func (e Edges) Low() int { return e[0] }

// High returns the highest bin label, the lower edge of the final bin.
func (e Edges) High() int { return e[len(e)-1] - 1 }
