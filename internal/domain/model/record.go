// Package model contains domain models passed between pipeline stages.
package model

import "math"

// Record represents one subject row of a packaged dataset.
type Record struct {
	SubjectID string  // subject identifier, unique within a dataset
	Score     int     // discrete test score, bounded integer range
	Outcome   float64 // continuous outcome (e.g. GPA); NaN when missing
}

// HasOutcome reports whether the outcome value is present.
func (r Record) HasOutcome() bool {
	return !math.IsNaN(r.Outcome)
}

// GroupMean is the aggregate of the outcome column for one observed score.
type GroupMean struct {
	Score int     // group key
	Mean  float64 // NaN-excluded arithmetic mean; NaN when N is 0
	N     int     // number of non-missing outcomes in the group
}
