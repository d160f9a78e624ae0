package relation

import (
	"math"
	"sort"

	"github.com/okian/scoredist/internal/domain/model"
)

// MeanByScore partitions the joined rows by score and reduces each
// partition to the arithmetic mean of the outcome column. Missing (NaN)
// outcomes are excluded from both the sum and the count. Only scores
// actually present in rows are emitted, ascending by score; a group whose
// outcomes are all missing reports a NaN mean with N 0.
func MeanByScore(rows []JoinedRow) []model.GroupMean {
	type acc struct {
		sum float64
		n   int
	}
	byScore := make(map[int]*acc)
	for _, row := range rows {
		a, ok := byScore[row.Score]
		if !ok {
			a = &acc{}
			byScore[row.Score] = a
		}
		if row.HasOutcome() {
			a.sum += row.Outcome
			a.n++
		}
	}

	groups := make([]model.GroupMean, 0, len(byScore))
	for score, a := range byScore {
		mean := math.NaN()
		if a.n > 0 {
			mean = a.sum / float64(a.n)
		}
		groups = append(groups, model.GroupMean{Score: score, Mean: mean, N: a.n})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Score < groups[j].Score })
	return groups
}
