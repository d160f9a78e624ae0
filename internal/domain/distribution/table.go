// Package distribution builds binned probability tables over discrete
// scores and derives cumulative probabilities and percentile ranks.
package distribution

import (
	"fmt"
	"math"
	"strconv"
)

// Row is one probability-table entry. Exactly one row exists per integer
// score in the edge range, in ascending score order.
type Row struct {
	Score                 int     // bin label, the lower edge of the bin
	Count                 int     // raw values assigned to the bin
	Probability           float64 // count / total, exactly 0 for empty bins
	Percentage            string  // display form of Probability, e.g. "25 %"
	CumulativeProbability float64 // running sum of Probability, score-ascending
	Percentile            string  // display form of CumulativeProbability, e.g. "100 th"
}

// Summary is the lookup result for a single score.
type Summary struct {
	Percentage string
	Percentile string
}

// Table is a probability table ordered ascending by score.
type Table []Row

// Build bins the raw values into unit-width intervals and derives the
// cumulative and display columns. Interval membership is first-match-wins
// over [e[i], e[i+1]) checks, with the final interval closed on both ends,
// so every value lands in exactly one bin. A value no interval accepts
// fails the build with ErrDomainCoverage.
func Build(values []int, edges Edges) (Table, error) {
	if err := edges.Validate(); err != nil {
		return nil, err
	}

	counts := make([]int, edges.Bins())
	for _, v := range values {
		idx, ok := assign(v, edges)
		if !ok {
			return nil, fmt.Errorf("%w: value %d outside edges [%d, %d]",
				ErrDomainCoverage, v, edges[0], edges[len(edges)-1])
		}
		counts[idx]++
	}

	total := len(values)
	table := make(Table, edges.Bins())
	cumulative := 0.0
	for i, c := range counts {
		p := 0.0
		if total > 0 {
			p = float64(c) / float64(total)
		}
		cumulative += p
		table[i] = Row{
			Score:                 edges[i],
			Count:                 c,
			Probability:           p,
			Percentage:            displayPercent(p) + " %",
			CumulativeProbability: cumulative,
			Percentile:            displayPercent(cumulative) + " th",
		}
	}
	return table, nil
}

// assign returns the index of the first interval containing v.
func assign(v int, edges Edges) (int, bool) {
	last := edges.Bins() - 1
	for i := 0; i <= last; i++ {
		if v >= edges[i] && v < edges[i+1] {
			return i, true
		}
		if i == last && v == edges[i+1] {
			return i, true
		}
	}
	return 0, false
}

// displayPercent rounds p to 3 decimal places and scales it to percent.
// Rounding happens in per-mille space so the formatted value stays exact
// for the display column; the unrounded probability is what feeds the
// cumulative sum.
func displayPercent(p float64) string {
	perMille := math.Round(p * 1000)
	return strconv.FormatFloat(perMille/10, 'f', -1, 64)
}

// Lookup returns the display percentage and percentile rank for score.
// A score outside the table range is a lookup miss, not an error.
func (t Table) Lookup(score int) (Summary, bool) {
	row, ok := t.RowOf(score)
	if !ok {
		return Summary{}, false
	}
	return Summary{Percentage: row.Percentage, Percentile: row.Percentile}, true
}

// RowOf returns the full table row for score.
func (t Table) RowOf(score int) (Row, bool) {
	if len(t) == 0 {
		return Row{}, false
	}
	i := score - t[0].Score
	if i < 0 || i >= len(t) {
		return Row{}, false
	}
	return t[i], true
}

// TotalProbability returns the probability mass captured by the table.
// It equals 1 when every raw value fell inside the edge range.
func (t Table) TotalProbability() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].CumulativeProbability
}
