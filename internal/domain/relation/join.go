// Package relation implements the table operations of the pipeline:
// a score-keyed left outer join and a group-mean aggregation.
package relation

import (
	"github.com/okian/scoredist/internal/domain/distribution"
	"github.com/okian/scoredist/internal/domain/model"
)

// JoinedRow is a raw record with its matching probability-table row
// attached. Dist is nil when the score has no table row.
type JoinedRow struct {
	model.Record
	Dist *distribution.Row
}

// LeftJoin attaches probability-table rows to the raw records by exact
// score equality. Every record is preserved in input order; table rows
// matching no record do not appear in the result.
func LeftJoin(records []model.Record, table distribution.Table) []JoinedRow {
	joined := make([]JoinedRow, len(records))
	for i, rec := range records {
		joined[i] = JoinedRow{Record: rec}
		if row, ok := table.RowOf(rec.Score); ok {
			r := row
			joined[i].Dist = &r
		}
	}
	return joined
}
