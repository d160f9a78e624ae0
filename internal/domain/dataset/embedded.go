package dataset

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/scoredist/internal/domain/model"
)

//go:embed data/*.csv
var packagedFS embed.FS

// Column layout of the packaged CSV files.
const (
	colSubjectID = 0
	colScore     = 1
	colOutcome   = 2
	columnCount  = 3
)

// Embedded is a Provider backed by CSV files compiled into the binary.
// The zero value is ready to use.
type Embedded struct{}

// NewEmbedded creates a provider over the packaged datasets.
func NewEmbedded() *Embedded {
	return &Embedded{}
}

// Names lists the packaged dataset names in lexical order.
func (e *Embedded) Names() []string {
	entries, err := fs.ReadDir(packagedFS, "data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".csv"))
	}
	sort.Strings(names)
	return names
}

// Load parses the named dataset. An empty outcome cell becomes NaN; any
// other malformed cell fails the load with ErrBadRecord.
func (e *Embedded) Load(ctx context.Context, name string) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", name, err)
	}

	f, err := packagedFS.Open(path.Join("data", name+".csv"))
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, ErrUnknownDataset)
	}
	defer f.Close() //nolint:errcheck // read-only embedded file

	r := csv.NewReader(f)
	r.FieldsPerRecord = columnCount

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w: %w", name, ErrBadRecord, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %q: %w: no header", name, ErrBadRecord)
	}

	// Skip the header row.
	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("dataset %q row %d: %w", name, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (model.Record, error) {
	score, err := strconv.Atoi(strings.TrimSpace(row[colScore]))
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: score %q", ErrBadRecord, row[colScore])
	}

	outcome := math.NaN()
	if cell := strings.TrimSpace(row[colOutcome]); cell != "" {
		outcome, err = strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.Record{}, fmt.Errorf("%w: outcome %q", ErrBadRecord, row[colOutcome])
		}
	}

	return model.Record{
		SubjectID: strings.TrimSpace(row[colSubjectID]),
		Score:     score,
		Outcome:   outcome,
	}, nil
}
