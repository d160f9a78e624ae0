// Package dataset supplies the packaged tabular datasets consumed by the
// pipeline. Datasets are read-only, in-memory, and addressed by name.
package dataset

import (
	"context"

	"github.com/okian/scoredist/internal/domain/model"
)

// Provider gives read access to packaged datasets.
type Provider interface {
	// Load returns every record of the named dataset.
	// Returns ErrUnknownDataset if the name is not packaged.
	Load(ctx context.Context, name string) ([]model.Record, error)

	// Names lists the packaged dataset names in lexical order.
	Names() []string
}
