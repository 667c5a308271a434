package pipeline

import (
	"context"

	infra "github.com/jhutton/bank-exports/internal/infra/bigquery"
	"github.com/jhutton/bank-exports/internal/statement"
)

// ExportStore is the remote-table boundary the pipeline drives. The
// BigQuery repository implements it; tests substitute their own.
type ExportStore interface {
	// LoadRecords appends a normalized record set to the exports table,
	// blocking until the write completes or fails.
	LoadRecords(ctx context.Context, records []*statement.Record) error

	// RemoveDuplicates rewrites the table to its distinct rows and
	// reports how many rows were removed.
	RemoveDuplicates(ctx context.Context) (*infra.DedupResult, error)
}

// Archiver moves a processed file out of the exports directory. Optional;
// a nil Archiver means processed files stay where they are.
type Archiver interface {
	ArchiveFile(ctx context.Context, path string) (string, error)
}
