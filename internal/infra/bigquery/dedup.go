package bigquery

import (
	"context"
	"fmt"
)

// DedupResult reports the outcome of a deduplication rewrite.
type DedupResult struct {
	Initial int64 // row count before the rewrite
	Final   int64 // row count after the rewrite
	Removed int64 // Initial - Final
}

// RowCount returns the current number of rows in the exports table.
func (r *ExportsRepository) RowCount(ctx context.Context) (int64, error) {
	q := r.client.Query(countQuery(r.table))

	it, err := q.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("RowCount: reading query: %w", err)
	}

	var row struct {
		Total int64 `bigquery:"total"`
	}
	if err := it.Next(&row); err != nil {
		return 0, fmt.Errorf("RowCount: iterating: %w", err)
	}

	return row.Total, nil
}

// RemoveDuplicates rewrites the exports table to its distinct-row
// projection and reports how many rows that removed. The before/after
// counts are not isolated from concurrent writers; the tool assumes it is
// the table's only writer while it runs.
func (r *ExportsRepository) RemoveDuplicates(ctx context.Context) (*DedupResult, error) {
	initial, err := r.RowCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("RemoveDuplicates: initial count: %w", err)
	}

	q := r.client.Query(dedupQuery(r.table))
	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("RemoveDuplicates: running rewrite query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("RemoveDuplicates: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("RemoveDuplicates: job error: %w", err)
	}

	final, err := r.RowCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("RemoveDuplicates: final count: %w", err)
	}

	return &DedupResult{
		Initial: initial,
		Final:   final,
		Removed: initial - final,
	}, nil
}

func countQuery(t TableRef) string {
	return fmt.Sprintf("SELECT COUNT(*) AS total FROM %s", t.Identifier())
}

func dedupQuery(t TableRef) string {
	return fmt.Sprintf("CREATE OR REPLACE TABLE %s AS\nSELECT DISTINCT * FROM %s", t.Identifier(), t.Identifier())
}
