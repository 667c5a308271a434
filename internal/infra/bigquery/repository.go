package bigquery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/jhutton/bank-exports/internal/statement"
)

// ExportsRepository holds a shared BigQuery client scoped to one exports
// table. Every remote operation goes through it, so callers can run
// against different tables (or substitute a fake) without shared state.
type ExportsRepository struct {
	client *bigquery.Client
	table  TableRef
}

// NewExportsRepository creates a repository with its own client. keyFile
// may be empty, in which case Application Default Credentials are used.
func NewExportsRepository(ctx context.Context, table TableRef, keyFile string) (*ExportsRepository, error) {
	var opts []option.ClientOption
	if keyFile != "" {
		opts = append(opts, option.WithCredentialsFile(keyFile))
	}

	client, err := bigquery.NewClient(ctx, table.Project, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewExportsRepository: bigquery client: %w", err)
	}

	return &ExportsRepository{client: client, table: table}, nil
}

// Close closes the BigQuery client connection.
func (r *ExportsRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Table returns the table this repository reads and writes.
func (r *ExportsRepository) Table() TableRef {
	return r.table
}

// LoadRecords appends a normalized record set to the exports table as a
// single batch load job and blocks until the remote side reports the job
// done or failed. A zero-row set is a no-op.
func (r *ExportsRepository) LoadRecords(ctx context.Context, records []*statement.Record) error {
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(RowFromRecord(rec)); err != nil {
			return fmt.Errorf("LoadRecords: encoding row: %w", err)
		}
	}

	source := bigquery.NewReaderSource(&buf)
	source.SourceFormat = bigquery.JSON
	source.Schema = ExportsSchema

	loader := r.client.DatasetInProject(r.table.Project, r.table.Dataset).Table(r.table.Table).LoaderFrom(source)
	loader.WriteDisposition = bigquery.WriteAppend
	loader.JobID = "exports-load-" + uuid.NewString()

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("LoadRecords: starting load job: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("LoadRecords: waiting for load job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("LoadRecords: load job error: %w", err)
	}

	return nil
}
