package pipeline

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	infra "github.com/jhutton/bank-exports/internal/infra/bigquery"
)

// State holds the shared state across all steps of one upload run.
type State struct {
	ExportsDir string
	UploadDate civil.Date

	Files         []string
	FilesUploaded int
	RecordsLoaded int
	Dedup         *infra.DedupResult
}

// Pipeline executes a sequence of steps in order, stopping at the first
// error. There is no recovery state: a failed step aborts the run.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Run drives a full upload cycle over the exports directory: every .csv
// file extracted and appended to the table, then one deduplication pass.
// The upload date stamped on every record is fixed once for the whole run.
func Run(ctx context.Context, exportsDir string, store ExportStore, archiver Archiver) (*State, error) {
	state := &State{
		ExportsDir: exportsDir,
		UploadDate: civil.DateOf(time.Now()),
	}

	if err := NewUploadPipeline(store, archiver).Execute(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}
