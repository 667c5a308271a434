package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhutton/bank-exports/internal/logger"
	"github.com/jhutton/bank-exports/internal/statement"
)

// Step is a single stage of an upload run.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// DiscoverFilesStep lists the exports directory and keeps the .csv entries.
// os.ReadDir returns entries sorted by filename, so processing order is
// deterministic across platforms.
type DiscoverFilesStep struct{}

func (s *DiscoverFilesStep) Execute(ctx context.Context, state *State) error {
	entries, err := os.ReadDir(state.ExportsDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", state.ExportsDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		state.Files = append(state.Files, filepath.Join(state.ExportsDir, entry.Name()))
	}

	return nil
}

// ProcessFilesStep extracts and uploads each discovered file, one at a
// time, in order. The first failure aborts the run; files uploaded before
// it stay uploaded.
type ProcessFilesStep struct {
	Store    ExportStore
	Archiver Archiver // optional
}

func (s *ProcessFilesStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	for _, path := range state.Files {
		records, err := statement.ExtractFile(ctx, path, state.UploadDate)
		if err != nil {
			return err
		}

		if err := s.Store.LoadRecords(ctx, records); err != nil {
			return err
		}

		state.FilesUploaded++
		state.RecordsLoaded += len(records)
		log.Info().Str("file", path).Int("records", len(records)).Msg("Uploaded data to BigQuery")
		fmt.Printf("Uploaded data from %s to BigQuery\n", path)

		if s.Archiver != nil {
			uri, err := s.Archiver.ArchiveFile(ctx, path)
			if err != nil {
				return err
			}
			log.Info().Str("file", path).Str("object", uri).Msg("Archived export")
		}
	}

	return nil
}

// DeduplicateStep rewrites the table to its distinct rows. It runs exactly
// once per run, after every file has been processed, even when the run
// uploaded nothing.
type DeduplicateStep struct {
	Store ExportStore
}

func (s *DeduplicateStep) Execute(ctx context.Context, state *State) error {
	result, err := s.Store.RemoveDuplicates(ctx)
	if err != nil {
		return err
	}
	state.Dedup = result
	return nil
}

// NewUploadPipeline builds the standard three-step run: discover files,
// process each one, deduplicate the table.
func NewUploadPipeline(store ExportStore, archiver Archiver) *Pipeline {
	return NewPipeline(
		&DiscoverFilesStep{},
		&ProcessFilesStep{Store: store, Archiver: archiver},
		&DeduplicateStep{Store: store},
	)
}
