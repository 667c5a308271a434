package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/jhutton/bank-exports/internal/archive"
	"github.com/jhutton/bank-exports/internal/config"
	infra "github.com/jhutton/bank-exports/internal/infra/bigquery"
	"github.com/jhutton/bank-exports/internal/logger"
	"github.com/jhutton/bank-exports/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Loading configuration")
	}

	// Flags override the environment
	flag.StringVar(&cfg.ProjectID, "project", cfg.ProjectID, "GCP project ID (required)")
	flag.StringVar(&cfg.Dataset, "dataset", cfg.Dataset, "BigQuery dataset ID")
	flag.StringVar(&cfg.Table, "table", cfg.Table, "BigQuery table name")
	flag.StringVar(&cfg.ExportsDir, "exports", cfg.ExportsDir, "Directory containing statement CSV exports")
	flag.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "Service account key file (empty = application default credentials)")
	flag.StringVar(&cfg.ArchiveBucket, "archive-bucket", cfg.ArchiveBucket, "GCS bucket for processed exports (empty = no archiving)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	table := infra.TableRef{Project: cfg.ProjectID, Dataset: cfg.Dataset, Table: cfg.Table}
	store, err := infra.NewExportsRepository(ctx, table, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Connecting to BigQuery")
	}
	defer store.Close()

	var archiver pipeline.Archiver
	if cfg.ArchiveBucket != "" {
		gcs, err := archive.NewGCSArchiver(ctx, cfg.ArchiveBucket, cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Connecting to GCS")
		}
		defer gcs.Close()
		archiver = gcs
	}

	log.Info().
		Str("table", table.String()).
		Str("exports_dir", cfg.ExportsDir).
		Msg("Starting upload run")

	state, err := pipeline.Run(ctx, cfg.ExportsDir, store, archiver)
	if err != nil {
		log.Fatal().Err(err).Msg("Upload run failed")
	}

	fmt.Println("All files have been processed and uploaded.")
	fmt.Printf("%d duplicate rows were removed.\n", state.Dedup.Removed)

	log.Info().
		Int("files", state.FilesUploaded).
		Int("records", state.RecordsLoaded).
		Int64("duplicates_removed", state.Dedup.Removed).
		Msg("Run complete")
}
