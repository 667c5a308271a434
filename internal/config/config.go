package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds everything one upload run needs. Each component receives it
// (or a piece of it) explicitly; there are no process-wide singletons.
type Config struct {
	// ProjectID is the GCP project holding the exports table. Required.
	ProjectID string `env:"BANK_EXPORTS_PROJECT"`

	// Dataset and Table complete the three-part table name.
	Dataset string `env:"BANK_EXPORTS_DATASET" envDefault:"personal_finance"`
	Table   string `env:"BANK_EXPORTS_TABLE" envDefault:"nationwide_exports"`

	// ExportsDir is the directory scanned for .csv statement exports.
	ExportsDir string `env:"BANK_EXPORTS_DIR" envDefault:"exports"`

	// CredentialsFile is a service-account key path. Empty means
	// Application Default Credentials.
	CredentialsFile string `env:"BANK_EXPORTS_CREDENTIALS"`

	// ArchiveBucket, when set, receives processed files after upload.
	ArchiveBucket string `env:"BANK_EXPORTS_ARCHIVE_BUCKET"`
}

// FromEnv loads configuration from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("FromEnv: %w", err)
	}
	return cfg, nil
}

// Validate checks that the required fields are set.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if c.Dataset == "" {
		return errors.New("dataset is required")
	}
	if c.Table == "" {
		return errors.New("table is required")
	}
	if c.ExportsDir == "" {
		return errors.New("exports directory is required")
	}
	return nil
}
