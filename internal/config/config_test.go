package config

import (
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("BANK_EXPORTS_PROJECT", "my-project")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.ProjectID != "my-project" {
		t.Errorf("ProjectID = %q, want %q", cfg.ProjectID, "my-project")
	}
	if cfg.Dataset != "personal_finance" {
		t.Errorf("Dataset = %q, want default %q", cfg.Dataset, "personal_finance")
	}
	if cfg.Table != "nationwide_exports" {
		t.Errorf("Table = %q, want default %q", cfg.Table, "nationwide_exports")
	}
	if cfg.ExportsDir != "exports" {
		t.Errorf("ExportsDir = %q, want default %q", cfg.ExportsDir, "exports")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BANK_EXPORTS_PROJECT", "other-project")
	t.Setenv("BANK_EXPORTS_DATASET", "scratch")
	t.Setenv("BANK_EXPORTS_TABLE", "exports_test")
	t.Setenv("BANK_EXPORTS_DIR", "/tmp/exports")
	t.Setenv("BANK_EXPORTS_ARCHIVE_BUCKET", "my-archive")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Dataset != "scratch" || cfg.Table != "exports_test" {
		t.Errorf("table ref = %s.%s, want scratch.exports_test", cfg.Dataset, cfg.Table)
	}
	if cfg.ExportsDir != "/tmp/exports" {
		t.Errorf("ExportsDir = %q", cfg.ExportsDir)
	}
	if cfg.ArchiveBucket != "my-archive" {
		t.Errorf("ArchiveBucket = %q", cfg.ArchiveBucket)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				ProjectID:  "p",
				Dataset:    "d",
				Table:      "t",
				ExportsDir: "exports",
			},
		},
		{
			name:    "missing project",
			cfg:     Config{Dataset: "d", Table: "t", ExportsDir: "exports"},
			wantErr: true,
		},
		{
			name:    "missing dataset",
			cfg:     Config{ProjectID: "p", Table: "t", ExportsDir: "exports"},
			wantErr: true,
		},
		{
			name:    "missing table",
			cfg:     Config{ProjectID: "p", Dataset: "d", ExportsDir: "exports"},
			wantErr: true,
		},
		{
			name:    "missing exports dir",
			cfg:     Config{ProjectID: "p", Dataset: "d", Table: "t"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
