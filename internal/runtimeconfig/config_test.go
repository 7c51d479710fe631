package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsInconsistentConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing content dir",
			mutate:  func(cfg *Config) { cfg.Corpus.ContentDir = "  " },
			wantErr: ErrContentDirRequired,
		},
		{
			name: "storage without dsn",
			mutate: func(cfg *Config) {
				cfg.Storage.Enabled = true
				cfg.Storage.DSN = ""
			},
			wantErr: ErrStorageDSNRequired,
		},
		{
			name: "unknown storage driver",
			mutate: func(cfg *Config) {
				cfg.Storage.Enabled = true
				cfg.Storage.Driver = "postgres"
			},
			wantErr: ErrStorageDriverUnknown,
		},
		{
			name:    "cache without storage",
			mutate:  func(cfg *Config) { cfg.Cache.Enabled = true },
			wantErr: ErrCacheRequiresStorage,
		},
		{
			name: "schema path and definition",
			mutate: func(cfg *Config) {
				cfg.Schema.Path = "schema.json"
				cfg.Schema.Definition = map[string]any{"type": "object"}
			},
			wantErr: ErrSchemaSourceConflict,
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: ErrLoggingLevelInvalid,
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
