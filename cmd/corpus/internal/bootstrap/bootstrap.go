// Package bootstrap wires the content module for the corpus CLIs.
package bootstrap

import (
	"fmt"
	"strings"

	content "github.com/DeadKai/go-content"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Options captures configuration for corpus CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	SchemaPath     string
	StorageDSN     string
	CacheEnabled   bool
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the content module and the services the CLIs act on.
type Module struct {
	Module *content.Module
	Corpus interfaces.CorpusService
	Index  interfaces.IndexService
	Logger interfaces.Logger
}

// BuildModule constructs a content module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := content.DefaultConfig()

	cfg.Corpus.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Corpus.ContentDir == "" {
		cfg.Corpus.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Corpus.Pattern = trimmed
	}
	cfg.Corpus.Recursive = opts.Recursive
	cfg.Schema.Path = strings.TrimSpace(opts.SchemaPath)

	if dsn := strings.TrimSpace(opts.StorageDSN); dsn != "" {
		cfg.Storage.Enabled = true
		cfg.Storage.DSN = dsn
	} else {
		cfg.Storage.Enabled = false
	}
	cfg.Cache.Enabled = opts.CacheEnabled && cfg.Storage.Enabled

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	moduleOpts := []content.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, content.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := content.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise content module: %w", err)
	}

	return &Module{
		Module: module,
		Corpus: module.Corpus(),
		Index:  module.Index(),
		Logger: module.Logger("cli"),
	}, nil
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}
