package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrContentDirRequired = errors.New("content config: corpus content directory is required")
var ErrStorageDSNRequired = errors.New("content config: storage DSN is required when storage is enabled")
var ErrStorageDriverUnknown = errors.New("content config: storage driver is invalid")
var ErrCacheRequiresStorage = errors.New("content config: cache requires storage to be enabled")
var ErrLoggingLevelInvalid = errors.New("content config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("content config: logging format is invalid")
var ErrSchemaSourceConflict = errors.New("content config: schema path and inline definition are mutually exclusive")

// Config aggregates the knobs exposed by the content module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Corpus      CorpusConfig
	FrontMatter FrontMatterConfig
	Parser      ParserConfig
	Storage     StorageConfig
	Cache       CacheConfig
	Schema      SchemaConfig
	Logging     LoggingConfig
}

// CorpusConfig captures configuration for document discovery.
type CorpusConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
}

// FrontMatterConfig narrows which keys and layouts take part in date coercion.
// Empty slices keep the built-in behaviour.
type FrontMatterConfig struct {
	DateKeys    []string
	DateFormats []string
}

// ParserConfig seeds the default markdown rendering options.
type ParserConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// StorageConfig wires the document index database.
type StorageConfig struct {
	Enabled bool
	Driver  string
	DSN     string
}

// CacheConfig toggles read-through caching on the index repository.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// SchemaConfig points at an optional JSON Schema applied to document metadata.
// Path and Definition are alternatives; Definition wins when both are empty-safe.
type SchemaConfig struct {
	Path       string
	Definition map[string]any
}

// LoggingConfig captures options forwarded to the logger provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the baseline configuration used by the CLIs.
func DefaultConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		FrontMatter: FrontMatterConfig{},
		Parser:      ParserConfig{},
		Storage: StorageConfig{
			Driver: "sqlite3",
			DSN:    "file:content.db?_fk=1",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Corpus.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Storage.Enabled {
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
		if driver := strings.TrimSpace(cfg.Storage.Driver); driver != "" && driver != "sqlite3" {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
	}
	if cfg.Cache.Enabled && !cfg.Storage.Enabled {
		return ErrCacheRequiresStorage
	}
	if strings.TrimSpace(cfg.Schema.Path) != "" && cfg.Schema.Definition != nil {
		return ErrSchemaSourceConflict
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
