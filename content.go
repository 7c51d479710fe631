// Package content loads, validates, renders, and indexes front-matter
// documents stored as markdown files on disk.
package content

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/DeadKai/go-content/internal/corpus"
	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/internal/index"
	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/internal/logging/gologger"
	"github.com/DeadKai/go-content/internal/schema"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Document is the parsed representation of a single markdown file.
type Document = interfaces.Document

// Meta holds the key/value pairs parsed from a front-matter block.
type Meta = interfaces.Meta

// CorpusService exports the document loading contract.
type CorpusService = interfaces.CorpusService

// IndexService exports the index synchronisation contract.
type IndexService = interfaces.IndexService

// MetaValidator exports the metadata validation contract.
type MetaValidator = interfaces.MetaValidator

type (
	LoadOptions  = interfaces.LoadOptions
	ParseOptions = interfaces.ParseOptions
	SyncOptions  = interfaces.SyncOptions
	SyncResult   = interfaces.SyncResult
)

// FrontMatterOptions tunes date coercion during front-matter parsing.
type FrontMatterOptions = frontmatter.Options

// Parse splits source into front-matter metadata and the verbatim body.
func Parse(source []byte) (Meta, []byte, error) {
	return frontmatter.Parse(source)
}

// ParseWithOptions is Parse with explicit date coercion options.
func ParseWithOptions(source []byte, opts FrontMatterOptions) (Meta, []byte, error) {
	return frontmatter.ParseWithOptions(source, opts)
}

// Encode serialises metadata and body back into a front-matter document.
func Encode(meta Meta, body []byte) []byte {
	return frontmatter.Encode(meta, body)
}

// CompileSchema compiles a JSON Schema definition into a metadata validator.
func CompileSchema(definition map[string]any) (MetaValidator, error) {
	return schema.Compile(definition)
}

// Option overrides a dependency during module construction.
type Option func(*Module)

// WithLoggerProvider replaces the go-logger backed provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithMetaValidator replaces the schema-derived metadata validator.
func WithMetaValidator(validator interfaces.MetaValidator) Option {
	return func(m *Module) {
		m.validator = validator
	}
}

// WithDB reuses an existing bun handle instead of opening one from
// Config.Storage. The caller keeps ownership of the handle.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
		m.ownsDB = false
	}
}

// Module is the top level runtime facade wiring corpus, schema, and index
// services from a single Config.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	validator interfaces.MetaValidator
	corpus    *corpus.Service
	db        *bun.DB
	ownsDB    bool
	indexer   *index.Indexer
}

// New constructs a content module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.validator == nil {
		validator, err := buildValidator(cfg.Schema)
		if err != nil {
			return nil, err
		}
		m.validator = validator
	}

	corpusOpts := []corpus.ServiceOption{
		corpus.WithLogger(logging.CorpusLogger(m.provider)),
	}
	if m.validator != nil {
		corpusOpts = append(corpusOpts, corpus.WithValidator(m.validator))
	}

	service, err := corpus.NewService(corpus.Config{
		BasePath:  cfg.Corpus.ContentDir,
		Pattern:   cfg.Corpus.Pattern,
		Recursive: cfg.Corpus.Recursive,
		FrontMatter: frontmatter.Options{
			DateKeys:    cfg.FrontMatter.DateKeys,
			DateFormats: cfg.FrontMatter.DateFormats,
		},
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Parser.Extensions,
			HardWraps:  cfg.Parser.HardWraps,
			SafeMode:   cfg.Parser.SafeMode,
		},
	}, corpusOpts...)
	if err != nil {
		return nil, err
	}
	m.corpus = service

	if cfg.Storage.Enabled {
		if err := m.initStorage(); err != nil {
			m.Close()
			return nil, err
		}
	}

	return m, nil
}

func (m *Module) initStorage() error {
	if m.db == nil {
		sqldb, err := sql.Open("sqlite3", m.cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("open index database: %w", err)
		}
		m.db = bun.NewDB(sqldb, sqlitedialect.New())
		m.ownsDB = true
	}

	repo := index.NewBunRecordRepository(m.db)
	if m.cfg.Cache.Enabled {
		cacheCfg := repocache.DefaultConfig()
		if m.cfg.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = m.cfg.Cache.DefaultTTL
		}
		cacheSvc, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("initialise repository cache: %w", err)
		}
		repo = index.NewBunRecordRepositoryWithCache(m.db, cacheSvc, repocache.NewDefaultKeySerializer())
	}

	indexer, err := index.NewIndexer(repo, index.WithLogger(logging.IndexLogger(m.provider)))
	if err != nil {
		return err
	}
	m.indexer = indexer
	return nil
}

// Corpus returns the configured document loading service.
func (m *Module) Corpus() CorpusService {
	if m == nil {
		return nil
	}
	return m.corpus
}

// Index returns the configured index service, or nil when storage is disabled.
func (m *Module) Index() IndexService {
	if m == nil || m.indexer == nil {
		return nil
	}
	return m.indexer
}

// Validator returns the metadata validator, or nil when no schema is configured.
func (m *Module) Validator() MetaValidator {
	if m == nil {
		return nil
	}
	return m.validator
}

// LoggerProvider exposes the underlying provider for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// Logger returns a named child logger.
func (m *Module) Logger(name string) interfaces.Logger {
	if m == nil || m.provider == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.provider, name)
}

// DB exposes the index database handle, or nil when storage is disabled.
func (m *Module) DB() *bun.DB {
	if m == nil {
		return nil
	}
	return m.db
}

// EnsureIndexSchema creates the index tables when they do not exist yet.
func (m *Module) EnsureIndexSchema(ctx context.Context) error {
	if m == nil || m.db == nil {
		return nil
	}
	return index.CreateSchema(ctx, m.db)
}

// Close releases the index database when the module opened it.
func (m *Module) Close() error {
	if m == nil || m.db == nil || !m.ownsDB {
		return nil
	}
	db := m.db
	m.db = nil
	return db.Close()
}

func buildValidator(cfg SchemaConfig) (interfaces.MetaValidator, error) {
	if cfg.Definition != nil {
		return schema.Compile(cfg.Definition)
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return schema.CompileJSON(data)
}
