// Package corpus implements filesystem-backed loading of front-matter
// documents: discovery, parsing, metadata validation, and rendering.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/internal/render"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Config controls how the corpus service discovers and parses files.
type Config struct {
	BasePath    string
	Pattern     string
	Recursive   bool
	FrontMatter frontmatter.Options
	Parser      interfaces.ParseOptions
}

// Service implements interfaces.CorpusService for filesystem-backed documents.
type Service struct {
	cfg       Config
	renderer  *render.GoldmarkRenderer
	loader    *Loader
	validator interfaces.MetaValidator
	logger    interfaces.Logger
}

var _ interfaces.CorpusService = (*Service)(nil)

// ServiceOption customises Service construction.
type ServiceOption func(*Service)

// WithValidator applies metadata schema validation to every loaded document.
func WithValidator(validator interfaces.MetaValidator) ServiceOption {
	return func(s *Service) {
		s.validator = validator
	}
}

// WithLogger injects the service logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a corpus service rooted at cfg.BasePath.
func NewService(cfg Config, opts ...ServiceOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg, opts...)
}

// NewServiceWithFS constructs a corpus service over an explicit filesystem.
// Tests and embedded corpora use this to avoid touching the host disk.
func NewServiceWithFS(filesystem fs.FS, cfg Config, opts ...ServiceOption) (*Service, error) {
	if filesystem == nil {
		return nil, errors.New("corpus service: filesystem is required")
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:    cfg.BasePath,
		Pattern:     cfg.Pattern,
		Recursive:   cfg.Recursive,
		FrontMatter: cfg.FrontMatter,
	})

	svc := &Service{
		cfg:      cfg,
		renderer: render.NewGoldmarkRenderer(cfg.Parser),
		loader:   loader,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Load reads a single document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if err := s.validateDocument(result.Document); err != nil {
		return nil, err
	}
	if opts.RenderHTML {
		if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
	}
	return result.Document, nil
}

// LoadDirectory reads every document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.validateDocument(result.Document); err != nil {
			return nil, err
		}
		if opts.RenderHTML {
			if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
				return nil, err
			}
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})

	s.logger.Debug("corpus.load_directory", "dir", dir, "count", len(docs))
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured renderer.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.renderer.RenderWithOptions(markdown, render.MergeOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("corpus service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) validateDocument(doc *interfaces.Document) error {
	if s.validator == nil || doc == nil {
		return nil
	}
	if err := s.validator.ValidateMeta(doc.Meta); err != nil {
		return fmt.Errorf("corpus validate %s: %w", doc.FilePath, err)
	}
	return nil
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("corpus render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("corpus service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
