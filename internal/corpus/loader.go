package corpus

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	slug "github.com/goliatone/go-slug"

	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// LoaderConfig configures how content files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where content documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob
	// (doublestar syntax, defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// FrontMatter tunes value coercion during parsing.
	FrontMatter frontmatter.Options
}

// Loader turns filesystem paths into parsed documents.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	fmOpts    frontmatter.Options
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		fmOpts:    cfg.FrontMatter,
	}
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadParams provide call-specific overrides for pattern matching.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}

// LoadFile reads and parses a single content document.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadParams) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("corpus loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("corpus loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime(), l.fmOpts)
	if err != nil {
		return nil, err
	}

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

// LoadDirectory discovers content files under dir and returns parsed documents
// sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*DocumentResult

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.FilePath < results[j].Document.FilePath
	})

	return results, nil
}

// BuildDocument assembles a Document from the supplied path, raw content, and
// modification time. BodyHTML is intentionally left empty so callers can
// render lazily.
func BuildDocument(path string, source []byte, modified time.Time, opts frontmatter.Options) (*interfaces.Document, error) {
	meta, body, err := frontmatter.ParseWithOptions(source, opts)
	if err != nil {
		return nil, fmt.Errorf("corpus loader parse %s: %w", path, err)
	}

	sum := sha256.Sum256(source)

	return &interfaces.Document{
		FilePath:     path,
		Slug:         documentSlug(path, meta),
		Meta:         meta,
		Body:         body,
		Checksum:     sum[:],
		LastModified: modified,
	}, nil
}

// documentSlug prefers an explicit front-matter slug and falls back to the
// normalized file name.
func documentSlug(path string, meta interfaces.Meta) string {
	if explicit, ok := meta.String("slug"); ok {
		if trimmed := strings.TrimSpace(explicit); trimmed != "" {
			return trimmed
		}
	}

	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		return base
	}
	return normalized
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	cleanRoot := filepath.Clean(root)
	cleanCurrent := filepath.Clean(current)
	return cleanRoot == cleanCurrent
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	pattern = filepath.ToSlash(pattern)

	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	match, err := doublestar.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("corpus loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("corpus loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
