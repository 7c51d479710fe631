package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// ParseOptions tune Markdown rendering.
type ParseOptions struct {
	// Extensions selects goldmark extensions by name (gfm, table, footnote...).
	Extensions []string
	// Sanitize strips raw HTML from the rendered output.
	Sanitize bool
	// HardWraps renders single newlines as <br>.
	HardWraps bool
	// SafeMode disables raw HTML passthrough.
	SafeMode bool
}

// LoadOptions provide call-specific overrides for corpus loading.
type LoadOptions struct {
	// Pattern overrides the configured glob (doublestar syntax, e.g. "**/*.md").
	Pattern string
	// Recursive overrides the configured directory traversal behaviour.
	Recursive *bool
	// RenderHTML populates Document.BodyHTML during load.
	RenderHTML bool
	// Parser overrides rendering options when RenderHTML is set.
	Parser ParseOptions
}

// CorpusService loads and renders front-matter documents from a filesystem.
type CorpusService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// MetaValidator checks parsed front-matter against a metadata schema.
type MetaValidator interface {
	ValidateMeta(meta Meta) error
}

// SyncOptions control how a batch of documents is reconciled into the index.
type SyncOptions struct {
	// DryRun collects the outcome without persisting anything.
	DryRun bool
	// DeleteOrphaned removes index records without a matching document.
	DeleteOrphaned bool
}

// SyncResult reports the outcome of an index reconciliation run.
type SyncResult struct {
	CreatedIDs []uuid.UUID
	UpdatedIDs []uuid.UUID
	SkippedIDs []uuid.UUID
	Deleted    int
	Errors     []error
}

// IndexService persists parsed documents so external collaborators can
// enumerate the corpus without re-reading every file.
type IndexService interface {
	Sync(ctx context.Context, docs []*Document, opts SyncOptions) (*SyncResult, error)
}
