package index

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// ErrRepositoryRequired is returned when an Indexer is built without a store.
var ErrRepositoryRequired = errors.New("indexer: record repository is required")

// Indexer reconciles parsed documents into the persistent index.
type Indexer struct {
	repo   *BunRecordRepository
	logger interfaces.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

var _ interfaces.IndexService = (*Indexer)(nil)

// IndexerOption customises Indexer construction.
type IndexerOption func(*Indexer)

// WithLogger injects the indexer logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) IndexerOption {
	return func(i *Indexer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithNow overrides the clock, used by tests for stable timestamps.
func WithNow(now func() time.Time) IndexerOption {
	return func(i *Indexer) {
		if now != nil {
			i.now = now
		}
	}
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(gen func() uuid.UUID) IndexerOption {
	return func(i *Indexer) {
		if gen != nil {
			i.newID = gen
		}
	}
}

// NewIndexer builds an Indexer over the supplied repository.
func NewIndexer(repo *BunRecordRepository, opts ...IndexerOption) (*Indexer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	idx := &Indexer{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx, nil
}

// Sync reconciles docs into the index: unseen slugs are created, changed
// checksums updated, unchanged documents skipped. With DeleteOrphaned set,
// records whose slug no longer appears in docs are removed. DryRun collects
// the same outcome without persisting anything.
func (i *Indexer) Sync(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	acc := newSyncAccumulator()

	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if _, ok := seen[doc.Slug]; ok {
			acc.addError(errors.New("indexer: duplicate slug " + doc.Slug))
			continue
		}
		seen[doc.Slug] = struct{}{}

		if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, seen, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	result := acc.result()
	i.logger.Info("index.sync.completed",
		"created", len(result.CreatedIDs),
		"updated", len(result.UpdatedIDs),
		"skipped", len(result.SkippedIDs),
		"deleted", result.Deleted,
		"errors", len(result.Errors),
		"dry_run", opts.DryRun,
	)
	return result, firstError(result.Errors)
}

func (i *Indexer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	existing, err := i.repo.GetBySlug(ctx, doc.Slug)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return err
	}

	if existing == nil {
		if opts.DryRun {
			acc.created(uuid.Nil)
			return nil
		}
		record, createErr := i.repo.Create(ctx, NewRecord(doc, i.newID(), i.now()))
		if createErr != nil {
			return createErr
		}
		acc.created(record.ID)
		return nil
	}

	if existing.Checksum == hex.EncodeToString(doc.Checksum) {
		acc.skipped(existing.ID)
		return nil
	}

	if opts.DryRun {
		acc.updated(existing.ID)
		return nil
	}

	record := NewRecord(doc, existing.ID, i.now())
	updated, updateErr := i.repo.Update(ctx, record)
	if updateErr != nil {
		return updateErr
	}
	acc.updated(updated.ID)
	return nil
}

func (i *Indexer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.repo.List(ctx)
	if err != nil {
		return err
	}

	for _, record := range existing {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.repo.Delete(ctx, record); err != nil {
			return err
		}
		acc.deleted++
	}
	return nil
}

type syncAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	deleted    int
	errors     []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		errors:     []error{},
	}
}

func (a *syncAccumulator) created(id uuid.UUID) {
	a.createdIDs = append(a.createdIDs, id)
}

func (a *syncAccumulator) updated(id uuid.UUID) {
	a.updatedIDs = append(a.updatedIDs, id)
}

func (a *syncAccumulator) skipped(id uuid.UUID) {
	a.skippedIDs = append(a.skippedIDs, id)
}

func (a *syncAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		CreatedIDs: a.createdIDs,
		UpdatedIDs: a.updatedIDs,
		SkippedIDs: a.skippedIDs,
		Deleted:    a.deleted,
		Errors:     a.errors,
	}
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
