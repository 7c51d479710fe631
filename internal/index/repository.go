package index

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrRecordNotFound reports a slug lookup miss.
var ErrRecordNotFound = errors.New("index: record not found")

// NotFoundError carries the missing slug for caller-facing messages.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Slug == "" {
		return ErrRecordNotFound.Error()
	}
	return fmt.Sprintf("%s: slug=%s", ErrRecordNotFound.Error(), e.Slug)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// NewRecordRepository builds the generic bun repository for Record rows.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Slug
		},
	})
}

// BunRecordRepository is the index-facing repository. Caching is optional
// and only applied when both the cache service and key serializer are set.
type BunRecordRepository struct {
	repo repository.Repository[*Record]
}

func NewBunRecordRepository(db *bun.DB) *BunRecordRepository {
	return NewBunRecordRepositoryWithCache(db, nil, nil)
}

func NewBunRecordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRecordRepository {
	base := NewRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunRecordRepository{repo: wrapped}
}

func (r *BunRecordRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("index repository create %s: %w", record.Slug, err)
	}
	return created, nil
}

func (r *BunRecordRepository) Update(ctx context.Context, record *Record) (*Record, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("index repository update %s: %w", record.Slug, err)
	}
	return updated, nil
}

func (r *BunRecordRepository) Delete(ctx context.Context, record *Record) error {
	if err := r.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("index repository delete %s: %w", record.Slug, err)
	}
	return nil
}

func (r *BunRecordRepository) GetBySlug(ctx context.Context, slug string) (*Record, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return record, nil
}

func (r *BunRecordRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("index repository list: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, slug string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Slug: slug}
	}
	return fmt.Errorf("index repository error: %w", err)
}

func wrapWithCache(base repository.Repository[*Record], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[*Record] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
