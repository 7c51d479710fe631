package index

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/DeadKai/go-content/pkg/interfaces"
	"github.com/DeadKai/go-content/pkg/testsupport"
)

func TestIndexer_Sync(t *testing.T) {
	ctx := context.Background()
	repo, bunDB := newTestRepository(t)

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	indexer, err := NewIndexer(repo,
		WithNow(func() time.Time { return now }),
		WithIDGenerator(sequentialUUIDs(
			"00000000-0000-0000-0000-000000000001",
			"00000000-0000-0000-0000-000000000002",
			"00000000-0000-0000-0000-000000000003",
		)),
	)
	if err != nil {
		t.Fatalf("NewIndexer: %v", err)
	}

	first := testDocument("hello-world", "Hello World", "First body")
	second := testDocument("docker-layers", "Docker Layers", "Second body")

	// Initial run creates both documents.
	result, err := indexer.Sync(ctx, []*interfaces.Document{first, second}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.CreatedIDs) != 2 || len(result.UpdatedIDs) != 0 {
		t.Fatalf("expected 2 creates, got %+v", result)
	}

	// A second run with identical content skips everything.
	result, err = indexer.Sync(ctx, []*interfaces.Document{first, second}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.SkippedIDs) != 2 || len(result.CreatedIDs) != 0 {
		t.Fatalf("expected 2 skips, got %+v", result)
	}

	// Changing a body updates only that record.
	changed := testDocument("hello-world", "Hello World", "Edited body")
	result, err = indexer.Sync(ctx, []*interfaces.Document{changed, second}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.UpdatedIDs) != 1 || len(result.SkippedIDs) != 1 {
		t.Fatalf("expected 1 update and 1 skip, got %+v", result)
	}

	stored, err := repo.GetBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if stored.Body != "Edited body" {
		t.Fatalf("update not persisted, got %q", stored.Body)
	}
	if stored.Title != "Hello World" {
		t.Fatalf("title not mapped, got %q", stored.Title)
	}

	// Dropping a document with DeleteOrphaned removes its record.
	result, err = indexer.Sync(ctx, []*interfaces.Document{changed}, interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Deleted != 1 {
		t.Fatalf("expected 1 deletion, got %+v", result)
	}
	if _, err := repo.GetBySlug(ctx, "docker-layers"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after orphan delete, got %v", err)
	}

	resetRecords(t, bunDB)
}

func TestIndexer_SyncDryRun(t *testing.T) {
	ctx := context.Background()
	repo, bunDB := newTestRepository(t)

	indexer, err := NewIndexer(repo)
	if err != nil {
		t.Fatalf("NewIndexer: %v", err)
	}

	doc := testDocument("dry-run-post", "Dry Run", "body")
	result, err := indexer.Sync(ctx, []*interfaces.Document{doc}, interfaces.SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.CreatedIDs) != 1 {
		t.Fatalf("dry run must still report the create, got %+v", result)
	}
	if _, err := repo.GetBySlug(ctx, "dry-run-post"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("dry run must not persist, got %v", err)
	}

	resetRecords(t, bunDB)
}

func TestIndexer_DuplicateSlugReported(t *testing.T) {
	ctx := context.Background()
	repo, bunDB := newTestRepository(t)

	indexer, err := NewIndexer(repo)
	if err != nil {
		t.Fatalf("NewIndexer: %v", err)
	}

	a := testDocument("same-slug", "A", "a")
	b := testDocument("same-slug", "B", "b")
	result, err := indexer.Sync(ctx, []*interfaces.Document{a, b}, interfaces.SyncOptions{})
	if err == nil {
		t.Fatalf("expected duplicate slug error")
	}
	if len(result.Errors) != 1 || len(result.CreatedIDs) != 1 {
		t.Fatalf("first document should land, second should error: %+v", result)
	}

	resetRecords(t, bunDB)
}

func TestRepository_WithCache(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if err := CreateSchema(ctx, bunDB); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := NewBunRecordRepositoryWithCache(bunDB, cacheSvc, repocache.NewDefaultKeySerializer())

	record := NewRecord(testDocument("cached-post", "Cached", "body"), uuid.New(), time.Now().UTC())
	if _, err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetBySlug(ctx, "cached-post")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Title != "Cached" {
		t.Fatalf("unexpected record: %+v", got)
	}

	resetRecords(t, bunDB)
}

func newTestRepository(tb testing.TB) (*BunRecordRepository, *bun.DB) {
	tb.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		tb.Fatalf("new sqlite db: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if err := CreateSchema(context.Background(), bunDB); err != nil {
		tb.Fatalf("create schema: %v", err)
	}
	return NewBunRecordRepository(bunDB), bunDB
}

// resetRecords clears the shared in-memory table between tests.
func resetRecords(tb testing.TB, bunDB *bun.DB) {
	tb.Helper()
	if _, err := bunDB.NewDelete().Model((*Record)(nil)).Where("1 = 1").Exec(context.Background()); err != nil {
		tb.Fatalf("reset records: %v", err)
	}
}

func testDocument(slug, title, body string) *interfaces.Document {
	sum := sha256.Sum256([]byte(body))
	return &interfaces.Document{
		FilePath: fmt.Sprintf("posts/%s.md", slug),
		Slug:     slug,
		Meta: interfaces.Meta{
			"title": title,
			"date":  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Body:         []byte(body),
		Checksum:     sum[:],
		LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func sequentialUUIDs(values ...string) func() uuid.UUID {
	parsed := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		parsed = append(parsed, uuid.MustParse(value))
	}
	index := 0
	return func() uuid.UUID {
		if index >= len(parsed) {
			return uuid.New()
		}
		next := parsed[index]
		index++
		return next
	}
}
