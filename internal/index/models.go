// Package index persists parsed documents into a bun-backed store so
// external collaborators (site generators, search tools) can enumerate the
// corpus without re-reading every file.
package index

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Record is the persisted shape of one corpus document.
type Record struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug      string         `bun:"slug,notnull,unique" json:"slug"`
	Title     string         `bun:"title" json:"title"`
	Date      *time.Time     `bun:"date,nullzero" json:"date,omitempty"`
	Path      string         `bun:"path,notnull" json:"path"`
	Checksum  string         `bun:"checksum,notnull" json:"checksum"`
	Meta      map[string]any `bun:"meta,type:jsonb" json:"meta,omitempty"`
	Body      string         `bun:"body" json:"body"`
	HTML      string         `bun:"html" json:"html,omitempty"`
	IndexedAt time.Time      `bun:"indexed_at,notnull" json:"indexed_at"`
}

// NewRecord maps a parsed document onto its persisted shape.
func NewRecord(doc *interfaces.Document, id uuid.UUID, now time.Time) *Record {
	record := &Record{
		ID:        id,
		Slug:      doc.Slug,
		Title:     doc.Meta.Title(),
		Path:      doc.FilePath,
		Checksum:  hex.EncodeToString(doc.Checksum),
		Meta:      map[string]any(doc.Meta.Clone()),
		Body:      string(doc.Body),
		HTML:      string(doc.BodyHTML),
		IndexedAt: now,
	}
	if date, ok := doc.Meta.Date(); ok {
		record.Date = &date
	}
	return record
}

// CreateSchema creates the documents table when it does not exist yet.
// Used by the bootstrap layer and tests; production setups may prefer their
// own migration tooling.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*Record)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
