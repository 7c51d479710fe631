package interfaces

import (
	"time"
)

// Meta is the parsed front-matter of a document: a flat mapping from key to
// value where every value is either a string or a time.Time. Key order is
// irrelevant and keys are unique.
type Meta map[string]any

// String returns the value for key when it is a string.
func (m Meta) String(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m[key].(string)
	return value, ok
}

// Time returns the value for key when it is a timestamp.
func (m Meta) Time(key string) (time.Time, bool) {
	if m == nil {
		return time.Time{}, false
	}
	value, ok := m[key].(time.Time)
	return value, ok
}

// Title returns the document title, or the empty string when absent.
func (m Meta) Title() string {
	title, _ := m.String("title")
	return title
}

// Date returns the document date when the front-matter carries one.
func (m Meta) Date() (time.Time, bool) {
	return m.Time("date")
}

// Clone returns a shallow copy so callers can mutate safely.
func (m Meta) Clone() Meta {
	if m == nil {
		return Meta{}
	}
	out := make(Meta, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}

// Document is the in-memory representation of one content file: parsed
// front-matter plus the untouched Markdown body. Documents are immutable
// once loaded; re-reading the file produces a new value.
type Document struct {
	// FilePath is the slash-separated path relative to the corpus root.
	FilePath string
	// Slug identifies the document within the corpus. It is taken from the
	// front-matter when present, otherwise derived from the file name.
	Slug string
	// Meta holds the parsed front-matter key/value pairs.
	Meta Meta
	// Body is the Markdown content after the front-matter block, verbatim.
	Body []byte
	// BodyHTML is the rendered body. Populated lazily so loaders stay cheap.
	BodyHTML []byte
	// Checksum is the SHA-256 of the raw file contents.
	Checksum []byte
	// LastModified mirrors the file modification time at load.
	LastModified time.Time
}
