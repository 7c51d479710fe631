package frontmatter

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/DeadKai/go-content/pkg/interfaces"
)

func TestEncode_RoundTrip(t *testing.T) {
	meta := interfaces.Meta{
		"title": "Hello, World",
		"date":  time.Date(2024, 12, 5, 11, 20, 0, 0, time.UTC),
		"tag":   "tricky = value",
	}
	body := []byte("# Heading\n\nSome `code` and a table | cell |.\n")

	encoded := Encode(meta, body)

	parsedMeta, parsedBody, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(parsedBody, body) {
		t.Fatalf("body must survive byte-identical, got %q", string(parsedBody))
	}
	if !reflect.DeepEqual(parsedMeta, meta) {
		t.Fatalf("metadata round-trip mismatch:\n got %#v\nwant %#v", parsedMeta, meta)
	}
}

func TestEncode_EmptyMeta(t *testing.T) {
	body := []byte("plain body\n")

	encoded := Encode(nil, body)
	if !bytes.Equal(encoded, body) {
		t.Fatalf("empty metadata must yield the body unchanged, got %q", string(encoded))
	}
	// The result is a copy, not an alias.
	encoded[0] = 'X'
	if body[0] == 'X' {
		t.Fatalf("Encode must not alias the caller's body")
	}
}

func TestEncode_SortedKeys(t *testing.T) {
	meta := interfaces.Meta{
		"zebra": "z",
		"alpha": "a",
	}

	encoded := string(Encode(meta, nil))
	if bytes.Index([]byte(encoded), []byte("alpha")) > bytes.Index([]byte(encoded), []byte("zebra")) {
		t.Fatalf("keys must be emitted sorted:\n%s", encoded)
	}
}
