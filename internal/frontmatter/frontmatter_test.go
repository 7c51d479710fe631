package frontmatter

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	source := []byte("+++\ntitle = \"Hello\"\ndate = 2024-01-01T00:00:00Z\n+++\nBody text.")

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := meta.Title(); got != "Hello" {
		t.Fatalf("title mismatch, got %q", got)
	}
	date, ok := meta.Date()
	if !ok {
		t.Fatalf("date not coerced: %#v", meta["date"])
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("date mismatch, got %s want %s", date, want)
	}
	if string(body) != "Body text." {
		t.Fatalf("body mismatch, got %q", string(body))
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	source := []byte("# Just a heading\n\nNo metadata here.\n")

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
	if !bytes.Equal(body, source) {
		t.Fatalf("body must equal the entire input, got %q", string(body))
	}
}

func TestParse_Malformed(t *testing.T) {
	source := []byte("+++\ntitle = \"Broken\"\nNo closing delimiter follows.")

	_, _, err := Parse(source)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestParse_Fixture(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	meta, body, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := meta.Title(); got != "Understanding Docker Layers" {
		t.Fatalf("title mismatch, got %q", got)
	}
	if _, ok := meta.Date(); !ok {
		t.Fatalf("date not coerced: %#v", meta["date"])
	}
	if !strings.Contains(string(body), "```dockerfile") {
		t.Fatalf("body should keep code fences verbatim: %q", string(body))
	}
}

func TestParse_ValueRules(t *testing.T) {
	source := []byte(strings.Join([]string{
		"+++",
		"  spaced   =   trimmed value  ",
		"quoted = \"kept = as string\"",
		"single = 'also quoted'",
		"escaped = \"line\\nbreak\"",
		"",
		"this line has no separator",
		"empty =",
		"day = 2024-12-05",
		"stringy_date = \"2024-12-05\"",
		"+++",
		"body",
	}, "\n"))

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, _ := meta.String("spaced"); got != "trimmed value" {
		t.Fatalf("spaced mismatch: %q", got)
	}
	if got, _ := meta.String("quoted"); got != "kept = as string" {
		t.Fatalf("quoted mismatch: %q", got)
	}
	if got, _ := meta.String("single"); got != "also quoted" {
		t.Fatalf("single mismatch: %q", got)
	}
	if got, _ := meta.String("escaped"); got != "line\nbreak" {
		t.Fatalf("escaped mismatch: %q", got)
	}
	if got, _ := meta.String("empty"); got != "" {
		t.Fatalf("empty mismatch: %q", got)
	}
	if _, ok := meta["this line has no separator"]; ok {
		t.Fatalf("separator-less line must be skipped: %#v", meta)
	}
	if _, ok := meta.Time("day"); !ok {
		t.Fatalf("date-only value not coerced: %#v", meta["day"])
	}
	if _, ok := meta.String("stringy_date"); !ok {
		t.Fatalf("quoted timestamp must stay a string: %#v", meta["stringy_date"])
	}
	if string(body) != "body" {
		t.Fatalf("body mismatch: %q", string(body))
	}
}

func TestParse_CRLF(t *testing.T) {
	source := []byte("+++\r\ntitle = \"Windows\"\r\n+++\r\nbody\r\n")

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := meta.Title(); got != "Windows" {
		t.Fatalf("title mismatch: %q", got)
	}
	if string(body) != "body\r\n" {
		t.Fatalf("body mismatch: %q", string(body))
	}
}

func TestParseWithOptions_DateKeys(t *testing.T) {
	source := []byte("+++\ndate = 2024-01-01\nversion = 2024-01-01\n+++\n")

	meta, _, err := ParseWithOptions(source, Options{DateKeys: []string{"date"}})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if _, ok := meta.Time("date"); !ok {
		t.Fatalf("date key not coerced: %#v", meta["date"])
	}
	if _, ok := meta.String("version"); !ok {
		t.Fatalf("version must stay a string: %#v", meta["version"])
	}
}

func TestParseWithOptions_DateFormats(t *testing.T) {
	source := []byte("+++\ndate = 05/12/2024\n+++\n")

	meta, _, err := ParseWithOptions(source, Options{DateFormats: []string{"02/01/2006"}})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	date, ok := meta.Time("date")
	if !ok {
		t.Fatalf("custom layout not applied: %#v", meta["date"])
	}
	if date.Day() != 5 || date.Month() != time.December {
		t.Fatalf("unexpected date: %s", date)
	}
}

func TestParse_YAMLCompatibility(t *testing.T) {
	data := readFixture(t, "testdata/yaml.md")

	meta, body, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := meta.Title(); got != "Async Python Pitfalls" {
		t.Fatalf("title mismatch: %q", got)
	}
	if _, ok := meta.Time("date"); !ok {
		t.Fatalf("date not coerced from YAML block: %#v", meta["date"])
	}
	if !strings.Contains(string(body), "event loop") {
		t.Fatalf("body mismatch: %q", string(body))
	}
}

func TestParse_Idempotent(t *testing.T) {
	source := readFixture(t, "testdata/basic.md")

	_, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	meta, again, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse body: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("parsed body must yield empty metadata: %#v", meta)
	}
	if !bytes.Equal(again, body) {
		t.Fatalf("parsing a parsed body must not change it")
	}
}

func TestParse_Deterministic(t *testing.T) {
	source := readFixture(t, "testdata/basic.md")

	metaA, bodyA, errA := Parse(source)
	metaB, bodyB, errB := Parse(source)
	if errA != nil || errB != nil {
		t.Fatalf("Parse: %v / %v", errA, errB)
	}
	if !reflect.DeepEqual(metaA, metaB) {
		t.Fatalf("metadata differs between runs")
	}
	if !bytes.Equal(bodyA, bodyB) {
		t.Fatalf("body differs between runs")
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
