// Package frontmatter splits content files into metadata and Markdown body.
// The native format is a `+++` delimited block of `key = value` lines; YAML
// blocks delimited by `---` are accepted for compatibility and parsed through
// github.com/adrg/frontmatter.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	adrg "github.com/adrg/frontmatter"

	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Delimiter marks the native front-matter block boundaries.
const Delimiter = "+++"

const yamlDelimiter = "---"

// ErrMalformed reports an opening delimiter with no matching closing
// delimiter before end of input. It is the only parse failure mode.
var ErrMalformed = errors.New("frontmatter: missing closing delimiter")

// Options tune value coercion inside the front-matter block.
type Options struct {
	// DateKeys restricts timestamp coercion to the named keys. Empty means
	// any unquoted value that parses as a timestamp is coerced.
	DateKeys []string
	// DateFormats lists additional time layouts tried after the defaults.
	DateFormats []string
}

// dateLayouts are the ISO-8601-like layouts recognised by default.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse splits source into front-matter metadata and body using default
// options. The body is returned verbatim; when no front-matter block opens
// the input, the whole source is the body and the metadata is empty.
func Parse(source []byte) (interfaces.Meta, []byte, error) {
	return ParseWithOptions(source, Options{})
}

// ParseWithOptions behaves like Parse with caller supplied coercion rules.
func ParseWithOptions(source []byte, opts Options) (interfaces.Meta, []byte, error) {
	if startsWithDelimiter(source, Delimiter) {
		return parseNative(source, opts)
	}
	if startsWithDelimiter(source, yamlDelimiter) {
		return parseYAML(source, opts)
	}
	return interfaces.Meta{}, source, nil
}

func parseNative(source []byte, opts Options) (interfaces.Meta, []byte, error) {
	// Skip the opening delimiter line.
	offset := lineLength(source)

	meta := interfaces.Meta{}
	for offset < len(source) {
		length := lineLength(source[offset:])
		line := trimLineEnding(source[offset : offset+length])
		offset += length

		if isDelimiterLine(line, Delimiter) {
			return meta, source[offset:], nil
		}
		parseLine(meta, string(line), opts)
	}

	return nil, nil, ErrMalformed
}

// parseLine splits a block line on the first `=` and stores the coerced
// value. Blank lines and lines without a separator are skipped.
func parseLine(meta interfaces.Meta, line string, opts Options) {
	if strings.TrimSpace(line) == "" {
		return
	}
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return
	}
	key := strings.TrimSpace(line[:eq])
	if key == "" {
		return
	}
	raw := strings.TrimSpace(line[eq+1:])
	value, quoted := unquote(raw)
	meta[key] = coerce(key, value, quoted, opts)
}

// unquote strips one level of surrounding quotes. Double quoted values go
// through strconv.Unquote so escapes survive the round-trip with Encode.
func unquote(value string) (string, bool) {
	if len(value) < 2 {
		return value, false
	}
	switch {
	case value[0] == '"' && value[len(value)-1] == '"':
		if unquoted, err := strconv.Unquote(value); err == nil {
			return unquoted, true
		}
		return value[1 : len(value)-1], true
	case value[0] == '\'' && value[len(value)-1] == '\'':
		return value[1 : len(value)-1], true
	}
	return value, false
}

// coerce recognises ISO-8601-like timestamps in unquoted values. Quoting a
// value is the author's way of forcing a string, so quoted values are never
// coerced.
func coerce(key, value string, quoted bool, opts Options) any {
	if quoted || !dateKeyAllowed(key, opts.DateKeys) {
		return value
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	for _, layout := range opts.DateFormats {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return value
}

func dateKeyAllowed(key string, keys []string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, candidate := range keys {
		if candidate == key {
			return true
		}
	}
	return false
}

// parseYAML handles `---` delimited blocks through adrg/frontmatter so
// corpora mixing both conventions load with one call.
func parseYAML(source []byte, opts Options) (interfaces.Meta, []byte, error) {
	raw := map[string]any{}
	body, err := adrg.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	meta := make(interfaces.Meta, len(raw))
	for key, value := range raw {
		if text, ok := value.(string); ok {
			meta[key] = coerce(key, text, false, opts)
			continue
		}
		meta[key] = value
	}
	return meta, body, nil
}

func startsWithDelimiter(source []byte, delim string) bool {
	if !bytes.HasPrefix(source, []byte(delim)) {
		return false
	}
	rest := source[len(delim):]
	if len(rest) == 0 {
		return true
	}
	return rest[0] == '\n' || (rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n')
}

func isDelimiterLine(line []byte, delim string) bool {
	return string(bytes.TrimSpace(line)) == delim
}

// lineLength returns the byte length of the first line including its
// terminator, or the remaining length when no newline follows.
func lineLength(source []byte) int {
	if idx := bytes.IndexByte(source, '\n'); idx >= 0 {
		return idx + 1
	}
	return len(source)
}

func trimLineEnding(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}
