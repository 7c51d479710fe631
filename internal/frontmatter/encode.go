package frontmatter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Encode serialises metadata and body back into a native front-matter file.
// String values are always quoted and timestamps written as RFC 3339, so
// Parse(Encode(meta, body)) reconstructs the same metadata and a
// byte-identical body. Empty metadata yields the body unchanged.
func Encode(meta interfaces.Meta, body []byte) []byte {
	if len(meta) == 0 {
		return append([]byte(nil), body...)
	}

	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString(Delimiter)
	buf.WriteByte('\n')
	for _, key := range keys {
		buf.WriteString(key)
		buf.WriteString(" = ")
		buf.WriteString(encodeValue(meta[key]))
		buf.WriteByte('\n')
	}
	buf.WriteString(Delimiter)
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes()
}

func encodeValue(value any) string {
	switch typed := value.(type) {
	case time.Time:
		return typed.Format(time.RFC3339)
	case string:
		return strconv.Quote(typed)
	default:
		return strconv.Quote(fmt.Sprint(typed))
	}
}
