// Package frontmatter reads and writes the slide text-file format shared by
// every expose implementation: optional `key: value` header lines terminated
// by a line that is exactly `---` (optionally opened by one too), followed by
// a free-text body.
package frontmatter

import (
	"bytes"
	"strings"
)

// Delimiter terminates the header block.
const Delimiter = "---"

// Field is a single `key: value` header line.
type Field struct {
	Key   string
	Value string
}

// Document is a parsed slide text file.
type Document struct {
	Fields    []Field
	Body      string
	HadHeader bool
}

// Get returns the first value recorded for key.
func (d Document) Get(key string) (string, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Split separates the header block from the body.
//
// Carriage returns and trailing newlines are dropped first. With two or
// more lines that are exactly `---`, the header ends at the second one, so
// an opening delimiter is allowed; with one, it ends there. Without any,
// had is false and body is the full (normalized) input.
func Split(content []byte) (header []byte, body []byte, had bool) {
	normalized := bytes.TrimRight(bytes.ReplaceAll(content, []byte("\r"), nil), "\n")
	lines := bytes.Split(normalized, []byte("\n"))

	var delims []int
	for i, line := range lines {
		if string(line) == Delimiter {
			delims = append(delims, i)
		}
	}
	if len(delims) == 0 {
		return nil, normalized, false
	}

	end := delims[0]
	if len(delims) >= 2 {
		end = delims[1]
	}
	for _, line := range lines[:end] {
		header = append(header, line...)
		header = append(header, '\n')
	}
	return header, bytes.Join(lines[end+1:], []byte("\n")), true
}

// ParseFields parses header lines. Lines without a colon (including an
// opening delimiter), or with an empty key or value, are skipped. Keys and values split at the first colon.
func ParseFields(header []byte) []Field {
	var fields []Field
	for _, line := range strings.Split(string(header), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields
}

// Parse splits and parses a slide text file.
func Parse(content []byte) Document {
	header, body, had := Split(content)
	return Document{
		Fields:    ParseFields(header),
		Body:      string(body),
		HadHeader: had,
	}
}

// Render writes fields as `key: value` lines, the delimiter, then body.
// A trailing newline is added to a non-empty body that lacks one.
func Render(fields []Field, body string) []byte {
	var buf bytes.Buffer
	for _, f := range fields {
		buf.WriteString(f.Key)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteByte('\n')
	}
	buf.WriteString(Delimiter)
	buf.WriteByte('\n')
	buf.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
