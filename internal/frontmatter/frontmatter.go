// Package frontmatter reads and writes the delimited key-value header at the
// top of article documents.
package frontmatter

import "strings"

const delim = "---"

// Document is the result of splitting an article into header fields and body.
type Document struct {
	Fields map[string]string
	Keys   []string // header keys in document order
	Body   string
	// HasHeader reports whether a delimited header block was found.
	HasHeader bool
}

// Get returns the value of key, or "" when absent.
func (d *Document) Get(key string) string {
	return d.Fields[key]
}

// Bool reports whether key holds the literal "true".
func (d *Document) Bool(key string) bool {
	return d.Fields[key] == "true"
}

// Parse splits raw document text into header fields and body. Text without a
// header yields no fields and the whole input as body. Body is everything
// after the closing delimiter, leading newline included.
func Parse(data []byte) *Document {
	text := string(data)
	header, body, ok := split(text)
	if !ok {
		return &Document{Fields: map[string]string{}, Body: text}
	}

	fields, keys := decodeFlat(header)
	return &Document{Fields: fields, Keys: keys, Body: body, HasHeader: true}
}

// split finds a header that opens on the first line with "---" and closes on
// the next line consisting solely of "---".
func split(text string) (header, body string, ok bool) {
	first := strings.IndexByte(text, '\n')
	if first < 0 || strings.TrimRight(text[:first], "\r") != delim {
		return "", "", false
	}
	rest := text[first+1:]

	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		if end := strings.IndexByte(line, '\n'); end >= 0 {
			line = line[:end]
		}
		if strings.TrimRight(line, "\r") == delim {
			header = strings.TrimRight(rest[:offset], "\r\n")
			return header, rest[offset+len(line):], true
		}
		next := strings.IndexByte(rest[offset:], '\n')
		if next < 0 {
			break
		}
		offset += next + 1
	}
	return "", "", false
}

// decodeFlat reads "key: value" lines, splitting on the first colon. Values
// are kept verbatim apart from one matching pair of outer quotes: no comments,
// escapes or collections are interpreted. Lines without a colon are ignored.
func decodeFlat(header string) (map[string]string, []string) {
	fields := map[string]string{}
	var keys []string
	for _, line := range strings.Split(header, "\n") {
		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = Unquote(strings.TrimSpace(val))
		if _, seen := fields[key]; !seen {
			keys = append(keys, key)
		}
		fields[key] = val
	}
	return fields, keys
}

// Unquote strips one matching pair of outer single or double quotes.
func Unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
