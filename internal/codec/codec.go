// Package codec reads and writes the database interchange document in JSON
// and YAML.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// FieldOrder lists the known document fields in the order they are written.
// Unknown fields are kept and written after these, sorted by name.
var FieldOrder = []string{
	"tools",
	"toolCategories",
	"articles",
	"articleCategories",
	"resources",
	"resourceCategories",
	"styles",
	"messages",
	"makers",
	"makerAuthCodes",
	"makerProjects",
	"makerTeams",
}

// Document is the interchange document: named collections, each held as
// raw JSON
type Document struct {
	Collections map[string]json.RawMessage
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{Collections: make(map[string]json.RawMessage)}
}

// Names returns the field names present in d in write order
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Collections))
	for _, n := range FieldOrder {
		if _, ok := d.Collections[n]; ok {
			names = append(names, n)
		}
	}
	var extra []string
	for n := range d.Collections {
		if !slices.Contains(FieldOrder, n) {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// MarshalJSON writes the collections in field order
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range d.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v := d.Collections[n]
		if len(v) == 0 {
			v = json.RawMessage("null")
		}
		if err := json.Compact(&buf, v); err != nil {
			return nil, fmt.Errorf("field %s: %w", n, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of collections
func (d *Document) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("document must be a JSON object")
	}
	d.Collections = m
	return nil
}

// ErrInvalidDocument marks input that cannot be read as a document
var ErrInvalidDocument = errors.New("invalid document")

// invalid wraps a parse failure so callers can match ErrInvalidDocument
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// IsArray reports whether raw is a JSON array
func IsArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Importer parses documents in one format
type Importer interface {
	Parse(r io.Reader) (*Document, error)
	Format() string
}

// Exporter writes documents in one format
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Format() string
}

// Codec both parses and writes one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for "json" or "yaml"
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, invalid("unsupported format: %s", format)
	}
}

// ForPath returns the codec matching the extension of path. Unknown
// extensions read as JSON.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec()
	default:
		return NewJSONCodec()
	}
}
