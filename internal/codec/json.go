package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a document from JSON
func (c *JSONCodec) Parse(r io.Reader) (*Document, error) {
	doc := NewDocument()
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(doc); err != nil {
		return nil, invalid("failed to parse JSON: %v", err)
	}
	return doc, nil
}

// Export writes doc as indented JSON
func (c *JSONCodec) Export(doc *Document, w io.Writer) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	buf.WriteByte('\n')

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
