package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export. Collections are converted to and
// from JSON values, so anything JSON can hold survives the trip.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a document from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*Document, error) {
	var root yaml.Node
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&root); err != nil {
		return nil, invalid("failed to parse YAML: %v", err)
	}

	mapping := &root
	if mapping.Kind == yaml.DocumentNode && len(mapping.Content) == 1 {
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, invalid("failed to parse YAML: document must be a mapping")
	}

	doc := NewDocument()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		var value any
		if err := mapping.Content[i+1].Decode(&value); err != nil {
			return nil, invalid("failed to parse YAML field %s: %v", name, err)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, invalid("failed to convert YAML field %s: %v", name, err)
		}
		doc.Collections[name] = raw
	}
	return doc, nil
}

// Export writes doc as YAML in field order
func (c *YAMLCodec) Export(doc *Document, w io.Writer) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range doc.Names() {
		var value any
		if raw := doc.Collections[name]; len(raw) > 0 {
			if err := json.Unmarshal(raw, &value); err != nil {
				return fmt.Errorf("failed to decode field %s: %w", name, err)
			}
		}
		var node yaml.Node
		if err := node.Encode(value); err != nil {
			return fmt.Errorf("failed to encode field %s: %w", name, err)
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&node,
		)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(mapping); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
