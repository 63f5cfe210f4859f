package interp

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RawTask is a task (or play) mapping as it appears in source, keeping
// the key order the document author wrote. Module detection depends on
// that order, so the ordered scan is an explicit contract here rather
// than an accident of decoding.
type RawTask struct {
	keys   []string
	fields map[string]any
	nodes  map[string]*yaml.Node
}

// UnmarshalYAML decodes a mapping node, recording key order.
func (t *RawTask) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %v (line %d)", node.Kind, node.Line)
	}
	t.fields = make(map[string]any, len(node.Content)/2)
	t.nodes = make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("decoding mapping key (line %d): %w", node.Content[i].Line, err)
		}
		var val any
		if err := node.Content[i+1].Decode(&val); err != nil {
			return fmt.Errorf("decoding value of %q: %w", key, err)
		}
		t.keys = append(t.keys, key)
		t.fields[key] = val
		t.nodes[key] = node.Content[i+1]
	}
	return nil
}

// Keys returns the top-level keys in source order.
func (t *RawTask) Keys() []string {
	return t.keys
}

// Get returns the decoded value of a key and whether it is present.
func (t *RawTask) Get(key string) (any, bool) {
	v, ok := t.fields[key]
	return v, ok
}

// Node returns the raw YAML node of a key, for callers that need to
// re-decode a value into an order-preserving shape.
func (t *RawTask) Node(key string) (*yaml.Node, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// StringValue returns the value of key formatted as a string, or empty
// when absent.
func (t *RawTask) StringValue(key string) string {
	if v, ok := t.fields[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
