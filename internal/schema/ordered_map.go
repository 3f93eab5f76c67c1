package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered string-keyed map. Document mappings decode into
// it with their declaration order intact, and it serializes to JSON in the
// same order. There is no overwrite operation: Insert fails on a duplicate key.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// DuplicateKeyError reports a key inserted twice.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q", e.Key)
}

// Insert adds key. It fails with *DuplicateKeyError if key is already present.
func (m *Map[V]) Insert(key string, v V) error {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; exists {
		return &DuplicateKeyError{Key: key}
	}
	m.keys = append(m.keys, key)
	m.values[key] = v
	return nil
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	if !ok {
		return zero, false
	}
	return v, true
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (m *Map[V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", value.Line, kindName(value.Kind))
	}
	*m = Map[V]{values: make(map[string]V, len(value.Content)/2)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
		var v V
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if err := m.Insert(key, v); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
	}
	return nil
}

// MarshalJSON writes entries as a JSON object in insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := MarshalJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalJSON(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes v without HTML escaping so markup in string values
// survives verbatim. The trailing newline of the encoder is dropped.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
