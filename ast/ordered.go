package ast

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a string-keyed map that remembers insertion order. The
// splitter and parser build mappings in parse order, and wildcard
// resolution depends on that order to assign the i-th wildcard to the
// i-th column, so a plain Go map (unordered) cannot stand in for it.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set inserts or overwrites the value for key. Overwriting an existing
// key does not change its position in Keys.
func (m *OrderedMap[V]) Set(key string, v V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Clone makes a shallow copy: values are copied by assignment, not
// deep-cloned.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	n := &OrderedMap[V]{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]V, len(m.values)),
	}
	for k, v := range m.values {
		n.values[k] = v
	}
	return n
}

// MarshalJSON emits the map as a JSON object with keys in insertion
// order, so debugging output stays stable across runs (encoding/json
// on a plain map would scramble key order).
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
