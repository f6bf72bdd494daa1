package tablemodel

import (
	"bytes"
	"encoding/json"
)

// Row one record returned by Read, keys keep the projection order
type Row struct {
	keys   []string
	values map[string]interface{}
}

// NewRow returns an empty row
func NewRow(capacity int) *Row {
	return &Row{keys: make([]string, 0, capacity), values: make(map[string]interface{}, capacity)}
}

// Set sets key, appending it when new
func (r *Row) Set(key string, value interface{}) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value of key
func (r *Row) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in order
func (r *Row) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len number of keys
func (r *Row) Len() int {
	return len(r.keys)
}

// Map returns a copy of the row as a map
func (r *Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the row as an object with keys in order
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, key := range r.keys {
		if idx > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
