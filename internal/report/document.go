// Package report builds and persists the JSON run report of a build.
package report

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value entry of a Document.
type Field struct {
	Key   string
	Value any
}

// Document is a JSON object that keeps its keys in insertion order.
type Document []Field

// With returns a copy of d with key set to value. An existing key keeps its
// position.
func (d Document) With(key string, value any) Document {
	out := make(Document, len(d), len(d)+1)
	copy(out, d)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Key: key, Value: value})
}

// Merge returns d followed by the fields of other, later keys overriding
// earlier ones in place.
func (d Document) Merge(other Document) Document {
	out := d
	for _, f := range other {
		out = out.With(f.Key, f.Value)
	}
	return out
}

// Get looks up key.
func (d Document) Get(key string) (any, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys lists the keys in order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for _, f := range d {
		keys = append(keys, f.Key)
	}
	return keys
}

func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
