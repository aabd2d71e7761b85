package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dict is an insertion-ordered string-to-value mapping. It is the currency
// of the dict boundary: ToDict produces one, FromDict consumes one, and its
// JSON form preserves key order on both directions.
type Dict struct {
	keys []string
	m    map[string]any
}

// NewDict creates an empty Dict.
func NewDict() *Dict {
	return &Dict{m: make(map[string]any)}
}

// Set stores a value, appending the key on first use.
func (d *Dict) Set(key string, v any) {
	if d.m == nil {
		d.m = make(map[string]any)
	}
	if _, ok := d.m[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.m[key] = v
}

// Get returns the value for a key.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Has reports whether the key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.m[key]
	return ok
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Pairs returns the entries as ordered construction fields.
func (d *Dict) Pairs() []Field {
	out := make([]Field, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, Field{Name: k, Value: d.m[k]})
	}
	return out
}

// MarshalJSON writes the entries as a JSON object in insertion order.
// A value the serializer cannot represent surfaces as SERIALIZATION_ERROR.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, newSerializationError(k, "to_json", err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(d.m[k])
		if err != nil {
			return nil, newSerializationError(k, "to_json", err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token by token so that key order
// survives the trip. Numbers without a fractional part decode as int64,
// the rest as float64. Nested objects decode as plain maps; nested values
// are passed through, never auto-expanded into records.
func (d *Dict) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	d.keys = nil
	d.m = make(map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for key %q: %w", key, err)
		}
		v, err := fromJSONValue(raw)
		if err != nil {
			return fmt.Errorf("value for key %q: %w", key, err)
		}
		d.Set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// fromJSONValue converts decoded JSON into the normalized value domain:
// json.Number becomes int64 when integral, float64 otherwise; containers
// are converted recursively.
func fromJSONValue(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", val)
		}
		return f, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			conv, err := fromJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			conv, err := fromJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	default:
		return v, nil
	}
}
