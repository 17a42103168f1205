package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON encodes a list as a JSON array and anything else as an object
// whose members follow the entry order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	if c.IsList() {
		buf.WriteByte('[')
		for i, e := range c.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(e.Value)
			if err != nil {
				return nil, fmt.Errorf("collection: encode index %d: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	buf.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(string(e.Key))
		buf.Write(kb)
		buf.WriteByte(':')
		b, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("collection: encode key %q: %w", e.Key, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a JSON array (keys 0..n-1) or object (keys in
// document order). Nested objects become Records, nested arrays []any and
// numbers int64 when integral, float64 otherwise.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	decoded, err := DecodeCollection(dec)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// DecodeCollection reads one JSON array or object from dec and returns it as
// a collection preserving member order.
func DecodeCollection(dec *json.Decoder) (*Collection, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, fmt.Errorf("collection: expected array or object, got %v", tok)
	}
	c := New()
	for dec.More() {
		var k Key
		if delim == '{' {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			k = Key(kt.(string))
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if delim == '[' {
			c.Append(FromJSONValue(raw))
		} else {
			c.Set(k, FromJSONValue(raw))
		}
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return c, nil
}

// FromJSONValue normalises a value decoded with json.Decoder.UseNumber:
// objects become Records and json.Number becomes int64 or float64.
func FromJSONValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		r := make(Record, len(x))
		for k, val := range x {
			r[k] = FromJSONValue(val)
		}
		return r
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = FromJSONValue(val)
		}
		return out
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}
