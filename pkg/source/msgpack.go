package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/recordkit/recordkit/pkg/types"
)

func init() {
	RegisterFormat("msgpack", decodeMsgpack)
	RegisterFormat("mpk", decodeMsgpack)
}

// decodeMsgpack reads one msgpack array or map. Map entries keep their
// encoded order as collection keys. Integers decode as int64 or uint64.
func decodeMsgpack(r io.Reader) (*types.Collection, error) {
	dec := msgpack.NewDecoder(r)
	dec.UseLooseInterfaceDecoding(true)

	code, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	out := types.New()
	switch {
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			v, err := dec.DecodeInterfaceLoose()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Append(normalize(v))
		}
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			k, err := dec.DecodeInterfaceLoose()
			if err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
			key, ok := types.KeyOf(normalize(k))
			if !ok {
				return nil, fmt.Errorf("key %d: %T cannot be a key", i, k)
			}
			v, err := dec.DecodeInterfaceLoose()
			if err != nil {
				return nil, fmt.Errorf("value %q: %w", key, err)
			}
			out.Set(key, normalize(v))
		}
	default:
		return nil, fmt.Errorf("expected msgpack array or map, got code 0x%x", code)
	}
	return out, nil
}

// decodeMsgpackValue decodes a single msgpack value.
func decodeMsgpackValue(b []byte) (any, error) {
	var v any
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(bytes.NewReader(b))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}
