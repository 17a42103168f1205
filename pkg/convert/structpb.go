package convert

import (
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// ToStructs encodes every record of c as a protobuf Struct, in entry order.
// Numbers become doubles.
func ToStructs(c *types.Collection) ([]*structpb.Struct, error) {
	out := make([]*structpb.Struct, 0, c.Len())
	for _, e := range c.Entries() {
		r, ok := types.AsRecord(e.Value)
		if !ok {
			return nil, rkerrors.MalformedInput("convert: entry %q is not a record", e.Key)
		}
		s, err := structpb.NewStruct(plain(r).(map[string]any))
		if err != nil {
			return nil, rkerrors.Wrap(rkerrors.ErrCategorySchema, rkerrors.CodeSchemaMismatch,
				"convert: entry "+string(e.Key)+" has no protobuf form", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// FromStructs decodes protobuf Structs into an indexed collection of
// records. Integral numbers come back as int64.
func FromStructs(structs []*structpb.Struct) *types.Collection {
	out := types.New()
	for _, s := range structs {
		out.Append(fromPlain(s.AsMap()))
	}
	return out
}

// plain rewrites recordkit values into the shapes structpb accepts.
func plain(v any) any {
	switch x := v.(type) {
	case types.Record:
		return plain(map[string]any(x))
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = plain(val)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, val := range x {
			s[i] = plain(val)
		}
		return s
	case *types.Collection:
		if x.IsList() {
			return plain(x.Values())
		}
		return plain(types.ToStructure(x))
	}
	return v
}

func fromPlain(v any) any {
	switch x := v.(type) {
	case map[string]any:
		r := make(types.Record, len(x))
		for k, val := range x {
			r[k] = fromPlain(val)
		}
		return r
	case []any:
		for i, val := range x {
			x[i] = fromPlain(val)
		}
		return x
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
	}
	return v
}
