package edit

import (
	"strings"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Conversion names the target representation of a column coercion.
type Conversion int

const (
	ToNull Conversion = iota
	ToInt
	ToBool
	ToFloat
	ToString
	ToSequence
	ToStructure
)

var conversionNames = map[string]Conversion{
	"int":     ToInt,
	"integer": ToInt,
	"bool":    ToBool,
	"boolean": ToBool,
	"float":   ToFloat,
	"double":  ToFloat,
	"real":    ToFloat,
	"string":  ToString,
	"array":   ToSequence,
	"object":  ToStructure,
}

// ParseConversion maps a type name to its Conversion. Unknown names map to
// ToNull, which clears the column.
func ParseConversion(name string) Conversion {
	if c, ok := conversionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return ToNull
}

func (c Conversion) String() string {
	switch c {
	case ToInt:
		return "int"
	case ToBool:
		return "bool"
	case ToFloat:
		return "float"
	case ToString:
		return "string"
	case ToSequence:
		return "array"
	case ToStructure:
		return "object"
	default:
		return "null"
	}
}

// Apply converts v.
func (c Conversion) Apply(v any) any {
	switch c {
	case ToInt:
		return types.ToInt(v)
	case ToBool:
		return types.ToBool(v)
	case ToFloat:
		return types.ToFloat(v)
	case ToString:
		return types.ToString(v)
	case ToSequence:
		return types.ToSequence(v)
	case ToStructure:
		return types.ToStructure(v)
	default:
		return nil
	}
}

// ColumnsConversion returns a copy of c where every named column of every
// record is coerced with to. A column missing from a record is created by
// converting nil. Entries that are not records are kept unchanged.
func ColumnsConversion(c *types.Collection, columns []string, to Conversion) (*types.Collection, error) {
	if len(columns) == 0 {
		return nil, rkerrors.InvalidInput("edit: empty column list provided to ColumnsConversion")
	}
	for i, col := range columns {
		if col == "" {
			return nil, rkerrors.InvalidInput("edit: empty column name at index %d", i)
		}
	}

	out := types.New()
	c.Range(func(k types.Key, v any) bool {
		r, ok := types.AsRecord(v)
		if !ok {
			out.Set(k, v)
			return true
		}
		r = r.Clone()
		for _, col := range columns {
			r[col] = to.Apply(r[col])
		}
		out.Set(k, r)
		return true
	})
	return out, nil
}
