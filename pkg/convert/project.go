// Package convert changes the shape of collections: projecting records to
// one column, turning key/value lists into records, reading attribute sets,
// and copying records onto Go values or protobuf structs.
package convert

import (
	"strings"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// MultiToSingle replaces each record of c by its column value, keeping the
// keys. A blank column yields an empty collection. A record lacking the
// column fails with a missing field error.
func MultiToSingle(c *types.Collection, column string) (*types.Collection, error) {
	out := types.New()
	if strings.TrimSpace(column) == "" {
		return out, nil
	}
	for _, e := range c.Entries() {
		r, ok := types.AsRecord(e.Value)
		if !ok || !r.Has(column) {
			return nil, rkerrors.MissingField(column).WithDetails(map[string]interface{}{
				"field": column,
				"key":   string(e.Key),
			})
		}
		out.Set(e.Key, r[column])
	}
	return out, nil
}

// ToMultiArray turns a key/value collection into an indexed collection of
// {names[0]: key, names[1]: value} records in entry order. Integer keys are
// emitted as int64.
func ToMultiArray(c *types.Collection, names []string) (*types.Collection, error) {
	if len(names) != 2 {
		return nil, rkerrors.InvalidInput("convert: expected 2 column names, got %d", len(names))
	}
	if names[0] == names[1] {
		return nil, rkerrors.InvalidInput("convert: key and value columns are both %q", names[0])
	}
	out := types.New()
	c.Range(func(k types.Key, v any) bool {
		out.Append(types.Record{names[0]: k.Value(), names[1]: v})
		return true
	})
	return out, nil
}
