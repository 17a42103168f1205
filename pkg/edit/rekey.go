// Package edit reshapes records inside a collection: re-keying, column type
// coercion, value removal, nested path assignment and column renames.
//
// Functions returning a collection leave their input untouched. SetKeyPath,
// MoveToSubarray and RenameColumn mutate the records they are given.
package edit

import (
	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// DigitToKey re-keys c by each record's newKey value, turning a positional
// result set into one keyed by entity. A later record with a duplicate key
// value overwrites the earlier one in its position. With keyUnset the newKey
// column is removed from the re-keyed records.
func DigitToKey(c *types.Collection, newKey string, keyUnset bool) (*types.Collection, error) {
	if newKey == "" {
		return nil, rkerrors.InvalidInput("edit: empty key provided to DigitToKey")
	}

	out := types.New()
	for _, e := range c.Entries() {
		r, ok := types.AsRecord(e.Value)
		if !ok {
			return nil, rkerrors.MalformedInput("edit: entry %q is not a record", e.Key)
		}
		val, ok := r[newKey]
		if !ok {
			return nil, rkerrors.MissingField(newKey)
		}
		k, ok := types.KeyOf(val)
		if !ok {
			return nil, rkerrors.MalformedInput("edit: value of %q in entry %q cannot be a key (%s)", newKey, e.Key, types.TypeName(val))
		}
		if keyUnset {
			r = r.Without(newKey)
		} else {
			r = r.Clone()
		}
		out.Set(k, r)
	}
	return out, nil
}

// RemoveByValue returns c without the entries identical to value: same
// dynamic type and deep value, no coercion. With rekey the survivors are
// renumbered 0..n-1.
func RemoveByValue(c *types.Collection, value any, rekey bool) *types.Collection {
	out := types.New()
	c.Range(func(k types.Key, v any) bool {
		if !types.Identical(v, value) {
			out.Set(k, v)
		}
		return true
	})
	if rekey {
		out.Reindex()
	}
	return out
}
