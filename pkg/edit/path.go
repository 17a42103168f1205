package edit

import (
	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// SetKeyPath assigns value at the nested path inside r, creating
// intermediate records as needed. A non-record value found along the path is
// replaced by a new record. r is modified in place.
func SetKeyPath(r types.Record, path []string, value any) error {
	if len(path) == 0 {
		return rkerrors.InvalidInput("edit: empty key path")
	}
	if r == nil {
		return rkerrors.InvalidInput("edit: nil record")
	}

	cur := r
	for _, key := range path[:len(path)-1] {
		next, ok := types.AsRecord(cur[key])
		if !ok {
			next = types.Record{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
	return nil
}

// MoveToSubarray moves the value under key to the nested path inside r.
// It does nothing when r lacks key. r is modified in place.
func MoveToSubarray(r types.Record, key string, path []string) error {
	if len(path) == 0 {
		return rkerrors.InvalidInput("edit: empty key path")
	}
	value, ok := r[key]
	if !ok {
		return nil
	}
	delete(r, key)
	return SetKeyPath(r, path, value)
}

// RenameColumn renames column oldName to newName in every record of c, in
// place. It stops with a missing field error at the first record lacking
// oldName; records before it stay renamed.
func RenameColumn(c *types.Collection, oldName, newName string) error {
	if oldName == "" || newName == "" {
		return rkerrors.InvalidInput("edit: empty column name provided to RenameColumn")
	}
	for _, e := range c.Entries() {
		r, ok := types.AsRecord(e.Value)
		if !ok || !r.Has(oldName) {
			return rkerrors.MissingField(oldName).WithDetails(map[string]interface{}{
				"field": oldName,
				"key":   string(e.Key),
			})
		}
		if oldName == newName {
			continue
		}
		r[newName] = r[oldName]
		delete(r, oldName)
	}
	return nil
}
