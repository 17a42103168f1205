// Package split partitions one collection into many: by column value, by
// position (top and bottom halves) or by hash bucket.
package split

import (
	"sort"
	"strconv"

	"github.com/maruel/natural"
	"golang.org/x/text/cases"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// KeyOptions tunes ByKey.
type KeyOptions struct {
	// Keys lists the expected partition keys (strings or integers). Records
	// matching none of them are dropped. When empty, the distinct values of
	// the column are used, in natural order.
	Keys []any

	// KeepColumn keeps the split column in the partitioned records.
	KeepColumn bool

	// CaseInsensitive folds the case of non-numeric keys and string values
	// before matching; keys differing only by case merge into one partition.
	CaseInsensitive bool
}

// ByKey splits c into partitions keyed by the value of column, saving
// repeated queries when one result set must be viewed per group.
//
// Values are matched by their string form. Records are copied into the
// partitions; c and its records are left untouched.
func ByKey(c *types.Collection, column string, opts KeyOptions) (*PartitionMap, error) {
	if column == "" {
		return nil, rkerrors.InvalidInput("split: empty column key")
	}
	if c.Len() == 0 {
		return newPartitionMap(nil), nil
	}

	keys := opts.Keys
	if len(keys) == 0 {
		keys = distinctValues(c, column)
	}

	var folder cases.Caser
	if opts.CaseInsensitive {
		folder = cases.Fold()
		folded := make([]any, len(keys))
		for i, k := range keys {
			if s, ok := k.(string); ok && !types.IsNumeric(s) {
				folded[i] = folder.String(s)
			} else {
				folded[i] = k
			}
		}
		keys = unique(folded)
	}

	names := make([]string, 0, len(keys))
	lookup := make(map[string]int, len(keys))
	for i, k := range keys {
		name, err := partitionName(i, k)
		if err != nil {
			return nil, err
		}
		if _, dup := lookup[name]; dup {
			continue
		}
		lookup[name] = len(names)
		names = append(names, name)
	}

	m := newPartitionMap(names)
	c.Range(func(_ types.Key, v any) bool {
		r, ok := types.AsRecord(v)
		if !ok {
			return true
		}
		val, ok := r[column]
		if !ok {
			return true
		}
		idx, found := -1, false
		if s, isStr := val.(string); isStr && opts.CaseInsensitive {
			idx, found = lookup[folder.String(s)]
		}
		if !found {
			idx, found = lookup[types.ToString(val)]
		}
		if !found {
			return true
		}
		if opts.KeepColumn {
			r = r.Clone()
		} else {
			r = r.Without(column)
		}
		m.parts[names[idx]].Append(r)
		return true
	})
	return m, nil
}

// partitionName validates a proposed partition key and returns its string form.
func partitionName(index int, k any) (string, error) {
	switch v := k.(type) {
	case nil:
		return "", rkerrors.InvalidPartitionKey("partition key at index %d is empty", index).
			WithDetails(map[string]interface{}{"index": index})
	case string:
		if v == "" {
			return "", rkerrors.InvalidPartitionKey("partition key at index %d is empty", index).
				WithDetails(map[string]interface{}{"index": index})
		}
		return v, nil
	}
	if types.IsInteger(k) {
		return strconv.FormatInt(types.ToInt(k), 10), nil
	}
	return "", rkerrors.InvalidPartitionKey("partition key at index %d is neither string nor integer (%s)", index, types.TypeName(k)).
		WithDetails(map[string]interface{}{"index": index})
}

// distinctValues collects the column values of c, de-duplicated by string
// form and naturally sorted by it.
func distinctValues(c *types.Collection, column string) []any {
	var values []any
	c.Range(func(_ types.Key, v any) bool {
		if r, ok := types.AsRecord(v); ok {
			if val, ok := r[column]; ok {
				values = append(values, val)
			}
		}
		return true
	})
	values = unique(values)
	sort.SliceStable(values, func(i, j int) bool {
		return natural.Less(types.ToString(values[i]), types.ToString(values[j]))
	})
	return values
}

// unique keeps the first value of every distinct string form.
func unique(values []any) []any {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		s := types.ToString(v)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, v)
	}
	return out
}
