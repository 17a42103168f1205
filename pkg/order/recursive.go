package order

import (
	"github.com/recordkit/recordkit/pkg/types"
)

// RecursiveSort sorts c in place, depth first, by key or by value.
//
// Nested values are sorted before their parent: a nested *Collection is
// sorted in place, a nested []any is sorted in place by value, and a nested
// Record is replaced by an ordered *Collection since a map has no order.
// Sorting by value renumbers the keys 0..n-1; sorting by key keeps every
// value attached to its key. Sorting an already sorted value is a no-op.
func RecursiveSort(c *types.Collection, byKey, desc bool) {
	if c == nil {
		return
	}
	for _, e := range c.Entries() {
		if types.IsNested(e.Value) {
			c.Set(e.Key, sortNested(e.Value, byKey, desc))
		}
	}

	if byKey {
		c.SortStable(func(a, b types.Entry) bool {
			return less(types.CompareKeys(a.Key, b.Key), desc)
		})
		return
	}
	c.SortStable(func(a, b types.Entry) bool {
		return less(types.Compare(a.Value, b.Value), desc)
	})
	c.Reindex()
}

func sortNested(v any, byKey, desc bool) any {
	switch x := v.(type) {
	case *types.Collection:
		RecursiveSort(x, byKey, desc)
		return x
	case []any:
		for i, val := range x {
			if types.IsNested(val) {
				x[i] = sortNested(val, byKey, desc)
			}
		}
		switch {
		case !byKey:
			types.SortValues(x, desc)
		case desc:
			// Positions are keys; a descending key order needs explicit keys.
			nested := types.FromValues(x...)
			RecursiveSort(nested, byKey, desc)
			return nested
		}
		return x
	}
	if r, ok := types.AsRecord(v); ok {
		nested := types.FromMap(r)
		RecursiveSort(nested, byKey, desc)
		return nested
	}
	return v
}

func less(cmp int, desc bool) bool {
	if desc {
		return cmp > 0
	}
	return cmp < 0
}
