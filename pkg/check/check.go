// Package check provides structural predicates over collections.
package check

import (
	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// MultiDimOptions tunes IsMultiDimensional.
type MultiDimOptions struct {
	// EqualLength requires every nested value to have the same length.
	EqualLength bool

	// AllScalar requires every value to be scalar when the collection is
	// not multidimensional.
	AllScalar bool
}

// IsMultiDimensional reports whether every value of c is a nested structure.
// An empty collection is multidimensional.
//
// With EqualLength, a multidimensional collection whose nested values differ
// in length fails with a structural mismatch. With AllScalar, a collection
// that is not multidimensional fails unless every value is scalar.
func IsMultiDimensional(c *types.Collection, opts MultiDimOptions) (bool, error) {
	nested := 0
	c.Range(func(_ types.Key, v any) bool {
		if types.IsNested(v) {
			nested++
		}
		return true
	})

	if nested == c.Len() {
		if opts.EqualLength && c.Len() > 0 {
			want := types.Len(c.At(0).Value)
			for _, e := range c.Entries() {
				if n := types.Len(e.Value); n != want {
					return false, rkerrors.StructuralMismatch("entry %q has length %d, expected %d", e.Key, n, want)
				}
			}
		}
		return true, nil
	}

	if opts.AllScalar && !IsAllScalar(c) {
		return false, rkerrors.StructuralMismatch("collection mixes scalar and nested values")
	}
	return false, nil
}

// IsAssociative reports whether at least one key of c is not an integer key.
func IsAssociative(c *types.Collection) bool {
	for _, k := range c.Keys() {
		if !k.IsInt() {
			return true
		}
	}
	return false
}

// IsAllScalar reports whether no value of c is a nested structure.
func IsAllScalar(c *types.Collection) bool {
	all := true
	c.Range(func(_ types.Key, v any) bool {
		all = types.IsScalar(v)
		return all
	})
	return all
}
