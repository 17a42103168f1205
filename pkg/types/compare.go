package types

import (
	"sort"
	"strings"
)

// Compare is the 3-way ordering shared by every sorter. It returns -1, 0 or 1.
//
// Rules, applied in order:
//   - nil or bool on either side: both sides compare by truthiness (false < true)
//   - two numbers compare numerically, integers exactly
//   - number and string: numerically if the string is numeric, otherwise the
//     number's string form against the string
//   - two strings: numerically if both are numeric, otherwise bytewise
//   - nested values sort after scalars
//   - two sequences: by length, then element-wise
//   - two records: by length, then by sorted column names and their values
func Compare(a, b any) int {
	if a == nil || b == nil || isBool(a) || isBool(b) {
		return compareBool(ToBool(a), ToBool(b))
	}

	aNested, bNested := IsNested(a), IsNested(b)
	switch {
	case aNested && bNested:
		return compareNested(a, b)
	case aNested:
		return 1
	case bNested:
		return -1
	}

	ai, aInt := toInt64(a)
	bi, bInt := toInt64(b)
	if aInt && bInt {
		return compareInt(ai, bi)
	}

	af, aNum := numberValue(a)
	bf, bNum := numberValue(b)
	as, aStr := a.(string)
	bs, bStr := b.(string)

	switch {
	case aNum && bNum:
		return compareFloat(af, bf)
	case aNum && bStr:
		if f, ok := numericString(bs); ok {
			return compareFloat(af, f)
		}
		return strings.Compare(ToString(a), bs)
	case aStr && bNum:
		if f, ok := numericString(as); ok {
			return compareFloat(f, bf)
		}
		return strings.Compare(as, ToString(b))
	case aStr && bStr:
		fa, okA := numericString(as)
		fb, okB := numericString(bs)
		if okA && okB {
			return compareFloat(fa, fb)
		}
		return strings.Compare(as, bs)
	}

	return strings.Compare(ToString(a), ToString(b))
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareNested(a, b any) int {
	if c := compareInt(int64(Len(a)), int64(Len(b))); c != 0 {
		return c
	}
	ra, aRec := AsRecord(a)
	rb, bRec := AsRecord(b)
	switch {
	case aRec && bRec:
		return compareRecords(ra, rb)
	case aRec:
		return 1
	case bRec:
		return -1
	}
	va, vb := sequenceValues(a), sequenceValues(b)
	for i := range va {
		if c := Compare(va[i], vb[i]); c != 0 {
			return c
		}
	}
	return 0
}

func sequenceValues(v any) []any {
	if c, ok := v.(*Collection); ok {
		return c.Values()
	}
	return v.([]any)
}

func compareRecords(a, b Record) int {
	cols := a.Columns()
	for _, col := range cols {
		bv, ok := b[col]
		if !ok {
			return 1
		}
		if c := Compare(a[col], bv); c != 0 {
			return c
		}
	}
	return 0
}

// CompareKeys orders collection keys: integer keys numerically, otherwise
// by the same rules as Compare applied to the key values.
func CompareKeys(a, b Key) int {
	return Compare(a.Value(), b.Value())
}

// SortValues sorts values in place with Compare, ascending or descending,
// keeping equal values in their original order.
func SortValues(values []any, desc bool) {
	sort.SliceStable(values, func(i, j int) bool {
		c := Compare(values[i], values[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}
