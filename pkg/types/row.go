// Package types provides the core data types of recordkit: records, keyed
// collections of values, and the value ordering shared by every sorter.
package types

import "sort"

// Record represents a single row of tabular data, keyed by column name.
//
// Values are scalars (nil, bool, integers, floats, strings) or nested values
// (Record, map[string]any, []any, *Collection). Column order is not tracked.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Has reports whether the record carries the column, even with a nil value.
func (r Record) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Without returns a copy of the record lacking the given column.
func (r Record) Without(column string) Record {
	cp := make(Record, len(r))
	for k, v := range r {
		if k != column {
			cp[k] = v
		}
	}
	return cp
}

// Columns returns the record's column names in ascending order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// AsRecord returns v as a Record when it is a Record or a plain map[string]any.
func AsRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	default:
		return nil, false
	}
}
