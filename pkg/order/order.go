// Package order sorts record collections: by one or more columns, or
// recursively by key or value through nested structures.
package order

import (
	"strings"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Clause is one column of a multi-column ordering.
type Clause struct {
	Column string `json:"column" yaml:"column"`
	Desc   bool   `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// Asc returns an ascending clause on column.
func Asc(column string) Clause { return Clause{Column: column} }

// Desc returns a descending clause on column.
func Desc(column string) Clause { return Clause{Column: column, Desc: true} }

// ParseClause parses "column", "column asc", "column desc" or "-column".
func ParseClause(s string) (Clause, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if col, ok := strings.CutPrefix(fields[0], "-"); ok && col != "" {
			return Desc(col), nil
		}
		return Asc(fields[0]), nil
	case 2:
		switch strings.ToLower(fields[1]) {
		case "asc":
			return Asc(fields[0]), nil
		case "desc":
			return Desc(fields[0]), nil
		}
	}
	return Clause{}, rkerrors.InvalidInput("order: cannot parse clause %q", s)
}

// Sorter orders collections of records by a list of clauses. Later clauses
// break ties left by earlier ones; rows equal on every clause keep their
// input order.
type Sorter struct {
	clauses []Clause
}

// NewSorter creates a sorter for the given clauses.
func NewSorter(clauses ...Clause) *Sorter {
	return &Sorter{clauses: clauses}
}

// Sort returns a sorted copy of c. Keys stay attached to their records.
func (s *Sorter) Sort(c *types.Collection) *types.Collection {
	out := c.Clone()
	if len(s.clauses) == 0 || out.Len() <= 1 {
		return out
	}
	out.SortStable(func(a, b types.Entry) bool {
		for _, clause := range s.clauses {
			cmp := types.Compare(columnValue(a.Value, clause.Column), columnValue(b.Value, clause.Column))
			if cmp == 0 {
				continue
			}
			if clause.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return out
}

// SortAndLimit sorts c and applies an optional offset and limit.
func (s *Sorter) SortAndLimit(c *types.Collection, limit, offset *int64) *types.Collection {
	sorted := s.Sort(c)
	entries := sorted.Entries()

	if offset != nil && *offset > 0 {
		off := int(*offset)
		if off >= len(entries) {
			return types.New()
		}
		entries = entries[off:]
	}
	if limit != nil && *limit >= 0 {
		if lim := int(*limit); lim < len(entries) {
			entries = entries[:lim]
		}
	}
	return types.FromEntries(entries)
}

// By returns c sorted by the given clauses.
func By(c *types.Collection, clauses ...Clause) *types.Collection {
	return NewSorter(clauses...).Sort(c)
}

// TopN returns the first n records of c in clause order.
func TopN(c *types.Collection, n int, clauses ...Clause) *types.Collection {
	limit := int64(n)
	return NewSorter(clauses...).SortAndLimit(c, &limit, nil)
}

// MultiArrSort returns c stably sorted by the value of column, ascending
// unless desc. Keys are preserved; records lacking the column sort as nil.
// An empty column yields an empty collection.
func MultiArrSort(c *types.Collection, column string, desc bool) *types.Collection {
	if column == "" {
		return types.New()
	}
	return NewSorter(Clause{Column: column, Desc: desc}).Sort(c)
}

func columnValue(v any, column string) any {
	if r, ok := types.AsRecord(v); ok {
		return r[column]
	}
	return nil
}
