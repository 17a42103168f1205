package order

import (
	"errors"
	"testing"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

func people() *types.Collection {
	return types.FromRecords([]types.Record{
		{"name": "carol", "age": int64(35), "city": "Oslo"},
		{"name": "alice", "age": int64(30), "city": "Bergen"},
		{"name": "bob", "age": int64(30), "city": "Oslo"},
		{"name": "dave", "age": "25", "city": "Bergen"},
	})
}

func names(c *types.Collection) []string {
	out := make([]string, 0, c.Len())
	for _, v := range c.Values() {
		out = append(out, v.(types.Record)["name"].(string))
	}
	return out
}

func assertNames(t *testing.T, c *types.Collection, want ...string) {
	t.Helper()
	got := names(c)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMultiArrSort_Basic(t *testing.T) {
	sorted := MultiArrSort(people(), "age", false)
	assertNames(t, sorted, "dave", "alice", "bob", "carol")

	keys := sorted.Keys()
	if keys[0] != "3" || keys[1] != "1" {
		t.Errorf("keys should travel with their records, got %v", keys)
	}
}

func TestMultiArrSort_Desc(t *testing.T) {
	sorted := MultiArrSort(people(), "age", true)
	// Equal ages keep input order in both directions.
	assertNames(t, sorted, "carol", "alice", "bob", "dave")
}

func TestMultiArrSort_DoesNotMutate(t *testing.T) {
	in := people()
	_ = MultiArrSort(in, "name", false)
	assertNames(t, in, "carol", "alice", "bob", "dave")
}

func TestMultiArrSort_EmptyColumn(t *testing.T) {
	if got := MultiArrSort(people(), "", false); got.Len() != 0 {
		t.Errorf("expected empty collection, got %d entries", got.Len())
	}
}

func TestMultiArrSort_NilCollection(t *testing.T) {
	got := MultiArrSort(nil, "x", false)
	if got == nil || got.Len() != 0 {
		t.Errorf("expected empty collection, got %v", got)
	}
}

func TestMultiArrSort_MissingColumnSortsAsNil(t *testing.T) {
	c := types.FromRecords([]types.Record{
		{"name": "x", "rank": int64(2)},
		{"name": "y"},
		{"name": "z", "rank": int64(1)},
	})
	assertNames(t, MultiArrSort(c, "rank", false), "y", "z", "x")
}

func TestBy_MultipleClauses(t *testing.T) {
	sorted := By(people(), Asc("city"), Desc("age"), Asc("name"))
	assertNames(t, sorted, "alice", "dave", "carol", "bob")
}

func TestTopN(t *testing.T) {
	c := types.New()
	for i := 0; i < 100; i++ {
		c.Append(types.Record{"name": "r", "val": int64(i)})
	}
	top := TopN(c, 3, Desc("val"))
	if top.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", top.Len())
	}
	for i, want := range []int64{99, 98, 97} {
		if got := top.At(i).Value.(types.Record)["val"]; got != want {
			t.Fatalf("row %d: expected %d, got %v", i, want, got)
		}
	}
	if TopN(people(), 10, Asc("name")).Len() != 4 {
		t.Error("TopN with n > len should return everything")
	}
}

func TestSortAndLimit_Offset(t *testing.T) {
	limit, offset := int64(2), int64(1)
	got := NewSorter(Asc("name")).SortAndLimit(people(), &limit, &offset)
	assertNames(t, got, "bob", "carol")

	past := int64(10)
	if NewSorter(Asc("name")).SortAndLimit(people(), nil, &past).Len() != 0 {
		t.Error("offset past the end should give an empty result")
	}
}

func TestParseClause(t *testing.T) {
	tests := []struct {
		in   string
		want Clause
	}{
		{"age", Asc("age")},
		{"age asc", Asc("age")},
		{"age DESC", Desc("age")},
		{"-age", Desc("age")},
	}
	for _, tt := range tests {
		got, err := ParseClause(tt.in)
		if err != nil {
			t.Fatalf("ParseClause(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseClause(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "age sideways", "a b c"} {
		if _, err := ParseClause(bad); !errors.Is(err, rkerrors.ErrInvalidInput) {
			t.Errorf("ParseClause(%q): expected invalid input, got %v", bad, err)
		}
	}
}
