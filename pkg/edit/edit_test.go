package edit

import (
	"errors"
	"testing"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

func TestDigitToKey(t *testing.T) {
	c := types.FromRecords([]types.Record{
		{"id": int64(10), "name": "a"},
		{"id": int64(20), "name": "b"},
		{"id": int64(10), "name": "c"},
	})

	out, err := DigitToKey(c, "id", false)
	if err != nil {
		t.Fatal(err)
	}
	if keys := out.Keys(); len(keys) != 2 || keys[0] != "10" || keys[1] != "20" {
		t.Fatalf("unexpected keys %v", keys)
	}
	first, _ := out.Get("10")
	if first.(types.Record)["name"] != "c" {
		t.Error("duplicate key values should be last-write-wins")
	}
	if !first.(types.Record).Has("id") {
		t.Error("id should be kept without keyUnset")
	}

	unset, err := DigitToKey(c, "id", true)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := unset.Get("20")
	if r.(types.Record).Has("id") {
		t.Error("id should be removed with keyUnset")
	}
	orig, _ := c.Get("1")
	if !orig.(types.Record).Has("id") {
		t.Error("input records must not be modified")
	}
}

func TestDigitToKey_Errors(t *testing.T) {
	c := types.FromRecords([]types.Record{{"id": int64(1)}, {"name": "x"}})
	tests := []struct {
		name     string
		c        *types.Collection
		key      string
		sentinel error
	}{
		{"empty key", c, "", rkerrors.ErrInvalidInput},
		{"missing field", c, "id", rkerrors.ErrMissingField},
		{"nested key value", types.FromRecords([]types.Record{{"id": []any{1}}}), "id", rkerrors.ErrMalformedInput},
		{"not a record", types.FromValues(1, 2), "id", rkerrors.ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DigitToKey(tt.c, tt.key, false); !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestColumnsConversion_Scenario(t *testing.T) {
	c := types.FromRecords([]types.Record{{"n": "42"}})
	out, err := ColumnsConversion(c, []string{"n"}, ParseConversion("int"))
	if err != nil {
		t.Fatal(err)
	}
	r, _ := out.Get("0")
	if got, ok := r.(types.Record)["n"].(int64); !ok || got != 42 {
		t.Errorf("expected int64 42, got %#v", r.(types.Record)["n"])
	}
	in, _ := c.Get("0")
	if in.(types.Record)["n"] != "42" {
		t.Error("input must not be modified")
	}
}

func TestColumnsConversion_Types(t *testing.T) {
	tests := []struct {
		to   string
		in   any
		want any
	}{
		{"integer", "12abc", int64(12)},
		{"boolean", "0", false},
		{"bool", "yes", true},
		{"double", "3.5", 3.5},
		{"real", nil, 0.0},
		{"string", int64(7), "7"},
		{"string", true, "1"},
		{"unknown", "anything", nil},
	}
	for _, tt := range tests {
		c := types.FromRecords([]types.Record{{"v": tt.in}})
		out, err := ColumnsConversion(c, []string{"v"}, ParseConversion(tt.to))
		if err != nil {
			t.Fatal(err)
		}
		r, _ := out.Get("0")
		if got := r.(types.Record)["v"]; !types.Identical(got, tt.want) {
			t.Errorf("%s(%#v) = %#v, want %#v", tt.to, tt.in, got, tt.want)
		}
	}
}

func TestColumnsConversion_StructuredTargets(t *testing.T) {
	c := types.FromRecords([]types.Record{{"a": "x"}})
	out, err := ColumnsConversion(c, []string{"a", "missing"}, ToSequence)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := out.Get("0")
	rec := r.(types.Record)
	if seq, ok := rec["a"].([]any); !ok || len(seq) != 1 || seq[0] != "x" {
		t.Errorf("scalar should wrap into a one-element sequence, got %#v", rec["a"])
	}
	if seq, ok := rec["missing"].([]any); !ok || len(seq) != 0 {
		t.Errorf("missing column should become an empty sequence, got %#v", rec["missing"])
	}

	out, _ = ColumnsConversion(c, []string{"a"}, ToStructure)
	r, _ = out.Get("0")
	if st, ok := r.(types.Record)["a"].(types.Record); !ok || st["scalar"] != "x" {
		t.Errorf("scalar should land under \"scalar\", got %#v", r.(types.Record)["a"])
	}
}

func TestColumnsConversion_Errors(t *testing.T) {
	c := types.FromRecords([]types.Record{{"a": 1}})
	if _, err := ColumnsConversion(c, nil, ToInt); !errors.Is(err, rkerrors.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	if _, err := ColumnsConversion(c, []string{"a", ""}, ToInt); !errors.Is(err, rkerrors.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestParseConversion(t *testing.T) {
	for name, want := range map[string]Conversion{
		"int": ToInt, "INTEGER": ToInt, "float": ToFloat, "array": ToSequence,
		"object": ToStructure, "null": ToNull, "": ToNull,
	} {
		if got := ParseConversion(name); got != want {
			t.Errorf("ParseConversion(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRemoveByValue(t *testing.T) {
	c := types.FromValues(int64(1), "1", int64(2), int64(1), 1.0)

	out := RemoveByValue(c, int64(1), false)
	if keys := out.Keys(); len(keys) != 3 || keys[0] != "1" || keys[1] != "2" || keys[2] != "4" {
		t.Errorf("only identical values should be removed, keys %v", keys)
	}

	rekeyed := RemoveByValue(c, int64(1), true)
	if !rekeyed.IsList() || rekeyed.Len() != 3 {
		t.Errorf("rekey should renumber densely, keys %v", rekeyed.Keys())
	}
	if c.Len() != 5 {
		t.Error("input must not be modified")
	}
}

func TestRemoveByValue_Records(t *testing.T) {
	c := types.FromRecords([]types.Record{{"a": int64(1)}, {"a": int64(2)}})
	out := RemoveByValue(c, types.Record{"a": int64(1)}, true)
	if out.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", out.Len())
	}
}

func TestSetKeyPath(t *testing.T) {
	r := types.Record{"meta": "flat"}
	if err := SetKeyPath(r, []string{"meta", "owner", "name"}, "ann"); err != nil {
		t.Fatal(err)
	}
	meta, ok := r["meta"].(types.Record)
	if !ok {
		t.Fatalf("non-record value should be replaced, got %#v", r["meta"])
	}
	if meta["owner"].(types.Record)["name"] != "ann" {
		t.Errorf("unexpected %#v", r)
	}

	if err := SetKeyPath(r, []string{"meta", "owner", "age"}, int64(4)); err != nil {
		t.Fatal(err)
	}
	if owner := r["meta"].(types.Record)["owner"].(types.Record); owner["name"] != "ann" || owner["age"] != int64(4) {
		t.Errorf("existing records along the path should be kept, got %#v", owner)
	}

	if err := SetKeyPath(r, nil, 1); !errors.Is(err, rkerrors.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestMoveToSubarray(t *testing.T) {
	r := types.Record{"city": "Oslo", "id": int64(1)}
	if err := MoveToSubarray(r, "city", []string{"address", "city"}); err != nil {
		t.Fatal(err)
	}
	if r.Has("city") {
		t.Error("original key should be removed")
	}
	if r["address"].(types.Record)["city"] != "Oslo" {
		t.Errorf("unexpected %#v", r)
	}

	if err := MoveToSubarray(r, "absent", []string{"x"}); err != nil {
		t.Errorf("absent key should be a no-op, got %v", err)
	}
	if r.Has("x") {
		t.Error("absent key must not create the path")
	}

	self := types.Record{"a": int64(1)}
	if err := MoveToSubarray(self, "a", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if self["a"].(types.Record)["b"] != int64(1) {
		t.Errorf("moving under its own name should keep the value, got %#v", self)
	}
}

func TestRenameColumn(t *testing.T) {
	c := types.FromRecords([]types.Record{{"old": int64(1)}, {"old": int64(2)}})
	if err := RenameColumn(c, "old", "new"); err != nil {
		t.Fatal(err)
	}
	for _, v := range c.Values() {
		r := v.(types.Record)
		if r.Has("old") || !r.Has("new") {
			t.Errorf("not renamed: %#v", r)
		}
	}
}

func TestRenameColumn_PartialFailure(t *testing.T) {
	c := types.FromRecords([]types.Record{{"old": int64(1)}, {"other": int64(2)}, {"old": int64(3)}})
	err := RenameColumn(c, "old", "new")
	if !errors.Is(err, rkerrors.ErrMissingField) {
		t.Fatalf("expected missing field, got %v", err)
	}
	var re *rkerrors.Error
	if errors.As(err, &re) && re.Details["key"] != "1" {
		t.Errorf("error should name the failing entry, got %v", re.Details)
	}
	first, _ := c.Get("0")
	if !first.(types.Record).Has("new") {
		t.Error("records before the failure stay renamed")
	}
	last, _ := c.Get("2")
	if !last.(types.Record).Has("old") {
		t.Error("records after the failure are untouched")
	}
}
