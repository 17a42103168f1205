package types

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"true", true, 1},
		{"numeric string", "42", 42},
		{"leading numeric", "12abc", 12},
		{"exponent", "1e3", 1000},
		{"leading space", "  7", 7},
		{"fraction", "1.9", 1},
		{"text", "abc", 0},
		{"float", -3.7, -3},
		{"nan", math.NaN(), 0},
		{"empty seq", []any{}, 0},
		{"non-empty seq", []any{1}, 1},
		{"uint8", uint8(9), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInt(tt.in); got != tt.want {
				t.Errorf("ToInt(%#v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{"3.14", 3.14},
		{"2.5kg", 2.5},
		{".5", 0.5},
		{int64(4), 4},
		{false, 0},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := ToFloat(tt.in); got != tt.want {
			t.Errorf("ToFloat(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToBool(t *testing.T) {
	falsy := []any{nil, false, 0, int64(0), 0.0, "", "0", []any{}, Record{}, New()}
	for _, v := range falsy {
		if ToBool(v) {
			t.Errorf("ToBool(%#v) should be false", v)
		}
	}
	truthy := []any{true, 1, -1, 0.1, "a", "0.0", " ", []any{nil}, Record{"a": 1}}
	for _, v := range truthy {
		if !ToBool(v) {
			t.Errorf("ToBool(%#v) should be true", v)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{true, "1"},
		{false, ""},
		{int64(-5), "-5"},
		{2.0, "2"},
		{0.25, "0.25"},
		{math.Inf(1), "INF"},
		{[]any{int64(1)}, "[1]"},
	}
	for _, tt := range tests {
		if got := ToString(tt.in); got != tt.want {
			t.Errorf("ToString(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToSequenceAndStructure(t *testing.T) {
	if s := ToSequence(nil).([]any); len(s) != 0 {
		t.Errorf("nil should become empty sequence, got %v", s)
	}
	if s := ToSequence("x").([]any); len(s) != 1 || s[0] != "x" {
		t.Errorf("scalar should be wrapped, got %v", s)
	}
	r := Record{"a": 1}
	if got := ToSequence(r); got.(Record)["a"] != 1 {
		t.Error("nested values pass through")
	}
	if got := ToStructure(int64(5)); got["scalar"] != int64(5) {
		t.Errorf("scalar should be stored under scalar, got %v", got)
	}
	if got := ToStructure([]any{"a", "b"}); got["1"] != "b" {
		t.Errorf("sequence should be keyed by position, got %v", got)
	}
	if got := ToStructure(nil); len(got) != 0 {
		t.Errorf("nil should become empty record, got %v", got)
	}
}

func TestIsNumeric(t *testing.T) {
	for _, v := range []any{1, 2.5, "3", " 4 ", "-1e3", ".5"} {
		if !IsNumeric(v) {
			t.Errorf("IsNumeric(%#v) should be true", v)
		}
	}
	for _, v := range []any{"", "abc", "0x1A", "Inf", "NaN", "1_000", nil, true} {
		if IsNumeric(v) {
			t.Errorf("IsNumeric(%#v) should be false", v)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", int64(1), 2, -1},
		{"int float", 2, 1.5, 1},
		{"numeric strings", "10", "9", 1},
		{"text strings", "apple", "banana", -1},
		{"number vs numeric string", 10, "10", 0},
		{"number vs text", 10, "abc", -1},
		{"nil vs zero", nil, 0, 0},
		{"nil vs text", nil, "a", -1},
		{"bools", false, true, -1},
		{"nested after scalar", []any{}, "zzz", 1},
		{"sequence length", []any{1, 2}, []any{9}, 1},
		{"sequence elements", []any{1, 2}, []any{1, 3}, -1},
		{"records", Record{"a": 1}, Record{"a": 2}, -1},
		{"equal", "x", "x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%#v, %#v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareKeys(t *testing.T) {
	if CompareKeys("2", "10") != -1 {
		t.Error("integer keys compare numerically")
	}
	if CompareKeys("b", "a") != 1 {
		t.Error("string keys compare bytewise")
	}
}

func TestProperty_CompareAntisymmetric(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Compare(a, b) == -Compare(b, a) for integers", prop.ForAll(
		func(a, b int64) bool {
			return Compare(a, b) == -Compare(b, a)
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("Compare(a, b) == -Compare(b, a) for strings", prop.ForAll(
		func(a, b string) bool {
			return Compare(a, b) == -Compare(b, a)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("numeric strings order like their numbers", prop.ForAll(
		func(a, b int64) bool {
			return Compare(ToString(a), ToString(b)) == Compare(a, b)
		},
		gen.Int64Range(-1000000, 1000000),
		gen.Int64Range(-1000000, 1000000),
	))

	properties.TestingRun(t)
}
