package types

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// IsNested reports whether v is a nested structure rather than a scalar.
func IsNested(v any) bool {
	switch v.(type) {
	case Record, map[string]any, []any, *Collection:
		return true
	default:
		return false
	}
}

// IsScalar reports whether v carries no nested structure. nil counts as scalar.
func IsScalar(v any) bool {
	return !IsNested(v)
}

// Len returns the number of elements of a nested value, or -1 for scalars.
func Len(v any) int {
	switch x := v.(type) {
	case Record:
		return len(x)
	case map[string]any:
		return len(x)
	case []any:
		return len(x)
	case *Collection:
		return x.Len()
	default:
		return -1
	}
}

// Identical reports whether a and b have the same dynamic type and deep value.
// No numeric or string coercion is applied: int64(1) and int(1) differ.
func Identical(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// IsNumeric reports whether v is a number or a numeric string.
func IsNumeric(v any) bool {
	if _, ok := numberValue(v); ok {
		return true
	}
	if s, ok := v.(string); ok {
		_, ok := numericString(s)
		return ok
	}
	return false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// IsInteger reports whether v is of a Go integer kind.
func IsInteger(v any) bool {
	_, ok := toInt64(v)
	return ok
}

// numberValue returns v as float64 when v is of a numeric kind.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

const numericSpace = " \t\n\r\v\f"

// numericString parses a whole string as a decimal number, allowing
// surrounding whitespace. Hex, infinities and NaN are rejected.
func numericString(s string) (float64, bool) {
	t := strings.Trim(s, numericSpace)
	if t == "" {
		return 0, false
	}
	for i := 0; i < len(t); i++ {
		c := t[i]
		if !(c >= '0' && c <= '9') && c != '.' && c != 'e' && c != 'E' && c != '+' && c != '-' {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numericPrefix parses the longest leading decimal number of s, after
// leading whitespace. It reports whether the number is integral text.
func numericPrefix(s string) (string, bool) {
	t := strings.TrimLeft(s, numericSpace)
	end, digits, integral := 0, 0, true
	if end < len(t) && (t[end] == '+' || t[end] == '-') {
		end++
	}
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
		digits++
	}
	if end < len(t) && t[end] == '.' {
		frac := end + 1
		for frac < len(t) && t[frac] >= '0' && t[frac] <= '9' {
			frac++
			digits++
		}
		if digits > 0 {
			end = frac
			integral = false
		}
	}
	if digits == 0 {
		return "", true
	}
	if end < len(t) && (t[end] == 'e' || t[end] == 'E') {
		exp := end + 1
		if exp < len(t) && (t[exp] == '+' || t[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(t) && t[exp] >= '0' && t[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
			integral = false
		}
	}
	return t[:end], integral
}

// ToBool applies loose truthiness: nil, false, 0, 0.0, "", "0" and empty
// nested values are false; everything else is true.
func ToBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	}
	if f, ok := numberValue(v); ok {
		return f != 0
	}
	if n := Len(v); n >= 0 {
		return n > 0
	}
	return true
}

// ToInt casts v to an integer. Strings contribute their leading numeric
// prefix ("12abc" is 12, "abc" is 0), floats are truncated, nested values
// are 1 when non-empty.
func ToInt(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case float32:
		return truncFloat(float64(x))
	case float64:
		return truncFloat(x)
	case string:
		prefix, integral := numericPrefix(x)
		if prefix == "" {
			return 0
		}
		if integral {
			if n, err := strconv.ParseInt(prefix, 10, 64); err == nil {
				return n
			}
		}
		f, _ := strconv.ParseFloat(prefix, 64)
		return truncFloat(f)
	}
	if n, ok := toInt64(v); ok {
		return n
	}
	if ToBool(v) {
		return 1
	}
	return 0
}

func truncFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

// ToFloat casts v to a float using the same rules as ToInt without truncation.
func ToFloat(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		prefix, _ := numericPrefix(x)
		if prefix == "" {
			return 0
		}
		f, _ := strconv.ParseFloat(prefix, 64)
		return f
	}
	if f, ok := numberValue(v); ok {
		return f
	}
	if ToBool(v) {
		return 1
	}
	return 0
}

// ToString casts v to its string form: nil and false are "", true is "1",
// whole floats print without a fraction. Nested values render as JSON.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return ""
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	}
	if n, ok := toInt64(v); ok {
		return strconv.FormatInt(n, 10)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'G', -1, 64)
}

// ToSequence casts v to a generic sequence: nil is empty, nested values pass
// through, a scalar becomes a one-element sequence.
func ToSequence(v any) any {
	switch {
	case v == nil:
		return []any{}
	case IsNested(v):
		return v
	default:
		return []any{v}
	}
}

// ToStructure casts v to a Record: nil is empty, sequences are keyed by
// position, a scalar is stored under "scalar".
func ToStructure(v any) Record {
	switch x := v.(type) {
	case nil:
		return Record{}
	case Record:
		return x
	case map[string]any:
		return Record(x)
	case []any:
		r := make(Record, len(x))
		for i, val := range x {
			r[strconv.Itoa(i)] = val
		}
		return r
	case *Collection:
		r := make(Record, x.Len())
		x.Range(func(k Key, val any) bool {
			r[string(k)] = val
			return true
		})
		return r
	default:
		return Record{"scalar": v}
	}
}
