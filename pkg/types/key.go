package types

import (
	"strconv"
)

// Key identifies an entry of a Collection.
//
// A key whose text is a canonical decimal integer ("0", "42", "-7") is an
// integer key; anything else ("007", "+1", "id") is a string key.
type Key string

// IntKey returns the integer key for i.
func IntKey(i int) Key {
	return Key(strconv.Itoa(i))
}

// Int returns the key's integer value and whether it is an integer key.
func (k Key) Int() (int, bool) {
	s := string(k)
	if s == "" || len(s) > 19 {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	digits := s
	if s[0] == '-' {
		digits = s[1:]
	}
	if digits == "" || digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool {
	_, ok := k.Int()
	return ok
}

// Value returns the key as a record value: int64 for integer keys, string otherwise.
func (k Key) Value() any {
	if n, ok := k.Int(); ok {
		return int64(n)
	}
	return string(k)
}

// KeyOf renders a scalar value as a collection key the way associative
// arrays do: integers as decimal, bools as 0/1, floats truncated, nil as "".
// Nested values cannot be keys.
func KeyOf(v any) (Key, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return Key(x), true
	case bool:
		if x {
			return "1", true
		}
		return "0", true
	case float32:
		return Key(strconv.FormatInt(int64(x), 10)), true
	case float64:
		return Key(strconv.FormatInt(int64(x), 10)), true
	}
	if n, ok := toInt64(v); ok {
		return Key(strconv.FormatInt(n, 10)), true
	}
	return "", false
}
