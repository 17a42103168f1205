package types

import (
	"sort"

	"github.com/maruel/natural"
)

// Entry is a single key/value pair of a Collection.
type Entry struct {
	Key   Key
	Value any
}

// Collection is an ordered sequence of entries with unique keys.
//
// Indexed collections carry the keys 0..n-1 in order; associative collections
// carry at least one string key. Values are usually Records but any value is
// allowed, which lets the same type hold projected columns and scalar lists.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	entries []Entry
	index   map[Key]int
	nextInt int
	hasInt  bool
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{index: make(map[Key]int)}
}

// FromValues returns an indexed collection holding values in order.
func FromValues(values ...any) *Collection {
	c := &Collection{
		entries: make([]Entry, 0, len(values)),
		index:   make(map[Key]int, len(values)),
	}
	for _, v := range values {
		c.Append(v)
	}
	return c
}

// FromRecords returns an indexed collection holding the records in order.
func FromRecords(records []Record) *Collection {
	c := &Collection{
		entries: make([]Entry, 0, len(records)),
		index:   make(map[Key]int, len(records)),
	}
	for _, r := range records {
		c.Append(r)
	}
	return c
}

// FromMap returns a collection holding m's entries with keys in natural order.
func FromMap(m map[string]any) *Collection {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	c := New()
	for _, k := range keys {
		c.Set(Key(k), m[k])
	}
	return c
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Set stores v under k. Overwriting an existing key keeps its position.
func (c *Collection) Set(k Key, v any) {
	if c.index == nil {
		c.index = make(map[Key]int)
	}
	if i, ok := c.index[k]; ok {
		c.entries[i].Value = v
		return
	}
	c.index[k] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: k, Value: v})
	if n, ok := k.Int(); ok && (!c.hasInt || n >= c.nextInt) {
		c.nextInt = n + 1
		c.hasInt = true
	}
}

// Append stores v under the next integer key (one past the largest integer
// key ever stored, or 0) and returns that key.
func (c *Collection) Append(v any) Key {
	k := IntKey(c.nextInt)
	c.Set(k, v)
	return k
}

// Get returns the value stored under k.
func (c *Collection) Get(k Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[k]
	if !ok {
		return nil, false
	}
	return c.entries[i].Value, true
}

// Has reports whether k is present.
func (c *Collection) Has(k Key) bool {
	_, ok := c.Get(k)
	return ok
}

// Delete removes k if present. Positions of the remaining entries shift down.
func (c *Collection) Delete(k Key) {
	i, ok := c.index[k]
	if !ok {
		return
	}
	delete(c.index, k)
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Key] = j
	}
}

// At returns the entry at position i.
func (c *Collection) At(i int) Entry {
	return c.entries[i]
}

// Keys returns the keys in order.
func (c *Collection) Keys() []Key {
	keys := make([]Key, c.Len())
	for i := range keys {
		keys[i] = c.entries[i].Key
	}
	return keys
}

// Values returns the values in order.
func (c *Collection) Values() []any {
	values := make([]any, c.Len())
	for i := range values {
		values[i] = c.entries[i].Value
	}
	return values
}

// Entries returns a copy of the entries in order.
func (c *Collection) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Range calls fn for each entry in order until fn returns false.
func (c *Collection) Range(fn func(k Key, v any) bool) {
	if c == nil {
		return
	}
	for _, e := range c.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Clone returns a shallow copy: the entries are copied, the values are shared.
// Cloning a nil collection yields an empty one.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return New()
	}
	cp := &Collection{
		entries: c.Entries(),
		index:   make(map[Key]int, c.Len()),
		nextInt: c.nextInt,
		hasInt:  c.hasInt,
	}
	for i, e := range cp.entries {
		cp.index[e.Key] = i
	}
	return cp
}

// Reindex renumbers the entries 0..n-1 in their current order.
func (c *Collection) Reindex() {
	c.index = make(map[Key]int, len(c.entries))
	for i := range c.entries {
		c.entries[i].Key = IntKey(i)
		c.index[c.entries[i].Key] = i
	}
	c.nextInt = len(c.entries)
	c.hasInt = len(c.entries) > 0
}

// SortStable reorders the entries in place with a stable sort. Keys stay
// attached to their values.
func (c *Collection) SortStable(less func(a, b Entry) bool) {
	sort.SliceStable(c.entries, func(i, j int) bool {
		return less(c.entries[i], c.entries[j])
	})
	for i, e := range c.entries {
		c.index[e.Key] = i
	}
}

// IsList reports whether the keys are exactly 0..n-1 in order.
func (c *Collection) IsList() bool {
	for i, e := range c.Entries() {
		if n, ok := e.Key.Int(); !ok || n != i {
			return false
		}
	}
	return true
}

// FromEntries builds a collection from entries; later duplicates overwrite earlier ones.
func FromEntries(entries []Entry) *Collection {
	c := New()
	for _, e := range entries {
		c.Set(e.Key, e.Value)
	}
	return c
}
