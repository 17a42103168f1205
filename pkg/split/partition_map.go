package split

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/recordkit/recordkit/pkg/types"
)

// PartitionMap maps partition keys to the records routed to them.
// Keys keep the order in which the partitions were declared.
type PartitionMap struct {
	keys  []string
	parts map[string]*types.Collection
}

func newPartitionMap(keys []string) *PartitionMap {
	m := &PartitionMap{
		keys:  keys,
		parts: make(map[string]*types.Collection, len(keys)),
	}
	for _, k := range keys {
		m.parts[k] = types.New()
	}
	return m
}

// Keys returns the partition keys in order.
func (m *PartitionMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the partition stored under key.
func (m *PartitionMap) Get(key string) (*types.Collection, bool) {
	p, ok := m.parts[key]
	return p, ok
}

// Len returns the number of partitions, empty ones included.
func (m *PartitionMap) Len() int {
	return len(m.keys)
}

// Total returns the number of records across all partitions.
func (m *PartitionMap) Total() int {
	n := 0
	for _, p := range m.parts {
		n += p.Len()
	}
	return n
}

// Collection returns the partitions as a collection keyed by partition key.
func (m *PartitionMap) Collection() *types.Collection {
	c := types.New()
	for _, k := range m.keys {
		c.Set(types.Key(k), m.parts[k])
	}
	return c
}

// MarshalJSON encodes the map as a JSON object in partition order.
func (m *PartitionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		b, err := json.Marshal(m.parts[k])
		if err != nil {
			return nil, fmt.Errorf("partition %q: %w", k, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
