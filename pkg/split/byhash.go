package split

import (
	"fmt"

	"github.com/spaolacci/murmur3"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// ByHash spreads the records of c over buckets partitions named hash_0 ..
// hash_<buckets-1>, using a murmur3 hash of the column's string form. A
// record lacking the column hashes as the empty string. The column is kept.
func ByHash(c *types.Collection, column string, buckets int) (*PartitionMap, error) {
	if column == "" {
		return nil, rkerrors.InvalidInput("split: empty column key")
	}
	if buckets <= 0 {
		return nil, rkerrors.InvalidInput("split: bucket count must be > 0, got %d", buckets)
	}

	names := make([]string, buckets)
	for i := range names {
		names[i] = fmt.Sprintf("hash_%d", i)
	}
	m := newPartitionMap(names)
	c.Range(func(_ types.Key, v any) bool {
		r, ok := types.AsRecord(v)
		if !ok {
			return true
		}
		m.parts[names[bucketOf(r[column], buckets)]].Append(r.Clone())
		return true
	})
	return m, nil
}

func bucketOf(v any, buckets int) int {
	return int(murmur3.Sum32([]byte(types.ToString(v))) % uint32(buckets))
}
