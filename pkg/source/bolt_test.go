package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

func writeBolt(t *testing.T, bucket string, rows map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.bolt")
	db, err := bbolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		for k, v := range rows {
			data, err := msgpack.Marshal(v)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(k), data); err != nil {
				return err
			}
		}
		return nil
	}))
	return path
}

func TestBolt_Load(t *testing.T) {
	path := writeBolt(t, "people", map[string]any{
		"bob":   map[string]any{"age": 41},
		"alice": map[string]any{"age": 30, "tags": []string{"admin"}},
	})

	c, err := (&Bolt{Path: path, Bucket: "people"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Key{"alice", "bob"}, c.Keys())
	assert.Equal(t, types.Record{"age": int64(30), "tags": []any{"admin"}}, c.At(0).Value)
}

func TestBolt_NotFound(t *testing.T) {
	ctx := context.Background()
	path := writeBolt(t, "people", map[string]any{"a": 1})

	_, err := (&Bolt{Path: path, Bucket: "orders"}).Load(ctx)
	assert.True(t, errors.Is(err, rkerrors.ErrNotFound), "got %v", err)

	_, err = (&Bolt{Path: filepath.Join(t.TempDir(), "none.bolt"), Bucket: "people"}).Load(ctx)
	assert.True(t, errors.Is(err, rkerrors.ErrNotFound), "got %v", err)
}
