package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"go.etcd.io/bbolt"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Bolt reads every entry of a bbolt bucket. Keys become collection keys in
// byte order and values are decoded from msgpack.
type Bolt struct {
	Path   string
	Bucket string
}

// Load implements Source.
func (s *Bolt) Load(ctx context.Context) (*types.Collection, error) {
	start := time.Now()
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, rkerrors.NewSourceError(rkerrors.CodeNotFound,
			fmt.Sprintf("bolt database %q not found", s.Path), err)
	}

	db, err := bbolt.Open(s.Path, 0o600, &bbolt.Options{Timeout: 5 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("open bolt database %q", s.Path), err)
	}
	defer db.Close()

	out := types.New()
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.Bucket))
		if b == nil {
			return rkerrors.NewSourceError(rkerrors.CodeNotFound,
				fmt.Sprintf("bucket %q not found in %q", s.Bucket, s.Path), nil)
		}
		return b.ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if v == nil {
				// nested bucket
				return nil
			}
			val, err := decodeMsgpackValue(v)
			if err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			out.Set(types.Key(k), val)
			return nil
		})
	})
	if err != nil {
		if rkerrors.GetCategory(err) == rkerrors.ErrCategorySource {
			return nil, err
		}
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("read bucket %q", s.Bucket), err)
	}

	slog.DebugContext(ctx, "Loaded bucket", "path", s.Path, "bucket", s.Bucket, "rows", out.Len(), "duration", time.Since(start))
	return out, nil
}
