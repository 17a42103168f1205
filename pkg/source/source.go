// Package source materializes record collections from outside the process:
// tabular files, SQL queries, bbolt buckets and object storage.
//
// Every failure is a *errors.Error in the SOURCE category: NOT_FOUND when the
// input does not exist, UNSUPPORTED_FORMAT when no decoder handles it, and
// READ_FAILURE when it cannot be opened or decoded.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang/snappy"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Source yields a collection of records.
type Source interface {
	Load(ctx context.Context) (*types.Collection, error)
}

// Decoder turns the bytes of one file format into a collection.
type Decoder func(r io.Reader) (*types.Collection, error)

// snappySuffix marks a file wrapped in a snappy framed stream.
const snappySuffix = ".sz"

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Decoder)
)

// RegisterFormat registers a decoder for a file extension (without the dot).
// Called from init() in each format implementation file.
func RegisterFormat(ext string, dec Decoder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(ext)] = dec
}

// Formats returns the registered extensions in order.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for ext := range registry {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func decoderFor(format string) (Decoder, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	dec, ok := registry[strings.ToLower(format)]
	if !ok {
		return nil, rkerrors.NewSourceError(rkerrors.CodeUnsupportedFormat,
			fmt.Sprintf("no decoder for format %q", format), nil)
	}
	return dec, nil
}

// FileSource reads a tabular file.
type FileSource struct {
	// Path is the file to read.
	Path string

	// Format overrides the format implied by the extension.
	Format string
}

// File returns a source reading path, with the format taken from its
// extension. A trailing .sz means the file is snappy-compressed.
func File(path string) *FileSource {
	return &FileSource{Path: path}
}

// LoadFile reads path with the format taken from its extension.
func LoadFile(ctx context.Context, path string) (*types.Collection, error) {
	return File(path).Load(ctx)
}

// formatOf returns the format named by path's extension and whether the
// file is snappy-compressed.
func formatOf(path string) (string, bool) {
	compressed := strings.HasSuffix(strings.ToLower(path), snappySuffix)
	if compressed {
		path = path[:len(path)-len(snappySuffix)]
	}
	return strings.TrimPrefix(filepath.Ext(path), "."), compressed
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*types.Collection, error) {
	start := time.Now()
	format, compressed := formatOf(s.Path)
	if s.Format != "" {
		format = s.Format
	}
	dec, err := decoderFor(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rkerrors.NewSourceError(rkerrors.CodeNotFound,
				fmt.Sprintf("file %q not found", s.Path), err)
		}
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("failed to open %q", s.Path), err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure, "load cancelled", err)
	}

	var r io.Reader = f
	if compressed {
		r = snappy.NewReader(f)
	}
	c, err := dec(r)
	if err != nil {
		if rkerrors.GetCategory(err) == rkerrors.ErrCategorySource {
			return nil, err
		}
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("failed to decode %q as %s", s.Path, format), err)
	}

	slog.DebugContext(ctx, "Loaded file", "path", s.Path, "format", format,
		"compressed", compressed, "rows", c.Len(), "duration", time.Since(start))
	return c, nil
}

// normalize rewrites decoded values into recordkit shapes: string-keyed maps
// become Records and nested sequences are normalized element-wise.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		r := make(types.Record, len(x))
		for k, val := range x {
			r[k] = normalize(val)
		}
		return r
	case map[any]any:
		r := make(types.Record, len(x))
		for k, val := range x {
			r[types.ToString(k)] = normalize(val)
		}
		return r
	case []any:
		for i, val := range x {
			x[i] = normalize(val)
		}
		return x
	case []byte:
		return string(x)
	}
	return v
}
