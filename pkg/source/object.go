package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Fetcher copies an object from a store to the local filesystem.
type Fetcher interface {
	Download(ctx context.Context, objectPath, localPath string) error
}

// existenceChecker is implemented by fetchers that can test for an object
// without downloading it.
type existenceChecker interface {
	Exists(ctx context.Context, objectPath string) (bool, error)
}

// ObjectSource downloads a tabular file from object storage and decodes it
// like a local file. The download is removed once decoded.
type ObjectSource struct {
	Fetcher    Fetcher
	ObjectPath string
	// Format overrides the format derived from the object path extension.
	Format string
	// TmpDir receives the download; empty means os.TempDir().
	TmpDir string
}

// Object returns a source for objectPath in the store behind fetcher.
func Object(fetcher Fetcher, objectPath, tmpDir string) *ObjectSource {
	return &ObjectSource{Fetcher: fetcher, ObjectPath: objectPath, TmpDir: tmpDir}
}

// Load implements Source.
func (s *ObjectSource) Load(ctx context.Context) (*types.Collection, error) {
	format, compressed := formatOf(s.ObjectPath)
	if s.Format != "" {
		format = s.Format
	}
	if _, err := decoderFor(format); err != nil {
		return nil, err
	}

	if checker, ok := s.Fetcher.(existenceChecker); ok {
		exists, err := checker.Exists(ctx, s.ObjectPath)
		if err == nil && !exists {
			return nil, rkerrors.NewSourceError(rkerrors.CodeNotFound,
				fmt.Sprintf("object %q not found", s.ObjectPath), nil)
		}
	}

	dir := s.TmpDir
	if dir == "" {
		dir = os.TempDir()
	}
	ext := "." + format
	if compressed {
		ext += snappySuffix
	}
	local := filepath.Join(dir, "recordkit-"+uuid.NewString()+strings.ToLower(ext))
	defer os.Remove(local)

	if err := s.Fetcher.Download(ctx, s.ObjectPath, local); err != nil {
		if errors.Is(err, rkerrors.ErrNotFound) {
			return nil, rkerrors.NewSourceError(rkerrors.CodeNotFound,
				fmt.Sprintf("object %q not found", s.ObjectPath), err)
		}
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("download %q", s.ObjectPath), err)
	}
	slog.DebugContext(ctx, "Downloaded object", "object", s.ObjectPath, "local", local)

	return (&FileSource{Path: local, Format: format}).Load(ctx)
}

