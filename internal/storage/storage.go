// Package storage fetches tabular files from object storage so they can be
// decoded as record sources. Backends: the local filesystem and S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
)

// Common errors for storage operations. Both match the recordkit source
// error codes through errors.Is.
var (
	ErrObjectNotFound = rkerrors.NewSourceError(rkerrors.CodeNotFound, "object not found", nil)
	ErrDownloadFailed = rkerrors.NewSourceError(rkerrors.CodeReadFailure, "download failed", nil)
)

// ObjectStore abstracts read access to an object store.
type ObjectStore interface {
	// Download copies the object at objectPath to localPath.
	Download(ctx context.Context, objectPath, localPath string) error

	// Exists checks if an object exists in storage.
	Exists(ctx context.Context, objectPath string) (bool, error)
}

// writeObject copies r to localPath, creating parent directories.
func writeObject(localPath string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return nil
}
