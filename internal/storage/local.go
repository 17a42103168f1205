package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements ObjectStore over a directory of the local
// filesystem. Object paths are slash-separated and relative to the base.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a store rooted at basePath, which must be an
// existing directory.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("local storage base: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local storage base %q is not a directory", basePath)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Download copies an object to localPath.
func (l *LocalStorage) Download(ctx context.Context, objectPath, localPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	srcPath, err := l.fullPath(objectPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer src.Close()

	return writeObject(localPath, src)
}

// Exists checks if an object exists in local storage.
func (l *LocalStorage) Exists(ctx context.Context, objectPath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fullPath, err := l.fullPath(objectPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// fullPath returns the filesystem path for an object. Paths escaping the
// base directory are rejected.
func (l *LocalStorage) fullPath(objectPath string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(objectPath, "/")))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: object path %q escapes the storage base", ErrDownloadFailed, objectPath)
	}
	return filepath.Join(l.basePath, rel), nil
}
