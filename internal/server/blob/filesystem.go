package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore keeps attachment content under a root directory on the
// local filesystem, separate from the database.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates the root directory if needed and returns a
// store rooted there.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", root, err)
	}
	return &FilesystemStore{root: root}, nil
}

// path maps a storage key onto the filesystem, refusing keys that would
// escape the root.
func (s *FilesystemStore) path(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *FilesystemStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o770); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", filepath.Dir(p), err)
	}

	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", p, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(p)
		return 0, fmt.Errorf("write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", p, err)
	}
	return n, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (s *FilesystemStore) DeletePrefix(ctx context.Context, prefix string) error {
	p, err := s.path(strings.TrimSuffix(prefix, "/"))
	if err != nil {
		return err
	}
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}
