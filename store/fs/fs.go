// Package fs implements the term store as one file per table under a cache
// directory. This is the durable default: tables written by one process run
// are picked up by the next.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	st "github.com/unkn0wn-root/fresnelvol/store"
)

type Store struct {
	dir string
}

var _ st.Store = (*Store)(nil)

// New creates the cache directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("fs store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fs store: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set writes to a temp file in the same directory and renames it over the
// final name. Rename is atomic on POSIX filesystems, so concurrent readers
// never observe a torn table; concurrent writers are last-writer-wins.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after successful rename
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (s *Store) Close(context.Context) error { return nil }

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("fs store: invalid key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
