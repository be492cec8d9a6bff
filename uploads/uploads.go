// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploads

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store is the opaque blob store for uploaded playlists. Files are written
// under random names and referenced by the relative URL returned from Save;
// nothing here ever inspects file contents.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the payload to disk under a fresh UUID name, keeping the
// original file extension, and returns the public URL path plus the number
// of bytes stored.
func (s *Store) Save(originalName string, r io.Reader) (string, int64, error) {
	name := uuid.NewString() + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + name, n, nil
}

// Handler serves the stored files at /uploads/.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.dir)))
}
