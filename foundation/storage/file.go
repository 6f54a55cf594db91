package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each record as a JSON file under a data directory, one file
// per user and record.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(_ context.Context, userID, record string) ([]byte, error) {
	blob, err := os.ReadFile(f.path(userID, record))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", userID, record, err)
	}
	return blob, nil
}

func (f *File) Save(_ context.Context, userID, record string, blob []byte) error {
	path := f.path(userID, record)

	// Write through a temp file so a crash mid-write cannot leave a
	// half-serialized record behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("writing %s/%s: %w", userID, record, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s/%s: %w", userID, record, err)
	}

	return nil
}

func (f *File) path(userID, record string) string {
	return filepath.Join(f.dir, fmt.Sprintf("%s-%s.json", userID, record))
}
