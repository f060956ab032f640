package slot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileSlot stores each key as one file under Dir. Writes go to a temp file
// first and are renamed into place, so a reader never sees a torn value.
type FileSlot struct {
	Dir string
}

func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file slot: %w", err)
	}
	return &FileSlot{Dir: dir}, nil
}

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.Dir, url.PathEscape(key)+".json")
}

func (s *FileSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *FileSlot) Set(_ context.Context, key string, value []byte) error {
	f, err := os.CreateTemp(s.Dir, ".slot-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(value); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileSlot) Ping(context.Context) error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("file slot: %s is not a directory", s.Dir)
	}
	return nil
}

func (s *FileSlot) Close() error { return nil }
