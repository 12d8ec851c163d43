// Package storage reads and writes whole files, blocking or with a
// completion callback, over an afero filesystem.
package storage

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"httprule/internal/pkg/errs"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Storage is the I/O collaborator of the transform pipeline.
type Storage struct {
	fs afero.Fs
}

// New wraps fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Storage {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Storage{fs: fs}
}

// NewMem returns an in-memory storage.
func NewMem() *Storage {
	return New(afero.NewMemMapFs())
}

// Fs exposes the underlying filesystem.
func (s *Storage) Fs() afero.Fs { return s.fs }

// ReadAll returns the whole content of path.
func (s *Storage) ReadAll(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, errs.WrapIO(err, "failed to read file: %s", path)
	}
	return data, nil
}

// WriteAll replaces path with data, creating parent directories.
func (s *Storage) WriteAll(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != string(os.PathSeparator) {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return errs.WrapIO(err, "failed to create directory: %s", dir)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, filePerm); err != nil {
		return errs.WrapIO(err, "failed to write file: %s", path)
	}
	return nil
}

// ReadAllAsync reads path on its own goroutine and reports through done.
func (s *Storage) ReadAllAsync(path string, done func([]byte, error)) {
	go func() {
		done(s.ReadAll(path))
	}()
}

// WriteAllAsync writes on its own goroutine and reports through done.
func (s *Storage) WriteAllAsync(path string, data []byte, done func(error)) {
	go func() {
		done(s.WriteAll(path, data))
	}()
}
