package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage writes export artifacts to disk. Relative names resolve under baseDir.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates baseDir when missing. An empty baseDir means the working directory.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save replaces filename with data and returns filename unchanged. Readers never
// observe a half-written file: data goes to a temporary sibling that is renamed into place.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	if filename == "" {
		return "", errors.New("export file name is empty")
	}
	target := s.resolve(filename)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return "", fmt.Errorf("create temporary export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("set export file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move export file into place: %w", err)
	}
	return filename, nil
}

// Path reports where Save puts filename.
func (s *LocalStorage) Path(filename string) string {
	return s.resolve(filename)
}

func (s *LocalStorage) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}
