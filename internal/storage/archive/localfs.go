package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// LocalFS implements Storage on the local filesystem.
type LocalFS struct {
	basePath string
}

// NewLocalFS creates a LocalFS storage rooted at basePath, creating the
// directory if needed.
func NewLocalFS(basePath string) (*LocalFS, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating base path: %w", err)
	}
	return &LocalFS{basePath: basePath}, nil
}

func (l *LocalFS) fullPath(path string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(path))
}

func (l *LocalFS) Write(_ context.Context, path string, data []byte) error {
	fullPath := l.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}
	return os.WriteFile(fullPath, data, 0644)
}

func (l *LocalFS) Read(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(l.fullPath(path))
}

func (l *LocalFS) List(_ context.Context, prefix string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.fullPath(prefix), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, relErr := filepath.Rel(l.basePath, path)
			if relErr != nil {
				return relErr
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *LocalFS) Delete(_ context.Context, path string) error {
	return os.Remove(l.fullPath(path))
}

func (l *LocalFS) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(l.fullPath(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
