// Package output writes rendered results to disk.
// Every run replaces the previous file at the configured path.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes rendered output to a single file.
type Writer struct {
	Path string
}

// New creates a Writer targeting path, creating its parent directory.
func New(path string) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	// Ensure the output directory exists.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{Path: path}, nil
}

// Write replaces the file's contents with data. The data is written to a
// temporary sibling first so a failed run never leaves a truncated file.
func (w *Writer) Write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(w.Path), "."+filepath.Base(w.Path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", w.Path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing file %s: %w", w.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing file %s: %w", w.Path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing file %s: %w", w.Path, err)
	}
	if err := os.Rename(tmpName, w.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing file %s: %w", w.Path, err)
	}
	return nil
}
