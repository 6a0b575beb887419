package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gitlet/internal/content"
)

// Workspace is the set of regular files directly under the working root.
// Tracked paths are flat; the metadata directory and any other directories
// are never enumerated.
type Workspace struct {
	Root string
}

func New(root string) *Workspace {
	return &Workspace{Root: root}
}

// Abs resolves a user-supplied file name to an absolute path under the
// working root. Already-absolute paths are accepted as-is.
func (w *Workspace) Abs(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(w.Root, name)
}

// Files lists the absolute paths of every regular file directly under the
// root, in ascending order.
func (w *Workspace) Files() ([]string, error) {
	entries, err := os.ReadDir(w.Root)
	if err != nil {
		return nil, fmt.Errorf("listing working directory: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(w.Root, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Exists reports whether path is a regular file.
func (w *Workspace) Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Remove deletes the file at path if present.
func (w *Workspace) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// FileID returns the blob id the file at path would have, or "" when the
// file is absent.
func (w *Workspace) FileID(path string) (string, error) {
	if !w.Exists(path) {
		return "", nil
	}
	blob, err := content.NewBlob(path)
	if err != nil {
		return "", err
	}
	return blob.ID, nil
}
