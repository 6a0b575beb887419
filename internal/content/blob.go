package content

import (
	"fmt"
	"os"

	"gitlet/shared/utils"
)

// Blob is an immutable snapshot of one working-tree file. The source path is
// mixed into the id, so identical bytes at two paths are distinct blobs.
type Blob struct {
	SourcePath string `json:"source_path"`
	Content    []byte `json:"content"`
	ID         string `json:"id"`
}

// NewBlob reads the file at path and computes its identity.
func NewBlob(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Blob{
		SourcePath: path,
		Content:    data,
		ID:         utils.HashContent([]byte(path), data),
	}, nil
}

// Restore writes the blob's content to path, overwriting any existing file.
func (b *Blob) Restore(path string) error {
	if err := os.WriteFile(path, b.Content, 0o644); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	return nil
}
