package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gitlet/internal/config"
	"gitlet/shared/utils"
)

// headRefPrefix is the symbolic-ref marker inside the HEAD file.
const headRefPrefix = "ref: refs/heads/"

// Store maps branch names to tip commit ids, one plain-text file per branch
// under refs/heads, plus the symbolic HEAD reference.
type Store struct {
	headsDir string
	headFile string
}

func NewStore(paths *config.Paths) *Store {
	return &Store{
		headsDir: paths.HeadsDir,
		headFile: paths.HeadFile,
	}
}

func (s *Store) branchFile(name string) string {
	return filepath.Join(s.headsDir, name)
}

// BranchExists reports whether a branch ref file exists.
func (s *Store) BranchExists(name string) bool {
	fi, err := os.Stat(s.branchFile(name))
	return err == nil && fi.Mode().IsRegular()
}

// BranchTip returns the commit id a branch points at.
func (s *Store) BranchTip(name string) (string, error) {
	data, err := os.ReadFile(s.branchFile(name))
	if err != nil {
		return "", fmt.Errorf("reading branch %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetBranchTip points a branch at a commit id, creating the ref if needed.
func (s *Store) SetBranchTip(name, id string) error {
	if err := utils.WriteFileAtomic(s.branchFile(name), []byte(id)); err != nil {
		return fmt.Errorf("writing branch %q: %w", name, err)
	}
	return nil
}

// DeleteBranch removes a branch ref file.
func (s *Store) DeleteBranch(name string) error {
	if err := os.Remove(s.branchFile(name)); err != nil {
		return fmt.Errorf("deleting branch %q: %w", name, err)
	}
	return nil
}

// ListBranches returns every branch name in ascending order.
func (s *Store) ListBranches() ([]string, error) {
	entries, err := os.ReadDir(s.headsDir)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CurrentBranch returns the branch HEAD designates.
func (s *Store) CurrentBranch() (string, error) {
	data, err := os.ReadFile(s.headFile)
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	ref := strings.TrimSpace(string(data))
	if !strings.HasPrefix(ref, headRefPrefix) {
		return "", fmt.Errorf("invalid HEAD content: %q", ref)
	}
	return strings.TrimPrefix(ref, headRefPrefix), nil
}

// SetCurrentBranch points HEAD at a branch.
func (s *Store) SetCurrentBranch(name string) error {
	content := headRefPrefix + name + "\n"
	if err := utils.WriteFileAtomic(s.headFile, []byte(content)); err != nil {
		return fmt.Errorf("writing HEAD: %w", err)
	}
	return nil
}
