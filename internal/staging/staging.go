package staging

import (
	"fmt"
	"os"

	"gitlet/internal/content"
	"gitlet/shared/utils"
)

// Area is the pending-change buffer between commits, persisted at the index
// file. Added maps file path to blob id; Removed marks paths staged for
// deletion. A path lives in at most one of the two. The tracked view is
// injected from the HEAD commit on load and never persisted.
type Area struct {
	Added   map[string]string `json:"added"`
	Removed map[string]bool   `json:"removed"`

	tracked map[string]string
	path    string
	store   *content.FileStore
}

// Load reads the staging area from the index file, or returns an empty one
// if the file does not exist yet.
func Load(path string, store *content.FileStore) (*Area, error) {
	a := &Area{path: path, store: store}
	if err := utils.ReadJSON(path, a); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading index: %w", err)
		}
	}
	if a.Added == nil {
		a.Added = map[string]string{}
	}
	if a.Removed == nil {
		a.Removed = map[string]bool{}
	}
	return a, nil
}

// SetTracked injects the HEAD commit's snapshot. The map is read, never
// mutated; Drain builds a fresh copy.
func (a *Area) SetTracked(tracked map[string]string) {
	if tracked == nil {
		tracked = map[string]string{}
	}
	a.tracked = tracked
}

// TrackedID returns the blob id the HEAD snapshot records for path.
func (a *Area) TrackedID(path string) string {
	return a.tracked[path]
}

// Add stages the file at path. If its content matches the tracked version,
// any pending stage entry for the path is reverted instead. Returns whether
// the staging area changed.
func (a *Area) Add(path string) (bool, error) {
	blob, err := content.NewBlob(path)
	if err != nil {
		return false, err
	}

	if a.tracked[path] == blob.ID && a.tracked[path] != "" {
		changed := false
		if _, ok := a.Added[path]; ok {
			delete(a.Added, path)
			changed = true
		}
		if a.Removed[path] {
			delete(a.Removed, path)
			changed = true
		}
		return changed, nil
	}

	prev, had := a.Added[path]
	a.Added[path] = blob.ID
	delete(a.Removed, path)
	if had && prev == blob.ID {
		return false, nil
	}

	if !a.store.Exists(blob.ID) {
		if err := a.store.PutBlob(blob); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Remove unstages a pending addition for path, or stages the tracked file
// for removal and deletes its working copy. Returns whether the staging
// area changed.
func (a *Area) Remove(path string) (bool, error) {
	if _, ok := a.Added[path]; ok {
		delete(a.Added, path)
		return true, nil
	}

	if _, ok := a.tracked[path]; ok {
		if a.Removed[path] {
			return false, nil
		}
		a.Removed[path] = true
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("removing %s: %w", path, err)
		}
		return true, nil
	}
	return false, nil
}

// IsClean reports whether nothing is staged.
func (a *Area) IsClean() bool {
	return len(a.Added) == 0 && len(a.Removed) == 0
}

// Clear drops every pending entry.
func (a *Area) Clear() {
	a.Added = map[string]string{}
	a.Removed = map[string]bool{}
}

// Drain produces the tracked map of the next commit: the injected view with
// additions applied and removals deleted. The staging sets are cleared and
// the new map becomes the tracked view.
func (a *Area) Drain() map[string]string {
	next := make(map[string]string, len(a.tracked)+len(a.Added))
	for path, id := range a.tracked {
		next[path] = id
	}
	for path, id := range a.Added {
		next[path] = id
	}
	for path := range a.Removed {
		delete(next, path)
	}
	a.Clear()
	a.tracked = next
	return next
}

// Save persists the staging sets to the index file.
func (a *Area) Save() error {
	return utils.WriteJSON(a.path, a)
}
