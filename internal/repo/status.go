package repo

import (
	"fmt"
	"path/filepath"

	"gitlet/shared/utils"
)

// Status prints the five status sections: branches, staged files, removed
// files, unstaged modifications, and untracked files.
func (r *Repository) Status() error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	branches, err := r.refs.ListBranches()
	if err != nil {
		return err
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	stage, err := r.stagingArea()
	if err != nil {
		return err
	}

	r.printHeader("Branches")
	r.printCurrentBranch(current)
	for _, branch := range branches {
		if branch != current {
			fmt.Fprintln(r.out, branch)
		}
	}
	fmt.Fprintln(r.out)

	r.printHeader("Staged Files")
	for _, path := range utils.SortedKeys(stage.Added) {
		fmt.Fprintln(r.out, filepath.Base(path))
	}
	fmt.Fprintln(r.out)

	r.printHeader("Removed Files")
	for _, path := range utils.SortedKeys(stage.Removed) {
		fmt.Fprintln(r.out, filepath.Base(path))
	}
	fmt.Fprintln(r.out)

	effective, err := r.effectiveSnapshot()
	if err != nil {
		return err
	}

	r.printHeader("Modifications Not Staged For Commit")
	for _, path := range utils.SortedKeys(effective) {
		if !r.ws.Exists(path) {
			fmt.Fprintf(r.out, "%s (deleted)\n", filepath.Base(path))
			continue
		}
		id, err := r.ws.FileID(path)
		if err != nil {
			return err
		}
		if id != effective[path] {
			fmt.Fprintf(r.out, "%s (modified)\n", filepath.Base(path))
		}
	}
	fmt.Fprintln(r.out)

	r.printHeader("Untracked Files")
	files, err := r.ws.Files()
	if err != nil {
		return err
	}
	for _, path := range files {
		if _, ok := effective[path]; !ok {
			fmt.Fprintln(r.out, filepath.Base(path))
		}
	}
	fmt.Fprintln(r.out)
	return nil
}

// effectiveSnapshot is the tracked-after-staging view: the HEAD snapshot
// with staged additions applied and staged removals deleted.
func (r *Repository) effectiveSnapshot() (map[string]string, error) {
	head, err := r.headCommit()
	if err != nil {
		return nil, err
	}
	stage, err := r.stagingArea()
	if err != nil {
		return nil, err
	}
	effective := make(map[string]string, len(head.Tracked)+len(stage.Added))
	for path, id := range head.Tracked {
		effective[path] = id
	}
	for path, id := range stage.Added {
		effective[path] = id
	}
	for path := range stage.Removed {
		delete(effective, path)
	}
	return effective, nil
}
