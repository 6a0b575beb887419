package repo

import (
	"fmt"
	"sort"

	"gitlet/internal/content"
	"gitlet/internal/errors"
)

// Log prints the first-parent chain from HEAD back to the initial commit.
func (r *Repository) Log() error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	commit, err := r.headCommit()
	if err != nil {
		return err
	}
	for {
		r.printLogEntry(commit)
		if len(commit.Parents) == 0 {
			return nil
		}
		commit, err = r.commitAt(commit.Parents[0])
		if err != nil {
			return err
		}
	}
}

// GlobalLog prints every commit reachable from any branch, newest first,
// with ascending id as the tie-break.
func (r *Repository) GlobalLog() error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	commits, err := r.allCommits()
	if err != nil {
		return err
	}
	for _, commit := range commits {
		r.printLogEntry(commit)
	}
	return nil
}

// Find prints the ids of every commit whose message equals the given one.
func (r *Repository) Find(message string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	commits, err := r.allCommits()
	if err != nil {
		return err
	}
	found := false
	for _, commit := range commits {
		if commit.Message == message {
			fmt.Fprintln(r.out, commit.ID)
			found = true
		}
	}
	if !found {
		return errors.NoSuchMessage()
	}
	return nil
}

// allCommits collects every commit reachable from any branch tip, sorted
// reverse chronologically (id ascending on equal times).
func (r *Repository) allCommits() ([]*content.Commit, error) {
	branches, err := r.refs.ListBranches()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var commits []*content.Commit
	var stack []string
	for _, branch := range branches {
		tip, err := r.refs.BranchTip(branch)
		if err != nil {
			return nil, err
		}
		stack = append(stack, tip)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		commit, err := r.commitAt(id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
		stack = append(stack, commit.Parents...)
	}

	sort.Slice(commits, func(i, j int) bool {
		if !commits[i].Time.Equal(commits[j].Time) {
			return commits[i].Time.After(commits[j].Time)
		}
		return commits[i].ID < commits[j].ID
	})
	return commits, nil
}
