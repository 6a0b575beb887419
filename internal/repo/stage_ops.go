package repo

import (
	"go.uber.org/zap"

	"gitlet/internal/content"
	"gitlet/internal/errors"
)

// Add stages the named working-tree file.
func (r *Repository) Add(name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	path := r.ws.Abs(name)
	if !r.ws.Exists(path) {
		return errors.FileMissing()
	}

	stage, err := r.stagingArea()
	if err != nil {
		return err
	}
	changed, err := stage.Add(path)
	if err != nil {
		return err
	}
	if changed {
		return stage.Save()
	}
	return nil
}

// Remove unstages the named file or stages its removal.
func (r *Repository) Remove(name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	path := r.ws.Abs(name)

	stage, err := r.stagingArea()
	if err != nil {
		return err
	}
	changed, err := stage.Remove(path)
	if err != nil {
		return err
	}
	if !changed {
		return errors.NothingToRemove()
	}
	return stage.Save()
}

// Commit drains the staging area into a new commit on the current branch.
func (r *Repository) Commit(message string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	stage, err := r.stagingArea()
	if err != nil {
		return err
	}
	if stage.IsClean() {
		return errors.NoChanges()
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	_, err = r.commitWith(message, []string{head.ID})
	return err
}

// commitWith drains staging into a commit with the given parents and
// advances the current branch tip. Merge commits pass two parents and skip
// the clean-staging guard.
func (r *Repository) commitWith(message string, parents []string) (*content.Commit, error) {
	stage, err := r.stagingArea()
	if err != nil {
		return nil, err
	}
	store, err := r.objects()
	if err != nil {
		return nil, err
	}
	branch, err := r.currentBranch()
	if err != nil {
		return nil, err
	}

	tracked := stage.Drain()
	commit := content.NewCommit(message, parents, tracked)
	if err := store.PutCommit(commit); err != nil {
		return nil, err
	}
	if err := stage.Save(); err != nil {
		return nil, err
	}
	if err := r.refs.SetBranchTip(branch, commit.ID); err != nil {
		return nil, err
	}
	r.head = commit

	r.logger.Debug("created commit",
		zap.String("id", commit.ID),
		zap.String("branch", branch),
		zap.Strings("parents", parents),
		zap.Int("tracked", len(tracked)))
	return commit, nil
}
