package repo

import (
	"go.uber.org/zap"

	"gitlet/internal/content"
	"gitlet/internal/errors"
)

// CheckoutFile replaces the working copy of the named file with the version
// in the HEAD commit.
func (r *Repository) CheckoutFile(name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	return r.restoreTracked(head, r.ws.Abs(name))
}

// CheckoutCommitFile replaces the working copy of the named file with the
// version in the given commit. The id may be an abbreviation of at least
// four characters.
func (r *Repository) CheckoutCommitFile(idPrefix, name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	store, err := r.objects()
	if err != nil {
		return err
	}
	id, err := store.ResolveCommit(idPrefix)
	if err != nil {
		return err
	}
	commit, err := r.commitAt(id)
	if err != nil {
		return err
	}
	return r.restoreTracked(commit, r.ws.Abs(name))
}

// restoreTracked writes the blob a commit tracks for path back to the
// working tree.
func (r *Repository) restoreTracked(commit *content.Commit, path string) error {
	id := commit.TrackedID(path)
	if id == "" {
		return errors.NotInCommit()
	}
	store, err := r.objects()
	if err != nil {
		return err
	}
	blob, err := store.GetBlob(id)
	if err != nil {
		return err
	}
	return blob.Restore(path)
}

// CheckoutBranch switches HEAD to another branch and re-materializes its
// snapshot, refusing to destroy untracked work.
func (r *Repository) CheckoutBranch(name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	if !r.refs.BranchExists(name) {
		return errors.NoSuchBranch()
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return errors.AlreadyOnBranch()
	}
	target, err := r.branchTipCommit(name)
	if err != nil {
		return err
	}
	if err := r.checkUntrackedOverwrite(target); err != nil {
		return err
	}
	if err := r.materialize(target); err != nil {
		return err
	}
	if err := r.refs.SetCurrentBranch(name); err != nil {
		return err
	}
	r.branch = name
	r.head = target

	r.logger.Debug("checked out branch",
		zap.String("branch", name),
		zap.String("tip", target.ID))
	return nil
}

// Branch creates a new branch pointing at the HEAD commit.
func (r *Repository) Branch(name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	if r.refs.BranchExists(name) {
		return errors.BranchExists()
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	return r.refs.SetBranchTip(name, head.ID)
}

// RemoveBranch deletes a branch ref. The commits it pointed at remain.
func (r *Repository) RemoveBranch(name string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	if !r.refs.BranchExists(name) {
		return errors.NoSuchBranchRef()
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return errors.RemoveCurrentBranch()
	}
	return r.refs.DeleteBranch(name)
}

// Reset moves the current branch's tip to the given commit and
// re-materializes its snapshot. HEAD keeps naming the same branch.
func (r *Repository) Reset(idPrefix string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	store, err := r.objects()
	if err != nil {
		return err
	}
	id, err := store.ResolveCommit(idPrefix)
	if err != nil {
		return err
	}
	target, err := r.commitAt(id)
	if err != nil {
		return err
	}
	if err := r.checkUntrackedOverwrite(target); err != nil {
		return err
	}
	if err := r.materialize(target); err != nil {
		return err
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if err := r.refs.SetBranchTip(current, id); err != nil {
		return err
	}
	r.head = target

	r.logger.Debug("reset branch",
		zap.String("branch", current),
		zap.String("tip", id))
	return nil
}

// checkUntrackedOverwrite fails when re-materializing target would replace
// an untracked working-tree file with different content.
func (r *Repository) checkUntrackedOverwrite(target *content.Commit) error {
	files, err := r.ws.Files()
	if err != nil {
		return err
	}
	for _, path := range files {
		untracked, err := r.isUntracked(path)
		if err != nil {
			return err
		}
		if !untracked {
			continue
		}
		targetID := target.TrackedID(path)
		if targetID == "" {
			continue
		}
		workingID, err := r.ws.FileID(path)
		if err != nil {
			return err
		}
		if workingID != targetID {
			return errors.UntrackedOverwrite()
		}
	}
	return nil
}

// materialize clears the staging area, deletes the files tracked by the
// current HEAD commit, and restores the target snapshot. Untracked files
// that passed the safety check are left in place.
func (r *Repository) materialize(target *content.Commit) error {
	stage, err := r.stagingArea()
	if err != nil {
		return err
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	store, err := r.objects()
	if err != nil {
		return err
	}

	stage.Clear()
	if err := stage.Save(); err != nil {
		return err
	}
	stage.SetTracked(target.Tracked)

	for path := range head.Tracked {
		if err := r.ws.Remove(path); err != nil {
			return err
		}
	}
	for path, id := range target.Tracked {
		blob, err := store.GetBlob(id)
		if err != nil {
			return err
		}
		if err := blob.Restore(path); err != nil {
			return err
		}
	}
	return nil
}
