package repo

import (
	"container/heap"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"gitlet/internal/content"
	"gitlet/internal/errors"
	"gitlet/shared/utils"
)

const (
	ancestorMergeMessage = "Given branch is an ancestor of the current branch."
	fastForwardMessage   = "Current branch fast-forwarded."
	mergeConflictMessage = "Encountered a merge conflict."
)

// Merge performs a three-way merge of another branch into the current one.
func (r *Repository) Merge(other string) error {
	if err := r.RequireInit(); err != nil {
		return err
	}
	stage, err := r.stagingArea()
	if err != nil {
		return err
	}
	if !stage.IsClean() {
		return errors.UncommittedChanges()
	}
	if !r.refs.BranchExists(other) {
		return errors.NoSuchBranchRef()
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if other == current {
		return errors.MergeWithSelf()
	}
	otherCommit, err := r.branchTipCommit(other)
	if err != nil {
		return err
	}
	if err := r.checkUntrackedOverwrite(otherCommit); err != nil {
		return err
	}
	head, err := r.headCommit()
	if err != nil {
		return err
	}

	split, err := r.splitPoint(head, otherCommit)
	if err != nil {
		return err
	}
	r.logger.Debug("computed split point",
		zap.String("split", split.ID),
		zap.String("head", head.ID),
		zap.String("other", otherCommit.ID))

	if split.ID == otherCommit.ID {
		fmt.Fprintln(r.out, ancestorMergeMessage)
		return nil
	}
	if split.ID == head.ID {
		if err := r.materialize(otherCommit); err != nil {
			return err
		}
		if err := r.refs.SetBranchTip(current, otherCommit.ID); err != nil {
			return err
		}
		r.head = otherCommit
		fmt.Fprintln(r.out, fastForwardMessage)
		return nil
	}

	conflicted, err := r.applyThreeWay(split, head, otherCommit)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Merged %s into %s.", other, current)
	if _, err := r.commitWith(message, []string{head.ID, otherCommit.ID}); err != nil {
		return err
	}
	if conflicted {
		fmt.Fprintln(r.out, mergeConflictMessage)
	}
	return nil
}

// applyThreeWay walks the union of paths in the three snapshots and applies
// the classic rules: a side that changed relative to the split wins; two
// sides that disagree conflict. Returns whether any conflict occurred.
func (r *Repository) applyThreeWay(split, head, other *content.Commit) (bool, error) {
	stage, err := r.stagingArea()
	if err != nil {
		return false, err
	}
	store, err := r.objects()
	if err != nil {
		return false, err
	}

	paths := map[string]bool{}
	for path := range split.Tracked {
		paths[path] = true
	}
	for path := range head.Tracked {
		paths[path] = true
	}
	for path := range other.Tracked {
		paths[path] = true
	}
	ordered := make([]string, 0, len(paths))
	for path := range paths {
		ordered = append(ordered, path)
	}
	sort.Strings(ordered)

	conflicted := false
	for _, path := range ordered {
		base := split.TrackedID(path)
		ours := head.TrackedID(path)
		theirs := other.TrackedID(path)

		switch {
		case ours == theirs:
			// Same content or same absence on both sides.
		case base == ours:
			// Only the other branch changed; take its side.
			if theirs == "" {
				if _, err := stage.Remove(path); err != nil {
					return false, err
				}
				continue
			}
			blob, err := store.GetBlob(theirs)
			if err != nil {
				return false, err
			}
			if err := blob.Restore(path); err != nil {
				return false, err
			}
			if _, err := stage.Add(path); err != nil {
				return false, err
			}
		case base == theirs:
			// Only our branch changed; keep HEAD.
		default:
			conflicted = true
			if err := r.writeConflict(path, ours, theirs); err != nil {
				return false, err
			}
			if _, err := stage.Add(path); err != nil {
				return false, err
			}
		}
	}
	return conflicted, nil
}

// writeConflict synthesizes the bracketed conflict payload into the working
// file. Either side may be absent, contributing empty content.
func (r *Repository) writeConflict(path, ours, theirs string) error {
	store, err := r.objects()
	if err != nil {
		return err
	}
	side := func(id string) ([]byte, error) {
		if id == "" {
			return nil, nil
		}
		blob, err := store.GetBlob(id)
		if err != nil {
			return nil, err
		}
		return blob.Content, nil
	}
	oursContent, err := side(ours)
	if err != nil {
		return err
	}
	theirsContent, err := side(theirs)
	if err != nil {
		return err
	}

	payload := make([]byte, 0, len(oursContent)+len(theirsContent)+32)
	payload = append(payload, "<<<<<<< HEAD\n"...)
	payload = append(payload, oursContent...)
	payload = append(payload, "=======\n"...)
	payload = append(payload, theirsContent...)
	payload = append(payload, ">>>>>>>\n"...)
	return utils.WriteFileAtomic(path, payload)
}

// splitPoint finds the latest common ancestor of two commits: a BFS from
// both tips ordered newest-first; the first commit reached from both sides
// wins. Ties on time break on ascending id so the result is deterministic.
func (r *Repository) splitPoint(a, b *content.Commit) (*content.Commit, error) {
	const (
		sideA = 1 << 0
		sideB = 1 << 1
		both  = sideA | sideB
	)

	seen := map[string]int{a.ID: sideA, b.ID: sideB}
	queue := &commitQueue{}
	heap.Init(queue)
	heap.Push(queue, a)
	heap.Push(queue, b)
	queued := map[string]bool{a.ID: true, b.ID: true}

	for queue.Len() > 0 {
		commit := heap.Pop(queue).(*content.Commit)
		queued[commit.ID] = false
		if seen[commit.ID] == both {
			return commit, nil
		}
		for _, parentID := range commit.Parents {
			union := seen[parentID] | seen[commit.ID]
			if union == seen[parentID] {
				continue
			}
			seen[parentID] = union
			// Re-queue a parent whose side set grew, even if it was
			// already popped; it may now be the common ancestor.
			if !queued[parentID] {
				parent, err := r.commitAt(parentID)
				if err != nil {
					return nil, err
				}
				heap.Push(queue, parent)
				queued[parentID] = true
			}
		}
	}
	return nil, fmt.Errorf("no common ancestor for %s and %s", a.ID, b.ID)
}

// commitQueue pops the newest commit first, id ascending on equal times.
type commitQueue []*content.Commit

func (q commitQueue) Len() int { return len(q) }

func (q commitQueue) Less(i, j int) bool {
	if !q[i].Time.Equal(q[j].Time) {
		return q[i].Time.After(q[j].Time)
	}
	return q[i].ID < q[j].ID
}

func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commitQueue) Push(x any) { *q = append(*q, x.(*content.Commit)) }

func (q *commitQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
