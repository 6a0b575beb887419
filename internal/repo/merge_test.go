package repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlet/internal/errors"
)

func TestMergePreconditions(t *testing.T) {
	e := initEnv(t)
	e.addCommit("a.txt", "1\n", "base")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("other") }))

	t.Run("dirty staging", func(t *testing.T) {
		e.write("a.txt", "2\n")
		require.NoError(t, e.run(func(r *Repository) error { return r.Add("a.txt") }))
		assertKind(t, e.run(func(r *Repository) error { return r.Merge("other") }),
			errors.KindUncommittedChanges)

		// Revert to clean for the remaining cases.
		e.write("a.txt", "1\n")
		require.NoError(t, e.run(func(r *Repository) error { return r.Add("a.txt") }))
	})

	t.Run("missing branch", func(t *testing.T) {
		err := e.run(func(r *Repository) error { return r.Merge("ghost") })
		assertKind(t, err, errors.KindNoSuchBranch)
		assert.Equal(t, "A branch with that name does not exist.", err.Error())
	})

	t.Run("self merge", func(t *testing.T) {
		assertKind(t, e.run(func(r *Repository) error { return r.Merge("master") }),
			errors.KindMergeWithSelf)
	})

	t.Run("untracked overwrite", func(t *testing.T) {
		require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("other") }))
		e.addCommit("b.txt", "theirs\n", "add b on other")
		require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("master") }))

		e.write("b.txt", "mine\n")
		assertKind(t, e.run(func(r *Repository) error { return r.Merge("other") }),
			errors.KindUntrackedOverwrite)
		require.NoError(t, e.run(func(r *Repository) error { return r.ws.Remove(r.ws.Abs("b.txt")) }))
	})
}

func TestMergeAncestorOfCurrent(t *testing.T) {
	e := initEnv(t)
	e.addCommit("a.txt", "1\n", "base")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("old") }))
	e.addCommit("a.txt", "2\n", "ahead")
	tipBefore := e.tip("master")

	out, err := e.output(func(r *Repository) error { return r.Merge("old") })
	require.NoError(t, err)
	assert.Equal(t, "Given branch is an ancestor of the current branch.\n", out)
	assert.Equal(t, tipBefore, e.tip("master"))
}

// Scenario: merging a strict descendant fast-forwards the current branch
// without creating a commit.
func TestMergeFastForward(t *testing.T) {
	e := initEnv(t)
	e.addCommit("a.txt", "1\n", "c1")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("feat") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("feat") }))
	e.addCommit("a.txt", "2\n", "c2")
	featTip := e.tip("feat")

	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("master") }))
	out, err := e.output(func(r *Repository) error { return r.Merge("feat") })
	require.NoError(t, err)

	assert.Equal(t, "Current branch fast-forwarded.\n", out)
	assert.Equal(t, featTip, e.tip("master"))
	assert.Equal(t, "2\n", e.read("a.txt"))
	assert.Equal(t, "ref: refs/heads/master\n", e.read(".gitlet/HEAD"))

	// No merge commit: the log has c2, c1, initial.
	log, err := e.output(func(r *Repository) error { return r.Log() })
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(log, "===\n"))
	assert.NotContains(t, log, "Merge:")
}

func TestMergeTakesOtherSideChanges(t *testing.T) {
	e := initEnv(t)
	e.addCommit("shared.txt", "s\n", "base")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("other") }))

	// Diverge: master adds a file, other modifies shared.txt and adds one.
	e.addCommit("ours.txt", "o\n", "ours")
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("other") }))
	e.addCommit("shared.txt", "updated\n", "update shared")
	e.addCommit("theirs.txt", "t\n", "theirs")
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("master") }))

	out, err := e.output(func(r *Repository) error { return r.Merge("other") })
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Equal(t, "updated\n", e.read("shared.txt"))
	assert.Equal(t, "t\n", e.read("theirs.txt"))
	assert.Equal(t, "o\n", e.read("ours.txt"))

	log, err := e.output(func(r *Repository) error { return r.Log() })
	require.NoError(t, err)
	assert.Contains(t, log, "Merged other into master.")
	assert.Contains(t, log, "Merge: ")
}

func TestMergeRemovesFilesDeletedOnOtherSide(t *testing.T) {
	e := initEnv(t)
	e.addCommit("doomed.txt", "d\n", "base")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("other") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("other") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.Remove("doomed.txt") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.Commit("drop doomed") }))
	e.addCommit("keep.txt", "k\n", "keep")
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("master") }))
	e.addCommit("unrelated.txt", "u\n", "diverge")

	_, err := e.output(func(r *Repository) error { return r.Merge("other") })
	require.NoError(t, err)

	assert.False(t, e.exists("doomed.txt"))
	assert.Equal(t, "k\n", e.read("keep.txt"))
}

// Scenario: both sides changed the same file differently; the conflict
// payload lands in the working tree and the merge commit still happens.
func TestMergeConflict(t *testing.T) {
	e := initEnv(t)
	e.addCommit("f.txt", "x\n", "base")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("other") }))

	e.addCommit("f.txt", "y\n", "head change")
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("other") }))
	e.addCommit("f.txt", "z\n", "other change")
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("master") }))

	out, err := e.output(func(r *Repository) error { return r.Merge("other") })
	require.NoError(t, err)
	assert.Equal(t, "Encountered a merge conflict.\n", out)

	want := "<<<<<<< HEAD\n" +
		"y\n" +
		"=======\n" +
		"z\n" +
		">>>>>>>\n"
	assert.Equal(t, want, e.read("f.txt"))

	log, err := e.output(func(r *Repository) error { return r.Log() })
	require.NoError(t, err)
	assert.Contains(t, log, "Merged other into master.")
	assert.Contains(t, log, "Merge: ")

	// The conflicted result is committed, so staging ends clean.
	assertKind(t, e.run(func(r *Repository) error { return r.Commit("noop") }),
		errors.KindNoChanges)
}

func TestMergeConflictModifiedVersusDeleted(t *testing.T) {
	e := initEnv(t)
	e.addCommit("f.txt", "x\n", "base")
	require.NoError(t, e.run(func(r *Repository) error { return r.Branch("other") }))

	e.addCommit("f.txt", "y\n", "modify")
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("other") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.Remove("f.txt") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.Commit("delete f") }))
	require.NoError(t, e.run(func(r *Repository) error { return r.CheckoutBranch("master") }))

	out, err := e.output(func(r *Repository) error { return r.Merge("other") })
	require.NoError(t, err)
	assert.Equal(t, "Encountered a merge conflict.\n", out)

	want := "<<<<<<< HEAD\n" +
		"y\n" +
		"=======\n" +
		">>>>>>>\n"
	assert.Equal(t, want, e.read("f.txt"))
}
