package repo

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"gitlet/internal/config"
	"gitlet/internal/content"
	"gitlet/internal/errors"
	"gitlet/internal/refs"
	"gitlet/internal/staging"
	"gitlet/internal/workspace"
)

// Repository is the top-level engine. One instance serves one command
// invocation; HEAD state and the staging area are loaded on first demand and
// memoized for the rest of the invocation.
type Repository struct {
	paths  *config.Paths
	refs   *refs.Store
	ws     *workspace.Workspace
	out    io.Writer
	logger *zap.Logger

	store  *content.FileStore
	branch string
	head   *content.Commit
	stage  *staging.Area
}

func New(paths *config.Paths, out io.Writer, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		paths:  paths,
		refs:   refs.NewStore(paths),
		ws:     workspace.New(paths.WorkDir),
		out:    out,
		logger: logger,
	}
}

// RequireInit fails unless the metadata directory exists.
func (r *Repository) RequireInit() error {
	if !r.paths.Initialized() {
		return errors.NotInitialized()
	}
	return nil
}

// Init creates the repository skeleton, the initial commit, and the master
// branch.
func (r *Repository) Init() error {
	if r.paths.Initialized() {
		return errors.AlreadyInitialized()
	}
	if err := os.MkdirAll(r.paths.HeadsDir, 0o755); err != nil {
		return fmt.Errorf("creating repository skeleton: %w", err)
	}

	store, err := content.NewFileStore(r.paths.ObjectsDir, r.logger)
	if err != nil {
		return err
	}
	r.store = store

	initial := content.InitialCommit()
	if err := store.PutCommit(initial); err != nil {
		return err
	}
	if err := r.refs.SetBranchTip(config.DefaultBranch, initial.ID); err != nil {
		return err
	}
	if err := r.refs.SetCurrentBranch(config.DefaultBranch); err != nil {
		return err
	}

	r.logger.Debug("initialized repository",
		zap.String("dir", r.paths.GitletDir),
		zap.String("initial_commit", initial.ID))
	return nil
}

// objects returns the object store, opening it on first use.
func (r *Repository) objects() (*content.FileStore, error) {
	if r.store != nil {
		return r.store, nil
	}
	if err := r.RequireInit(); err != nil {
		return nil, err
	}
	store, err := content.NewFileStore(r.paths.ObjectsDir, r.logger)
	if err != nil {
		return nil, err
	}
	r.store = store
	return store, nil
}

// currentBranch returns the branch HEAD designates, memoized.
func (r *Repository) currentBranch() (string, error) {
	if r.branch != "" {
		return r.branch, nil
	}
	branch, err := r.refs.CurrentBranch()
	if err != nil {
		return "", err
	}
	r.branch = branch
	return branch, nil
}

// headCommit returns the tip commit of the current branch, memoized.
func (r *Repository) headCommit() (*content.Commit, error) {
	if r.head != nil {
		return r.head, nil
	}
	branch, err := r.currentBranch()
	if err != nil {
		return nil, err
	}
	tip, err := r.refs.BranchTip(branch)
	if err != nil {
		return nil, err
	}
	store, err := r.objects()
	if err != nil {
		return nil, err
	}
	head, err := store.GetCommit(tip)
	if err != nil {
		return nil, fmt.Errorf("loading HEAD commit %s: %w", tip, err)
	}
	r.head = head
	return head, nil
}

// stagingArea returns the staging area with the HEAD snapshot injected,
// memoized.
func (r *Repository) stagingArea() (*staging.Area, error) {
	if r.stage != nil {
		return r.stage, nil
	}
	store, err := r.objects()
	if err != nil {
		return nil, err
	}
	stage, err := staging.Load(r.paths.IndexFile, store)
	if err != nil {
		return nil, err
	}
	head, err := r.headCommit()
	if err != nil {
		return nil, err
	}
	stage.SetTracked(head.Tracked)
	r.stage = stage
	return stage, nil
}

// commitAt loads a commit by full id.
func (r *Repository) commitAt(id string) (*content.Commit, error) {
	store, err := r.objects()
	if err != nil {
		return nil, err
	}
	c, err := store.GetCommit(id)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", id, err)
	}
	return c, nil
}

// branchTipCommit loads the tip commit of a branch.
func (r *Repository) branchTipCommit(name string) (*content.Commit, error) {
	tip, err := r.refs.BranchTip(name)
	if err != nil {
		return nil, err
	}
	return r.commitAt(tip)
}

// isUntracked reports whether path is present in neither the effective
// snapshot (HEAD minus staged removals) nor the staged additions.
func (r *Repository) isUntracked(path string) (bool, error) {
	head, err := r.headCommit()
	if err != nil {
		return false, err
	}
	stage, err := r.stagingArea()
	if err != nil {
		return false, err
	}
	if _, ok := stage.Added[path]; ok {
		return false, nil
	}
	if head.IsTracked(path) && !stage.Removed[path] {
		return false, nil
	}
	return true, nil
}
