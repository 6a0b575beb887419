package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// DefaultBranch is the branch created by init.
	DefaultBranch = "master"

	// GitletDirName is the metadata directory co-located with the
	// working tree.
	GitletDirName = ".gitlet"
)

// Paths holds every location the engine touches, anchored at one working
// directory.
type Paths struct {
	WorkDir    string // working tree root, absolute
	GitletDir  string // <WorkDir>/.gitlet
	ObjectsDir string // <GitletDir>/objects
	RefsDir    string // <GitletDir>/refs
	HeadsDir   string // <GitletDir>/refs/heads
	HeadFile   string // <GitletDir>/HEAD
	IndexFile  string // <GitletDir>/index
}

// At resolves the path set for a working directory. The directory is made
// absolute once; everything downstream compares absolute paths.
func At(workDir string) *Paths {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		abs = workDir
	}
	gitletDir := filepath.Join(abs, GitletDirName)
	refsDir := filepath.Join(gitletDir, "refs")
	return &Paths{
		WorkDir:    abs,
		GitletDir:  gitletDir,
		ObjectsDir: filepath.Join(gitletDir, "objects"),
		RefsDir:    refsDir,
		HeadsDir:   filepath.Join(refsDir, "heads"),
		HeadFile:   filepath.Join(gitletDir, "HEAD"),
		IndexFile:  filepath.Join(gitletDir, "index"),
	}
}

// Default returns the path set for the working directory captured at first
// use. Resolved lazily and memoized; a process serves exactly one working
// directory.
var Default = sync.OnceValue(func() *Paths {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return At(dir)
})

// LogLevel returns the zap level name for this invocation. The default keeps
// the CLI output limited to the contractual text.
func LogLevel() string {
	if level := os.Getenv("GITLET_LOG_LEVEL"); level != "" {
		return level
	}
	return "error"
}

// Initialized reports whether a repository exists at p.
func (p *Paths) Initialized() bool {
	fi, err := os.Stat(p.GitletDir)
	return err == nil && fi.IsDir()
}
