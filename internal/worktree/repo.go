package worktree

import (
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// DetectProjectRoot returns the root working directory of the git
// repository containing dir, walking upward the way `git` itself does.
// ok is false when dir is not inside any repository.
//
// Detection uses go-git rather than a subprocess: it is a pure read and
// runs on every invocation, including the bare `arbor` listing where no
// git mutation will follow.
func DetectProjectRoot(dir string) (root string, ok bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository — it has no working tree to put worktrees next to.
		return "", false
	}

	root = wt.Filesystem.Root()
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return root, true
}

// InsideGitRepo reports whether dir is inside a git repository with a
// working tree.
func InsideGitRepo(dir string) bool {
	_, ok := DetectProjectRoot(dir)
	return ok
}
