// Package worktree implements worktree lifecycle operations for the
// arbor CLI: creating a branch plus its checkout directory, resolving a
// worktree path by branch name, listing, and removal.
//
// Mutating git operations (worktree add/remove, branch deletion) shell
// out to the git binary, because linked-worktree support in pure-Go git
// implementations is incomplete and shelling out matches the behavior
// users see in their own terminal. Git's stderr is captured and surfaced
// verbatim in errors. Read-only repository detection (is this directory
// inside a repo, and where is its root) uses go-git, which needs no
// subprocess.
//
// The Manager pairs every git mutation with a registry update: a record
// is added only after `git worktree add` succeeds, and removed only
// after both the worktree directory and the branch are gone. A removal
// that deletes the directory but fails to delete the branch leaves the
// record behind with status "orphaned" instead of silently dropping it.
package worktree
