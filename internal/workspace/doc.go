// Package workspace groups worktrees across multiple repositories under
// one name: creating workspace "feature-x" makes a "feature-x" worktree
// in every member project, so related changes in several repos can be
// worked on side by side.
//
// A workspace's member projects come either from an alias (a named,
// reusable YAML project list under the alias directory) or from a YAML
// template the user fills in via $EDITOR at creation time. The workspace
// itself is persisted as a JSON document under the workspaces directory.
//
// Per-project failures during create and remove are reported and skipped
// rather than aborting the whole operation — a workspace spanning five
// repos should not be blocked by one dirty checkout.
package workspace
