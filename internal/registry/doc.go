// Package registry implements the worktree registry: a single JSON file
// holding an ordered array of worktree records, plus the in-memory
// operations (add, remove, lookup) that maintain its invariants.
//
// The Store owns the file exclusively — no other package reads or writes
// it. Each CLI invocation loads the registry once, mutates it in memory,
// and saves it once. Saves are atomic (write to a temp file in the same
// directory, then rename) so a crash never truncates the registry.
//
// Known limitation: concurrent invocations of the CLI against the same
// registry are not mutually exclusive. The tool is single-user and
// interactive, so the policy is last-writer-wins; there is no file lock.
package registry
