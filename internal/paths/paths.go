// Package paths provides centralized path resolution for arbor's data
// directories.
//
// All state lives under a single base directory, ~/.arbor by default:
//
//   - registry.json — the worktree registry (see internal/registry)
//   - worktrees/    — default parent directory for worktree checkouts
//   - prompts/      — system prompt markdown files
//   - workspaces/   — workspace definitions
//   - alias/        — workspace alias definitions
//   - agents.jsonc  — optional user-defined agent commands
//   - logs/         — log files
//
// The worktrees directory alone can be relocated with the
// ARBOR_WORKTREE_DIR environment variable, so checkouts can live on a
// different volume than the metadata.
package paths

import (
	"os"
	"path/filepath"
)

// WorktreeDirEnv is the environment variable that overrides the base
// directory under which worktree directories are created.
const WorktreeDirEnv = "ARBOR_WORKTREE_DIR"

// BaseDir returns the root of arbor's data directory (~/.arbor).
// Falls back to a relative ".arbor" if the home directory cannot be
// resolved, which only happens in stripped-down environments.
func BaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arbor"
	}
	return filepath.Join(home, ".arbor")
}

// RegistryPath returns the path of the worktree registry file.
func RegistryPath() string {
	return filepath.Join(BaseDir(), "registry.json")
}

// WorktreesDir returns the directory under which worktree checkouts are
// created. ARBOR_WORKTREE_DIR takes precedence over the default.
func WorktreesDir() string {
	if dir := os.Getenv(WorktreeDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(BaseDir(), "worktrees")
}

// PromptsDir returns the directory holding system prompt markdown files.
func PromptsDir() string {
	return filepath.Join(BaseDir(), "prompts")
}

// WorkspacesDir returns the directory holding workspace definitions.
func WorkspacesDir() string {
	return filepath.Join(BaseDir(), "workspaces")
}

// AliasDir returns the directory holding workspace alias definitions.
func AliasDir() string {
	return filepath.Join(BaseDir(), "alias")
}

// AgentsConfigPath returns the path of the optional user agent
// definition file.
func AgentsConfigPath() string {
	return filepath.Join(BaseDir(), "agents.jsonc")
}

// LogsDir returns the directory for log files.
func LogsDir() string {
	return filepath.Join(BaseDir(), "logs")
}
