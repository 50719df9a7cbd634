// Package model defines the domain types for the arbor CLI.
//
// This package contains pure data structures: the worktree registry
// record, its lifecycle status, and the exit-code-carrying error type
// (CLIError) used by every other package to report failures to the CLI
// layer. Records are persisted as a single JSON array on disk (see
// internal/registry); everything else is derived at runtime.
package model
