package model

import (
	"fmt"
	"strings"
	"time"
)

// WorktreeStatus represents the lifecycle state of a registered worktree.
//
// A record is "active" from creation until a successful remove deletes it.
// "orphaned" marks the partial-failure case where the worktree directory
// was removed but deleting the git branch failed — the record is retained
// so the leftover branch stays visible and the removal can be retried.
type WorktreeStatus string

const (
	// StatusActive indicates the worktree directory exists and is usable.
	StatusActive WorktreeStatus = "active"

	// StatusOrphaned indicates the worktree directory was removed but the
	// associated git branch could not be deleted. A subsequent remove
	// retries only the branch deletion.
	StatusOrphaned WorktreeStatus = "orphaned"
)

// String returns the string representation of WorktreeStatus.
func (s WorktreeStatus) String() string {
	return string(s)
}

// IsValid checks whether the WorktreeStatus value is one of the
// predefined valid states.
func (s WorktreeStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusOrphaned:
		return true
	default:
		return false
	}
}

// ParseWorktreeStatus converts a string to a WorktreeStatus.
// Returns an error if the string does not match any valid status.
func ParseWorktreeStatus(s string) (WorktreeStatus, error) {
	status := WorktreeStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid worktree status: %q (valid: active, orphaned)", s)
	}
	return status, nil
}

// WorktreeRecord is a single entry in the worktree registry.
//
// Invariants (enforced by internal/registry):
//   - ID and Path are unique across the registry.
//   - Branch is unique within a ProjectRoot.
type WorktreeRecord struct {
	// ID is a UUID generated when the record is created.
	ID string `json:"id"`

	// Branch is the git branch name exactly as the caller gave it.
	Branch string `json:"branch"`

	// Path is the absolute filesystem path of the worktree directory.
	Path string `json:"path"`

	// ProjectRoot is the absolute path of the repository the worktree
	// was created from.
	ProjectRoot string `json:"project_root"`

	// ProjectName is the basename of ProjectRoot, kept for display.
	ProjectName string `json:"project_name"`

	// Agent is the name of the agent last associated with this worktree.
	// "none" when the worktree was created without an agent.
	Agent string `json:"agent,omitempty"`

	// Status is the lifecycle state of the record.
	Status WorktreeStatus `json:"status"`

	// CreatedAt and UpdatedAt are UTC timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExitCode defines the CLI exit codes. 0 means success; distinct non-zero
// codes let scripts distinguish failure classes without parsing stderr.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitGitError indicates a git invocation returned non-zero.
	// The error message includes the captured stderr verbatim.
	ExitGitError ExitCode = 2

	// ExitNotFound indicates no registry record matched the given branch.
	ExitNotFound ExitCode = 3

	// ExitDuplicateBranch indicates a record already exists for the branch
	// within the same project.
	ExitDuplicateBranch ExitCode = 4

	// ExitRegistryCorrupt indicates the registry file failed to parse.
	// The file is never auto-deleted; the command aborts.
	ExitRegistryCorrupt ExitCode = 5

	// ExitIOError indicates a filesystem operation failed.
	ExitIOError ExitCode = 6

	// ExitAgentError indicates the agent process could not be started or
	// exited non-zero. The agent's own exit code is forwarded when known.
	ExitAgentError ExitCode = 7

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 8
)

// CLIError is a custom error type that carries an exit code, allowing
// the CLI layer to translate domain errors into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
