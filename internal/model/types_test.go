package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorktreeStatus_String verifies that WorktreeStatus values produce
// the expected string representations for CLI output and JSON serialization.
func TestWorktreeStatus_String(t *testing.T) {
	tests := []struct {
		status   WorktreeStatus
		expected string
	}{
		{StatusActive, "active"},
		{StatusOrphaned, "orphaned"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// TestWorktreeStatus_IsValid checks that only defined status values pass validation.
func TestWorktreeStatus_IsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusOrphaned.IsValid())
	assert.False(t, WorktreeStatus("removed").IsValid())
	assert.False(t, WorktreeStatus("").IsValid())
}

// TestParseWorktreeStatus verifies string-to-status conversion,
// including case normalization and error cases.
func TestParseWorktreeStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected WorktreeStatus
		hasError bool
	}{
		{"active", StatusActive, false},
		{"orphaned", StatusOrphaned, false},
		{"Active", StatusActive, false}, // case insensitive
		{"ORPHANED", StatusOrphaned, false},
		{"paused", "", true}, // unknown value
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseWorktreeStatus(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitNotFound, "worktree for branch 'x' not found")
		assert.Equal(t, ExitNotFound, err.Code)
		assert.Equal(t, "worktree for branch 'x' not found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitIOError, "failed to write registry", inner)
		assert.Equal(t, ExitIOError, err.Code)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("exit status 128")
		err := WrapCLIError(ExitGitError, "git worktree add failed", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
