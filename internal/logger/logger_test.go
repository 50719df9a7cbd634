package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetForTest clears the package-level logger state so each test can
// exercise Init independently.
func resetForTest() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
	initDone = false
}

// TestInit_WritesToFile verifies that Init creates the log directory and
// that subsequent log calls append to the file.
func TestInit_WritesToFile(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	path := filepath.Join(t.TempDir(), "logs", "arbor.log")
	require.NoError(t, Init(path))

	Info("worktree created", "branch", "feature/auth")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "worktree created")
	assert.Contains(t, string(data), "feature/auth")
}

// TestInit_SecondCallIsNoop verifies that a second Init does not reopen
// or redirect the log.
func TestInit_SecondCallIsNoop(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	first := filepath.Join(t.TempDir(), "first.log")
	second := filepath.Join(t.TempDir(), "second.log")

	require.NoError(t, Init(first))
	require.NoError(t, Init(second))

	Info("hello")

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err), "second Init should not create a file")
}

// TestSetDebug gates debug-level records on the configured level.
func TestSetDebug(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	path := filepath.Join(t.TempDir(), "arbor.log")
	require.NoError(t, Init(path))

	SetDebug(false)
	Debug("hidden")
	SetDebug(true)
	Debug("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
