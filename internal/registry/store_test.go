package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// testRecord builds a minimal valid record for store tests.
func testRecord(id, projectRoot, branch string, createdAt time.Time) model.WorktreeRecord {
	return model.WorktreeRecord{
		ID:          id,
		Branch:      branch,
		Path:        filepath.Join("/worktrees", filepath.Base(projectRoot)+"-"+branch),
		ProjectRoot: projectRoot,
		ProjectName: filepath.Base(projectRoot),
		Agent:       "claude",
		Status:      model.StatusActive,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// TestLoad_MissingFile verifies that a nonexistent registry file yields
// an empty registry rather than an error.
func TestLoad_MissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "registry.json"))

	reg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

// TestSaveLoad_RoundTrip verifies that records survive a save/load cycle
// unchanged.
func TestSaveLoad_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "registry.json"))

	now := time.Now().UTC().Truncate(time.Second)
	reg := NewRegistry()
	require.NoError(t, reg.Add(testRecord("id-1", "/home/u/proj", "feature/auth", now)))
	require.NoError(t, reg.Add(testRecord("id-2", "/home/u/proj", "bugfix", now.Add(time.Minute))))

	require.NoError(t, s.Save(reg))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, reg.Records(), loaded.Records())
}

// TestSave_Idempotent verifies that saving a freshly loaded, untouched
// registry produces byte-for-byte identical file content.
func TestSave_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	s := NewStore(path)

	reg := NewRegistry()
	require.NoError(t, reg.Add(testRecord("id-1", "/p", "main", time.Now().UTC())))
	require.NoError(t, s.Save(reg))

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(loaded))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestSave_EmptyRegistryWritesArray checks that an empty registry is
// persisted as a JSON array, not null.
func TestSave_EmptyRegistryWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	s := NewStore(path)

	require.NoError(t, s.Save(NewRegistry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

// TestLoad_CorruptFile verifies that an unparseable registry aborts with
// a RegistryCorrupt error and that the file is left untouched.
func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	corrupt := []byte(`[{"id": "half-a-rec`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	s := NewStore(path)
	_, err := s.Load()
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitRegistryCorrupt, cliErr.Code)

	// The corrupt file must survive for manual inspection.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, corrupt, data)
}

// TestAdd_DuplicateBranchSameProject verifies the branch-per-project
// uniqueness invariant and that a failed Add leaves the registry unchanged.
func TestAdd_DuplicateBranchSameProject(t *testing.T) {
	reg := NewRegistry()
	now := time.Now().UTC()
	require.NoError(t, reg.Add(testRecord("id-1", "/p", "feature/auth", now)))

	dup := testRecord("id-2", "/p", "feature/auth", now)
	dup.Path = "/worktrees/other-path"
	err := reg.Add(dup)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitDuplicateBranch, cliErr.Code)
	assert.Equal(t, 1, reg.Len())
}

// TestAdd_SameBranchDifferentProjects verifies that the same branch name
// is allowed across projects.
func TestAdd_SameBranchDifferentProjects(t *testing.T) {
	reg := NewRegistry()
	now := time.Now().UTC()
	require.NoError(t, reg.Add(testRecord("id-1", "/proj-a", "feature/auth", now)))
	require.NoError(t, reg.Add(testRecord("id-2", "/proj-b", "feature/auth", now)))
	assert.Equal(t, 2, reg.Len())
}

// TestAdd_DuplicateIDAndPath verifies the global id/path uniqueness checks.
func TestAdd_DuplicateIDAndPath(t *testing.T) {
	reg := NewRegistry()
	now := time.Now().UTC()
	require.NoError(t, reg.Add(testRecord("id-1", "/p", "one", now)))

	sameID := testRecord("id-1", "/q", "two", now)
	assert.Error(t, reg.Add(sameID))

	samePath := testRecord("id-3", "/q", "three", now)
	samePath.Path = reg.Records()[0].Path
	assert.Error(t, reg.Add(samePath))
}

// TestRemove verifies removal by id.
func TestRemove(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(testRecord("id-1", "/p", "one", time.Now().UTC())))

	assert.True(t, reg.Remove("id-1"))
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Remove("id-1"), "second remove should report not found")
}

// TestUpdate verifies in-place replacement by id.
func TestUpdate(t *testing.T) {
	reg := NewRegistry()
	rec := testRecord("id-1", "/p", "one", time.Now().UTC())
	require.NoError(t, reg.Add(rec))

	rec.Status = model.StatusOrphaned
	assert.True(t, reg.Update(rec))
	assert.Equal(t, model.StatusOrphaned, reg.Records()[0].Status)

	missing := testRecord("id-9", "/p", "nine", time.Now().UTC())
	assert.False(t, reg.Update(missing))
}

// TestResolve covers exact, fuzzy, ambiguous, and scoped resolution.
func TestResolve(t *testing.T) {
	reg := NewRegistry()
	now := time.Now().UTC()
	require.NoError(t, reg.Add(testRecord("id-1", "/proj-a", "feature/auth", now)))
	require.NoError(t, reg.Add(testRecord("id-2", "/proj-a", "feature/auth-tokens", now)))
	require.NoError(t, reg.Add(testRecord("id-3", "/proj-b", "bugfix/login", now)))

	t.Run("exact match wins over substring candidates", func(t *testing.T) {
		rec, err := reg.Resolve("/proj-a", "feature/auth")
		require.NoError(t, err)
		assert.Equal(t, "id-1", rec.ID)
	})

	t.Run("unique substring resolves", func(t *testing.T) {
		rec, err := reg.Resolve("/proj-b", "login")
		require.NoError(t, err)
		assert.Equal(t, "id-3", rec.ID)
	})

	t.Run("ambiguous substring is NotFound", func(t *testing.T) {
		_, err := reg.Resolve("/proj-a", "feature")
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitNotFound, cliErr.Code)
		assert.Contains(t, cliErr.Message, "multiple")
	})

	t.Run("no match is NotFound", func(t *testing.T) {
		_, err := reg.Resolve("/proj-a", "release")
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitNotFound, cliErr.Code)
	})

	t.Run("project scope excludes other projects", func(t *testing.T) {
		_, err := reg.Resolve("/proj-a", "bugfix/login")
		assert.Error(t, err)
	})

	t.Run("empty scope spans all projects", func(t *testing.T) {
		rec, err := reg.Resolve("", "bugfix/login")
		require.NoError(t, err)
		assert.Equal(t, "id-3", rec.ID)
	})
}

// TestByProject_And_SortedByNewest verifies the listing queries and their
// newest-first ordering.
func TestByProject_And_SortedByNewest(t *testing.T) {
	reg := NewRegistry()
	base := time.Now().UTC()
	require.NoError(t, reg.Add(testRecord("id-1", "/proj-a", "old", base.Add(-2*time.Hour))))
	require.NoError(t, reg.Add(testRecord("id-2", "/proj-b", "elsewhere", base.Add(-time.Hour))))
	require.NoError(t, reg.Add(testRecord("id-3", "/proj-a", "new", base)))

	byProject := reg.ByProject("/proj-a")
	require.Len(t, byProject, 2)
	assert.Equal(t, "new", byProject[0].Branch)
	assert.Equal(t, "old", byProject[1].Branch)

	all := reg.SortedByNewest()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "elsewhere", "old"},
		[]string{all[0].Branch, all[1].Branch, all[2].Branch})
}

// TestSave_LeavesNoTempFiles verifies the atomic write cleans up after
// itself: only the registry file remains in the directory.
func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "registry.json"))
	require.NoError(t, s.Save(NewRegistry()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "registry.json", entries[0].Name())
}
