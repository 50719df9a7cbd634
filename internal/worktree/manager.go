package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	execx "github.com/mmr-tortoise/arbor/internal/exec"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/registry"
)

// Manager coordinates git worktree operations with the registry.
type Manager struct {
	store    *registry.Store
	executor execx.CommandExecutor
	baseDir  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithExecutor replaces the command executor. Tests use this to inject
// a MockExecutor so no git binary is required.
func WithExecutor(e execx.CommandExecutor) Option {
	return func(m *Manager) {
		m.executor = e
	}
}

// NewManager creates a Manager that records worktrees in store and
// creates their directories under baseDir.
func NewManager(store *registry.Store, baseDir string, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		executor: execx.NewRealExecutor(),
		baseDir:  baseDir,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SanitizeBranch derives a filesystem-safe directory name component from
// a branch name. Path separators and other characters that are unsafe in
// directory names are replaced with hyphens.
func SanitizeBranch(branch string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
		" ", "-",
	)
	return replacer.Replace(branch)
}

// WorktreePath computes the directory a worktree for branch would live
// at: <baseDir>/<project basename>-<sanitized branch>.
func (m *Manager) WorktreePath(projectRoot, branch string) string {
	name := filepath.Base(projectRoot) + "-" + SanitizeBranch(branch)
	return filepath.Join(m.baseDir, name)
}

// Create makes a new worktree for branch in the repository at
// projectRoot and records it in the registry.
//
// If the branch does not exist yet it is created from baseBranch, or
// from the current branch when baseBranch is empty. An existing branch
// is checked out into the new worktree as-is. Any `.env*` files at the
// project root are copied into the worktree so local configuration
// carries over.
//
// Fails with DuplicateBranch before touching git if the registry already
// has a record for this branch in this project.
func (m *Manager) Create(ctx context.Context, projectRoot, branch, agent, baseBranch string) (model.WorktreeRecord, error) {
	reg, err := m.store.Load()
	if err != nil {
		return model.WorktreeRecord{}, err
	}

	if _, exists := reg.FindByBranch(projectRoot, branch); exists {
		return model.WorktreeRecord{}, model.NewCLIError(model.ExitDuplicateBranch,
			fmt.Sprintf("a worktree for branch '%s' already exists in this project", branch))
	}

	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return model.WorktreeRecord{}, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to create worktree base directory %s", m.baseDir), err)
	}

	worktreePath := m.WorktreePath(projectRoot, branch)

	if m.branchExists(ctx, projectRoot, branch) {
		// Branch exists — check it out into the new worktree without -b.
		if _, err := m.runGit(ctx, projectRoot, "worktree", "add", worktreePath, branch); err != nil {
			return model.WorktreeRecord{}, err
		}
	} else {
		base := baseBranch
		if base == "" {
			base, err = m.currentBranch(ctx, projectRoot)
			if err != nil {
				return model.WorktreeRecord{}, err
			}
		}
		if _, err := m.runGit(ctx, projectRoot, "worktree", "add", "-b", branch, worktreePath, base); err != nil {
			return model.WorktreeRecord{}, err
		}
	}

	if err := m.copyEnvFiles(projectRoot, worktreePath); err != nil {
		return model.WorktreeRecord{}, err
	}

	now := time.Now().UTC()
	rec := model.WorktreeRecord{
		ID:          uuid.NewString(),
		Branch:      branch,
		Path:        worktreePath,
		ProjectRoot: projectRoot,
		ProjectName: filepath.Base(projectRoot),
		Agent:       agent,
		Status:      model.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := reg.Add(rec); err != nil {
		return model.WorktreeRecord{}, err
	}
	if err := m.store.Save(reg); err != nil {
		return model.WorktreeRecord{}, err
	}

	logger.Info("worktree created",
		"branch", branch, "path", worktreePath, "project", rec.ProjectName, "agent", agent)
	return rec, nil
}

// Remove deletes the worktree for branch: the worktree directory first,
// then the branch itself. The registry record is deleted only when both
// halves succeed.
//
// If removing the directory fails, the record is left untouched and the
// git error is returned. If the directory is removed but deleting the
// branch fails, the record is retained with status "orphaned"; running
// Remove again on an orphaned record retries only the branch deletion.
//
// When projectRoot is empty the branch is resolved across all projects.
func (m *Manager) Remove(ctx context.Context, projectRoot, branch string, force bool) error {
	reg, err := m.store.Load()
	if err != nil {
		return err
	}

	rec, err := reg.Resolve(projectRoot, branch)
	if err != nil {
		return err
	}

	if rec.Status != model.StatusOrphaned {
		args := []string{"worktree", "remove"}
		if force {
			args = append(args, "--force")
		}
		args = append(args, rec.Path)
		if _, err := m.runGit(ctx, rec.ProjectRoot, args...); err != nil {
			return model.WrapCLIError(model.ExitGitError,
				fmt.Sprintf("failed to remove worktree directory %s (branch '%s' kept)", rec.Path, rec.Branch), err)
		}
	}

	if _, err := m.runGit(ctx, rec.ProjectRoot, "branch", "-D", rec.Branch); err != nil {
		// The directory is gone but the branch survived. Keep the record
		// so the leftover branch stays visible and removal can be retried.
		rec.Status = model.StatusOrphaned
		rec.UpdatedAt = time.Now().UTC()
		reg.Update(rec)
		if saveErr := m.store.Save(reg); saveErr != nil {
			return saveErr
		}
		logger.Warn("worktree removed but branch deletion failed",
			"branch", rec.Branch, "project", rec.ProjectName)
		return model.WrapCLIError(model.ExitGitError,
			fmt.Sprintf("worktree directory removed, but deleting branch '%s' failed; record kept as orphaned", rec.Branch), err)
	}

	reg.Remove(rec.ID)
	if err := m.store.Save(reg); err != nil {
		return err
	}

	logger.Info("worktree removed", "branch", rec.Branch, "path", rec.Path)
	return nil
}

// Resolve looks up the record for branch, which may be a unique
// substring. When projectRoot is empty the lookup spans all projects.
func (m *Manager) Resolve(projectRoot, branch string) (model.WorktreeRecord, error) {
	reg, err := m.store.Load()
	if err != nil {
		return model.WorktreeRecord{}, err
	}
	return reg.Resolve(projectRoot, branch)
}

// PathFor resolves the filesystem path of the worktree for branch.
// When projectRoot is empty the lookup spans all projects.
func (m *Manager) PathFor(projectRoot, branch string) (string, error) {
	reg, err := m.store.Load()
	if err != nil {
		return "", err
	}
	rec, err := reg.Resolve(projectRoot, branch)
	if err != nil {
		return "", err
	}
	return rec.Path, nil
}

// List returns the registered worktrees, newest first. When projectRoot
// is non-empty only that project's records are returned; otherwise the
// union across all projects.
func (m *Manager) List(projectRoot string) ([]model.WorktreeRecord, error) {
	reg, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if projectRoot != "" {
		return reg.ByProject(projectRoot), nil
	}
	return reg.SortedByNewest(), nil
}

// branchExists reports whether a local branch with the given name exists.
// Only the exit status of `git show-ref --verify` matters.
func (m *Manager) branchExists(ctx context.Context, projectRoot, branch string) bool {
	_, _, err := m.executor.Run(ctx, projectRoot,
		"git", "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// currentBranch returns the checked-out branch at projectRoot. Fails
// when HEAD is detached, because there is no branch to base a new one on.
func (m *Manager) currentBranch(ctx context.Context, projectRoot string) (string, error) {
	out, err := m.runGit(ctx, projectRoot, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", model.NewCLIError(model.ExitGitError,
			"no current branch found (detached HEAD?); use --base-branch")
	}
	return branch, nil
}

// copyEnvFiles copies dotenv files (.env, .env.local, ...) from the
// project root into the new worktree, which git does not carry over
// because they are typically ignored.
func (m *Manager) copyEnvFiles(projectRoot, worktreePath string) error {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read project directory %s", projectRoot), err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ".env") {
			continue
		}
		src := filepath.Join(projectRoot, entry.Name())
		dst := filepath.Join(worktreePath, entry.Name())

		data, err := os.ReadFile(src)
		if err != nil {
			return model.WrapCLIError(model.ExitIOError,
				fmt.Sprintf("failed to read %s", src), err)
		}

		mode := os.FileMode(0o644)
		if info, err := entry.Info(); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(dst, data, mode); err != nil {
			return model.WrapCLIError(model.ExitIOError,
				fmt.Sprintf("failed to copy %s into worktree", entry.Name()), err)
		}
		logger.Debug("copied env file", "file", entry.Name(), "worktree", worktreePath)
	}
	return nil
}

// runGit executes a git command in dir via the executor. On failure the
// captured stderr is included verbatim in the error message.
func (m *Manager) runGit(ctx context.Context, dir string, args ...string) (string, error) {
	stdout, stderr, err := m.executor.Run(ctx, dir, "git", args...)
	if err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(string(stderr)); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}
	return string(stdout), nil
}
