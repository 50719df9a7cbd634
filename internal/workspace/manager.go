package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/arbor/internal/agent"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// WorkspaceInfo is the persisted description of a workspace.
type WorkspaceInfo struct {
	// Name is the workspace name, used verbatim as the branch name in
	// every member project.
	Name string `json:"name"`

	// SafeName is the sanitized form used for the definition filename.
	SafeName string `json:"safe_name"`

	// Projects lists the repositories a worktree was actually created
	// in. Projects that failed at create time are not listed.
	Projects []string `json:"projects"`

	// Alias records which alias the workspace was created from, if any.
	Alias string `json:"alias,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Manager creates and tears down workspaces.
type Manager struct {
	dir       string
	worktrees *worktree.Manager
	aliases   *AliasManager
	edit      EditorFunc
}

// NewManager creates a workspace Manager persisting definitions in dir,
// using wm for per-project worktree operations and am for alias lookups.
// A nil edit falls back to the interactive $EDITOR flow.
func NewManager(dir string, wm *worktree.Manager, am *AliasManager, edit EditorFunc) *Manager {
	if edit == nil {
		edit = OpenInEditor
	}
	return &Manager{dir: dir, worktrees: wm, aliases: am, edit: edit}
}

func (m *Manager) path(safeName string) string {
	return filepath.Join(m.dir, safeName+".json")
}

// Create makes a workspace: a worktree named after the workspace in each
// member project. Member projects come from aliasName when given,
// otherwise from an editor-filled YAML template. Per-project failures
// are reported to stderr and skipped; the workspace is recorded with the
// projects that succeeded.
func (m *Manager) Create(ctx context.Context, name, aliasName string) error {
	safeName := worktree.SanitizeBranch(name)
	path := m.path(safeName)

	if _, err := os.Stat(path); err == nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("workspace %q already exists", name))
	}

	var projects []string
	var err error
	if aliasName != "" {
		cfg, loadErr := m.aliases.Load(aliasName)
		if loadErr != nil {
			return loadErr
		}
		projects = cfg.Projects
	} else {
		projects, err = m.projectsFromEditor(safeName)
		if err != nil {
			return err
		}
	}
	if len(projects) == 0 {
		return model.NewCLIError(model.ExitGeneralError, "no projects specified for workspace")
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to create workspaces directory %s", m.dir), err)
	}

	var created []string
	for _, project := range projects {
		rec, err := m.worktrees.Create(ctx, project, name, agent.NoneName, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create worktree for %s: %v\n", project, err)
			logger.Warn("workspace member failed", "workspace", name, "project", project, "error", err)
			continue
		}
		fmt.Fprintf(os.Stderr, "Created worktree for %s at %s\n", project, rec.Path)
		created = append(created, project)
	}
	if len(created) == 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create any worktrees for workspace %q", name))
	}

	info := WorkspaceInfo{
		Name:      name,
		SafeName:  safeName,
		Projects:  created,
		Alias:     aliasName,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode workspace", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to write workspace file %s", path), err)
	}

	logger.Info("workspace created", "name", name, "projects", len(created))
	return nil
}

// Remove tears down the workspace's worktree in every member project and
// deletes the definition. Per-project failures are reported and skipped;
// the error return reflects whether any member failed.
func (m *Manager) Remove(ctx context.Context, name string) error {
	info, err := m.load(worktree.SanitizeBranch(name))
	if err != nil {
		return err
	}

	hadErrors := false
	for _, project := range info.Projects {
		if err := m.worktrees.Remove(ctx, project, info.Name, false); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove worktree for %s: %v\n", project, err)
			hadErrors = true
			continue
		}
		fmt.Fprintf(os.Stderr, "Removed worktree for %s\n", project)
	}

	if err := os.Remove(m.path(info.SafeName)); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to remove workspace file for %q", name), err)
	}

	if hadErrors {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("workspace %q removed with some errors (see warnings above)", name))
	}
	logger.Info("workspace removed", "name", name)
	return nil
}

// List returns all workspaces, newest first.
func (m *Manager) List() ([]WorkspaceInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read workspaces directory %s", m.dir), err)
	}

	var workspaces []WorkspaceInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := m.load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			// A single malformed definition should not hide the others.
			logger.Warn("skipping unreadable workspace file", "file", entry.Name(), "error", err)
			continue
		}
		workspaces = append(workspaces, info)
	}

	sort.SliceStable(workspaces, func(i, j int) bool {
		return workspaces[i].CreatedAt.After(workspaces[j].CreatedAt)
	})
	return workspaces, nil
}

func (m *Manager) load(safeName string) (WorkspaceInfo, error) {
	data, err := os.ReadFile(m.path(safeName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return WorkspaceInfo{}, model.NewCLIError(model.ExitNotFound,
				fmt.Sprintf("workspace %q not found", safeName))
		}
		return WorkspaceInfo{}, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read workspace %q", safeName), err)
	}

	var info WorkspaceInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return WorkspaceInfo{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse workspace %q", safeName), err)
	}
	return info, nil
}

// projectsFromEditor collects member projects by letting the user fill
// in a YAML template in their editor.
func (m *Manager) projectsFromEditor(safeName string) ([]string, error) {
	tmpDir, err := os.MkdirTemp("", "arbor-workspace-*")
	if err != nil {
		return nil, model.WrapCLIError(model.ExitIOError, "failed to create temp directory", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	tmpFile := filepath.Join(tmpDir, safeName+".yml")
	template := `# Workspace definition
# Add the full paths of the git repositories for this workspace.

projects:
#  - /path/to/your/first/project
#  - /path/to/your/second/project
`
	if err := os.WriteFile(tmpFile, []byte(template), 0o644); err != nil {
		return nil, model.WrapCLIError(model.ExitIOError, "failed to write workspace template", err)
	}

	if err := m.edit(tmpFile); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitIOError, "failed to read workspace definition", err)
	}

	var parsed struct {
		Projects []string `yaml:"projects"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to parse workspace definition", err)
	}

	if err := validateProjects(parsed.Projects); err != nil {
		return nil, err
	}
	return parsed.Projects, nil
}
