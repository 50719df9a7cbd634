package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// AliasConfig is a reusable, named list of project repositories that a
// workspace can be created from.
type AliasConfig struct {
	Name     string   `yaml:"name"`
	Projects []string `yaml:"projects"`
}

// AliasManager persists alias configs as YAML files in a directory.
type AliasManager struct {
	dir  string
	edit EditorFunc
}

// NewAliasManager creates an AliasManager over dir. A nil edit falls
// back to the interactive $EDITOR flow.
func NewAliasManager(dir string, edit EditorFunc) *AliasManager {
	if edit == nil {
		edit = OpenInEditor
	}
	return &AliasManager{dir: dir, edit: edit}
}

func (am *AliasManager) path(name string) string {
	return filepath.Join(am.dir, name+".yml")
}

// Create writes a template for the alias, opens it in the editor, and
// validates the result. An alias that fails validation is deleted so a
// half-filled template never lingers.
func (am *AliasManager) Create(name string) error {
	if err := os.MkdirAll(am.dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to create alias directory %s", am.dir), err)
	}

	path := am.path(name)
	if _, err := os.Stat(path); err == nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("alias %q already exists", name))
	}

	template := fmt.Sprintf(`# Workspace alias
# Add the full paths of the git repositories for this alias.

name: %s
projects:
#  - /path/to/your/first/project
#  - /path/to/your/second/project
`, name)
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to write alias template %s", path), err)
	}

	if err := am.edit(path); err != nil {
		_ = os.Remove(path)
		return err
	}

	if _, err := am.Load(name); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// Load parses and validates the named alias.
func (am *AliasManager) Load(name string) (AliasConfig, error) {
	data, err := os.ReadFile(am.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return AliasConfig{}, model.NewCLIError(model.ExitNotFound,
				fmt.Sprintf("alias %q not found", name))
		}
		return AliasConfig{}, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read alias %q", name), err)
	}

	var cfg AliasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AliasConfig{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse alias %q", name), err)
	}

	if len(cfg.Projects) == 0 {
		return AliasConfig{}, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("alias %q must list at least one project", name))
	}
	if err := validateProjects(cfg.Projects); err != nil {
		return AliasConfig{}, err
	}
	return cfg, nil
}

// Remove deletes the named alias.
func (am *AliasManager) Remove(name string) error {
	path := am.path(name)
	if _, err := os.Stat(path); err != nil {
		return model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("alias %q not found", name))
	}
	if err := os.Remove(path); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to remove alias %q", name), err)
	}
	return nil
}

// List returns all alias names, sorted.
func (am *AliasManager) List() ([]string, error) {
	entries, err := os.ReadDir(am.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read alias directory %s", am.dir), err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yml"))
	}
	sort.Strings(names)
	return names, nil
}

// validateProjects checks that every listed path exists and is inside a
// git repository with a working tree.
func validateProjects(projects []string) error {
	for _, project := range projects {
		info, err := os.Stat(project)
		if err != nil || !info.IsDir() {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("project path does not exist: %s", project))
		}
		if !worktree.InsideGitRepo(project) {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("project path is not a git repository: %s", project))
		}
	}
	return nil
}
