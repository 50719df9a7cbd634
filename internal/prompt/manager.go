// Package prompt manages system prompt files: markdown documents under
// the prompts directory whose content is handed to an agent at launch.
// Prompts are referenced by name; "review" resolves to
// <prompts dir>/review.md.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/paths"
)

// Manager resolves and loads system prompts from a directory.
type Manager struct {
	dir string
}

// NewManager creates a Manager over the standard prompts directory,
// creating it if needed so users can drop files in without setup.
func NewManager() (*Manager, error) {
	dir := paths.PromptsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to create prompts directory %s", dir), err)
	}
	return &Manager{dir: dir}, nil
}

// NewManagerAt creates a Manager over an explicit directory. Used by tests.
func NewManagerAt(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the prompts directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Path returns the file path a prompt name resolves to. A ".md"
// extension is appended unless the name already carries one.
func (m *Manager) Path(name string) string {
	filename := name
	if !strings.HasSuffix(filename, ".md") {
		filename += ".md"
	}
	return filepath.Join(m.dir, filename)
}

// Load reads the named prompt's content.
func (m *Manager) Load(name string) (string, error) {
	path := m.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.NewCLIError(model.ExitNotFound,
				fmt.Sprintf("prompt %q not found at %s", name, path))
		}
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read prompt file %s", path), err)
	}
	return string(data), nil
}

// List returns the names (file stems) of all markdown prompts, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read prompts directory %s", m.dir), err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}
