package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// AgentDefinition describes one user-defined agent in agents.jsonc.
type AgentDefinition struct {
	// Name is the value accepted by `arbor create --agent`.
	Name string `json:"name"`

	// Command is the binary to execute.
	Command string `json:"command"`

	// Args are always passed before any forwarded arguments.
	Args []string `json:"args,omitempty"`

	// SystemPromptFlag is the agent's flag for passing system prompt
	// content, e.g. "--system-prompt". Leave empty if the agent has none.
	SystemPromptFlag string `json:"systemPromptFlag,omitempty"`
}

// agentsFile is the top-level structure of agents.jsonc.
type agentsFile struct {
	Agents []AgentDefinition `json:"agents"`
}

// loadDefinitions parses the agent definition file. The format is JSONC:
// comments are stripped with tidwall/jsonc before standard JSON parsing,
// so users can annotate their agent entries.
func loadDefinitions(path string) ([]AgentDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read agent definitions %s", path), err)
	}

	var f agentsFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid agent definitions in %s", path), err)
	}

	for i, def := range f.Agents {
		if def.Name == "" {
			return nil, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("agent definition %d in %s has no name", i, path))
		}
		if def.Command == "" {
			return nil, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("agent %q in %s has no command", def.Name, path))
		}
	}
	return f.Agents, nil
}
