package agent

import (
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/paths"
)

// Agent launches a coding assistant in a worktree directory and blocks
// until it exits.
type Agent interface {
	// Name returns the agent's registry name (e.g. "claude").
	Name() string

	// Launch runs the agent in workDir with the terminal attached.
	// systemPrompt is the prompt content (not a file name); extraArgs
	// are forwarded to the agent verbatim.
	Launch(workDir, systemPrompt string, extraArgs []string) error
}

// NoneName is the agent name that skips launching anything. Worktrees
// created for manual use or by workspaces record this name.
const NoneName = "none"

// commandAgent launches an external CLI.
type commandAgent struct {
	name        string
	command     string
	defaultArgs []string

	// promptFlag is the agent's flag for passing system prompt content.
	// Empty when the agent has no such flag; a requested prompt is then
	// ignored with a warning rather than failing the launch.
	promptFlag string
}

func (a *commandAgent) Name() string {
	return a.name
}

// buildArgs assembles the agent's argument list: default args, then
// forwarded args, then the system prompt flag pair when supported.
func (a *commandAgent) buildArgs(systemPrompt string, extraArgs []string) []string {
	args := make([]string, 0, len(a.defaultArgs)+len(extraArgs)+2)
	args = append(args, a.defaultArgs...)
	args = append(args, extraArgs...)
	if systemPrompt != "" && a.promptFlag != "" {
		args = append(args, a.promptFlag, systemPrompt)
	}
	return args
}

func (a *commandAgent) Launch(workDir, systemPrompt string, extraArgs []string) error {
	if systemPrompt != "" && a.promptFlag == "" {
		fmt.Fprintf(os.Stderr, "Warning: agent %q does not support system prompts; ignoring\n", a.name)
		logger.Warn("system prompt ignored", "agent", a.name)
		systemPrompt = ""
	}

	cmd := exec.Command(a.command, a.buildArgs(systemPrompt, extraArgs)...)
	cmd.Dir = workDir

	// The agent is interactive — it owns the terminal until the user
	// exits it.
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info("launching agent", "agent", a.name, "dir", workDir)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		// Forward the agent's own exit code instead of a generic one.
		return model.NewCLIError(model.ExitCode(exitErr.ExitCode()),
			fmt.Sprintf("agent %q exited with status %d", a.name, exitErr.ExitCode()))
	}
	return model.WrapCLIError(model.ExitAgentError,
		fmt.Sprintf("failed to start agent %q (is %q installed?)", a.name, a.command), err)
}

// noneAgent is the no-op agent.
type noneAgent struct{}

func (noneAgent) Name() string { return NoneName }

func (noneAgent) Launch(string, string, []string) error { return nil }

// Catalog maps agent names to launchable agents.
type Catalog struct {
	agents map[string]Agent
}

// builtins returns the agents that are always available.
func builtins() map[string]Agent {
	return map[string]Agent{
		"claude": &commandAgent{name: "claude", command: "claude", promptFlag: "--system-prompt"},
		"gemini": &commandAgent{name: "gemini", command: "gemini"},
		NoneName: noneAgent{},
	}
}

// LoadCatalog builds a catalog from the built-in agents plus any
// definitions in the JSONC file at configPath. A missing file is not an
// error. User definitions may override built-ins.
func LoadCatalog(configPath string) (*Catalog, error) {
	agents := builtins()

	defs, err := loadDefinitions(configPath)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		agents[def.Name] = &commandAgent{
			name:        def.Name,
			command:     def.Command,
			defaultArgs: def.Args,
			promptFlag:  def.SystemPromptFlag,
		}
	}

	return &Catalog{agents: agents}, nil
}

// DefaultCatalog loads the catalog from the standard agents.jsonc path.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(paths.AgentsConfigPath())
}

// Get resolves an agent by name.
func (c *Catalog) Get(name string) (Agent, error) {
	if a, ok := c.agents[name]; ok {
		return a, nil
	}
	return nil, model.NewCLIError(model.ExitGeneralError,
		fmt.Sprintf("unknown agent %q (available: %v)", name, c.Names()))
}

// Names returns all registered agent names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.agents))
	for name := range c.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
