// Package cli — create.go implements the "arbor create" command.
//
// Create is the primary operation: it makes an isolated worktree for a
// branch, records it in the registry, and launches the chosen agent
// inside it. Arguments after "--" are forwarded to the agent verbatim.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/agent"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/prompt"
)

// createFlags holds the flag values for the create command.
type createFlags struct {
	agent        string // --agent: which agent to launch
	systemPrompt string // --system-prompt: named prompt from the prompts directory
	baseBranch   string // --base-branch: base for a newly created branch
}

// NewCreateCommand creates the "create" cobra command.
func NewCreateCommand() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create <branch> [-- agent args...]",
		Short: "Create a worktree for a branch and launch an agent in it",
		Long: `Create a git worktree for the given branch and launch an AI coding
agent inside it.

If the branch does not exist it is created from --base-branch, or from
the current branch. Any .env* files at the project root are copied into
the worktree. Everything after "--" is passed to the agent unchanged.

Examples:
  arbor create feature/auth
  arbor create feature/auth --agent gemini
  arbor create hotfix --base-branch main --system-prompt reviewer
  arbor create feature/auth -- --model opus`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			branch := args[0]

			// Everything after "--" belongs to the agent, not to us.
			var agentArgs []string
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				agentArgs = args[at:]
				args = args[:at]
			}
			if len(args) != 1 {
				return model.NewCLIError(model.ExitGeneralError,
					"create takes exactly one branch name (use -- before agent arguments)")
			}

			return runCreate(cmd.Context(), branch, agentArgs, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.agent, "agent", "a", "claude", "Agent to launch in the worktree (claude, gemini, none, or a user-defined agent)")
	cmd.Flags().StringVarP(&flags.systemPrompt, "system-prompt", "s", "", "Named system prompt from the prompts directory")
	cmd.Flags().StringVarP(&flags.baseBranch, "base-branch", "b", "", "Base branch when creating a new branch (default: current branch)")

	return cmd
}

// runCreate orchestrates the create workflow: resolve the project, make
// the worktree, then hand the terminal to the agent.
func runCreate(ctx context.Context, branch string, agentArgs []string, flags *createFlags) error {
	projectRoot, err := requireProjectRoot()
	if err != nil {
		return err
	}

	// Resolve the agent before creating anything, so a typo in --agent
	// does not leave a worktree behind.
	catalog, err := agent.DefaultCatalog()
	if err != nil {
		return err
	}
	ag, err := catalog.Get(flags.agent)
	if err != nil {
		return err
	}

	// Same for the prompt: load it up front.
	var promptContent string
	if flags.systemPrompt != "" {
		pm, err := prompt.NewManager()
		if err != nil {
			return err
		}
		promptContent, err = pm.Load(flags.systemPrompt)
		if err != nil {
			return err
		}
		VerboseLog("Loaded system prompt %q (%d bytes)", flags.systemPrompt, len(promptContent))
	}

	wm := newWorktreeManager()
	rec, err := wm.Create(ctx, projectRoot, branch, ag.Name(), flags.baseBranch)
	if err != nil {
		return err
	}
	VerboseLog("Worktree created at %s", rec.Path)

	printCreateResult(rec)

	return ag.Launch(rec.Path, promptContent, agentArgs)
}

// printCreateResult outputs the new record in text or JSON format.
func printCreateResult(rec model.WorktreeRecord) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(rec, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Created worktree for branch %q\n", rec.Branch)
	fmt.Printf("  Path:    %s\n", rec.Path)
	fmt.Printf("  Project: %s\n", rec.ProjectName)
	if rec.Agent != agent.NoneName {
		fmt.Printf("  Agent:   %s\n", rec.Agent)
	}
}
