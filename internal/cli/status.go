// Package cli — status.go implements the "arbor status" command.
//
// Status shows the full registry record for each worktree, one block per
// record, where ls shows only a one-line summary.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [branch]",
		Short: "Show detailed worktree status",
		Long: `Show the registry details of worktrees: branch, path, agent, status,
and timestamps.

With a branch argument only that worktree is shown; the branch may be a
unique substring. Inside a repository the view is scoped to that
project.

Examples:
  arbor status
  arbor status feature/auth
  arbor status --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			branch := ""
			if len(args) == 1 {
				branch = args[0]
			}
			return runStatus(branch)
		},
	}
}

// runStatus loads the registry and prints one detail block per record.
func runStatus(branch string) error {
	scope, _ := currentProjectRoot()
	wm := newWorktreeManager()

	var records []model.WorktreeRecord
	if branch != "" {
		rec, err := wm.Resolve(scope, branch)
		if err != nil {
			return err
		}
		records = []model.WorktreeRecord{rec}
	} else {
		var err error
		records, err = wm.List(scope)
		if err != nil {
			return err
		}
	}

	if IsJSONOutput() {
		printListJSON(records)
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No active worktrees found.")
		return model.NewCLIError(model.ExitGeneralError, "no worktrees registered")
	}

	for i, rec := range records {
		if i > 0 {
			fmt.Println()
		}
		printStatusBlock(rec)
	}
	return nil
}

// printStatusBlock renders one record as an aligned key/value block.
func printStatusBlock(rec model.WorktreeRecord) {
	fmt.Printf("%s/%s\n", rec.ProjectName, rec.Branch)
	fmt.Printf("  Path:    %s\n", rec.Path)
	fmt.Printf("  Agent:   %s\n", rec.Agent)
	fmt.Printf("  Status:  %s\n", rec.Status)
	fmt.Printf("  Created: %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
	if !rec.UpdatedAt.Equal(rec.CreatedAt) {
		fmt.Printf("  Updated: %s\n", rec.UpdatedAt.Local().Format(time.RFC3339))
	}
}
