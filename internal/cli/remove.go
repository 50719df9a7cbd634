// Package cli — remove.go implements the "arbor remove" command.
//
// Remove tears down a worktree: the directory first, then the branch,
// then the registry record. A branch that survives directory removal
// leaves the record behind with status "orphaned"; running remove again
// retries just the branch deletion.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	force bool // --force: remove even with uncommitted changes
}

// NewRemoveCommand creates the "remove" cobra command.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:     "remove [branch]",
		Aliases: []string{"rm"},
		Short:   "Remove a worktree and its branch",
		Long: `Remove the worktree for a branch, delete the branch, and drop the
registry record.

The branch may be given as a unique substring. Without an argument the
available branches are listed. Inside a repository only that project's
worktrees are considered; outside, the branch is resolved across all
projects.

Examples:
  arbor remove feature/auth
  arbor remove auth
  arbor remove feature/auth --force`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listRemovalCandidates()
			}
			return runRemove(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Remove even if the worktree has uncommitted changes")

	return cmd
}

// runRemove resolves the branch and performs the teardown.
func runRemove(ctx context.Context, branch string, flags *removeFlags) error {
	scope, _ := currentProjectRoot()

	if err := newWorktreeManager().Remove(ctx, scope, branch, flags.force); err != nil {
		return err
	}

	if !IsJSONOutput() {
		fmt.Printf("Removed worktree for branch %q\n", branch)
	}
	return nil
}

// listRemovalCandidates prints the removable branches to stderr and
// fails, mirroring what an interactive user most likely wanted to see.
func listRemovalCandidates() error {
	scope, _ := currentProjectRoot()

	records, err := newWorktreeManager().List(scope)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return model.NewCLIError(model.ExitNotFound, "no worktrees to remove")
	}

	fmt.Fprintln(os.Stderr, "Specify a branch to remove. Available worktrees:")
	for _, rec := range records {
		fmt.Fprintf(os.Stderr, "  %s\n", FormatRecordLine(rec))
	}
	return model.NewCLIError(model.ExitGeneralError, "missing branch argument")
}
