// Package cli — list.go implements the "arbor ls" command.
//
// Inside a repository the listing is scoped to that project; outside it
// spans every registered project. Records are shown newest first.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// listFlags holds the flag values for the ls command.
type listFlags struct {
	// all forces the global listing even when run inside a repository.
	all bool
}

// NewListCommand creates the "ls" cobra command.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List registered worktrees",
		Long: `List registered worktrees, newest first.

Run inside a git repository, the listing is scoped to that project.
Run elsewhere (or with --all), it spans every registered project.

Examples:
  arbor ls
  arbor ls --all
  arbor ls --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.all, "all", "A", false, "List worktrees across all projects")

	return cmd
}

// runList loads the registry and prints the matching records.
func runList(flags *listFlags) error {
	scope := ""
	if !flags.all {
		if root, ok := currentProjectRoot(); ok {
			scope = root
			VerboseLog("Scoping to project: %s", root)
		}
	}

	records, err := newWorktreeManager().List(scope)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		printListJSON(records)
		return nil
	}

	if len(records) == 0 {
		// An empty listing goes to stderr with a failure exit so scripts
		// can distinguish "nothing there" from a real listing.
		fmt.Fprintln(os.Stderr, "No active worktrees found.")
		return model.NewCLIError(model.ExitGeneralError, "no worktrees registered")
	}

	for _, rec := range records {
		fmt.Println(FormatRecordLine(rec))
	}
	return nil
}

// printListJSON outputs the records as a JSON array. An empty registry
// prints [] rather than null.
func printListJSON(records []model.WorktreeRecord) {
	if records == nil {
		records = []model.WorktreeRecord{}
	}
	data, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(data))
}

// FormatRecordLine renders one record as a single listing line:
//
//	myproj - feature/auth (claude)
//	myproj - hotfix (none) [orphaned]
//
// Exported for testing in list_test.go.
func FormatRecordLine(rec model.WorktreeRecord) string {
	line := fmt.Sprintf("%s - %s (%s)", rec.ProjectName, rec.Branch, rec.Agent)
	if rec.Status != model.StatusActive {
		line += fmt.Sprintf(" [%s]", rec.Status)
	}
	return line
}
