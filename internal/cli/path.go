// Package cli — path.go implements the "arbor path" command.
//
// Path prints the worktree directory for a branch, and nothing else, so
// it composes with the shell: cd "$(arbor path feature/auth)".
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPathCommand creates the "path" cobra command.
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path <branch>",
		Short: "Print the worktree directory for a branch",
		Long: `Print the filesystem path of the worktree for a branch. The branch may
be given as a unique substring.

Examples:
  arbor path feature/auth
  cd "$(arbor path auth)"`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(args[0])
		},
	}
}

func runPath(branch string) error {
	scope, _ := currentProjectRoot()

	path, err := newWorktreeManager().PathFor(scope, branch)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.Marshal(map[string]string{"path": path})
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(path)
	return nil
}
