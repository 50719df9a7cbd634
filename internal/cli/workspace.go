// Package cli — workspace.go implements the "arbor workspace" command
// group.
//
// A workspace creates a same-named worktree in several repositories at
// once, for changes that span more than one repo.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/paths"
	"github.com/mmr-tortoise/arbor/internal/workspace"
)

// newWorkspaceManager wires the default directories into a workspace
// Manager with the interactive editor flow.
func newWorkspaceManager() *workspace.Manager {
	am := workspace.NewAliasManager(paths.AliasDir(), nil)
	return workspace.NewManager(paths.WorkspacesDir(), newWorktreeManager(), am, nil)
}

// NewWorkspaceCommand creates the "workspace" cobra command group.
func NewWorkspaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage multi-repository workspaces",
		Long: `Manage workspaces: a workspace creates a worktree with the same branch
name in several repositories at once.

Member repositories come from an alias (see "arbor alias") or from a
YAML list filled in via $EDITOR at creation time.

Examples:
  arbor workspace create feature/x
  arbor workspace create feature/x --alias backend
  arbor workspace ls
  arbor workspace remove feature/x`,
	}

	cmd.AddCommand(newWorkspaceCreateCommand())
	cmd.AddCommand(newWorkspaceRemoveCommand())
	cmd.AddCommand(newWorkspaceListCommand())

	return cmd
}

func newWorkspaceCreateCommand() *cobra.Command {
	var aliasName string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace across multiple repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newWorkspaceManager().Create(cmd.Context(), args[0], aliasName); err != nil {
				return err
			}
			if !IsJSONOutput() {
				fmt.Printf("Workspace %q created\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&aliasName, "alias", "", "Take the project list from a named alias")

	return cmd
}

func newWorkspaceRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a workspace and all its worktrees",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newWorkspaceManager().Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			if !IsJSONOutput() {
				fmt.Printf("Workspace %q removed\n", args[0])
			}
			return nil
		},
	}
}

func newWorkspaceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List workspaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaces, err := newWorkspaceManager().List()
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				if workspaces == nil {
					workspaces = []workspace.WorkspaceInfo{}
				}
				data, _ := json.MarshalIndent(workspaces, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			if len(workspaces) == 0 {
				fmt.Fprintln(os.Stderr, "No workspaces found.")
				return nil
			}
			for _, ws := range workspaces {
				fmt.Println(FormatWorkspaceLine(ws))
			}
			return nil
		},
	}
}

// FormatWorkspaceLine renders one workspace as a single listing line:
//
//	feature/x (3 projects) created 2026-08-23
//
// Exported for testing in list_test.go.
func FormatWorkspaceLine(ws workspace.WorkspaceInfo) string {
	noun := "projects"
	if len(ws.Projects) == 1 {
		noun = "project"
	}
	parts := []string{
		fmt.Sprintf("%s (%d %s)", ws.Name, len(ws.Projects), noun),
		"created " + ws.CreatedAt.Local().Format(time.DateOnly),
	}
	if ws.Alias != "" {
		parts = append(parts, "from alias "+ws.Alias)
	}
	return strings.Join(parts, " ")
}
