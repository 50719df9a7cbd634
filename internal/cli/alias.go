// Package cli — alias.go implements the "arbor alias" command group.
//
// An alias is a named, reusable list of repositories that workspaces can
// be created from without re-entering paths each time.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/paths"
	"github.com/mmr-tortoise/arbor/internal/workspace"
)

// NewAliasCommand creates the "alias" cobra command group.
func NewAliasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage workspace aliases",
		Long: `Manage aliases: named, reusable repository lists for workspaces.

Creating an alias opens a YAML template in $EDITOR; fill in the project
paths and save. The alias can then be used with
"arbor workspace create --alias <name>".

Examples:
  arbor alias create backend
  arbor alias ls
  arbor alias remove backend`,
	}

	cmd.AddCommand(newAliasCreateCommand())
	cmd.AddCommand(newAliasRemoveCommand())
	cmd.AddCommand(newAliasListCommand())

	return cmd
}

func newAliasManager() *workspace.AliasManager {
	return workspace.NewAliasManager(paths.AliasDir(), nil)
}

func newAliasCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an alias by editing a project list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAliasManager().Create(args[0]); err != nil {
				return err
			}
			if !IsJSONOutput() {
				fmt.Printf("Alias %q created\n", args[0])
			}
			return nil
		},
	}
}

func newAliasRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an alias",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAliasManager().Remove(args[0]); err != nil {
				return err
			}
			if !IsJSONOutput() {
				fmt.Printf("Alias %q removed\n", args[0])
			}
			return nil
		},
	}
}

func newAliasListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List aliases",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := newAliasManager().List()
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				if names == nil {
					names = []string{}
				}
				data, _ := json.MarshalIndent(names, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			if len(names) == 0 {
				fmt.Fprintln(os.Stderr, "No aliases found.")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
