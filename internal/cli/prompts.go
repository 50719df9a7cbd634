// Package cli — prompts.go implements the "arbor prompts" command.
//
// Prompts are markdown files in the prompts directory; their stem is the
// name passed to create --system-prompt.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/prompt"
)

// NewPromptsCommand creates the "prompts" cobra command.
func NewPromptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List available system prompts",
		Long: `List the system prompts available to "create --system-prompt".

Prompts are markdown files in the prompts directory; add a file there
and its name (without .md) becomes usable immediately.

Examples:
  arbor prompts
  arbor create feature/auth --system-prompt reviewer`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompts()
		},
	}
}

func runPrompts() error {
	pm, err := prompt.NewManager()
	if err != nil {
		return err
	}

	names, err := pm.List()
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
		fmt.Fprintln(os.Stderr, "No prompts found. Add markdown files to the prompts directory.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
