// Package cli implements the cobra-based CLI commands for arbor.
//
// Each subcommand (create, ls, remove, status, path, prompts, workspace,
// alias) is defined in its own file within this package. This file
// defines the root command that serves as the parent for all subcommands
// and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/paths"
	"github.com/mmr-tortoise/arbor/internal/registry"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// Global flag variables shared across all subcommands. These are bound
// to cobra persistent flags on the root command, which makes them
// available to every subcommand automatically.
var (
	// jsonOutput switches command output to JSON for machine consumption.
	jsonOutput bool

	// verbose enables detailed trace output on stderr and debug logging.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags. They are
// injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Running arbor with no subcommand lists the registered worktrees, so
// the most common query is also the shortest one.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Isolated git worktrees for AI coding agents",
		Long: `arbor creates isolated git worktrees and launches AI coding agents in
them, so several branches can be worked on in parallel without checkouts
stepping on each other.

Each worktree is recorded in a registry under ~/.arbor, which drives
listing, path resolution, and cleanup.`,

		// We handle error output ourselves (text or JSON based on --json),
		// so cobra must not print usage or errors on failures.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Bare "arbor" behaves like "arbor ls".
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(&listFlags{})
		},

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetDebug(true)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewRemoveCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewPathCommand())
	rootCmd.AddCommand(NewPromptsCommand())
	rootCmd.AddCommand(NewWorkspaceCommand())
	rootCmd.AddCommand(NewAliasCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. This is the main
// entry point called from main.go.
//
// CLIError values carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format (JSON or
// text) based on the --json global flag. Errors always go to stderr,
// even in JSON mode, because stdout is reserved for command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			errObj["error"].(map[string]interface{})["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set. Subcommands use
// this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// newWorktreeManager wires the default registry store and worktree base
// directory into a worktree Manager. All subcommands share this setup.
func newWorktreeManager() *worktree.Manager {
	return worktree.NewManager(registry.DefaultStore(), paths.WorktreesDir())
}

// currentProjectRoot resolves the git repository root containing the
// working directory. ok is false when run outside any repository.
func currentProjectRoot() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return worktree.DetectProjectRoot(cwd)
}

// requireProjectRoot is currentProjectRoot for commands that only make
// sense inside a repository.
func requireProjectRoot() (string, error) {
	root, ok := currentProjectRoot()
	if !ok {
		return "", model.NewCLIError(model.ExitGitError,
			"not inside a git repository (run this from a project checkout)")
	}
	VerboseLog("Project root: %s", root)
	return root, nil
}
