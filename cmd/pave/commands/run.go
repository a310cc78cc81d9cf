package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "run [flags] -- <program> [args...]",
		Short: "Run a command inside the project environment",
		Long: "Run brings the environment up to date (runtime, locks, installed\n" +
			"packages) and then executes the given program inside it. The child's\n" +
			"exit code becomes pave's exit code.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Run(cmd.Context(), c.directory(), groups, args[0], args[1:])
		},
	}

	// everything after the program name belongs to the child
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringArrayVarP(&groups, "group", "g", nil, "Additional dependency group to sync (repeatable)")
	return cmd
}
