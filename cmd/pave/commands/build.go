package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [-- frontend args...]",
		Short: "Build distribution artifacts for the project",
		Long: "Build syncs the default group and delegates packaging to the standard\n" +
			"build frontend inside the environment. Extra arguments pass through\n" +
			"to the frontend unchanged.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), c.directory(), args)
		},
	}

	cmd.Flags().SetInterspersed(false)
	return cmd
}
