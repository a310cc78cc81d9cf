package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	var (
		groups []string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Bring the project environment up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Sync(cmd.Context(), c.directory(), groups, force)
			if err != nil {
				return err
			}

			if len(result.Regenerated) == 0 && result.Installed == 0 && result.Removed == 0 {
				cmd.Printf("environment up to date (python %s)\n", result.Version.Version)
				return nil
			}
			cmd.Printf("synced: %d lock(s) regenerated, %d installed, %d removed (python %s)\n",
				len(result.Regenerated), result.Installed, result.Removed, result.Version.Version)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&groups, "group", "g", nil, "Additional dependency group to sync (repeatable)")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate locks even when fingerprints match")
	return cmd
}
