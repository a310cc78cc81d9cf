package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Regenerate lock files without touching the environment",
		Long: "Lock recompiles the lock file of every selected group (default: all\n" +
			"declared groups), bypassing the fingerprint cache.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Lock(cmd.Context(), c.directory(), groups)
			if err != nil {
				return err
			}

			for _, group := range result.Regenerated {
				cmd.Printf("locked %s\n", group)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&groups, "group", "g", nil, "Dependency group to lock (repeatable; default: all declared)")
	return cmd
}
