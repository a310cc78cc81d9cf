package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pave/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the project's runtime, environment, and locks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Doctor(cmd.Context(), c.directory())
			if err != nil {
				return err
			}

			cmd.Printf("%s (%s)\n", report.Project, report.Root)
			for _, check := range report.Checks {
				cmd.Printf("  [%s] %-12s %s\n", statusMark(check.Status), check.Name, check.Detail)
			}
			if !report.Healthy() {
				return zerr.New("project is not healthy")
			}
			return nil
		},
	}
}

func statusMark(status app.CheckStatus) string {
	switch status {
	case app.StatusOK:
		return "ok"
	case app.StatusStale:
		return "stale"
	default:
		return "miss"
	}
}
