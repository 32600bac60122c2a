package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeupmcp/internal/apierr"
)

// checkCmd probes LifeUp Cloud
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that LifeUp Cloud is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		out := cmd.OutOrStdout()

		info, err := c.HealthCheck(cmd.Context(), cfg.HealthCheck.Retries, cfg.GetHealthCheckDelay())
		if err != nil {
			msg, _ := apierr.UserFacing(err)
			fmt.Fprintf(out, "✗ %s unreachable (%s)\n  %s\n", c.BaseURL(), apierr.CodeOf(err), msg)
			return err
		}

		fmt.Fprintf(out, "✓ %s reachable\n", c.BaseURL())
		if info.AppVersion != "" {
			fmt.Fprintf(out, "  LifeUp %s (API %d)\n", info.AppVersion, info.APIVersion)
		}
		if info.DeviceName != "" {
			fmt.Fprintf(out, "  Device: %s\n", info.DeviceName)
		}
		return nil
	},
}
