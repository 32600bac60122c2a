package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeupmcp/internal/lifeup"
	"lifeupmcp/internal/tools"
)

// toolsCmd lists the tools exposed under the current mode
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed under the current mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry(lifeup.NewService(newClient()))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		mode := "full"
		if reg.SafeMode() {
			mode = "safe"
		}
		fmt.Fprintf(out, "%d tool(s), %s mode\n", reg.Count(), mode)
		for _, access := range []tools.Access{tools.AccessCreate, tools.AccessRead, tools.AccessEdit, tools.AccessDelete} {
			list := reg.ByAccess(access)
			if len(list) == 0 {
				continue
			}
			fmt.Fprintf(out, "\n%s:\n", access)
			for _, t := range list {
				fmt.Fprintf(out, "  %-30s %s\n", t.Name, t.Description)
			}
		}
		return nil
	},
}
