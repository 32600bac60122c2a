package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lifeupmcp/internal/client"
	"lifeupmcp/internal/lifeup"
	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/mcpserver"
)

// serveCmd runs the MCP server over stdio
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the LifeUp tools over MCP stdio",
	Long: `Checks that LifeUp Cloud is reachable, registers the tools allowed by the
current mode and speaks MCP on stdin/stdout until the client disconnects.

If LifeUp is not reachable at startup the server still starts; mutations
retry the health check before they are sent.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newClient()
	gate := client.NewHealthGate(c, cfg.HealthCheck.Retries, cfg.GetHealthCheckDelay())

	logging.Boot("checking LifeUp Cloud at %s", c.BaseURL())
	if info, err := c.HealthCheck(ctx, cfg.HealthCheck.Retries, cfg.GetHealthCheckDelay()); err != nil {
		logging.BootWarn("LifeUp not reachable yet: %v", err)
	} else {
		gate.MarkHealthy()
		logging.Boot("connected to LifeUp %s on %s", info.AppVersion, info.DeviceName)
	}

	svc := lifeup.NewService(c,
		lifeup.WithSubtaskDelay(cfg.GetSubtaskDelay()),
		lifeup.WithPreflight(gate.Ensure),
	)
	reg, err := newRegistry(svc)
	if err != nil {
		return err
	}
	srv, err := mcpserver.New(reg)
	if err != nil {
		return err
	}

	err = srv.Serve(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
