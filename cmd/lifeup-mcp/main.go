package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"lifeupmcp/internal/client"
	"lifeupmcp/internal/config"
	"lifeupmcp/internal/lifeup"
	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/mcpserver"
	"lifeupmcp/internal/tools"
)

var (
	// Global flags
	configPath string
	verbose    bool
	safeMode   bool

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lifeup-mcp",
	Short: "MCP server for the LifeUp gamified to-do app",
	Long: `lifeup-mcp lets an AI agent create, edit and query LifeUp tasks,
achievements, shop items, skills and penalties through LifeUp Cloud.

Run "lifeup-mcp serve" from an MCP client configuration. The other commands
help check connectivity and try requests by hand.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("safe-mode") {
			cfg.Mode.Safe = safeMode
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			return err
		}
		if verbose {
			logging.SetLevel(zapcore.DebugLevel)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.Version = mcpserver.Version
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&safeMode, "safe-mode", false, "Expose only create and read tools")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(toolsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds the LifeUp Cloud client from the loaded config.
func newClient() *client.Client {
	return client.New(cfg.BaseURL(), cfg.GetTimeout(),
		client.WithToken(cfg.Server.APIToken),
		client.WithMaxParallelReads(cfg.Client.MaxParallelReads),
	)
}

// newRegistry binds every tool to svc under the configured mode.
func newRegistry(svc *lifeup.Service) (*tools.Registry, error) {
	reg := tools.NewRegistry(tools.WithSafeMode(cfg.Mode.Safe))
	if _, err := reg.RegisterAll(tools.Definitions(svc)); err != nil {
		return nil, err
	}
	return reg, nil
}
