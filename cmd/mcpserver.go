package cmd

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"perkgrid/internal/app"
	"perkgrid/internal/demo"
	"perkgrid/internal/mcptools"
	"perkgrid/pkg/logging"
)

var (
	mcpOffline     bool
	mcpFixturesDir string
	mcpDebug       bool
)

// mcpServerCmd serves the perk grid tools over stdio.
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Serve perk grid tools over MCP (stdio)",
	Long: `Runs an MCP server on stdin/stdout exposing the perk grid tools:

  perk_grid_render    render a grid as HTML or text
  perk_grid_validate  check event data JSON
  perk_grid_list      list the grids available by event id

Grids requested by event id are fetched from the API unless --offline or
--fixtures is given. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCPServer,
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	level := logging.LevelWarn
	if mcpDebug {
		level = logging.LevelDebug
	}

	cfg := app.NewConfig("", true, mcpDebug)
	cfg.Offline = mcpOffline
	cfg.FixturesDir = mcpFixturesDir

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	// stdout belongs to the protocol.
	logging.InitForCLI(level, os.Stderr)

	services := application.Services()
	catalog := services.Store
	if catalog == nil {
		if catalog, err = demo.NewStore(""); err != nil {
			return err
		}
	}

	tools := mcptools.NewTools(services.Fetcher, catalog)
	return server.ServeStdio(mcptools.NewServer(tools, rootCmd.Version))
}

func init() {
	rootCmd.AddCommand(mcpServerCmd)

	mcpServerCmd.Flags().BoolVar(&mcpOffline, "offline", false, "Serve the built-in sample instead of calling the API")
	mcpServerCmd.Flags().StringVar(&mcpFixturesDir, "fixtures", "", "Directory of <event-id>.json fixtures to use instead of the API")
	mcpServerCmd.Flags().BoolVar(&mcpDebug, "debug", false, "Enable debug logging")
}
