package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"perkgrid/internal/config"
	"perkgrid/internal/demo"
	"perkgrid/pkg/logging"
)

var (
	serveHost     string
	servePort     int
	serveFixtures string
	serveDebug    bool
)

// serveCmd starts the demo web server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the perk grid demo web server",
	Long: `Starts a web server that serves perk grid fixtures at the same path as
the perk grid API (/api/v1/perk_grids/<event-id>.json) and a demo page
for each of them (/grids/<event-id>).

Without --fixtures only the built-in sample is served. With a fixtures
directory, changes to its files are picked up while the server runs.

Configuration:
  The demo section of the perkgrid configuration sets the listen address,
  the fixtures directory and the origins allowed to fetch fixtures.
  PERKGRID_DEMO_PORT overrides the port.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveDebug {
		level = logging.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logging.InitForCLI(level, os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load perkgrid configuration: %w", err)
	}
	if cmd.Flags().Changed("host") {
		cfg.Demo.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Demo.Port = servePort
	}
	if serveFixtures != "" {
		cfg.Demo.FixturesDir = serveFixtures
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	store, err := demo.NewStore(cfg.Demo.FixturesDir)
	if err != nil {
		return err
	}
	server := demo.NewServer(cfg.Demo, cfg.Widget.Dataset(), store)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Address to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 4200, "Port to listen on")
	serveCmd.Flags().StringVar(&serveFixtures, "fixtures", "", "Directory of <event-id>.json fixtures")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}
