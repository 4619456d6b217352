package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"perkgrid/internal/app"
)

var (
	showNoTUI bool
	showDebug bool
	showWidth int
	showFlags widgetFlags
)

// showCmd shows one perk grid in the terminal.
var showCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show the perk grid of an event in an interactive TUI",
	Long: `Fetches the perk grid of an event and shows it in the terminal.

The grid switches between grid and list display as the terminal is
resized. Move between cells with the arrow keys (or h/j/k/l), copy the
focused cell with y and press ? for all key bindings.

With --no-tui the grid is printed once as a text table.

Configuration:
  perkgrid loads configuration from ~/.config/perkgrid/config.yaml and
  .perkgrid/config.yaml in the current directory. Flags override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(args[0], showNoTUI, showDebug)
	cfg.Attributes = showFlags.dataset()
	cfg.Offline = showFlags.offline
	cfg.FixturesDir = showFlags.fixturesDir
	cfg.Width = showWidth

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showNoTUI, "no-tui", false, "Print the grid once instead of starting the TUI")
	showCmd.Flags().BoolVar(&showDebug, "debug", false, "Enable debug logging")
	showCmd.Flags().IntVar(&showWidth, "width", 100, "Line width of --no-tui output in columns")
	showFlags.register(showCmd)
}
