package cmd

import (
	"context"
	"fmt"
	"html"

	"github.com/spf13/cobra"

	"perkgrid/internal/app"
	"perkgrid/internal/render"
	"perkgrid/internal/tui/view"
)

var (
	renderFormat string
	renderWidth  int
	renderDebug  bool
	renderFlags  widgetFlags
)

// renderCmd prints a perk grid.
var renderCmd = &cobra.Command{
	Use:   "render <event-id>",
	Short: "Render the perk grid of an event as HTML or text",
	Long: `Fetches the perk grid of an event and prints it to stdout.

Formats:
  html  the grid markup, for embedding (default)
  page  a standalone HTML page including the default stylesheet
  text  a text table`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	switch renderFormat {
	case "html", "page", "text":
	default:
		return fmt.Errorf("invalid format %q, must be html, page or text", renderFormat)
	}

	cfg := app.NewConfig(args[0], true, renderDebug)
	cfg.Attributes = renderFlags.dataset()
	cfg.Offline = renderFlags.offline
	cfg.FixturesDir = renderFlags.fixturesDir

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	mount, detach, err := app.Render(ctx, cfg, application.Services())
	if err != nil {
		return err
	}
	defer detach()

	out := cmd.OutOrStdout()
	switch renderFormat {
	case "text":
		_, err = fmt.Fprintln(out, view.RenderMount(mount, renderWidth, ""))
	case "page":
		_, err = fmt.Fprintf(out, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s</style>\n</head>\n<body>\n%s\n</body>\n</html>\n",
			html.EscapeString(args[0]), render.DefaultCSS, mount.OuterHTML())
	default:
		_, err = fmt.Fprintln(out, mount.InnerHTML())
	}
	return err
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, page or text")
	renderCmd.Flags().IntVar(&renderWidth, "width", 100, "Line width of the text format in columns")
	renderCmd.Flags().BoolVar(&renderDebug, "debug", false, "Enable debug logging")
	renderFlags.register(renderCmd)
}
