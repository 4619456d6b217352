package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"perkgrid/internal/dom"
	"perkgrid/internal/events"
	"perkgrid/internal/tui/controller"
	"perkgrid/internal/tui/design"
	"perkgrid/internal/tui/model"
	"perkgrid/internal/tui/view"
	"perkgrid/internal/widget"
	"perkgrid/pkg/logging"
)

const defaultCLIWidth = 100

// Render attaches a perk grid host to a fresh document and waits until it
// is ready. The returned mount holds the grid or the error message; call
// detach when done with it.
func Render(ctx context.Context, cfg *Config, services *Services) (mount *dom.Element, detach func(), err error) {
	doc := dom.NewDocument()
	mount = dom.NewElement(widget.TagName, "")
	doc.Body().Append(mount)

	bus := events.NewBus()
	bus.Subscribe(nil, func(e events.Event) {
		logging.Debug("CLI", "%s", e)
	})

	host := widget.NewHost(mount, cfg.WidgetAttributes(), widget.Config{
		Fetcher: services.Fetcher,
		Bus:     bus,
	})
	detach = func() {
		host.OnDetach()
		bus.Close()
	}
	if err := host.OnAttach(ctx); err != nil {
		detach()
		return nil, nil, err
	}
	return mount, detach, nil
}

// runCLIMode prints the grid as text once
func runCLIMode(ctx context.Context, config *Config, services *Services, out io.Writer) error {
	mount, detach, err := Render(ctx, config, services)
	if err != nil {
		return err
	}
	defer detach()

	width := config.Width
	if width <= 0 {
		width = defaultCLIWidth
	}
	_, err = fmt.Fprintln(out, view.RenderMount(mount, width, ""))
	return err
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	logging.Debug("CLI", "Starting TUI mode...")

	design.Initialize(lipgloss.HasDarkBackground())

	// Switch logging to channel-based system for TUI integration
	logLevel := logging.LevelInfo
	if config.Debug {
		logLevel = logging.LevelDebug
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	opts := model.Options{
		Attributes: config.WidgetAttributes(),
		Fetcher:    services.Fetcher,
		LogChannel: logChan,
		DebugMode:  config.Debug,
	}
	if config.PerkGridConfig != nil {
		opts.PxPerColumn = config.PerkGridConfig.TUI.PxPerColumn
		opts.Debounce = config.PerkGridConfig.TUI.Debounce
	}

	p, m := controller.NewProgram(opts)
	defer m.Loop.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run the TUI until user exits
	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Debug("TUI-Lifecycle", "TUI exited.")

	if m.AttachErr != nil {
		return m.AttachErr
	}
	return nil
}
