package model

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"perkgrid/internal/dom"
	"perkgrid/internal/events"
	"perkgrid/internal/fetch"
	"perkgrid/internal/focus"
	"perkgrid/internal/render"
	"perkgrid/internal/responsive"
	"perkgrid/internal/widget"
	"perkgrid/pkg/logging"
)

// AppMode represents the different states or views of the TUI application.
type AppMode int

const (
	// ModeInitializing is the initial state before the first window size
	// is known.
	ModeInitializing AppMode = iota
	// ModeMain shows the perk grid.
	ModeMain
	// ModeHelpOverlay shows the help screen.
	ModeHelpOverlay
	// ModeLogOverlay shows the full activity log.
	ModeLogOverlay
	// ModeQuitting indicates the application is shutting down.
	ModeQuitting
)

// String returns a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeInitializing:
		return "Initializing"
	case ModeMain:
		return "Main"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType defines the category of a status bar message.
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
)

const (
	// DefaultPxPerColumn converts terminal columns into the px widths the
	// grid thresholds use.
	DefaultPxPerColumn = 8
	eventBufferSize    = 256
)

// Options configures InitialModel.
type Options struct {
	Attributes  widget.Attributes
	Fetcher     fetch.Fetcher
	PxPerColumn int
	Debounce    time.Duration
	LogChannel  <-chan logging.LogEntry
	DebugMode   bool
	// Clipboard writes copied text; defaults to the system clipboard.
	Clipboard func(string) error
}

// Model holds the TUI state. The element tree under Mount is owned by the
// bubbletea goroutine: asynchronous work reaches it through Loop.
type Model struct {
	// Terminal dimensions
	Width  int
	Height int

	CurrentAppMode  AppMode
	DebugMode       bool
	QuittingMessage string

	// Widget
	Attributes  widget.Attributes
	Fetcher     fetch.Fetcher
	Doc         *dom.Document
	Mount       *dom.Element
	Host        *widget.Host
	Loop        *Loop
	Bus         *events.DefaultBus
	Events      *events.Subscription
	Size        *responsive.Source
	PxPerColumn int
	Debounce    time.Duration
	Generation  int
	State       events.EventType
	LastResize  *events.ResizeDetail
	AttachErr   error

	// UI components
	ActivityLog          []string
	ActivityLogDirty     bool
	LogViewport          viewport.Model
	Spinner              spinner.Model
	Keys                 KeyMap
	Help                 help.Model
	StatusBarMessage     string
	StatusBarMessageType MessageType
	Clipboard            func(string) error

	// Logging
	LogChannel <-chan logging.LogEntry

	attachCancel context.CancelFunc
}

// InitialModel builds the model and its widget host. The returned model's
// Loop still has to be bound to the program.
func InitialModel(opts Options) *Model {
	if opts.PxPerColumn <= 0 {
		opts.PxPerColumn = DefaultPxPerColumn
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	doc := dom.NewDocument()
	mount := dom.NewElement(widget.TagName, "", dom.WithAttr("data-event-id", opts.Attributes.EventID))
	doc.Body().Append(mount)

	bus := events.NewBus()

	m := &Model{
		CurrentAppMode: ModeInitializing,
		DebugMode:      opts.DebugMode,
		Attributes:     opts.Attributes,
		Fetcher:        opts.Fetcher,
		Doc:            doc,
		Mount:          mount,
		Loop:           NewLoop(),
		Bus:            bus,
		Events:         bus.SubscribeChannel(nil, eventBufferSize),
		Size:           responsive.NewSource(0),
		PxPerColumn:    opts.PxPerColumn,
		Debounce:       opts.Debounce,
		LogViewport:    viewport.New(0, 0),
		Spinner:        s,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		Clipboard:      opts.Clipboard,
		LogChannel:     opts.LogChannel,
	}
	m.Host = m.newHost()
	return m
}

func (m *Model) newHost() *widget.Host {
	return widget.NewHost(m.Mount, m.Attributes, widget.Config{
		Fetcher:  m.Fetcher,
		Bus:      m.Bus,
		Loop:     m.Loop,
		Size:     m.Size,
		Debounce: m.Debounce,
	})
}

// Init implements the start of the bubbletea program.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		m.Attach(),
		ListenForWidgetEventsCmd(m.Events.C()),
		ListenForLogEntriesCmd(m.LogChannel),
	)
}

// Attach starts the host's attach sequence off the update loop.
func (m *Model) Attach() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.attachCancel = cancel
	m.Generation++
	return AttachCmd(ctx, m.Host, m.Generation)
}

// Detach disconnects the current host.
func (m *Model) Detach() {
	if m.attachCancel != nil {
		m.attachCancel()
		m.attachCancel = nil
	}
	m.Host.OnDetach()
}

// Reload detaches the current host, clears the mount and attaches a fresh
// host with the current attributes.
func (m *Model) Reload() tea.Cmd {
	m.Detach()
	m.Mount.ReplaceChildren()
	m.LastResize = nil
	m.AttachErr = nil
	m.Host = m.newHost()
	return m.Attach()
}

// CycleDisplay switches responsive → grid → list → responsive and reloads.
func (m *Model) CycleDisplay() tea.Cmd {
	switch m.Attributes.Display {
	case render.DisplayResponsive:
		m.Attributes.Display = render.DisplayGrid
	case render.DisplayGrid:
		m.Attributes.Display = render.DisplayList
	default:
		m.Attributes.Display = render.DisplayResponsive
	}
	m.Mount.SetAttr("data-display", string(m.Attributes.Display))
	return m.Reload()
}

// Focus returns the focus manager of the rendered grid, or nil.
func (m *Model) Focus() *focus.Manager {
	if r := m.Host.Rendered(); r != nil {
		return r.Focus
	}
	return nil
}

// GridWidthPx converts the terminal width into the width reported to the
// responsive controller.
func (m *Model) GridWidthPx(frame int) int {
	cols := m.Width - frame
	if cols < 0 {
		cols = 0
	}
	return cols * m.PxPerColumn
}

// SetStatusMessage shows msg in the status bar and clears it after
// clearAfter.
func (m *Model) SetStatusMessage(msg string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = msg
	m.StatusBarMessageType = msgType
	return tea.Tick(clearAfter, func(time.Time) tea.Msg { return ClearStatusBarMsg{} })
}
