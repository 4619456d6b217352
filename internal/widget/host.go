// Package widget hosts a perk grid on a mount element: it fetches the data,
// swaps the placeholder for the grid or an error message, and reports its
// lifecycle on an event bus.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
	"perkgrid/internal/eventdata"
	"perkgrid/internal/eventloop"
	"perkgrid/internal/events"
	"perkgrid/internal/fetch"
	"perkgrid/internal/render"
	"perkgrid/internal/responsive"
	"perkgrid/pkg/logging"
)

const subsystem = "Widget"

// ErrMissingEventID is returned by OnAttach when no event id is configured.
var ErrMissingEventID = errors.New("cannot render perk-grid: the data-event-id attribute with your event id is required")

// Widget is a component attached to and detached from a document.
type Widget interface {
	// OnAttach runs the attach lifecycle. It blocks until the widget is
	// ready or failed and must not be called on the loop.
	OnAttach(ctx context.Context) error
	// OnDetach runs on the loop once the widget's element was removed.
	OnDetach()
}

// Config carries the collaborators of a Host.
type Config struct {
	Fetcher fetch.Fetcher
	Bus     events.Bus
	Loop    eventloop.Loop
	// Size is optional; without it a responsive grid keeps grid display.
	Size responsive.SizeSource
	// Source tags the host's events; defaults to the event id.
	Source   string
	Debounce time.Duration
}

// Host is the Widget that renders a perk grid into its element.
type Host struct {
	el     *dom.Element
	attrs  Attributes
	cfg    Config
	source string

	mu       sync.Mutex
	cancel   context.CancelFunc
	detached bool
	rendered *render.Rendered
	data     *eventdata.EventData
}

var _ Widget = (*Host)(nil)

// NewHost creates a host for el. A nil bus or loop is replaced with a
// private one.
func NewHost(el *dom.Element, attrs Attributes, cfg Config) *Host {
	if cfg.Bus == nil {
		cfg.Bus = events.NewBus()
	}
	if cfg.Loop == nil {
		cfg.Loop = eventloop.NewInline()
	}
	source := cfg.Source
	if source == "" {
		source = attrs.EventID
	}
	return &Host{el: el, attrs: attrs, cfg: cfg, source: source}
}

// Element returns the mount element.
func (h *Host) Element() *dom.Element { return h.el }

// Attributes returns the host's configuration.
func (h *Host) Attributes() Attributes { return h.attrs }

// Bus returns the bus the host publishes on.
func (h *Host) Bus() events.Bus { return h.cfg.Bus }

// Rendered returns the rendered grid, or nil before the host is ready or
// when loading failed.
func (h *Host) Rendered() *render.Rendered {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rendered
}

// Data returns the fetched event data, or nil.
func (h *Host) Data() *eventdata.EventData {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data
}

func (h *Host) publish(t events.EventType) {
	h.cfg.Bus.Publish(events.New(t, h.source))
}

// OnAttach shows the placeholder, fetches the data and renders it.
//
// A missing event id returns ErrMissingEventID right after the placeholder
// is shown. Fetch and validation failures are recovered: the error message
// replaces the placeholder and the host still reports ready. Any other
// failure is published and returned.
func (h *Host) OnAttach(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.mu.Lock()
	h.detached = false
	h.cancel = cancel
	h.mu.Unlock()

	h.cfg.Loop.Do(func() {
		h.publish(events.EventTypeConnecting)
		h.el.Append(dom.NewElement("div", cssclass.Loading, dom.WithText(h.attrs.PlaceholderText)))
	})

	if h.attrs.EventID == "" {
		return ErrMissingEventID
	}

	h.cfg.Loop.Do(func() { h.publish(events.EventTypeLoading) })

	if h.cfg.Fetcher == nil {
		return fmt.Errorf("perk grid %s: no fetcher configured", h.attrs.EventID)
	}
	data, err := h.cfg.Fetcher.Fetch(ctx, h.attrs.EventID)

	var result error
	h.cfg.Loop.Do(func() {
		if h.isDetached() {
			logging.Debug(subsystem, "perk grid %s detached while loading, dropping result", h.attrs.EventID)
			return
		}
		if err == nil {
			err = h.render(data)
		}
		if err != nil {
			result = h.fail(err)
			if result != nil {
				return
			}
		}
		h.publish(events.EventTypeReady)
	})
	return result
}

func (h *Host) render(data eventdata.EventData) error {
	r, err := render.Render(h.el, data, h.attrs.RenderOptions(), render.Env{
		Size:     h.cfg.Size,
		Loop:     h.cfg.Loop,
		Bus:      h.cfg.Bus,
		Source:   h.source,
		Debounce: h.cfg.Debounce,
	})
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.rendered = r
	h.data = &data
	h.mu.Unlock()
	return nil
}

// fail publishes err and either shows the error message (returning nil) or
// returns err for the caller.
func (h *Host) fail(err error) error {
	h.cfg.Bus.Publish(events.NewError(h.source, err))

	if fetch.IsFetchError(err) || eventdata.IsTypeError(err) {
		h.el.ReplaceChildren(dom.NewElement("div", cssclass.Error, dom.WithText(h.attrs.ErrorText)))
		logging.Error(subsystem, err, "loading perk grid %s", h.attrs.EventID)
		return nil
	}
	return fmt.Errorf("perk grid %s: %w", h.attrs.EventID, err)
}

func (h *Host) isDetached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detached
}

// OnDetach publishes disconnected, cancels a fetch in flight and releases
// the grid's observers.
func (h *Host) OnDetach() {
	h.mu.Lock()
	h.detached = true
	cancel, rendered := h.cancel, h.rendered
	h.cancel = nil
	h.mu.Unlock()

	h.publish(events.EventTypeDisconnected)

	if cancel != nil {
		cancel()
	}
	if rendered != nil {
		rendered.Close()
	}
}
