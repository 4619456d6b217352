// Package responsive switches a grid between grid and list display as the
// width available to it changes.
package responsive

import (
	"sync"
	"time"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
	"perkgrid/internal/eventloop"
	"perkgrid/internal/events"
	"perkgrid/pkg/logging"
)

const subsystem = "Responsive"

// DefaultDebounce coalesces bursts of size changes into one evaluation.
const DefaultDebounce = 300 * time.Millisecond

// SizeSource reports the width available to a grid, in px. Any host that
// wants responsive display supplies one.
type SizeSource interface {
	Width() int
	// Subscribe registers fn for width changes and returns a function that
	// removes it.
	Subscribe(fn func(width int)) (unsubscribe func())
}

// Controller toggles the display-as-grid class of one grid. It is either
// in grid display (class present) or list display (class absent).
type Controller struct {
	grid     *dom.Element
	minWidth int
	bus      events.Bus
	loop     eventloop.Loop
	source   string
	debounce time.Duration

	mu           sync.Mutex
	timer        eventloop.Timer
	observing    bool
	unsubscribe  func()
	unobserveDoc func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.debounce = d
		}
	}
}

// WithSource sets the Source of published events.
func WithSource(source string) Option {
	return func(c *Controller) { c.source = source }
}

// New creates a controller for grid. minWidth is the width at or above
// which the grid is displayed as a grid.
func New(grid *dom.Element, minWidth int, bus events.Bus, loop eventloop.Loop, opts ...Option) *Controller {
	c := &Controller{
		grid:     grid,
		minWidth: minWidth,
		bus:      bus,
		loop:     loop,
		source:   "perk-grid",
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MinWidth returns the grid display threshold in px.
func (c *Controller) MinWidth() int { return c.minWidth }

// GridDisplay reports whether the grid is currently displayed as a grid.
func (c *Controller) GridDisplay() bool {
	return c.grid.HasClass(cssclass.DisplayAsGrid)
}

// Observing reports whether the controller still watches for changes.
func (c *Controller) Observing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observing
}

// Observe starts watching src. Width changes are debounced and then
// evaluated on the loop. The controller also stops by itself once the grid
// leaves its document. Observe must run on the loop.
func (c *Controller) Observe(src SizeSource) {
	c.mu.Lock()
	if c.observing {
		c.mu.Unlock()
		return
	}
	c.observing = true
	c.mu.Unlock()

	unsubscribe := src.Subscribe(c.schedule)

	var unobserveDoc func()
	if doc := c.grid.OwnerDocument(); doc != nil {
		unobserveDoc = doc.Observe(func() {
			if !doc.Contains(c.grid) {
				logging.Debug(subsystem, "grid left the document, releasing observers")
				c.Stop()
			}
		})
	}

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.unobserveDoc = unobserveDoc
	c.mu.Unlock()
}

// schedule restarts the debounce timer with the latest width.
func (c *Controller) schedule(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.observing {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.loop.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.timer = nil
		active := c.observing
		c.mu.Unlock()
		if active {
			c.Evaluate(width)
		}
	})
}

// Evaluate applies width immediately and publishes a grid-resize event,
// whether or not the display changed. It must run on the loop.
func (c *Controller) Evaluate(width int) events.ResizeDetail {
	wideEnough := width >= c.minWidth
	wasGrid := c.GridDisplay()

	detail := events.ResizeDetail{
		ToGridDisplay: !wasGrid && wideEnough,
		ToListDisplay: wasGrid && !wideEnough,
	}
	detail.DisplayChanged = detail.ToGridDisplay || detail.ToListDisplay

	switch {
	case detail.ToGridDisplay:
		c.grid.AddClass(cssclass.DisplayAsGrid)
	case detail.ToListDisplay:
		c.grid.RemoveClass(cssclass.DisplayAsGrid)
	}

	if detail.DisplayChanged {
		logging.Debug(subsystem, "width %dpx (min %dpx): grid=%t", width, c.minWidth, wideEnough)
	}
	if c.bus != nil {
		c.bus.Publish(events.NewResize(c.source, detail))
	}
	return detail
}

// Stop releases the size and document observers and cancels a pending
// evaluation. It is safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.observing {
		c.mu.Unlock()
		return
	}
	c.observing = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	unsubscribe, unobserveDoc := c.unsubscribe, c.unobserveDoc
	c.unsubscribe, c.unobserveDoc = nil, nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if unobserveDoc != nil {
		unobserveDoc()
	}
}
