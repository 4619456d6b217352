// Package render builds the perk grid element tree and wires it to the
// responsive controller and the focus manager.
package render

import (
	"time"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
	"perkgrid/internal/eventdata"
	"perkgrid/internal/eventloop"
	"perkgrid/internal/events"
	"perkgrid/internal/focus"
	"perkgrid/internal/responsive"
)

// Env is what the host provides to a rendered grid.
type Env struct {
	// Size reports the width available to the grid. Without it a
	// responsive grid starts in grid display and never changes.
	Size responsive.SizeSource
	Loop eventloop.Loop
	Bus  events.Bus
	// Source tags published events; defaults to "perk-grid".
	Source string
	// Debounce overrides responsive.DefaultDebounce when positive.
	Debounce time.Duration
}

// Rendered is a grid attached to its parent.
type Rendered struct {
	Grid       *dom.Element
	Responsive *responsive.Controller
	Focus      *focus.Manager

	bus events.Bus
	sub *events.Subscription
}

// Render replaces parent's children with the grid for data. The initial
// display is chosen from the available width so that a narrow host does
// not flash a grid before the first resize evaluation. Render must run on
// the loop.
func Render(parent *dom.Element, data eventdata.EventData, opts Options, env Env) (*Rendered, error) {
	opts = opts.normalized()
	if env.Source == "" {
		env.Source = "perk-grid"
	}

	grid, err := Build(data, opts)
	if err != nil {
		return nil, err
	}

	minWidth := MinWidthForGrid(opts, len(data.Packages))
	if initialGridDisplay(opts.Display, env.Size, minWidth) {
		grid.AddClass(cssclass.DisplayAsGrid)
	}

	parent.ReplaceChildren(grid)

	r := &Rendered{Grid: grid, bus: env.Bus}

	if opts.Display == DisplayResponsive && env.Size != nil {
		if r.bus == nil {
			r.bus = events.NewBus()
		}
		loop := env.Loop
		if loop == nil {
			loop = eventloop.NewInline()
		}
		ctrlOpts := []responsive.Option{responsive.WithSource(env.Source)}
		if env.Debounce > 0 {
			ctrlOpts = append(ctrlOpts, responsive.WithDebounce(env.Debounce))
		}
		r.Responsive = responsive.New(grid, minWidth, r.bus, loop, ctrlOpts...)
		r.Responsive.Observe(env.Size)
	}

	// The matrix is scanned from the attached tree.
	if opts.AllowKeyboardNavigation {
		r.Focus = focus.New(grid)
		if r.Responsive != nil {
			source := env.Source
			r.sub = r.bus.Subscribe(func(e events.Event) bool {
				return e.Type == events.EventTypeGridResize && e.Source == source
			}, func(e events.Event) {
				if e.Resize.DisplayChanged {
					r.Focus.Reset()
				}
			})
		}
	}

	return r, nil
}

func initialGridDisplay(display Display, size responsive.SizeSource, minWidth int) bool {
	switch display {
	case DisplayList:
		return false
	case DisplayGrid:
		return true
	default:
		return size == nil || size.Width() >= minWidth
	}
}

// DisplayedAsGrid reports whether the grid currently has grid display.
func (r *Rendered) DisplayedAsGrid() bool {
	return r.Grid.HasClass(cssclass.DisplayAsGrid)
}

// Close stops the responsive controller and drops the focus manager's
// resize subscription.
func (r *Rendered) Close() {
	if r.Responsive != nil {
		r.Responsive.Stop()
	}
	if r.sub != nil {
		r.bus.Unsubscribe(r.sub)
		r.sub = nil
	}
}
