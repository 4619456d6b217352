package responsive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
	"perkgrid/internal/eventloop"
	"perkgrid/internal/events"
)

type fixture struct {
	doc     *dom.Document
	grid    *dom.Element
	loop    *eventloop.Manual
	src     *Source
	ctrl    *Controller
	resizes []events.ResizeDetail
}

func newFixture(t *testing.T, width, minWidth int) *fixture {
	t.Helper()
	f := &fixture{
		doc:  dom.NewDocument(),
		grid: dom.NewElement("div", cssclass.Grid),
		loop: eventloop.NewManual(time.Time{}),
		src:  NewSource(width),
	}
	f.doc.Body().Append(f.grid)

	bus := events.NewBus()
	bus.Subscribe(events.OfType(events.EventTypeGridResize), func(e events.Event) {
		f.resizes = append(f.resizes, *e.Resize)
	})

	f.ctrl = New(f.grid, minWidth, bus, f.loop)
	f.ctrl.Observe(f.src)
	return f
}

func TestController_TransitionsAfterDebounce(t *testing.T) {
	f := newFixture(t, 300, 500)
	assert.False(t, f.ctrl.GridDisplay())

	f.src.SetWidth(600)
	f.loop.Advance(299 * time.Millisecond)
	assert.Empty(t, f.resizes)
	assert.False(t, f.grid.HasClass(cssclass.DisplayAsGrid))

	f.loop.Advance(time.Millisecond)
	require.Len(t, f.resizes, 1)
	assert.Equal(t, events.ResizeDetail{ToGridDisplay: true, DisplayChanged: true}, f.resizes[0])
	assert.True(t, f.grid.HasClass(cssclass.DisplayAsGrid))

	f.src.SetWidth(499)
	f.loop.Advance(DefaultDebounce)
	require.Len(t, f.resizes, 2)
	assert.Equal(t, events.ResizeDetail{ToListDisplay: true, DisplayChanged: true}, f.resizes[1])
	assert.False(t, f.ctrl.GridDisplay())
}

func TestController_ThresholdIsInclusive(t *testing.T) {
	f := newFixture(t, 0, 500)
	assert.True(t, f.ctrl.Evaluate(500).ToGridDisplay)
	assert.True(t, f.ctrl.Evaluate(499).ToListDisplay)
}

func TestController_DebounceCoalescesBursts(t *testing.T) {
	f := newFixture(t, 300, 500)

	for _, w := range []int{320, 700, 800, 450} {
		f.src.SetWidth(w)
		f.loop.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, f.resizes)

	f.loop.Advance(DefaultDebounce)
	require.Len(t, f.resizes, 1)
	assert.Equal(t, events.ResizeDetail{}, f.resizes[0], "the last width wins and stays below the threshold")
}

func TestController_UnchangedWidthIsIdempotent(t *testing.T) {
	f := newFixture(t, 300, 500)

	f.src.SetWidth(800)
	f.loop.Advance(DefaultDebounce)
	require.Len(t, f.resizes, 1)
	require.True(t, f.resizes[0].DisplayChanged)

	for i := 0; i < 3; i++ {
		f.src.SetWidth(800)
		f.loop.Advance(DefaultDebounce)
	}
	require.Len(t, f.resizes, 4)
	for _, r := range f.resizes[1:] {
		assert.False(t, r.DisplayChanged)
	}
}

func TestController_StopsWhenGridLeavesDocument(t *testing.T) {
	f := newFixture(t, 300, 500)
	require.True(t, f.ctrl.Observing())
	assert.Equal(t, 1, f.src.Subscribers())
	assert.Equal(t, 1, f.doc.ObserverCount())

	f.src.SetWidth(900)
	f.grid.Remove()

	assert.False(t, f.ctrl.Observing())
	assert.Zero(t, f.src.Subscribers())
	assert.Zero(t, f.doc.ObserverCount())
	assert.Zero(t, f.loop.Pending(), "pending evaluation is cancelled")

	f.src.SetWidth(100)
	f.loop.Advance(time.Second)
	assert.Empty(t, f.resizes)
}

func TestController_UnrelatedMutationsKeepObserving(t *testing.T) {
	f := newFixture(t, 300, 500)
	f.doc.Body().Append(dom.NewElement("p", ""))
	assert.True(t, f.ctrl.Observing())
}

func TestController_StopIsIdempotent(t *testing.T) {
	f := newFixture(t, 300, 500)
	f.ctrl.Stop()
	f.ctrl.Stop()
	assert.False(t, f.ctrl.Observing())
}

func TestController_WithDebounce(t *testing.T) {
	grid := dom.NewElement("div", cssclass.Grid)
	loop := eventloop.NewManual(time.Time{})
	src := NewSource(0)
	ctrl := New(grid, 100, nil, loop, WithDebounce(10*time.Millisecond))
	ctrl.Observe(src)

	src.SetWidth(200)
	loop.Advance(10 * time.Millisecond)
	assert.True(t, ctrl.GridDisplay())
}
