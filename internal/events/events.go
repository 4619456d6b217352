package events

import (
	"fmt"
	"time"
)

// EventType names a widget notification.
type EventType string

const (
	// Host lifecycle
	EventTypeConnecting   EventType = "connecting"
	EventTypeLoading      EventType = "loading"
	EventTypeError        EventType = "error"
	EventTypeReady        EventType = "ready"
	EventTypeDisconnected EventType = "disconnected"

	// Responsive controller
	EventTypeGridResize EventType = "grid-resize"
)

// ResizeDetail is the payload of a grid-resize notification.
type ResizeDetail struct {
	ToGridDisplay  bool `json:"toGridDisplay"`
	ToListDisplay  bool `json:"toListDisplay"`
	DisplayChanged bool `json:"displayChanged"`
}

// Event is a notification dispatched by a widget.
type Event struct {
	Type      EventType
	Source    string
	Timestamp time.Time

	// Err is set on error notifications.
	Err error
	// Resize is set on grid-resize notifications.
	Resize *ResizeDetail
}

// New creates an event stamped with the current time.
func New(t EventType, source string) Event {
	return Event{Type: t, Source: source, Timestamp: time.Now()}
}

// NewError creates an error notification carrying err.
func NewError(source string, err error) Event {
	e := New(EventTypeError, source)
	e.Err = err
	return e
}

// NewResize creates a grid-resize notification.
func NewResize(source string, detail ResizeDetail) Event {
	e := New(EventTypeGridResize, source)
	e.Resize = &detail
	return e
}

func (e Event) String() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s[%s]: %v", e.Type, e.Source, e.Err)
	case e.Resize != nil:
		return fmt.Sprintf("%s[%s]: toGrid=%t toList=%t changed=%t",
			e.Type, e.Source, e.Resize.ToGridDisplay, e.Resize.ToListDisplay, e.Resize.DisplayChanged)
	default:
		return fmt.Sprintf("%s[%s]", e.Type, e.Source)
	}
}
