package model

import (
	"perkgrid/internal/events"
	"perkgrid/pkg/logging"
)

// ---- Widget messages ----

// WidgetEventMsg wraps a notification published by the perk grid.
type WidgetEventMsg struct {
	Event events.Event
}

// AttachResultMsg reports the outcome of Host.OnAttach.
type AttachResultMsg struct {
	Generation int
	Err        error
}

// ---- Logging ----

type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// ---- Misc overlay / status bar ----

type ClearStatusBarMsg struct{}

// CopyResultMsg reports a clipboard write.
type CopyResultMsg struct {
	Text string
	Err  error
}
