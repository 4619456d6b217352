package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"perkgrid/internal/events"
	"perkgrid/internal/widget"
	"perkgrid/pkg/logging"
)

// AttachCmd runs host.OnAttach. It must run outside Update because the
// host waits for its callbacks to run on the loop.
func AttachCmd(ctx context.Context, host widget.Widget, generation int) tea.Cmd {
	return func() tea.Msg {
		// Superseded by a reload before the command got to run.
		if err := ctx.Err(); err != nil {
			return AttachResultMsg{Generation: generation, Err: err}
		}
		err := host.OnAttach(ctx)
		return AttachResultMsg{Generation: generation, Err: err}
	}
}

// ListenForWidgetEventsCmd waits for the next widget notification.
func ListenForWidgetEventsCmd(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return WidgetEventMsg{Event: e}
	}
}

// ListenForLogEntriesCmd waits for the next log entry from the TUI log
// channel.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// CopyToClipboardCmd writes text with write.
func CopyToClipboardCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{Text: text, Err: write(text)}
	}
}
