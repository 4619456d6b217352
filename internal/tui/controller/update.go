package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"perkgrid/internal/events"
	"perkgrid/internal/tui/model"
	"perkgrid/internal/tui/view"
	"perkgrid/pkg/logging"
)

const (
	controllerSubsystem = "Controller"
	statusMessageTTL    = 3 * time.Second
)

// Update is the main entry point for the TUI's update logic.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	return mainControllerDispatch(m, msg)
}

func mainControllerDispatch(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case model.RunMsg:
		// Callbacks from the widget: DOM updates, debounce timers.
		msg.Run()

	case tea.WindowSizeMsg:
		m, cmd = handleWindowSizeMsg(m, msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		m, cmd = handleKeyMsg(m, msg)
		cmds = append(cmds, cmd)

	case model.WidgetEventMsg:
		m, cmd = handleWidgetEvent(m, msg.Event)
		cmds = append(cmds, cmd, model.ListenForWidgetEventsCmd(m.Events.C()))

	case model.AttachResultMsg:
		m, cmd = handleAttachResult(m, msg)
		cmds = append(cmds, cmd)

	case model.CopyResultMsg:
		if msg.Err != nil {
			logging.Error(controllerSubsystem, msg.Err, "copying cell to clipboard")
			cmds = append(cmds, m.SetStatusMessage("Copy failed: "+msg.Err.Error(), model.StatusBarError, statusMessageTTL))
		} else {
			cmds = append(cmds, m.SetStatusMessage(fmt.Sprintf("Copied %q", msg.Text), model.StatusBarSuccess, statusMessageTTL))
		}

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""

	case model.NewLogEntryMsg:
		m = handleNewLogEntry(m, msg)
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if m.CurrentAppMode == model.ModeLogOverlay {
			m.LogViewport, cmd = m.LogViewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.ActivityLogDirty {
		atBottom := m.LogViewport.AtBottom()
		m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
		if atBottom {
			m.LogViewport.GotoBottom()
		}
		m.ActivityLogDirty = false
	}

	return m, tea.Batch(cmds...)
}

// handleWidgetEvent records lifecycle and resize notifications.
func handleWidgetEvent(m *model.Model, e events.Event) (*model.Model, tea.Cmd) {
	switch e.Type {
	case events.EventTypeGridResize:
		m.LastResize = e.Resize
		if e.Resize != nil && e.Resize.DisplayChanged {
			logging.Info(controllerSubsystem, "%s", e)
		} else {
			logging.Debug(controllerSubsystem, "%s", e)
		}
		return m, nil
	case events.EventTypeError:
		m.State = e.Type
		logging.Debug(controllerSubsystem, "%s", e)
		return m, m.SetStatusMessage("Error: "+e.Err.Error(), model.StatusBarError, statusMessageTTL)
	case events.EventTypeReady:
		// A recovered error still reports ready; keep showing the error.
		if m.State != events.EventTypeError {
			m.State = e.Type
		}
	default:
		m.State = e.Type
	}
	logging.Debug(controllerSubsystem, "%s", e)
	return m, nil
}

func handleAttachResult(m *model.Model, msg model.AttachResultMsg) (*model.Model, tea.Cmd) {
	if msg.Generation != m.Generation {
		return m, nil
	}
	if msg.Err == nil || errors.Is(msg.Err, context.Canceled) {
		m.AttachErr = nil
		return m, nil
	}
	m.AttachErr = msg.Err
	logging.Error(controllerSubsystem, msg.Err, "attaching perk grid %s", m.Attributes.EventID)
	return m, m.SetStatusMessage(msg.Err.Error(), model.StatusBarError, statusMessageTTL)
}

func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) *model.Model {
	entry := msg.Entry

	// Only add to TUI activity log if the level is INFO or above,
	// OR if TUI debug mode is enabled.
	if entry.Level >= logging.LevelInfo || m.DebugMode {
		logLine := fmt.Sprintf("%s [%s] [%s] %s",
			entry.Timestamp.Format("15:04:05.000"),
			entry.Level.String(),
			entry.Subsystem,
			entry.Message)

		if entry.Err != nil {
			logLine = fmt.Sprintf("%s -- Error: %v", logLine, entry.Err)
		}
		model.AddRawLineToActivityLog(m, logLine)
	}
	return m
}
