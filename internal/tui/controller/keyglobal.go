package controller

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"perkgrid/internal/focus"
	"perkgrid/internal/tui/design"
	"perkgrid/internal/tui/model"
	"perkgrid/internal/tui/view"
)

// handleKeyMsg processes key presses. Overlays capture everything except
// quit; in the main view navigation keys go to the grid's focus manager.
func handleKeyMsg(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Quit) {
		m.Detach()
		m.CurrentAppMode = model.ModeQuitting
		m.QuittingMessage = "Bye!"
		return m, tea.Quit
	}

	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		if key.Matches(msg, m.Keys.Help, m.Keys.Esc) {
			m.CurrentAppMode = model.ModeMain
		}
		return m, nil
	case model.ModeLogOverlay:
		if key.Matches(msg, m.Keys.ToggleLog, m.Keys.Esc) {
			m.CurrentAppMode = model.ModeMain
			return m, nil
		}
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Help):
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil
	case key.Matches(msg, m.Keys.ToggleLog):
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.Keys.ToggleDark):
		design.Initialize(!lipgloss.HasDarkBackground())
		return m, nil
	case key.Matches(msg, m.Keys.Reload):
		return m, tea.Batch(m.Reload(), m.SetStatusMessage("Reloading "+m.Attributes.EventID, model.StatusBarInfo, statusMessageTTL))
	case key.Matches(msg, m.Keys.CycleDisplay):
		cmd := m.CycleDisplay()
		return m, tea.Batch(cmd, m.SetStatusMessage("Display: "+string(m.Attributes.Display), model.StatusBarInfo, statusMessageTTL))
	case key.Matches(msg, m.Keys.Copy):
		fm := m.Focus()
		if fm == nil || fm.Current() == nil {
			return m, m.SetStatusMessage("Nothing to copy", model.StatusBarInfo, statusMessageTTL)
		}
		return m, model.CopyToClipboardCmd(m.Clipboard, view.CellText(fm.Current()))
	}

	if k, ok := focusKey(m.Keys, msg); ok {
		if fm := m.Focus(); fm != nil {
			fm.HandleKey(k)
		}
	}
	return m, nil
}

// focusKey maps a key press onto the grid's navigation keys.
func focusKey(keys model.KeyMap, msg tea.KeyMsg) (focus.Key, bool) {
	switch {
	case key.Matches(msg, keys.FirstRow):
		return focus.Key{Name: focus.Home, Ctrl: true}, true
	case key.Matches(msg, keys.LastRow):
		return focus.Key{Name: focus.End, Ctrl: true}, true
	case key.Matches(msg, keys.Up):
		return focus.Key{Name: focus.ArrowUp}, true
	case key.Matches(msg, keys.Down):
		return focus.Key{Name: focus.ArrowDown}, true
	case key.Matches(msg, keys.Left):
		return focus.Key{Name: focus.ArrowLeft}, true
	case key.Matches(msg, keys.Right):
		return focus.Key{Name: focus.ArrowRight}, true
	case key.Matches(msg, keys.Home):
		return focus.Key{Name: focus.Home}, true
	case key.Matches(msg, keys.End):
		return focus.Key{Name: focus.End}, true
	default:
		return focus.Key{}, false
	}
}
