package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"perkgrid/internal/tui/design"
	"perkgrid/internal/tui/model"
)

// AppFrame is the horizontal space the application frame takes from the
// terminal width.
const AppFrame = 2

var appStyle = lipgloss.NewStyle().Padding(0, 1)

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return design.TextSecondaryStyle.Render(m.QuittingMessage)
	case model.ModeInitializing:
		return design.TextSecondaryStyle.Render("Initializing... (waiting for window size)")
	case model.ModeHelpOverlay:
		return renderHelpOverlay(m)
	case model.ModeLogOverlay:
		return renderLogOverlay(m, m.Width, m.Height)
	}

	contentWidth := max(0, m.Width-AppFrame)

	sections := []string{
		renderHeader(m, contentWidth),
		RenderMount(m.Mount, contentWidth, m.Spinner.View()),
	}
	if m.AttachErr != nil {
		sections = append(sections, design.TextErrorStyle.Render(m.AttachErr.Error()))
	}
	if pane := renderLogPane(m, contentWidth); pane != "" {
		sections = append(sections, "", pane)
	}
	sections = append(sections, renderStatusBar(m, contentWidth))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderHeader(m *model.Model, width int) string {
	title := fmt.Sprintf("perk grid · %s", m.Attributes.EventID)
	state := string(m.State)
	if state == "" {
		state = "idle"
	}
	display := string(m.Attributes.Display)
	if r := m.Host.Rendered(); r != nil {
		if r.DisplayedAsGrid() {
			display += " (grid)"
		} else {
			display += " (list)"
		}
	}
	right := design.GetStateStyle(state).Render(state) + design.DimStyle.Render("  "+display)

	gap := width - lipgloss.Width(title) - lipgloss.Width(right) - design.HeaderStyle.GetHorizontalFrameSize()
	if gap < 1 {
		gap = 1
	}
	return design.HeaderStyle.Render(title + strings.Repeat(" ", gap) + right)
}

func renderStatusBar(m *model.Model, width int) string {
	style := design.StatusBarStyle
	text := m.Help.ShortHelpView(m.Keys.ShortHelp())
	if m.StatusBarMessage != "" {
		text = m.StatusBarMessage
		switch m.StatusBarMessageType {
		case model.StatusBarSuccess:
			style = design.StatusBarSuccessStyle
		case model.StatusBarError:
			style = design.StatusBarErrorStyle
		default:
			style = design.StatusBarInfoStyle
		}
	}
	inner := max(0, width-style.GetHorizontalFrameSize())
	return style.Width(width).Render(strings.Join(truncateLines([]string{text}, inner), ""))
}

func renderHelpOverlay(m *model.Model) string {
	h := m.Help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		design.TitleStyle.Render("Keyboard shortcuts"),
		h.View(m.Keys),
	)
	return design.CenterHorizontal(m.Width, design.OverlayStyle.Render(content))
}
