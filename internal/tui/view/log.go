package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"perkgrid/internal/tui/design"
	"perkgrid/internal/tui/model"
)

// renderLogOverlay draws the full-screen activity log.
func renderLogOverlay(m *model.Model, width, height int) string {
	title := design.LogPanelTitleStyle.Render("Activity Log  (↑/↓ scroll  •  Esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return design.OverlayStyle.
		Width(width - design.OverlayStyle.GetHorizontalFrameSize()).
		Height(height - design.OverlayStyle.GetVerticalFrameSize()).
		Render(content)
}

// renderLogPane shows the last few log lines under the grid.
func renderLogPane(m *model.Model, width int) string {
	if len(m.ActivityLog) == 0 {
		return ""
	}
	start := max(0, len(m.ActivityLog)-design.LogPaneLines)
	lines := truncateLines(m.ActivityLog[start:], width)
	return PrepareLogContent(lines)
}

// PrepareLogContent applies color styles based on log level keywords.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, rawLine := range lines {
		out[i] = styleLogLine(rawLine)
	}
	return strings.Join(out, "\n")
}

// styleLogLine returns the line wrapped in appropriate lipgloss style depending
// on markers contained in the text.
func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}
