package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"perkgrid/internal/tui/design"
	"perkgrid/internal/tui/model"
	"perkgrid/internal/tui/view"
)

// handleWindowSizeMsg updates the model with the new terminal dimensions and
// reports the width to the grid. It also transitions from ModeInitializing
// to ModeMain once we know the size.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height

	if m.CurrentAppMode == model.ModeInitializing {
		m.CurrentAppMode = model.ModeMain
	}

	m.LogViewport.Width = max(0, msg.Width-design.OverlayStyle.GetHorizontalFrameSize())
	m.LogViewport.Height = max(0, msg.Height-design.OverlayStyle.GetVerticalFrameSize()-1)
	m.ActivityLogDirty = true

	// The responsive controller debounces this through the loop.
	m.Size.SetWidth(m.GridWidthPx(view.AppFrame))
	return m, nil
}
