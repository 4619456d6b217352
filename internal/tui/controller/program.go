package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"perkgrid/internal/tui/model"
)

// NewProgram creates the Bubble Tea program hosting one perk grid. The
// model's loop is bound to the program so that the widget's callbacks run
// inside Update. Call model.Loop.Close once Run returns.
func NewProgram(opts model.Options, programOpts ...tea.ProgramOption) (*tea.Program, *model.Model) {
	m := model.InitialModel(opts)

	app := NewAppModel(m)

	if len(programOpts) == 0 {
		programOpts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(app, programOpts...)
	m.Loop.Bind(p.Send)
	return p, m
}
