// Package focus implements roving-tabindex keyboard navigation over a
// rendered grid: exactly one cell is reachable with the tab key and the
// arrow, Home and End keys move it.
package focus

import (
	"fmt"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
)

// KeyName is the name of a navigation key, as in KeyboardEvent.key.
type KeyName string

const (
	ArrowRight KeyName = "ArrowRight"
	ArrowLeft  KeyName = "ArrowLeft"
	ArrowDown  KeyName = "ArrowDown"
	ArrowUp    KeyName = "ArrowUp"
	Home       KeyName = "Home"
	End        KeyName = "End"
)

// Key is a key press.
type Key struct {
	Name KeyName
	Ctrl bool
}

// Position is a (row, column) cursor in the cell matrix. Row 0 is the
// header row.
type Position struct {
	Row    int
	Column int
}

// Manager tracks the focused cell of one grid.
type Manager struct {
	grid *dom.Element
	// cells[row][column]; a nil entry is a slot that cannot take focus
	// (the collapsed title cell).
	cells   [][]*dom.Element
	initial Position
	current Position
}

// New scans grid and makes its first focusable header cell the tab stop.
func New(grid *dom.Element) *Manager {
	m := &Manager{grid: grid}
	m.Reset()
	return m
}

// Reset rescans the matrix from the live tree and returns the cursor to
// its initial position. Call it whenever the grid changes shape.
func (m *Manager) Reset() {
	m.cells = scan(m.grid)
	m.initial = m.firstFocusable()
	m.current = m.initial
	if cell := m.cellAt(m.current); cell != nil {
		cell.SetTabIndex(0)
	}
}

func scan(grid *dom.Element) [][]*dom.Element {
	var cells [][]*dom.Element
	for rowIndex, row := range grid.QueryAll("div", cssclass.Row) {
		rowCells := row.QueryAll("div", cssclass.Cell)
		for _, cell := range rowCells {
			cell.SetTabIndex(-1)
		}
		// A collapsed title keeps its slot so that columns stay aligned
		// with the rows below.
		if rowIndex == 0 && len(rowCells) > 0 && !rowCells[0].Visible() {
			rowCells[0] = nil
		}
		cells = append(cells, rowCells)
	}
	return cells
}

func (m *Manager) firstFocusable() Position {
	for r, row := range m.cells {
		for c, cell := range row {
			if cell != nil {
				return Position{Row: r, Column: c}
			}
		}
	}
	return Position{}
}

// Position returns the cursor.
func (m *Manager) Position() Position { return m.current }

// Current returns the cell under the cursor, or nil for a grid without
// focusable cells.
func (m *Manager) Current() *dom.Element { return m.cellAt(m.current) }

// Cells returns the number of rows in the matrix and the length of the
// longest row.
func (m *Manager) Cells() (rows, columns int) {
	return len(m.cells), m.lastColumn() + 1
}

func (m *Manager) cellAt(p Position) *dom.Element {
	if p.Row < 0 || p.Row >= len(m.cells) {
		return nil
	}
	row := m.cells[p.Row]
	if p.Column < 0 || p.Column >= len(row) {
		return nil
	}
	return row[p.Column]
}

func (m *Manager) lastRow() int { return len(m.cells) - 1 }

func (m *Manager) lastColumn() int {
	last := -1
	for _, row := range m.cells {
		last = max(last, len(row)-1)
	}
	return last
}

func (m *Manager) displayedAsGrid() bool {
	return m.grid.HasClass(cssclass.DisplayAsGrid)
}

// HandleKey moves the cursor for a navigation key and reports whether the
// key was handled. Other keys are left alone.
func (m *Manager) HandleKey(k Key) bool {
	asGrid := m.displayedAsGrid()
	p := m.current

	switch k.Name {
	case ArrowRight:
		p.Column++
	case ArrowLeft:
		p.Column--
	case ArrowDown:
		if asGrid {
			p.Row++
		} else {
			p.Column++
		}
	case ArrowUp:
		if asGrid {
			p.Row--
		} else {
			p.Column--
		}
	case Home:
		p.Column = 0
		if asGrid && k.Ctrl {
			p.Row = 0
		}
	case End:
		p.Column = m.lastColumn()
		if asGrid && k.Ctrl {
			p.Row = m.lastRow()
		}
	default:
		return false
	}

	m.moveTo(p)
	return true
}

// Click moves the cursor to the cell enclosing target. It reports false
// when target is outside any cell of the grid or inside a hidden cell. A
// visible cell of the grid missing from the matrix means the matrix is out
// of date and panics.
func (m *Manager) Click(target *dom.Element) bool {
	if target == nil || !m.grid.Contains(target) {
		return false
	}
	cell := target.Closest("div", cssclass.Cell)
	if cell == nil || !m.grid.Contains(cell) || !cell.Visible() {
		return false
	}
	m.moveTo(m.positionOf(cell))
	return true
}

func (m *Manager) positionOf(cell *dom.Element) Position {
	for r, row := range m.cells {
		for c, candidate := range row {
			if candidate == cell {
				return Position{Row: r, Column: c}
			}
		}
	}
	panic(fmt.Sprintf("focus: position not found for cell %q", cell.ClassName()))
}

// moveTo clamps p, demotes the previous cell and focuses the new one.
func (m *Manager) moveTo(p Position) {
	if len(m.cells) == 0 {
		return
	}
	p.Row = clamp(p.Row, 0, m.lastRow())
	p.Column = clamp(p.Column, 0, len(m.cells[p.Row])-1)
	p = m.snap(p)
	if m.cellAt(p) == nil {
		return
	}

	if prev := m.cellAt(m.current); prev != nil {
		prev.SetTabIndex(-1)
	}
	m.current = p
	cell := m.cellAt(p)
	cell.Focus()
	cell.SetTabIndex(0)
}

// snap moves a position that landed on an unfocusable slot to the nearest
// focusable cell in the same row, preferring the right.
func (m *Manager) snap(p Position) Position {
	row := m.cells[p.Row]
	if p.Column >= 0 && p.Column < len(row) && row[p.Column] != nil {
		return p
	}
	for d := 1; d < len(row); d++ {
		if c := p.Column + d; c < len(row) && row[c] != nil {
			return Position{Row: p.Row, Column: c}
		}
		if c := p.Column - d; c >= 0 && row[c] != nil {
			return Position{Row: p.Row, Column: c}
		}
	}
	return m.current
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
