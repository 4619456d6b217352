package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
	"perkgrid/internal/tui/design"
)

const ellipsis = "…"

// RenderMount draws whatever the perk grid host currently shows under
// mount: the placeholder, the error message or the grid.
func RenderMount(mount *dom.Element, width int, spinnerView string) string {
	if el := mount.Query("div", cssclass.Loading); el != nil {
		return spinnerView + " " + design.TextSecondaryStyle.Render(el.Text())
	}
	if el := mount.Query("div", cssclass.Error); el != nil {
		return design.TextErrorStyle.Render(el.Text())
	}
	grid := mount.Query("div", cssclass.Grid)
	if grid == nil {
		return ""
	}
	if grid.HasClass(cssclass.DisplayAsGrid) {
		return renderTable(grid, width)
	}
	return renderCards(grid, width)
}

// CellText returns the plain text of a cell, one line per block. It is
// what gets copied to the clipboard.
func CellText(cell *dom.Element) string {
	if cell == nil {
		return ""
	}
	lines := cellLines(cell, true, false)
	if len(lines) == 0 {
		return cell.Label()
	}
	return strings.Join(lines, "\n")
}

// cellLines renders the blocks of a cell. In table mode the perk list and
// price of a package header are left out, as the stylesheet does for grid
// display.
func cellLines(cell *dom.Element, full, styled bool) []string {
	if !cell.Visible() {
		return nil
	}
	if text := dom.Squish(cell.Text()); text != "" {
		return []string{text}
	}

	header := cell.HasClass(cssclass.Columnheader)
	var lines []string
	for _, child := range cell.Children() {
		switch {
		case child.HasClass(cssclass.PackagePerkList):
			if !full && header {
				continue
			}
			for _, item := range child.Children() {
				lines = append(lines, "• "+strings.Join(blockLines(item.Children(), styled), " "))
			}
		case child.HasClass(cssclass.Price) && header && !full:
			continue
		default:
			lines = append(lines, blockLines([]*dom.Element{child}, styled)...)
		}
	}
	return lines
}

func blockLines(blocks []*dom.Element, styled bool) []string {
	var lines []string
	for _, b := range blocks {
		text := dom.Squish(b.TextContent())
		if text == "" {
			continue
		}
		if styled {
			text = styleBlock(b, text)
		}
		lines = append(lines, text)
	}
	return lines
}

func styleBlock(b *dom.Element, text string) string {
	switch {
	case b.HasClass(cssclass.AttributesSoldOut):
		return design.BadgeSoldOutStyle.Render(text)
	case b.HasClass(cssclass.AttributesLimited):
		return design.BadgeLimitedStyle.Render(text)
	case b.HasClass(cssclass.Price):
		return design.PriceStyle.Render(text)
	case b.HasClass(cssclass.PerkValueTruthy):
		return design.ValueIncludedStyle.Render(text)
	case b.HasClass(cssclass.PerkValueFalsy):
		return design.ValueExcludedStyle.Render(text)
	case b.HasClass(cssclass.Caption):
		return design.TitleStyle.UnsetMarginBottom().Render(text)
	default:
		return text
	}
}

// truncateLines cuts every line to width display columns. Styled lines are
// measured with lipgloss so escape sequences do not count.
func truncateLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if lipgloss.Width(l) <= width {
			out[i] = l
			continue
		}
		out[i] = runewidth.Truncate(ansi.Strip(l), width, ellipsis)
	}
	return out
}

func focused(cell *dom.Element) bool {
	i, ok := cell.TabIndex()
	return ok && i == 0
}

func rowCells(grid *dom.Element) [][]*dom.Element {
	var rows [][]*dom.Element
	for _, row := range grid.QueryAll("div", cssclass.Row) {
		rows = append(rows, row.QueryAll("div", cssclass.Cell))
	}
	return rows
}

func renderTable(grid *dom.Element, width int) string {
	rows := rowCells(grid)
	if len(rows) == 0 {
		return ""
	}
	columns := 0
	for _, r := range rows {
		columns = max(columns, len(r))
	}
	// One border column per cell plus the outer edge, and one padding
	// column each side.
	cellWidth := 0
	if columns > 0 && width > 0 {
		cellWidth = (width-columns-1)/columns - 2
	}

	text := make([][]string, len(rows))
	for r, cells := range rows {
		text[r] = make([]string, columns)
		for c, cell := range cells {
			lines := cellLines(cell, false, true)
			if len(lines) == 0 && cell.Visible() && cell.HasClass(cssclass.Rowheader) && cell.Label() != "" {
				lines = []string{cell.Label()}
			}
			text[r][c] = strings.Join(truncateLines(lines, cellWidth), "\n")
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(design.ColorBorder)).
		BorderRow(true).
		Headers(text[0]...).
		Rows(text[1:]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			// table.HeaderRow is -1; data rows start at 0.
			r := row + 1
			if r < len(rows) && col < len(rows[r]) && focused(rows[r][col]) {
				return design.CellFocusedStyle
			}
			if row == table.HeaderRow || col == 0 {
				return design.CellHeaderStyle
			}
			return design.CellStyle
		})
	return t.Render()
}

// renderCards lays the package headers out as cards, as many per line as
// fit in width.
func renderCards(grid *dom.Element, width int) string {
	rows := rowCells(grid)
	if len(rows) == 0 {
		return ""
	}
	header := rows[0]

	var title string
	var packages []*dom.Element
	for _, cell := range header {
		if cell.HasClass(cssclass.Title) {
			title = strings.Join(cellLines(cell, true, true), " ")
			continue
		}
		packages = append(packages, cell)
	}

	cardWidth := min(max(width, design.MinCardWidth), design.MaxCardWidth)
	perLine := max(1, width/cardWidth)
	innerWidth := cardWidth - design.CardStyle.GetHorizontalFrameSize()

	var lines []string
	if title != "" {
		lines = append(lines, title)
	}
	var line []string
	for i, cell := range packages {
		content := cellLines(cell, true, true)
		if len(content) > 0 {
			content[0] = design.PackageNameStyle.Render(content[0])
		}
		style := design.CardStyle
		if focused(cell) {
			style = design.CardFocusedStyle
		}
		line = append(line, style.Width(cardWidth-style.GetHorizontalBorderSize()).Render(strings.Join(truncateLines(content, innerWidth), "\n")))
		if len(line) == perLine || i == len(packages)-1 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
