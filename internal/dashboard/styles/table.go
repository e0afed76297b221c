package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TableColumn describes one table column. A zero Width means flexible: the
// column takes the space left over by fixed columns.
type TableColumn struct {
	Title string
	Width int
}

// Table is a plain cell grid with a header row and an optional cursor.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Cursor  int
	// Highlight marks rows that should render emphasized (e.g. checked).
	Highlight func(row int) bool
}

// Render draws the table into width cells. Cells may carry ANSI styling.
func (t Table) Render(theme Theme, width int) string {
	widths := t.resolveWidths(width)
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Chrome.Breadcrumb))
	divider := DividerStyle(theme)

	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, header.Render(t.joinRow(titles(t.Columns), widths)))

	ruleWidth := 0
	for _, w := range widths {
		ruleWidth += w
	}
	ruleWidth += LayoutGap * maxInt(0, len(widths)-1)
	lines = append(lines, divider.Render(strings.Repeat("─", maxInt(0, minWidth(ruleWidth, width)))))

	cursor := theme.Selected()
	checked := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chrome.Checked))
	for i, row := range t.Rows {
		line := t.joinRow(row, widths)
		switch {
		case i == t.Cursor:
			line = cursor.Render("▸ " + line)
		case t.Highlight != nil && t.Highlight(i):
			line = checked.Render("  " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (t Table) joinRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = PadRight(Truncate(cell, w), w)
	}
	return strings.Join(parts, strings.Repeat(" ", LayoutGap))
}

func (t Table) resolveWidths(total int) []int {
	widths := make([]int, len(t.Columns))
	fixed := 0
	flex := 0
	for i, col := range t.Columns {
		if col.Width > 0 {
			widths[i] = maxInt(col.Width, runewidth.StringWidth(col.Title))
			fixed += widths[i]
			continue
		}
		flex++
	}
	// 2 cells for the cursor marker.
	avail := total - 2 - fixed - LayoutGap*maxInt(0, len(widths)-1)
	if flex > 0 {
		each := maxInt(8, avail/flex)
		for i, col := range t.Columns {
			if col.Width == 0 {
				widths[i] = each
			}
		}
	}
	return widths
}

func titles(cols []TableColumn) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Title
	}
	return out
}

func minWidth(a, b int) int {
	if a < b {
		return a
	}
	return b
}
