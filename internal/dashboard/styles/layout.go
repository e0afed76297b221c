package styles

import "github.com/charmbracelet/lipgloss"

const (
	// LayoutGap is the default space between columns.
	LayoutGap = 2

	// LayoutInnerPadding is the default panel content padding.
	LayoutInnerPadding = 1
)

const (
	minSideWidth  = 26
	maxSideWidth  = 42
	minMainWidth  = 40
	splitMinWidth = minSideWidth + minMainWidth + LayoutGap
)

// SplitWidths returns the widths of the main pane and the context side
// pane. Narrow terminals get no side pane.
func SplitWidths(totalWidth int) (main int, side int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	if totalWidth < splitMinWidth {
		return totalWidth, 0
	}
	side = clampInt(totalWidth/3, minSideWidth, maxSideWidth)
	main = totalWidth - side - LayoutGap
	if main < minMainWidth {
		side -= minMainWidth - main
		main = minMainWidth
	}
	return main, side
}

// PanelStyle returns a focused/unfocused border style for panes.
func PanelStyle(theme Theme, focused bool) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(panelBorderStyle(theme)).
		BorderForeground(lipgloss.Color(panelBorderColor(theme, focused))).
		Padding(0, LayoutInnerPadding)
}

// DividerStyle returns the divider style between sections.
func DividerStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Borders.Divider))
}

func panelBorderColor(theme Theme, focused bool) string {
	if focused {
		return theme.Borders.ActivePane
	}
	return theme.Borders.InactivePane
}

func panelBorderStyle(theme Theme) lipgloss.Border {
	switch theme.BorderStyle {
	case "double":
		return lipgloss.DoubleBorder()
	case "sharp":
		return lipgloss.NormalBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
