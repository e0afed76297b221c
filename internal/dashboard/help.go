package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/carewatch/internal/monitor"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

func (m *Model) renderHelpOverlay(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := m.theme

	sections := helpFor(m.activeViewID(), m.inbox.Mode())
	lines := make([]string, 0, 48)
	lines = append(lines, palette.Title().Render("Help"), "")

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Base.Accent))
	for _, sec := range sections {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(sec.title))
		for _, it := range sec.items {
			lines = append(lines, "  "+keyStyle.Render(it.key)+"  "+it.desc)
		}
		lines = append(lines, "")
	}
	lines = append(lines, palette.Muted().Render("Dismiss: ? or Esc"))

	panelWidth := minInt(maxInt(40, width-10), 80)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Base.Border)).
		Padding(1, 2).
		Width(panelWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}

func helpFor(id ViewID, mode monitor.ViewMode) []helpSection {
	global := helpSection{
		title: "Global",
		items: []helpItem{
			{key: "q / Ctrl+C", desc: "quit"},
			{key: "tab", desc: "switch inbox/table"},
			{key: "1 / 2", desc: "inbox / table"},
			{key: "?", desc: "toggle help"},
		},
	}
	filters := helpSection{
		title: "Filters",
		items: []helpItem{
			{key: "/", desc: "search"},
			{key: "f", desc: "edit facet filters"},
			{key: "tab / shift+tab", desc: "next / previous field"},
			{key: "←/→", desc: "change facet value"},
			{key: "x / ctrl+x", desc: "clear all filters"},
		},
	}

	if id == ViewTable {
		return []helpSection{global, {title: "Table", items: []helpItem{
			{key: "j/k", desc: "move selection"},
			{key: "space", desc: "check row"},
			{key: "a", desc: "check / uncheck every conversation"},
			{key: "s", desc: "cycle timestamp sort (none, newest, oldest)"},
			{key: "Enter", desc: "open conversation"},
			{key: "Esc", desc: "back to inbox"},
		}}, filters}
	}

	switch mode {
	case monitor.ModeDetail:
		return []helpSection{global, {title: "Conversation", items: []helpItem{
			{key: "j/k", desc: "scroll thread"},
			{key: "p", desc: "patient profile"},
			{key: "Esc", desc: "back to list"},
		}}}
	case monitor.ModeProfile:
		return []helpSection{global, {title: "Profile", items: []helpItem{
			{key: "Esc", desc: "back to conversation"},
		}}}
	default:
		return []helpSection{global, {title: "Inbox", items: []helpItem{
			{key: "j/k", desc: "move selection"},
			{key: "g/G", desc: "top/bottom"},
			{key: "Enter", desc: "open conversation"},
		}}, filters}
	}
}
