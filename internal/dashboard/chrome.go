package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/carewatch/internal/dashboard/styles"
	"github.com/tOgg1/carewatch/internal/monitor"
)

func (m *Model) renderHeader() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Background(lipgloss.Color(m.theme.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	left := "carewatch"
	center := fmt.Sprintf("%s · role: %s", m.breadcrumb(), m.role)
	right := ""
	if !m.loading && m.loadErr == nil {
		right = fmt.Sprintf("%d conversations · %d need attention", len(m.items), monitor.CountNeedsAttention(m.items))
	}
	line := joinHeader(left, center, right, maxInt(0, m.width-2))
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Background(lipgloss.Color(m.theme.Chrome.Footer)).
		Padding(0, 1)

	return style.Width(maxInt(0, m.width)).Render(styles.Truncate(m.footerHints(), maxInt(0, m.width-2)))
}

func (m *Model) breadcrumb() string {
	if m.activeViewID() == ViewTable {
		return "Table"
	}
	switch m.inbox.Mode() {
	case monitor.ModeDetail:
		return "Inbox › Conversation"
	case monitor.ModeProfile:
		return "Inbox › Conversation › Profile"
	default:
		return "Inbox"
	}
}

func (m *Model) footerHints() string {
	if m.activeView().Capturing() {
		return "type to search · tab next field · ←/→ change option · ctrl+x clear · enter/esc done"
	}
	if m.activeViewID() == ViewTable {
		return "j/k move · space check · a check all · s sort · enter open · / search · f filters · esc inbox · ? help · q quit"
	}
	switch m.inbox.Mode() {
	case monitor.ModeDetail:
		return "j/k scroll · p profile · esc back · tab table · ? help · q quit"
	case monitor.ModeProfile:
		return "esc back · tab table · ? help · q quit"
	default:
		return "j/k move · enter open · / search · f filters · x clear · tab table · ? help · q quit"
	}
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return left
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		line := left
		if right != "" {
			line = left + "  " + right
		}
		return styles.Truncate(line, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return styles.Truncate(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}
