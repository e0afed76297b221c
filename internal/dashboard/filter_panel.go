package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/carewatch/internal/dashboard/styles"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

// filterPanel edits a view's Criteria: a search box plus one selector per
// facet the role exposes. Row 0 is the search box.
type filterPanel struct {
	criteria *monitor.Criteria
	facets   []monitor.Facet
	options  map[monitor.Facet][]monitor.Option

	search  textinput.Model
	row     int
	focused bool
}

func newFilterPanel(criteria *monitor.Criteria, role monitor.Role, placeholder string) *filterPanel {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	return &filterPanel{
		criteria: criteria,
		facets:   role.Facets(),
		options:  make(map[monitor.Facet][]monitor.Option),
		search:   ti,
	}
}

// SetConversations rebuilds the option lists from the collection.
func (p *filterPanel) SetConversations(items []models.Conversation) {
	for _, facet := range p.facets {
		p.options[facet] = monitor.Options(items, facet)
	}
}

func (p *filterPanel) Focused() bool {
	return p.focused
}

// FocusSearch opens the panel on the search box.
func (p *filterPanel) FocusSearch() tea.Cmd {
	p.focused = true
	p.row = 0
	return p.search.Focus()
}

// FocusFacets opens the panel on the first facet selector.
func (p *filterPanel) FocusFacets() {
	p.focused = true
	p.row = minInt(1, len(p.facets))
	p.search.Blur()
}

func (p *filterPanel) Blur() {
	p.focused = false
	p.search.Blur()
}

// Reset clears the search and every facet.
func (p *filterPanel) Reset() {
	p.criteria.Reset()
	p.search.SetValue("")
}

// Update handles keys while focused. changed reports whether the criteria
// moved.
func (p *filterPanel) Update(msg tea.KeyMsg) (cmd tea.Cmd, changed bool) {
	before := *p.criteria

	switch msg.String() {
	case "esc", "enter":
		p.Blur()
		return nil, false
	case "tab", "down":
		return p.moveRow(1), false
	case "shift+tab", "up":
		return p.moveRow(-1), false
	case "ctrl+x":
		p.Reset()
		return nil, *p.criteria != before
	}

	if p.row == 0 {
		p.search, cmd = p.search.Update(msg)
		p.criteria.Search = p.search.Value()
		return cmd, *p.criteria != before
	}

	facet := p.facets[p.row-1]
	opts := p.options[facet]
	switch msg.String() {
	case "right", "l", " ":
		p.criteria.Set(facet, monitor.NextOption(opts, p.criteria.Value(facet)))
	case "left", "h":
		p.criteria.Set(facet, monitor.PrevOption(opts, p.criteria.Value(facet)))
	case "backspace", "0":
		p.criteria.Set(facet, monitor.All)
	}
	return nil, *p.criteria != before
}

func (p *filterPanel) moveRow(delta int) tea.Cmd {
	rows := len(p.facets) + 1
	p.row = (p.row + delta + rows) % rows
	if p.row == 0 {
		return p.search.Focus()
	}
	p.search.Blur()
	return nil
}

// View renders the panel in one or two lines.
func (p *filterPanel) View(width int, theme styles.Theme) string {
	p.search.Width = maxInt(10, minInt(40, width/3))
	search := p.search.View()
	if !p.focused && strings.TrimSpace(p.criteria.Search) == "" {
		search = theme.Muted().Render("Search: (press / to search)")
	}

	active := theme.Selected()
	parts := make([]string, 0, len(p.facets))
	for i, facet := range p.facets {
		label := monitor.OptionLabel(p.options[facet], p.criteria.Value(facet))
		text := fmt.Sprintf("%s: %s", facet.Label(), label)
		switch {
		case p.focused && p.row == i+1:
			text = active.Render("‹ " + text + " ›")
		case p.criteria.Value(facet) != monitor.All:
			text = theme.Accent().Render(text)
		default:
			text = theme.Muted().Render(text)
		}
		parts = append(parts, text)
	}
	facets := strings.Join(parts, "  ")
	if n := p.criteria.Active(); n > 0 {
		facets += "  " + theme.Accent().Render(fmt.Sprintf("(%d active, ctrl+x clears)", n))
	}

	line := lipgloss.JoinVertical(lipgloss.Left, search, facets)
	return lipgloss.NewStyle().MaxWidth(maxInt(1, width)).Render(line)
}
