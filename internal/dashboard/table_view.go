package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/carewatch/internal/dashboard/styles"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

// tableView is the sortable, checkable conversation table. Opening a row
// is delegated to the host through TableState.OnView.
type tableView struct {
	role  monitor.Role
	state *monitor.TableState
	panel *filterPanel

	items  []models.Conversation
	rows   []models.Conversation
	cursor int
	offset int
}

func newTableView(role monitor.Role, onView func(id string)) *tableView {
	state := monitor.NewTableState(onView)
	return &tableView{
		role:  role,
		state: state,
		panel: newFilterPanel(&state.Criteria, role, "name, email or message"),
	}
}

func (v *tableView) Init() tea.Cmd {
	return nil
}

func (v *tableView) SetConversations(items []models.Conversation) {
	v.items = items
	v.panel.SetConversations(items)
	v.refresh()
}

func (v *tableView) Capturing() bool {
	return v.panel.Focused()
}

func (v *tableView) refresh() {
	v.rows = v.state.Rows(v.items)
	if v.cursor >= len(v.rows) {
		v.cursor = maxInt(0, len(v.rows)-1)
	}
}

func (v *tableView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if v.panel.Focused() {
		cmd, changed := v.panel.Update(key)
		if changed {
			v.refresh()
		}
		return cmd
	}

	switch key.String() {
	case "j", "down":
		v.cursor = minInt(v.cursor+1, maxInt(0, len(v.rows)-1))
	case "k", "up":
		v.cursor = maxInt(0, v.cursor-1)
	case "g", "home":
		v.cursor = 0
	case "G", "end":
		v.cursor = maxInt(0, len(v.rows)-1)
	case " ", "space":
		if v.cursor < len(v.rows) {
			v.state.Checked.Toggle(v.rows[v.cursor].ID)
		}
	case "a":
		v.state.Checked.ToggleAll(!v.state.Checked.AllSelected(v.items), v.items)
	case "s":
		v.state.CycleSort()
		v.refresh()
	case "enter":
		if v.cursor < len(v.rows) {
			v.state.View(v.rows[v.cursor].ID)
		}
	case "/":
		return v.panel.FocusSearch()
	case "f":
		v.panel.FocusFacets()
	case "ctrl+x", "x":
		v.panel.Reset()
		v.refresh()
	case "esc", "backspace":
		return popViewCmd()
	}
	return nil
}

func (v *tableView) View(width, height int, theme styles.Theme) string {
	panel := v.panel.View(width, theme)

	attention := monitor.CountNeedsAttention(v.rows)
	summary := theme.Title().Render(fmt.Sprintf("Rows %d of %d", len(v.rows), len(v.items))) + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Status.NeedsAttention)).
			Render(fmt.Sprintf("%d need attention", attention)) + "  " +
		theme.Muted().Render(fmt.Sprintf("%d selected · sort %s", v.state.Checked.Len(), v.state.Order))

	lines := []string{panel, summary, ""}
	if len(v.rows) == 0 {
		lines = append(lines, theme.Muted().Render("No conversations match the current filters."))
		return strings.Join(lines, "\n")
	}

	// header + rule
	rows := maxInt(1, height-lipgloss.Height(panel)-4)
	v.offset = scrollOffset(v.cursor, v.offset, rows)
	end := minInt(len(v.rows), v.offset+rows)

	table := styles.Table{
		Columns: v.columns(),
		Cursor:  v.cursor - v.offset,
	}
	for _, conv := range v.rows[v.offset:end] {
		table.Rows = append(table.Rows, v.cells(conv, theme))
	}
	window := v.rows[v.offset:end]
	table.Highlight = func(row int) bool {
		return v.state.Checked.Contains(window[row].ID)
	}

	lines = append(lines, table.Render(theme, width))
	return strings.Join(lines, "\n")
}

func (v *tableView) columns() []styles.TableColumn {
	cols := make([]styles.TableColumn, 0, 9)
	for _, col := range v.role.Columns() {
		switch col {
		case monitor.ColumnSelect:
			cols = append(cols, styles.TableColumn{Title: checkbox(v.state.Checked.AllSelected(v.items)), Width: 3})
		case monitor.ColumnPatient:
			cols = append(cols, styles.TableColumn{Title: "Patient", Width: 16})
		case monitor.ColumnClinic:
			cols = append(cols, styles.TableColumn{Title: "Clinic", Width: 14})
		case monitor.ColumnStatus:
			cols = append(cols, styles.TableColumn{Title: "Status", Width: 15})
		case monitor.ColumnSentiment:
			cols = append(cols, styles.TableColumn{Title: "Mood", Width: 9})
		case monitor.ColumnMessage:
			cols = append(cols, styles.TableColumn{Title: "Last message"})
		case monitor.ColumnCompanion:
			cols = append(cols, styles.TableColumn{Title: "Companion", Width: 9})
		case monitor.ColumnCount:
			cols = append(cols, styles.TableColumn{Title: "Msgs", Width: 4})
		case monitor.ColumnTimestamp:
			cols = append(cols, styles.TableColumn{Title: "Last activity " + v.state.Order.Indicator(), Width: 15})
		}
	}
	return cols
}

func (v *tableView) cells(conv models.Conversation, theme styles.Theme) []string {
	cells := make([]string, 0, 9)
	for _, col := range v.role.Columns() {
		switch col {
		case monitor.ColumnSelect:
			cells = append(cells, checkbox(v.state.Checked.Contains(conv.ID)))
		case monitor.ColumnPatient:
			cells = append(cells, conv.PatientName)
		case monitor.ColumnClinic:
			cells = append(cells, orNone(conv.ClinicName()))
		case monitor.ColumnStatus:
			cells = append(cells, lipgloss.NewStyle().Foreground(lipgloss.Color(styles.StatusColor(theme, conv.Status))).Render(styles.StatusLabel(conv.Status)))
		case monitor.ColumnSentiment:
			cells = append(cells, styles.SentimentBadge(theme, conv.Sentiment))
		case monitor.ColumnMessage:
			cells = append(cells, conv.LastMessage)
		case monitor.ColumnCompanion:
			cells = append(cells, orNone(conv.CompanionName()))
		case monitor.ColumnCount:
			cells = append(cells, strconv.Itoa(conv.MessageCount()))
		case monitor.ColumnTimestamp:
			cells = append(cells, formatTimestamp(conv.Timestamp))
		}
	}
	return cells
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
