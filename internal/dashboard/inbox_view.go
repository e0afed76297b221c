package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/carewatch/internal/dashboard/styles"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

const nameColumnWidth = 18

// inboxView is the list -> detail -> profile flow.
type inboxView struct {
	role           monitor.Role
	showTimestamps bool
	onOpen         func(models.Conversation)

	state   *monitor.InboxState
	panel   *filterPanel
	avatars *styles.AvatarColorMapper

	items   []models.Conversation
	visible []models.Conversation
	cursor  int
	offset  int
	scroll  int
}

func newInboxView(role monitor.Role, showTimestamps bool, onOpen func(models.Conversation)) *inboxView {
	state := monitor.NewInboxState()
	return &inboxView{
		role:           role,
		showTimestamps: showTimestamps,
		onOpen:         onOpen,
		state:          state,
		panel:          newFilterPanel(&state.Criteria, role, "patient name"),
		avatars:        styles.NewAvatarColorMapper(nil),
	}
}

func (v *inboxView) Init() tea.Cmd {
	return nil
}

func (v *inboxView) SetConversations(items []models.Conversation) {
	v.items = items
	v.panel.SetConversations(items)
	v.refresh()
}

func (v *inboxView) Capturing() bool {
	return v.panel.Focused()
}

func (v *inboxView) Mode() monitor.ViewMode {
	return v.state.Nav.Mode()
}

// Consume applies an externally supplied target once.
func (v *inboxView) Consume(target monitor.Target) bool {
	if !v.state.Nav.Consume(target) {
		return false
	}
	v.panel.Blur()
	v.opened(v.state.Nav.Selected())
	return true
}

// Open applies a target even when the same id was consumed before.
func (v *inboxView) Open(target monitor.Target) bool {
	v.state.Nav.Forget()
	return v.Consume(target)
}

func (v *inboxView) refresh() {
	v.visible = v.state.Visible(v.items)
	if v.cursor >= len(v.visible) {
		v.cursor = maxInt(0, len(v.visible)-1)
	}
}

func (v *inboxView) opened(id string) {
	v.scroll = 0
	for i := range v.visible {
		if v.visible[i].ID == id {
			v.cursor = i
			break
		}
	}
	if conv, ok := dataset.Find(v.items, id); ok && v.onOpen != nil {
		v.onOpen(conv)
	}
}

func (v *inboxView) Update(msg tea.Msg) tea.Cmd {
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

	switch v.state.Nav.Mode() {
	case monitor.ModeDetail:
		return v.updateDetail(key)
	case monitor.ModeProfile:
		return v.updateProfile(key)
	default:
		return v.updateList(key)
	}
}

func (v *inboxView) updateList(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "j", "down":
		v.cursor = minInt(v.cursor+1, maxInt(0, len(v.visible)-1))
	case "k", "up":
		v.cursor = maxInt(0, v.cursor-1)
	case "g", "home":
		v.cursor = 0
	case "G", "end":
		v.cursor = maxInt(0, len(v.visible)-1)
	case "enter":
		if v.cursor < len(v.visible) {
			id := v.visible[v.cursor].ID
			if err := v.state.Nav.Select(id); err == nil {
				v.opened(id)
			}
		}
	case "/":
		return v.panel.FocusSearch()
	case "f":
		v.panel.FocusFacets()
	case "ctrl+x", "x":
		v.panel.Reset()
		v.refresh()
	}
	return nil
}

func (v *inboxView) updateDetail(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc", "backspace", "left", "h":
		_ = v.state.Nav.Back()
	case "p":
		_ = v.state.Nav.ViewProfile()
	case "j", "down":
		v.scroll++
	case "k", "up":
		v.scroll = maxInt(0, v.scroll-1)
	case "g", "home":
		v.scroll = 0
	}
	return nil
}

func (v *inboxView) updateProfile(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc", "backspace", "left", "h":
		_ = v.state.Nav.Back()
	}
	return nil
}

func (v *inboxView) View(width, height int, theme styles.Theme) string {
	switch v.state.Nav.Mode() {
	case monitor.ModeDetail:
		return v.renderDetail(width, height, theme)
	case monitor.ModeProfile:
		return v.renderProfile(width, height, theme)
	default:
		return v.renderList(width, height, theme)
	}
}

func (v *inboxView) renderList(width, height int, theme styles.Theme) string {
	panel := v.panel.View(width, theme)
	summary := fmt.Sprintf("Conversations %d of %d", len(v.visible), len(v.items))
	attention := monitor.CountNeedsAttention(v.items)
	summary = theme.Title().Render(summary) + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Status.NeedsAttention)).
			Render(fmt.Sprintf("%d need attention", attention))

	lines := []string{panel, summary, ""}
	rows := maxInt(1, height-lipgloss.Height(panel)-2)
	if len(v.visible) == 0 {
		lines = append(lines, theme.Muted().Render("No conversations match the current filters."))
		return strings.Join(lines, "\n")
	}

	v.offset = scrollOffset(v.cursor, v.offset, rows)
	end := minInt(len(v.visible), v.offset+rows)
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderListRow(v.visible[i], i == v.cursor, width, theme))
	}
	return strings.Join(lines, "\n")
}

func (v *inboxView) renderListRow(conv models.Conversation, selected bool, width int, theme styles.Theme) string {
	marker := "  "
	name := styles.PadRight(styles.Truncate(conv.PatientName, nameColumnWidth), nameColumnWidth)
	if selected {
		marker = theme.Selected().Render("▸ ")
		name = theme.Selected().Render(name)
	}

	parts := []string{
		marker + v.avatars.Render(conv.PatientName),
		name,
		styles.PadRight(styles.StatusBadge(theme, conv.Status), 17),
		styles.PadRight(styles.SentimentBadge(theme, conv.Sentiment), 9),
	}
	if v.role == monitor.RoleAdmin {
		parts = append(parts, styles.PadRight(styles.Truncate(conv.ClinicName(), 16), 16))
	}
	parts = append(parts, theme.Muted().Render(styles.PadRight(formatTimestamp(conv.Timestamp), 12)))

	used := lipgloss.Width(strings.Join(parts, " ")) + 1
	parts = append(parts, styles.Truncate(conv.LastMessage, maxInt(0, width-used)))
	return strings.Join(parts, " ")
}

func (v *inboxView) selectedConversation() (models.Conversation, bool) {
	return dataset.Find(v.items, v.state.Nav.Selected())
}

func (v *inboxView) renderDetail(width, height int, theme styles.Theme) string {
	conv, ok := v.selectedConversation()
	if !ok {
		return theme.Muted().Render(fmt.Sprintf("Conversation %q not found. Press esc to go back.", v.state.Nav.Selected()))
	}

	mainWidth, sideWidth := styles.SplitWidths(width)
	head := []string{
		v.avatars.Render(conv.PatientName) + " " + theme.Title().Render(conv.PatientName) + "  " +
			styles.StatusBadge(theme, conv.Status) + "  " + styles.SentimentBadge(theme, conv.Sentiment),
		theme.Muted().Render(fmt.Sprintf("with %s · %d messages · last activity %s", assistantName(conv), conv.MessageCount(), formatTimestamp(conv.Timestamp))),
		styles.DividerStyle(theme).Render(strings.Repeat("─", maxInt(0, mainWidth))),
	}

	msgStyles := styles.NewMessageStyles(theme)
	thread := make([]string, 0, len(conv.Messages)*3)
	for _, msg := range conv.Messages {
		speaker := assistantName(conv)
		if msg.Sender == models.SenderUser {
			speaker = conv.PatientName
		}
		thread = append(thread, strings.Split(msgStyles.RenderMessage(msg, speaker, mainWidth, v.showTimestamps), "\n")...)
		thread = append(thread, "")
	}
	if len(conv.Messages) == 0 {
		thread = append(thread, theme.Muted().Render("No messages yet."))
	}

	side := v.renderContext(conv, maxInt(0, sideWidth-4), theme)
	bodyHeight := maxInt(1, height-len(head))
	if sideWidth == 0 {
		bodyHeight = maxInt(1, bodyHeight-lipgloss.Height(side)-1)
	}
	v.scroll = minInt(v.scroll, maxInt(0, len(thread)-bodyHeight))
	window := thread[v.scroll:minInt(len(thread), v.scroll+bodyHeight)]

	mainPane := strings.Join(append(head, window...), "\n")
	if sideWidth == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, mainPane, "", side)
	}
	sidePane := styles.PanelStyle(theme, false).Width(sideWidth - 2).Render(side)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth).Render(mainPane),
		strings.Repeat(" ", styles.LayoutGap),
		sidePane,
	)
}

func (v *inboxView) renderContext(conv models.Conversation, width int, theme styles.Theme) string {
	msgStyles := styles.NewMessageStyles(theme)
	section := func(title, body string) []string {
		if strings.TrimSpace(body) == "" {
			body = theme.Muted().Render("none")
		} else {
			body = msgStyles.RenderBody(body, width)
		}
		return []string{theme.Title().Render(title), body, ""}
	}

	lines := make([]string, 0, 24)
	lines = append(lines, section("Context", conv.Context)...)
	lines = append(lines, section("Next appointment", conv.NextAppointment)...)
	if v.role == monitor.RoleAdmin {
		lines = append(lines, section("Clinic", conv.ClinicName())...)
	}
	lines = append(lines, section("Protocol", conv.ProtocolName())...)
	lines = append(lines, section("Companion", conv.CompanionName())...)
	lines = append(lines, theme.Muted().Render("p: patient profile"))
	return strings.Join(lines, "\n")
}

func (v *inboxView) renderProfile(width, height int, theme styles.Theme) string {
	conv, ok := v.selectedConversation()
	if !ok {
		return theme.Muted().Render(fmt.Sprintf("Conversation %q not found. Press esc to go back.", v.state.Nav.Selected()))
	}

	history := dataset.ForPatient(v.items, conv.PatientName)
	summary := monitor.Summarize(history)

	lines := []string{
		v.avatars.Render(conv.PatientName) + " " + theme.Title().Render(conv.PatientName),
		"",
		fmt.Sprintf("Phone      %s", orNone(conv.Phone)),
		fmt.Sprintf("Email      %s", orNone(conv.Email)),
		fmt.Sprintf("Next visit %s", orNone(conv.NextAppointment)),
	}
	if v.role == monitor.RoleAdmin {
		lines = append(lines, fmt.Sprintf("Clinic     %s", orNone(conv.ClinicName())))
	}
	lines = append(lines,
		fmt.Sprintf("Protocol   %s", orNone(conv.ProtocolName())),
		fmt.Sprintf("Companion  %s", orNone(conv.CompanionName())),
		"",
		theme.Title().Render(fmt.Sprintf("Conversations (%d)", summary.Total)),
		fmt.Sprintf("%s %d of %d resolved, %d need attention",
			styles.ProgressBar(theme, minInt(24, maxInt(4, width/4)), summary.ResolvedRatio()),
			summary.Resolved, summary.Total, summary.NeedsAttention),
		"Mood       "+moodLine(summary),
		"",
	)
	for _, item := range history {
		marker := "  "
		if item.ID == conv.ID {
			marker = theme.Selected().Render("▸ ")
		}
		line := fmt.Sprintf("%s%s  %s  %s  %s",
			marker,
			theme.Muted().Render(styles.PadRight(formatTimestamp(item.Timestamp), 12)),
			styles.PadRight(styles.StatusBadge(theme, item.Status), 17),
			styles.PadRight(styles.SentimentBadge(theme, item.Sentiment), 9),
			item.LastMessage,
		)
		lines = append(lines, styles.Truncate(line, maxInt(0, width)))
	}

	lines = append(lines, "", theme.Muted().Render("esc: back to conversation"))
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func assistantName(conv models.Conversation) string {
	if name := strings.TrimSpace(conv.CompanionName()); name != "" {
		return name
	}
	if name := strings.TrimSpace(conv.Assistant); name != "" {
		return name
	}
	return "Assistant"
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}
	return ts.Format("Jan 2 15:04")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

// scrollOffset keeps cursor inside a window of rows lines.
func scrollOffset(cursor, offset, rows int) int {
	if rows <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}

func moodLine(summary monitor.Summary) string {
	parts := make([]string, 0, len(models.Sentiments))
	for _, sentiment := range models.Sentiments {
		if n := summary.BySentiment[sentiment]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sentiment))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " · ")
}
