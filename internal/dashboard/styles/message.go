package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tOgg1/carewatch/internal/models"
)

const userIndent = 4

// MessageStyles contains pre-built styles for thread rendering.
type MessageStyles struct {
	Theme Theme

	Bot       lipgloss.Style
	User      lipgloss.Style
	Timestamp lipgloss.Style
	Body      lipgloss.Style
}

// NewMessageStyles builds a reusable style set for messages.
func NewMessageStyles(theme Theme) MessageStyles {
	return MessageStyles{
		Theme:     theme,
		Bot:       lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Message.Bot)).Bold(true),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Message.User)).Bold(true),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Muted)),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Foreground)),
	}
}

// RenderHeader renders the speaker line. name is the assistant for bot
// turns and the patient for user turns.
func (s MessageStyles) RenderHeader(sender models.Sender, name string, ts time.Time, showTimestamp bool) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(sender)
	}
	style := s.Bot
	if sender == models.SenderUser {
		style = s.User
	}
	line := style.Render(name)
	if showTimestamp && !ts.IsZero() {
		line += " " + s.Timestamp.Render(ts.Format("Jan 2 15:04"))
	}
	return line
}

// RenderMessage renders one thread turn. Patient turns are indented so the
// two sides read apart.
func (s MessageStyles) RenderMessage(msg models.Message, name string, width int, showTimestamp bool) string {
	indent := 0
	if msg.Sender == models.SenderUser {
		indent = userIndent
	}
	bodyWidth := maxInt(1, width-indent)

	lines := []string{s.RenderHeader(msg.Sender, name, msg.Timestamp, showTimestamp)}
	lines = append(lines, strings.Split(s.Body.Render(wrapMessageBody(msg.Content, bodyWidth)), "\n")...)
	if indent == 0 {
		return strings.Join(lines, "\n")
	}
	pad := strings.Repeat(" ", indent)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

// RenderBody renders wrapped body text.
func (s MessageStyles) RenderBody(body string, width int) string {
	return s.Body.Render(wrapMessageBody(body, width))
}

func wrapMessageBody(body string, width int) string {
	if width <= 0 {
		return body
	}

	parts := strings.Split(body, "\n")
	for i := range parts {
		parts[i] = wordwrap.String(parts[i], width)
	}
	return strings.Join(parts, "\n")
}
