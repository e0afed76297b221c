package styles

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/tOgg1/carewatch/internal/models"
)

// StatusColor returns the palette color for a status.
func StatusColor(theme Theme, status models.Status) string {
	switch status {
	case models.StatusNeedsAttention:
		return theme.Status.NeedsAttention
	case models.StatusResolved:
		return theme.Status.Resolved
	default:
		return theme.Status.Active
	}
}

// SentimentColor returns the palette color for a sentiment.
func SentimentColor(theme Theme, sentiment models.Sentiment) string {
	switch sentiment {
	case models.SentimentHappy:
		return theme.Sentiment.Happy
	case models.SentimentSad:
		return theme.Sentiment.Sad
	case models.SentimentAngry:
		return theme.Sentiment.Angry
	case models.SentimentAnxious:
		return theme.Sentiment.Anxious
	default:
		return theme.Sentiment.Neutral
	}
}

// StatusBadge renders a bracketed status pill.
func StatusBadge(theme Theme, status models.Status) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(theme, status)))
	if status == models.StatusNeedsAttention {
		style = style.Bold(true)
	}
	return style.Render("[" + StatusLabel(status) + "]")
}

// StatusLabel is the display text of a status.
func StatusLabel(status models.Status) string {
	switch status {
	case models.StatusNeedsAttention:
		return "Needs Attention"
	case models.StatusActive:
		return "Active"
	case models.StatusResolved:
		return "Resolved"
	default:
		return string(status)
	}
}

// SentimentBadge renders a dot plus the sentiment name.
func SentimentBadge(theme Theme, sentiment models.Sentiment) string {
	label := string(sentiment)
	if label == "" {
		label = "unknown"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(SentimentColor(theme, sentiment))).Render("● " + label)
}

// ProgressBar renders a static bar of width cells filled to ratio.
func ProgressBar(theme Theme, width int, ratio float64) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	bar := progress.New(
		progress.WithSolidFill(theme.Status.Resolved),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = theme.Borders.InactivePane
	return bar.ViewAs(ratio)
}

// Truncate shortens s to width terminal cells, marking the cut with "…".
// Styled input is safe: escape sequences are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
