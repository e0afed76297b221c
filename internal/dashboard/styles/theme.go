// Package styles holds the carewatch dashboard palettes and rendering
// primitives.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
}

// StatusColors defines colors for conversation triage state.
type StatusColors struct {
	NeedsAttention string
	Active         string
	Resolved       string
}

// SentimentColors defines colors for detected patient mood.
type SentimentColors struct {
	Happy   string
	Sad     string
	Angry   string
	Neutral string
	Anxious string
}

// MessageColors defines colors for thread participants.
type MessageColors struct {
	Bot  string
	User string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header       string
	Footer       string
	Breadcrumb   string
	SelectedItem string
	Checked      string
}

// BorderColors defines border colors for pane state.
type BorderColors struct {
	ActivePane   string
	InactivePane string
	Divider      string
}

// Theme defines the dashboard style tokens.
type Theme struct {
	Name          string
	BorderStyle   string   // "rounded", "sharp", "double", "hidden"
	AvatarPalette []string // optional override for patient avatar colors (ANSI-256 codes)

	Base      BaseColors
	Status    StatusColors
	Sentiment SentimentColors
	Message   MessageColors
	Chrome    ChromeColors
	Borders   BorderColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeFor resolves a palette by name, falling back to DefaultTheme.
func ThemeFor(name string) Theme {
	if theme, ok := Themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return theme
	}
	return DefaultTheme
}

// Muted renders secondary text.
func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

// Accent renders highlighted text.
func (t Theme) Accent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent))
}

// Title renders section headings.
func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Chrome.Breadcrumb))
}

// Selected renders the cursor row.
func (t Theme) Selected() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Chrome.SelectedItem))
}
