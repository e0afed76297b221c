package styles

import (
	"hash/fnv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// AvatarColorPalette is an ANSI 256 palette for stable patient avatar colors.
// Red/green slots are left out since status badges use them.
var AvatarColorPalette = []string{
	"33", "39", "45", "69", "75", "81", "87", "99",
	"111", "117", "123", "147", "153", "159", "183", "189",
}

// AvatarColorMapper resolves deterministic per-patient avatar styles and
// caches them.
type AvatarColorMapper struct {
	palette []string

	mu    sync.RWMutex
	cache map[string]lipgloss.Style
}

// NewAvatarColorMapper returns a mapper over palette, or the default palette
// when palette is empty.
func NewAvatarColorMapper(palette []string) *AvatarColorMapper {
	if len(palette) == 0 {
		palette = AvatarColorPalette
	}
	return &AvatarColorMapper{
		palette: append([]string(nil), palette...),
		cache:   make(map[string]lipgloss.Style, 32),
	}
}

// ColorCode returns the palette entry for a name.
func (m *AvatarColorMapper) ColorCode(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalizeName(name)))
	return m.palette[int(h.Sum32()%uint32(len(m.palette)))]
}

// Style returns the cached avatar style for a name.
func (m *AvatarColorMapper) Style(name string) lipgloss.Style {
	key := normalizeName(name)

	m.mu.RLock()
	style, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return style
	}

	style = lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color(m.ColorCode(key))).
		Bold(true).
		Padding(0, 1)

	m.mu.Lock()
	m.cache[key] = style
	m.mu.Unlock()
	return style
}

// Render draws the initials avatar for a name.
func (m *AvatarColorMapper) Render(name string) string {
	return m.Style(name).Render(Initials(name))
}

// Initials returns up to two uppercase initials, "?" for an empty name.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	var b strings.Builder
	for _, field := range []string{fields[0], fields[len(fields)-1]} {
		for _, r := range field {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
		if len(fields) == 1 {
			break
		}
	}
	return b.String()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
