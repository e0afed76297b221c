// Package dashboard is the interactive carewatch terminal UI.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/carewatch/internal/dashboard/styles"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/logging"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

type ViewID string

const (
	ViewInbox ViewID = "inbox"
	ViewTable ViewID = "table"
)

var viewSwitchKeys = map[string]ViewID{
	"1": ViewInbox,
	"2": ViewTable,
}

type Config struct {
	Role                monitor.Role
	Theme               string
	InitialConversation string
	ShowTimestamps      bool
	Provider            dataset.Provider

	// OnOpen is called whenever a conversation enters the detail view.
	OnOpen func(models.Conversation)
}

type Model struct {
	role     monitor.Role
	theme    styles.Theme
	provider dataset.Provider
	log      zerolog.Logger

	items   []models.Conversation
	loading bool
	loadErr error

	// pending is the initial conversation waiting to be opened once the
	// collection is loaded. Cleared by the acknowledgment.
	pending string

	width    int
	height   int
	showHelp bool

	viewStack []ViewID
	views     map[ViewID]viewModel
	inbox     *inboxView
	table     *tableView
}

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme styles.Theme) string
	SetConversations(items []models.Conversation)
	// Capturing is true while a text field owns the keyboard.
	Capturing() bool
}

type conversationsLoadedMsg struct {
	items []models.Conversation
	err   error
}

type pushViewMsg struct {
	id ViewID
}

type popViewMsg struct{}

func pushViewCmd(id ViewID) tea.Cmd {
	return func() tea.Msg {
		return pushViewMsg{id: id}
	}
}

func popViewCmd() tea.Cmd {
	return func() tea.Msg {
		return popViewMsg{}
	}
}

func loadConversationsCmd(provider dataset.Provider) tea.Cmd {
	return func() tea.Msg {
		items, err := provider.Conversations(context.Background())
		return conversationsLoadedMsg{items: items, err: err}
	}
}

func NewModel(cfg Config) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	m := &Model{
		role:      normalized.Role,
		theme:     styles.ThemeFor(normalized.Theme),
		provider:  normalized.Provider,
		log:       logging.WithRole(string(normalized.Role)).With().Str("component", "dashboard").Logger(),
		loading:   true,
		pending:   normalized.InitialConversation,
		viewStack: []ViewID{ViewInbox},
		views:     make(map[ViewID]viewModel),
	}
	m.inbox = newInboxView(m.role, normalized.ShowTimestamps, normalized.OnOpen)
	m.table = newTableView(m.role, m.routeToInbox)
	m.views[ViewInbox] = m.inbox
	m.views[ViewTable] = m.table
	return m, nil
}

func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadConversationsCmd(m.provider), m.activeView().Init())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case conversationsLoadedMsg:
		m.loading = false
		m.loadErr = typed.err
		if typed.err != nil {
			m.log.Error().Str("error", logging.Redact(typed.err.Error())).Msg("load conversations")
			return m, nil
		}
		m.items = typed.items
		for _, view := range m.views {
			view.SetConversations(m.items)
		}
		m.log.Info().Int("count", len(m.items)).Msg("conversations loaded")
		m.deliverPending()
		return m, nil
	case pushViewMsg:
		m.pushView(typed.id)
		return m, m.activeView().Init()
	case popViewMsg:
		m.popView()
		return m, m.activeView().Init()
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, cmd
		}
	}

	return m, m.activeView().Update(msg)
}

func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := maxInt(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelpOverlay(m.width, contentHeight)
	case m.loading:
		body = m.theme.Muted().Render("Loading conversations…")
	case m.loadErr != nil:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Status.NeedsAttention)).
			Render(fmt.Sprintf("Failed to load conversations: %v", m.loadErr))
	default:
		body = m.activeView().View(m.width, contentHeight, m.theme)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if m.activeView().Capturing() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	case "esc":
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
	case "tab":
		if m.activeViewID() == ViewTable {
			return popViewCmd(), true
		}
		return pushViewCmd(ViewTable), true
	}

	if next, ok := viewSwitchKeys[msg.String()]; ok {
		if next == ViewInbox {
			m.viewStack = m.viewStack[:1]
		} else {
			m.pushView(next)
		}
		return m.activeView().Init(), true
	}
	return nil, false
}

// routeToInbox is the table's "view conversation" callback: the host owns
// navigation, so the id becomes a fresh inbox target.
func (m *Model) routeToInbox(id string) {
	m.viewStack = m.viewStack[:1]
	m.inbox.Open(monitor.Target{ID: id, Ack: m.ackFunc(id, "table")})
}

func (m *Model) deliverPending() {
	id := strings.TrimSpace(m.pending)
	if id == "" {
		return
	}
	m.inbox.Consume(monitor.Target{ID: id, Ack: m.ackFunc(id, "initial")})
}

func (m *Model) ackFunc(id, origin string) func() {
	return func() {
		if origin == "initial" {
			m.pending = ""
		}
		log := logging.WithConversation(id).With().
			Str("component", "dashboard").
			Str("role", string(m.role)).
			Str("origin", origin).
			Logger()
		if _, ok := dataset.Find(m.items, id); !ok {
			log.Warn().Bool("missing", true).Msg("conversation opened")
			return
		}
		log.Info().Msg("conversation opened")
	}
}

func (m *Model) activeView() viewModel {
	return m.views[m.activeViewID()]
}

func (m *Model) activeViewID() ViewID {
	if len(m.viewStack) == 0 {
		return ViewInbox
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *Model) pushView(id ViewID) {
	if id == "" {
		return
	}
	if _, ok := m.views[id]; !ok {
		return
	}
	if m.activeViewID() == id {
		return
	}
	m.viewStack = append(m.viewStack, id)
}

func (m *Model) popView() {
	if len(m.viewStack) <= 1 {
		return
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

func (c Config) normalize() (Config, error) {
	if c.Provider == nil {
		return Config{}, errors.New("conversation provider required")
	}
	if c.Role == "" {
		c.Role = monitor.RoleAdmin
	}
	if _, err := monitor.ParseRole(string(c.Role)); err != nil {
		return Config{}, err
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = "default"
	}
	if _, ok := styles.Themes[c.Theme]; !ok {
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	c.InitialConversation = strings.TrimSpace(c.InitialConversation)
	return c, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
