package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

type failingProvider struct{}

func (failingProvider) Conversations(context.Context) ([]models.Conversation, error) {
	return nil, errors.New("disk on fire")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newLoadedModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	if cfg.Provider == nil {
		cfg.Provider = dataset.SampleProvider{}
	}
	m, err := NewModel(cfg)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	msg := loadConversationsCmd(cfg.Provider)()
	m.Update(msg)
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// pressRoute presses a key that returns a push/pop command and delivers it.
func pressRoute(t *testing.T, m *Model, k string) {
	t.Helper()
	cmd := press(m, k)
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewModelValidation(t *testing.T) {
	_, err := NewModel(Config{})
	require.Error(t, err)

	_, err = NewModel(Config{Provider: dataset.SampleProvider{}, Theme: "neon"})
	require.Error(t, err)

	_, err = NewModel(Config{Provider: dataset.SampleProvider{}, Role: "nurse"})
	require.Error(t, err)

	m, err := NewModel(Config{Provider: dataset.SampleProvider{}, Theme: "High-Contrast"})
	require.NoError(t, err)
	assert.Equal(t, monitor.RoleAdmin, m.role)
	assert.Equal(t, "high-contrast", m.theme.Name)
}

func TestLoadingAndErrorStates(t *testing.T) {
	m, err := NewModel(Config{Provider: failingProvider{}})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Contains(t, m.View(), "Loading conversations")

	m.Update(loadConversationsCmd(failingProvider{})())
	assert.Contains(t, m.View(), "Failed to load conversations: disk on fire")
}

func TestInitialTargetOpensDetailOnce(t *testing.T) {
	var opened []string
	m := newLoadedModel(t, Config{
		InitialConversation: "conv-1004",
		OnOpen:              func(c models.Conversation) { opened = append(opened, c.ID) },
	})

	assert.Equal(t, monitor.ModeDetail, m.inbox.Mode())
	assert.Equal(t, "conv-1004", m.inbox.state.Nav.Selected())
	assert.Empty(t, m.pending, "acknowledgment clears the pending target")
	assert.Equal(t, []string{"conv-1004"}, opened)

	view := m.View()
	assert.Contains(t, view, "Emily Davis")
	assert.Contains(t, view, "Started new")
	assert.Contains(t, view, "Inbox › Conversation")

	// A reload does not re-open the target.
	press(m, "esc")
	m.Update(loadConversationsCmd(dataset.SampleProvider{})())
	assert.Equal(t, monitor.ModeList, m.inbox.Mode())
	assert.Len(t, opened, 1)
}

func TestUnknownInitialTargetRendersNotFound(t *testing.T) {
	m := newLoadedModel(t, Config{InitialConversation: "conv-404"})
	assert.Equal(t, monitor.ModeDetail, m.inbox.Mode())
	assert.Empty(t, m.pending)
	assert.Contains(t, m.View(), `Conversation "conv-404" not found`)

	press(m, "esc")
	assert.Equal(t, monitor.ModeList, m.inbox.Mode())
}

func TestInboxListDetailProfileFlow(t *testing.T) {
	var opened []string
	m := newLoadedModel(t, Config{OnOpen: func(c models.Conversation) { opened = append(opened, c.ID) }})

	view := m.View()
	assert.Contains(t, view, "Conversations 8 of 8")
	assert.Contains(t, view, "3 need attention")

	press(m, "j", "enter")
	assert.Equal(t, monitor.ModeDetail, m.inbox.Mode())
	assert.Equal(t, "conv-1002", m.inbox.state.Nav.Selected())
	assert.Equal(t, []string{"conv-1002"}, opened)
	assert.Contains(t, m.View(), "118, lower than last week!")

	press(m, "p")
	assert.Equal(t, monitor.ModeProfile, m.inbox.Mode())
	view = m.View()
	assert.Contains(t, view, "Conversations (1)")
	assert.Contains(t, view, "sarah.j@example.com")

	press(m, "esc")
	assert.Equal(t, monitor.ModeDetail, m.inbox.Mode())
	press(m, "esc")
	assert.Equal(t, monitor.ModeList, m.inbox.Mode())
}

func TestProfileListsPatientHistory(t *testing.T) {
	m := newLoadedModel(t, Config{InitialConversation: "conv-1001"})
	press(m, "p")
	view := m.View()
	assert.Contains(t, view, "Conversations (2)")
	assert.Contains(t, view, "1 of 2 resolved, 1 need attention")
	assert.Contains(t, view, "Mood       1 neutral · 1 anxious")
}

func TestInboxSearchCapturesKeys(t *testing.T) {
	m := newLoadedModel(t, Config{})

	press(m, "/")
	require.True(t, m.inbox.Capturing())
	typeText(m, "CHEN")
	assert.Len(t, m.inbox.visible, 2)

	// q is text while the search box owns the keyboard.
	cmd := press(m, "q")
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}
	assert.Empty(t, m.inbox.visible)

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	press(m, "enter")
	assert.False(t, m.inbox.Capturing())
	assert.Contains(t, m.View(), "Conversations 2 of 8")

	press(m, "x")
	assert.Len(t, m.inbox.visible, 8)
}

func TestInboxFacetFilters(t *testing.T) {
	m := newLoadedModel(t, Config{})

	press(m, "f")
	require.True(t, m.inbox.Capturing())
	press(m, "right") // clinic: first seen clinic
	assert.Equal(t, "clinic-riverside", m.inbox.state.Criteria.Clinic)
	assert.Len(t, m.inbox.visible, 3)

	press(m, "tab", "right") // status: Needs Attention
	assert.Equal(t, string(models.StatusNeedsAttention), m.inbox.state.Criteria.Status)
	require.Len(t, m.inbox.visible, 1)
	assert.Equal(t, "conv-1001", m.inbox.visible[0].ID)

	press(m, "ctrl+x")
	assert.Len(t, m.inbox.visible, 8)
	press(m, "esc")
	assert.False(t, m.inbox.Capturing())
}

func TestClinicRoleHidesClinicFacetAndColumn(t *testing.T) {
	m := newLoadedModel(t, Config{Role: monitor.RoleClinic})

	assert.NotContains(t, m.inbox.View(160, 30, m.theme), "Clinic:")
	assert.NotContains(t, m.table.View(160, 30, m.theme), "Clinic")

	admin := newLoadedModel(t, Config{Role: monitor.RoleAdmin})
	assert.Contains(t, admin.inbox.View(160, 30, admin.theme), "Clinic: All")
	assert.Contains(t, admin.table.View(160, 30, admin.theme), "Clinic")
}

func TestTableSortAndSelection(t *testing.T) {
	m := newLoadedModel(t, Config{})
	pressRoute(t, m, "tab")
	require.Equal(t, ViewTable, m.activeViewID())

	assert.Equal(t, "conv-1001", m.table.rows[0].ID)

	press(m, "s")
	assert.Equal(t, monitor.SortDesc, m.table.state.Order)
	ids := rowIDs(m.table.rows)
	assert.Equal(t, []string{"conv-1005", "conv-1001", "conv-1008"}, ids[:3])
	assert.Contains(t, m.View(), "Last activity ↓")

	press(m, "s")
	assert.Equal(t, "conv-1007", m.table.rows[0].ID)
	press(m, "s")
	assert.Equal(t, monitor.SortNone, m.table.state.Order)
	assert.Equal(t, "conv-1001", m.table.rows[0].ID)

	press(m, "space")
	assert.True(t, m.table.state.Checked.Contains("conv-1001"))
	press(m, "space")
	assert.Zero(t, m.table.state.Checked.Len())

	press(m, "a")
	assert.Equal(t, 8, m.table.state.Checked.Len())
	assert.Contains(t, m.View(), "8 selected")
	press(m, "a")
	assert.Zero(t, m.table.state.Checked.Len())
}

func TestTableSelectAllCoversFullCollection(t *testing.T) {
	m := newLoadedModel(t, Config{})
	pressRoute(t, m, "tab")

	press(m, "/")
	typeText(m, "chen")
	press(m, "enter")
	require.Len(t, m.table.rows, 2)
	assert.Contains(t, m.View(), "1 need attention")

	press(m, "a")
	assert.Equal(t, 8, m.table.state.Checked.Len())
}

func TestTableEnterRoutesToInbox(t *testing.T) {
	var opened []string
	m := newLoadedModel(t, Config{OnOpen: func(c models.Conversation) { opened = append(opened, c.ID) }})
	pressRoute(t, m, "tab")

	press(m, "j", "enter")
	assert.Equal(t, ViewInbox, m.activeViewID())
	assert.Equal(t, monitor.ModeDetail, m.inbox.Mode())
	assert.Equal(t, "conv-1002", m.inbox.state.Nav.Selected())

	// The same row can be opened again after navigating away.
	press(m, "esc")
	pressRoute(t, m, "tab")
	press(m, "enter")
	assert.Equal(t, monitor.ModeDetail, m.inbox.Mode())
	assert.Equal(t, []string{"conv-1002", "conv-1002"}, opened)
}

func TestTableEscPopsToInbox(t *testing.T) {
	m := newLoadedModel(t, Config{})
	pressRoute(t, m, "tab")
	pressRoute(t, m, "esc")
	assert.Equal(t, ViewInbox, m.activeViewID())

	press(m, "2")
	assert.Equal(t, ViewTable, m.activeViewID())
	press(m, "1")
	assert.Equal(t, ViewInbox, m.activeViewID())
}

func TestHelpOverlayAndQuit(t *testing.T) {
	m := newLoadedModel(t, Config{})

	press(m, "?")
	view := m.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "Dismiss: ? or Esc")
	press(m, "esc")
	assert.False(t, m.showHelp)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	press(m, "/")
	cmd = press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHeaderShowsCounters(t *testing.T) {
	m := newLoadedModel(t, Config{Role: monitor.RoleClinic})
	header := m.renderHeader()
	assert.Contains(t, header, "carewatch")
	assert.Contains(t, header, "role: clinic")
	assert.True(t, strings.Contains(header, "8 conversations"))
}

func rowIDs(items []models.Conversation) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
