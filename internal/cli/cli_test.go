package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/carewatch/internal/config"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/models"
)

const importFixture = `{
  "conversations": [
    {
      "id": "imp-1",
      "patientName": "Nora Quinn",
      "status": "needs_attention",
      "sentiment": "anxious",
      "timestamp": "2026-03-01T10:00:00Z",
      "clinicId": "clinic-harbor",
      "clinicName": "Harbor Health",
      "messages": [
        {"sender": "user", "content": "My inhaler ran out.", "timestamp": "2026-03-01T10:00:00Z"}
      ]
    },
    {
      "id": "imp-2",
      "patientName": "Owen Reyes",
      "status": "resolved",
      "sentiment": "happy"
    }
  ]
}`

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range config.EnvKeys {
		t.Setenv(config.EnvVar(key), "")
		os.Unsetenv(config.EnvVar(key))
	}
	return home
}

func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd("dev")
	for _, name := range []string{"list", "ls", "show", "seed", "import"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		require.NotEqual(t, root, found, name)
	}
	found, _, err := root.Find([]string{"ls"})
	require.NoError(t, err)
	require.Equal(t, "list", found.Name())
}

func TestListDefault(t *testing.T) {
	isolateEnv(t)
	out, err := runCLI(t, nil, "list")
	require.NoError(t, err)
	require.Contains(t, out, "PATIENT")
	require.Contains(t, out, "CLINIC")
	require.Contains(t, out, "Michael Chen")
	require.Contains(t, out, "8 of 8 conversations · 3 need attention")
}

func TestListFilters(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, nil, "list", "--status", "needs-attention")
	require.NoError(t, err)
	require.Contains(t, out, "3 of 8 conversations · 3 need attention")

	out, err = runCLI(t, nil, "list", "--clinic", "northgate cardiology")
	require.NoError(t, err)
	require.Contains(t, out, "2 of 8 conversations")

	out, err = runCLI(t, nil, "list", "--search", "chen")
	require.NoError(t, err)
	require.Contains(t, out, "2 of 8 conversations · 1 need attention")

	out, err = runCLI(t, nil, "list", "--patient", "Nobody")
	require.NoError(t, err)
	require.Contains(t, out, "No conversations match")

	_, err = runCLI(t, nil, "list", "--status", "sleepy")
	require.Error(t, err)
}

func TestListClinicRoleHidesClinic(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, nil, "list", "--role", "clinic")
	require.NoError(t, err)
	require.NotContains(t, out, "CLINIC")
	require.NotContains(t, out, "Riverside Family Practice")

	_, err = runCLI(t, nil, "list", "--role", "clinic", "--clinic", "clinic-riverside")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not available for the clinic role")
}

func TestJSONOutputHidesClinicForClinicRole(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, nil, "list", "--role", "clinic", "--json")
	require.NoError(t, err)
	require.NotContains(t, out, "clinicId")
	require.NotContains(t, out, "Riverside Family Practice")
	items, err := dataset.DecodeJSON(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, items, 8)
	for _, item := range items {
		require.Nil(t, item.Clinic)
	}

	out, err = runCLI(t, nil, "show", "conv-1001", "--role", "clinic", "--json")
	require.NoError(t, err)
	require.NotContains(t, out, "clinicName")

	out, err = runCLI(t, nil, "show", "conv-1001", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"clinicName": "Riverside Family Practice"`)
}

func TestListSortJSON(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, nil, "list", "--sort", "desc", "--json")
	require.NoError(t, err)
	items, err := dataset.DecodeJSON(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, items, 8)
	require.Equal(t, "conv-1005", items[0].ID)
	require.Equal(t, "conv-1007", items[len(items)-1].ID)

	_, err = runCLI(t, nil, "list", "--sort", "sideways")
	require.Error(t, err)
}

func TestShow(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, nil, "show", "conv-1001")
	require.NoError(t, err)
	require.Contains(t, out, "Michael Chen")
	require.Contains(t, out, "Clinic:      Riverside Family Practice")
	require.Contains(t, out, "Messages (5):")
	require.Contains(t, out, "Patient history: 2 conversations, 1 resolved, 1 need attention")

	out, err = runCLI(t, nil, "show", "conv-1001", "--role", "clinic")
	require.NoError(t, err)
	require.NotContains(t, out, "Clinic:")

	_, err = runCLI(t, nil, "show", "conv-404")
	require.Error(t, err)
	require.Contains(t, err.Error(), `conversation "conv-404" not found`)
}

func TestSeedThenListFromSQLite(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "data", "carewatch.db")

	out, err := runCLI(t, nil, "seed", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote 8 conversations")

	out, err = runCLI(t, nil, "list", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "8 of 8 conversations · 3 need attention")
}

func TestShowFromSQLite(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "carewatch.db")

	_, err := runCLI(t, nil, "seed", "--db", dbPath)
	require.NoError(t, err)

	out, err := runCLI(t, nil, "show", "conv-1001", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "Messages (5):")
	require.Contains(t, out, "Patient history: 2 conversations, 1 resolved, 1 need attention")

	_, err = runCLI(t, nil, "show", "conv-404", "--db", dbPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), `conversation "conv-404" not found`)
}

func TestSeedRequiresDatabasePath(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, nil, "seed")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	require.Contains(t, preflight.Error(), "hint: Pass --db")
}

func TestImportFromFileAndStdin(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "import.db")
	file := filepath.Join(dir, "conversations.json")
	require.NoError(t, os.WriteFile(file, []byte(importFixture), 0o600))

	out, err := runCLI(t, nil, "import", file, "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote 2 conversations")

	out, err = runCLI(t, nil, "show", "imp-1", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "Nora Quinn  [Needs Attention]")
	require.Contains(t, out, "Harbor Health")
	require.Contains(t, out, "My inhaler ran out.")

	stdinDB := filepath.Join(dir, "stdin.db")
	out, err = runCLI(t, strings.NewReader(importFixture), "import", "-", "--db", stdinDB)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote 2 conversations")

	_, err = runCLI(t, strings.NewReader(`[{"id":"x","patientName":"P","status":"lost","sentiment":"happy"}]`), "import", "-", "--db", stdinDB)
	require.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestDashboardRequiresTTY(t *testing.T) {
	isolateEnv(t)
	orig := hasTTY
	hasTTY = func() bool { return false }
	t.Cleanup(func() { hasTTY = orig })

	_, err := runCLI(t, nil)
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	require.Equal(t, "carewatch list", preflight.NextStep)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "x.db")

	cmd := newRootCmd("test")
	require.NoError(t, cmd.ParseFlags([]string{"--timestamps=false"}))
	cfg, err := loadConfig(cmd, &options{role: "clinic", db: dbPath, open: "conv-1002"})
	require.NoError(t, err)
	require.Equal(t, "clinic", cfg.Dashboard.Role)
	require.Equal(t, "sqlite", cfg.Data.Source)
	require.Equal(t, dbPath, cfg.Data.Path)
	require.Equal(t, "conv-1002", cfg.Dashboard.InitialConversation)
	require.False(t, cfg.Dashboard.ShowTimestamps)

	_, err = loadConfig(newRootCmd("test"), &options{role: "nurse"})
	require.Error(t, err)
}

func TestSessionResume(t *testing.T) {
	sessions := config.NewSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	log := zerolog.Nop()

	cfg := config.DefaultConfig()
	require.Empty(t, resolveInitial(cfg, sessions, true, log))

	remember := rememberOpened(sessions, log)
	remember(models.Conversation{ID: "conv-1004", PatientName: "Emily Davis"})

	session, err := sessions.Load()
	require.NoError(t, err)
	require.Equal(t, "conv-1004", session.LastConversation)
	require.Equal(t, "Emily Davis", session.LastPatient)

	require.Equal(t, "conv-1004", resolveInitial(cfg, sessions, true, log))
	require.Empty(t, resolveInitial(cfg, sessions, false, log))

	cfg.Dashboard.InitialConversation = "conv-1001"
	require.Equal(t, "conv-1001", resolveInitial(cfg, sessions, true, log))
}

func TestWriteTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"conv-1", "Zoë"},
		{"c2", "Michael Chen"},
	}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "ID      NAME", lines[0])
	require.Equal(t, "conv-1  Zoë", lines[1])
	require.Equal(t, "c2      Michael Chen", lines[2])
}
