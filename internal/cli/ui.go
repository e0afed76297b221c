package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/carewatch/internal/config"
	"github.com/tOgg1/carewatch/internal/dashboard"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/logging"
	"github.com/tOgg1/carewatch/internal/models"
)

var hasTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runDashboard(cmd *cobra.Command, opts *options) error {
	if !hasTTY() {
		return &PreflightError{
			Message:  "dashboard requires an interactive terminal",
			Hint:     "Run from a TTY, or use the list and show subcommands",
			NextStep: "carewatch list",
		}
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	closeLog, err := initLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logging.Component("cli")

	provider, closeProvider, err := dataset.Open(cfg.Data.Source, cfg.Data.Path)
	if err != nil {
		return err
	}
	defer closeProvider()

	sessions := config.NewSessionStore(cfg.Dashboard.SessionFile)
	initial := resolveInitial(cfg, sessions, opts.resume, log)

	log.Info().
		Fields(logging.RedactMap(map[string]interface{}{
			"role":         cfg.Dashboard.Role,
			"theme":        cfg.Dashboard.Theme,
			"source":       cfg.Data.Source,
			"data_path":    cfg.Data.Path,
			"session_file": sessions.Path(),
			"initial":      initial,
		})).
		Msg("starting dashboard")

	return dashboard.Run(dashboard.Config{
		Role:                cfg.Role(),
		Theme:               cfg.Dashboard.Theme,
		InitialConversation: initial,
		ShowTimestamps:      cfg.Dashboard.ShowTimestamps,
		Provider:            provider,
		OnOpen:              rememberOpened(sessions, log),
	})
}

// resolveInitial picks the startup conversation. An explicit id wins over
// the remembered session.
func resolveInitial(cfg *config.Config, sessions *config.SessionStore, resume bool, log zerolog.Logger) string {
	if id := strings.TrimSpace(cfg.Dashboard.InitialConversation); id != "" || !resume {
		return id
	}
	session, err := sessions.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", sessions.Path()).Msg("ignoring unreadable session")
		return ""
	}
	return session.LastConversation
}

// rememberOpened persists each opened conversation to the session file.
func rememberOpened(sessions *config.SessionStore, log zerolog.Logger) func(models.Conversation) {
	return func(conv models.Conversation) {
		session, err := sessions.Load()
		if err != nil {
			session = &config.Session{}
		}
		session.Remember(conv.ID, conv.PatientName)
		if err := sessions.Save(session); err != nil {
			log.Warn().Err(err).Str("path", sessions.Path()).Msg("save session")
		}
	}
}
