// Package cli implements the carewatch command line.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/carewatch/internal/config"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/logging"
	"github.com/tOgg1/carewatch/internal/models"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// options holds flags shared across commands. Non-empty values override the
// config file and CAREWATCH_* environment.
type options struct {
	configFile string
	role       string
	source     string
	db         string
	logLevel   string

	theme      string
	open       string
	resume     bool
	timestamps bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "carewatch",
		Short: "Monitor patient conversations with AI care companions",
		Long: `carewatch is a terminal dashboard for clinical staff reviewing conversations
between patients and AI care companions. Running it without a subcommand
opens the interactive dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default: ~/.config/carewatch/config.yaml)")
	pf.StringVar(&opts.role, "role", "", "viewer role: admin|clinic")
	pf.StringVar(&opts.source, "source", "", "data source: sample|sqlite")
	pf.StringVar(&opts.db, "db", "", "SQLite database path")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")

	f := cmd.Flags()
	f.StringVar(&opts.theme, "theme", "", "theme: default|high-contrast")
	f.StringVar(&opts.open, "open", "", "conversation id to open on startup")
	f.BoolVar(&opts.resume, "resume", false, "reopen the last viewed conversation")
	f.BoolVar(&opts.timestamps, "timestamps", true, "show message timestamps")

	cmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newSeedCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// loadConfig layers flags over file and environment configuration.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	loader := config.NewLoader()
	if path := strings.TrimSpace(opts.configFile); path != "" {
		loader.SetConfigFile(path)
	}

	overrides := map[string]string{
		"dashboard.role":                 opts.role,
		"dashboard.theme":                opts.theme,
		"dashboard.initial_conversation": opts.open,
		"data.path":                      opts.db,
		"data.source":                    opts.source,
		"logging.level":                  opts.logLevel,
	}
	for key, value := range overrides {
		if value = strings.TrimSpace(value); value != "" {
			loader.Set(key, value)
		}
	}
	// --db alone implies the sqlite source.
	if strings.TrimSpace(opts.db) != "" && strings.TrimSpace(opts.source) == "" {
		loader.Set("data.source", string(dataset.SourceSQLite))
	}
	if flag := cmd.Flags().Lookup("timestamps"); flag != nil && flag.Changed {
		loader.Set("dashboard.show_timestamps", opts.timestamps)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogging points the global logger at the configured destination.
// quiet discards logs when no file is set.
func initLogging(cfg *config.Config, quiet bool) (func() error, error) {
	out, closeFn, err := logging.OpenOutput(cfg.Logging.File, quiet)
	if err != nil {
		return closeFn, err
	}
	logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       out,
		EnableCaller: cfg.Logging.EnableCaller,
	})
	return closeFn, nil
}

// loadConversations opens the configured source and reads the collection.
func loadConversations(cmd *cobra.Command, cfg *config.Config) ([]models.Conversation, error) {
	provider, closeFn, err := dataset.Open(cfg.Data.Source, cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	items, err := provider.Conversations(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load conversations: %w", err)
	}
	logger := logging.Component("cli")
	logger.Debug().
		Str("source", cfg.Data.Source).
		Int("count", len(items)).
		Msg("conversations loaded")
	return items, nil
}
