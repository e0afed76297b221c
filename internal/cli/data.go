package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/carewatch/internal/config"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/logging"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/store"
)

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the sample conversations to a SQLite database",
		Long:  "Replace the contents of the SQLite database (--db or data.path) with the built-in sample set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSnapshot(cmd, opts, dataset.Sample(), "sample")
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json|->",
		Short: "Import conversations from JSON into a SQLite database",
		Long: `Replace the contents of the SQLite database (--db or data.path) with the
conversations in a JSON file. The file holds either an array of
conversations or an object with a "conversations" array. Use - for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readConversations(cmd.InOrStdin(), args[0])
			if err != nil {
				logger := logging.Component("cli")
				logger.Debug().
					Str("origin", args[0]).
					Str("error", logging.Redact(err.Error())).
					Msg("import rejected")
				return err
			}
			return writeSnapshot(cmd, opts, items, args[0])
		},
	}
}

func readConversations(stdin io.Reader, path string) ([]models.Conversation, error) {
	path = strings.TrimSpace(path)
	if path == "-" {
		return dataset.DecodeJSON(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return dataset.DecodeJSON(file)
}

func writeSnapshot(cmd *cobra.Command, opts *options, items []models.Conversation, origin string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	closeLog, err := initLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	path, err := databasePath(cfg)
	if err != nil {
		return err
	}
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := logging.WithContext(cmd.Context(), logging.Component("store").With().Str("path", path).Logger())
	if err := s.ReplaceAll(ctx, items); err != nil {
		return err
	}
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	logger := logging.Component("cli")
	logger.Debug().
		Str("path", path).
		Str("origin", origin).
		Int("count", count).
		Msg("snapshot written")

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d conversations to %s\n", count, path)
	return nil
}

func databasePath(cfg *config.Config) (string, error) {
	path := strings.TrimSpace(cfg.Data.Path)
	if path == "" {
		return "", &PreflightError{
			Message:  "no database path configured",
			Hint:     "Pass --db or set data.path (CAREWATCH_DATA_PATH)",
			NextStep: "carewatch seed --db ./carewatch.db",
		}
	}
	return path, nil
}
