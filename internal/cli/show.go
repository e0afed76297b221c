package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

const showWrapWidth = 76

func newShowCmd(opts *options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <conversation-id>",
		Short: "Print one conversation thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			closeLog, err := initLogging(cfg, false)
			if err != nil {
				return err
			}
			defer closeLog()

			provider, closeFn, err := dataset.Open(cfg.Data.Source, cfg.Data.Path)
			if err != nil {
				return err
			}
			defer closeFn()

			conv, err := dataset.Lookup(cmd.Context(), provider, args[0])
			if errors.Is(err, dataset.ErrNotFound) {
				return fmt.Errorf("conversation %q not found", strings.TrimSpace(args[0]))
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return dataset.EncodeJSON(out, visibleTo(cfg.Role(), []models.Conversation{conv}))
			}
			items, err := provider.Conversations(cmd.Context())
			if err != nil {
				return fmt.Errorf("load conversations: %w", err)
			}
			writeConversation(out, conv, cfg.Role(), dataset.ForPatient(items, conv.PatientName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func writeConversation(out io.Writer, conv models.Conversation, role monitor.Role, history []models.Conversation) {
	fmt.Fprintf(out, "%s  %s  [%s]  %s\n", conv.ID, conv.PatientName, conv.Status, conv.Sentiment)
	fmt.Fprintf(out, "Phone:       %s\n", orDash(conv.Phone))
	fmt.Fprintf(out, "Email:       %s\n", orDash(conv.Email))
	if role == monitor.RoleAdmin {
		fmt.Fprintf(out, "Clinic:      %s\n", orDash(conv.ClinicName()))
	}
	fmt.Fprintf(out, "Protocol:    %s\n", orDash(conv.ProtocolName()))
	fmt.Fprintf(out, "Companion:   %s\n", orDash(conv.CompanionName()))
	fmt.Fprintf(out, "Next visit:  %s\n", orDash(conv.NextAppointment))
	fmt.Fprintf(out, "Activity:    %s\n", formatTime(conv))
	if strings.TrimSpace(conv.Context) != "" {
		fmt.Fprintf(out, "\nContext:\n%s\n", indent.String(wordwrap.String(conv.Context, showWrapWidth-2), 2))
	}

	fmt.Fprintf(out, "\nMessages (%d):\n", conv.MessageCount())
	for _, msg := range conv.Messages {
		speaker := conv.PatientName
		if msg.Sender == models.SenderBot {
			speaker = orDash(conv.CompanionName())
			if speaker == "-" {
				speaker = orDash(conv.Assistant)
			}
		}
		stamp := "-"
		if !msg.Timestamp.IsZero() {
			stamp = msg.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "  %s  %s:\n", stamp, speaker)
		fmt.Fprintln(out, indent.String(wordwrap.String(msg.Content, showWrapWidth-4), 4))
	}

	if len(history) > 1 {
		summary := monitor.Summarize(history)
		fmt.Fprintf(out, "\nPatient history: %d conversations, %d resolved, %d need attention\n",
			summary.Total, summary.Resolved, summary.NeedsAttention)
	}
}
