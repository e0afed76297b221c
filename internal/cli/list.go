package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/tOgg1/carewatch/internal/config"
	"github.com/tOgg1/carewatch/internal/dataset"
	"github.com/tOgg1/carewatch/internal/models"
	"github.com/tOgg1/carewatch/internal/monitor"
)

const messageColumnWidth = 48

type listOptions struct {
	search string
	facets map[monitor.Facet]*string
	sort   string
	json   bool
}

func newListCmd(opts *options) *cobra.Command {
	lo := &listOptions{facets: make(map[monitor.Facet]*string, len(monitor.Facets))}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List conversations",
		Long: `List conversations as a table, applying the same search, facet and sort
rules as the dashboard table. Facet values match either the option value
or its label, case-insensitively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, lo)
		},
	}
	cmd.Flags().StringVar(&lo.search, "search", "", "match patient name, email or last message")
	for _, facet := range monitor.Facets {
		value := new(string)
		lo.facets[facet] = value
		cmd.Flags().StringVar(value, string(facet), "", fmt.Sprintf("filter by %s", strings.ToLower(facet.Label())))
	}
	cmd.Flags().StringVar(&lo.sort, "sort", "none", "timestamp order: none|desc|asc")
	cmd.Flags().BoolVar(&lo.json, "json", false, "output JSON")
	return cmd
}

func runList(cmd *cobra.Command, opts *options, lo *listOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	closeLog, err := initLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	order, ok := monitor.ParseSortOrder(lo.sort)
	if !ok {
		return fmt.Errorf("invalid sort %q (expected none, desc or asc)", lo.sort)
	}

	items, err := loadConversations(cmd, cfg)
	if err != nil {
		return err
	}

	state := monitor.NewTableState(nil)
	state.Order = order
	state.Criteria.Search = lo.search
	if err := applyFacets(&state.Criteria, cfg.Role(), items, lo.facets); err != nil {
		return err
	}
	rows := state.Rows(items)

	out := cmd.OutOrStdout()
	if lo.json {
		return dataset.EncodeJSON(out, visibleTo(cfg.Role(), rows))
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No conversations match the current filters.")
		return nil
	}

	headers, cells := listColumns(cfg, order)
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, cells(row))
	}
	if err := writeTable(out, headers, table); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d of %d conversations · %d need attention\n",
		len(rows), len(items), monitor.CountNeedsAttention(rows))
	return nil
}

// applyFacets resolves facet flags against the collection's options.
func applyFacets(criteria *monitor.Criteria, role monitor.Role, items []models.Conversation, flags map[monitor.Facet]*string) error {
	allowed := make(map[monitor.Facet]bool)
	for _, facet := range role.Facets() {
		allowed[facet] = true
	}
	for _, facet := range monitor.Facets {
		raw := strings.TrimSpace(*flags[facet])
		if raw == "" {
			continue
		}
		if !allowed[facet] {
			return fmt.Errorf("--%s is not available for the %s role", facet, role)
		}
		if facet == monitor.FacetStatus {
			status, ok := models.ParseStatus(raw)
			if !ok {
				return fmt.Errorf("invalid status %q", raw)
			}
			raw = string(status)
		}
		criteria.Set(facet, resolveOption(monitor.Options(items, facet), raw))
	}
	return nil
}

func resolveOption(options []monitor.Option, raw string) string {
	for _, opt := range options {
		if strings.EqualFold(opt.Value, raw) || strings.EqualFold(opt.Label, raw) {
			return opt.Value
		}
	}
	return raw
}

// listColumns mirrors the dashboard table columns for the configured role.
func listColumns(cfg *config.Config, order monitor.SortOrder) ([]string, func(models.Conversation) []string) {
	role := cfg.Role()
	var headers []string
	for _, col := range role.Columns() {
		switch col {
		case monitor.ColumnSelect:
			headers = append(headers, "ID")
		case monitor.ColumnPatient:
			headers = append(headers, "PATIENT")
		case monitor.ColumnClinic:
			headers = append(headers, "CLINIC")
		case monitor.ColumnStatus:
			headers = append(headers, "STATUS")
		case monitor.ColumnSentiment:
			headers = append(headers, "MOOD")
		case monitor.ColumnMessage:
			headers = append(headers, "LAST MESSAGE")
		case monitor.ColumnCompanion:
			headers = append(headers, "COMPANION")
		case monitor.ColumnCount:
			headers = append(headers, "MSGS")
		case monitor.ColumnTimestamp:
			headers = append(headers, "LAST ACTIVITY "+order.Indicator())
		}
	}

	cells := func(conv models.Conversation) []string {
		row := make([]string, 0, len(headers))
		for _, col := range role.Columns() {
			switch col {
			case monitor.ColumnSelect:
				row = append(row, conv.ID)
			case monitor.ColumnPatient:
				row = append(row, conv.PatientName)
			case monitor.ColumnClinic:
				row = append(row, orDash(conv.ClinicName()))
			case monitor.ColumnStatus:
				row = append(row, string(conv.Status))
			case monitor.ColumnSentiment:
				row = append(row, string(conv.Sentiment))
			case monitor.ColumnMessage:
				row = append(row, runewidth.Truncate(conv.LastMessage, messageColumnWidth, "…"))
			case monitor.ColumnCompanion:
				row = append(row, orDash(conv.CompanionName()))
			case monitor.ColumnCount:
				row = append(row, strconv.Itoa(conv.MessageCount()))
			case monitor.ColumnTimestamp:
				row = append(row, formatTime(conv))
			}
		}
		return row
	}
	return headers, cells
}

func formatTime(conv models.Conversation) string {
	if conv.Timestamp.IsZero() {
		return "-"
	}
	return conv.Timestamp.Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// visibleTo drops clinic details the role may not see.
func visibleTo(role monitor.Role, items []models.Conversation) []models.Conversation {
	if role == monitor.RoleAdmin {
		return items
	}
	out := make([]models.Conversation, len(items))
	for i, conv := range items {
		conv.Clinic = nil
		out[i] = conv
	}
	return out
}
