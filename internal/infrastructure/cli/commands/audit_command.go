package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/termsim/internal/app"
	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/infrastructure/cli/helpers"
	"github.com/doeshing/termsim/internal/ports"
)

// NewAuditCommand creates the audit command with all subcommands
func NewAuditCommand(container *app.Container) *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the persisted command journal",
	}

	auditCmd.AddCommand(
		newAuditListCommand(container),
		newAuditStatsCommand(container),
		newAuditClearCommand(container),
		newAuditExportCommand(container),
	)

	return auditCmd
}

// newAuditListCommand creates the 'audit list' subcommand
func newAuditListCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := container.AuditStore()
			if err != nil {
				return fmt.Errorf("audit store unavailable: %w", err)
			}
			return listAuditEntries(cmd.OutOrStdout(), store, container.Config.IsAuditEnabled(), limit, search, time.Now())
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultAuditListLimit, "Max entries to show")
	cmd.Flags().StringVar(&search, "search", "", "Only show entries whose command line contains this text")
	return cmd
}

// newAuditStatsCommand creates the 'audit stats' subcommand
func newAuditStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate, busiest sessions and top commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := container.AuditStore()
			if err != nil {
				return fmt.Errorf("audit store unavailable: %w", err)
			}
			return showAuditStats(cmd.OutOrStdout(), store)
		},
	}
}

// newAuditClearCommand creates the 'audit clear' subcommand
func newAuditClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := container.AuditStore()
			if err != nil {
				return fmt.Errorf("audit store unavailable: %w", err)
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear audit journal: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgAuditCleared)
			return nil
		},
	}
}

// newAuditExportCommand creates the 'audit export' subcommand
func newAuditExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the journal to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := container.AuditStore()
			if err != nil {
				return fmt.Errorf("audit store unavailable: %w", err)
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export audit journal to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

// listAuditEntries lists journal entries with relative ages
func listAuditEntries(out io.Writer, store ports.AuditRepository, enabled bool, limit int, search string, now time.Time) error {
	records, err := store.Records(limit, search)
	if err != nil {
		return fmt.Errorf("failed to retrieve audit records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoAuditRecorded)
		if !enabled {
			fmt.Fprintln(out, MsgAuditDisabledHint)
		}
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%4d | %s (%s) | %-8s | %-4s | %s\n",
			rec.ID,
			rec.Timestamp.Local().Format(TimestampFormat),
			humanize.RelTime(rec.Timestamp, now, "ago", "from now"),
			rec.Session,
			statusLabel(rec.Success),
			rec.Line())
	}
	return nil
}

func statusLabel(success bool) string {
	if success {
		return "ok"
	}
	return "fail"
}

// showAuditStats displays success rate, sessions and top commands
func showAuditStats(out io.Writer, store ports.AuditRepository) error {
	records, err := store.Records(domain.MaxAuditAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve audit records for analysis: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoAuditRecorded)
		return nil
	}

	stats := analyzeAuditRecords(records)
	displayAuditStatistics(out, stats, records)
	return nil
}

// auditStatistics holds analyzed journal statistics
type auditStatistics struct {
	successful    int
	totalDuration int64
	commandFreq   map[string]int
	sessionCounts map[string]int
	first, last   time.Time
}

// analyzeAuditRecords computes statistics over records
func analyzeAuditRecords(records []domain.AuditRecord) auditStatistics {
	stats := auditStatistics{
		commandFreq:   make(map[string]int),
		sessionCounts: make(map[string]int),
	}

	for _, rec := range records {
		if rec.Success {
			stats.successful++
		}
		stats.totalDuration += rec.DurationMS
		stats.commandFreq[rec.Command]++
		stats.sessionCounts[rec.Session]++
		if stats.first.IsZero() || rec.Timestamp.Before(stats.first) {
			stats.first = rec.Timestamp
		}
		if rec.Timestamp.After(stats.last) {
			stats.last = rec.Timestamp
		}
	}

	return stats
}

// displayAuditStatistics displays formatted journal statistics
func displayAuditStatistics(out io.Writer, stats auditStatistics, records []domain.AuditRecord) {
	fmt.Fprintf(out, "Entries analyzed: %d\nSuccess rate: %.1f%%\nAverage duration: %dms\n",
		len(records),
		helpers.CalculateSuccessRate(stats.successful, len(records)),
		stats.totalDuration/int64(len(records)))
	fmt.Fprintf(out, "Span: %s to %s\n",
		stats.first.Local().Format(TimestampFormat),
		stats.last.Local().Format(TimestampFormat))

	fmt.Fprintln(out, "Top commands:")
	for _, stat := range helpers.CalculateTopCommands(stats.commandFreq, TopCommandsShown) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Command, stat.Count)
	}

	fmt.Fprintln(out, "Sessions:")
	sessions := make([]string, 0, len(stats.sessionCounts))
	for session := range stats.sessionCounts {
		sessions = append(sessions, session)
	}
	sort.Strings(sessions)
	for _, session := range sessions {
		fmt.Fprintf(out, "  %s: %d\n", session, stats.sessionCounts[session])
	}

	hints := helpers.DeriveUndoHints(records)
	if len(hints) > 0 {
		fmt.Fprintln(out, "Undo hints:")
		for _, hint := range hints {
			fmt.Fprintf(out, "  - %s\n", hint)
		}
	}
}
