package helpers

import (
	"sort"

	"github.com/doeshing/termsim/internal/domain"
)

// CommandStatistic represents usage statistics for a command
type CommandStatistic struct {
	Command string
	Count   int
}

// CalculateTopCommands returns the top N most frequently used commands
// If limit is 0 or negative, returns all commands
func CalculateTopCommands(commandFrequency map[string]int, limit int) []CommandStatistic {
	stats := convertFrequencyMapToStatistics(commandFrequency)
	sortStatisticsByFrequency(stats)

	if shouldLimitResults(limit, len(stats)) {
		return stats[:limit]
	}
	return stats
}

// convertFrequencyMapToStatistics converts a map to a slice of CommandStatistic
func convertFrequencyMapToStatistics(frequency map[string]int) []CommandStatistic {
	stats := make([]CommandStatistic, 0, len(frequency))
	for cmd, count := range frequency {
		stats = append(stats, CommandStatistic{
			Command: cmd,
			Count:   count,
		})
	}
	return stats
}

// sortStatisticsByFrequency sorts statistics by count (descending) then by command name (ascending)
func sortStatisticsByFrequency(stats []CommandStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Command < stats[j].Command
		}
		return stats[i].Count > stats[j].Count
	})
}

// shouldLimitResults checks if we should limit the results based on the limit and actual length
func shouldLimitResults(limit int, actualLength int) bool {
	return limit > 0 && actualLength > limit
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, totalCount int) float64 {
	if totalCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(totalCount) * 100.0
}

// undoHints maps destructive verbs to recovery advice.
var undoHints = map[string]string{
	"rm":    "rm deletes immediately; restore removed paths from backups or version control.",
	"rmdir": "Recreate removed directories with mkdir.",
	"mv":    "Undo a move by running mv again with the operands swapped.",
	"cp":    "A copy never alters the source; rm the destination to undo it.",
}

// DeriveUndoHints generates undo hints for destructive commands that
// succeeded. Returns a sorted list of unique hints.
func DeriveUndoHints(records []domain.AuditRecord) []string {
	hintMap := make(map[string]string)

	for _, record := range records {
		if !record.Success {
			continue
		}
		if hint, ok := undoHints[record.Command]; ok {
			hintMap[record.Command] = hint
		}
	}

	return convertHintMapToSortedList(hintMap)
}

// convertHintMapToSortedList converts a hint map to a sorted slice
func convertHintMapToSortedList(hintMap map[string]string) []string {
	hints := make([]string, 0, len(hintMap))
	for _, hint := range hintMap {
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	return hints
}
