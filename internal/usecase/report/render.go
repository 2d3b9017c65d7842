package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tg-standup-bot/internal/domain"
)

const (
	weeklyReportTitle  = "\U0001F4CA Weekly Report"
	monthlyReportTitle = "\U0001F4C5 Monthly Report"
)

// MentionFunc turns a user id into the platform's mention token.
type MentionFunc func(userID int64) string

// RenderTable builds a fixed-width ASCII table. Column width is the longest
// of the header and every cell; cells are left-justified.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeSeparator := func() {
		b.WriteByte('+')
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}
	writeRow := func(cells []string) {
		b.WriteByte('|')
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(" " + cell + strings.Repeat(" ", w-len(cell)) + " ")
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}

	writeSeparator()
	writeRow(headers)
	writeSeparator()
	for _, row := range rows {
		writeRow(row)
	}
	writeSeparator()
	return strings.TrimRight(b.String(), "\n")
}

// RenderPeriodReport renders the full report: a header block with the period
// and total, then the ranked table. With ranking enabled users are ordered by
// count descending; the sort is stable so ties keep the configured order.
func RenderPeriodReport(title string, cfg domain.Config, agg domain.Aggregation, window domain.PeriodWindow, mention MentionFunc) string {
	ordered := append([]int64(nil), cfg.UserIDs...)
	if cfg.RankReport {
		sort.SliceStable(ordered, func(i, j int) bool {
			return agg.Counts[ordered[i]] > agg.Counts[ordered[j]]
		})
	}

	headers := []string{"Rank", "User", "Updates", "Active Days", "Missed Days"}
	rows := make([][]string, 0, len(ordered))
	for i, userID := range ordered {
		missed := "-"
		if cfg.IncludeMissedDays {
			missed = strconv.Itoa(agg.MissedDays(userID, window))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			mention(userID),
			strconv.Itoa(agg.Counts[userID]),
			strconv.Itoa(len(agg.ActiveDays[userID])),
			missed,
		})
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(fmt.Sprintf("Period: %s to %s (%s)\n", window.Start.Format(dayKeyLayout), window.End.Format(dayKeyLayout), window.Label))
	b.WriteString(fmt.Sprintf("Total updates: %d\n\n", agg.TotalUpdates()))
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// RenderFlatReport renders the legacy single-window style: one line per user.
func RenderFlatReport(title string, cfg domain.Config, agg domain.Aggregation, window domain.PeriodWindow, mention MentionFunc) string {
	lines := []string{title, ""}

	ordered := append([]int64(nil), cfg.UserIDs...)
	if cfg.RankReport {
		sort.SliceStable(ordered, func(i, j int) bool {
			return agg.Counts[ordered[i]] > agg.Counts[ordered[j]]
		})
	}

	for _, userID := range ordered {
		line := fmt.Sprintf("%s : %d updates", mention(userID), agg.Counts[userID])
		if cfg.IncludeMissedDays {
			line += fmt.Sprintf(" | Missed Days: %d", agg.MissedDays(userID, window))
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
