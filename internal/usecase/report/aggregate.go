// Package report implements the period-report engine: history aggregation,
// table rendering and the service that ties them to the chat platform.
package report

import (
	"strings"

	"tg-standup-bot/internal/domain"
)

const dayKeyLayout = "2006-01-02"

// Aggregate scans messages against the window and produces per-user update
// counts and active-day sets. The input order is irrelevant and the function
// is pure: identical inputs yield identical results.
//
// A message is skipped when, in this order: the author is a bot, the
// normalized text equals one of the command phrases, the text does not match
// the update pattern, or the author is not tracked.
func Aggregate(msgs []domain.Message, window domain.PeriodWindow, cfg domain.Config) domain.Aggregation {
	agg := domain.Aggregation{
		Counts:     make(map[int64]int, len(cfg.UserIDs)),
		ActiveDays: make(map[int64]map[domain.DayKey]struct{}, len(cfg.UserIDs)),
	}
	for _, id := range cfg.UserIDs {
		agg.Counts[id] = 0
		agg.ActiveDays[id] = make(map[domain.DayKey]struct{})
	}

	type dayPair struct {
		userID int64
		day    domain.DayKey
	}
	seenDaily := make(map[dayPair]struct{})

	for _, msg := range msgs {
		if !window.Contains(msg.SentAt.In(cfg.Location)) {
			continue
		}
		if msg.IsBot {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(msg.Text))
		if cfg.IsCommand(normalized) {
			continue
		}
		if !cfg.UpdatePattern.MatchString(msg.Text) {
			continue
		}
		if !cfg.IsTracked(msg.AuthorID) {
			continue
		}

		day := msg.SentAt.In(cfg.Location).Format(dayKeyLayout)

		if cfg.OneUpdatePerDay {
			key := dayPair{userID: msg.AuthorID, day: day}
			if _, ok := seenDaily[key]; ok {
				continue
			}
			seenDaily[key] = struct{}{}
		}

		agg.Counts[msg.AuthorID]++
		agg.ActiveDays[msg.AuthorID][day] = struct{}{}
	}

	return agg
}
