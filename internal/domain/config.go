package domain

import (
	"regexp"
	"time"
)

// WallClock is a local time of day without a date.
type WallClock struct {
	Hour   int
	Minute int
}

// Config is the immutable bot configuration. It is built once at startup from
// the environment and shared read-only by every component; tests construct it
// directly from typed values.
type Config struct {
	BotToken  string
	ChannelID int64

	// UserIDs keeps the configured order: it is the default report order and
	// the tie-breaker when ranking is enabled.
	UserIDs []int64

	TimezoneName string
	Location     *time.Location

	DailyReminderTime   WallClock
	WeeklyReportTime    WallClock
	WeeklyReportWeekday time.Weekday
	MonthlyReportTime   WallClock

	// Command strings are stored trimmed and lower-cased; inbound text is
	// normalized the same way before comparison.
	WeeklyReportCommand   string
	MonthlyReportCommand  string
	ManualReminderCommand string

	// UpdatePattern is compiled case-insensitive and used as a search, not a
	// full match.
	UpdatePattern *regexp.Regexp

	OneUpdatePerDay   bool
	RankReport        bool
	IncludeMissedDays bool
}

// IsTracked reports whether the user is in the configured tracking list.
func (c Config) IsTracked(userID int64) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsCommand reports whether normalized message text equals one of the three
// configured trigger phrases.
func (c Config) IsCommand(normalized string) bool {
	return normalized == c.WeeklyReportCommand ||
		normalized == c.MonthlyReportCommand ||
		normalized == c.ManualReminderCommand
}
