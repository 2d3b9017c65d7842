package domain

import "time"

// Message is a single chat message as seen by the bot. The archive keeps it
// verbatim; reports never rely on anything beyond author, text and timestamp.
type Message struct {
	ChatID      int64
	TGMessageID int
	AuthorID    int64
	IsBot       bool
	Text        string
	SentAt      time.Time
}

// ChannelInfo describes the resolved target channel.
type ChannelInfo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// PeriodWindow is a closed date range for one report. Start and End are
// midnights in the configured timezone; the window covers both days fully.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
	Label string
}

// Days returns the window length in calendar days, inclusive of both ends.
func (w PeriodWindow) Days() int {
	hours := w.End.Sub(w.Start).Hours()
	// Rounding absorbs DST shifts inside the window.
	return int(hours/24+0.5) + 1
}

// Contains reports whether t falls inside the window, from Start 00:00:00
// through End 23:59:59 in the window's timezone.
func (w PeriodWindow) Contains(t time.Time) bool {
	end := w.End.AddDate(0, 0, 1)
	return !t.Before(w.Start) && t.Before(end)
}

// DayKey is a calendar date in the configured timezone, formatted 2006-01-02.
type DayKey = string

// Aggregation holds per-user results of one history scan. Counts always has an
// entry for every tracked user; ActiveDays holds the distinct local dates with
// at least one qualifying update.
type Aggregation struct {
	Counts     map[int64]int
	ActiveDays map[int64]map[DayKey]struct{}
}

// MissedDays returns how many days of the window the user posted no qualifying
// update, floored at zero.
func (a Aggregation) MissedDays(userID int64, window PeriodWindow) int {
	missed := window.Days() - len(a.ActiveDays[userID])
	if missed < 0 {
		return 0
	}
	return missed
}

// TotalUpdates sums counts across all tracked users.
func (a Aggregation) TotalUpdates() int {
	total := 0
	for _, n := range a.Counts {
		total += n
	}
	return total
}
