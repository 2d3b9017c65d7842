// Package schedule holds the pure wall-clock math behind the three periodic
// tasks: time-until-next-occurrence helpers and report window calculators.
// Every function takes "now" explicitly so the package stays clock-free.
package schedule

import (
	"time"

	"tg-standup-bot/internal/domain"
)

// minWait keeps schedulers from busy-looping when a target fires exactly now.
const minWait = time.Second

// UntilNextDaily returns the duration until the next instant with the given
// wall-clock time in loc, strictly after now. An exact hit rolls to tomorrow.
func UntilNextDaily(now time.Time, target domain.WallClock, loc *time.Location) time.Duration {
	local := now.In(loc)
	candidate := time.Date(local.Year(), local.Month(), local.Day(), target.Hour, target.Minute, 0, 0, loc)
	if !candidate.After(local) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return clampWait(candidate.Sub(local))
}

// UntilNextWeekly is UntilNextDaily constrained to the given weekday,
// advancing in 7-day steps when today's candidate already passed.
func UntilNextWeekly(now time.Time, target domain.WallClock, weekday time.Weekday, loc *time.Location) time.Duration {
	local := now.In(loc)
	daysAhead := (int(weekday) - int(local.Weekday()) + 7) % 7
	candidate := time.Date(local.Year(), local.Month(), local.Day()+daysAhead, target.Hour, target.Minute, 0, 0, loc)
	if !candidate.After(local) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return clampWait(candidate.Sub(local))
}

// UntilNextMonthly returns the duration until the first day of the next
// calendar month at the given wall-clock time. time.Date normalizes month 13,
// so the December to January rollover needs no special case.
func UntilNextMonthly(now time.Time, target domain.WallClock, loc *time.Location) time.Duration {
	local := now.In(loc)
	candidate := time.Date(local.Year(), local.Month()+1, 1, target.Hour, target.Minute, 0, 0, loc)
	return clampWait(candidate.Sub(local))
}

// WeekWindow returns the week-to-date window: from the most recent Sunday on
// or before today through today. On a Sunday the window is a single day.
func WeekWindow(now time.Time, loc *time.Location) domain.PeriodWindow {
	local := now.In(loc)
	today := midnight(local, loc)
	start := today.AddDate(0, 0, -int(local.Weekday()))
	return domain.PeriodWindow{Start: start, End: today, Label: "Week-to-date"}
}

// MonthWindow returns the monthly report window. A manual trigger reports the
// in-progress month; the scheduled run always reports the fully closed
// previous calendar month.
func MonthWindow(now time.Time, manual bool, loc *time.Location) domain.PeriodWindow {
	local := now.In(loc)
	today := midnight(local, loc)
	firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	if manual {
		return domain.PeriodWindow{Start: firstOfMonth, End: today, Label: "Month-to-date"}
	}
	prevEnd := firstOfMonth.AddDate(0, 0, -1)
	prevStart := time.Date(prevEnd.Year(), prevEnd.Month(), 1, 0, 0, 0, 0, loc)
	return domain.PeriodWindow{Start: prevStart, End: prevEnd, Label: "Previous calendar month"}
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func clampWait(d time.Duration) time.Duration {
	if d < minWait {
		return minWait
	}
	return d
}
