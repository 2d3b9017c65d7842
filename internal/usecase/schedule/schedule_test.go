package schedule

import (
	"testing"
	"time"

	"tg-standup-bot/internal/domain"
)

var cairo = mustLoad("Africa/Cairo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func TestUntilNextDailySameDay(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, cairo)
	d := UntilNextDaily(now, domain.WallClock{Hour: 16, Minute: 0}, cairo)
	if d != 6*time.Hour {
		t.Fatalf("expected 6h, got %s", d)
	}
}

func TestUntilNextDailyRollsToTomorrow(t *testing.T) {
	now := time.Date(2024, 3, 5, 16, 0, 0, 0, cairo)
	d := UntilNextDaily(now, domain.WallClock{Hour: 16, Minute: 0}, cairo)
	if d != 24*time.Hour {
		t.Fatalf("exact hit should roll a full day, got %s", d)
	}
}

func TestUntilNextDailyNeverZero(t *testing.T) {
	targets := []domain.WallClock{{Hour: 0, Minute: 0}, {Hour: 12, Minute: 30}, {Hour: 23, Minute: 59}}
	now := time.Date(2024, 12, 31, 23, 59, 59, 0, cairo)
	for _, target := range targets {
		d := UntilNextDaily(now, target, cairo)
		if d < time.Second {
			t.Fatalf("target %02d:%02d produced %s", target.Hour, target.Minute, d)
		}
		landed := now.Add(d).In(cairo)
		if landed.Hour() != target.Hour || landed.Minute() != target.Minute {
			t.Fatalf("landed at %s, wanted %02d:%02d", landed, target.Hour, target.Minute)
		}
	}
}

func TestUntilNextWeeklyLandsOnWeekday(t *testing.T) {
	// 2024-03-05 is a Tuesday.
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, cairo)
	d := UntilNextWeekly(now, domain.WallClock{Hour: 20, Minute: 0}, time.Thursday, cairo)
	landed := now.Add(d).In(cairo)
	if landed.Weekday() != time.Thursday {
		t.Fatalf("landed on %s", landed.Weekday())
	}
	if landed.Day() != 7 || landed.Hour() != 20 {
		t.Fatalf("expected Thursday the 7th at 20:00, got %s", landed)
	}
}

func TestUntilNextWeeklyAdvancesSevenDays(t *testing.T) {
	// Thursday right after the firing time: next candidate is a week out.
	now := time.Date(2024, 3, 7, 20, 0, 1, 0, cairo)
	d := UntilNextWeekly(now, domain.WallClock{Hour: 20, Minute: 0}, time.Thursday, cairo)
	want := 7*24*time.Hour - time.Second
	if d != want {
		t.Fatalf("expected %s, got %s", want, d)
	}
}

func TestUntilNextMonthlyYearRollover(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, cairo)
	d := UntilNextMonthly(now, domain.WallClock{Hour: 20, Minute: 0}, cairo)
	landed := now.Add(d).In(cairo)
	if landed.Year() != 2025 || landed.Month() != time.January || landed.Day() != 1 {
		t.Fatalf("expected 2025-01-01, got %s", landed)
	}
	if landed.Hour() != 20 || landed.Minute() != 0 {
		t.Fatalf("expected 20:00, got %s", landed)
	}
}

func TestWeekWindowOnSunday(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, cairo) // Sunday
	w := WeekWindow(now, cairo)
	if !w.Start.Equal(w.End) {
		t.Fatalf("Sunday should yield a one-day window: %s..%s", w.Start, w.End)
	}
	if w.Days() != 1 {
		t.Fatalf("expected 1 day, got %d", w.Days())
	}
}

func TestWeekWindowMidweek(t *testing.T) {
	now := time.Date(2024, 3, 13, 8, 0, 0, 0, cairo) // Wednesday
	w := WeekWindow(now, cairo)
	if w.Start.Day() != 10 {
		t.Fatalf("expected start on Sunday the 10th, got %s", w.Start)
	}
	if w.End.Day() != 13 {
		t.Fatalf("expected end today, got %s", w.End)
	}
	if w.Days() != 4 {
		t.Fatalf("expected 4 days, got %d", w.Days())
	}
	if w.Label != "Week-to-date" {
		t.Fatalf("unexpected label %q", w.Label)
	}
}

func TestMonthWindowScheduledLeapFebruary(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, cairo)
	w := MonthWindow(now, false, cairo)
	if w.Start.Year() != 2024 || w.Start.Month() != time.February || w.Start.Day() != 1 {
		t.Fatalf("expected 2024-02-01 start, got %s", w.Start)
	}
	if w.End.Day() != 29 {
		t.Fatalf("expected leap-February end on the 29th, got %s", w.End)
	}
	if w.Days() != 29 {
		t.Fatalf("expected 29 days, got %d", w.Days())
	}
	if w.Label != "Previous calendar month" {
		t.Fatalf("unexpected label %q", w.Label)
	}
}

func TestMonthWindowScheduledJanuary(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, cairo)
	w := MonthWindow(now, false, cairo)
	if w.Start.Year() != 2024 || w.Start.Month() != time.December || w.Start.Day() != 1 {
		t.Fatalf("expected 2024-12-01 start, got %s", w.Start)
	}
	if w.End.Month() != time.December || w.End.Day() != 31 {
		t.Fatalf("expected 2024-12-31 end, got %s", w.End)
	}
}

func TestMonthWindowManual(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, cairo)
	w := MonthWindow(now, true, cairo)
	if w.Start.Day() != 1 || w.Start.Month() != time.March {
		t.Fatalf("expected start of current month, got %s", w.Start)
	}
	if w.End.Day() != 5 {
		t.Fatalf("expected end today, got %s", w.End)
	}
	if w.Label != "Month-to-date" {
		t.Fatalf("unexpected label %q", w.Label)
	}
}

func TestManualStartsRightAfterScheduledEnd(t *testing.T) {
	now := time.Date(2024, 7, 19, 12, 0, 0, 0, cairo)
	manual := MonthWindow(now, true, cairo)
	scheduled := MonthWindow(now, false, cairo)
	if !manual.Start.Equal(scheduled.End.AddDate(0, 0, 1)) {
		t.Fatalf("manual start %s should be the day after scheduled end %s", manual.Start, scheduled.End)
	}
}
