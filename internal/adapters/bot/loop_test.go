package bot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tg-standup-bot/internal/domain"
)

func testConfig() domain.Config {
	loc, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		panic(err)
	}
	return domain.Config{
		ChannelID:             100,
		UserIDs:               []int64{1, 2},
		Location:              loc,
		DailyReminderTime:     domain.WallClock{Hour: 16},
		WeeklyReportTime:      domain.WallClock{Hour: 20},
		WeeklyReportWeekday:   time.Thursday,
		MonthlyReportTime:     domain.WallClock{Hour: 20},
		WeeklyReportCommand:   "!weekly_report",
		MonthlyReportCommand:  "!monthly_report",
		ManualReminderCommand: "!daily_reminder",
		UpdatePattern:         regexp.MustCompile(`(?i)\bupdates?\b`),
	}
}

type memoryQueue struct {
	jobs []domain.ReportJob
}

func (q *memoryQueue) Enqueue(_ context.Context, job domain.ReportJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memoryQueue) Pop(ctx context.Context) (domain.ReportJob, error) {
	<-ctx.Done()
	return domain.ReportJob{}, ctx.Err()
}

type onceCache struct {
	keys map[string]struct{}
}

func (c *onceCache) Once(key string, _ time.Duration, fn func() error) error {
	if c.keys == nil {
		c.keys = make(map[string]struct{})
	}
	if _, ok := c.keys[key]; ok {
		return nil
	}
	if err := fn(); err != nil {
		return err
	}
	c.keys[key] = struct{}{}
	return nil
}

func (c *onceCache) Set(string, []byte, time.Duration) error { return nil }
func (c *onceCache) Get(string) ([]byte, error)              { return nil, nil }

type recordingHistory struct {
	saved []domain.Message
}

func (h *recordingHistory) SaveMessage(_ context.Context, msg domain.Message) error {
	h.saved = append(h.saved, msg)
	return nil
}

func (h *recordingHistory) ListBetween(context.Context, int64, time.Time, time.Time) ([]domain.Message, error) {
	return nil, nil
}

type recordingReporter struct {
	reminders int
	weekly    []domain.ReportCause
	monthly   []domain.ReportCause
}

func (r *recordingReporter) SendDailyReminder(context.Context) error {
	r.reminders++
	return nil
}

func (r *recordingReporter) SendWeeklyReport(_ context.Context, cause domain.ReportCause) error {
	r.weekly = append(r.weekly, cause)
	return nil
}

func (r *recordingReporter) SendMonthlyReport(_ context.Context, cause domain.ReportCause) error {
	r.monthly = append(r.monthly, cause)
	return nil
}

func newTestLoop(queue *memoryQueue, cache *onceCache, history *recordingHistory, reporter *recordingReporter) *Loop {
	return NewLoop(testConfig(), reporter, queue, cache, history, 12*time.Hour, zerolog.Nop())
}

func TestHandleMessageArchivesChannelMessages(t *testing.T) {
	queue := &memoryQueue{}
	history := &recordingHistory{}
	loop := newTestLoop(queue, &onceCache{}, history, &recordingReporter{})

	loop.HandleMessage(context.Background(), domain.Message{ChatID: 100, AuthorID: 1, Text: "daily update"})
	loop.HandleMessage(context.Background(), domain.Message{ChatID: 100, AuthorID: 9, IsBot: true, Text: "bot noise"})
	loop.HandleMessage(context.Background(), domain.Message{ChatID: 200, AuthorID: 1, Text: "other chat"})

	if len(history.saved) != 2 {
		t.Fatalf("expected 2 archived messages (bot included, other chat not), got %d", len(history.saved))
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("plain updates must not enqueue jobs")
	}
}

func TestHandleMessageCommands(t *testing.T) {
	queue := &memoryQueue{}
	loop := newTestLoop(queue, &onceCache{}, &recordingHistory{}, &recordingReporter{})
	ctx := context.Background()

	loop.HandleMessage(ctx, domain.Message{ChatID: 100, AuthorID: 1, Text: "  !Weekly_Report "})
	loop.HandleMessage(ctx, domain.Message{ChatID: 100, AuthorID: 1, Text: "!monthly_report"})
	loop.HandleMessage(ctx, domain.Message{ChatID: 100, AuthorID: 1, Text: "!DAILY_REMINDER"})

	if len(queue.jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(queue.jobs))
	}
	wantKinds := []domain.ReportKind{domain.KindWeeklyReport, domain.KindMonthlyReport, domain.KindDailyReminder}
	for i, want := range wantKinds {
		if queue.jobs[i].Kind != want {
			t.Fatalf("job %d: expected %s, got %s", i, want, queue.jobs[i].Kind)
		}
		if queue.jobs[i].Cause != domain.CauseManual {
			t.Fatalf("job %d: commands are manual triggers", i)
		}
		if queue.jobs[i].ID == "" {
			t.Fatalf("job %d: missing id", i)
		}
	}
}

func TestHandleMessageIgnoresBotCommands(t *testing.T) {
	queue := &memoryQueue{}
	loop := newTestLoop(queue, &onceCache{}, &recordingHistory{}, &recordingReporter{})

	loop.HandleMessage(context.Background(), domain.Message{ChatID: 100, AuthorID: 9, IsBot: true, Text: "!weekly_report"})

	if len(queue.jobs) != 0 {
		t.Fatalf("bot authors must not trigger commands")
	}
}

func TestEnqueueScheduledOncePerDay(t *testing.T) {
	queue := &memoryQueue{}
	loop := newTestLoop(queue, &onceCache{}, &recordingHistory{}, &recordingReporter{})
	fixed := time.Date(2024, 3, 6, 20, 0, 0, 0, loop.cfg.Location)
	loop.now = func() time.Time { return fixed }
	ctx := context.Background()

	loop.enqueueScheduled(ctx, domain.KindWeeklyReport)
	loop.enqueueScheduled(ctx, domain.KindWeeklyReport)
	loop.enqueueScheduled(ctx, domain.KindMonthlyReport)

	if len(queue.jobs) != 2 {
		t.Fatalf("expected the duplicate weekly fire to be absorbed, got %d jobs", len(queue.jobs))
	}
	if queue.jobs[0].Cause != domain.CauseScheduled {
		t.Fatalf("scheduler jobs carry the scheduled cause")
	}
}

func TestExecuteDispatch(t *testing.T) {
	reporter := &recordingReporter{}
	loop := newTestLoop(&memoryQueue{}, &onceCache{}, &recordingHistory{}, reporter)
	ctx := context.Background()

	loop.execute(ctx, domain.ReportJob{Kind: domain.KindDailyReminder, Cause: domain.CauseManual})
	loop.execute(ctx, domain.ReportJob{Kind: domain.KindWeeklyReport, Cause: domain.CauseScheduled})
	loop.execute(ctx, domain.ReportJob{Kind: domain.KindMonthlyReport, Cause: domain.CauseManual})

	if reporter.reminders != 1 {
		t.Fatalf("expected 1 reminder, got %d", reporter.reminders)
	}
	if len(reporter.weekly) != 1 || reporter.weekly[0] != domain.CauseScheduled {
		t.Fatalf("unexpected weekly calls: %v", reporter.weekly)
	}
	if len(reporter.monthly) != 1 || reporter.monthly[0] != domain.CauseManual {
		t.Fatalf("unexpected monthly calls: %v", reporter.monthly)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := newTestLoop(&memoryQueue{}, &onceCache{}, &recordingHistory{}, &recordingReporter{})

	loop.Start(ctx)
	loop.Start(ctx) // duplicate ready signal
	cancel()
}
