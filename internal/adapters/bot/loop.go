package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tg-standup-bot/internal/domain"
	"tg-standup-bot/internal/infra/metrics"
	"tg-standup-bot/internal/usecase/report"
	"tg-standup-bot/internal/usecase/schedule"
)

// Reporter is the slice of the report service the loop drives.
type Reporter interface {
	SendDailyReminder(ctx context.Context) error
	SendWeeklyReport(ctx context.Context, cause domain.ReportCause) error
	SendMonthlyReport(ctx context.Context, cause domain.ReportCause) error
}

var _ Reporter = (*report.Service)(nil)

// Loop runs the three periodic tasks and the inbound command handler. The
// schedulers and the handler only enqueue jobs; a single worker executes
// them, so a slow history scan never blocks scheduling or command handling.
type Loop struct {
	cfg     domain.Config
	reports Reporter
	queue   domain.ReportQueue
	cache   domain.Cache
	history domain.HistoryStore
	onceTTL time.Duration
	log     zerolog.Logger
	now     func() time.Time

	startOnce sync.Once
}

// NewLoop creates the automation loop.
func NewLoop(cfg domain.Config, reports Reporter, queue domain.ReportQueue, cache domain.Cache, history domain.HistoryStore, onceTTL time.Duration, log zerolog.Logger) *Loop {
	return &Loop{
		cfg:     cfg,
		reports: reports,
		queue:   queue,
		cache:   cache,
		history: history,
		onceTTL: onceTTL,
		log:     log,
		now:     time.Now,
	}
}

// Start launches the worker and the three schedulers. It is safe to call more
// than once: reconnect-driven ready signals start the tasks exactly once.
func (l *Loop) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		go l.runWorker(ctx)
		go l.runScheduler(ctx, domain.KindDailyReminder, func(now time.Time) time.Duration {
			return schedule.UntilNextDaily(now, l.cfg.DailyReminderTime, l.cfg.Location)
		})
		go l.runScheduler(ctx, domain.KindWeeklyReport, func(now time.Time) time.Duration {
			return schedule.UntilNextWeekly(now, l.cfg.WeeklyReportTime, l.cfg.WeeklyReportWeekday, l.cfg.Location)
		})
		go l.runScheduler(ctx, domain.KindMonthlyReport, func(now time.Time) time.Duration {
			return schedule.UntilNextMonthly(now, l.cfg.MonthlyReportTime, l.cfg.Location)
		})
		l.log.Info().Msg("schedulers started")
	})
}

// HandleMessage processes one inbound message: archives it and reacts to the
// configured command phrases.
func (l *Loop) HandleMessage(ctx context.Context, msg domain.Message) {
	if msg.ChatID != l.cfg.ChannelID {
		return
	}

	if err := l.history.SaveMessage(ctx, msg); err != nil {
		metrics.ArchiveWriteErrors.Inc()
		l.log.Error().Err(err).Int("message_id", msg.TGMessageID).Msg("archive write failed")
	}

	if msg.IsBot {
		return
	}

	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case l.cfg.WeeklyReportCommand:
		l.enqueue(ctx, domain.KindWeeklyReport, domain.CauseManual)
	case l.cfg.MonthlyReportCommand:
		l.enqueue(ctx, domain.KindMonthlyReport, domain.CauseManual)
	case l.cfg.ManualReminderCommand:
		l.enqueue(ctx, domain.KindDailyReminder, domain.CauseManual)
	}
}

// runScheduler sleeps until the next occurrence, fires, and repeats. The wait
// is recomputed from scratch every cycle so the task never drifts.
func (l *Loop) runScheduler(ctx context.Context, kind domain.ReportKind, next func(time.Time) time.Duration) {
	for {
		wait := next(l.now())
		l.log.Debug().Str("kind", string(kind)).Dur("wait", wait).Msg("scheduler sleeping")
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		l.enqueueScheduled(ctx, kind)
	}
}

// enqueueScheduled guards the scheduled fire with a once-per-local-date key,
// so a restart or a second replica cannot double-post the same cycle.
func (l *Loop) enqueueScheduled(ctx context.Context, kind domain.ReportKind) {
	key := fmt.Sprintf("sched:%s:%s", kind, l.now().In(l.cfg.Location).Format("2006-01-02"))
	err := l.cache.Once(key, l.onceTTL, func() error {
		return l.queue.Enqueue(ctx, l.newJob(kind, domain.CauseScheduled))
	})
	if err != nil {
		l.log.Error().Err(err).Str("kind", string(kind)).Msg("scheduled enqueue failed")
	}
}

func (l *Loop) enqueue(ctx context.Context, kind domain.ReportKind, cause domain.ReportCause) {
	if err := l.queue.Enqueue(ctx, l.newJob(kind, cause)); err != nil {
		l.log.Error().Err(err).Str("kind", string(kind)).Msg("enqueue failed")
	}
}

func (l *Loop) newJob(kind domain.ReportKind, cause domain.ReportCause) domain.ReportJob {
	return domain.ReportJob{
		ID:          uuid.NewString(),
		Kind:        kind,
		Cause:       cause,
		RequestedAt: l.now().UTC(),
	}
}

// runWorker executes jobs one at a time. A failed job is logged and dropped;
// the schedulers naturally retry on their next cycle.
func (l *Loop) runWorker(ctx context.Context) {
	for {
		job, err := l.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Error().Err(err).Msg("queue pop failed")
			continue
		}
		l.execute(ctx, job)
	}
}

func (l *Loop) execute(ctx context.Context, job domain.ReportJob) {
	var err error
	switch job.Kind {
	case domain.KindDailyReminder:
		err = l.reports.SendDailyReminder(ctx)
	case domain.KindWeeklyReport:
		err = l.reports.SendWeeklyReport(ctx, job.Cause)
	case domain.KindMonthlyReport:
		err = l.reports.SendMonthlyReport(ctx, job.Cause)
	default:
		l.log.Warn().Str("kind", string(job.Kind)).Str("job", job.ID).Msg("unknown job kind")
		return
	}
	if err != nil {
		l.log.Error().Err(err).Str("kind", string(job.Kind)).Str("job", job.ID).Msg("job failed")
	}
}
