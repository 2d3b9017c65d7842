package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tg-standup-bot/internal/domain"
	"tg-standup-bot/internal/infra/metrics"
	"tg-standup-bot/internal/usecase/schedule"
)

// Service builds and delivers reminders and period reports. Every run is
// self-contained: it resolves the channel, rescans the archive for the whole
// window, aggregates and sends. No state survives between runs, so
// overlapping runs are safe. The full-window rescan is a deliberate
// simplicity trade-off; the archive query is a single indexed range scan.
type Service struct {
	cfg      domain.Config
	history  domain.HistoryStore
	sender   domain.Sender
	resolver domain.ChannelResolver
	mention  MentionFunc
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates the report service.
func NewService(cfg domain.Config, history domain.HistoryStore, sender domain.Sender, resolver domain.ChannelResolver, mention MentionFunc, log zerolog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		history:  history,
		sender:   sender,
		resolver: resolver,
		mention:  mention,
		log:      log,
		now:      time.Now,
	}
}

// SendDailyReminder posts the update reminder, mentioning every tracked user.
func (s *Service) SendDailyReminder(ctx context.Context) error {
	channel, err := s.resolve(ctx)
	if err != nil {
		return err
	}
	if err := s.sender.SendText(ctx, channel.ID, s.reminderText()); err != nil {
		metrics.SendErrors.Inc()
		return fmt.Errorf("send reminder: %w", err)
	}
	metrics.RemindersSent.Inc()
	s.log.Info().Msg("daily reminder sent")
	return nil
}

// SendWeeklyReport builds and posts the week-to-date report.
func (s *Service) SendWeeklyReport(ctx context.Context, cause domain.ReportCause) error {
	window := schedule.WeekWindow(s.now(), s.cfg.Location)
	return s.sendPeriodReport(ctx, domain.KindWeeklyReport, cause, weeklyReportTitle, window)
}

// SendMonthlyReport builds and posts the monthly report. A manual cause
// reports the in-progress month, a scheduled one the closed previous month.
func (s *Service) SendMonthlyReport(ctx context.Context, cause domain.ReportCause) error {
	window := schedule.MonthWindow(s.now(), cause == domain.CauseManual, s.cfg.Location)
	return s.sendPeriodReport(ctx, domain.KindMonthlyReport, cause, monthlyReportTitle, window)
}

func (s *Service) sendPeriodReport(ctx context.Context, kind domain.ReportKind, cause domain.ReportCause, title string, window domain.PeriodWindow) error {
	channel, err := s.resolve(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	from := window.Start
	to := window.End.AddDate(0, 0, 1)
	msgs, err := s.history.ListBetween(ctx, channel.ID, from, to)
	if err != nil {
		return fmt.Errorf("history scan %s to %s: %w", from.Format(dayKeyLayout), window.End.Format(dayKeyLayout), err)
	}

	agg := Aggregate(msgs, window, s.cfg)
	text := RenderPeriodReport(title, s.cfg, agg, window, s.mention)
	metrics.ObserveReportBuild(string(kind), string(cause), start, len(msgs))

	if err := s.sender.SendText(ctx, channel.ID, text); err != nil {
		metrics.SendErrors.Inc()
		return fmt.Errorf("send report: %w", err)
	}
	s.log.Info().
		Str("kind", string(kind)).
		Str("cause", string(cause)).
		Str("period", window.Label).
		Int("messages", len(msgs)).
		Int("updates", agg.TotalUpdates()).
		Msg("report sent")
	return nil
}

func (s *Service) resolve(ctx context.Context) (domain.ChannelInfo, error) {
	channel, err := s.resolver.Resolve(ctx, s.cfg.ChannelID)
	if err != nil {
		metrics.ChannelResolveErrors.Inc()
		return domain.ChannelInfo{}, fmt.Errorf("resolve channel %d: %w", s.cfg.ChannelID, err)
	}
	return channel, nil
}

func (s *Service) reminderText() string {
	mentions := make([]string, 0, len(s.cfg.UserIDs))
	for _, id := range s.cfg.UserIDs {
		mentions = append(mentions, s.mention(id))
	}
	return strings.Join(mentions, " ") + "\n" +
		"⏰ Daily Update Reminder\n\n" +
		"If you didn't write your update yet, please send it now."
}
