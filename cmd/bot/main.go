package main

import (
	"context"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"tg-standup-bot/internal/adapters/bot"
	"tg-standup-bot/internal/adapters/repo"
	"tg-standup-bot/internal/adapters/telegram"
	"tg-standup-bot/internal/domain"
	"tg-standup-bot/internal/infra/cache"
	"tg-standup-bot/internal/infra/config"
	"tg-standup-bot/internal/infra/db"
	httpinfra "tg-standup-bot/internal/infra/http"
	applog "tg-standup-bot/internal/infra/log"
	"tg-standup-bot/internal/infra/metrics"
	"tg-standup-bot/internal/infra/queue"
	"tg-standup-bot/internal/usecase/report"
)

func main() {
	raw := config.Load()
	logger := applog.NewLogger(raw.LogLevel)

	cfg, err := raw.Parse()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpinfra.NewServer(logger.With().Str("component", "http").Logger()).Start(ctx, raw.HTTPAddr)

	pool, err := db.Connect(raw.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()
	archive := repo.NewPostgres(pool)

	redisClient := redis.NewClient(&redis.Options{Addr: raw.RedisAddr})
	defer redisClient.Close()
	cacheAdapter := cache.NewRedis(redisClient)
	jobQueue := queue.NewRedisReportQueue(redisClient, raw.ReportQueueKey)

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("bot api init failed")
	}
	tgClient := telegram.NewClient(botAPI, cacheAdapter, logger.With().Str("component", "telegram").Logger())

	reports := report.NewService(cfg, archive, tgClient, tgClient, telegram.Mention,
		logger.With().Str("component", "report").Logger())
	loop := bot.NewLoop(cfg, reports, jobQueue, cacheAdapter, archive, raw.OnceTTL,
		logger.With().Str("component", "loop").Logger())
	loop.Start(ctx)

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := botAPI.GetUpdatesChan(updateCfg)
	logger.Info().Str("bot", botAPI.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return
		case upd := <-updates:
			m := upd.Message
			if m == nil || m.From == nil || m.Chat == nil {
				continue
			}
			loop.HandleMessage(ctx, domain.Message{
				ChatID:      m.Chat.ID,
				TGMessageID: m.MessageID,
				AuthorID:    m.From.ID,
				IsBot:       m.From.IsBot,
				Text:        m.Text,
				SentAt:      m.Time(),
			})
		}
	}
}
