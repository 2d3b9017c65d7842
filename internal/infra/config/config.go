package config

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"tg-standup-bot/internal/domain"
)

// defaultUpdatePattern matches "update"/"updates"/"daily update(s)" as whole
// words anywhere in the text.
const defaultUpdatePattern = `\b(daily\W*updates?|updates?)\b`

// AppConfig is the raw environment view of the configuration. Everything is a
// string here; Parse turns it into the typed, validated domain.Config.
type AppConfig struct {
	BotToken  string `envconfig:"BOT_TOKEN"`
	ChannelID string `envconfig:"CHANNEL_ID"`
	UserIDs   string `envconfig:"USER_IDS"`
	Timezone  string `envconfig:"TIMEZONE" default:"Africa/Cairo"`

	DailyReminderTime   string `envconfig:"DAILY_REMINDER_TIME" default:"16:00"`
	WeeklyReportTime    string `envconfig:"WEEKLY_REPORT_TIME" default:"20:00"`
	WeeklyReportWeekday string `envconfig:"WEEKLY_REPORT_WEEKDAY" default:"thursday"`
	MonthlyReportTime   string `envconfig:"MONTHLY_REPORT_TIME" default:"20:00"`

	WeeklyReportCommand   string `envconfig:"WEEKLY_REPORT_COMMAND" default:"!weekly_report"`
	MonthlyReportCommand  string `envconfig:"MONTHLY_REPORT_COMMAND" default:"!monthly_report"`
	ManualReminderCommand string `envconfig:"MANUAL_REMINDER_COMMAND" default:"!daily_reminder"`

	UpdateMessagePattern string `envconfig:"UPDATE_MESSAGE_PATTERN"`

	OneUpdatePerDay   string `envconfig:"ONE_UPDATE_PER_DAY" default:"false"`
	RankReport        string `envconfig:"RANK_REPORT" default:"false"`
	IncludeMissedDays string `envconfig:"INCLUDE_MISSED_DAYS" default:"false"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":9090"`

	PGDSN     string `envconfig:"PG_DSN"`
	RedisAddr string `envconfig:"REDIS_ADDR"`

	ReportQueueKey string        `envconfig:"REPORT_QUEUE_KEY" default:"report_jobs"`
	OnceTTL        time.Duration `envconfig:"ONCE_TTL" default:"12h"`
}

// Load reads the environment.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Parse validates the raw values and builds the immutable bot configuration.
// Any malformed field is an error; callers treat it as fatal before any
// network connection is attempted.
func (a AppConfig) Parse() (domain.Config, error) {
	token := strings.TrimSpace(a.BotToken)
	if token == "" {
		return domain.Config{}, fmt.Errorf("BOT_TOKEN is required")
	}

	channelID, err := parseInt64(a.ChannelID, "CHANNEL_ID")
	if err != nil {
		return domain.Config{}, err
	}

	userIDs, err := parseUserIDs(a.UserIDs)
	if err != nil {
		return domain.Config{}, err
	}

	tzName := strings.TrimSpace(a.Timezone)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return domain.Config{}, fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}

	daily, err := parseWallClock(a.DailyReminderTime, "DAILY_REMINDER_TIME")
	if err != nil {
		return domain.Config{}, err
	}
	weekly, err := parseWallClock(a.WeeklyReportTime, "WEEKLY_REPORT_TIME")
	if err != nil {
		return domain.Config{}, err
	}
	monthly, err := parseWallClock(a.MonthlyReportTime, "MONTHLY_REPORT_TIME")
	if err != nil {
		return domain.Config{}, err
	}
	weekday, err := parseWeekday(a.WeeklyReportWeekday)
	if err != nil {
		return domain.Config{}, err
	}

	weeklyCmd, err := normalizeCommand(a.WeeklyReportCommand, "WEEKLY_REPORT_COMMAND")
	if err != nil {
		return domain.Config{}, err
	}
	monthlyCmd, err := normalizeCommand(a.MonthlyReportCommand, "MONTHLY_REPORT_COMMAND")
	if err != nil {
		return domain.Config{}, err
	}
	reminderCmd, err := normalizeCommand(a.ManualReminderCommand, "MANUAL_REMINDER_COMMAND")
	if err != nil {
		return domain.Config{}, err
	}

	rawPattern := strings.TrimSpace(a.UpdateMessagePattern)
	if rawPattern == "" {
		rawPattern = defaultUpdatePattern
	}
	pattern, err := regexp.Compile("(?i)" + rawPattern)
	if err != nil {
		return domain.Config{}, fmt.Errorf("UPDATE_MESSAGE_PATTERN is invalid: %w", err)
	}

	return domain.Config{
		BotToken:              token,
		ChannelID:             channelID,
		UserIDs:               userIDs,
		TimezoneName:          tzName,
		Location:              loc,
		DailyReminderTime:     daily,
		WeeklyReportTime:      weekly,
		WeeklyReportWeekday:   weekday,
		MonthlyReportTime:     monthly,
		WeeklyReportCommand:   weeklyCmd,
		MonthlyReportCommand:  monthlyCmd,
		ManualReminderCommand: reminderCmd,
		UpdatePattern:         pattern,
		OneUpdatePerDay:       parseBool(a.OneUpdatePerDay),
		RankReport:            parseBool(a.RankReport),
		IncludeMissedDays:     parseBool(a.IncludeMissedDays),
	}, nil
}

func parseInt64(value, name string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", name, value, err)
	}
	return n, nil
}

func parseUserIDs(value string) ([]int64, error) {
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := parseInt64(trimmed, "USER_IDS item")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("USER_IDS is required")
	}
	return ids, nil
}

func parseWallClock(value, name string) (domain.WallClock, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return domain.WallClock{}, fmt.Errorf("%s must be in HH:MM format, got %q", name, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return domain.WallClock{}, fmt.Errorf("%s has invalid hour %q", name, parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return domain.WallClock{}, fmt.Errorf("%s has invalid minute %q", name, parts[1])
	}
	return domain.WallClock{Hour: hour, Minute: minute}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(value string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("WEEKLY_REPORT_WEEKDAY has unknown weekday %q", value)
	}
	return day, nil
}

func normalizeCommand(value, name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", fmt.Errorf("%s cannot be empty", name)
	}
	return normalized, nil
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
