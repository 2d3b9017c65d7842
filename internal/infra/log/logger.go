package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a configured zerolog logger. An unknown level falls back
// to info rather than failing startup.
func NewLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(parsed)
}
