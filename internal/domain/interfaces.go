package domain

import (
	"context"
	"time"
)

// Sender delivers a plain-text message to a chat. Implementations must keep
// one payload per call atomic; overlapping report runs rely on that.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ChannelResolver returns metadata for the target channel. Production
// implementations are expected to consult a cache before hitting the network.
type ChannelResolver interface {
	Resolve(ctx context.Context, chatID int64) (ChannelInfo, error)
}

// HistoryStore is the message archive backing history queries. Reports rescan
// the requested window in full on every run; nothing derived is persisted.
type HistoryStore interface {
	SaveMessage(ctx context.Context, msg Message) error
	// ListBetween returns all archived messages of the chat with
	// from <= SentAt < to, in no guaranteed order.
	ListBetween(ctx context.Context, chatID int64, from, to time.Time) ([]Message, error)
}

// Cache is a simple TTL store, also used as a once-per-key guard.
type Cache interface {
	// Once runs fn if the key was not set yet and sets it for ttl. A failed
	// fn releases the key again.
	Once(key string, ttl time.Duration, fn func() error) error
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
}

// ReportQueue carries report jobs from schedulers and the command handler to
// the worker.
type ReportQueue interface {
	Enqueue(ctx context.Context, job ReportJob) error
	// Pop blocks until a job is available or ctx is done.
	Pop(ctx context.Context) (ReportJob, error)
}
