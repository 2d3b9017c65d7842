package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tg-standup-bot/internal/domain"
)

// Postgres implements the message archive on pgxpool. The archive is the
// production history-query capability: reports rescan it per window, nothing
// derived is stored.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ domain.HistoryStore = (*Postgres)(nil)

// NewPostgres creates the archive adapter.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

// SaveMessage archives one inbound message. Re-delivered updates are absorbed
// by the (chat_id, tg_message_id) key.
func (p *Postgres) SaveMessage(ctx context.Context, msg domain.Message) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	_, err := p.pool.Exec(ctx, `
		INSERT INTO messages (chat_id, tg_message_id, author_id, is_bot, text, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id, tg_message_id) DO NOTHING`,
		msg.ChatID, msg.TGMessageID, msg.AuthorID, msg.IsBot, msg.Text, msg.SentAt.UTC())
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// ListBetween returns the chat's archived messages with from <= sent_at < to.
// The scan is deliberately unbounded: the query stays a single range scan on
// the (chat_id, sent_at) index, however long the window.
func (p *Postgres) ListBetween(ctx context.Context, chatID int64, from, to time.Time) ([]domain.Message, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT chat_id, tg_message_id, author_id, is_bot, text, sent_at
		FROM messages
		WHERE chat_id = $1 AND sent_at >= $2 AND sent_at < $3`,
		chatID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ChatID, &m.TGMessageID, &m.AuthorID, &m.IsBot, &m.Text, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	return msgs, nil
}
