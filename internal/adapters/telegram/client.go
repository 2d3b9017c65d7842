package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"tg-standup-bot/internal/domain"
)

const chatCacheTTL = time.Hour

// Client is the production chat-platform adapter: it sends texts through the
// Bot API and resolves the target chat with a cache-then-fetch strategy.
type Client struct {
	api   *tgbotapi.BotAPI
	cache domain.Cache
	log   zerolog.Logger
}

var _ domain.Sender = (*Client)(nil)
var _ domain.ChannelResolver = (*Client)(nil)

// NewClient creates the adapter.
func NewClient(api *tgbotapi.BotAPI, cache domain.Cache, log zerolog.Logger) *Client {
	return &Client{api: api, cache: cache, log: log}
}

// SendText delivers a plain-text message, splitting it at the platform's
// size limit. Each chunk is one atomic Bot API call.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	for _, part := range SplitMessage(text) {
		if _, err := c.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// Resolve looks the chat up in the cache first and falls back to getChat.
func (c *Client) Resolve(ctx context.Context, chatID int64) (domain.ChannelInfo, error) {
	key := fmt.Sprintf("chat:%d", chatID)
	if raw, err := c.cache.Get(key); err == nil {
		var info domain.ChannelInfo
		if err := json.Unmarshal(raw, &info); err == nil {
			return info, nil
		}
	}

	chat, err := c.api.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: tgbotapi.ChatConfig{ChatID: chatID}})
	if err != nil {
		return domain.ChannelInfo{}, fmt.Errorf("fetch chat %d: %w", chatID, err)
	}
	info := domain.ChannelInfo{ID: chat.ID, Title: chat.Title}

	if raw, err := json.Marshal(info); err == nil {
		if err := c.cache.Set(key, raw, chatCacheTTL); err != nil {
			c.log.Debug().Err(err).Msg("chat cache write failed")
		}
	}
	return info, nil
}

// Mention returns the plain-text reference token for a tracked user.
func Mention(userID int64) string {
	return fmt.Sprintf("@%d", userID)
}
