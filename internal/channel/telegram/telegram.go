// Package telegram implements the Telegram user surface via the Bot API.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/logging"
)

// messageLimit is Telegram's maximum message length. Longer responses
// are sent in chunks.
const messageLimit = 4096

// Config holds the Telegram bot credentials.
type Config struct {
	Token string
}

// Channel is a long-polling Telegram bot surface.
type Channel struct {
	bot     *tgbotapi.BotAPI
	log     *logging.Logger
	mu      sync.Mutex
	handler func(msg domain.InboundMessage)
	cancel  context.CancelFunc
}

// New authenticates against the Bot API and returns the channel.
func New(cfg Config, log *logging.Logger) (*Channel, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	l := log.Sub("telegram")
	l.Info().Str("username", bot.Self.UserName).Msg("telegram bot authorized")
	return &Channel{bot: bot, log: l}, nil
}

func (c *Channel) ID() string { return "telegram" }

// OnMessage registers the inbound message handler.
func (c *Channel) OnMessage(handler func(msg domain.InboundMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Start runs the long-polling update loop until the context is
// canceled or Stop is called.
func (c *Channel) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.bot.GetUpdatesChan(u)

	c.log.Info().Msg("listening for telegram updates")
	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			c.dispatch(update.Message)
		}
	}
}

func (c *Channel) dispatch(m *tgbotapi.Message) {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	if handler == nil {
		c.log.Warn().Msg("no message handler, dropping update")
		return
	}

	chatType := domain.ChatTypeGroup
	if m.Chat.IsPrivate() {
		chatType = domain.ChatTypeDM
	}

	handler(domain.InboundMessage{
		ID:        strconv.Itoa(m.MessageID),
		ChannelID: c.ID(),
		From:      strconv.FormatInt(m.From.ID, 10),
		FromName:  m.From.UserName,
		ChatID:    strconv.FormatInt(m.Chat.ID, 10),
		ChatType:  chatType,
		Body:      m.Text,
		Timestamp: time.Unix(int64(m.Date), 0),
	})
}

// Stop cancels the update loop.
func (c *Channel) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

// Send delivers an outbound message, chunking at Telegram's length
// limit. Chat IDs on this channel are numeric.
func (c *Channel) Send(ctx context.Context, msg domain.OutboundMessage) error {
	chatID, err := strconv.ParseInt(msg.To, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id: %s", msg.To)
	}

	for _, part := range chunk(formatBody(msg), messageLimit) {
		out := tgbotapi.NewMessage(chatID, part)
		if _, err := c.bot.Send(out); err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
	}
	return nil
}

func formatBody(msg domain.OutboundMessage) string {
	if msg.Label != "" && !msg.Notice {
		return fmt.Sprintf("[%s]\n%s", msg.Label, msg.Body)
	}
	return msg.Body
}

func chunk(s string, limit int) []string {
	runes := []rune(s)
	if len(runes) <= limit {
		return []string{s}
	}
	var parts []string
	for i := 0; i < len(runes); i += limit {
		end := i + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[i:end]))
	}
	return parts
}
