// Package telegram provides an optional Telegram chat surface using the
// tgbotapi library. Incoming messages run through the same dispatcher as
// the terminal surface.
package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/purujawa06-bot/BOT-WEB/pkg/logger"
)

const maxMessageLen = 4000

// Bot wraps tgbotapi.BotAPI for Telegram communication.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
	mu     sync.Mutex
}

// Update is the subset of a Telegram update the bridge consumes.
type Update struct {
	ChatID int64
	Text   string
}

// NewBot validates the token via an API call and returns a ready Bot.
// Returns (nil, nil) when token is empty (Telegram not configured).
func NewBot(token string, log *logger.Logger) (*Bot, error) {
	if token == "" {
		return nil, nil
	}
	if log == nil {
		log = logger.Nop()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = false

	return &Bot{api: api, logger: log}, nil
}

// Start receives updates and dispatches each text message to handler. It
// returns immediately; polling stops when ctx is cancelled.
func (b *Bot) Start(ctx context.Context, handler func(Update)) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.logger.Info("telegram polling stopped")
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				if upd.Message == nil || upd.Message.Text == "" {
					continue
				}
				handler(Update{
					ChatID: upd.Message.Chat.ID,
					Text:   upd.Message.Text,
				})
			}
		}
	}()
}

// Stop terminates the long-polling connection.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a Markdown-formatted message. Messages longer than
// the Telegram limit are split; parse errors retry without formatting.
func (b *Bot) SendMessage(chatID int64, text string) error {
	if chatID == 0 || text == "" {
		return nil
	}
	for _, part := range splitText(text, maxMessageLen) {
		if err := b.sendSingleMessage(chatID, part); err != nil {
			return err
		}
	}
	return nil
}

// SendTyping sends a "typing..." indicator.
func (b *Bot) SendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	_, _ = b.api.Request(action)
}

func (b *Bot) sendSingleMessage(chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.api.Send(msg)
	if err != nil && isParseError(err) {
		b.logger.Warn("markdown parse error, retrying without formatting: %v", err)
		msg.ParseMode = ""
		_, err = b.api.Send(msg)
	}
	return err
}

func isParseError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "can't parse entities")
}

// splitText splits text into chunks of at most limit bytes, preferring
// newline boundaries.
func splitText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
