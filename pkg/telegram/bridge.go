package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/purujawa06-bot/BOT-WEB/pkg/chat"
	"github.com/purujawa06-bot/BOT-WEB/pkg/logger"
)

// Bridge routes Telegram messages through the conversation dispatcher and
// replies with whatever Bot messages the command appended. It is a thin
// second surface over the same core the TUI uses; the transcript stays
// single-conversation (a non-goal to shard per chat).
type Bridge struct {
	bot        *Bot
	dispatcher *chat.Dispatcher
	transcript *chat.Transcript
	log        *logger.Logger
}

// NewBridge wires a bot to the dispatcher.
func NewBridge(bot *Bot, d *chat.Dispatcher, t *chat.Transcript, log *logger.Logger) *Bridge {
	if log == nil {
		log = logger.Nop()
	}
	return &Bridge{bot: bot, dispatcher: d, transcript: t, log: log}
}

// Start begins handling incoming messages until ctx is cancelled.
func (br *Bridge) Start(ctx context.Context) {
	br.bot.Start(ctx, func(u Update) {
		go br.handle(ctx, u)
	})
}

func (br *Bridge) handle(ctx context.Context, u Update) {
	br.bot.SendTyping(u.ChatID)

	mark := br.transcript.Len()

	var err error
	if _, pending := br.dispatcher.Pending(); pending {
		err = br.dispatcher.SupplyParameter(ctx, u.Text)
		if errors.Is(err, chat.ErrNoPending) {
			err = br.dispatcher.Submit(ctx, u.Text)
		}
	} else {
		err = br.dispatcher.Submit(ctx, u.Text)
	}

	switch {
	case errors.Is(err, chat.ErrBusy):
		_ = br.bot.SendMessage(u.ChatID, "Masih memproses perintah sebelumnya, coba lagi sebentar.")
		return
	case errors.Is(err, chat.ErrEmptyInput), errors.Is(err, chat.ErrEmptyParameter):
		return
	case err != nil:
		br.log.Warn("telegram dispatch failed: %v", err)
		return
	}

	// A parameter request has no transcript output; prompt for the value.
	if cmd, ok := br.dispatcher.Pending(); ok {
		_ = br.bot.SendMessage(u.ChatID, fmt.Sprintf("Perintah %s membutuhkan parameter. Kirim parameternya sekarang.", cmd.Token))
		return
	}

	for _, msg := range br.transcript.Messages()[mark:] {
		if msg.Sender != chat.SenderBot {
			continue
		}
		if err := br.bot.SendMessage(u.ChatID, formatReply(msg)); err != nil {
			br.log.Warn("telegram send failed: %v", err)
		}
	}
}

// formatReply renders a Bot message, including media links, as Telegram text.
func formatReply(msg chat.Message) string {
	if msg.Media == nil {
		return msg.Text
	}
	var b strings.Builder
	if msg.Media.Title != "" {
		b.WriteString(msg.Media.Title)
		b.WriteString("\n")
	}
	if msg.Media.AuthorName != "" {
		b.WriteString("oleh ")
		b.WriteString(msg.Media.AuthorName)
		b.WriteString("\n")
	}
	if msg.Media.VideoURL != "" {
		b.WriteString("Video: ")
		b.WriteString(msg.Media.VideoURL)
		b.WriteString("\n")
	}
	if msg.Media.VideoHDURL != "" {
		b.WriteString("Video (HD): ")
		b.WriteString(msg.Media.VideoHDURL)
		b.WriteString("\n")
	}
	if msg.Media.AudioURL != "" {
		b.WriteString("Audio: ")
		b.WriteString(msg.Media.AudioURL)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
