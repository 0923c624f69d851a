package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/purujawa06-bot/BOT-WEB/pkg/chat"
	"github.com/purujawa06-bot/BOT-WEB/pkg/config"
	"github.com/purujawa06-bot/BOT-WEB/pkg/ipinfo"
	"github.com/purujawa06-bot/BOT-WEB/pkg/logger"
	"github.com/purujawa06-bot/BOT-WEB/pkg/provider"
	"github.com/purujawa06-bot/BOT-WEB/pkg/telegram"
	"github.com/purujawa06-bot/BOT-WEB/pkg/tiktok"
	"github.com/purujawa06-bot/BOT-WEB/pkg/tui"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Robot AI v%s\n", version)
		return
	}

	cfg, cfgPath, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("starting Robot AI v%s (config: %s)", version, cfgPath)

	ai, err := buildResponder(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}

	ipOpts := []ipinfo.Option{}
	if cfg.IPEndpoint != "" {
		ipOpts = append(ipOpts, ipinfo.WithEndpoint(cfg.IPEndpoint))
	}
	ip := ipinfo.NewClient(ipOpts...)

	ttOpts := []tiktok.Option{}
	if cfg.TikTokEndpoint != "" {
		ttOpts = append(ttOpts, tiktok.WithEndpoint(cfg.TikTokEndpoint))
	}
	if cfg.TikTokAPIKey != "" {
		ttOpts = append(ttOpts, tiktok.WithAPIKey(cfg.TikTokAPIKey))
	}
	media := tiktok.NewClient(ttOpts...)

	transcript := chat.NewTranscript()
	transcript.Append(chat.SenderBot, chat.WelcomeText)

	registry := chat.NewRegistry(chat.DefaultCommands())
	dispatcher := chat.NewDispatcher(transcript, registry, ai, ip, media, appLog,
		chat.WithPingDelay(time.Duration(cfg.PingDelayMillis)*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, appLog)
		if err != nil {
			appLog.Error("telegram disabled: %v", err)
		} else if bot != nil {
			telegram.NewBridge(bot, dispatcher, transcript, appLog).Start(ctx)
			defer bot.Stop()
			appLog.Info("telegram surface started")
		}
	}

	program := tea.NewProgram(
		tui.New(cfg, appLog, dispatcher, transcript, registry),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		appLog.Error("tui exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildResponder picks the AI backend from config: the native Gemini SSE
// client, or gollm for every other provider name.
func buildResponder(cfg *config.Config) (provider.Responder, error) {
	if strings.EqualFold(cfg.Provider, "gemini") {
		opts := []provider.GeminiOption{provider.WithGeminiModel(cfg.Model)}
		if cfg.APIBaseURL != "" {
			opts = append(opts, provider.WithGeminiBaseURL(cfg.APIBaseURL))
		}
		return provider.NewGemini(cfg.APIKey, opts...), nil
	}
	return provider.NewGollm(cfg.Provider, cfg.APIKey, cfg.Model, cfg.APIBaseURL)
}
