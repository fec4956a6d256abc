package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"plately-client/internal/app"
	"plately-client/internal/config"
	"plately-client/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	application, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ok, err := application.Restore(ctx)
	if err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}
	if !ok {
		log.Fatal("No stored session. Sign in with `plately login` before starting the relay.")
	}

	relay, err := telegram.NewRelay(cfg, application.Inbox, application.Metrics, logger)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram relay: %v", err)
	}

	logger.Info("notification relay running",
		zap.Int("poll_seconds", cfg.NotifyPollSeconds),
		zap.Int64("chat_id", cfg.TelegramChatID))

	if err := relay.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Relay stopped: %v", err)
	}
	logger.Info("relay exiting")
}
