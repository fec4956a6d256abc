package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"plately-client/internal/api"
	"plately-client/internal/config"
	"plately-client/internal/metrics"
	"plately-client/internal/notify"
)

// botAPI is the subset of the Telegram client the relay uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Relay polls the notification inbox and forwards unseen notifications to a
// Telegram chat. It also accepts a couple of chat commands for managing the
// inbox remotely.
type Relay struct {
	bot          botAPI
	inbox        *notify.Inbox
	metricsStore *metrics.Store
	cfg          *config.Config
	logger       *zap.Logger

	// IDs already forwarded this process lifetime, to avoid duplicates
	// between polls.
	relayed map[string]struct{}
}

// NewRelay connects to the Telegram API and builds the relay.
func NewRelay(cfg *config.Config, inbox *notify.Inbox, metricsStore *metrics.Store, logger *zap.Logger) (*Relay, error) {
	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("telegram bot token not configured")
	}
	if cfg.TelegramChatID == 0 {
		return nil, fmt.Errorf("telegram chat ID not configured")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	return &Relay{
		bot:          bot,
		inbox:        inbox,
		metricsStore: metricsStore,
		cfg:          cfg,
		logger:       logger,
		relayed:      make(map[string]struct{}),
	}, nil
}

// Run polls the inbox on a fixed interval and listens for chat commands
// until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	interval := time.Duration(r.cfg.NotifyPollSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := r.bot.GetUpdatesChan(updateCfg)

	r.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.poll(ctx)
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			r.handleCommand(ctx, update.Message)
		}
	}
}

// poll refreshes the inbox and forwards any unread notifications that have
// not been relayed yet.
func (r *Relay) poll(ctx context.Context) {
	if err := r.inbox.Load(ctx); err != nil {
		r.logger.Warn("failed to refresh notifications", zap.Error(err))
		return
	}

	for _, n := range r.inbox.All() {
		if n.Read {
			continue
		}
		if _, done := r.relayed[n.ID]; done {
			continue
		}

		msg := tgbotapi.NewMessage(r.cfg.TelegramChatID, formatNotification(n))
		msg.ParseMode = "Markdown"
		if _, err := r.bot.Send(msg); err != nil {
			r.logger.Warn("failed to relay notification", zap.String("id", n.ID), zap.Error(err))
			continue
		}
		r.relayed[n.ID] = struct{}{}
	}
}

func (r *Relay) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat.ID != r.cfg.TelegramChatID {
		r.logger.Warn("ignoring message from unknown chat", zap.Int64("chat_id", msg.Chat.ID))
		return
	}

	switch msg.Command() {
	case "readall":
		reply := "✅ All notifications marked as read."
		if err := r.inbox.MarkAllRead(ctx); err != nil {
			reply = fmt.Sprintf("❌ Failed to mark notifications as read: %v", err)
		}
		r.reply(reply)
	case "unread":
		r.reply(fmt.Sprintf("🔔 %d unread notifications.", r.inbox.UnreadCount()))
	case "status":
		r.reply(r.statusReport(ctx))
	default:
		r.reply("Commands: /readall, /unread, /status")
	}
}

func (r *Relay) statusReport(ctx context.Context) string {
	var sb strings.Builder
	sb.WriteString("📊 *Status Report*\n\n")

	usage, err := r.metricsStore.GetDailyUsage(ctx, 7)
	if err != nil {
		sb.WriteString("_Failed to load request metrics_\n")
	} else if len(usage) == 0 {
		sb.WriteString("_No API activity yet_\n")
	} else {
		sb.WriteString("🗓 *Recent API Activity*\n")
		for _, d := range usage {
			sb.WriteString(fmt.Sprintf("• *%s*: %d requests, %d failures, avg %.0fms\n", d.Date, d.Requests, d.Failures, d.AvgLatencyMS))
		}
	}

	health := metrics.GetSysHealth(r.cfg.DataDir)
	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	return sb.String()
}

func (r *Relay) reply(text string) {
	msg := tgbotapi.NewMessage(r.cfg.TelegramChatID, text)
	msg.ParseMode = "Markdown"
	if _, err := r.bot.Send(msg); err != nil {
		r.logger.Warn("failed to send telegram reply", zap.Error(err))
	}
}

func formatNotification(n api.Notification) string {
	who := n.User.Username
	if who == "" {
		who = "Someone"
	}

	var action string
	switch n.Type {
	case api.NotifyLike:
		action = "liked your recipe"
	case api.NotifyComment:
		action = "commented on your recipe"
	case api.NotifyFollow:
		action = "started following you"
	case api.NotifySave:
		action = "saved your recipe"
	case api.NotifyMention:
		action = "mentioned you"
	case api.NotifyCookingSession:
		action = "started cooking your recipe"
	case api.NotifyShare:
		action = "shared your recipe"
	case api.NotifyRating:
		action = "rated your recipe"
	case api.NotifyCollection:
		action = "added your recipe to a collection"
	default:
		action = string(n.Type)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔔 *%s* %s", who, action))
	if n.Recipe != nil && n.Recipe.Title != "" {
		sb.WriteString(fmt.Sprintf(": _%s_", n.Recipe.Title))
	}
	if n.Content != "" {
		sb.WriteString(fmt.Sprintf("\n«%s»", n.Content))
	}
	return sb.String()
}
