package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"plately-client/internal/api"
	"plately-client/internal/config"
	"plately-client/internal/database"
	"plately-client/internal/notify"
	"plately-client/internal/outbox"
)

type memTokens struct{ token string }

func (m *memTokens) AuthToken(_ context.Context) (string, error)      { return m.token, nil }
func (m *memTokens) SetAuthToken(_ context.Context, tok string) error { m.token = tok; return nil }
func (m *memTokens) ClearAuthToken(_ context.Context) error           { m.token = ""; return nil }

type fakeBot struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func newTestRelay(t *testing.T, handler http.HandlerFunc) (*Relay, *fakeBot) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	client := api.NewClient(server.URL, &memTokens{token: "tok"}, zap.NewNop())
	queue := outbox.NewQueue(db.SQL)
	inbox, err := notify.NewInbox(client, outbox.NewDispatcher(queue, zap.NewNop()))
	if err != nil {
		t.Fatalf("Failed to build inbox: %v", err)
	}

	bot := &fakeBot{}
	relay := &Relay{
		bot:     bot,
		inbox:   inbox,
		cfg:     &config.Config{TelegramChatID: 42, NotifyPollSeconds: 60},
		logger:  zap.NewNop(),
		relayed: make(map[string]struct{}),
	}
	return relay, bot
}

const notificationsPayload = `{"notifications": [
	{"id": "n1", "type": "like", "user": {"username": "ana"}, "read": false},
	{"id": "n2", "type": "follow", "user": {"username": "bob"}, "read": false},
	{"id": "n3", "type": "comment", "user": {"username": "cleo"}, "read": true}
]}`

func TestPollForwardsUnreadOnce(t *testing.T) {
	relay, bot := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/notifications" && r.Method == "GET" {
			fmt.Fprintln(w, notificationsPayload)
			return
		}
		t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	ctx := context.Background()
	relay.poll(ctx)

	if len(bot.sent) != 2 {
		t.Fatalf("Expected 2 relayed messages, got %d", len(bot.sent))
	}
	for _, msg := range bot.sent {
		if msg.ChatID != 42 {
			t.Errorf("Expected chat ID 42, got %d", msg.ChatID)
		}
	}

	// A second poll must not resend the same notifications.
	relay.poll(ctx)
	if len(bot.sent) != 2 {
		t.Errorf("Expected no duplicates after second poll, got %d messages", len(bot.sent))
	}
}

func TestReadAllCommand(t *testing.T) {
	relay, bot := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/notifications" && r.Method == "GET":
			fmt.Fprintln(w, notificationsPayload)
		case r.URL.Path == "/notifications/read-all" && r.Method == "PUT":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	relay.poll(ctx)
	bot.sent = nil

	msg := &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 42},
		Text:     "/readall",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 8}},
	}
	relay.handleCommand(ctx, msg)

	if len(bot.sent) != 1 {
		t.Fatalf("Expected 1 reply, got %d", len(bot.sent))
	}
	if relay.inbox.UnreadCount() != 0 {
		t.Errorf("Expected 0 unread after /readall, got %d", relay.inbox.UnreadCount())
	}
}

func TestIgnoresUnknownChat(t *testing.T) {
	relay, bot := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	msg := &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 99},
		Text:     "/readall",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 8}},
	}
	relay.handleCommand(context.Background(), msg)

	if len(bot.sent) != 0 {
		t.Errorf("Expected no reply to unknown chat, got %d messages", len(bot.sent))
	}
}

func TestFormatNotification(t *testing.T) {
	n := api.Notification{
		ID:      "n1",
		Type:    api.NotifyLike,
		User:    api.User{Username: "ana"},
		Recipe:  &api.Recipe{Title: "Carbonara"},
		Content: "",
	}

	got := formatNotification(n)
	want := "🔔 *ana* liked your recipe: _Carbonara_"
	if got != want {
		t.Errorf("formatNotification() = %q, want %q", got, want)
	}
}
