package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"plately-client/internal/api"
	"plately-client/internal/outbox"
)

// Command kinds the inbox enqueues.
const (
	kindMarkRead      = "notification_mark_read"
	kindMarkAllRead   = "notification_mark_all_read"
	kindDelete        = "notification_delete"
	kindDeleteAllRead = "notification_delete_read"
)

type idPayload struct {
	ID string `json:"id"`
}

// Inbox holds the local copy of the notification list and applies read and
// delete mutations optimistically through the sync dispatcher.
type Inbox struct {
	mu    sync.Mutex
	items []api.Notification

	client     *api.Client
	dispatcher *outbox.Dispatcher
}

// NewInbox creates the inbox and registers its command handlers.
func NewInbox(client *api.Client, dispatcher *outbox.Dispatcher) (*Inbox, error) {
	inbox := &Inbox{client: client, dispatcher: dispatcher}

	handlers := map[string]outbox.HandlerFunc{
		kindMarkRead: func(ctx context.Context, payload json.RawMessage) error {
			var p idPayload
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			return client.MarkNotificationRead(ctx, p.ID)
		},
		kindMarkAllRead: func(ctx context.Context, _ json.RawMessage) error {
			return client.MarkAllNotificationsRead(ctx)
		},
		kindDelete: func(ctx context.Context, payload json.RawMessage) error {
			var p idPayload
			if err := json.Unmarshal(payload, &p); err != nil {
				return err
			}
			return client.DeleteNotification(ctx, p.ID)
		},
		kindDeleteAllRead: func(ctx context.Context, _ json.RawMessage) error {
			return client.DeleteReadNotifications(ctx)
		},
	}
	for kind, h := range handlers {
		if err := dispatcher.Register(kind, h); err != nil {
			return nil, fmt.Errorf("failed to register inbox handler: %w", err)
		}
	}
	return inbox, nil
}

// Load replaces the local list with the backend's.
func (in *Inbox) Load(ctx context.Context) error {
	items, err := in.client.Notifications(ctx)
	if err != nil {
		return err
	}
	in.mu.Lock()
	in.items = items
	in.mu.Unlock()
	return nil
}

// All returns a copy of the local notification list.
func (in *Inbox) All() []api.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]api.Notification, len(in.items))
	copy(out, in.items)
	return out
}

// UnreadCount returns the number of locally unread notifications.
func (in *Inbox) UnreadCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	n := 0
	for _, item := range in.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead flips one notification to read locally, then syncs.
func (in *Inbox) MarkRead(ctx context.Context, id string) error {
	return in.dispatcher.Do(ctx, kindMarkRead, idPayload{ID: id},
		func() { in.setRead(id, true) },
		func() { in.setRead(id, false) })
}

// MarkAllRead flips the whole inbox to read locally, then syncs. On a
// permanent rejection the previous read flags are restored.
func (in *Inbox) MarkAllRead(ctx context.Context) error {
	var wasUnread []string
	return in.dispatcher.Do(ctx, kindMarkAllRead, struct{}{},
		func() {
			in.mu.Lock()
			defer in.mu.Unlock()
			for i := range in.items {
				if !in.items[i].Read {
					wasUnread = append(wasUnread, in.items[i].ID)
					in.items[i].Read = true
				}
			}
		},
		func() {
			for _, id := range wasUnread {
				in.setRead(id, false)
			}
		})
}

// Delete removes a notification locally, then syncs. A permanent rejection
// puts it back.
func (in *Inbox) Delete(ctx context.Context, id string) error {
	var removed *api.Notification
	var removedAt int
	return in.dispatcher.Do(ctx, kindDelete, idPayload{ID: id},
		func() {
			in.mu.Lock()
			defer in.mu.Unlock()
			for i := range in.items {
				if in.items[i].ID == id {
					n := in.items[i]
					removed, removedAt = &n, i
					in.items = append(in.items[:i], in.items[i+1:]...)
					return
				}
			}
		},
		func() {
			if removed == nil {
				return
			}
			in.mu.Lock()
			defer in.mu.Unlock()
			if removedAt > len(in.items) {
				removedAt = len(in.items)
			}
			in.items = append(in.items[:removedAt], append([]api.Notification{*removed}, in.items[removedAt:]...)...)
		})
}

// DeleteRead removes every read notification locally, then syncs.
func (in *Inbox) DeleteRead(ctx context.Context) error {
	var removed []api.Notification
	return in.dispatcher.Do(ctx, kindDeleteAllRead, struct{}{},
		func() {
			in.mu.Lock()
			defer in.mu.Unlock()
			var kept []api.Notification
			for _, item := range in.items {
				if item.Read {
					removed = append(removed, item)
				} else {
					kept = append(kept, item)
				}
			}
			in.items = kept
		},
		func() {
			in.mu.Lock()
			defer in.mu.Unlock()
			in.items = append(in.items, removed...)
		})
}

func (in *Inbox) setRead(id string, read bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		if in.items[i].ID == id {
			in.items[i].Read = read
			return
		}
	}
}
