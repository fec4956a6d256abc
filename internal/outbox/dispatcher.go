package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"plately-client/internal/api"
)

// HandlerFunc performs the backend call for one command kind.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// Dispatcher applies optimistic mutations: the local change happens first,
// the backend call is enqueued, and a failure either rolls the change back
// (permanent rejection) or leaves the command pending for retry (transient
// failure). This upgrades the fire-and-forget behavior the product started
// with without changing what the user sees on the happy path.
type Dispatcher struct {
	queue    *Queue
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher over a queue.
func NewDispatcher(queue *Queue, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		queue:    queue,
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register installs the handler for a command kind. Registering a kind
// twice is a programming error.
func (d *Dispatcher) Register(kind string, h HandlerFunc) error {
	if _, exists := d.handlers[kind]; exists {
		return fmt.Errorf("handler already registered for command kind %s", kind)
	}
	d.handlers[kind] = h
	return nil
}

// Do runs one optimistic mutation. apply is invoked immediately; rollback
// (optional) is invoked only when the backend permanently rejects the
// command. The returned error is nil when the mutation is settled or left
// pending for retry.
func (d *Dispatcher) Do(ctx context.Context, kind string, payload interface{}, apply func(), rollback func()) error {
	handler, ok := d.handlers[kind]
	if !ok {
		return fmt.Errorf("no handler registered for command kind %s", kind)
	}

	if apply != nil {
		apply()
	}

	cmd, err := d.queue.Enqueue(ctx, kind, payload)
	if err != nil {
		return err
	}

	err = handler(ctx, cmd.Payload)
	if err == nil {
		return d.queue.MarkDone(ctx, cmd.ID)
	}

	if isPermanent(err) {
		d.logger.Warn("optimistic mutation rejected, rolling back",
			zap.String("kind", kind), zap.String("command_id", cmd.ID), zap.Error(err))
		if rollback != nil {
			rollback()
		}
		if markErr := d.queue.MarkFailed(ctx, cmd.ID, err.Error()); markErr != nil {
			return markErr
		}
		return err
	}

	// Transient failure: keep the local mutation and the pending command.
	d.logger.Info("optimistic mutation pending retry",
		zap.String("kind", kind), zap.String("command_id", cmd.ID), zap.Error(err))
	return d.queue.RecordAttempt(ctx, cmd.ID, err.Error())
}

// Flush retries every pending command in order. Transient failures stop
// the flush so ordering is preserved; permanent rejections are settled as
// failed and skipped.
func (d *Dispatcher) Flush(ctx context.Context) error {
	pending, err := d.queue.Pending(ctx)
	if err != nil {
		return err
	}

	for _, cmd := range pending {
		handler, ok := d.handlers[cmd.Kind]
		if !ok {
			d.logger.Warn("pending command with unknown kind", zap.String("kind", cmd.Kind))
			continue
		}

		err := handler(ctx, cmd.Payload)
		switch {
		case err == nil:
			if err := d.queue.MarkDone(ctx, cmd.ID); err != nil {
				return err
			}
		case isPermanent(err):
			if err := d.queue.MarkFailed(ctx, cmd.ID, err.Error()); err != nil {
				return err
			}
		default:
			if err := d.queue.RecordAttempt(ctx, cmd.ID, err.Error()); err != nil {
				return err
			}
			return nil
		}
	}
	return nil
}

// isPermanent reports whether the backend definitively rejected the
// command. A 4xx application error will not succeed on retry; transport
// failures and 5xx responses might.
func isPermanent(err error) bool {
	if apiErr, ok := err.(*api.APIError); ok {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
			apiErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}
