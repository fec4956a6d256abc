package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status of a queued command.
const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Command is one enqueued backend mutation. The local state change has
// already been applied by the time the command is stored.
type Command struct {
	ID        string
	Kind      string
	Payload   json.RawMessage
	Status    string
	Attempts  int
	LastError string
	CreatedAt time.Time
}

// Queue is the SQLite-backed command store. Commands survive restarts, so
// a mutation made offline is retried on the next launch.
type Queue struct {
	db *sql.DB
}

// NewQueue creates a queue over an existing database connection.
func NewQueue(db *sql.DB) *Queue {
	return &Queue{db: db}
}

// Enqueue stores a new pending command and returns it.
func (q *Queue) Enqueue(ctx context.Context, kind string, payload interface{}) (*Command, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command payload: %w", err)
	}

	cmd := &Command{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   data,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	_, err = q.db.ExecContext(ctx,
		`INSERT INTO sync_outbox (id, kind, payload, status, attempts, last_error, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, '', ?, ?)`,
		cmd.ID, cmd.Kind, string(cmd.Payload), cmd.Status, cmd.CreatedAt, cmd.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue command: %w", err)
	}
	return cmd, nil
}

// Pending returns pending commands in enqueue order.
func (q *Queue) Pending(ctx context.Context) ([]Command, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, kind, payload, status, attempts, last_error, created_at
		 FROM sync_outbox WHERE status = ? ORDER BY created_at`, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending commands: %w", err)
	}
	defer rows.Close()

	var cmds []Command
	for rows.Next() {
		var cmd Command
		var payload string
		if err := rows.Scan(&cmd.ID, &cmd.Kind, &payload, &cmd.Status, &cmd.Attempts, &cmd.LastError, &cmd.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		cmd.Payload = json.RawMessage(payload)
		cmds = append(cmds, cmd)
	}
	return cmds, rows.Err()
}

// PendingCount returns the number of commands still waiting to sync.
func (q *Queue) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_outbox WHERE status = ?`, StatusPending).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending commands: %w", err)
	}
	return n, nil
}

// MarkDone settles a command after a successful backend call.
func (q *Queue) MarkDone(ctx context.Context, id string) error {
	return q.setStatus(ctx, id, StatusDone, "")
}

// MarkFailed settles a command the backend permanently rejected.
func (q *Queue) MarkFailed(ctx context.Context, id string, cause string) error {
	return q.setStatus(ctx, id, StatusFailed, cause)
}

// RecordAttempt keeps a command pending but notes the failed try.
func (q *Queue) RecordAttempt(ctx context.Context, id string, cause string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE sync_outbox SET attempts = attempts + 1, last_error = ?, updated_at = ? WHERE id = ?`,
		cause, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to record attempt for command %s: %w", id, err)
	}
	return nil
}

func (q *Queue) setStatus(ctx context.Context, id, status, lastError string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE sync_outbox SET status = ?, last_error = ?, updated_at = ? WHERE id = ?`,
		status, lastError, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update command %s: %w", id, err)
	}
	return nil
}

// Prune removes settled commands older than the given age.
func (q *Queue) Prune(ctx context.Context, olderThan time.Duration) error {
	threshold := time.Now().UTC().Add(-olderThan)
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM sync_outbox WHERE status != ? AND updated_at < ?`, StatusPending, threshold)
	if err != nil {
		return fmt.Errorf("failed to prune settled commands: %w", err)
	}
	return nil
}
