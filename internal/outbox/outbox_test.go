package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plately-client/internal/api"
	"plately-client/internal/database"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQueue(db.SQL)
}

func TestQueue(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)

	cmd, err := q.Enqueue(ctx, "like_recipe", map[string]string{"recipe_id": "r1"})
	require.NoError(t, err)
	assert.NotEmpty(t, cmd.ID)
	assert.Equal(t, StatusPending, cmd.Status)

	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "like_recipe", pending[0].Kind)

	n, err := q.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, q.MarkDone(ctx, cmd.ID))
	n, err = q.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, q.Prune(ctx, 0))
	pending, err = q.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDispatcherDo(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessSettlesCommand", func(t *testing.T) {
		q := newTestQueue(t)
		d := NewDispatcher(q, zap.NewNop())
		applied := false
		require.NoError(t, d.Register("like", func(ctx context.Context, payload json.RawMessage) error {
			return nil
		}))

		err := d.Do(ctx, "like", map[string]string{"recipe_id": "r1"},
			func() { applied = true }, nil)
		require.NoError(t, err)
		assert.True(t, applied, "optimistic mutation must apply immediately")

		n, _ := q.PendingCount(ctx)
		assert.Zero(t, n)
	})

	t.Run("PermanentFailureRollsBack", func(t *testing.T) {
		q := newTestQueue(t)
		d := NewDispatcher(q, zap.NewNop())
		require.NoError(t, d.Register("like", func(ctx context.Context, payload json.RawMessage) error {
			return &api.APIError{StatusCode: http.StatusForbidden, Message: "blocked"}
		}))

		applied, rolledBack := false, false
		err := d.Do(ctx, "like", map[string]string{"recipe_id": "r1"},
			func() { applied = true }, func() { rolledBack = true })
		require.Error(t, err)
		assert.True(t, applied)
		assert.True(t, rolledBack, "4xx rejection must roll the local state back")

		n, _ := q.PendingCount(ctx)
		assert.Zero(t, n, "rejected command must not stay pending")
	})

	t.Run("TransientFailureStaysPending", func(t *testing.T) {
		q := newTestQueue(t)
		d := NewDispatcher(q, zap.NewNop())
		require.NoError(t, d.Register("like", func(ctx context.Context, payload json.RawMessage) error {
			return errors.New("connection refused")
		}))

		rolledBack := false
		err := d.Do(ctx, "like", map[string]string{"recipe_id": "r1"},
			nil, func() { rolledBack = true })
		require.NoError(t, err, "transient failure is not surfaced, the command waits")
		assert.False(t, rolledBack)

		pending, _ := q.Pending(ctx)
		require.Len(t, pending, 1)
		assert.Equal(t, 1, pending[0].Attempts)
		assert.Contains(t, pending[0].LastError, "connection refused")
	})

	t.Run("UnknownKind", func(t *testing.T) {
		d := NewDispatcher(newTestQueue(t), zap.NewNop())
		err := d.Do(ctx, "nope", nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestDispatcherFlush(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)
	d := NewDispatcher(q, zap.NewNop())

	var calls []string
	failing := true
	require.NoError(t, d.Register("mark_read", func(ctx context.Context, payload json.RawMessage) error {
		var p struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(payload, &p))
		if failing {
			return errors.New("offline")
		}
		calls = append(calls, p.ID)
		return nil
	}))

	// Two mutations made while offline.
	require.NoError(t, d.Do(ctx, "mark_read", map[string]string{"id": "n1"}, nil, nil))
	require.NoError(t, d.Do(ctx, "mark_read", map[string]string{"id": "n2"}, nil, nil))

	n, _ := q.PendingCount(ctx)
	require.Equal(t, 2, n)

	// Back online: flush replays in enqueue order.
	failing = false
	require.NoError(t, d.Flush(ctx))
	assert.Equal(t, []string{"n1", "n2"}, calls)

	n, _ = q.PendingCount(ctx)
	assert.Zero(t, n)
}

func TestFlushStopsOnTransientFailure(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)
	d := NewDispatcher(q, zap.NewNop())

	attempts := 0
	require.NoError(t, d.Register("step", func(ctx context.Context, payload json.RawMessage) error {
		attempts++
		return errors.New("still offline")
	}))

	require.NoError(t, d.Do(ctx, "step", map[string]string{"id": "a"}, nil, nil))
	require.NoError(t, d.Do(ctx, "step", map[string]string{"id": "b"}, nil, nil))
	attempts = 0

	require.NoError(t, d.Flush(ctx))
	assert.Equal(t, 1, attempts, "flush must stop at the first transient failure to preserve order")

	n, _ := q.PendingCount(ctx)
	assert.Equal(t, 2, n)
}

func TestPruneKeepsPending(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)

	_, err := q.Enqueue(ctx, "k", map[string]string{})
	require.NoError(t, err)
	done, err := q.Enqueue(ctx, "k", map[string]string{})
	require.NoError(t, err)
	require.NoError(t, q.MarkDone(ctx, done.ID))

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, q.Prune(ctx, 0))

	n, err := q.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "prune must never remove pending commands")
}
