package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"plately-client/internal/api"
	"plately-client/internal/cache"
	"plately-client/internal/clipper"
	"plately-client/internal/config"
	"plately-client/internal/database"
	"plately-client/internal/metrics"
	"plately-client/internal/notify"
	"plately-client/internal/outbox"
	"plately-client/internal/prefs"
	"plately-client/internal/session"
)

// App wires the client toolkit together: local storage, the API client,
// the session, and the optimistic mutation queue.
type App struct {
	Client  *api.Client
	Session *session.Manager
	Prefs   *prefs.Store
	Inbox   *notify.Inbox
	Queue   *outbox.Queue
	Clipper *clipper.Clipper
	Cache   *cache.Cache
	Metrics *metrics.Store

	cfg        *config.Config
	db         *database.DB
	dispatcher *outbox.Dispatcher
	logger     *zap.Logger
}

// New creates and initializes a new App instance. The data directory is
// created on first run.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.NewDB(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	prefsStore := prefs.NewStore(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	client := api.NewClient(cfg.APIBaseURL, prefsStore, logger, api.WithObserver(metricsStore))

	queue := outbox.NewQueue(db.SQL)
	dispatcher := outbox.NewDispatcher(queue, logger)

	inbox, err := notify.NewInbox(client, dispatcher)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build notification inbox: %w", err)
	}

	return &App{
		Client:     client,
		Session:    session.NewManager(prefsStore, logger),
		Prefs:      prefsStore,
		Inbox:      inbox,
		Queue:      queue,
		Clipper:    clipper.NewClipper(client),
		Cache:      cache.New(cfg.CachePath()),
		Metrics:    metricsStore,
		cfg:        cfg,
		db:         db,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

// Restore resumes the previous session if a usable token is stored. It
// returns true when the user is signed in afterwards.
func (a *App) Restore(ctx context.Context) (bool, error) {
	usable, err := a.Session.HasUsableToken(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to inspect stored token: %w", err)
	}
	if !usable {
		return false, nil
	}

	user, err := a.Client.Me(ctx)
	if err != nil {
		// A rejected token means the session is gone; anything else is a
		// connectivity problem and the caller decides what to do offline.
		if apiErr, ok := err.(*api.APIError); ok && apiErr.StatusCode == 401 {
			if clearErr := a.Prefs.ClearAuthToken(ctx); clearErr != nil {
				a.logger.Warn("failed to clear rejected token", zap.Error(clearErr))
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to restore session: %w", err)
	}

	a.Session.Login(*user, false)
	return true, nil
}

// Login signs the user in and records the session.
func (a *App) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := a.Client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.Session.Login(resp.User, false)
	return &resp.User, nil
}

// Logout signs out locally and tells the backend.
func (a *App) Logout(ctx context.Context) error {
	if err := a.Client.Logout(ctx); err != nil {
		a.logger.Warn("backend logout failed, clearing local session anyway", zap.Error(err))
	}
	return a.Session.Logout(ctx)
}

// Sync replays pending optimistic mutations and drops expired cache
// entries. Safe to call on every startup.
func (a *App) Sync(ctx context.Context) error {
	a.Cache.Sweep()
	if err := a.dispatcher.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush pending commands: %w", err)
	}
	return a.Queue.Prune(ctx, 30*24*time.Hour)
}
