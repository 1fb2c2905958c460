// Package app wires the notekeep server runtime: config, logging, storage,
// HTTP routes, and the session janitor.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"notekeep/cmd/identity"
	authapi "notekeep/cmd/internal/auth/api"
	"notekeep/cmd/internal/auth/session"
	"notekeep/cmd/internal/note"

	"github.com/jackc/pgx/v5/pgxpool"
	bolt "go.etcd.io/bbolt"
)

// Closer is a small app-level lifecycle abstraction so storage resources can
// be closed gracefully regardless of backend.
type Closer interface {
	Close(ctx context.Context) error
}

// App owns the HTTP server wiring and the storage backend lifecycle.
type App struct {
	cfg Config
	log Logger

	storage Closer

	dbPool    *pgxpool.Pool
	dbEnabled bool

	metrics  *Metrics
	sessions *session.Service
	auth     *authapi.Handler
	notes    *note.Handler
}

// stores groups the three persistence interfaces behind one backend choice.
type stores struct {
	users    identity.Store
	sessions session.Store
	notes    note.Store
}

// New constructs a fully wired App instance from config and logger.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	st, closer, dbPool, dbEnabled, err := newStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		closer.Close(ctx)
		return nil, err
	}
	sessions := session.NewService(sessCfg, st.sessions)

	authCfg := authapi.LoadConfigFromEnv()
	auth := authapi.NewHandler(log, authCfg, st.users, sessions)
	notes := note.NewHandler(log, st.notes, sessions, authCfg.CookieName, authCfg.MaxBodyBytes)

	var metrics *Metrics
	if cfg.MetricsEnabled {
		metrics = NewMetrics()
	}

	return &App{
		cfg:       cfg,
		log:       log,
		storage:   closer,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		metrics:   metrics,
		sessions:  sessions,
		auth:      auth,
		notes:     notes,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error. The session janitor runs for the same lifetime.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.auth, a.notes)

	var handler http.Handler = mux
	handler = WithMetrics(handler, a.metrics)
	handler = WithSecurityHeaders(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithRequestLogging(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go a.runJanitor(janitorCtx)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.storage.Close(shutdownCtx); err != nil {
		a.log.Error("storage.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

// runJanitor reaps expired session rows on a fixed interval. Tokens become
// unusable the moment they expire; the janitor only reclaims storage.
func (a *App) runJanitor(ctx context.Context) {
	interval := a.sessions.PurgeInterval()
	if interval <= 0 {
		a.log.Info("session.janitor.disabled")
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := a.sessions.PurgeExpired(ctx, time.Now().UTC())
			if err != nil {
				if ctx.Err() == nil {
					a.log.Error("session.janitor.fail", "err", err)
				}
				continue
			}
			if n > 0 {
				a.metrics.ObservePurged(n)
				a.log.Info("session.janitor.purged", "rows", n)
			}
		}
	}
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newStores picks the storage backend: Postgres when a URL is configured,
// otherwise an embedded bbolt file.
func newStores(ctx context.Context, cfg Config, log Logger) (stores, Closer, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		db, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return stores{}, nil, nil, false, err
		}

		users, err := identity.NewBoltStore(db)
		if err != nil {
			_ = db.Close()
			return stores{}, nil, nil, false, err
		}
		sess, err := session.NewBoltStore(db)
		if err != nil {
			_ = db.Close()
			return stores{}, nil, nil, false, err
		}
		notes, err := note.NewBoltStore(db)
		if err != nil {
			_ = db.Close()
			return stores{}, nil, nil, false, err
		}

		log.Info("storage.bolt", "path", cfg.BoltPath)
		return stores{users: users, sessions: sess, notes: notes}, boltStorage{db: db}, nil, false, nil
	}

	if err := RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return stores{}, nil, nil, false, err
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return stores{}, nil, nil, false, err
	}

	users, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, nil, nil, false, err
	}

	log.Info("storage.postgres")
	return stores{
		users:    users,
		sessions: session.NewPostgresStore(pool),
		notes:    note.NewPostgresStore(pool),
	}, pgStorage{pool: pool}, pool, true, nil
}

type pgStorage struct {
	pool *pgxpool.Pool
}

func (s pgStorage) Close(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

type boltStorage struct {
	db *bolt.DB
}

func (s boltStorage) Close(_ context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
