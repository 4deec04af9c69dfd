// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rennsz/landing/internal/config"
	"github.com/rennsz/landing/internal/handler"
	"github.com/rennsz/landing/internal/logging"
	"github.com/rennsz/landing/internal/middleware"
	"github.com/rennsz/landing/internal/session"
	"github.com/rennsz/landing/internal/store"
	"github.com/rennsz/landing/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	migrateOnly := flag.Bool("migrate", false, "Run database migrations and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "landing - streamer landing page API server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_SESSION_SECRET  Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_STORAGE         sqlite|postgres|memory (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_DB_PATH         SQLite database path (default: ./data/landing.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_DATABASE_URL    PostgreSQL DSN (falls back to DATABASE_URL)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_SESSION_STORE   database|redis|memory (default: database)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_REDIS_URL       Redis URL for the redis session store\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_ADMIN_PASSWORD  Password for the bootstrap admin account\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_SERVER_PORT     Server port (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LANDING_ENV             Environment: development|production (default: development)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info, *migrateOnly); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info, migrateOnly bool) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())
	slog.SetDefault(logger)
	slog.Info("starting landing", info.LogAttrs()...)

	ctx := context.Background()

	repo, db, dialect, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()
	}
	if migrateOnly {
		slog.Info("migrations complete")
		return nil
	}

	if err := store.EnsureAdmin(ctx, repo, cfg.AdminPassword); err != nil {
		return fmt.Errorf("bootstrapping admin: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDefaults(ctx, repo); err != nil {
			return fmt.Errorf("seeding defaults: %w", err)
		}
	}

	st, closeStore, err := openSessionStore(ctx, cfg, db, dialect)
	if err != nil {
		return err
	}
	defer closeStore()

	sm := session.New(st, cfg.IsDevelopment())
	r := newRouter(cfg, repo, sm, info.Version)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openStorage opens and migrates the configured repository. db is nil for
// in-memory storage.
func openStorage(ctx context.Context, cfg *config.Config) (store.Repository, *sql.DB, store.Dialect, error) {
	if cfg.Storage == config.StorageMemory {
		slog.Warn("using in-memory storage; content is lost on restart")
		return store.NewMemory(), nil, "", nil
	}

	dialect, err := store.ParseDialect(cfg.Storage)
	if err != nil {
		return nil, nil, "", err
	}

	if dialect == store.DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, "", fmt.Errorf("creating data directory: %w", err)
		}
		slog.Info("initializing database", "dialect", dialect, "path", cfg.DBPath)
	} else {
		slog.Info("initializing database", "dialect", dialect)
	}

	db, err := store.Open(ctx, dialect, cfg.StorageTarget())
	if err != nil {
		return nil, nil, "", fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, "", fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	return store.New(db, dialect), db, dialect, nil
}

// openSessionStore returns the configured scs store and a function that
// releases its resources.
func openSessionStore(ctx context.Context, cfg *config.Config, db *sql.DB, dialect store.Dialect) (scs.Store, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("using redis session store")
		return session.NewRedisStore(client, session.DefaultRedisPrefix), func() {
			if err := client.Close(); err != nil {
				slog.Error("error closing redis client", "error", err)
			}
		}, nil
	case config.SessionStoreMemory:
		slog.Info("using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	default:
		st := session.NewDatabaseStore(db, dialect)
		return st, func() {
			if c, ok := st.(interface{ StopCleanup() }); ok {
				c.StopCleanup()
			}
		}, nil
	}
}

// newRouter builds the HTTP handler tree.
func newRouter(cfg *config.Config, repo store.Repository, sm *scs.SessionManager, appVersion string) *chi.Mux {
	isDev := cfg.IsDevelopment()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestPath)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	secCfg := middleware.DefaultSecurityHeadersConfig(isDev)
	secCfg.ExcludePaths = []string{"/metrics"}
	r.Use(middleware.SecurityHeaders(secCfg))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins))
	}
	r.Use(sm.LoadAndSave)

	csrf := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.CORSOrigins, isDev))
	handler.New(repo, sm).Routes(r, csrf)

	health := handler.NewHealthHandler(repo, appVersion)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
