// Package app wires the tourist guide together: storage backend, stores,
// catalog, services, HTTP router and background workers. main only loads
// configuration, builds an App and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tourist-guide/internal/catalog"
	"github.com/pkordes/tourist-guide/internal/config"
	"github.com/pkordes/tourist-guide/internal/handler"
	"github.com/pkordes/tourist-guide/internal/metrics"
	"github.com/pkordes/tourist-guide/internal/middleware"
	"github.com/pkordes/tourist-guide/internal/repo"
	"github.com/pkordes/tourist-guide/internal/service"
	"github.com/pkordes/tourist-guide/internal/share"
	"github.com/pkordes/tourist-guide/internal/store"
	"github.com/pkordes/tourist-guide/spec"
)

const shutdownTimeout = 15 * time.Second

// App is a fully wired server.
type App struct {
	cfg    config.Config
	logger *slog.Logger

	// Handler serves the whole HTTP surface, middleware included.
	Handler http.Handler
	Metrics *metrics.Collector

	catalog *catalog.Source
	sharer  *share.Async
	closers []func()
}

// New builds an App from cfg. Stores are rehydrated from the configured
// backend before New returns; a snapshot that cannot be read is logged and
// the store starts empty.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger, Metrics: metrics.NewCollector()}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
	}
	a.catalog = catalog.NewSource(cat)

	slot, err := a.openSlot(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}
	slot = a.Metrics.InstrumentSlot(slot)

	var savedSlot repo.SlotRepo
	if cfg.PersistSavedPlaces {
		savedSlot = slot
	}
	saved := store.NewSavedPlaces(savedSlot)
	diary := store.NewDiary(slot, idGenerator(cfg.IDStrategy))
	if err := saved.Load(ctx); err != nil {
		logger.Warn("saved places not restored, starting empty", "error", err)
	}
	if err := diary.Load(ctx); err != nil {
		logger.Warn("diary not restored, starting empty", "error", err)
	}
	logger.Info("stores loaded", "backend", cfg.StorageBackend, "saved_places", saved.Len(), "diary_entries", diary.Len())
	a.Metrics.TrackSize("saved_places", "Saved places held in memory", saved.Len)
	a.Metrics.TrackSize("diary_entries", "Diary entries held in memory", diary.Len)

	var base share.Sharer = share.LogSharer{Logger: logger}
	if cfg.ShareWebhookURL != "" {
		base = share.NewWebhookSharer(cfg.ShareWebhookURL, nil)
	}
	a.sharer = share.NewAsync(base, logger, a.Metrics.ObserveShare)

	policy := service.PersistPolicy{Strict: cfg.PersistStrict, Logger: logger}
	srv := handler.NewServer(
		service.NewPlaceService(a.catalog, saved, a.sharer, logger),
		service.NewSavedService(a.catalog, saved, policy, a.sharer, logger),
		service.NewDiaryService(a.catalog, diary, policy, a.sharer, logger),
		service.NewExportService(diary, saved),
	)
	a.Handler = a.router(srv)
	return a, nil
}

// router applies middleware in order: RequestID → RealIP → Logger →
// Recoverer → CORS → Metrics → RateLimit → MaxBodySize.
func (a *App) router(srv *handler.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(a.cfg.CORSOrigins))
	r.Use(middleware.NewMetricsHandler(a.Metrics))
	r.Use(middleware.NewRateLimitHandler(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst))
	r.Use(middleware.NewMaxBodySizeHandler(a.cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck
		w.Write(spec.OpenAPI)
	})
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	return handler.HandlerFromMux(srv, r)
}

// openSlot opens the persistence slot for the configured backend and
// registers whatever needs closing on shutdown.
func (a *App) openSlot(ctx context.Context) (repo.SlotRepo, error) {
	switch a.cfg.StorageBackend {
	case config.BackendMemory:
		a.logger.Warn("memory storage backend: nothing survives a restart")
		return repo.NewMemorySlotRepo(), nil

	case config.BackendFile:
		return repo.NewFileSlotRepo(a.cfg.DataDir), nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(a.cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite dir: %w", err)
		}
		r, err := repo.OpenSQLite(ctx, a.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = r.Close() })
		return r, nil

	case config.BackendPostgres:
		// pgxpool.New does not open connections; Ping verifies the DB is
		// reachable before accepting traffic.
		pool, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create database pool: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()
		if err := repo.Migrate(ctx, db, goose.DialectPostgres); err != nil {
			return nil, err
		}
		a.logger.Info("database connection established")
		return repo.NewPostgresSlotRepo(pool), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", a.cfg.StorageBackend)
}

func idGenerator(strategy string) store.IDGenerator {
	if strategy == config.IDStrategyClock {
		return store.NewClockGenerator(nil)
	}
	return store.UUIDGenerator{}
}

// Run serves HTTP on cfg.Port, and watches the catalog file when configured,
// until ctx is cancelled or a component fails. In-flight requests get
// shutdownTimeout to finish and pending share deliveries are awaited.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if a.cfg.CatalogWatch && a.cfg.CatalogPath != "" {
		g.Go(func() error {
			return a.catalog.Watch(gctx, a.cfg.CatalogPath, a.logger)
		})
	}

	err := g.Wait()
	a.sharer.Wait()
	if err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

// Close releases the storage backend. It is safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
