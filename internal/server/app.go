// Package server wires the board server together: Postgres, the board
// cache, the archive, the gRPC endpoint and the HTTP health endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/server/archive"
	"github.com/dmitrijs2005/goalbingo/internal/server/cache"
	"github.com/dmitrijs2005/goalbingo/internal/server/config"
	gs "github.com/dmitrijs2005/goalbingo/internal/server/grpc"
	"github.com/dmitrijs2005/goalbingo/internal/server/health"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/goalbingo/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	grpc   *gs.GRPCServer
	http   *http.Server
}

// NewApp connects to Postgres, applies migrations and builds both
// endpoints. Redis and S3 are optional.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: cfg, logger: logger, db: db}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var boardCache cache.BoardCache = cache.NewMemoryCache(cfg.CacheTTL)
	if cfg.RedisURL != "" {
		app.redis, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			app.close()
			return nil, err
		}
		boardCache = cache.NewRedisCache(app.redis, cfg.CacheTTL)
	}

	var archiver services.Archiver
	if cfg.S3Bucket != "" {
		a, err := archive.NewS3Archiver(ctx, archive.Settings{
			User:     cfg.S3RootUser,
			Password: cfg.S3RootPassword,
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			app.close()
			return nil, err
		}
		archiver = a
	}

	us := services.NewUserService(db, rm, cfg)
	bs := services.NewBoardService(db, rm, boardCache, archiver, cfg.MaxBoards, logger)
	app.grpc = gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, us, bs, cfg.SecretKey)

	checks := map[string]health.Checker{"postgres": health.CheckerFunc(db.PingContext)}
	if app.redis != nil {
		rdb := app.redis
		checks["redis"] = health.CheckerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	app.http = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(logger, checks),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

func newRouter(logger logging.Logger, checks map[string]health.Checker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	return r
}

// Run serves gRPC and HTTP until ctx is done or either endpoint fails.
func (app *App) Run(ctx context.Context) error {
	defer app.close()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.grpc.Run(gctx)
	})

	g.Go(func() error {
		app.logger.Info(gctx, "Starting health endpoint", "address", app.http.Addr)
		if err := app.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.http.Shutdown(sctx)
	})

	return g.Wait()
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(context.Background(), "closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "closing db", "error", err)
	}
}
