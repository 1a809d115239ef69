// Package app wires configuration, storage and services into a runnable
// admin-auth instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/admin-auth/internal/api"
	"github.com/99minutos/admin-auth/internal/api/handler"
	"github.com/99minutos/admin-auth/internal/core/ports"
	"github.com/99minutos/admin-auth/internal/core/service"
	mongorepo "github.com/99minutos/admin-auth/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/admin-auth/internal/infrastructure/db/redis"
	"github.com/99minutos/admin-auth/internal/infrastructure/security"
	"github.com/99minutos/admin-auth/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// App holds the long-lived resources of one process.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *mongo.Client
	redis  *goredis.Client
	tokens *security.JWTService

	Auth ports.AuthService
}

// New connects to MongoDB (and Redis when configured), makes sure the admin
// indexes exist and builds the auth service.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	tokens, err := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("db", cfg.Mongo.Database).Msg("connected to mongodb")

	repo := mongorepo.NewAdminRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if rdb == nil {
		log.Info().Msg("redis disabled")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	return &App{
		cfg:    cfg,
		log:    log,
		client: client,
		redis:  rdb,
		tokens: tokens,
		Auth:   service.NewAuthService(repo, hasher, tokens, log),
	}, nil
}

// Handler builds the HTTP router for this instance.
func (a *App) Handler() http.Handler {
	deps := api.Dependencies{
		Log:         a.log,
		BasePath:    a.cfg.APIBasePath,
		AuthService: a.Auth,
		Tokens:      a.tokens,
		Mongo:       a.client,
	}
	// Leave the interface nil so readiness reports redis as disabled.
	if a.redis != nil {
		deps.Redis = handler.RedisPinger(a.redis)
	}
	return api.NewRouter(deps)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the storage connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.client.Disconnect(ctx))
	return errors.Join(errs...)
}
