// @title        Sociopedia API
// @version      1.0
// @description  Social network backend: registration, login, profiles, friends and posts.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sociopedia/server/internal/api"
	"github.com/sociopedia/server/internal/api/handler"
	"github.com/sociopedia/server/internal/api/middleware"
	"github.com/sociopedia/server/internal/core/ports"
	"github.com/sociopedia/server/internal/core/service"
	"github.com/sociopedia/server/internal/infrastructure/config"
	mongodb "github.com/sociopedia/server/internal/infrastructure/db/mongo"
	redisdb "github.com/sociopedia/server/internal/infrastructure/db/redis"
	"github.com/sociopedia/server/internal/infrastructure/storage"
	"github.com/sociopedia/server/internal/infrastructure/token"
	"github.com/sociopedia/server/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sociopedia: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "sociopedia-api",
		Env:     cfg.Env,
	})
	if cfg.WeakSecret() {
		log.Warn().Int("min_length", config.MinSecretLength).Msg("JWT_SECRET is shorter than recommended")
	}
	if cfg.Auth.ExposePasswordHash {
		log.Warn().Msg("AUTH_EXPOSE_PASSWORD_HASH is on: register responses include the password hash")
	}

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	pingers := map[string]handler.Pinger{"mongodb": mongodb.Pinger{DB: db}}

	// --- Redis (optional) ---
	var limiter middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		pingers["redis"] = redisdb.Pinger{Client: rdb}
		if cfg.Auth.RateLimit > 0 {
			limiter = redisdb.NewFixedWindowLimiter(rdb, cfg.Auth.RateLimit, cfg.Auth.RateWindow)
			log.Info().Int("limit", cfg.Auth.RateLimit).Dur("window", cfg.Auth.RateWindow).Msg("auth rate limiting enabled")
		}
	} else if cfg.Auth.RateLimit > 0 {
		log.Warn().Msg("AUTH_RATE_LIMIT set without REDIS_ADDR; rate limiting disabled")
	}

	// --- Picture storage ---
	files, assetsDir, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Services ---
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)

	e, err := api.NewRouter(api.Dependencies{
		Auth:               service.NewAuthService(users, tokens, cfg.Auth.BcryptCost, logger.Component("auth")),
		Users:              service.NewUserService(users, logger.Component("users")),
		Posts:              service.NewPostService(posts, users, logger.Component("posts")),
		Tokens:             tokens,
		Storage:            files,
		AssetsDir:          assetsDir,
		Limiter:            limiter,
		Pingers:            pingers,
		Registerer:         prometheus.DefaultRegisterer,
		Gatherer:           prometheus.DefaultGatherer,
		ExposePasswordHash: cfg.Auth.ExposePasswordHash,
		BodyLimit:          cfg.HTTP.BodyLimit,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		Log:                logger.Component("http"),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("shutdown complete")
	return nil
}

// newStorage picks the picture backend. The returned directory is served
// under /assets and is empty for S3.
func newStorage(ctx context.Context, cfg *config.Config) (ports.FileStorage, string, error) {
	switch cfg.Storage.Driver {
	case storage.DriverS3:
		s, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:       cfg.Storage.S3Bucket,
			Region:       cfg.Storage.S3Region,
			Endpoint:     cfg.Storage.S3Endpoint,
			AccessKey:    cfg.Storage.S3AccessKey,
			SecretKey:    cfg.Storage.S3SecretKey,
			PublicURL:    cfg.Storage.S3PublicURL,
			UsePathStyle: cfg.Storage.S3UsePathStyle,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	default:
		l, err := storage.NewLocal(cfg.Storage.AssetsDir)
		if err != nil {
			return nil, "", err
		}
		return l, l.Dir(), nil
	}
}
