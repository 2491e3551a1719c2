package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"usersvc/internal/app/user"
	"usersvc/internal/cache"
	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/db/repository"
	"usersvc/internal/http/handlers/health"
	userhandler "usersvc/internal/http/handlers/user"
	"usersvc/internal/http/router"
	"usersvc/internal/kafka"
	"usersvc/internal/logging"
	"usersvc/internal/telemetry"
)

const (
	shutdownTimeout  = 15 * time.Second
	telemetryTimeout = 10 * time.Second
	tracerName       = "usersvc/users"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceEnv,
		cfg.Log.Level,
	)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if err := run(ctx, stop, cfg, logger); err != nil {
		logger.Error("service terminated", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger logging.Logger) error {
	logger.Info("starting service", "env", cfg.Environment)

	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	// ensure we flush / shut down exporter on exit
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// Postgres
	dbClient, err := db.NewClient(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.Postgres.Migrate {
		n, err := dbClient.Migrate()
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("database migrated", "applied", n)
	}

	// Redis
	var (
		userCache   cache.UserCache = cache.NoopUserCache{}
		cachePinger health.Pinger
	)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		userCache = cache.NewUserCache(redisClient, cfg.Cache.TombstoneTTL)
		cachePinger = redisClient
	}

	// Kafka bus (Watermill)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("init kafka bus: %w", err)
	}
	defer func() {
		if err := closeBus(context.Background()); err != nil {
			logger.Error("failed to close kafka bus", "error", err)
		}
	}()

	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, userCache, logger)
	if err != nil {
		return fmt.Errorf("init kafka router: %w", err)
	}
	defer func() {
		if err := kafkaRouter.Close(context.Background()); err != nil {
			logger.Error("failed to close kafka router", "error", err)
		}
	}()

	// Repositories & services
	userService := user.NewTracingService(
		user.NewService(
			repository.NewUserRepository(dbClient, logger),
			userCache,
			dbClient, // db.Transactor
			kafka.NewUserEvents(bus, cfg.Kafka, logger),
			logger,
			user.WithCacheTTL(cfg.Cache.TTL),
		),
		otel.Tracer(tracerName),
	)

	httpRouter := router.NewRouter(
		router.Options{
			Logger:         logger,
			ServiceName:    cfg.Observability.ServiceName,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			Metrics:        router.NewMetrics("users"),
		},
		health.NewHandler(dbClient, cachePinger, logger),
		userhandler.NewHandler(userService, logger),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           otelhttp.NewHandler(httpRouter, cfg.Observability.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// HTTP server and Kafka router run side by side.
	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		logger.Info("kafka router starting", "enabled", cfg.Kafka.Enabled)
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- fmt.Errorf("kafka router: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case runErr = <-errCh:
		logger.Error("fatal error from subsystem", "error", runErr)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
	return runErr
}
