package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/storefront-api/config"
	"github.com/ErlanBelekov/storefront-api/internal/cleanup"
	"github.com/ErlanBelekov/storefront-api/internal/email"
	"github.com/ErlanBelekov/storefront-api/internal/health"
	"github.com/ErlanBelekov/storefront-api/internal/imagestore"
	"github.com/ErlanBelekov/storefront-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/storefront-api/internal/log"
	"github.com/ErlanBelekov/storefront-api/internal/metrics"
	"github.com/ErlanBelekov/storefront-api/internal/session"
	httptransport "github.com/ErlanBelekov/storefront-api/internal/transport/http"
	"github.com/ErlanBelekov/storefront-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/storefront-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		stop()
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	images, err := imagestore.NewS3Store(ctx, imagestore.Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		stop()
		log.Fatalf("image store: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	txm := postgres.NewTxManager(pool)

	sessions := session.NewRedisStore(rdb)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, txm, sessions, emailSender,
		[]byte(cfg.JWTSecret), cfg.JWTTTL, cfg.OTPTTL)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	userUsecase := usecase.NewUserUsecase(userRepo, txm, images, logger)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	inventoryUsecase := usecase.NewInventoryUsecase(inventoryRepo)
	inventoryHandler := handler.NewInventoryHandler(inventoryUsecase, logger)

	sweeper, err := cleanup.NewSweeper(userRepo, cfg.CleanupCron, cfg.OTPTTL, logger)
	if err != nil {
		stop()
		log.Fatalf("cleanup: %v", err)
	}
	go sweeper.Start(ctx)

	metrics.Register()
	checker := health.NewChecker(pool, health.PingerFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}), logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler,
			inventoryHandler, authUsecase, []byte(cfg.JWTSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
