package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anima-music/anima/internal/auth"
	"github.com/anima-music/anima/internal/cleanup"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/detection"
	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/handlers"
	"github.com/anima-music/anima/internal/jobs"
	"github.com/anima-music/anima/internal/mail"
	"github.com/anima-music/anima/internal/migrations"
	"github.com/anima-music/anima/internal/music"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const cleanupJobTimeout = 5 * time.Minute

func main() {
	env.Initialize()
	auth.Init()

	logger := zap.Must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         env.SentryDSN(),
		Debug:       env.SentryDebug(),
		Environment: env.SentryEnvironment(),
	}); err != nil {
		logger.Fatal("failed to initialize sentry", zap.Error(err))
	}
	defer sentry.Flush(5 * time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := migrations.Up(logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	mailer, err := mail.NewMailer(ctx, logger)
	if err != nil {
		logger.Fatal("failed to create mailer", zap.Error(err))
	}

	detector, err := detection.NewClientFromContext(ctx)
	if err != nil {
		logger.Fatal("failed to create detection client", zap.Error(err))
	}
	musicClient := music.NewClientFromEnv(logger)

	scheduler, err := jobs.NewScheduler(logger, pool, mailer)
	if err != nil {
		logger.Fatal("failed to create job scheduler", zap.Error(err))
	}
	if cron := env.CleanupStaleAnalysesCron(); cron != nil {
		err := scheduler.RegisterCronJob(
			*cron,
			jobs.NewJob("StaleAnalysisCleanup", cleanup.RunStaleAnalysisCleanup, cleanupJobTimeout),
		)
		if err != nil {
			logger.Fatal("failed to register cleanup job", zap.Error(err))
		}
	}
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf("%v:%v", env.Host(), env.Port()),
		Handler: handlers.NewRouter(logger, pool, mailer, musicClient, detector),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), env.ServerShutdownTimeout())
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
	if err := scheduler.Shutdown(); err != nil {
		logger.Warn("scheduler shutdown failed", zap.Error(err))
	}
}
