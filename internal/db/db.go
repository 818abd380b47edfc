package db

import (
	"context"
	"fmt"

	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/env"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

func NewPool(ctx context.Context, logger *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(env.DatabaseUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if maxConns := env.DatabaseMaxConns(); maxConns != nil {
		config.MaxConns = int32(*maxConns)
	}
	if env.EnableQueryLogging() {
		config.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger{logger: logger},
			LogLevel: tracelog.LogLevelDebug,
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RunTx runs f with the db in ctx replaced by a transaction. If the contained
// db is already a transaction, f runs in it directly.
func RunTx(ctx context.Context, f func(ctx context.Context) error) error {
	db := internalctx.GetDb(ctx)
	beginner, ok := db.(txBeginner)
	if !ok {
		return f(ctx)
	}
	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := f(internalctx.WithDb(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type queryLogger struct {
	logger *zap.Logger
}

func (l queryLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := make([]zap.Field, 0, len(data))
	for k, v := range data {
		fields = append(fields, zap.Any(k, v))
	}
	switch level {
	case tracelog.LogLevelError:
		l.logger.Error(msg, fields...)
	case tracelog.LogLevelWarn:
		l.logger.Warn(msg, fields...)
	default:
		l.logger.Debug(msg, fields...)
	}
}
