package context

import (
	"context"

	"github.com/anima-music/anima/internal/db/queryable"
	"github.com/anima-music/anima/internal/mail"
	"github.com/anima-music/anima/internal/types"
	"go.uber.org/zap"
)

func GetDb(ctx context.Context) queryable.Queryable {
	if db, ok := ctx.Value(ctxKeyDb).(queryable.Queryable); ok {
		return db
	}
	panic("db not contained in context")
}

func WithDb(ctx context.Context, db queryable.Queryable) context.Context {
	return context.WithValue(ctx, ctxKeyDb, db)
}

func GetLogger(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok {
		return logger
	}
	panic("logger not contained in context")
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

func GetMailer(ctx context.Context) mail.Mailer {
	if mailer, ok := ctx.Value(ctxKeyMailer).(mail.Mailer); ok {
		return mailer
	}
	panic("mailer not contained in context")
}

func WithMailer(ctx context.Context, mailer mail.Mailer) context.Context {
	return context.WithValue(ctx, ctxKeyMailer, mailer)
}

func GetUserAccount(ctx context.Context) *types.UserAccount {
	if userAccount, ok := ctx.Value(ctxKeyUserAccount).(*types.UserAccount); ok {
		return userAccount
	}
	panic("no UserAccount found in context")
}

func WithUserAccount(ctx context.Context, userAccount *types.UserAccount) context.Context {
	return context.WithValue(ctx, ctxKeyUserAccount, userAccount)
}
