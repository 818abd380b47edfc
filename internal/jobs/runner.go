package jobs

import (
	"context"
	"time"

	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db/queryable"
	"github.com/anima-music/anima/internal/mail"
	"go.uber.org/zap"
)

type runner struct {
	db     queryable.Queryable
	mailer mail.Mailer
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger, db queryable.Queryable, mailer mail.Mailer) *runner {
	return &runner{db: db, mailer: mailer, logger: logger}
}

func (runner *runner) RunJobFunc(job Job) func(ctx context.Context) {
	return func(ctx context.Context) { runner.Run(ctx, job) }
}

func (runner *runner) Run(ctx context.Context, job Job) {
	log := runner.logger.With(zap.String("job", job.name))
	ctx = runner.jobCtx(ctx, job)

	startedAt := time.Now()
	log.Info("job started")

	if job.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.timeout)
		defer cancel()
	}

	err := job.Run(ctx)
	elapsed := time.Since(startedAt)
	if err != nil {
		log.Warn("job failed", zap.Duration("elapsed", elapsed), zap.Error(err))
	} else {
		log.Info("job finished", zap.Duration("elapsed", elapsed))
	}
}

func (runner *runner) jobCtx(ctx context.Context, job Job) context.Context {
	ctx = internalctx.WithLogger(ctx, runner.logger.With(zap.String("job", job.name)))
	ctx = internalctx.WithDb(ctx, runner.db)
	ctx = internalctx.WithMailer(ctx, runner.mailer)
	return ctx
}
