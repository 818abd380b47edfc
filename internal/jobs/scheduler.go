package jobs

import (
	"github.com/anima-music/anima/internal/db/queryable"
	"github.com/anima-music/anima/internal/mail"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
	runner    *runner
}

func NewScheduler(logger *zap.Logger, db queryable.Queryable, mailer mail.Mailer) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLogger(&gocronLoggerAdapter{logger: logger.Sugar()}),
	)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		scheduler: scheduler,
		logger:    logger,
		runner:    NewRunner(logger, db, mailer),
	}, nil
}

func (s *Scheduler) RegisterCronJob(cron string, job Job) error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(cron, false),
		gocron.NewTask(s.runner.RunJobFunc(job)),
		gocron.WithName(job.name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (s *Scheduler) Start() {
	s.logger.Info("job scheduler starting", zap.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

func (s *Scheduler) Shutdown() error {
	s.logger.Info("job scheduler shutting down")
	return s.scheduler.Shutdown()
}

type gocronLoggerAdapter struct {
	logger *zap.SugaredLogger
}

var _ gocron.Logger = (*gocronLoggerAdapter)(nil)

func (l *gocronLoggerAdapter) Debug(msg string, args ...any) { l.logger.Debugw(msg, args...) }
func (l *gocronLoggerAdapter) Error(msg string, args ...any) { l.logger.Errorw(msg, args...) }
func (l *gocronLoggerAdapter) Info(msg string, args ...any)  { l.logger.Infow(msg, args...) }
func (l *gocronLoggerAdapter) Warn(msg string, args ...any)  { l.logger.Warnw(msg, args...) }
