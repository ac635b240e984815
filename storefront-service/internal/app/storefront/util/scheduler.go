package util

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"lotusaroma/pkg/logger"
	"lotusaroma/pkg/metrics"
)

// Имена задач планировщика (label job в метриках)
const (
	JobRatingReconcile = "rating_reconcile"
	JobCacheWarmup     = "cache_warmup"
)

// Job - одна периодическая задача
type Job func(ctx context.Context) error

// Scheduler запускает фоновые задачи витрины по cron расписанию
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// NewScheduler - задачи получают ctx; его отмена прерывает выполняющиеся задачи
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cronLogger{}))),
		ctx:  ctx,
	}
}

// Register добавляет задачу; неверное расписание - ошибка
func (s *Scheduler) Register(name, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}

	logger.Info().Str("job", name).Str("schedule", schedule).Msg("Scheduled job registered")
	return nil
}

// RunNow выполняет задачу синхронно, вне расписания
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	timer := metrics.NewJobTimer(name)

	err := job(s.ctx)
	timer.Done(err)

	if err != nil {
		logger.Error().Err(err).Str("job", name).Msg("Scheduled job failed")
		return err
	}
	logger.Debug().Str("job", name).Msg("Scheduled job completed")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop ждет завершения выполняющихся задач
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger направляет сообщения robfig/cron в zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
