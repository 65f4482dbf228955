package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/akarakus27/weather-telegram-bot/internal/runner"
)

// Scheduler triggers the daily report run at a fixed local time. It exists
// for daemon mode; the default run-once mode relies on an external scheduler
// instead.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    *runner.Runner
	at        string
	log       *zap.SugaredLogger
}

// New creates a Scheduler firing every day at the given HH:MM in tz.
func New(r *runner.Runner, at string, tz *time.Location, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(tz),
		runner:    r,
		at:        at,
		log:       log,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		s.log.Infow("scheduler: running daily report job")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.runner.Run(ctx); err != nil {
			s.log.Errorw("scheduler: daily report failed", "err", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
