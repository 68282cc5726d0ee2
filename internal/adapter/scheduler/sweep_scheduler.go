package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "@every 30s"

type Sweeper interface {
	SweepAndNotify(ctx context.Context) (int, error)
}

// SweepScheduler runs the expired-hold sweep on a cron schedule. A tick
// that fires while the previous sweep is still running is skipped.
type SweepScheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	logger  *slog.Logger
}

func NewSweepScheduler(sweeper Sweeper, schedule string, timeout time.Duration, logger *slog.Logger) (*SweepScheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	s := &SweepScheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		timeout: timeout,
		logger:  logger.With("component", "sweep-scheduler"),
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}

	s.logger.Info("sweep scheduled", "schedule", schedule)
	return s, nil
}

// Start runs the schedule until ctx is done, then waits for a running
// sweep to finish.
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.logger.Info("sweep scheduler started")
	s.cron.Start()
	<-ctx.Done()
	s.logger.Info("sweep scheduler stopping...")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("sweep scheduler stopped")
	return ctx.Err()
}

func (s *SweepScheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	released, err := s.sweeper.SweepAndNotify(ctx)
	if err != nil {
		s.logger.Error("sweep failed", "error", err)
		return
	}

	if released > 0 {
		s.logger.Info("sweep released expired holds", "released", released)
	}
}
