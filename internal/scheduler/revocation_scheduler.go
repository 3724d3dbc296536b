package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = time.Minute

// Sweeper removes revocation records that can no longer match a live token
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// RevocationScheduler runs the revocation ledger cleanup on a cron schedule
type RevocationScheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
}

func NewRevocationScheduler(sweeper Sweeper, schedule string) *RevocationScheduler {
	return &RevocationScheduler{
		cron:     cron.New(),
		sweeper:  sweeper,
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the scheduler
func (s *RevocationScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.RunOnce)
	if err != nil {
		logger.Error("Failed to add cron job for revocation sweep", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Revocation sweep scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// RunOnce performs a single sweep
func (s *RevocationScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		logger.Error("Failed to sweep revoked tokens", err)
		return
	}
	logger.Debug("Revocation sweep finished", map[string]interface{}{
		"removed": removed,
	})
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *RevocationScheduler) Stop() {
	logger.Info("Stopping revocation sweep scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Revocation sweep scheduler stopped")
}
