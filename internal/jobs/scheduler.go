package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 30 * time.Second

// Refresher is implemented by caches that can be rebuilt from their store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler runs the periodic doctor directory refresh.
type Scheduler struct {
	cron      *cron.Cron
	directory Refresher
	log       *logrus.Logger
}

func NewScheduler(directory Refresher, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		directory: directory,
		log:       log,
	}
}

// Start registers the refresh job on the given five-field cron spec and starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RefreshDirectory); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Infof("Doctor directory refresh scheduled (%s)", spec)
	return nil
}

// RefreshDirectory is the job body. Failures are logged; the next tick retries.
func (s *Scheduler) RefreshDirectory() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.directory.Refresh(ctx); err != nil {
		s.log.Warnf("Failed to refresh doctor directory: %+v", err)
		return
	}
	s.log.Debug("Doctor directory refreshed")
}

// Stop prevents new runs and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Timed out waiting for scheduled jobs to finish")
	}
}
