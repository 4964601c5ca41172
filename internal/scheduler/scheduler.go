package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 5 * time.Minute

// Reconciler rebuilds cached cat ratings from the vote ledger.
type Reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// Purger drops revoked refresh tokens that have expired anyway.
type Purger interface {
	PurgeRevoked(ctx context.Context) (int64, error)
}

// Config holds the cron specs of the maintenance jobs. An empty spec disables a job.
type Config struct {
	Reconcile string
	Purge     string
	Logger    logrus.FieldLogger
}

// Scheduler runs periodic maintenance jobs in the background.
type Scheduler struct {
	cron   *cron.Cron
	logger logrus.FieldLogger
	jobs   int
}

func New(cfg Config, votes Reconciler, tokens Purger) (*Scheduler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	s := &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}

	if err := s.add("reconcile-ratings", cfg.Reconcile, ReconcileJob(votes, logger)); err != nil {
		return nil, err
	}
	if err := s.add("purge-revoked-tokens", cfg.Purge, PurgeJob(tokens, logger)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) add(name, spec string, job func(context.Context)) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		s.logger.WithField("job", name).Info("scheduled job disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	s.jobs++
	s.logger.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("scheduled job registered")
	return nil
}

// Jobs returns the number of enabled jobs.
func (s *Scheduler) Jobs() int {
	return s.jobs
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out with jobs still running")
	}
}

// ReconcileJob recomputes vote tallies and logs how many cats drifted.
func ReconcileJob(votes Reconciler, logger logrus.FieldLogger) func(context.Context) {
	return func(ctx context.Context) {
		started := time.Now()
		changed, err := votes.Reconcile(ctx)
		if err != nil {
			logger.WithError(err).Error("reconcile ratings")
			return
		}
		entry := logger.WithFields(logrus.Fields{
			"changed":  changed,
			"duration": time.Since(started),
		})
		if changed > 0 {
			entry.Warn("repaired drifted cat ratings")
			return
		}
		entry.Debug("cat ratings consistent")
	}
}

// PurgeJob removes expired token revocations.
func PurgeJob(tokens Purger, logger logrus.FieldLogger) func(context.Context) {
	return func(ctx context.Context) {
		removed, err := tokens.PurgeRevoked(ctx)
		if err != nil {
			logger.WithError(err).Error("purge revoked tokens")
			return
		}
		logger.WithField("removed", removed).Debug("purged revoked tokens")
	}
}
