package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/config"
	"github.com/chanqt/boardinghouse/internal/service/engine"
)

// Scheduler triggers periodic reconciliation passes and near-due sweeps.
// The engine itself keeps no checkpoint state, so a pass may run as often as
// the schedule fires without drifting.
type Scheduler struct {
	cron   *cron.Cron
	engine *engine.Engine
	cfg    config.Config
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, eng *engine.Engine, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		engine: eng,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the reconciliation job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reconcile.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reconcile.CronSchedule, s.runReconciliation)
	if err != nil {
		s.logger.Error("failed to schedule reconciliation pass", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runReconciliation() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.engine.RunPass(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrPassInProgress) {
			// A newer trigger supersedes a running pass; skip, don't queue.
			s.logger.Info("reconciliation pass still running, skipping this fire")
			return
		}
		s.logger.Error("scheduled reconciliation pass failed", zap.Error(err))
		return
	}

	dueAlerts, err := s.engine.DueAlerts(ctx, s.cfg.Alerts.HorizonDays)
	if err != nil {
		s.logger.Error("scheduled near-due sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled pass completed",
		zap.Int("intents_applied", summary.IntentsApplied),
		zap.Int("conflicts", summary.Conflicts),
		zap.Int("due_alerts", len(dueAlerts)))
}
