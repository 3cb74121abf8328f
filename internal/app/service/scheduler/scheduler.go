package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/statistics"
)

// Scheduler runs the nightly maintenance jobs: the subscription expiry
// sweep and the subscriber snapshot write.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.SugaredLogger
	billing *billing.Service
	stats   *statistics.Service
}

func New(log *zap.SugaredLogger, b *billing.Service, st *statistics.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		log:     log,
		billing: b,
		stats:   st,
	}
}

func (s *Scheduler) register() error {
	if _, err := s.cron.AddFunc("0 2 * * *", s.runExpirySweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("10 2 * * *", s.runSnapshot); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) runExpirySweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := s.billing.ExpireOverdue(ctx, time.Now())
	if err != nil {
		s.log.Errorw("expiry sweep failed", "error", err)
		return
	}
	s.log.Infow("expiry sweep done", "expired", n)
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.stats.SaveDailySnapshot(ctx, time.Now()); err != nil {
		s.log.Errorw("subscriber snapshot failed", "error", err)
		return
	}
	s.log.Infow("subscriber snapshot written")
}

func registerScheduler(lc fx.Lifecycle, s *Scheduler) error {
	if err := s.register(); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.cron.Start()
			s.log.Infow("scheduler started", "jobs", len(s.cron.Entries()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := s.cron.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

// Module wires the cron scheduler into the application lifecycle.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerScheduler),
)
