package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"Habitual/config"
	"Habitual/internal/schedule"
	"Habitual/pkg/logger"
	"Habitual/pkg/snowflake"
	"Habitual/storage"
)

func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "habitual-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	go runReconcileLoop(ctx)
	go runNotifySweepLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runReconcileLoop triggers the daily reconciliation shortly after
// local midnight. Development runs it every minute instead; the pass
// is idempotent so the tighter interval is safe.
func runReconcileLoop(ctx context.Context) {
	s := schedule.GetReconcileScheduler()

	if config.Cfg.IsDevelopment() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		logger.Logger.Info("Reconcile scheduler running in development mode with 1m interval")

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				if err := s.Run(runCtx); err != nil {
					logger.Logger.Error("Reconciliation run failed (development interval)", zap.Error(err))
				}
				cancel()
			}
		}
	}

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, config.Cfg.ReconcileAtMinute, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		delay := time.Until(next)
		logger.Logger.Info("Scheduled next reconciliation run",
			zap.Time("now", now),
			zap.Time("next_run", next),
			zap.Duration("delay", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			if err := s.Run(runCtx); err != nil {
				logger.Logger.Error("Reconciliation run failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// runNotifySweepLoop re-evaluates all users' notifications on a short
// interval. Each tick decides from current state only, so a missed or
// overlapping tick never double-sends.
func runNotifySweepLoop(ctx context.Context) {
	s := schedule.GetNotifyScheduler()

	interval := time.Duration(config.Cfg.NotifySweepSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Logger.Info("Notify sweep loop started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, interval)
			if err := s.Run(runCtx); err != nil {
				logger.Logger.Error("Notify sweep failed", zap.Error(err))
			}
			cancel()
		}
	}
}
