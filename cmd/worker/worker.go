package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"Habitual/config"
	"Habitual/internal/queue"
	"Habitual/internal/service"
	"Habitual/pkg/logger"
	"Habitual/pkg/matrix"
	"Habitual/pkg/metrics"
	"Habitual/pkg/snowflake"
	"Habitual/storage"
)

func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := matrix.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize Matrix client", zap.Error(err))
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize notification metrics", zap.Error(err))
	}

	// Every consumer hands its batches to the dispatcher.
	queue.SetNotificationService(service.Notification())

	logger.Logger.Info("Worker service starting",
		zap.String("service", "habitual-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	queue.StartAllConsumers(ctx)

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
