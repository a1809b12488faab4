package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"Habitual/internal/cache"
	"Habitual/internal/model"
	"Habitual/pkg/errors"
	"Habitual/pkg/logger"
	"Habitual/storage/mq"
)

// NotificationService dispatches a decided batch to the chat channel.
type NotificationService interface {
	DispatchBatch(ctx context.Context, msg model.NotificationBatchMessage) error
}

var notificationService NotificationService

// SetNotificationService wires the dispatcher in at worker startup.
func SetNotificationService(s NotificationService) {
	notificationService = s
}

// StartNotificationConsumer consumes dispatch batches. Each message is
// claimed once through redis, handed to the dispatcher, and finalized;
// a dispatch error releases the claim so the message can be retried.
func StartNotificationConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.NotificationBatchMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal notification batch: %w", err)
		}

		claimed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// Proceed on a failed check rather than stall the queue;
			// the worst case is a duplicate dispatch.
		} else if !claimed {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.String("batch_id", msg.BatchID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing notification batch",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
			zap.Int("send_count", len(msg.Sends)),
		)

		if notificationService == nil {
			return fmt.Errorf("notification service is not configured")
		}

		if err := notificationService.DispatchBatch(ctx, msg); err != nil {
			if unmarkErr := cache.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to release message claim",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return fmt.Errorf("failed to dispatch notification batch: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.NotifyDispatchQueue,
		ConsumerTag:   "notify_dispatch_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers brings up every worker consumer. Each consumer
// blocks on its delivery loop, so they run in their own goroutines.
func StartAllConsumers(ctx context.Context) {
	go func() {
		if err := StartNotificationConsumer(ctx); err != nil {
			logger.Logger.Error("Notification consumer stopped", zap.Error(err))
		}
	}()

	logger.Logger.Info("All consumers started")
}
