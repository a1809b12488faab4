package queue

import (
	"fmt"

	"go.uber.org/zap"

	"Habitual/internal/model"
	"Habitual/pkg/logger"
	"Habitual/pkg/snowflake"
	"Habitual/storage/mq"
)

// PublishNotificationBatch publishes one batch of decided sends to the
// dispatch queue. MessageID is filled in when the caller left it empty.
func PublishNotificationBatch(msg model.NotificationBatchMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("notify_%d", id)
	}

	err := mq.PublishMessage(
		mq.NotifyExchange,
		mq.NotifyDispatchKey,
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish notification batch",
			zap.String("batch_id", msg.BatchID),
			zap.Int("send_count", len(msg.Sends)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published notification batch",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", msg.BatchID),
		zap.Int("send_count", len(msg.Sends)),
	)

	return nil
}
