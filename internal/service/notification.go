package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"Habitual/config"
	"Habitual/internal/model"
	"Habitual/pkg/logger"
	"Habitual/pkg/matrix"
	"Habitual/pkg/metrics"
)

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

func Notification() *NotificationService {
	notificationOnce.Do(func() {
		notificationService = &NotificationService{
			client:      matrix.GetClient(),
			sendTimeout: time.Duration(config.Cfg.MatrixSendTimeoutMS) * time.Millisecond,
		}
	})
	return notificationService
}

// NewNotificationService builds a dispatcher around an explicit client,
// used by tests and by callers that want their own timeout.
func NewNotificationService(client matrix.Client, sendTimeout time.Duration) *NotificationService {
	return &NotificationService{client: client, sendTimeout: sendTimeout}
}

type NotificationService struct {
	client      matrix.Client
	sendTimeout time.Duration
}

type sendResult struct {
	send model.NotificationSend
	err  error
}

// DispatchBatch fans one batch out to the chat channel. The channel is
// connected once per batch and disconnected on every exit path. Sends
// run concurrently, each under its own deadline, and the batch waits
// for all of them to settle; individual failures are recorded without
// touching their siblings. A connect failure abandons the whole batch.
func (s *NotificationService) DispatchBatch(ctx context.Context, msg model.NotificationBatchMessage) error {
	if len(msg.Sends) == 0 {
		return nil
	}

	metrics.AddActiveBatch()
	defer metrics.SubtractActiveBatch()

	if err := s.client.Connect(ctx); err != nil {
		logger.Logger.Error("Notification channel connect failed, batch abandoned",
			zap.String("batch_id", msg.BatchID),
			zap.Int("send_count", len(msg.Sends)),
			zap.Error(err),
		)
		metrics.RecordBatchProcessed(len(msg.Sends), len(msg.Sends))
		// The batch is settled, not retried: the next sweep re-decides
		// from current state anyway.
		return nil
	}
	defer s.client.Disconnect()

	results := make(chan sendResult, len(msg.Sends))
	var wg sync.WaitGroup
	for _, send := range msg.Sends {
		wg.Add(1)
		go func(send model.NotificationSend) {
			defer wg.Done()
			results <- sendResult{send: send, err: s.deliver(ctx, send)}
		}(send)
	}
	wg.Wait()
	close(results)

	failures := 0
	for res := range results {
		if res.err != nil {
			failures++
			logger.Logger.Warn("Notification send failed",
				zap.String("batch_id", msg.BatchID),
				zap.String("kind", res.send.Kind),
				zap.Int64("user_id", res.send.UserID),
				zap.Error(res.err),
			)
		}
	}

	metrics.RecordBatchProcessed(len(msg.Sends), failures)
	logger.Logger.Info("Notification batch settled",
		zap.String("batch_id", msg.BatchID),
		zap.Int("succeeded", len(msg.Sends)-failures),
		zap.Int("failed", failures),
	)

	return nil
}

// deliver performs one send under its own deadline so a hung send
// cannot stall the batch join.
func (s *NotificationService) deliver(ctx context.Context, send model.NotificationSend) error {
	timeout := s.sendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := s.client.SendMessage(sendCtx, send.RoomID, send.Body)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordNotificationFailed(send.Kind, "send_error", elapsed)
		return err
	}
	metrics.RecordNotificationSent(send.Kind, elapsed)
	return nil
}
