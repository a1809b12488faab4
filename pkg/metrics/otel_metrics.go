package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics bundles the notification pipeline instruments.
type OTelMetrics struct {
	NotifySentTotal   metric.Int64Counter
	NotifyFailedTotal metric.Int64Counter
	NotifyDuration    metric.Float64Histogram
	BatchTotal        metric.Int64Counter
	BatchSize         metric.Int64Histogram
	ActiveBatches     metric.Int64UpDownCounter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("habitual")
)

// InitMetrics registers the OpenTelemetry instruments.
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.NotifySentTotal, err = meter.Int64Counter(
		"notifications_sent_total",
		metric.WithDescription("Total number of chat notifications sent"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return err
	}

	metrics.NotifyFailedTotal, err = meter.Int64Counter(
		"notifications_failed_total",
		metric.WithDescription("Total number of chat notifications that failed to send"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return err
	}

	metrics.NotifyDuration, err = meter.Float64Histogram(
		"notification_send_duration_seconds",
		metric.WithDescription("Time spent sending one chat notification in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.BatchTotal, err = meter.Int64Counter(
		"notification_batches_total",
		metric.WithDescription("Total number of notification batches processed"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return err
	}

	metrics.BatchSize, err = meter.Int64Histogram(
		"notification_batch_size",
		metric.WithDescription("Number of sends per notification batch"),
		metric.WithUnit("{send}"),
	)
	if err != nil {
		return err
	}

	metrics.ActiveBatches, err = meter.Int64UpDownCounter(
		"notification_active_batches",
		metric.WithDescription("Number of notification batches currently dispatching"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics returns the process-wide instrument set, nil before InitMetrics.
func GetMetrics() *OTelMetrics {
	return metrics
}

func (m *OTelMetrics) RecordNotificationSent(ctx context.Context, kind string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("status", "success"),
	}

	m.NotifySentTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.NotifyDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *OTelMetrics) RecordNotificationFailed(ctx context.Context, kind, reason string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("status", "failed"),
		attribute.String("reason", reason),
	}

	m.NotifyFailedTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.NotifyDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *OTelMetrics) RecordBatchProcessed(ctx context.Context, size, failures int) {
	status := "success"
	if failures > 0 {
		status = "partial"
	}
	if failures == size && size > 0 {
		status = "failed"
	}

	m.BatchTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.BatchSize.Record(ctx, int64(size))
}

func (m *OTelMetrics) AddActiveBatch(ctx context.Context) {
	m.ActiveBatches.Add(ctx, 1)
}

func (m *OTelMetrics) SubtractActiveBatch(ctx context.Context) {
	m.ActiveBatches.Add(ctx, -1)
}
