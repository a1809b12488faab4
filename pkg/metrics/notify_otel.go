package metrics

import (
	"context"
)

// Package-level wrappers so callers do not need to nil-check the
// instrument set before InitMetrics has run.

// RecordNotificationSent records one successful chat send.
func RecordNotificationSent(kind string, duration float64) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordNotificationSent(ctx, kind, duration)
	}
}

// RecordNotificationFailed records one failed chat send.
func RecordNotificationFailed(kind, reason string, duration float64) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordNotificationFailed(ctx, kind, reason, duration)
	}
}

// RecordBatchProcessed records a settled dispatch batch.
func RecordBatchProcessed(size, failures int) {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.RecordBatchProcessed(ctx, size, failures)
	}
}

// AddActiveBatch increments the in-flight batch gauge.
func AddActiveBatch() {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.AddActiveBatch(ctx)
	}
}

// SubtractActiveBatch decrements the in-flight batch gauge.
func SubtractActiveBatch() {
	ctx := context.Background()
	m := GetMetrics()
	if m != nil {
		m.SubtractActiveBatch(ctx)
	}
}
