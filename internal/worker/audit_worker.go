// Package worker contains the audit-trail consumer that turns ledger
// events into structured audit log records.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"

	"tally/internal/amqp"
)

// AuditWorker records every committed ledger mutation it receives from
// the event queue.
type AuditWorker struct {
	processed int64
	skipped   int64
}

func NewAuditWorker() *AuditWorker {
	return &AuditWorker{}
}

// Handle processes a single event. Unknown kinds are logged and
// dropped rather than requeued; they would never become processable.
func (w *AuditWorker) Handle(ctx context.Context, event *amqp.LedgerEvent) error {
	if err := event.Validate(); err != nil {
		atomic.AddInt64(&w.skipped, 1)
		slog.WarnContext(ctx, "Skipping unknown ledger event", "event_id", event.EventID, "error", err)
		return nil
	}

	switch event.Kind {
	case amqp.KindCreditAdded:
		slog.InfoContext(ctx, "Audit: credit applied",
			"event_id", event.EventID,
			"user", event.User,
			"amount", event.Amount,
			"at", event.Timestamp)
	default:
		slog.InfoContext(ctx, "Audit: expense mutation",
			"event_id", event.EventID,
			"kind", event.Kind,
			"id", event.ExpenseID,
			"amount", event.Amount,
			"at", event.Timestamp)
	}

	atomic.AddInt64(&w.processed, 1)
	return nil
}

// Processed returns how many events have been recorded.
func (w *AuditWorker) Processed() int64 {
	return atomic.LoadInt64(&w.processed)
}

// Skipped returns how many events were dropped as unknown.
func (w *AuditWorker) Skipped() int64 {
	return atomic.LoadInt64(&w.skipped)
}
