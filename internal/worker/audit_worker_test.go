package worker

import (
	"context"
	"testing"

	"tally/internal/amqp"
)

func TestAuditWorkerHandle(t *testing.T) {
	w := NewAuditWorker()
	ctx := context.Background()

	if err := w.Handle(ctx, amqp.NewExpenseEvent(amqp.KindExpenseAdded, 1, 12.5)); err != nil {
		t.Fatalf("handle expense event: %v", err)
	}
	if err := w.Handle(ctx, amqp.NewCreditEvent("default", 5)); err != nil {
		t.Fatalf("handle credit event: %v", err)
	}
	if w.Processed() != 2 {
		t.Fatalf("expected 2 processed, got %d", w.Processed())
	}
}

func TestAuditWorkerDropsUnknownKinds(t *testing.T) {
	w := NewAuditWorker()

	// Returning an error would requeue forever; unknown kinds are
	// dropped instead.
	err := w.Handle(context.Background(), amqp.NewExpenseEvent("mystery", 1, 1))
	if err != nil {
		t.Fatalf("unknown kind must not error: %v", err)
	}
	if w.Processed() != 0 || w.Skipped() != 1 {
		t.Fatalf("expected 0 processed and 1 skipped, got %d and %d", w.Processed(), w.Skipped())
	}
}
