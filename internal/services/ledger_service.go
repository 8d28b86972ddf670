package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/storage"
)

// LedgerService fronts the repository and emits an audit event after
// each committed mutation. The event bus is optional: a nil client or a
// failed publish is logged and never fails the request, the ledger row
// is already durable at that point.
type LedgerService struct {
	storage *storage.SQLiteRepository
	events  *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, events *amqp.Client) *LedgerService {
	return &LedgerService{
		storage: storage,
		events:  events,
	}
}

// AddExpense records a new expense and returns its id.
func (s *LedgerService) AddExpense(ctx context.Context, date, amount, category, subcategory, note string) (int64, error) {
	id, err := s.storage.AddExpense(ctx, date, amount, category, subcategory, note)
	if err != nil {
		return 0, err
	}
	value, _ := core.ParseAmount(amount)
	s.publish(ctx, amqp.NewExpenseEvent(amqp.KindExpenseAdded, id, value))
	return id, nil
}

// ListExpenses returns the expenses in the inclusive date range.
func (s *LedgerService) ListExpenses(ctx context.Context, start, end string) ([]core.Expense, error) {
	return s.storage.ExpensesInRange(ctx, start, end)
}

// Summarize returns per-category totals over the inclusive date range.
func (s *LedgerService) Summarize(ctx context.Context, start, end, category string) ([]core.SummaryRow, error) {
	return s.storage.Summarize(ctx, start, end, category)
}

// EditExpense replaces all fields of an existing expense.
func (s *LedgerService) EditExpense(ctx context.Context, id int64, date, amount, category, subcategory, note string) error {
	if err := s.storage.EditExpense(ctx, id, date, amount, category, subcategory, note); err != nil {
		return err
	}
	value, _ := core.ParseAmount(amount)
	s.publish(ctx, amqp.NewExpenseEvent(amqp.KindExpenseEdited, id, value))
	return nil
}

// DeleteExpense removes an expense.
func (s *LedgerService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewExpenseEvent(amqp.KindExpenseDeleted, id, 0))
	return nil
}

// AddCredit applies an increment to a user's balance and returns the
// new balance.
func (s *LedgerService) AddCredit(ctx context.Context, amount, userName string) (float64, error) {
	balance, err := s.storage.AddCredit(ctx, amount, userName)
	if err != nil {
		return 0, err
	}
	if userName == "" {
		userName = core.DefaultUser
	}
	value, _ := core.ParseAmount(amount)
	s.publish(ctx, amqp.NewCreditEvent(userName, value))
	return balance, nil
}

func (s *LedgerService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", event.Kind,
			"error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
