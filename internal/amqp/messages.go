package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event kinds published after a ledger mutation commits.
const (
	KindExpenseAdded   = "expense_added"
	KindExpenseEdited  = "expense_edited"
	KindExpenseDeleted = "expense_deleted"
	KindCreditAdded    = "credit_added"
)

// LedgerEvent is the audit message emitted for every committed
// mutation. ExpenseID is zero for credit events; User is empty for
// expense events.
type LedgerEvent struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	ExpenseID int64     `json:"expense_id,omitempty"`
	User      string    `json:"user,omitempty"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent builds an event for an expense mutation.
func NewExpenseEvent(kind string, id int64, amount float64) *LedgerEvent {
	return &LedgerEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		ExpenseID: id,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// NewCreditEvent builds an event for a balance increment.
func NewCreditEvent(user string, amount float64) *LedgerEvent {
	return &LedgerEvent{
		EventID:   uuid.NewString(),
		Kind:      KindCreditAdded,
		User:      user,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// Validate rejects events with unknown kinds before they hit the wire.
func (e *LedgerEvent) Validate() error {
	switch e.Kind {
	case KindExpenseAdded, KindExpenseEdited, KindExpenseDeleted, KindCreditAdded:
		return nil
	default:
		return fmt.Errorf("unknown event kind: %s", e.Kind)
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal ledger event: %w", err)
	}
	return &e, nil
}
