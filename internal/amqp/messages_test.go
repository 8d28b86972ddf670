package amqp

import (
	"testing"
	"time"
)

func TestNewExpenseEvent(t *testing.T) {
	event := NewExpenseEvent(KindExpenseAdded, 42, 12.5)

	if event.Kind != KindExpenseAdded {
		t.Errorf("Kind = %v, want %v", event.Kind, KindExpenseAdded)
	}
	if event.ExpenseID != 42 {
		t.Errorf("ExpenseID = %v, want 42", event.ExpenseID)
	}
	if event.Amount != 12.5 {
		t.Errorf("Amount = %v, want 12.5", event.Amount)
	}
	if event.EventID == "" {
		t.Error("EventID should be assigned")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
	if err := event.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewCreditEvent(t *testing.T) {
	event := NewCreditEvent("default", 5)

	if event.Kind != KindCreditAdded {
		t.Errorf("Kind = %v, want %v", event.Kind, KindCreditAdded)
	}
	if event.User != "default" {
		t.Errorf("User = %v, want default", event.User)
	}
	if err := event.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLedgerEventValidate(t *testing.T) {
	event := NewExpenseEvent("expense_exploded", 1, 1)
	if err := event.Validate(); err == nil {
		t.Error("Validate() should reject unknown kinds")
	}
}

func TestLedgerEvent_JSON(t *testing.T) {
	event := NewExpenseEvent(KindExpenseDeleted, 7, -3.25)

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON() error = %v", err)
	}

	if parsed.EventID != event.EventID || parsed.Kind != event.Kind ||
		parsed.ExpenseID != event.ExpenseID || parsed.Amount != event.Amount {
		t.Errorf("round trip mismatch: %+v vs %+v", parsed, event)
	}
}

func TestLedgerEvent_InvalidJSON(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte(`{"expense_id": "nope"}`)); err == nil {
		t.Error("LedgerEventFromJSON() should fail with invalid JSON")
	}
}
