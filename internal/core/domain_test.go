package core

import (
	"errors"
	"testing"
)

func TestExpenseValidate(t *testing.T) {
	cases := []struct {
		name    string
		expense Expense
		wantErr error
	}{
		{
			name:    "valid",
			expense: Expense{Date: "2024-01-05", Amount: 12.5, Category: "Food"},
			wantErr: nil,
		},
		{
			name:    "valid with optional fields",
			expense: Expense{Date: "2024-01-05", Amount: -4, Category: "Food", Subcategory: "Groceries", Note: "refund"},
			wantErr: nil,
		},
		{
			name:    "empty date",
			expense: Expense{Category: "Food"},
			wantErr: ErrEmptyDate,
		},
		{
			name:    "whitespace date",
			expense: Expense{Date: "  ", Category: "Food"},
			wantErr: ErrEmptyDate,
		},
		{
			name:    "empty category",
			expense: Expense{Date: "2024-01-05"},
			wantErr: ErrEmptyCategory,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.expense.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
