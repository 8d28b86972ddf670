package core

import (
	"errors"
	"strings"
)

// DefaultUser is the bootstrap user guaranteed to exist after schema
// initialization. Credit operations fall back to it when no user name
// is supplied.
const DefaultUser = "default"

type (
	// Expense is a single dated ledger row. Date is kept in its
	// string-comparable ISO-8601 form; range queries compare dates
	// lexicographically, so callers must supply zero-padded dates.
	Expense struct {
		ID          int64   `json:"id"`
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory"`
		Note        string  `json:"note"`
	}

	// SummaryRow is one per-category aggregate over a date window.
	SummaryRow struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int64   `json:"count"`
	}

	// User carries a per-name running credit balance.
	User struct {
		Name   string  `json:"name"`
		Credit float64 `json:"credit"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("not found")
	ErrEmptyDate     = errors.New("empty date")
	ErrEmptyCategory = errors.New("empty category")
)

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
