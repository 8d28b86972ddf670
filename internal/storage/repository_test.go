package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAddExpenseRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddExpense(ctx, "2024-01-05", "12.50", "Food", "", "")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}

	expenses, err := repo.ExpensesInRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	want := core.Expense{ID: 1, Date: "2024-01-05", Amount: 12.5, Category: "Food"}
	if expenses[0] != want {
		t.Fatalf("expected %+v, got %+v", want, expenses[0])
	}
}

func TestAddExpenseInvalidAmount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.AddExpense(ctx, "2024-01-05", "not-a-number", "Food", "", ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	// Nothing may be written before validation.
	expenses, err := repo.ExpensesInRange(ctx, "0000-00-00", "9999-99-99")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(expenses))
	}
}

func TestExpensesInRangeOrderingAndBounds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustAdd := func(date, amount, category string) int64 {
		t.Helper()
		id, err := repo.AddExpense(ctx, date, amount, category, "", "")
		if err != nil {
			t.Fatalf("add expense: %v", err)
		}
		return id
	}

	first := mustAdd("2024-01-05", "10", "Food")
	second := mustAdd("2024-01-05", "20", "Food") // same date, later id
	mid := mustAdd("2024-01-10", "5", "Transport")
	mustAdd("2023-12-31", "99", "Food") // before range
	mustAdd("2024-02-01", "99", "Food") // after range

	expenses, err := repo.ExpensesInRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses in range, got %d", len(expenses))
	}
	// date DESC, then id DESC on equal dates
	if expenses[0].ID != mid || expenses[1].ID != second || expenses[2].ID != first {
		t.Fatalf("unexpected order: %d, %d, %d", expenses[0].ID, expenses[1].ID, expenses[2].ID)
	}

	// Bounds are inclusive on both ends.
	edge, err := repo.ExpensesInRange(ctx, "2023-12-31", "2024-02-01")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(edge) != 5 {
		t.Fatalf("expected 5 expenses with inclusive bounds, got %d", len(edge))
	}
}

func TestEditExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddExpense(ctx, "2024-01-05", "10", "Food", "", "")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	other, err := repo.AddExpense(ctx, "2024-01-06", "20", "Transport", "Bus", "commute")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if err := repo.EditExpense(ctx, id, "2024-01-07", "15.25", "Food", "Groceries", "weekly"); err != nil {
		t.Fatalf("edit expense: %v", err)
	}

	expenses, err := repo.ExpensesInRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	byID := map[int64]core.Expense{}
	for _, e := range expenses {
		byID[e.ID] = e
	}
	edited := byID[id]
	if edited.Date != "2024-01-07" || edited.Amount != 15.25 || edited.Subcategory != "Groceries" || edited.Note != "weekly" {
		t.Fatalf("edit did not replace fields: %+v", edited)
	}
	untouched := byID[other]
	if untouched.Category != "Transport" || untouched.Amount != 20 {
		t.Fatalf("edit touched another row: %+v", untouched)
	}

	if err := repo.EditExpense(ctx, 9999, "2024-01-07", "1", "Food", "", ""); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
	if err := repo.EditExpense(ctx, id, "2024-01-07", "bogus", "Food", "", ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddExpense(ctx, "2024-01-05", "10", "Food", "", "")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if err := repo.DeleteExpense(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}

	// Deleted ids are never reassigned.
	next, err := repo.AddExpense(ctx, "2024-01-06", "5", "Food", "", "")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if next <= id {
		t.Fatalf("id %d reused after delete of %d", next, id)
	}
}

func TestSummarizeMatchesList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rows := []struct {
		date, amount, category string
	}{
		{"2024-01-02", "10", "Food"},
		{"2024-01-03", "2.5", "Food"},
		{"2024-01-04", "30", "Transport"},
		{"2024-01-05", "-5", "Food"},
		{"2024-02-10", "100", "Food"}, // outside range
	}
	for _, row := range rows {
		if _, err := repo.AddExpense(ctx, row.date, row.amount, row.category, "", ""); err != nil {
			t.Fatalf("add expense: %v", err)
		}
	}

	summary, err := repo.Summarize(ctx, "2024-01-01", "2024-01-31", "")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	expenses, err := repo.ExpensesInRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	totals := map[string]float64{}
	counts := map[string]int64{}
	for _, e := range expenses {
		totals[e.Category] += e.Amount
		counts[e.Category]++
	}
	if len(summary) != len(totals) {
		t.Fatalf("expected %d groups, got %d", len(totals), len(summary))
	}
	for _, s := range summary {
		if totals[s.Category] != s.Total || counts[s.Category] != s.Count {
			t.Fatalf("group %s: expected total=%v count=%d, got total=%v count=%d",
				s.Category, totals[s.Category], counts[s.Category], s.Total, s.Count)
		}
	}
	// Ordered by descending total: Transport 30 before Food 7.5.
	if summary[0].Category != "Transport" || summary[1].Category != "Food" {
		t.Fatalf("unexpected order: %+v", summary)
	}

	filtered, err := repo.Summarize(ctx, "2024-01-01", "2024-01-31", "Food")
	if err != nil {
		t.Fatalf("summarize filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Category != "Food" || filtered[0].Total != 7.5 || filtered[0].Count != 3 {
		t.Fatalf("unexpected filtered summary: %+v", filtered)
	}

	empty, err := repo.Summarize(ctx, "2030-01-01", "2030-01-31", "")
	if err != nil {
		t.Fatalf("summarize empty range: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestAddCredit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Bootstrap user already exists with credit 0.
	balance, err := repo.AddCredit(ctx, "5", "")
	if err != nil {
		t.Fatalf("add credit: %v", err)
	}
	if balance != 5 {
		t.Fatalf("expected balance 5, got %v", balance)
	}
	balance, err = repo.AddCredit(ctx, "3", core.DefaultUser)
	if err != nil {
		t.Fatalf("add credit: %v", err)
	}
	if balance != 8 {
		t.Fatalf("expected balance 8, got %v", balance)
	}

	// Unseen user starts at 0 before the increment.
	balance, err = repo.AddCredit(ctx, "-2.5", "alice")
	if err != nil {
		t.Fatalf("add credit: %v", err)
	}
	if balance != -2.5 {
		t.Fatalf("expected balance -2.5, got %v", balance)
	}

	if _, err := repo.AddCredit(ctx, "nope", "alice"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	balance, err = repo.Credit(ctx, "alice")
	if err != nil {
		t.Fatalf("read credit: %v", err)
	}
	if balance != -2.5 {
		t.Fatalf("failed parse must not mutate balance, got %v", balance)
	}

	if _, err := repo.Credit(ctx, "nobody"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCreditConcurrent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const workers = 20
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := repo.AddCredit(ctx, "10", "u")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent add credit: %v", err)
	}

	balance, err := repo.Credit(ctx, "u")
	if err != nil {
		t.Fatalf("read credit: %v", err)
	}
	if balance != 10*workers {
		t.Fatalf("lost update: expected %d, got %v", 10*workers, balance)
	}
}

func TestSchemaIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	if _, err := repo.AddExpense(ctx, "2024-01-05", "12.50", "Food", "", ""); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := repo.AddCredit(ctx, "7", ""); err != nil {
		t.Fatalf("add credit: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs the whole schema setup again.
	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen repository: %v", err)
	}
	defer repo.Close()

	expenses, err := repo.ExpensesInRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected surviving row, got %d", len(expenses))
	}
	balance, err := repo.Credit(ctx, core.DefaultUser)
	if err != nil {
		t.Fatalf("read credit: %v", err)
	}
	if balance != 7 {
		t.Fatalf("bootstrap upsert must not reset credit, got %v", balance)
	}
}
