// Package storage implements the ledger's persistence and query engine
// over a single embedded SQLite file.
//
// Date-range queries compare dates lexicographically, not as calendar
// values. Callers must store zero-padded ISO-8601 dates (2024-01-05)
// for ranges to behave; this precondition is inherited from the wire
// contract and deliberately not "fixed" here.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository owns the expenses and users tables. Mutations run as
// single serializable transactions; the DSN uses _txlock=immediate so
// explicit write transactions take the write lock up front instead of
// failing on upgrade, and busy_timeout queues concurrent writers.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database file,
// runs migrations and guarantees the bootstrap user exists. Any error
// here means the store is unusable and the process must not serve.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := "file:" + dbPath + "?_txlock=immediate" +
		"&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	// The migration seeds the default user for fresh files; this heals
	// stores created before the seed or edited out-of-band.
	if err := repo.ensureBootstrapUser(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure bootstrap user: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) ensureBootstrapUser(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, credit) VALUES (?, 0) ON CONFLICT(name) DO NOTHING`,
		core.DefaultUser)
	return err
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddExpense inserts a new ledger row and returns its id. Ids come from
// AUTOINCREMENT, so they are monotonic and never reused even after
// deletes. The amount string is parsed before anything is written.
func (r *SQLiteRepository) AddExpense(ctx context.Context, date, amount, category, subcategory, note string) (int64, error) {
	value, err := core.ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	e := core.Expense{Date: date, Amount: value, Category: category, Subcategory: subcategory, Note: note}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, amount, category, subcategory, note) VALUES (?, ?, ?, ?, ?)`,
		date, value, category, subcategory, note)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"id", id,
		"date", date,
		"amount", value,
		"category", category)

	return id, nil
}

// ExpensesInRange returns every expense whose date lies between start
// and end inclusive, compared as strings. Ordering is date descending
// then id descending: most recent first, deterministic on ties.
func (r *SQLiteRepository) ExpensesInRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount, category, subcategory, note
		 FROM expenses
		 WHERE date >= ? AND date <= ?
		 ORDER BY date DESC, id DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Subcategory, &e.Note); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// EditExpense replaces every field of an existing row. It returns
// core.ErrNotFound when no row has the id, which callers must treat as
// a normal failure rather than a storage fault.
func (r *SQLiteRepository) EditExpense(ctx context.Context, id int64, date, amount, category, subcategory, note string) error {
	value, err := core.ParseAmount(amount)
	if err != nil {
		return err
	}
	e := core.Expense{Date: date, Amount: value, Category: category, Subcategory: subcategory, Note: note}
	if err := e.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, amount = ?, category = ?, subcategory = ?, note = ? WHERE id = ?`,
		date, value, category, subcategory, note, id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %d: %w", id, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "date", date, "amount", value, "category", category)
	return nil
}

// DeleteExpense removes a row. Same not-found semantics as EditExpense.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %d: %w", id, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// Summarize groups expenses in the inclusive range by category and
// returns per-category totals and counts, largest total first.
// Category, when non-empty, is an exact-match filter. Ties on total
// break on category name so repeated calls stay deterministic.
func (r *SQLiteRepository) Summarize(ctx context.Context, start, end, category string) ([]core.SummaryRow, error) {
	query := `SELECT category, SUM(amount), COUNT(*)
		 FROM expenses
		 WHERE date >= ? AND date <= ?`
	args := []any{start, end}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` GROUP BY category ORDER BY SUM(amount) DESC, category ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	summary := []core.SummaryRow{}
	for rows.Next() {
		var s core.SummaryRow
		if err := rows.Scan(&s.Category, &s.Total, &s.Count); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary = append(summary, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}

	return summary, nil
}

// AddCredit applies an additive increment to a user's balance and
// returns the result. The insert-if-absent and the increment run in one
// write transaction, so a previously-unseen name observably starts at 0
// and concurrent increments on the same name never lose updates.
func (r *SQLiteRepository) AddCredit(ctx context.Context, amount, userName string) (float64, error) {
	value, err := core.ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if userName == "" {
		userName = core.DefaultUser
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, credit) VALUES (?, 0) ON CONFLICT(name) DO NOTHING`,
		userName); err != nil {
		return 0, fmt.Errorf("upsert user: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET credit = credit + ? WHERE name = ?`,
		value, userName); err != nil {
		return 0, fmt.Errorf("increment credit: %w", err)
	}

	var balance float64
	if err := tx.QueryRowContext(ctx,
		`SELECT credit FROM users WHERE name = ?`, userName).Scan(&balance); err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit credit: %w", err)
	}

	slog.InfoContext(ctx, "Credit applied", "user", userName, "amount", value, "balance", balance)
	return balance, nil
}

// Credit returns the current balance for a user.
func (r *SQLiteRepository) Credit(ctx context.Context, userName string) (float64, error) {
	if userName == "" {
		userName = core.DefaultUser
	}
	var balance float64
	err := r.db.QueryRowContext(ctx,
		`SELECT credit FROM users WHERE name = ?`, userName).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("user %s: %w", userName, core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}
