// Package storage implements the store ports on embedded SQLite, one
// database file per store as the original installation layout.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendlog/internal/core"

	_ "modernc.org/sqlite"
)

type ExpenseStore struct {
	db *sql.DB
}

const expenseColumns = "id, amount, category, date, note, payment_type"

// OpenExpenseStore opens (creating if needed) the expense database at
// dbPath and brings its schema up to date.
func OpenExpenseStore(dbPath string) (*ExpenseStore, error) {
	db, err := openDatabase(dbPath, "expenses")
	if err != nil {
		return nil, err
	}
	return &ExpenseStore{db: db}, nil
}

func (s *ExpenseStore) Close() error {
	return s.db.Close()
}

// Create inserts the expense and returns the assigned id.
func (s *ExpenseStore) Create(ctx context.Context, e core.Expense) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (amount, category, date, note, payment_type) VALUES (?, ?, ?, ?, ?)",
		e.Amount, e.Category, e.Date, e.Note, e.PaymentType,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"id", id,
		"category", e.Category,
		"date", e.Date,
		"payment_type", e.PaymentType)

	return id, nil
}

// Update replaces all mutable fields of the record matching e.ID and
// returns the number of rows affected (0 if the id does not exist).
func (s *ExpenseStore) Update(ctx context.Context, e core.Expense) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET amount = ?, category = ?, date = ?, note = ?, payment_type = ? WHERE id = ?",
		e.Amount, e.Category, e.Date, e.Note, e.PaymentType, e.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Delete removes the record with the given id. Deleting an unknown id is
// not an error; it reports 0 rows affected.
func (s *ExpenseStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// ListAll returns every expense ordered by date descending.
func (s *ExpenseStore) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.list(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY date DESC")
}

// ListByCategory returns expenses with an exact category match, ordered by
// date descending.
func (s *ExpenseStore) ListByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	return s.list(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE category = ? ORDER BY date DESC",
		category)
}

// ListByDateRange returns expenses dated inclusively between start and
// end, ordered by date descending.
func (s *ExpenseStore) ListByDateRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	return s.list(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE date BETWEEN ? AND ? ORDER BY date DESC",
		start, end)
}

// MonthlySummary sums amounts per category for expenses whose date starts
// with the given YYYY-MM prefix.
func (s *ExpenseStore) MonthlySummary(ctx context.Context, monthPrefix string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, SUM(amount) AS total FROM expenses WHERE date LIKE ? GROUP BY category",
		monthPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("query monthly summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}
	return summary, nil
}

func (s *ExpenseStore) list(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.Date, &note, &e.PaymentType); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.Note = note.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return expenses, nil
}

// openDatabase opens a SQLite file, verifies the connection and runs the
// named migration set against it.
func openDatabase(dbPath, migrationDir string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath, migrationDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}
