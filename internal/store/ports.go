// Package store defines the narrow ports the presentation and service
// layers depend on, keeping the storage engine swappable.
//
// The stores perform no semantic validation: any well-typed value that
// passes column constraints is persisted as-is. Business rules (amount
// positivity, category membership, username length, email syntax) are the
// caller's responsibility.
package store

import (
	"context"

	"spendlog/internal/core"
)

// ExpenseStore owns the expenses relation.
//
// Listing operations order by date descending; ordering among equal dates
// is storage order and not specified. Update and Delete report the number
// of rows affected, so a missing id yields 0 rather than an error.
type ExpenseStore interface {
	// Create inserts a new record and returns the assigned id.
	Create(ctx context.Context, e core.Expense) (int64, error)

	// Update replaces all mutable fields of the record matching e.ID.
	Update(ctx context.Context, e core.Expense) (int64, error)

	// Delete removes the record with the given id. Idempotent.
	Delete(ctx context.Context, id int64) (int64, error)

	// ListAll returns every record, newest date first.
	ListAll(ctx context.Context) ([]core.Expense, error)

	// ListByCategory filters to an exact category match.
	ListByCategory(ctx context.Context, category string) ([]core.Expense, error)

	// ListByDateRange filters to dates inclusively between start and end,
	// compared lexicographically (correct for ISO dates).
	ListByDateRange(ctx context.Context, start, end string) ([]core.Expense, error)

	// MonthlySummary groups expenses whose date starts with the YYYY-MM
	// prefix by category and sums their amounts. Categories with no
	// expenses that month are absent from the map, not zero-valued.
	MonthlySummary(ctx context.Context, monthPrefix string) (map[string]float64, error)
}

// UserStore owns the users relation.
type UserStore interface {
	// Register digests u.Password and inserts the user. It returns false
	// on any insert failure, uniqueness violations included; the cause is
	// logged but deliberately not surfaced. Callers wanting precise
	// feedback pre-check with UsernameExists and EmailExists.
	Register(ctx context.Context, u core.User) bool

	// Login returns the user matching username and password digest, with
	// the password field scrubbed to "". An unknown username and a wrong
	// password both yield (nil, nil); the two are indistinguishable on
	// purpose.
	Login(ctx context.Context, username, password string) (*core.User, error)

	// UsernameExists reports whether a user with this exact username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether a user with this exact email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
}
