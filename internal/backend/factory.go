// Package backend selects and wires the configured store implementations.
package backend

import (
	"fmt"
	"io"
	"log/slog"

	"spendlog/internal/config"
	"spendlog/internal/memory"
	"spendlog/internal/storage"
	"spendlog/internal/store"
)

// Stores bundles the opened store ports with whatever needs closing.
type Stores struct {
	Expenses store.ExpenseStore
	Users    store.UserStore

	closers []io.Closer
}

// Open builds the stores for cfg.DataBackend.
func Open(cfg *config.Config) (*Stores, error) {
	switch cfg.DataBackend {
	case "sqlite":
		expenses, err := storage.OpenExpenseStore(cfg.ExpensesDBPath)
		if err != nil {
			return nil, fmt.Errorf("open expense store: %w", err)
		}
		users, err := storage.OpenUserStore(cfg.UsersDBPath)
		if err != nil {
			expenses.Close()
			return nil, fmt.Errorf("open user store: %w", err)
		}
		slog.Info("Initialized sqlite backend",
			"expenses_db", cfg.ExpensesDBPath,
			"users_db", cfg.UsersDBPath)
		return &Stores{
			Expenses: expenses,
			Users:    users,
			closers:  []io.Closer{expenses, users},
		}, nil

	case "memory":
		slog.Info("Initialized memory backend")
		return &Stores{
			Expenses: memory.NewExpenseStore(),
			Users:    memory.NewUserStore(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// Close closes every store that holds resources.
func (s *Stores) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
