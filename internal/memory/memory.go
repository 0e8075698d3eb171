// Package memory provides in-memory implementations of the store ports,
// used as the test backend and for running without a database on disk.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"spendlog/internal/auth"
	"spendlog/internal/core"
)

type ExpenseStore struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{nextID: 1}
}

func (s *ExpenseStore) Create(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID, nil
}

func (s *ExpenseStore) Update(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == e.ID {
			s.items[i] = e
			return 1, nil
		}
	}
	return 0, nil
}

func (s *ExpenseStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *ExpenseStore) ListAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByDateDesc(s.items), nil
}

func (s *ExpenseStore) ListByCategory(_ context.Context, category string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return sortedByDateDesc(out), nil
}

func (s *ExpenseStore) ListByDateRange(_ context.Context, start, end string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	return sortedByDateDesc(out), nil
}

func (s *ExpenseStore) MonthlySummary(_ context.Context, monthPrefix string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := make(map[string]float64)
	for _, e := range s.items {
		if strings.HasPrefix(e.Date, monthPrefix) {
			summary[e.Category] += e.Amount
		}
	}
	return summary, nil
}

// sortedByDateDesc copies and sorts without reordering equal dates, so
// insertion order is preserved within a date like the SQLite store.
func sortedByDateDesc(in []core.Expense) []core.Expense {
	out := append([]core.Expense(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

type UserStore struct {
	mu     sync.Mutex
	nextID int64
	users  []core.User // Password holds the digest
}

func NewUserStore() *UserStore {
	return &UserStore{nextID: 1}
}

func (s *UserStore) Register(_ context.Context, u core.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return false
		}
	}
	u.ID = s.nextID
	s.nextID++
	u.Password = auth.HashPassword(u.Password)
	s.users = append(s.users, u)
	return true
}

func (s *UserStore) Login(_ context.Context, username, password string) (*core.User, error) {
	digest := auth.HashPassword(password)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username && u.Password == digest {
			u.Password = ""
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
