package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/store"
)

// EventPublisher is satisfied by *amqp.Client. Nil means events are
// disabled.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, eventType string, expenseID int64) error
}

// ExpenseService fronts the expense store and notifies subscribers of
// changes. The store write always comes first; a failed publish is logged
// and never fails the operation, since the local record is the source of
// truth.
type ExpenseService struct {
	store     store.ExpenseStore
	publisher EventPublisher
}

func NewExpenseService(store store.ExpenseStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// Create inserts the expense and publishes a created event.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (int64, error) {
	id, err := s.store.Create(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, amqp.EventExpenseCreated, id)
	return id, nil
}

// Update replaces the record and publishes an updated event when a row
// was actually touched.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (int64, error) {
	n, err := s.store.Update(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	if n > 0 {
		s.publish(ctx, amqp.EventExpenseUpdated, e.ID)
	}
	return n, nil
}

// Delete removes the record and publishes a deleted event when a row was
// actually removed.
func (s *ExpenseService) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	if n > 0 {
		s.publish(ctx, amqp.EventExpenseDeleted, id)
	}
	return n, nil
}

func (s *ExpenseService) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListAll(ctx)
}

func (s *ExpenseService) ListByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	return s.store.ListByCategory(ctx, category)
}

func (s *ExpenseService) ListByDateRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	return s.store.ListByDateRange(ctx, start, end)
}

func (s *ExpenseService) MonthlySummary(ctx context.Context, monthPrefix string) (map[string]float64, error) {
	return s.store.MonthlySummary(ctx, monthPrefix)
}

func (s *ExpenseService) publish(ctx context.Context, eventType string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, eventType, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", eventType,
			"expense_id", id,
			"error", err)
	}
}

// Close closes the underlying store and publisher where they support it.
func (s *ExpenseService) Close() error {
	var errs []error

	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
