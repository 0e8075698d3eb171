package storage

import (
	"context"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
)

func newTestExpenseStore(t *testing.T) *ExpenseStore {
	t.Helper()
	s, err := OpenExpenseStore(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("OpenExpenseStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *ExpenseStore, e core.Expense) int64 {
	t.Helper()
	id, err := s.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

func TestExpenseStore_CreateAndListAll(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	in := core.Expense{
		Amount:      100.0,
		Category:    "Food",
		Date:        "2024-01-05",
		Note:        "groceries",
		PaymentType: "Cash",
	}
	id := mustCreate(t, s, in)
	if id <= 0 {
		t.Fatalf("Create returned id %d, want > 0", id)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListAll returned %d records, want 1", len(all))
	}

	got := all[0]
	want := in
	want.ID = id
	if got != want {
		t.Errorf("ListAll[0] = %+v, want %+v", got, want)
	}
}

func TestExpenseStore_EmptyNoteRoundTrips(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	mustCreate(t, s, core.Expense{
		Amount: 5, Category: "Bills", Date: "2024-03-01", PaymentType: "UPI",
	})

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all[0].Note != "" {
		t.Errorf("Note = %q, want empty", all[0].Note)
	}
}

func TestExpenseStore_ListAllOrdersByDateDescending(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-05", "2024-02-01", "2024-01-20"} {
		mustCreate(t, s, core.Expense{
			Amount: 10, Category: "Food", Date: date, PaymentType: "Cash",
		})
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	want := []string{"2024-02-01", "2024-01-20", "2024-01-05"}
	if len(all) != len(want) {
		t.Fatalf("ListAll returned %d records, want %d", len(all), len(want))
	}
	for i, e := range all {
		if e.Date != want[i] {
			t.Errorf("ListAll[%d].Date = %s, want %s", i, e.Date, want[i])
		}
	}
}

func TestExpenseStore_UpdateTouchesOnlyTargetRecord(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	id1 := mustCreate(t, s, core.Expense{
		Amount: 100, Category: "Food", Date: "2024-01-05", Note: "a", PaymentType: "Cash",
	})
	id2 := mustCreate(t, s, core.Expense{
		Amount: 50, Category: "Transport", Date: "2024-01-06", Note: "b", PaymentType: "Card",
	})

	updated := core.Expense{
		ID: id1, Amount: 120, Category: "Shopping", Date: "2024-01-07", Note: "edited", PaymentType: "UPI",
	}
	n, err := s.Update(ctx, updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n != 1 {
		t.Fatalf("Update affected %d rows, want 1", n)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	byID := make(map[int64]core.Expense, len(all))
	for _, e := range all {
		byID[e.ID] = e
	}
	if byID[id1] != updated {
		t.Errorf("updated record = %+v, want %+v", byID[id1], updated)
	}
	other := byID[id2]
	if other.Amount != 50 || other.Category != "Transport" || other.Note != "b" {
		t.Errorf("untouched record changed: %+v", other)
	}
}

func TestExpenseStore_UpdateUnknownIDAffectsZeroRows(t *testing.T) {
	s := newTestExpenseStore(t)

	n, err := s.Update(context.Background(), core.Expense{
		ID: 9999, Amount: 1, Category: "Food", Date: "2024-01-01", PaymentType: "Cash",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n != 0 {
		t.Errorf("Update affected %d rows, want 0", n)
	}
}

func TestExpenseStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	id := mustCreate(t, s, core.Expense{
		Amount: 10, Category: "Health", Date: "2024-05-01", PaymentType: "Cash",
	})

	n, err := s.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("first Delete affected %d rows, want 1", n)
	}

	n, err = s.Delete(ctx, id)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if n != 0 {
		t.Errorf("second Delete affected %d rows, want 0", n)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("record still present after delete: %+v", all)
	}
}

func TestExpenseStore_ListByCategoryPartitionsListAll(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	seed := []core.Expense{
		{Amount: 1, Category: "Food", Date: "2024-01-01", PaymentType: "Cash"},
		{Amount: 2, Category: "Food", Date: "2024-01-02", PaymentType: "Card"},
		{Amount: 3, Category: "Transport", Date: "2024-01-03", PaymentType: "UPI"},
		{Amount: 4, Category: "Bills", Date: "2024-01-04", PaymentType: "Net Banking"},
	}
	for _, e := range seed {
		mustCreate(t, s, e)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}

	total := 0
	for _, c := range core.Categories() {
		sub, err := s.ListByCategory(ctx, c)
		if err != nil {
			t.Fatalf("ListByCategory(%s): %v", c, err)
		}
		for _, e := range sub {
			if e.Category != c {
				t.Errorf("ListByCategory(%s) returned category %s", c, e.Category)
			}
		}
		total += len(sub)
	}
	if total != len(all) {
		t.Errorf("union over categories has %d records, ListAll has %d", total, len(all))
	}
}

func TestExpenseStore_ListByDateRangeInclusive(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	mustCreate(t, s, core.Expense{Amount: 100, Category: "Food", Date: "2024-01-05", PaymentType: "Cash"})
	mustCreate(t, s, core.Expense{Amount: 50, Category: "Food", Date: "2024-01-20", PaymentType: "Cash"})
	mustCreate(t, s, core.Expense{Amount: 30, Category: "Transport", Date: "2024-02-01", PaymentType: "Card"})

	got, err := s.ListByDateRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("ListByDateRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByDateRange returned %d records, want 2", len(got))
	}
	if got[0].Date != "2024-01-20" || got[1].Date != "2024-01-05" {
		t.Errorf("wrong order: %s then %s", got[0].Date, got[1].Date)
	}

	// Boundary dates are included.
	edge, err := s.ListByDateRange(ctx, "2024-01-05", "2024-01-05")
	if err != nil {
		t.Fatalf("ListByDateRange: %v", err)
	}
	if len(edge) != 1 {
		t.Errorf("boundary date excluded, got %d records", len(edge))
	}
}

func TestExpenseStore_MonthlySummary(t *testing.T) {
	s := newTestExpenseStore(t)
	ctx := context.Background()

	mustCreate(t, s, core.Expense{Amount: 100, Category: "Food", Date: "2024-01-05", PaymentType: "Cash"})
	mustCreate(t, s, core.Expense{Amount: 50, Category: "Food", Date: "2024-01-20", PaymentType: "Cash"})
	mustCreate(t, s, core.Expense{Amount: 30, Category: "Transport", Date: "2024-02-01", PaymentType: "Card"})

	summary, err := s.MonthlySummary(ctx, "2024-01")
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if len(summary) != 1 {
		t.Fatalf("summary has %d categories, want 1: %v", len(summary), summary)
	}
	if summary["Food"] != 150.0 {
		t.Errorf("summary[Food] = %v, want 150", summary["Food"])
	}
	if _, present := summary["Transport"]; present {
		t.Error("Transport present in January summary, want absent")
	}

	empty, err := s.MonthlySummary(ctx, "2023-12")
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("summary for empty month has %d entries, want 0", len(empty))
	}
}
