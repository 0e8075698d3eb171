package http

import (
	"net/http"
	"strconv"
	"strings"

	"spendlog/internal/core"
)

type expenseRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Note        string  `json:"note"`
	PaymentType string  `json:"paymentType"`
}

type expenseResponse struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Note        string  `json:"note"`
	PaymentType string  `json:"paymentType"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Note:        e.Note,
		PaymentType: e.PaymentType,
	}
}

func (s *server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.decodeExpense(w, r)
	if !ok {
		return
	}

	id, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		s.internalError(w, r, "create expense", err)
		return
	}

	e.ID = id
	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (s *server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	e, ok := s.decodeExpense(w, r)
	if !ok {
		return
	}
	e.ID = id

	n, err := s.expenses.Update(r.Context(), e)
	if err != nil {
		s.internalError(w, r, "update expense", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := s.expenses.Delete(r.Context(), id)
	if err != nil {
		s.internalError(w, r, "delete expense", err)
		return
	}
	// Delete is idempotent; report whether anything was removed.
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	category := strings.TrimSpace(q.Get("category"))

	var (
		expenses []core.Expense
		err      error
	)
	switch {
	case from != "" || to != "":
		if !core.ValidDate(from) || !core.ValidDate(to) {
			writeError(w, http.StatusUnprocessableEntity, "from and to must both be YYYY-MM-DD dates")
			return
		}
		expenses, err = s.expenses.ListByDateRange(r.Context(), from, to)
	case category != "" && category != core.CategoryAll:
		if !core.ValidCategory(category) {
			writeError(w, http.StatusUnprocessableEntity, "unknown category")
			return
		}
		expenses, err = s.expenses.ListByCategory(r.Context(), category)
	default:
		expenses, err = s.expenses.ListAll(r.Context())
	}
	if err != nil {
		s.internalError(w, r, "list expenses", err)
		return
	}

	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if !validMonth(month) {
		writeError(w, http.StatusUnprocessableEntity, "month must be YYYY-MM")
		return
	}

	summary, err := s.expenses.MonthlySummary(r.Context(), month)
	if err != nil {
		s.internalError(w, r, "monthly summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// decodeExpense parses and validates the request body, reporting problems
// to the client itself. The bool result says whether to continue.
func (s *server) decodeExpense(w http.ResponseWriter, r *http.Request) (core.Expense, bool) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return core.Expense{}, false
	}

	e := core.Expense{
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Date:        strings.TrimSpace(req.Date),
		Note:        strings.TrimSpace(req.Note),
		PaymentType: strings.TrimSpace(req.PaymentType),
	}
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return core.Expense{}, false
	}
	return e, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return 0, false
	}
	return id, true
}
