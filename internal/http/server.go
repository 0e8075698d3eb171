// Package http is the JSON presentation layer over the stores. All
// semantic validation (field presence, formats, enum membership) happens
// here; the stores persist whatever they are handed.
package http

import (
	"net/http"

	"spendlog/internal/middleware/trace"
	"spendlog/internal/services"
	"spendlog/internal/session"
	"spendlog/internal/store"
)

type server struct {
	expenses *services.ExpenseService
	users    store.UserStore
	sessions *session.Manager
}

// NewServer returns a configured http.Server listening on addr.
func NewServer(addr string, expenses *services.ExpenseService, users store.UserStore, sessions *session.Manager) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: NewHandler(expenses, users, sessions),
	}
}

// NewHandler builds the API routes with tracing applied.
func NewHandler(expenses *services.ExpenseService, users store.UserStore, sessions *session.Manager) http.Handler {
	s := &server{
		expenses: expenses,
		users:    users,
		sessions: sessions,
	}
	return trace.Middleware(s.routes())
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)

	mux.Handle("GET /api/expenses", s.requireSession(s.handleListExpenses))
	mux.Handle("POST /api/expenses", s.requireSession(s.handleCreateExpense))
	mux.Handle("PUT /api/expenses/{id}", s.requireSession(s.handleUpdateExpense))
	mux.Handle("DELETE /api/expenses/{id}", s.requireSession(s.handleDeleteExpense))
	mux.Handle("GET /api/summary", s.requireSession(s.handleMonthlySummary))

	return mux
}

// requireSession gates expense operations on the local logged-in flag,
// the way the original screens checked it before rendering.
func (s *server) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.IsLoggedIn() {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	})
}
