package http

import (
	"log/slog"
	"net/http"
	"strings"

	"spendlog/internal/core"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type sessionResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Username   string `json:"username,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	Email      string `json:"email,omitempty"`
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u := core.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: strings.TrimSpace(req.Password),
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := u.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if len(u.Password) < 6 {
		writeError(w, http.StatusUnprocessableEntity, "password must be at least 6 characters")
		return
	}

	// Pre-check uniqueness for precise feedback; the store's own failure
	// signal is binary.
	if taken, err := s.users.UsernameExists(r.Context(), u.Username); err != nil {
		s.internalError(w, r, "check username", err)
		return
	} else if taken {
		writeError(w, http.StatusConflict, "username already exists")
		return
	}
	if taken, err := s.users.EmailExists(r.Context(), u.Email); err != nil {
		s.internalError(w, r, "check email", err)
		return
	} else if taken {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	if !s.users.Register(r.Context(), u) {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "username and password required")
		return
	}

	u, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		s.internalError(w, r, "login", err)
		return
	}
	if u == nil {
		// Unknown username and wrong password answer identically.
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := s.sessions.CreateLoginSession(u.Username, u.FullName, u.Email); err != nil {
		s.internalError(w, r, "persist session", err)
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "username", u.Username)

	writeJSON(w, http.StatusOK, userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(); err != nil {
		s.internalError(w, r, "clear session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *server) handleSession(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{IsLoggedIn: s.sessions.IsLoggedIn()}
	if resp.IsLoggedIn {
		d := s.sessions.UserDetails()
		resp.Username = d.Username
		resp.FullName = d.FullName
		resp.Email = d.Email
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "Request failed",
		"operation", op,
		"path", r.URL.Path,
		"error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
