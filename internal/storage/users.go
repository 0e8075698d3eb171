package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"spendlog/internal/auth"
	"spendlog/internal/core"
)

type UserStore struct {
	db *sql.DB
}

// OpenUserStore opens (creating if needed) the user database at dbPath
// and brings its schema up to date. Users live in their own database
// file, separate from expenses.
func OpenUserStore(dbPath string) (*UserStore, error) {
	db, err := openDatabase(dbPath, "users")
	if err != nil {
		return nil, err
	}
	return &UserStore{db: db}, nil
}

func (s *UserStore) Close() error {
	return s.db.Close()
}

// Register digests the password and inserts the user. Any insert failure,
// uniqueness violations included, collapses to false: callers are expected
// to have pre-checked with UsernameExists/EmailExists, making this a
// defense-in-depth path rather than the primary enforcement. The cause is
// logged but not surfaced, so a duplicate and an I/O failure look the same
// to the caller.
func (s *UserStore) Register(ctx context.Context, u core.User) bool {
	digest := auth.HashPassword(u.Password)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password, full_name) VALUES (?, ?, ?, ?)",
		u.Username, u.Email, digest, u.FullName,
	)
	if err != nil {
		slog.WarnContext(ctx, "User registration failed",
			"username", u.Username,
			"error", err)
		return false
	}

	slog.InfoContext(ctx, "User registered", "username", u.Username)
	return true
}

// Login matches username and password digest exactly. A missing username
// and a wrong password both return (nil, nil) so login gives no
// username-existence oracle. The password field of the result is scrubbed.
func (s *UserStore) Login(ctx context.Context, username, password string) (*core.User, error) {
	digest := auth.HashPassword(password)
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, full_name FROM users WHERE username = ? AND password = ?",
		username, digest,
	)

	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Password = ""
	return &u, nil
}

// UsernameExists reports whether a user with this exact username exists.
func (s *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username)
}

// EmailExists reports whether a user with this exact email exists.
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email)
}

func (s *UserStore) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("query existence: %w", err)
	}
	return exists, nil
}
