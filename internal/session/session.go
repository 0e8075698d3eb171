// Package session persists the device-local "remember I'm logged in"
// flag set. One record per installation, no expiry, no tokens: this is a
// convenience flag, not a security boundary — anyone with access to the
// file can set it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Details are the cached profile fields. Empty strings mean unset.
type Details struct {
	Username string
	FullName string
	Email    string
}

type state struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
}

// Manager owns the session file. Construct one at startup and pass it to
// whichever component needs authentication status; there is no ambient
// global state.
type Manager struct {
	mu    sync.Mutex
	path  string
	state state
}

// NewManager loads any existing session from path. A missing file is the
// unset state: not logged in, no details.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &m.state); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return m, nil
}

// CreateLoginSession marks the user as logged in and caches the profile
// fields, overwriting any prior session unconditionally.
func (m *Manager) CreateLoginSession(username, fullName, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state{
		IsLoggedIn: true,
		Username:   username,
		FullName:   fullName,
		Email:      email,
	}
	return m.save()
}

// IsLoggedIn reports the persisted flag, false if never set.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsLoggedIn
}

// UserDetails returns the cached profile fields.
func (m *Manager) UserDetails() Details {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Details{
		Username: m.state.Username,
		FullName: m.state.FullName,
		Email:    m.state.Email,
	}
}

// Logout clears the whole flag set back to the unset state and removes
// the session file.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state{}
	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (m *Manager) save() error {
	if dir := filepath.Dir(m.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create session directory: %w", err)
		}
	}
	data, err := json.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
