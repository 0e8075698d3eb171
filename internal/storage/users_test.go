package storage

import (
	"context"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
)

func newTestUserStore(t *testing.T) *UserStore {
	t.Helper()
	s, err := OpenUserStore(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("OpenUserStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func alice() core.User {
	return core.User{
		Username: "alice1",
		Email:    "a@x.com",
		Password: "secret1",
		FullName: "Alice A",
	}
}

func TestUserStore_RegisterAndLogin(t *testing.T) {
	s := newTestUserStore(t)
	ctx := context.Background()

	if !s.Register(ctx, alice()) {
		t.Fatal("Register returned false for a fresh user")
	}

	exists, err := s.UsernameExists(ctx, "alice1")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Error("UsernameExists(alice1) = false after register")
	}

	u, err := s.Login(ctx, "alice1", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u == nil {
		t.Fatal("Login with correct password returned nil")
	}
	if u.Username != "alice1" || u.Email != "a@x.com" || u.FullName != "Alice A" {
		t.Errorf("Login returned %+v", u)
	}
	if u.Password != "" {
		t.Errorf("Login returned non-empty password field %q", u.Password)
	}
	if u.ID <= 0 {
		t.Errorf("Login returned id %d, want > 0", u.ID)
	}
}

func TestUserStore_LoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestUserStore(t)
	ctx := context.Background()

	if !s.Register(ctx, alice()) {
		t.Fatal("Register failed")
	}

	wrongPass, err := s.Login(ctx, "alice1", "wrong")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	unknownUser, err := s.Login(ctx, "nobody99", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if wrongPass != nil || unknownUser != nil {
		t.Errorf("wrong password -> %v, unknown user -> %v; both must be nil",
			wrongPass, unknownUser)
	}
}

func TestUserStore_DuplicateRegisterFails(t *testing.T) {
	s := newTestUserStore(t)
	ctx := context.Background()

	if !s.Register(ctx, alice()) {
		t.Fatal("first Register failed")
	}

	dup := alice()
	dup.Email = "other@x.com" // same username, different email
	if s.Register(ctx, dup) {
		t.Error("Register with duplicate username returned true")
	}

	dup = alice()
	dup.Username = "alice2" // same email, different username
	if s.Register(ctx, dup) {
		t.Error("Register with duplicate email returned true")
	}

	// No duplicate row was created.
	u, err := s.Login(ctx, "alice1", "secret1")
	if err != nil || u == nil {
		t.Fatalf("Login after duplicate attempts: %v, %v", u, err)
	}
}

func TestUserStore_ExistenceChecks(t *testing.T) {
	s := newTestUserStore(t)
	ctx := context.Background()

	checks := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"unknown username", func() (bool, error) { return s.UsernameExists(ctx, "alice1") }, false},
		{"unknown email", func() (bool, error) { return s.EmailExists(ctx, "a@x.com") }, false},
	}
	for _, c := range checks {
		got, err := c.check()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}

	if !s.Register(ctx, alice()) {
		t.Fatal("Register failed")
	}

	if got, _ := s.UsernameExists(ctx, "alice1"); !got {
		t.Error("UsernameExists(alice1) = false after register")
	}
	if got, _ := s.EmailExists(ctx, "a@x.com"); !got {
		t.Error("EmailExists(a@x.com) = false after register")
	}
	if got, _ := s.UsernameExists(ctx, "ALICE1"); got {
		t.Error("username existence check is not exact-match")
	}
}
