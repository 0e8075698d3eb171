package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"spendlog/internal/storage"
)

func runAdduser(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_CreatesUser(t *testing.T) {
	db := filepath.Join(t.TempDir(), "users.db")

	out, err := runAdduser(t, []string{
		"-user", "alice1", "-email", "a@x.com", "-name", "Alice A",
		"-password", "secret1", "-db", db,
	}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "created successfully") {
		t.Errorf("stdout = %q", out)
	}

	users, err := storage.OpenUserStore(db)
	if err != nil {
		t.Fatalf("OpenUserStore: %v", err)
	}
	defer users.Close()

	u, err := users.Login(context.Background(), "alice1", "secret1")
	if err != nil || u == nil {
		t.Fatalf("Login after adduser: %v, %v", u, err)
	}
}

func TestRun_PromptsForPasswordOnPipe(t *testing.T) {
	db := filepath.Join(t.TempDir(), "users.db")

	_, err := runAdduser(t, []string{
		"-user", "alice1", "-email", "a@x.com", "-name", "Alice A", "-db", db,
	}, "secret1\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRun_Rejections(t *testing.T) {
	db := filepath.Join(t.TempDir(), "users.db")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing flags",
			args: []string{"-user", "alice1"},
			want: "missing required flags",
		},
		{
			name: "short username",
			args: []string{"-user", "al", "-email", "a@x.com", "-name", "A", "-password", "secret1", "-db", db},
			want: "username",
		},
		{
			name: "short password",
			args: []string{"-user", "alice1", "-email", "a@x.com", "-name", "A", "-password", "abc", "-db", db},
			want: "password must be at least 6 characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runAdduser(t, tt.args, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRun_DuplicateUser(t *testing.T) {
	db := filepath.Join(t.TempDir(), "users.db")
	args := []string{
		"-user", "alice1", "-email", "a@x.com", "-name", "Alice A",
		"-password", "secret1", "-db", db,
	}

	if _, err := runAdduser(t, args, ""); err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, err := runAdduser(t, args, "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("duplicate run err = %v", err)
	}
}
