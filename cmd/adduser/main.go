// Command adduser registers a user account from the terminal, for
// bootstrapping an installation without going through the API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"spendlog/internal/core"
	"spendlog/internal/storage"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username (min 4 characters)")
	email := fs.String("email", "", "Email address")
	fullName := fs.String("name", "", "Full display name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", "./data/users.db", "Path to users database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" || *fullName == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> -email <email> -name <full name> [-password <password>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user, email, name")
	}

	if path := os.Getenv("USERS_DB_PATH"); path != "" && *dbPath == "./data/users.db" {
		*dbPath = path
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	u := core.User{
		Username: strings.TrimSpace(*username),
		Email:    strings.TrimSpace(*email),
		Password: strings.TrimSpace(password),
		FullName: strings.TrimSpace(*fullName),
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if len(u.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	users, err := storage.OpenUserStore(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open users database: %w", err)
	}
	defer users.Close()

	ctx := context.Background()
	if taken, err := users.UsernameExists(ctx, u.Username); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("username %s already exists", u.Username)
	}
	if taken, err := users.EmailExists(ctx, u.Email); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("email %s already registered", u.Email)
	}

	if !users.Register(ctx, u) {
		return fmt.Errorf("registration failed")
	}

	fmt.Fprintf(stdout, "User %s created successfully\n", u.Username)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Hidden input when stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal input (tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
