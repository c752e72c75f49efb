// Command billpoint is a terminal client for the BillPoint auth service. It
// keeps its session in a local SQLite state file so login survives between
// invocations, exactly as the mobile client does.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/billpoint/billpoint/pkg/authsdk"
	"github.com/billpoint/billpoint/pkg/keystore"
	"github.com/billpoint/billpoint/pkg/session"
	"github.com/billpoint/billpoint/pkg/slogx"
)

const usage = `Usage: billpoint <command> [flags]

Commands:
  signup   Register a new account
  login    Authenticate and store the session
  whoami   Show the signed-in account
  logout   End the session

Environment:
  BILLPOINT_SERVER      Backend base URL (default http://localhost:8080)
  BILLPOINT_STATE_FILE  Session state file (default ~/.billpoint/state.db)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "billpoint:", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	ctx := context.Background()

	logger := slogx.New(slogx.Config{
		Service: "billpoint",
		Env:     "cli",
		Level:   envOrDefault("BILLPOINT_LOG_LEVEL", "warn"),
		Format:  "text",
	})

	store, err := openStateStore()
	if err != nil {
		return err
	}
	defer store.Close()

	client := authsdk.NewClient(envOrDefault("BILLPOINT_SERVER", "http://localhost:8080"))
	client.Logger = logger

	manager := session.New(ctx, client, store, logger)
	defer manager.Close()

	switch command {
	case "signup":
		return runSignup(ctx, manager, args)
	case "login":
		return runLogin(ctx, manager, args)
	case "whoami":
		return runWhoami(manager)
	case "logout":
		return runLogout(ctx, manager)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runSignup(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "account username (required)")
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "postal address")
	_ = fs.Parse(args)

	if *username == "" || *email == "" || *password == "" {
		return fmt.Errorf("signup requires -username, -email and -password")
	}

	err := manager.Signup(ctx, authsdk.SignupParams{
		Username:    *username,
		Email:       *email,
		Password:    *password,
		PhoneNumber: *phone,
		Address:     *address,
	})
	if err != nil {
		return err
	}

	state := manager.State()
	fmt.Printf("Signed up as %s <%s>\n", state.User.Username, state.User.Email)
	return nil
}

func runLogin(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	if err := manager.Login(ctx, *email, *password); err != nil {
		return err
	}

	state := manager.State()
	fmt.Printf("Logged in as %s <%s>\n", state.User.Username, state.User.Email)
	return nil
}

func runWhoami(manager *session.Manager) error {
	state := manager.State()
	if state.Phase != session.PhaseAuthenticated || state.User == nil {
		return fmt.Errorf("not logged in")
	}

	user := state.User
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	if user.PhoneNumber != "" {
		fmt.Println("phone:  ", user.PhoneNumber)
	}
	if user.Address != "" {
		fmt.Println("address:", user.Address)
	}
	return nil
}

func runLogout(ctx context.Context, manager *session.Manager) error {
	if err := manager.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func openStateStore() (keystore.Store, error) {
	path := os.Getenv("BILLPOINT_STATE_FILE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".billpoint", "state.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	store, err := keystore.OpenSQLite(fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}
	return store, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
