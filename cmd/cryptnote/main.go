// Command cryptnote is a terminal client for the CryptNote API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"cryptnote-backend/internal/client"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &app{
		in:           os.Stdin,
		out:          os.Stdout,
		readPassword: terminalPassword,
	}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultTokenFile() string {
	if v := os.Getenv("CRYPTNOTE_TOKEN_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cryptnote_token")
}

func defaultAPIURL() string {
	if v := os.Getenv("CRYPTNOTE_API"); v != "" {
		return v
	}
	return "http://localhost:5000"
}

func newSession(apiURL, tokenFile string) (*client.Session, error) {
	tokens, err := client.NewTokenStore(tokenFile)
	if err != nil {
		return nil, err
	}
	return client.NewSession(apiURL, tokens, client.DefaultInactivityWindow), nil
}

var requestTimeout = 30 * time.Second
