// Package main initializes and starts the passbook credential manager:
// configuration, logging, the administrator gate, the store (migrating the
// legacy database when present), and the interactive menu.
package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"go.uber.org/zap"

	"passbook/internal/auth"
	"passbook/internal/cli"
	"passbook/internal/config"
	"passbook/internal/crypto"
	"passbook/internal/logger"
	"passbook/internal/storage"
)

// loginAttempts is how many times the administrator may fail before exit.
const loginAttempts = 3

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// The administrator must authenticate before anything is decrypted.
	gate := auth.NewGate(options.AdminUser, options.AdminHash, zapLogger)
	session, err := login(gate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Too many failed attempts. Closing.")
		os.Exit(1)
	}

	// Key the cipher for this session and load the database, migrating the
	// legacy text file when it is the only source present.
	cipher := crypto.New(session.AdminPassword)
	store := storage.New(options.DataFile, cipher, zapLogger)
	if err := store.Load(); err != nil {
		var formatErr *storage.FormatError
		if errors.As(err, &formatErr) {
			fmt.Fprintf(os.Stderr, "The legacy database could not be migrated: %v\n", formatErr)
			fmt.Fprintln(os.Stderr, "Fix or remove the legacy file and try again.")
		} else {
			fmt.Fprintf(os.Stderr, "cannot load database: %v\n", err)
		}
		zapLogger.Error("database load failed", zap.Error(err))
		os.Exit(1)
	}

	app := cli.New(store, cipher, zapLogger)
	if err := app.Run(); err != nil {
		zapLogger.Fatal("session ended with error", zap.Error(err))
	}
}

// login prompts for administrator credentials up to loginAttempts times.
func login(gate *auth.Gate) (*auth.Session, error) {
	for attempt := 1; attempt <= loginAttempts; attempt++ {
		var username, password string
		if err := survey.AskOne(&survey.Input{Message: "Administrator login:"}, &username); err != nil {
			return nil, err
		}
		if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password); err != nil {
			return nil, err
		}

		session, err := gate.Login(username, password)
		if err == nil {
			return session, nil
		}
		fmt.Printf("Invalid credentials. Attempts left: %d\n", loginAttempts-attempt)
	}
	return nil, auth.ErrBadCredentials
}
