// Package config provides configuration for the application using
// command-line flags and environment variables. Environment variables take
// precedence over flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultAdminHash is the hex SHA-256 fingerprint of the default
// administrator password.
const DefaultAdminHash = "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"

// Options holds the configuration values for the application.
type Options struct {
	// DataFile is the path of the credential database. Empty means the
	// per-user default under the home directory.
	DataFile string `env:"PASSWORD_MANAGER_DATA"`

	// LogLevel sets the zap log level.
	LogLevel string `env:"PASSBOOK_LOG_LEVEL"`

	// AdminUser is the administrator login name.
	AdminUser string `env:"PASSBOOK_ADMIN_USER"`

	// AdminHash is the hex SHA-256 fingerprint the administrator password
	// is verified against.
	AdminHash string `env:"PASSBOOK_ADMIN_HASH"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.DataFile, "data", "", "path to the credential database file")
	flag.StringVar(&options.LogLevel, "log-level", "info", "log level: debug|info|warn|error")
	flag.StringVar(&options.AdminUser, "admin-user", "admin", "administrator login name")
	flag.StringVar(&options.AdminHash, "admin-hash", DefaultAdminHash, "hex SHA-256 of the administrator password")
}

// Parse parses command-line flags and environment variables, resolves the
// data file to an absolute path, and returns the configuration. The env
// var PASSWORD_MANAGER_DATA overrides the -data flag.
func Parse() (*Options, error) {
	flag.Parse()

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	path, err := resolveDataFile(options.DataFile)
	if err != nil {
		return nil, err
	}
	options.DataFile = path

	return options, nil
}

// resolveDataFile turns the configured path into an absolute one, falling
// back to ~/.password_manager/password_manager.json when unset.
func resolveDataFile(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, ".password_manager", "password_manager.json")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve data file path: %w", err)
	}
	return abs, nil
}
