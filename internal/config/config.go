// Package config resolves where aidant keeps its data and loads .env overrides.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/keyring"
	"github.com/julianstephens/aidant/internal/logger"
)

const (
	EnvConfig       = "AIDANT_CONFIG"
	EnvDebug        = "AIDANT_DEBUG"
	EnvDBConnection = "AIDANT_DB_CONNECTION"
	EnvDocsDir      = "AIDANT_DOCS_DIR"
)

// Config holds process-level settings. Application settings live in the settings store.
type Config struct {
	// Path is a .db/.json file path or a PostgreSQL connection string.
	Path    string
	Debug   bool
	DocsDir string
}

// LoadEnvFiles loads each existing .env file. Variables already present in the
// environment are never overridden, and missing files are skipped.
func LoadEnvFiles(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		p = ExpandPath(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Warn("Failed to load env file", "path", p, "error", err)
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		Path:    getEnv(EnvConfig, constants.DefaultConfigPath),
		Debug:   getEnvBool(EnvDebug, false),
		DocsDir: getEnv(EnvDocsDir, "."),
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}

// IsPostgres reports whether the config value is a PostgreSQL connection string.
func IsPostgres(p string) bool {
	return strings.HasPrefix(p, "postgres://") || strings.HasPrefix(p, "postgresql://")
}

// ConfigDir returns the directory holding logs, backups and lock files.
func ConfigDir(p string) string {
	if IsPostgres(p) || p == "" {
		return filepath.Dir(ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(ExpandPath(p))
}

// ResolveConnectionString returns the PostgreSQL connection string to use,
// preferring AIDANT_DB_CONNECTION, then the OS keyring, then the given value.
func ResolveConnectionString(p string) string {
	if v := os.Getenv(EnvDBConnection); v != "" {
		return v
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil && connStr != "" {
		return connStr
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes" || value == "oui"
	}
	return b
}
