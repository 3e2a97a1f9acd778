// Package config resolves client configuration: the backend base URL and
// the per-user config directory.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the local development backend.
const DefaultBaseURL = "http://localhost:3000/api"

// LoadDotenv loads a .env file from the working directory when present.
// A missing file is not an error.
func LoadDotenv() {
	_ = godotenv.Load()
}

// BaseURL returns the backend base URL from PRESSKIT_API_URL, defaulting to
// the local development address.
func BaseURL() string {
	if v := strings.TrimSpace(os.Getenv("PRESSKIT_API_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultBaseURL
}

// Dir returns the per-user config directory.
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.presskit).
	if v := strings.TrimSpace(os.Getenv("PRESSKIT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".presskit"), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// LogLevel returns the diagnostic log level name (PRESSKIT_LOG), empty for
// quiet.
func LogLevel() string {
	return strings.ToLower(strings.TrimSpace(envOr("PRESSKIT_LOG", "")))
}
