// ABOUTME: Configuration loader for the igv-admin console
// ABOUTME: Reads .env and environment variables with defaults for API endpoints and local state

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL  = "http://localhost:5000/api"
	DefaultAPIRoot = "http://localhost:5000"
	appDirName     = "igv-admin"
)

// Config holds the console settings
type Config struct {
	// REST API
	APIURL         string        // categories, products, product images, users
	APIRoot        string        // orders and the auth redirect host
	AuthURL        string        // host serving /auth/google (defaults to APIRoot)
	RequestTimeout time.Duration // per-request HTTP timeout

	// Local state
	ConfigDir    string // session file and debug log live here
	CallbackPort int    // loopback port for the login callback (0 = any free port)
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		APIURL:         strings.TrimRight(ensureScheme(getEnv("IGV_API_URL", DefaultAPIURL)), "/"),
		APIRoot:        strings.TrimRight(ensureScheme(getEnv("IGV_API_ROOT", DefaultAPIRoot)), "/"),
		RequestTimeout: time.Duration(getEnvInt("IGV_REQUEST_TIMEOUT", 30)) * time.Second,
		ConfigDir:      getEnv("IGV_CONFIG_DIR", DefaultConfigDir()),
		CallbackPort:   getEnvInt("IGV_CALLBACK_PORT", 0),
	}
	cfg.AuthURL = strings.TrimRight(ensureScheme(getEnv("IGV_AUTH_URL", cfg.APIRoot)), "/")

	if cfg.RequestTimeout <= 0 || cfg.RequestTimeout > 10*time.Minute {
		return nil, fmt.Errorf("IGV_REQUEST_TIMEOUT must be between 1 and 600 seconds, got %d", int(cfg.RequestTimeout/time.Second))
	}
	if cfg.CallbackPort < 0 || cfg.CallbackPort > 65535 {
		return nil, fmt.Errorf("IGV_CALLBACK_PORT must be between 0 and 65535, got %d", cfg.CallbackPort)
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
