package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the slotshare
// service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	PublicBaseURL string
	BasicAuthUser string
	BasicAuthHash string
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; invalid values are collected and
// reported together. Basic auth is enabled only when both the user and the
// argon2id hash are set.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:slotshare.db?_journal_mode=wal",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SLOTSHARE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SLOTSHARE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SLOTSHARE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if base := strings.TrimSpace(os.Getenv("SLOTSHARE_PUBLIC_BASE_URL")); base != "" {
		cfg.PublicBaseURL = strings.TrimRight(base, "/")
	}

	cfg.BasicAuthUser = strings.TrimSpace(os.Getenv("SLOTSHARE_BASIC_AUTH_USER"))
	cfg.BasicAuthHash = strings.TrimSpace(os.Getenv("SLOTSHARE_BASIC_AUTH_HASH"))
	if (cfg.BasicAuthUser == "") != (cfg.BasicAuthHash == "") {
		invalid = append(invalid, "SLOTSHARE_BASIC_AUTH_USER/SLOTSHARE_BASIC_AUTH_HASH")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	}

	return cfg, nil
}

// BasicAuthEnabled reports whether the loaded configuration enables HTTP
// basic authentication.
func (c Config) BasicAuthEnabled() bool {
	return c.BasicAuthUser != "" && c.BasicAuthHash != ""
}
