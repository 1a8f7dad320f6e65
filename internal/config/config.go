package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP boundary
	Port string

	// Database
	DBPath string

	// Logging
	LogLevel slog.Level

	// Server timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8090"),
		DBPath:       getEnv("GREENTIME_DB_PATH", defaultDBPath()),
		LogLevel:     parseLevel(getEnv("LOG_LEVEL", "info")),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:  getEnvDuration("IDLE_TIMEOUT", 60*time.Second),
	}
	return cfg
}

// defaultDBPath resolves the per-user application data location, falling
// back to the working directory when no user config dir is available.
func defaultDBPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "greentime", "greentime.db")
	}
	return filepath.Join("data", "greentime.db")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	if c.ReadTimeout < time.Second || c.ReadTimeout > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid read timeout %v: must be between 1s and 1m", c.ReadTimeout))
	}
	if c.WriteTimeout < time.Second || c.WriteTimeout > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid write timeout %v: must be between 1s and 1m", c.WriteTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
