package config

import (
	"fmt"

	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/storage"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig, "No config loaded", "")
	}

	if cfg.URL != "" && !dashboard.ValidateURL(cfg.URL) {
		return errors.New(errors.ErrConfigInvalid,
			fmt.Sprintf("Endpoint '%s' is not a valid http:// or https:// URL", cfg.URL),
			"Use the full summary URL, e.g. http://127.0.0.1:8080/1/summary")
	}

	if cfg.Interval < 0 || (cfg.Interval > 0 && cfg.Interval < MinInterval) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use %s or more, or 0 to keep the last used rate", MinInterval))
	}

	if cfg.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Request timeout must be positive (got %s)", cfg.Timeout),
			"Try something like 8s")
	}

	switch cfg.Store {
	case storage.BackendFile, storage.BackendSQLite:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown store backend '%s'", cfg.Store),
			"Use 'file' or 'sqlite'")
	}

	return nil
}
