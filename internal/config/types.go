package config

import (
	"time"

	"github.com/rileyhilliard/xmdash/internal/storage"
)

const (
	// DefaultTimeout bounds a single summary request.
	DefaultTimeout = 8 * time.Second
	// MinInterval is the fastest polling interval a config may ask for.
	MinInterval = time.Second
)

// Config holds the dashboard settings read from the config file, the
// environment and command-line flags.
type Config struct {
	// URL replaces the persisted endpoint at startup when set.
	URL string `yaml:"url,omitempty" mapstructure:"url"`

	// Interval replaces the persisted refresh rate when positive.
	// Zero keeps whatever rate was stored last (10s on first run).
	Interval time.Duration `yaml:"interval,omitempty" mapstructure:"interval"`

	// Timeout for a single summary request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Store selects the state backend: "file" or "sqlite".
	Store string `yaml:"store" mapstructure:"store"`

	// StateDir is where history, endpoint and refresh rate are kept.
	// Empty means the per-user default.
	StateDir string `yaml:"state_dir,omitempty" mapstructure:"state_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout: DefaultTimeout,
		Store:   storage.BackendFile,
	}
}

// ResolvedStateDir returns the state directory with ~ expanded, or the
// per-user default when none is configured.
func (c *Config) ResolvedStateDir() string {
	if c.StateDir == "" {
		return storage.DefaultDir()
	}
	return ExpandTilde(c.StateDir)
}
