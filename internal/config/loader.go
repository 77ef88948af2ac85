package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the config file, relative to home.
	GlobalConfigDir = ".config/xmdash"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. XMDASH_URL.
	EnvPrefix = "XMDASH"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"url":       "url",
	"interval":  "interval",
	"timeout":   "timeout",
	"store":     "store",
	"state-dir": "state_dir",
}

// DefaultPath returns ~/.config/xmdash/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. ~/.config/xmdash/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if global := DefaultPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}
	return "", nil
}

// Load builds the config from defaults, the config file at path (skipped
// when path is empty), XMDASH_* environment variables and the changed
// flags in flags, in increasing order of precedence. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'xmdash init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.WrapWithCode(err, errors.ErrConfig,
						"Failed to bind flag --"+name, "")
				}
			}
		}
	}

	return parseConfig(v, path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "the environment and flags"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where+" (durations look like 10s or 1m)")
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	return cfg, nil
}

// setDefaults registers every key so environment variables are picked up
// by Unmarshal even when the config file does not mention them.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("url", def.URL)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("store", def.Store)
	v.SetDefault("state_dir", def.StateDir)
}
