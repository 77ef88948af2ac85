package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/xmdash/internal/errors"
	"gopkg.in/yaml.v3"
)

const fileHeader = `xmdash configuration.
Environment variables (XMDASH_URL, XMDASH_INTERVAL, ...) and flags override these values.`

// fileConfig is the on-disk shape. Durations are written as strings so the
// file stays readable and round-trips through viper.
type fileConfig struct {
	URL      string `yaml:"url,omitempty"`
	Interval string `yaml:"interval,omitempty"`
	Timeout  string `yaml:"timeout"`
	Store    string `yaml:"store"`
	StateDir string `yaml:"state_dir,omitempty"`
}

// Marshal renders cfg as a commented YAML document.
func Marshal(cfg *Config) ([]byte, error) {
	out := fileConfig{
		URL:      cfg.URL,
		Timeout:  cfg.Timeout.String(),
		Store:    cfg.Store,
		StateDir: cfg.StateDir,
	}
	if cfg.Interval > 0 {
		out.Interval = cfg.Interval.String()
	}

	var doc yaml.Node
	if err := doc.Encode(out); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	doc.HeadComment = fileHeader

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return buf.Bytes(), nil
}

// Write saves cfg to path, creating parent directories as needed.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file "+path,
			"Check file permissions")
	}
	return nil
}
