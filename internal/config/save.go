package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SavePath returns the file Save writes to: the --config file when one was
// given, otherwise config.yaml in ConfigDir.
func SavePath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to SavePath.
func (c *Config) Save() error {
	return c.SaveTo(SavePath())
}

// SaveTo writes the config as YAML to path, creating parent directories.
// Invalid configs are not written so the next Load can still start.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
