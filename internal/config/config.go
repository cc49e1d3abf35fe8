package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the user-tunable settings. The tool only ever reads it; there
// is no command that writes the file back.
type Config struct {
	// DefaultRoot is the directory scanned when none is given. Empty means
	// the user's home directory; a leading "~" expands to it.
	DefaultRoot      string `json:"default_root"`
	// MaxDepth bounds how deep a scan descends; 0 walks the whole tree.
	MaxDepth         int    `json:"max_depth"`
	EnableLogging    bool   `json:"enable_logging"`
	LogRetentionDays int    `json:"log_retention_days"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultRoot:      "",
		MaxDepth:         0,
		EnableLogging:    true,
		LogRetentionDays: 30,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hanzi-tidy", "config.json"), nil
}

// Load reads the configuration from disk, falling back to defaults when the
// file is absent.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. Fields absent from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.LogRetentionDays <= 0 {
		cfg.LogRetentionDays = defaults.LogRetentionDays
	}
	return cfg, nil
}

// RootDir resolves DefaultRoot to an absolute path.
func (cfg *Config) RootDir() (string, error) {
	root := cfg.DefaultRoot
	if root == "" || root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(root, "~"), "/"))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return abs, nil
}
