// Package config handles loading and saving civicdash configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/civicdash/config.yaml
//   - State:  ~/.local/state/civicdash/ (debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appDir = "civicdash"

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultRole       string `yaml:"default_role,omitempty"`        // Preselected role in the login form
	TransitionDelayMs int    `yaml:"transition_delay_ms,omitempty"` // Delay before a section renders
	EntryAnimationMs  int    `yaml:"entry_animation_ms,omitempty"`  // Login panel highlight after logout
	ContentWidth      int    `yaml:"content_width,omitempty"`       // Max content width, 0 = terminal width
	WatchConfig       bool   `yaml:"watch_config,omitempty"`        // Re-apply this file when it changes
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// Config is the top-level configuration for civicdash.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			TransitionDelayMs: 50,
			EntryAnimationMs:  800,
		},
		Logging: LoggingConfig{
			Level: "debug",
		},
	}
}

// TransitionDelay returns the navigation render delay.
func (c Config) TransitionDelay() time.Duration {
	return time.Duration(c.UI.TransitionDelayMs) * time.Millisecond
}

// EntryAnimation returns how long the login panel stays highlighted.
func (c Config) EntryAnimation() time.Duration {
	return time.Duration(c.UI.EntryAnimationMs) * time.Millisecond
}

// LogFile returns the debug log path, defaulting into the state directory.
func (c Config) LogFile() string {
	if c.Logging.File != "" {
		return expandHome(c.Logging.File)
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "debug.log")
}

// ConfigDir returns the XDG config directory for civicdash.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// StateDir returns the XDG state directory for civicdash.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appDir)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.UI.TransitionDelayMs < 0 {
		c.UI.TransitionDelayMs = def.UI.TransitionDelayMs
	}
	if c.UI.EntryAnimationMs < 0 {
		c.UI.EntryAnimationMs = def.UI.EntryAnimationMs
	}
	if c.UI.ContentWidth < 0 {
		c.UI.ContentWidth = 0
	}
	c.UI.DefaultRole = strings.TrimSpace(c.UI.DefaultRole)
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
		c.Logging.Level = strings.ToLower(c.Logging.Level)
	default:
		c.Logging.Level = def.Logging.Level
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
