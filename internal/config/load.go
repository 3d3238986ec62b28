package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit must not be negative", ErrInvalid)
	case c.Game.RoundSeconds <= 0:
		return fmt.Errorf("%w: round_seconds must be positive", ErrInvalid)
	case c.Game.Attachments < 0:
		return fmt.Errorf("%w: attachments must not be negative", ErrInvalid)
	case c.Game.TorchLights < 0:
		return fmt.Errorf("%w: torch_lights must not be negative", ErrInvalid)
	case c.Game.Lookahead < 1:
		return fmt.Errorf("%w: lookahead must be at least 1", ErrInvalid)
	case c.Physics.Mass <= 0:
		return fmt.Errorf("%w: mass must be positive", ErrInvalid)
	case c.Physics.InitialRadius <= 0:
		return fmt.Errorf("%w: initial_radius must be positive", ErrInvalid)
	case c.Physics.MinSpeed > c.Physics.MaxSpeed:
		return fmt.Errorf("%w: min_speed %.2f above max_speed %.2f", ErrInvalid, c.Physics.MinSpeed, c.Physics.MaxSpeed)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Snowtrack")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Snowtrack")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "snowtrack")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "snowtrack")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
