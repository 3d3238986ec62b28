package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1136 {
		t.Errorf("expected width 1136, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 640 {
		t.Errorf("expected height 640, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test audio defaults
	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("expected master volume 0.8, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Audio.Muted {
		t.Error("expected audio to be enabled by default")
	}

	// Test game defaults
	if cfg.Game.RoundSeconds != 60 {
		t.Errorf("expected 60s rounds, got %f", cfg.Game.RoundSeconds)
	}
	if cfg.Game.Attachments != 40 {
		t.Errorf("expected 40 attachments, got %d", cfg.Game.Attachments)
	}
	if cfg.Game.Lookahead != 9 {
		t.Errorf("expected lookahead 9, got %d", cfg.Game.Lookahead)
	}
	if cfg.Game.TorchLights != 5 {
		t.Errorf("expected 5 torch lights, got %d", cfg.Game.TorchLights)
	}

	// Test physics defaults
	if cfg.Physics.Mass != 10 {
		t.Errorf("expected mass 10, got %f", cfg.Physics.Mass)
	}
	if cfg.Physics.Gravity != 9.8065 {
		t.Errorf("expected gravity 9.8065, got %f", cfg.Physics.Gravity)
	}
	if cfg.Physics.WallRestitution != 0.6 {
		t.Errorf("expected wall restitution 0.6, got %f", cfg.Physics.WallRestitution)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

audio:
  master_volume: 0.5
  muted: true

game:
  round_seconds: 90
  attachments: 25
  seed: 1234
  show_fps: true

physics:
  gravity: 4.9
  side_force: 500

data:
  asset_dir: "/opt/snowtrack/data"

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}
	// Keys absent from the file keep their defaults
	if cfg.Audio.MusicVolume != 0.7 {
		t.Errorf("expected default music volume 0.7, got %f", cfg.Audio.MusicVolume)
	}

	if cfg.Game.RoundSeconds != 90 {
		t.Errorf("expected 90s rounds, got %f", cfg.Game.RoundSeconds)
	}
	if cfg.Game.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Game.Seed)
	}
	if cfg.Physics.Gravity != 4.9 {
		t.Errorf("expected gravity 4.9, got %f", cfg.Physics.Gravity)
	}
	if cfg.Physics.Mass != 10 {
		t.Errorf("expected default mass 10, got %f", cfg.Physics.Mass)
	}
	if cfg.Data.AssetDir != "/opt/snowtrack/data" {
		t.Errorf("unexpected asset dir %s", cfg.Data.AssetDir)
	}
	if cfg.Logging.LogFile != "game.log" {
		t.Errorf("expected log file 'game.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative fps limit", func(c *Config) { c.Graphics.FPSLimit = -1 }},
		{"zero round", func(c *Config) { c.Game.RoundSeconds = 0 }},
		{"negative torch lights", func(c *Config) { c.Game.TorchLights = -1 }},
		{"negative attachments", func(c *Config) { c.Game.Attachments = -1 }},
		{"no lookahead", func(c *Config) { c.Game.Lookahead = 0 }},
		{"zero mass", func(c *Config) { c.Physics.Mass = 0 }},
		{"zero radius", func(c *Config) { c.Physics.InitialRadius = 0 }},
		{"inverted speed band", func(c *Config) { c.Physics.MinSpeed = 20 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Game.Seed = 99
	cfg.Physics.GrowthRate = 0.05
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Game.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Game.Seed)
	}
	if loaded.Physics.GrowthRate != 0.05 {
		t.Errorf("expected growth rate 0.05, got %f", loaded.Physics.GrowthRate)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Game.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 42 },
			verify: func(cfg *Config) {
				if cfg.Game.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Game.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected audio muted with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
game:
  seed: 7
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height and seed come from the file since no flag overrides them
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Game.Seed != 7 {
		t.Errorf("expected seed 7 from file, got %d", cfg.Game.Seed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("physics:\n  mass: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
