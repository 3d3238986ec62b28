// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig holds game data file paths.
type DataConfig struct {
	AssetDir string `yaml:"asset_dir"` // Directory holding textures, models and sounds
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"` // 0 = unlimited
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	MusicVolume  float32 `yaml:"music_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	RoundSeconds float32 `yaml:"round_seconds"`
	Attachments  int     `yaml:"attachments"`  // Decorations dispersed over the track
	Seed         uint64  `yaml:"seed"`         // 0 picks a seed at startup
	Lookahead    int     `yaml:"lookahead"`    // Sections drawn ahead of the player
	TorchLights  int     `yaml:"torch_lights"` // Nearest torches lit per frame
	ShowFPS      bool    `yaml:"show_fps"`
}

// PhysicsConfig holds the tuning of the snowball simulation.
type PhysicsConfig struct {
	Mass            float32 `yaml:"mass"`
	SideForce       float32 `yaml:"side_force"` // Per unit of mass, keyboard steering
	TiltForce       float32 `yaml:"tilt_force"` // Per unit of mass and degree of device tilt
	MaxTilt         float32 `yaml:"max_tilt"`   // Degrees
	Propulsion      float32 `yaml:"propulsion"` // Per unit of mass
	MinSpeed        float32 `yaml:"min_speed"`
	MaxSpeed        float32 `yaml:"max_speed"`
	WallRestitution float32 `yaml:"wall_restitution"`
	WallLift        float32 `yaml:"wall_lift"` // Per unit of mass
	Gravity         float32 `yaml:"gravity"`
	GrowthRate      float32 `yaml:"growth_rate"` // Meters of radius per second
	InitialRadius   float32 `yaml:"initial_radius"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1136,
			Height:     640,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Game: GameConfig{
			RoundSeconds: 60,
			Attachments:  40,
			Seed:         0,
			Lookahead:    9,
			TorchLights:  5,
			ShowFPS:      false,
		},
		Physics: PhysicsConfig{
			Mass:            10,
			SideForce:       700,
			TiltForce:       40,
			MaxTilt:         15,
			Propulsion:      150,
			MinSpeed:        10,
			MaxSpeed:        15,
			WallRestitution: 0.6,
			WallLift:        60,
			Gravity:         9.8065,
			GrowthRate:      0.02,
			InitialRadius:   0.25,
		},
		Data: DataConfig{
			AssetDir: "data",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
