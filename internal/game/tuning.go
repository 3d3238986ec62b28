package game

import (
	"github.com/Faultbox/snowtrack/internal/config"
)

// Collision constants.
const (
	wallSkin        = 0.05 // extra push-out past the wall
	floorSkin       = 0.05 // slack for the on-floor flag
	bounceThreshold = 1    // m/s into the floor before a landing bounces
	bounceDamping   = 0.01 // vertical share kept by a bounce
	locateHalfSpan  = 1000 // vertical reach of the localization query
)

// Tuning holds the numbers the simulation step is driven by.
type Tuning struct {
	RoundSeconds float32
	Attachments  int
	Lookahead    int
	TorchLights  int

	Mass            float32
	SideForce       float32
	TiltForce       float32
	MaxTilt         float32
	Propulsion      float32
	MinSpeed        float32
	MaxSpeed        float32
	WallRestitution float32
	WallLift        float32
	Gravity         float32
	GrowthRate      float32
	InitialRadius   float32
}

// DefaultTuning returns the tuning of the default configuration.
func DefaultTuning() Tuning {
	cfg := config.Default()
	return NewTuning(cfg.Game, cfg.Physics)
}

// NewTuning builds a tuning from the game and physics config sections.
func NewTuning(g config.GameConfig, p config.PhysicsConfig) Tuning {
	return Tuning{
		RoundSeconds:    g.RoundSeconds,
		Attachments:     g.Attachments,
		Lookahead:       g.Lookahead,
		TorchLights:     g.TorchLights,
		Mass:            p.Mass,
		SideForce:       p.SideForce,
		TiltForce:       p.TiltForce,
		MaxTilt:         p.MaxTilt,
		Propulsion:      p.Propulsion,
		MinSpeed:        p.MinSpeed,
		MaxSpeed:        p.MaxSpeed,
		WallRestitution: p.WallRestitution,
		WallLift:        p.WallLift,
		Gravity:         p.Gravity,
		GrowthRate:      p.GrowthRate,
		InitialRadius:   p.InitialRadius,
	}
}
