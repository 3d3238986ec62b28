// Package app assembles a playable world from configuration: the track, the
// decoration pool and the game session. The assembly needs no window or GPU
// so tools and tests share it with the client.
package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/wire"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/config"
	"github.com/Faultbox/snowtrack/internal/engine/audio"
	"github.com/Faultbox/snowtrack/internal/engine/camera"
	"github.com/Faultbox/snowtrack/internal/game"
	"github.com/Faultbox/snowtrack/internal/game/attachment"
	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/internal/track"
)

// Seed picks the decoration seed.
type Seed uint64

// Aspect is the viewport aspect ratio of the chase camera.
type Aspect float32

// World is a ready session on the built track.
type World struct {
	Config  *config.Config
	Track   *track.Track
	Pool    *attachment.Pool
	Session *game.Session
	Tuning  game.Tuning
	Seed    Seed
}

// ProviderSet provides a World from a config, a cue player, a clock and an aspect.
var ProviderSet = wire.NewSet(
	ProvideSeed,
	ProvideTuning,
	ProvideTrack,
	ProvidePool,
	ProvideCamera,
	ProvideSession,
	wire.Struct(new(World), "*"),
)

// ProvideSeed returns the configured seed, or a random one when unset.
func ProvideSeed(cfg *config.Config) Seed {
	if cfg.Game.Seed != 0 {
		return Seed(cfg.Game.Seed)
	}
	return Seed(rand.Uint64())
}

// ProvideTuning returns the simulation tuning of cfg.
func ProvideTuning(cfg *config.Config) game.Tuning {
	return game.NewTuning(cfg.Game, cfg.Physics)
}

// ProvideTrack builds the course.
func ProvideTrack() (*track.Track, error) {
	spec := track.DefineTrack()
	t, _, err := track.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("build track: %w", err)
	}
	logger.Named("app").Info("track built",
		zap.Int("sections", t.SectionCount()),
		zap.Int("torches", len(t.Torches())),
		zap.Float32("length", spec.TotalLength()),
		zap.String("fingerprint", fmt.Sprintf("%016x", t.Fingerprint())),
	)
	return t, nil
}

// ProvidePool allocates the decorations.
func ProvidePool(tuning game.Tuning, seed Seed) *attachment.Pool {
	p := attachment.NewPool(uint64(seed))
	p.Allocate(tuning.Attachments)
	return p
}

// ProvideCamera creates the chase camera.
func ProvideCamera(aspect Aspect) *camera.ChaseCamera {
	return camera.NewChaseCamera(float32(aspect))
}

// ProvideSession creates the session and starts its first round.
func ProvideSession(t *track.Track, pool *attachment.Pool, cam *camera.ChaseCamera,
	cues audio.CuePlayer, clock clockwork.Clock, tuning game.Tuning) (*game.Session, error) {
	s, err := game.NewSession(game.Deps{
		Track:  t,
		Pool:   pool,
		Camera: cam,
		Cues:   cues,
		Clock:  clock,
	}, tuning)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s.Reset()
	return s, nil
}
