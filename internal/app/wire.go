//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package app

import (
	"github.com/google/wire"
	"github.com/jonboulle/clockwork"

	"github.com/Faultbox/snowtrack/internal/config"
	"github.com/Faultbox/snowtrack/internal/engine/audio"
)

// InitializeWorld builds a World.
func InitializeWorld(cfg *config.Config, cues audio.CuePlayer, clock clockwork.Clock, aspect Aspect) (*World, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
