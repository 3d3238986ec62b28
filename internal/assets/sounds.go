package assets

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/snowtrack/internal/engine/audio"
)

// Sound file locations.
const (
	soundDir  = "sound/"
	musicFile = soundDir + "music.wav"
	snowFile  = soundDir + "snowloop.wav"
)

// SoundSink receives decoded sound data.
type SoundSink interface {
	LoadCue(cue audio.Cue, data []byte) error
	LoadMusic(data []byte) error
	LoadSnow(data []byte) error
}

// CuePath returns the asset path of a cue.
func CuePath(cue audio.Cue) string {
	return soundDir + cue.String() + ".wav"
}

// LoadSounds loads every cue, the music and the snow loop into sink in
// parallel. Missing files are skipped, the game plays silently without them.
// Returns how many sounds were loaded.
func (m *Manager) LoadSounds(ctx context.Context, sink SoundSink) (int, error) {
	type job struct {
		path string
		load func([]byte) error
	}

	var jobs []job
	for _, cue := range audio.Cues() {
		jobs = append(jobs, job{CuePath(cue), func(data []byte) error { return sink.LoadCue(cue, data) }})
	}
	jobs = append(jobs,
		job{musicFile, sink.LoadMusic},
		job{snowFile, sink.LoadSnow},
	)

	var loaded atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := m.Load(j.path)
			if errors.Is(err, ErrNotFound) {
				m.log.Warn("sound missing", zap.String("path", j.path))
				return nil
			}
			if err != nil {
				return err
			}
			if err := j.load(data); err != nil {
				return fmt.Errorf("%s: %w", j.path, err)
			}
			loaded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(loaded.Load()), err
	}
	m.log.Info("sounds loaded", zap.Int32("loaded", loaded.Load()), zap.Int("total", len(jobs)))
	return int(loaded.Load()), nil
}
