// Package audio plays the game's sound cues, the background music and the
// rolling-snow loop.
package audio

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Playback rate jitter applied to jittering cues.
const rateJitter = .2

// Manager plays decoded sound buffers through the speaker. Every stream is
// routed through one mixer so stopping a stream never disturbs the others.
type Manager struct {
	mu sync.Mutex

	// State
	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer
	rng         *rand.Rand
	log         *zap.Logger

	// Decoded sounds
	cues  [cueCount]*beep.Buffer
	music *beep.Buffer
	snow  *beep.Buffer

	// Active streams
	musicCtrl *beep.Ctrl
	snowCtrl  *beep.Ctrl
	snowVol   *effects.Volume
	cueCtrl   *beep.Ctrl

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	musicVolume  float64
	sfxVolume    float64
}

// New creates a new audio manager. The seed drives the playback rate jitter.
func New(seed uint64) *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		mixer:        &beep.Mixer{},
		rng:          rand.New(rand.NewPCG(seed, seed>>1|1)),
		log:          logger.Named("audio"),
		masterVolume: 1.0,
		musicVolume:  1.0,
		sfxVolume:    1.0,
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("audio initialized",
		zap.Int("sampleRate", int(m.sampleRate)),
		zap.Float64("masterDb", volumeToDb(m.masterVolume)))
	return nil
}

// Close stops all streams and shuts down the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.stop(&m.musicCtrl)
	m.stop(&m.snowCtrl)
	m.stop(&m.cueCtrl)
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetMusicVolume sets the music volume (0.0 to 1.0).
func (m *Manager) SetMusicVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effects volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume
}

// GetMusicVolume returns the music volume.
func (m *Manager) GetMusicVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicVolume
}

// GetSFXVolume returns the effects volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sfxVolume
}

// LoadCue decodes WAV data for a cue.
func (m *Manager) LoadCue(cue Cue, data []byte) error {
	if cue >= cueCount {
		return fmt.Errorf("load cue %d: unknown cue", cue)
	}
	buf, err := m.decode(data)
	if err != nil {
		return fmt.Errorf("load cue %s: %w", cue, err)
	}

	m.mu.Lock()
	m.cues[cue] = buf
	m.mu.Unlock()
	return nil
}

// LoadMusic decodes WAV data for the background music.
func (m *Manager) LoadMusic(data []byte) error {
	buf, err := m.decode(data)
	if err != nil {
		return fmt.Errorf("load music: %w", err)
	}

	m.mu.Lock()
	m.music = buf
	m.mu.Unlock()
	return nil
}

// LoadSnow decodes WAV data for the rolling-snow loop.
func (m *Manager) LoadSnow(data []byte) error {
	buf, err := m.decode(data)
	if err != nil {
		return fmt.Errorf("load snow loop: %w", err)
	}

	m.mu.Lock()
	m.snow = buf
	m.mu.Unlock()
	return nil
}

// Loaded reports whether a cue has sample data.
func (m *Manager) Loaded(cue Cue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cue < cueCount && m.cues[cue] != nil
}

func (m *Manager) decode(data []byte) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled)
	return buf, nil
}

// Play starts a cue, cutting off the previous one.
func (m *Manager) Play(cue Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || cue >= cueCount || m.cues[cue] == nil {
		return
	}

	m.stop(&m.cueCtrl)

	buf := m.cues[cue]
	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if cue.Jitters() {
		ratio := 1 + (m.rng.Float64()-0.5)*rateJitter
		s = beep.ResampleRatio(4, ratio, s)
	}

	m.cueCtrl = m.start(s, cue.Gain()*m.sfxVolume)
}

// StartMusic plays the music from offsetSeconds. Offsets past the end are ignored.
func (m *Manager) StartMusic(offsetSeconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.music == nil || m.musicCtrl != nil {
		return
	}

	duration := m.sampleRate.D(m.music.Len()).Seconds()
	if offsetSeconds > duration-0.1 {
		return
	}
	from := m.sampleRate.N(time.Duration(gomath.Max(offsetSeconds, 0) * float64(time.Second)))

	m.musicCtrl = m.start(m.music.Streamer(from, m.music.Len()), MusicGain*m.musicVolume)
}

// StopMusic stops the music.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop(&m.musicCtrl)
}

// StartSnow starts the rolling-snow loop if it is not already playing.
func (m *Manager) StartSnow() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.snow == nil || m.snowCtrl != nil {
		return
	}

	loop := &loopStreamer{buf: m.snow}
	loop.rewind()
	m.snowVol = &effects.Volume{Streamer: loop, Base: 10}
	m.snowCtrl = &beep.Ctrl{Streamer: m.snowVol}
	m.setGain(m.snowVol, AirSnowGain)

	speaker.Lock()
	m.mixer.Add(m.snowCtrl)
	speaker.Unlock()
}

// StopSnow stops the rolling-snow loop.
func (m *Manager) StopSnow() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop(&m.snowCtrl)
	m.snowVol = nil
}

// SetPlayerInfo adjusts the snow loop to the player's contact and speed.
func (m *Manager) SetPlayerInfo(onFloor bool, speed float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snowVol == nil {
		return
	}
	speaker.Lock()
	m.setGain(m.snowVol, SnowGain(onFloor, speed))
	speaker.Unlock()
}

// start wraps s in volume and control and adds it to the mixer. Caller holds mu.
func (m *Manager) start(s beep.Streamer, gain float64) *beep.Ctrl {
	vol := &effects.Volume{Streamer: s, Base: 10}
	m.setGain(vol, gain)
	ctrl := &beep.Ctrl{Streamer: vol}

	speaker.Lock()
	m.mixer.Add(ctrl)
	speaker.Unlock()
	return ctrl
}

// stop detaches the stream behind ctrl so the mixer drops it. Caller holds mu.
func (m *Manager) stop(ctrl **beep.Ctrl) {
	if *ctrl == nil {
		return
	}
	speaker.Lock()
	(*ctrl).Streamer = nil
	speaker.Unlock()
	*ctrl = nil
}

func (m *Manager) setGain(vol *effects.Volume, gain float64) {
	g := gain * m.masterVolume
	vol.Silent = g <= 0
	vol.Volume = gainToVolume(g)
}

// gainToVolume converts a linear gain to the base-10 exponent effects.Volume uses.
func gainToVolume(gain float64) float64 {
	if gain <= 0 {
		return -10
	}
	return gomath.Log10(gain)
}

// volumeToDb converts a 0-1 volume to decibels, for logging.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loopStreamer plays a buffer over and over.
type loopStreamer struct {
	buf *beep.Buffer
	cur beep.StreamSeeker
}

func (l *loopStreamer) rewind() {
	l.cur = l.buf.Streamer(0, l.buf.Len())
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if l.buf.Len() == 0 {
		return 0, false
	}
	filled := 0
	for filled < len(samples) {
		n, ok := l.cur.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			l.rewind()
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return nil
}
