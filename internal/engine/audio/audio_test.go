package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestVolumeConversion(t *testing.T) {
	// Test volume to dB conversion
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestGainToVolume(t *testing.T) {
	tests := []struct {
		gain, want float64
	}{
		{1, 0},
		{0.1, -1},
		{0.01, -2},
		{0, -10},
	}

	for _, tt := range tests {
		if got := gainToVolume(tt.gain); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("gainToVolume(%f) = %f, want %f", tt.gain, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestCueGains(t *testing.T) {
	tests := []struct {
		cue     Cue
		name    string
		gain    float64
		jitters bool
	}{
		{CueCount1, "count1", 1, false},
		{CueCount2, "count2", 1, false},
		{CuePickup, "pickup", .5, true},
		{CueWallHit, "wallhit", .5, true},
		{CueFanfare, "fanfare", .4, false},
		{CueSlam, "slam", .7, false},
	}

	if len(Cues()) != len(tests) {
		t.Fatalf("Cues() has %d entries, want %d", len(Cues()), len(tests))
	}
	for _, tt := range tests {
		if tt.cue.String() != tt.name {
			t.Errorf("cue %d name = %q, want %q", tt.cue, tt.cue.String(), tt.name)
		}
		if tt.cue.Gain() != tt.gain {
			t.Errorf("%s gain = %f, want %f", tt.name, tt.cue.Gain(), tt.gain)
		}
		if tt.cue.Jitters() != tt.jitters {
			t.Errorf("%s jitters = %v, want %v", tt.name, tt.cue.Jitters(), tt.jitters)
		}
	}
}

func TestSnowGain(t *testing.T) {
	tests := []struct {
		name    string
		onFloor bool
		speed   float32
		want    float64
	}{
		{"airborne", false, 20, AirSnowGain},
		{"stopped", true, 0, 0},
		{"half speed", true, 6, .35 * .25},
		{"fraction truncated", true, 6.9, .35 * .25},
		{"top speed", true, 12, .35},
		{"beyond top speed", true, 30, .35},
	}

	for _, tt := range tests {
		got := SnowGain(tt.onFloor, tt.speed)
		if got < tt.want-1e-6 || got > tt.want+1e-6 {
			t.Errorf("%s: SnowGain = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New(1)
	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Check default volumes
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetMusicVolume() != 1.0 {
		t.Errorf("default music volume = %f, want 1.0", m.GetMusicVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}
}

func TestSetVolume(t *testing.T) {
	m := New(1)

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}

	// Test clamping
	m.SetMasterVolume(2.0)
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.GetMasterVolume())
	}

	m.SetMasterVolume(-1.0)
	if m.GetMasterVolume() != 0.0 {
		t.Errorf("master volume = %f, want 0.0 (clamped)", m.GetMasterVolume())
	}
}

// silentWAV encodes n frames of silence at the given rate.
func silentWAV(t *testing.T, rate beep.SampleRate, n int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(n), format); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read wav: %v", err)
	}
	return data
}

func TestLoadCue(t *testing.T) {
	m := New(1)

	if err := m.LoadCue(CueSlam, silentWAV(t, DefaultSampleRate, 441)); err != nil {
		t.Fatalf("LoadCue: %v", err)
	}
	if !m.Loaded(CueSlam) {
		t.Error("slam should be loaded")
	}
	if m.Loaded(CuePickup) {
		t.Error("pickup should not be loaded")
	}

	// Other sample rates are resampled on load
	if err := m.LoadCue(CuePickup, silentWAV(t, 22050, 220)); err != nil {
		t.Fatalf("LoadCue resampled: %v", err)
	}
	if !m.Loaded(CuePickup) {
		t.Error("pickup should be loaded")
	}

	if err := m.LoadCue(CueCount1, []byte("not a wav")); err == nil {
		t.Error("expected decode error for garbage data")
	}
	if err := m.LoadCue(Cue(42), silentWAV(t, DefaultSampleRate, 10)); err == nil {
		t.Error("expected error for unknown cue")
	}
}

func TestPlayWithoutSpeaker(t *testing.T) {
	m := New(1)
	if err := m.LoadMusic(silentWAV(t, DefaultSampleRate, 4410)); err != nil {
		t.Fatalf("LoadMusic: %v", err)
	}

	// Playback calls are no-ops until Init
	m.Play(CueFanfare)
	m.StartMusic(0)
	m.StartSnow()
	m.SetPlayerInfo(true, 10)
	m.StopSnow()
	m.StopMusic()
	m.Close()

	if m.musicCtrl != nil || m.snowCtrl != nil || m.cueCtrl != nil {
		t.Error("no stream should be active without a speaker")
	}
}

func TestLoopStreamer(t *testing.T) {
	buf := beep.NewBuffer(beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Silence(10))

	loop := &loopStreamer{buf: buf}
	loop.rewind()

	samples := make([][2]float64, 35)
	n, ok := loop.Stream(samples)
	if n != 35 || !ok {
		t.Errorf("Stream = (%d, %v), want (35, true)", n, ok)
	}

}
