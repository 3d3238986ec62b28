package assets

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/snowtrack/internal/engine/audio"
	"github.com/Faultbox/snowtrack/internal/track"
)

func TestManagerLoad(t *testing.T) {
	m := NewManagerFS(fstest.MapFS{
		"sound/pickup.wav": {Data: []byte("RIFF")},
	})

	data, err := m.Load("sound/pickup.wav")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)

	_, err = m.Load("./sound/pickup.wav")
	require.NoError(t, err)
	hits, misses := m.cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	_, err = m.Load("sound/missing.wav")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, m.Exists("sound/pickup.wav"))
	assert.False(t, m.Exists("sound/missing.wav"))

	m.Close()
	_, ok := m.cache.Peek("sound/pickup.wav")
	assert.False(t, ok)
}

type sink struct {
	mu    sync.Mutex
	cues  []audio.Cue
	music bool
	snow  bool
	err   error
}

func (s *sink) LoadCue(cue audio.Cue, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cues = append(s.cues, cue)
	return s.err
}

func (s *sink) LoadMusic([]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.music = true
	return s.err
}

func (s *sink) LoadSnow([]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snow = true
	return s.err
}

func TestLoadSoundsSkipsMissing(t *testing.T) {
	m := NewManagerFS(fstest.MapFS{
		CuePath(audio.CuePickup): {Data: []byte("a")},
		snowFile:                 {Data: []byte("b")},
	})
	s := &sink{}

	n, err := m.LoadSounds(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []audio.Cue{audio.CuePickup}, s.cues)
	assert.True(t, s.snow)
	assert.False(t, s.music)
}

func TestLoadSoundsDecodeError(t *testing.T) {
	m := NewManagerFS(fstest.MapFS{
		musicFile: {Data: []byte("not a wav")},
	})
	s := &sink{err: errors.New("decode wav: bad header")}

	_, err := m.LoadSounds(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), musicFile)
}

func TestLoadSoundsCanceled(t *testing.T) {
	m := NewManagerFS(fstest.MapFS{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.LoadSounds(ctx, &sink{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCuePath(t *testing.T) {
	assert.Equal(t, "sound/count1.wav", CuePath(audio.CueCount1))
	assert.Equal(t, "sound/wallhit.wav", CuePath(audio.CueWallHit))
}

func TestParseOBJ(t *testing.T) {
	src := `# quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 1
vn 0 1 0
f 1/1/1 2/2/1 3/2/1 4/1/1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, mesh.TriangleCount())

	// fan triangulation of the quad
	assert.Equal(t, [3]float32{0, 0, 0}, mesh.Vertices[3].Position)
	assert.Equal(t, [3]float32{1, 0, 1}, mesh.Vertices[4].Position)
	assert.Equal(t, [3]float32{0, 0, 1}, mesh.Vertices[5].Position)
	assert.Equal(t, [2]float32{1, 1}, mesh.Vertices[1].UV)
	for _, v := range mesh.Vertices {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
	}
}

func TestParseOBJFaceNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, mesh.TriangleCount())

	// counter-clockwise in the XY plane faces +Z
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal[2], 1e-6)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "# nothing\n"},
		{"no faces", "v 0 0 0\nv 1 0 0\nv 1 1 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrBadOBJ)
		})
	}
}

func TestParseOBJReadsTrackExport(t *testing.T) {
	tr, _, err := track.Build(track.DefineTrack()[:3])
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.ExportOBJ(&buf))

	mesh, err := ParseOBJ(&buf)
	require.NoError(t, err)

	want := 0
	for _, sec := range tr.Sections() {
		want += len(sec.Floor.Vertices) + len(sec.Walls.Vertices)
	}
	assert.Len(t, mesh.Vertices, want)

	// exported in world space
	first := tr.Section(0)
	p := mgl32.Vec3(first.Floor.Vertices[0].Position).Add(first.Position)
	assert.InDelta(t, 0, mgl32.Vec3(mesh.Vertices[0].Position).Sub(p).Len(), 1e-3)
}

func TestSphere(t *testing.T) {
	mesh := Sphere(2, 4, 6)
	// the pole rows have one triangle per slice
	assert.Equal(t, (2*4-2)*6, mesh.TriangleCount())
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 2, mgl32.Vec3(v.Position).Len(), 1e-5)
		assert.InDelta(t, 1, mgl32.Vec3(v.Normal).Len(), 1e-5)
	}
}

func TestTransformKeepsNormalsUnit(t *testing.T) {
	mesh := Transform(Sphere(1, 4, 6), mgl32.Scale3D(1, .5, 1))
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, mgl32.Vec3(v.Normal).Len(), 1e-5)
		assert.LessOrEqual(t, abs32(v.Position[1]), float32(.5)+1e-5)
	}
}

func TestBuiltinModels(t *testing.T) {
	models := BuiltinModels()
	for name, mesh := range map[string]*track.Mesh{
		"ball": models.Ball, "pebble": models.Pebble, "carrot": models.Carrot, "hat": models.Hat,
	} {
		require.NotNil(t, mesh, name)
		assert.NotZero(t, mesh.TriangleCount(), name)
		assert.Zero(t, len(mesh.Vertices)%3, name)
	}

	// the carrot is centered along its length
	var minZ, maxZ float32
	for _, v := range models.Carrot.Vertices {
		minZ, maxZ = min(minZ, v.Position[2]), max(maxZ, v.Position[2])
	}
	assert.InDelta(t, -.75, minZ, 1e-5)
	assert.InDelta(t, .75, maxZ, 1e-5)
}

func TestLoadModelsPrefersFiles(t *testing.T) {
	m := NewManagerFS(fstest.MapFS{
		hatFile: {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
	})

	models, err := m.LoadModels()
	require.NoError(t, err)
	assert.Equal(t, 1, models.Hat.TriangleCount())
	assert.Equal(t, CarrotMesh().TriangleCount(), models.Carrot.TriangleCount())
}

func TestLoadModelsBadFile(t *testing.T) {
	m := NewManagerFS(fstest.MapFS{
		carrotFile: {Data: []byte("f 1 2 3\n")},
	})

	_, err := m.LoadModels()
	assert.ErrorIs(t, err, ErrBadOBJ)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
