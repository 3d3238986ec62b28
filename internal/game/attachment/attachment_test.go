package attachment

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/snowtrack/internal/track"
)

func fixedTrack(t *testing.T) *track.Track {
	t.Helper()
	tr, _, err := track.Build(track.DefineTrack())
	require.NoError(t, err)
	return tr
}

func TestAllocateDistribution(t *testing.T) {
	p := NewPool(1)
	p.Allocate(1000)
	require.Len(t, p.All(), 1000)

	counts := map[Kind]int{}
	for _, inst := range p.All() {
		counts[inst.Kind]++
		assert.False(t, inst.Attached)
	}

	// .5 / .3 / .2 split, with generous slack
	assert.InDelta(t, 500, counts[KindPebble], 80)
	assert.InDelta(t, 300, counts[KindCarrot], 80)
	assert.InDelta(t, 200, counts[KindHat], 80)
}

func TestDisperseSkipsEnds(t *testing.T) {
	tr := fixedTrack(t)
	p := NewPool(7)
	p.Allocate(40)
	p.Disperse(tr)

	assert.Empty(t, p.InSection(0))
	for si := tr.SectionCount() - 3; si < tr.SectionCount(); si++ {
		assert.Empty(t, p.InSection(si), "section %d", si)
	}

	placed := 0
	for si := 1; si < tr.SectionCount()-3; si++ {
		for _, inst := range p.InSection(si) {
			placed++
			assert.True(t, inst.Bounds.Contains(inst.StaticPos))
			assert.Equal(t, inst.StaticPos, inst.Position)
		}
	}
	assert.Equal(t, 40, placed)
}

func TestDisperseWithinTrackWidth(t *testing.T) {
	tr := fixedTrack(t)
	p := NewPool(3)
	p.Allocate(40)
	p.Disperse(tr)

	for si := 1; si < tr.SectionCount()-3; si++ {
		for _, inst := range p.InSection(si) {
			probe := inst.StaticPos.Sub(mgl32.Vec3{0, 0.35, 0})
			info, ok := tr.FindObject(tr.Section(si).Bounds, probe)
			require.True(t, ok, "attachment in section %d is off the track", si)
			assert.GreaterOrEqual(t, info.SegHorizPos, float32(1.9))
			assert.LessOrEqual(t, info.SegHorizPos, float32(track.TrackWidth-1.9))
		}
	}
}

func TestDisperseDeterministicPerSeed(t *testing.T) {
	tr := fixedTrack(t)

	positions := func(seed uint64) []mgl32.Vec3 {
		p := NewPool(seed)
		p.Allocate(40)
		p.Disperse(tr)
		var out []mgl32.Vec3
		for si := 0; si < tr.SectionCount(); si++ {
			for _, inst := range p.InSection(si) {
				out = append(out, inst.StaticPos)
			}
		}
		return out
	}

	assert.Equal(t, positions(42), positions(42))
	assert.NotEqual(t, positions(42), positions(43))
}

func TestAttachDetach(t *testing.T) {
	tr := fixedTrack(t)
	p := NewPool(1)
	p.Allocate(40)
	p.Disperse(tr)

	inst := p.InSection(1)[0]
	playerPos := inst.Position.Sub(mgl32.Vec3{0, 0, 1})
	p.Attach(inst, playerPos, mgl32.QuatIdent())

	require.True(t, inst.Attached)
	assert.Equal(t, 1, p.AttachedCount())
	assert.Equal(t, 1, p.AttachedCountOf(inst.Kind))
	assert.Len(t, p.Attached(), 1)
	assert.True(t, inst.Position.ApproxEqual(mgl32.Vec3{0, 0, 1}), "attached on the touching side")
	assert.True(t, inst.Rotation.Rotate(mgl32.Vec3{0, 1, 0}).ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5))

	// Attaching twice is a no-op
	p.Attach(inst, mgl32.Vec3{}, mgl32.QuatIdent())
	assert.True(t, inst.Position.ApproxEqual(mgl32.Vec3{0, 0, 1}))

	p.Update(0.1, 0.5)
	assert.Equal(t, float32(2), inst.Scale)

	p.Detach(inst)
	assert.False(t, inst.Attached)
	assert.Equal(t, inst.StaticPos, inst.Position)
	assert.Equal(t, float32(1), inst.Scale)
	assert.Zero(t, p.AttachedCount())
}

func TestDisperseDetachesAll(t *testing.T) {
	tr := fixedTrack(t)
	p := NewPool(5)
	p.Allocate(20)
	p.Disperse(tr)

	for _, inst := range p.All() {
		p.Attach(inst, mgl32.Vec3{}, mgl32.QuatIdent())
	}
	require.Equal(t, 20, p.AttachedCount())

	p.Disperse(tr)
	assert.Zero(t, p.AttachedCount())
}

func TestUpdateHover(t *testing.T) {
	tr := fixedTrack(t)
	p := NewPool(1)
	p.Allocate(4)
	p.Disperse(tr)

	// A quarter period of the 3s hover cycle puts loose items at the top
	p.Update(0.75, 1)
	for _, inst := range p.All() {
		assert.InDelta(t, inst.StaticPos.Y()+0.3, inst.Position.Y(), 1e-4)
	}
}

func TestBindModels(t *testing.T) {
	p := NewPool(1)
	p.Allocate(30)
	p.BindModels(1, 2, 3)

	for _, inst := range p.All() {
		assert.Equal(t, track.MeshHandle(inst.Kind)+1, inst.Model)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pebble", KindPebble.String())
	assert.Equal(t, "carrot", KindCarrot.String())
	assert.Equal(t, "hat", KindHat.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
