package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/snowtrack/internal/track"
)

func TestTorchLight(t *testing.T) {
	torch := track.Torch{LightPos: mgl32.Vec3{1, 2.5, 3}}
	light := TorchLight(torch)

	assert.Equal(t, [3]float32{1, 2.5, 3}, light.Position)
	assert.Equal(t, float32(TorchRange), light.Range)
	assert.Equal(t, float32(TorchIntensity), light.Intensity)
	assert.InDelta(t, 94.0/255, light.Color[2], 1e-6)
}

func TestFromTorchesKeepsOrder(t *testing.T) {
	torches := []track.Torch{
		{LightPos: mgl32.Vec3{0, 0, 1}},
		{LightPos: mgl32.Vec3{0, 0, 2}},
	}
	lights := FromTorches(torches)
	require.Len(t, lights, 2)
	assert.Equal(t, float32(2), lights[1].Position[2])

	assert.NotNil(t, FromTorches(nil))
}

func TestPointLightBufferTruncates(t *testing.T) {
	b := NewPointLightBuffer()
	lights := make([]PointLight, MaxPointLights+3)
	for i := range lights {
		lights[i].Range = float32(i + 1)
	}

	b.SetLights(lights)
	assert.Equal(t, MaxPointLights, b.Count)
	assert.False(t, b.AddLight(PointLight{}))

	ranges := b.GetRanges()
	assert.Len(t, ranges, MaxPointLights)
	assert.Equal(t, float32(MaxPointLights), ranges[MaxPointLights-1])
}

func TestPointLightBufferFlatArrays(t *testing.T) {
	b := NewPointLightBuffer()
	require.True(t, b.AddLight(PointLight{Position: [3]float32{1, 2, 3}, Color: [3]float32{.1, .2, .3}, Intensity: .6}))

	pos := b.GetPositions()
	assert.Len(t, pos, MaxPointLights*3)
	assert.Equal(t, []float32{1, 2, 3, 0}, pos[:4])
	assert.Equal(t, []float32{.1, .2, .3}, b.GetColors()[:3])
	assert.Equal(t, float32(.6), b.GetIntensities()[0])

	b.Clear()
	assert.Zero(t, b.Count)
	assert.Equal(t, float32(0), b.GetPositions()[0])
}

func TestSuns(t *testing.T) {
	suns := Suns()
	for _, s := range suns {
		assert.InDelta(t, 1, s.Direction.Len(), 1e-5)
		assert.Less(t, s.Direction.Y(), float32(0))
	}
	assert.Equal(t, float32(0.4), suns[0].Intensity)
	assert.Equal(t, float32(0.25), suns[1].Intensity)

	dirs, colors := SunUniforms(suns)
	assert.Len(t, dirs, 6)
	assert.Equal(t, []float32{.4, .4, .4, .25, .25, .25}, colors)
}
