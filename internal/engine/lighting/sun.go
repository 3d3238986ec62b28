package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSuns is the number of directional lights the shader takes.
const MaxSuns = 2

// Sun is a directional light.
type Sun struct {
	Direction mgl32.Vec3 // normalized, pointing away from the sun
	Color     [3]float32
	Intensity float32
}

// Suns returns the two fixed directional lights: a key light from the front
// left and a weaker fill from the back right.
func Suns() [MaxSuns]Sun {
	return [MaxSuns]Sun{
		{Direction: mgl32.Vec3{-0.8, -0.7, -0.4}.Normalize(), Color: [3]float32{1, 1, 1}, Intensity: 0.4},
		{Direction: mgl32.Vec3{0.8, -0.55, 0.4}.Normalize(), Color: [3]float32{1, 1, 1}, Intensity: 0.25},
	}
}

// SunUniforms flattens suns into direction and premultiplied color arrays
// for GPU upload.
func SunUniforms(suns [MaxSuns]Sun) (dirs, colors []float32) {
	dirs = make([]float32, 0, MaxSuns*3)
	colors = make([]float32, 0, MaxSuns*3)
	for _, s := range suns {
		dirs = append(dirs, s.Direction[:]...)
		colors = append(colors, s.Color[0]*s.Intensity, s.Color[1]*s.Intensity, s.Color[2]*s.Intensity)
	}
	return dirs, colors
}
