// Package lighting provides the torch point lights and the fixed sun lights
// the track is rendered with.
package lighting

import (
	"github.com/Faultbox/snowtrack/internal/track"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// Torch light parameters.
const (
	TorchIntensity = 0.6
	TorchRange     = 12.0
)

// TorchColor is the warm light color of a torch flame.
var TorchColor = [3]float32{255.0 / 255, 247.0 / 255, 94.0 / 255}

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// TorchLight returns the point light emitted by a torch.
func TorchLight(t track.Torch) PointLight {
	return PointLight{
		Position:  t.LightPos,
		Color:     TorchColor,
		Range:     TorchRange,
		Intensity: TorchIntensity,
	}
}

// FromTorches converts torches to point lights, in the same order.
func FromTorches(torches []track.Torch) []PointLight {
	lights := make([]PointLight, 0, len(torches))
	for _, t := range torches {
		lights = append(lights, TorchLight(t))
	}
	return lights
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	count := min(len(lights), MaxPointLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// GetColors returns colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Color[:])
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetIntensities returns intensities as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetIntensities() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Intensity
	}
	return result
}
