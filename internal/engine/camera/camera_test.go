package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/snowtrack/pkg/math"
)

func TestNewChaseCameraDefaults(t *testing.T) {
	c := NewChaseCamera(0)
	assert.Equal(t, float32(1), c.Aspect)
	assert.Equal(t, float32(DefaultFOV), c.FOV)
	assert.Equal(t, float32(DefaultNear), c.Near)
	assert.Equal(t, float32(DefaultFar), c.Far)
}

func TestChaseCameraCatchesUp(t *testing.T) {
	c := NewChaseCamera(16.0 / 9)
	player := mgl32.Vec3{0, 0.25, 10}
	dir := mgl32.Vec3{0, 0, 1}

	// 0.1s steps close 100% of the gap per step while the gap is large
	c.Update(0.1, player, 0.25, dir)
	assert.InDelta(t, 0, c.Pos.X(), 1e-5)
	assert.InDelta(t, 1.5, c.Pos.Y(), 1e-5)
	assert.InDelta(t, 6.75, c.Pos.Z(), 1e-5)
	assert.Equal(t, mgl32.Vec3{0, 0.25, 12}, c.Target)
}

func TestChaseCameraSettles(t *testing.T) {
	c := NewChaseCamera(1)
	player := mgl32.Vec3{0, 0.25, 10}
	dir := mgl32.Vec3{0, 0, 1}

	for i := 0; i < 600; i++ {
		c.Update(1.0/60, player, 0.25, dir)
	}

	want := mgl32.Vec3{0, 1.5, 6.75}
	assert.InDelta(t, 0, c.Pos.Sub(want).Len(), 0.25)
	assert.InDelta(t, 0, c.speed.Len(), 1e-4)
}

func TestChaseCameraSmallGapCoasts(t *testing.T) {
	c := NewChaseCamera(1)
	c.Reset(mgl32.Vec3{0, 1.5, 6.75})
	c.speed = mgl32.Vec3{0.1, 0, 0}

	c.Update(1.0/60, mgl32.Vec3{0, 0.25, 10}, 0.25, mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 0.05, c.speed.X(), 1e-6)
	assert.InDelta(t, 0.05, c.Pos.X(), 1e-6)
}

func TestChaseCameraReset(t *testing.T) {
	c := NewChaseCamera(1)
	c.speed = mgl32.Vec3{1, 2, 3}
	c.Reset(mgl32.Vec3{})

	assert.Equal(t, mgl32.Vec3{}, c.Pos)
	assert.Equal(t, mgl32.Vec3{}, c.speed)
}

func TestChaseCameraDirection(t *testing.T) {
	c := NewChaseCamera(1)
	c.Pos = mgl32.Vec3{0, 0, 0}
	c.Target = mgl32.Vec3{0, 0, 5}
	assert.True(t, c.Direction().ApproxEqual(mgl32.Vec3{0, 0, 1}))

	// The view matrix maps the target onto the -Z axis
	p := c.ViewMatrix().Mul4x1(c.Target.Vec4(1))
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, -5, p.Z(), 1e-5)
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.AABB{Min: mgl32.Vec3{-100, -50, 0}, Max: mgl32.Vec3{100, 0, 400}})

	assert.Equal(t, mgl32.Vec3{0, -25, 200}, c.Center)
	assert.InDelta(t, 320, c.Distance, 1e-3)
}

func TestOrbitCameraConstraints(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.RotationX)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.RotationX)

	c.HandleZoom(1000)
	assert.Equal(t, c.MinDistance, c.Distance)
}
