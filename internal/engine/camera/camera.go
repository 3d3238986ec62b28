// Package camera provides the cameras used to view the track.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/pkg/math"
)

// Projection defaults.
const (
	DefaultFOV  = 60 // degrees
	DefaultNear = 0.1
	DefaultFar  = 150.0
)

// Chase tuning.
const (
	chaseDistance  = 3 // meters behind the ball, plus its radius
	chaseHeight    = 1 // meters above the ball, plus its radius
	lookAhead      = 2
	snapThreshold  = 0.2
	catchUpRate    = 10
	settleFraction = 0.5
)

// ChaseCamera trails the player along the track direction.
type ChaseCamera struct {
	Pos    mgl32.Vec3
	Target mgl32.Vec3
	speed  mgl32.Vec3

	// Projection
	FOV    float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewChaseCamera creates a chase camera with the default projection.
func NewChaseCamera(aspect float32) *ChaseCamera {
	if aspect <= 0 {
		aspect = 1
	}
	return &ChaseCamera{
		FOV:    DefaultFOV,
		Aspect: aspect,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// Reset places the camera at pos and clears its momentum.
func (c *ChaseCamera) Reset(pos mgl32.Vec3) {
	c.Pos = pos
	c.speed = mgl32.Vec3{}
}

// Update moves the camera toward its spot behind the player. Each axis closes
// in proportionally to the gap while the gap is large and coasts to a stop
// once it is small.
func (c *ChaseCamera) Update(dt float32, playerPos mgl32.Vec3, playerRadius float32, trackDir mgl32.Vec3) {
	next := playerPos.Sub(trackDir.Mul(chaseDistance + playerRadius))
	next[1] = playerPos[1] + chaseHeight + playerRadius

	for dim := 0; dim < 3; dim++ {
		diff := next[dim] - c.Pos[dim]
		if gomath.Abs(float64(diff)) > snapThreshold {
			c.speed[dim] = catchUpRate * dt * diff
		} else {
			c.speed[dim] *= settleFraction
		}
	}

	c.Pos = c.Pos.Add(c.speed)
	c.Target = playerPos.Add(trackDir.Mul(lookAhead))
}

// Direction returns the unit view direction.
func (c *ChaseCamera) Direction() mgl32.Vec3 {
	return math.SafeNormalize(c.Target.Sub(c.Pos))
}

// ViewMatrix returns the view matrix for the current position and target.
func (c *ChaseCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Target, math.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *ChaseCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(math.Deg2Rad(c.FOV), c.Aspect, c.Near, c.Far)
}

// OrbitCamera orbits around a center point. Used as a free overview of the track.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        120.0,
		RotationX:       0.6,
		MinDistance:     10.0,
		MaxDistance:     600.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cosX, sinX := gomath.Cos(float64(c.RotationX)), gomath.Sin(float64(c.RotationX))
	cosY, sinY := gomath.Cos(float64(c.RotationY)), gomath.Sin(float64(c.RotationY))

	return c.Center.Add(mgl32.Vec3{
		c.Distance * float32(cosX*sinY),
		c.Distance * float32(sinX),
		c.Distance * float32(cosX*cosY),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, math.Up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(box math.AABB) {
	c.Center = box.Center()
	size := box.Size()
	c.Distance = math.Clamp(max(size.X(), size.Z())*0.8, c.MinDistance, c.MaxDistance)
}
