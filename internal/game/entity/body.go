// Package entity implements the player snowball and the point-mass body that moves it.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/pkg/math"
)

// Body is a point mass with an orientation. Forces accumulate between steps
// and are cleared by Simulate.
type Body struct {
	mass            float32
	position        mgl32.Vec3
	velocity        mgl32.Vec3
	force           mgl32.Vec3
	rotation        mgl32.Quat
	angularVelocity mgl32.Vec3 // radians per second about X, Y, Z
}

// NewBody creates a body at rest at the origin. A non-positive mass is treated as 1.
func NewBody(mass float32) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		mass:     mass,
		rotation: mgl32.QuatIdent(),
	}
}

func (b *Body) Mass() float32               { return b.mass }
func (b *Body) Position() mgl32.Vec3        { return b.position }
func (b *Body) Velocity() mgl32.Vec3        { return b.velocity }
func (b *Body) Force() mgl32.Vec3           { return b.force }
func (b *Body) Rotation() mgl32.Quat        { return b.rotation }
func (b *Body) AngularVelocity() mgl32.Vec3 { return b.angularVelocity }

// AddForce adds f to the force applied on the next step.
func (b *Body) AddForce(f mgl32.Vec3) {
	b.force = b.force.Add(f)
}

func (b *Body) SetVelocity(v mgl32.Vec3) {
	b.velocity = v
}

func (b *Body) SetAngularVelocity(w mgl32.Vec3) {
	b.angularVelocity = w
}

func (b *Body) SetPosition(p mgl32.Vec3) {
	b.position = p
}

// Translate moves the body without affecting its velocity.
func (b *Body) Translate(delta mgl32.Vec3) {
	b.position = b.position.Add(delta)
}

// Rotate applies q on top of the current orientation in world space.
func (b *Body) Rotate(q mgl32.Quat) {
	b.rotation = q.Mul(b.rotation).Normalize()
}

// Stop clears linear and angular velocity and any pending force.
func (b *Body) Stop() {
	b.velocity = mgl32.Vec3{}
	b.angularVelocity = mgl32.Vec3{}
	b.force = mgl32.Vec3{}
}

// Simulate advances the body by dt seconds using explicit Euler integration.
func (b *Body) Simulate(dt float32) {
	b.velocity = b.velocity.Add(b.force.Mul(dt / b.mass))
	b.position = b.position.Add(b.velocity.Mul(dt))

	if b.angularVelocity != (mgl32.Vec3{}) {
		w := b.angularVelocity.Mul(dt)
		b.Rotate(math.QuatFromEulerZYX(w[2], w[1], w[0]))
	}

	b.force = mgl32.Vec3{}
}
