package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/pkg/math"
)

// Player defaults.
const (
	DefaultMass   = 10
	InitialRadius = 0.25
)

// Player is the snowball. Its position is the center of the sphere.
type Player struct {
	body   *Body
	radius float32
}

// NewPlayer creates a player with the initial radius at the origin.
func NewPlayer(mass float32) *Player {
	return &Player{
		body:   NewBody(mass),
		radius: InitialRadius,
	}
}

func (p *Player) Body() *Body              { return p.body }
func (p *Player) Position() mgl32.Vec3     { return p.body.Position() }
func (p *Player) Velocity() mgl32.Vec3     { return p.body.Velocity() }
func (p *Player) Rotation() mgl32.Quat     { return p.body.Rotation() }
func (p *Player) Radius() float32          { return p.radius }
func (p *Player) SetRadius(radius float32) { p.radius = radius }

// Grow increases the radius and lifts the center by the same amount so the
// ball keeps touching the floor.
func (p *Player) Grow(by float32) {
	p.radius += by
	p.body.Translate(mgl32.Vec3{0, by, 0})
}

func (p *Player) Move(delta mgl32.Vec3) {
	p.body.Translate(delta)
}

func (p *Player) MoveTo(pos mgl32.Vec3) {
	p.body.SetPosition(pos)
}

// Bounds returns a box around the center with each side equal to the radius.
func (p *Player) Bounds() math.AABB {
	return math.AABBFromCenterAndSize(p.Position(), mgl32.Vec3{p.radius, p.radius, p.radius})
}

// Transform returns the model matrix of the ball, scaled by its radius.
func (p *Player) Transform() mgl32.Mat4 {
	pos := p.Position()
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(p.Rotation().Mat4()).
		Mul4(mgl32.Scale3D(p.radius, p.radius, p.radius))
}
