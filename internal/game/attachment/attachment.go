// Package attachment manages the decorations scattered over the track that the
// snowball picks up as it rolls over them.
package attachment

import (
	gomath "math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/internal/track"
	"github.com/Faultbox/snowtrack/pkg/math"
)

// Kind is the type of decoration.
type Kind uint8

const (
	KindPebble Kind = iota
	KindCarrot
	KindHat

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPebble:
		return "pebble"
	case KindCarrot:
		return "carrot"
	case KindHat:
		return "hat"
	default:
		return "unknown"
	}
}

// Size returns the pickup box size of a kind.
func (k Kind) Size() mgl32.Vec3 {
	switch k {
	case KindCarrot:
		return mgl32.Vec3{1, 1.5, 1}
	case KindHat:
		return mgl32.Vec3{1, .7, 1.2}
	default:
		return mgl32.Vec3{1, .5, 1}
	}
}

// Placement constants.
const (
	hoverHeight = 0.35
	hoverRange  = 0.3
	edgeMargin  = 4 // meters of track width kept free of decorations
)

// Instance is one decoration.
type Instance struct {
	Kind      Kind
	Model     track.MeshHandle
	StaticPos mgl32.Vec3
	Bounds    math.AABB
	Attached  bool

	// Current pose. World space while loose, relative to the player once attached.
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// Transform returns the model matrix. parent is the player transform and is
// only used for attached instances.
func (inst *Instance) Transform(parent mgl32.Mat4) mgl32.Mat4 {
	local := mgl32.Translate3D(inst.Position[0], inst.Position[1], inst.Position[2]).
		Mul4(inst.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(inst.Scale, inst.Scale, inst.Scale))
	if inst.Attached {
		return parent.Mul4(local)
	}
	return local
}

// Pool owns all decorations and their assignment to track sections.
type Pool struct {
	instances  []*Instance
	sectionMap map[int][]*Instance
	models     [kindCount]track.MeshHandle
	hoverT     float32
	rng        *rand.Rand
	log        *zap.Logger
}

// NewPool creates an empty pool. The same seed yields the same allocation and dispersal.
func NewPool(seed uint64) *Pool {
	return &Pool{
		sectionMap: make(map[int][]*Instance),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:        logger.Named("attachment"),
	}
}

// Allocate adds count decorations with a .5/.3/.2 pebble/carrot/hat distribution.
func (p *Pool) Allocate(count int) {
	for range count {
		var kind Kind
		switch chance := p.rng.Float64(); {
		case chance < 0.5:
			kind = KindPebble
		case chance < 0.8:
			kind = KindCarrot
		default:
			kind = KindHat
		}

		p.instances = append(p.instances, &Instance{
			Kind:     kind,
			Model:    p.models[kind],
			Rotation: mgl32.QuatIdent(),
			Scale:    1,
		})
	}
}

// BindModels sets the mesh handle used for each kind.
func (p *Pool) BindModels(pebble, carrot, hat track.MeshHandle) {
	p.models = [kindCount]track.MeshHandle{pebble, carrot, hat}
	for _, inst := range p.instances {
		inst.Model = p.models[inst.Kind]
	}
}

// Sections is the part of the track dispersal needs.
type Sections interface {
	SectionCount() int
	Section(i int) *track.SectionData
}

// Disperse detaches everything and spreads the decorations evenly over the
// track, leaving the first section and the last three empty.
func (p *Pool) Disperse(tr Sections) {
	p.sectionMap = make(map[int][]*Instance)

	count := tr.SectionCount()
	sectionsLeft := count - 4
	attachmentsLeft := len(p.instances)
	next := 0

	p.rng.Shuffle(len(p.instances), func(i, j int) {
		p.instances[i], p.instances[j] = p.instances[j], p.instances[i]
	})

	for si := 1; si < count-3; si++ {
		section := tr.Section(si)
		segCount := len(section.Segments) - 2
		inSection := int(gomath.Floor(float64(attachmentsLeft)/float64(sectionsLeft) + 0.5))
		list := make([]*Instance, 0, inSection)

		for ai := 0; ai < inSection && next < len(p.instances) && segCount > 0; ai++ {
			segment := section.Segments[p.rng.IntN(segCount)]
			usable := float32(track.TrackWidth - edgeMargin)
			horiz := usable*p.rng.Float32() - usable/2
			pos := segment.Center.Add(segment.Left.Mul(horiz)).Add(mgl32.Vec3{0, hoverHeight, 0})

			inst := p.instances[next]
			p.Detach(inst)
			inst.StaticPos = pos
			inst.Position = pos
			inst.Bounds = math.AABBFromCenterAndSize(pos, inst.Kind.Size())
			list = append(list, inst)

			next++
			attachmentsLeft--
		}

		p.sectionMap[si] = list
		sectionsLeft--
	}

	for _, inst := range p.instances[next:] {
		p.Detach(inst)
	}

	p.log.Debug("dispersed attachments",
		zap.Int("placed", next),
		zap.Int("total", len(p.instances)))
}

// InSection returns the decorations placed in a section.
func (p *Pool) InSection(sectionIx int) []*Instance {
	return p.sectionMap[sectionIx]
}

// Attach parents inst to the player, sticking it to the surface of the ball
// on the side it was touched from.
func (p *Pool) Attach(inst *Instance, playerPos mgl32.Vec3, playerRot mgl32.Quat) {
	if inst.Attached {
		return
	}
	inst.Attached = true

	dir := math.SafeNormalize(inst.Position.Sub(playerPos))
	dir = playerRot.Inverse().Rotate(dir)
	inst.Position = dir
	inst.Rotation = mgl32.QuatBetweenVectors(math.Up, dir)
}

// Detach returns inst to its resting place on the track.
func (p *Pool) Detach(inst *Instance) {
	if !inst.Attached {
		return
	}
	inst.Attached = false
	inst.Scale = 1
	inst.Position = inst.StaticPos
	inst.Rotation = mgl32.QuatIdent()
}

// Update animates loose decorations and keeps attached ones at constant size
// while the player grows.
func (p *Pool) Update(dt, playerRadius float32) {
	p.hoverT += dt
	t := float64(p.hoverT)
	yDelta := float32(hoverRange * gomath.Sin(t*gomath.Pi/1.5))
	rotY := float32(t * gomath.Pi / 2)

	invScale := float32(1)
	if playerRadius > 0 {
		invScale = 1 / playerRadius
	}

	for _, inst := range p.instances {
		if inst.Attached {
			inst.Scale = invScale
			continue
		}
		inst.Position = inst.StaticPos.Add(mgl32.Vec3{0, yDelta, 0})
		inst.Rotation = mgl32.QuatRotate(rotY, math.Up)
	}
}

// All returns every decoration.
func (p *Pool) All() []*Instance {
	return p.instances
}

// Attached returns the decorations stuck to the player.
func (p *Pool) Attached() []*Instance {
	var items []*Instance
	for _, inst := range p.instances {
		if inst.Attached {
			items = append(items, inst)
		}
	}
	return items
}

// AttachedCount returns the number of decorations stuck to the player.
func (p *Pool) AttachedCount() int {
	count := 0
	for _, inst := range p.instances {
		if inst.Attached {
			count++
		}
	}
	return count
}

// AttachedCountOf returns the number of attached decorations of a kind.
func (p *Pool) AttachedCountOf(kind Kind) int {
	count := 0
	for _, inst := range p.instances {
		if inst.Attached && inst.Kind == kind {
			count++
		}
	}
	return count
}
