package assets

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/internal/track"
)

// Sphere builds a UV sphere centered on the origin.
func Sphere(radius float32, stacks, slices int) *track.Mesh {
	point := func(i, j int) (mgl32.Vec3, [2]float32) {
		theta := gomath.Pi * float64(i) / float64(stacks)
		phi := 2 * gomath.Pi * float64(j) / float64(slices)
		n := mgl32.Vec3{
			float32(gomath.Sin(theta) * gomath.Cos(phi)),
			float32(gomath.Cos(theta)),
			float32(gomath.Sin(theta) * gomath.Sin(phi)),
		}
		return n, [2]float32{float32(j) / float32(slices), float32(i) / float32(stacks)}
	}

	m := &track.Mesh{}
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			n00, uv00 := point(i, j)
			n01, uv01 := point(i, j+1)
			n10, uv10 := point(i+1, j)
			n11, uv11 := point(i+1, j+1)

			if i > 0 {
				m.Vertices = append(m.Vertices,
					vertex(n00.Mul(radius), n00, uv00),
					vertex(n01.Mul(radius), n01, uv01),
					vertex(n10.Mul(radius), n10, uv10))
			}
			if i < stacks-1 {
				m.Vertices = append(m.Vertices,
					vertex(n01.Mul(radius), n01, uv01),
					vertex(n11.Mul(radius), n11, uv11),
					vertex(n10.Mul(radius), n10, uv10))
			}
		}
	}
	return m
}

// Cylinder builds a capped cylinder along +Y from y0 to y1.
func Cylinder(radius, y0, y1 float32, slices int) *track.Mesh {
	m := &track.Mesh{}
	up, down := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0}
	for j := 0; j < slices; j++ {
		a, b := ring(j, slices), ring(j+1, slices)
		u0, u1 := float32(j)/float32(slices), float32(j+1)/float32(slices)

		a0, a1 := a.Mul(radius).Add(mgl32.Vec3{0, y0, 0}), a.Mul(radius).Add(mgl32.Vec3{0, y1, 0})
		b0, b1 := b.Mul(radius).Add(mgl32.Vec3{0, y0, 0}), b.Mul(radius).Add(mgl32.Vec3{0, y1, 0})

		m.Vertices = append(m.Vertices,
			// side
			vertex(a0, a, [2]float32{u0, 0}),
			vertex(a1, a, [2]float32{u0, 1}),
			vertex(b0, b, [2]float32{u1, 0}),
			vertex(b0, b, [2]float32{u1, 0}),
			vertex(a1, a, [2]float32{u0, 1}),
			vertex(b1, b, [2]float32{u1, 1}),
			// caps
			vertex(mgl32.Vec3{0, y1, 0}, up, [2]float32{.5, .5}),
			vertex(b1, up, [2]float32{u1, 1}),
			vertex(a1, up, [2]float32{u0, 1}),
			vertex(mgl32.Vec3{0, y0, 0}, down, [2]float32{.5, .5}),
			vertex(a0, down, [2]float32{u0, 0}),
			vertex(b0, down, [2]float32{u1, 0}),
		)
	}
	return m
}

// Cone builds a cone along +Z with its base centered on the origin and its
// tip at length.
func Cone(radius, length float32, slices int) *track.Mesh {
	m := &track.Mesh{}
	tip := mgl32.Vec3{0, 0, length}
	slope := radius / length
	for j := 0; j < slices; j++ {
		a, b := ring(j, slices), ring(j+1, slices)
		// ring lies in XZ; rotate it into XY
		a, b = mgl32.Vec3{a[0], a[2], 0}, mgl32.Vec3{b[0], b[2], 0}
		na := a.Add(mgl32.Vec3{0, 0, slope}).Normalize()
		nb := b.Add(mgl32.Vec3{0, 0, slope}).Normalize()
		u0, u1 := float32(j)/float32(slices), float32(j+1)/float32(slices)

		m.Vertices = append(m.Vertices,
			vertex(a.Mul(radius), na, [2]float32{u0, 0}),
			vertex(b.Mul(radius), nb, [2]float32{u1, 0}),
			vertex(tip, na.Add(nb).Normalize(), [2]float32{(u0 + u1) / 2, 1}),
			vertex(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, [2]float32{.5, .5}),
			vertex(b.Mul(radius), mgl32.Vec3{0, 0, -1}, [2]float32{u1, 0}),
			vertex(a.Mul(radius), mgl32.Vec3{0, 0, -1}, [2]float32{u0, 0}),
		)
	}
	return m
}

// Transform returns a copy of the mesh with mat applied to positions and its
// inverse transpose to normals.
func Transform(m *track.Mesh, mat mgl32.Mat4) *track.Mesh {
	normalMat := mat.Mat3().Inv().Transpose()
	out := &track.Mesh{Vertices: make([]track.Vertex, len(m.Vertices))}
	for i, v := range m.Vertices {
		p := mgl32.TransformCoordinate(mgl32.Vec3(v.Position), mat)
		n := normalMat.Mul3x1(mgl32.Vec3(v.Normal))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		out.Vertices[i] = track.Vertex{Position: p, Normal: n, UV: v.UV}
	}
	return out
}

// Merge concatenates meshes.
func Merge(meshes ...*track.Mesh) *track.Mesh {
	out := &track.Mesh{}
	for _, m := range meshes {
		out.Vertices = append(out.Vertices, m.Vertices...)
	}
	return out
}

func ring(j, slices int) mgl32.Vec3 {
	phi := 2 * gomath.Pi * float64(j) / float64(slices)
	return mgl32.Vec3{float32(gomath.Cos(phi)), 0, float32(gomath.Sin(phi))}
}

func vertex(p, n mgl32.Vec3, uv [2]float32) track.Vertex {
	return track.Vertex{Position: p, Normal: n, UV: uv}
}
