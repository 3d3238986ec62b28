// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/engine/lighting"
	"github.com/Faultbox/snowtrack/internal/engine/shader"
	"github.com/Faultbox/snowtrack/internal/game"
	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/internal/track"
)

// ErrEmptyMesh is returned when uploading a mesh without vertices.
var ErrEmptyMesh = errors.New("renderer: empty mesh")

// Surface colors.
var (
	SnowColor = [3]float32{0.96, 0.97, 1.0}
	WallColor = [3]float32{0.55, 0.72, 0.86}
)

// Ambient light added to every surface.
var ambient = [3]float32{0.35, 0.38, 0.42}

const vertexSize = int32(unsafe.Sizeof(track.Vertex{}))

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh is an uploaded mesh.
type gpuMesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
	color       [3]float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	// meshes[h-1] is the mesh for handle h.
	meshes []gpuMesh

	lights *lighting.PointLightBuffer
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		lights: lighting.NewPointLightBuffer(),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	// wall strips are single sided and seen from both sides
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(shader.ClearColor[0], shader.ClearColor[1], shader.ClearColor[2], 1.0)

	program, err := shader.NewTrackProgram()
	if err != nil {
		return nil, err
	}
	r.program = program

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for i := range r.meshes {
		m := &r.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	r.meshes = nil
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload copies a mesh to the GPU and returns its handle.
func (r *Renderer) Upload(mesh *track.Mesh, color [3]float32) (track.MeshHandle, error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return 0, ErrEmptyMesh
	}

	m := gpuMesh{
		vertexCount: int32(len(mesh.Vertices)),
		color:       color,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(vertexSize), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	// UV
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.meshes = append(r.meshes, m)
	return track.MeshHandle(len(r.meshes)), nil
}

// BindTrack uploads the floor and wall of every section and stores their
// handles on the sections.
func (r *Renderer) BindTrack(t *track.Track) error {
	triangles := 0
	for i := range t.SectionCount() {
		sec := t.Section(i)

		floor, err := r.Upload(sec.Floor, SnowColor)
		if err != nil {
			return fmt.Errorf("section %d floor: %w", i, err)
		}
		walls, err := r.Upload(sec.Walls, WallColor)
		if err != nil {
			return fmt.Errorf("section %d walls: %w", i, err)
		}
		sec.FloorModel = floor
		sec.WallModel = walls
		triangles += sec.Floor.TriangleCount() + sec.Walls.TriangleCount()
	}

	r.log.Info("track uploaded",
		zap.Int("sections", t.SectionCount()),
		zap.Int("triangles", triangles),
	)
	return nil
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draw renders the items lit by the given torches and suns. Items with an
// unbound or unknown mesh are skipped.
func (r *Renderer) Draw(items []game.DrawItem, view, proj mgl32.Mat4, torches []track.Torch, suns [lighting.MaxSuns]lighting.Sun) {
	r.program.Use()
	u := r.program.Uniform

	gl.UniformMatrix4fv(u("uView"), 1, false, &view[0])
	gl.UniformMatrix4fv(u("uProjection"), 1, false, &proj[0])
	gl.Uniform3f(u("uAmbient"), ambient[0], ambient[1], ambient[2])

	// Fog
	gl.Uniform3f(u("uFogColor"), shader.ClearColor[0], shader.ClearColor[1], shader.ClearColor[2])
	gl.Uniform1f(u("uFogStart"), shader.FogStart)
	gl.Uniform1f(u("uFogEnd"), shader.FogEnd)

	// Suns
	dirs, colors := lighting.SunUniforms(suns)
	gl.Uniform1i(u("uSunCount"), lighting.MaxSuns)
	gl.Uniform3fv(u("uSunDirections"), lighting.MaxSuns, &dirs[0])
	gl.Uniform3fv(u("uSunColors"), lighting.MaxSuns, &colors[0])

	// Torches
	r.lights.SetLights(lighting.FromTorches(torches))
	gl.Uniform1i(u("uPointLightCount"), int32(r.lights.Count))
	positions := r.lights.GetPositions()
	lightColors := r.lights.GetColors()
	ranges := r.lights.GetRanges()
	intensities := r.lights.GetIntensities()
	gl.Uniform3fv(u("uPointLightPositions"), lighting.MaxPointLights, &positions[0])
	gl.Uniform3fv(u("uPointLightColors"), lighting.MaxPointLights, &lightColors[0])
	gl.Uniform1fv(u("uPointLightRanges"), lighting.MaxPointLights, &ranges[0])
	gl.Uniform1fv(u("uPointLightIntensities"), lighting.MaxPointLights, &intensities[0])

	locModel, locColor := u("uModel"), u("uBaseColor")
	for _, item := range items {
		if item.Mesh == 0 || int(item.Mesh) > len(r.meshes) {
			continue
		}
		m := &r.meshes[item.Mesh-1]

		gl.UniformMatrix4fv(locModel, 1, false, &item.Transform[0])
		gl.Uniform3f(locColor, m.color[0], m.color[1], m.color[2])
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	}
}

// ReadPixels reads back the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}
