package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/engine/renderer/shaders"
	"github.com/Faultbox/terra/internal/engine/shader"
	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/logger"
	"github.com/Faultbox/terra/pkg/math"
)

// Light settings for the terrain shader.
var (
	DefaultLightDir = math.Vec3{X: -0.4, Y: -1, Z: -0.3}
	DefaultAmbient  = float32(0.35)
)

// patchMesh is the GPU copy of one terrain patch.
type patchMesh struct {
	patch *terrain.Patch
	vao   uint32
	vbo   uint32
}

// TerrainRenderer uploads terrain patches to the GPU and draws them.
// It implements terrain.Listener and re-uploads everything on each rebuild.
type TerrainRenderer struct {
	program uint32

	// Uniform locations
	locViewProj    int32
	locModel       int32
	locTiling      int32
	locTexture     int32
	locHasTexture  int32
	locLightDir    int32
	locAmbient     int32
	locHeightRange int32

	terrain    *terrain.Terrain
	meshes     []patchMesh
	ebo        uint32
	indexCount int32

	// Material texture, re-uploaded when the terrain material changes
	material    *terrain.Material
	materialTex uint32

	LightDir math.Vec3
	Ambient  float32

	drawn int
}

// NewTerrainRenderer compiles the terrain shader.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	tr := &TerrainRenderer{
		LightDir: DefaultLightDir.Normalize(),
		Ambient:  DefaultAmbient,
	}

	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = shader.MustGetUniform(program, "uViewProj")
	tr.locModel = shader.MustGetUniform(program, "uModel")
	tr.locTiling = shader.GetUniform(program, "uTiling")
	tr.locTexture = shader.GetUniform(program, "uTexture")
	tr.locHasTexture = shader.GetUniform(program, "uHasTexture")
	tr.locLightDir = shader.GetUniform(program, "uLightDir")
	tr.locAmbient = shader.GetUniform(program, "uAmbient")
	tr.locHeightRange = shader.GetUniform(program, "uHeightRange")

	return tr, nil
}

// OnTerrainRebuilt replaces the GPU buffers with the rebuilt patches.
func (tr *TerrainRenderer) OnTerrainRebuilt(e terrain.RebuildEvent) {
	tr.clearMeshes()
	tr.terrain = e.Terrain
	if e.Terrain == nil || e.NumPatches == 0 {
		logger.Debug("terrain renderer cleared")
		return
	}

	indices := e.Terrain.IndexBuffer()
	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	tr.indexCount = int32(len(indices))

	for _, p := range e.Terrain.Patches() {
		tr.meshes = append(tr.meshes, tr.uploadPatch(p))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	logger.Debug("terrain uploaded",
		zap.Int("patches", len(tr.meshes)),
		zap.Int32("indices", tr.indexCount),
	)
}

func (tr *TerrainRenderer) uploadPatch(p *terrain.Patch) patchMesh {
	m := patchMesh{patch: p}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(p.Vertices)*vertexSize, unsafe.Pointer(&p.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	// Tangent (location 3)
	gl.VertexAttribPointerWithOffset(3, 4, gl.FLOAT, false, int32(vertexSize), 8*4)
	gl.EnableVertexAttribArray(3)

	// The shared index buffer is part of every VAO
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)

	gl.BindVertexArray(0)
	return m
}

// syncMaterial uploads the material texture when the terrain material changed.
func (tr *TerrainRenderer) syncMaterial() {
	m := tr.terrain.Material()
	if m == tr.material {
		return
	}
	tr.material = m
	if tr.materialTex != 0 {
		gl.DeleteTextures(1, &tr.materialTex)
		tr.materialTex = 0
	}
	if m == nil || m.Texture == nil {
		return
	}

	rgba, err := m.Texture.ToRGBA()
	if err != nil {
		logger.Error("can not upload terrain material", zap.String("material", m.Name), zap.Error(err))
		return
	}
	tr.materialTex = uploadTexture(rgba.Pix, rgba.Bounds().Dx(), rgba.Bounds().Dy())
	logger.Debug("terrain material uploaded", zap.String("material", m.Name))
}

// Render draws every visible patch within its draw distance of eye.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, eye math.Vec3) {
	tr.drawn = 0
	if tr.terrain == nil || len(tr.meshes) == 0 {
		return
	}
	tr.syncMaterial()

	gl.UseProgram(tr.program)
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(tr.locLightDir, tr.LightDir.X, tr.LightDir.Y, tr.LightDir.Z)
	gl.Uniform1f(tr.locAmbient, tr.Ambient)

	b := tr.terrain.Bounds()
	gl.Uniform2f(tr.locHeightRange, b.Min[1], b.Max[1])

	tiling := float32(1)
	if tr.material != nil && tr.material.Tiling > 0 {
		tiling = tr.material.Tiling
	}
	gl.Uniform1f(tr.locTiling, tiling)

	if tr.materialTex != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tr.materialTex)
		gl.Uniform1i(tr.locTexture, 0)
		gl.Uniform1i(tr.locHasTexture, 1)
	} else {
		gl.Uniform1i(tr.locHasTexture, 0)
	}

	transform := tr.terrain.Transform()
	for _, m := range tr.meshes {
		p := m.patch
		if !p.Drawable.Visible || !withinDrawDistance(p.WorldBounds(), eye, p.Drawable.DrawDistance) {
			continue
		}
		model := patchModel(transform, p)
		gl.UniformMatrix4fv(tr.locModel, 1, false, &model[0])
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_SHORT, nil)
		tr.drawn++
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// NumUploaded returns how many patches are on the GPU.
func (tr *TerrainRenderer) NumUploaded() int { return len(tr.meshes) }

// NumDrawn returns how many patches the last Render call drew.
func (tr *TerrainRenderer) NumDrawn() int { return tr.drawn }

// patchModel places patch vertices, which are relative to the patch origin, in the world.
func patchModel(tr terrain.Transform, p *terrain.Patch) math.Mat4 {
	node := math.Translate(tr.Position.X, tr.Position.Y, tr.Position.Z).
		Mul(math.Scale(tr.Scale.X, tr.Scale.Y, tr.Scale.Z))
	return node.Mul(math.Translate(p.Position.X, p.Position.Y, p.Position.Z))
}

// withinDrawDistance reports whether the closest point of b is within distance of eye.
// A zero distance is unlimited.
func withinDrawDistance(b terrain.Bounds, eye math.Vec3, distance float32) bool {
	if distance <= 0 {
		return true
	}
	if !b.Defined() {
		return false
	}
	closest := math.Vec3{
		X: math.Clamp(eye.X, b.Min[0], b.Max[0]),
		Y: math.Clamp(eye.Y, b.Min[1], b.Max[1]),
		Z: math.Clamp(eye.Z, b.Min[2], b.Max[2]),
	}
	return closest.Distance(eye) <= distance
}

func uploadTexture(pix []byte, width, height int) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(width), int32(height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return texID
}

func (tr *TerrainRenderer) clearMeshes() {
	for i := range tr.meshes {
		m := &tr.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	tr.meshes = tr.meshes[:0]
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.indexCount = 0
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMeshes()
	if tr.materialTex != 0 {
		gl.DeleteTextures(1, &tr.materialTex)
		tr.materialTex = 0
	}
	tr.material = nil
	if tr.program != 0 {
		gl.DeleteProgram(tr.program)
		tr.program = 0
	}
}
