package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/engine/texture"
	"github.com/Faultbox/terra/internal/logger"
	"github.com/Faultbox/terra/pkg/math"
)

// Terrain limits and defaults.
const (
	DefaultPatchSize = 16
	DefaultLodLevels = 3
	MaxLodLevels     = 4
	MinPatchSize     = 4
	MaxPatchSize     = 128
)

// DefaultSpacing is the default vertex spacing. Y scales 8-bit samples to world height.
var DefaultSpacing = math.Vec3{X: 1, Y: 0.25, Z: 1}

// Terrain is a heightfield split into square patches that share one index buffer.
// It is not safe for concurrent use; call it from the frame loop only.
type Terrain struct {
	heightMap *texture.Image
	material  *Material
	spacing   math.Vec3
	patchSize int

	numLodLevels     int
	size             GridSize // vertices per axis
	numPatches       GridSize
	patchWorldSize   math.Vec2
	patchWorldOrigin math.Vec2
	heightData       []float32

	patches     []*Patch
	indexBuffer []uint16

	drawable  DrawableSettings
	transform Transform

	listeners      []listenerEntry
	nextListenerID int

	// recreate is set by the deferred attribute setters and consumed by ApplyAttributes.
	recreate bool
}

type listenerEntry struct {
	id int
	l  Listener
}

// New creates an empty terrain with default settings.
func New() *Terrain {
	return &Terrain{
		spacing:      DefaultSpacing,
		patchSize:    DefaultPatchSize,
		numLodLevels: DefaultLodLevels,
		drawable:     DefaultDrawableSettings(),
		transform:    IdentityTransform(),
	}
}

// validPatchSize reports whether n is a power of two within [MinPatchSize, MaxPatchSize].
func validPatchSize(n int) bool {
	return n >= MinPatchSize && n <= MaxPatchSize && math.IsPowerOfTwo(n)
}

// SetPatchSize sets the patch size and rebuilds. Invalid sizes are ignored.
func (t *Terrain) SetPatchSize(size int) {
	if !validPatchSize(size) {
		return
	}
	if size != t.patchSize {
		t.patchSize = size
		t.CreateGeometry()
	}
}

// SetPatchSizeAttr sets the patch size without rebuilding until ApplyAttributes.
// Invalid sizes are ignored.
func (t *Terrain) SetPatchSizeAttr(size int) {
	if !validPatchSize(size) {
		return
	}
	if size != t.patchSize {
		t.patchSize = size
		t.recreate = true
	}
}

// SetSpacing sets the vertex spacing and rebuilds when it changed.
func (t *Terrain) SetSpacing(spacing math.Vec3) {
	if spacing != t.spacing {
		t.spacing = spacing
		t.CreateGeometry()
	}
}

// SetSpacingAttr sets the vertex spacing and defers the rebuild to ApplyAttributes.
func (t *Terrain) SetSpacingAttr(spacing math.Vec3) {
	t.spacing = spacing
	t.recreate = true
}

// SetHeightMap sets the heightmap image and rebuilds immediately.
// A compressed image is rejected and false is returned. Nil clears the terrain.
func (t *Terrain) SetHeightMap(img *texture.Image) bool {
	return t.setHeightMap(img, true)
}

// SetHeightMapAttr sets the heightmap image and defers the rebuild to ApplyAttributes.
func (t *Terrain) SetHeightMapAttr(img *texture.Image) bool {
	return t.setHeightMap(img, false)
}

func (t *Terrain) setHeightMap(img *texture.Image, recreateNow bool) bool {
	if img != nil && img.Compressed {
		logger.Error("can not use a compressed image as a terrain heightmap",
			zap.String("format", img.Format))
		return false
	}
	if img != nil && (img.Width < 1 || img.Height < 1) {
		logger.Error("terrain heightmap has empty size",
			zap.Int("width", img.Width),
			zap.Int("height", img.Height))
		return false
	}
	if img != nil && (img.Components < 1 || len(img.Data) < img.Width*img.Height*img.Components) {
		logger.Error("terrain heightmap pixel data is incomplete",
			zap.Int("width", img.Width),
			zap.Int("height", img.Height),
			zap.Int("components", img.Components),
			zap.Int("bytes", len(img.Data)))
		return false
	}

	t.heightMap = img
	if recreateNow {
		t.CreateGeometry()
	} else {
		t.recreate = true
	}
	return true
}

// HeightMapReloaded rebuilds after the current heightmap image was reloaded in place.
func (t *Terrain) HeightMapReloaded() {
	if t.heightMap == nil {
		return
	}
	t.CreateGeometry()
}

// SetTransform places the terrain node. Geometry is node-relative so no rebuild happens.
func (t *Terrain) SetTransform(tr Transform) {
	t.transform = tr
}

// ApplyAttributes performs the rebuild requested by the deferred setters, once.
func (t *Terrain) ApplyAttributes() {
	if t.recreate {
		t.CreateGeometry()
	}
}

// NeedsRebuild reports whether a deferred setter is waiting for ApplyAttributes.
func (t *Terrain) NeedsRebuild() bool {
	return t.recreate
}

// AddListener registers a rebuild listener and returns a function removing it.
func (t *Terrain) AddListener(l Listener) (remove func()) {
	t.nextListenerID++
	id := t.nextListenerID
	t.listeners = append(t.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range t.listeners {
			if e.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// CreateGeometry regenerates the height data, patches and shared index buffer,
// then notifies listeners if geometry exists now or existed before.
func (t *Terrain) CreateGeometry() {
	t.recreate = false
	prevPatches := len(t.patches)

	// LOD levels are counted for reporting; patches always draw at full detail.
	lodSize := t.patchSize
	t.numLodLevels = 1
	for lodSize > MinPatchSize && t.numLodLevels < MaxLodLevels {
		lodSize >>= 1
		t.numLodLevels++
	}

	t.patchWorldSize = math.Vec2{
		X: t.spacing.X * float32(t.patchSize),
		Y: t.spacing.Z * float32(t.patchSize),
	}
	if t.heightMap != nil {
		t.numPatches = GridSize{
			X: (t.heightMap.Width - 1) / t.patchSize,
			Z: (t.heightMap.Height - 1) / t.patchSize,
		}
		if t.numPatches.X < 0 {
			t.numPatches.X = 0
		}
		if t.numPatches.Z < 0 {
			t.numPatches.Z = 0
		}
		t.size = GridSize{
			X: t.numPatches.X*t.patchSize + 1,
			Z: t.numPatches.Z*t.patchSize + 1,
		}
		t.patchWorldOrigin = math.Vec2{
			X: -0.5 * float32(t.numPatches.X) * t.patchWorldSize.X,
			Y: -0.5 * float32(t.numPatches.Z) * t.patchWorldSize.Y,
		}
		t.copyHeightData()
	} else {
		t.numPatches = GridSize{}
		t.size = GridSize{}
		t.patchWorldOrigin = math.Vec2{}
		t.heightData = nil
	}

	t.patches = nil
	t.indexBuffer = nil

	if t.heightMap != nil {
		for z := 0; z < t.numPatches.Z; z++ {
			for x := 0; x < t.numPatches.X; x++ {
				t.patches = append(t.patches, t.newPatch(x, z))
			}
		}

		t.indexBuffer = buildIndexBuffer(t.patchSize)
		for _, p := range t.patches {
			t.updatePatchGeometry(p)
		}
	}

	logger.Debug("terrain geometry created",
		zap.Int("patchSize", t.patchSize),
		zap.Int("patchesX", t.numPatches.X),
		zap.Int("patchesZ", t.numPatches.Z),
		zap.Int("lodLevels", t.numLodLevels),
	)

	if len(t.patches) > 0 || prevPatches > 0 {
		e := RebuildEvent{Terrain: t, NumPatches: len(t.patches), PrevPatches: prevPatches}
		for _, entry := range t.listeners {
			entry.l.OnTerrainRebuilt(e)
		}
	}
}

func (t *Terrain) newPatch(x, z int) *Patch {
	return &Patch{
		Name: patchName(x, z),
		X:    x,
		Z:    z,
		Position: math.Vec3{
			X: t.patchWorldOrigin.X + float32(x)*t.patchWorldSize.X,
			Z: t.patchWorldOrigin.Y + float32(z)*t.patchWorldSize.Y,
		},
		Material: t.material,
		Drawable: t.drawable,
		owner:    t,
	}
}

// UpdatePatchLOD selects a patch detail level given its neighbours' levels.
// Only full detail geometry exists, so this leaves the patch unchanged.
func (t *Terrain) UpdatePatchLOD(p *Patch, lod, northLod, southLod, westLod, eastLod int) {
}

// PatchSize returns the patch size in quads per side.
func (t *Terrain) PatchSize() int { return t.patchSize }

// Spacing returns the vertex spacing.
func (t *Terrain) Spacing() math.Vec3 { return t.spacing }

// NumLodLevels returns the LOD level count computed at the last build.
func (t *Terrain) NumLodLevels() int { return t.numLodLevels }

// NumPatches returns the number of patches.
func (t *Terrain) NumPatches() int { return len(t.patches) }

// PatchGrid returns the patch counts along X and Z.
func (t *Terrain) PatchGrid() GridSize { return t.numPatches }

// Size returns the heightfield size in vertices.
func (t *Terrain) Size() GridSize { return t.size }

// PatchWorldSize returns the world extent of one patch.
func (t *Terrain) PatchWorldSize() math.Vec2 { return t.patchWorldSize }

// PatchWorldOrigin returns the node-space corner of patch (0, 0).
func (t *Terrain) PatchWorldOrigin() math.Vec2 { return t.patchWorldOrigin }

// IndexBuffer returns the index buffer shared by all patches.
func (t *Terrain) IndexBuffer() []uint16 { return t.indexBuffer }

// HeightMap returns the heightmap image.
func (t *Terrain) HeightMap() *texture.Image { return t.heightMap }

// Material returns the terrain material.
func (t *Terrain) Material() *Material { return t.material }

// Drawable returns the drawable settings applied to patches.
func (t *Terrain) Drawable() DrawableSettings { return t.drawable }

// Transform returns the node transform.
func (t *Terrain) Transform() Transform { return t.transform }

// Patch returns the patch at index i, or nil when out of range.
func (t *Terrain) Patch(i int) *Patch {
	if i < 0 || i >= len(t.patches) {
		return nil
	}
	return t.patches[i]
}

// PatchAt returns the patch at grid coordinates, or nil when out of range.
func (t *Terrain) PatchAt(x, z int) *Patch {
	if x < 0 || z < 0 || x >= t.numPatches.X || z >= t.numPatches.Z {
		return nil
	}
	return t.patches[z*t.numPatches.X+x]
}

// Patches returns all patches in row-major order.
func (t *Terrain) Patches() []*Patch { return t.patches }

// Bounds returns the world bounding box of all patches.
func (t *Terrain) Bounds() Bounds {
	b := EmptyBounds()
	for _, p := range t.patches {
		b = b.Union(p.WorldBounds())
	}
	return b
}
