package terrain

import (
	"strconv"

	"github.com/Faultbox/terra/pkg/math"
)

// Patch is one square tile of the terrain.
type Patch struct {
	Name     string
	X, Z     int       // grid coordinates
	Position math.Vec3 // offset of the patch origin in terrain node space
	Vertices []Vertex  // (patchSize+1)² vertices, row-major in Z then X
	Bounds   Bounds    // local to the patch origin
	Material *Material
	Drawable DrawableSettings
	LodLevel int

	owner *Terrain
}

func patchName(x, z int) string {
	return "Patch_" + strconv.Itoa(x) + "_" + strconv.Itoa(z)
}

// Owner returns the terrain the patch belongs to.
func (p *Patch) Owner() *Terrain { return p.owner }

// IndexBuffer returns the shared index buffer.
func (p *Patch) IndexBuffer() []uint16 { return p.owner.indexBuffer }

// NodePosition returns a vertex position in terrain node space.
func (p *Patch) NodePosition(i int) math.Vec3 {
	return math.Vec3FromArray(p.Vertices[i].Position).Add(p.Position)
}

// WorldPosition returns a vertex position in world space.
func (p *Patch) WorldPosition(i int) math.Vec3 {
	return p.owner.transform.LocalToWorld(p.NodePosition(i))
}

// WorldBounds returns the patch bounding box in world space.
func (p *Patch) WorldBounds() Bounds {
	if !p.Bounds.Defined() {
		return p.Bounds
	}
	tr := p.owner.transform
	lo := tr.LocalToWorld(math.Vec3FromArray(p.Bounds.Min).Add(p.Position))
	hi := tr.LocalToWorld(math.Vec3FromArray(p.Bounds.Max).Add(p.Position))

	b := EmptyBounds()
	b.Merge(lo.Array())
	b.Merge(hi.Array())
	return b
}

// Triangle returns the node-space corners of triangle i of the patch.
func (p *Patch) Triangle(i int) (a, b, c math.Vec3) {
	idx := p.owner.indexBuffer[i*3 : i*3+3]
	return p.NodePosition(int(idx[0])), p.NodePosition(int(idx[1])), p.NodePosition(int(idx[2]))
}

// NumTriangles returns the triangle count of the patch.
func (p *Patch) NumTriangles() int {
	return len(p.owner.indexBuffer) / 3
}
