package terrain

import (
	"github.com/Faultbox/terra/pkg/math"
)

var right = math.Vec3{X: 1}

// buildIndexBuffer creates the triangle list shared by every patch:
// two triangles per quad over a (patchSize+1)² vertex grid.
func buildIndexBuffer(patchSize int) []uint16 {
	indices := make([]uint16, 0, patchSize*patchSize*6)
	row := patchSize + 1

	for z := 0; z < patchSize; z++ {
		for x := 0; x < patchSize; x++ {
			indices = append(indices,
				uint16(x+(z+1)*row),
				uint16(x+z*row+1),
				uint16(x+z*row),

				uint16(x+(z+1)*row),
				uint16(x+(z+1)*row+1),
				uint16(x+z*row+1),
			)
		}
	}
	return indices
}

// updatePatchGeometry generates vertices and bounds for one patch.
// Positions are patch-relative; normals and texture coordinates use the
// global heightfield coordinates so neighbouring patches share their borders.
func (t *Terrain) updatePatchGeometry(p *Patch) {
	row := t.patchSize + 1
	if cap(p.Vertices) < row*row {
		p.Vertices = make([]Vertex, 0, row*row)
	}
	p.Vertices = p.Vertices[:0]
	bounds := EmptyBounds()

	for z1 := 0; z1 <= t.patchSize; z1++ {
		for x1 := 0; x1 <= t.patchSize; x1++ {
			xPos := p.X*t.patchSize + x1
			zPos := p.Z*t.patchSize + z1

			position := [3]float32{
				float32(x1) * t.spacing.X,
				t.RawHeight(xPos, zPos),
				float32(z1) * t.spacing.Z,
			}
			bounds.Merge(position)

			normal := t.Normal(xPos, zPos)
			tangent := right.Sub(normal.Scale(normal.Dot(right))).Normalize()

			p.Vertices = append(p.Vertices, Vertex{
				Position: position,
				Normal:   normal.Array(),
				TexCoord: [2]float32{
					float32(xPos) / float32(t.size.X),
					1 - float32(zPos)/float32(t.size.Z),
				},
				Tangent: [4]float32{tangent.X, tangent.Y, tangent.Z, 1},
			})
		}
	}

	p.Bounds = bounds
}
