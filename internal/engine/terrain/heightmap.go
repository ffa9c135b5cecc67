package terrain

import (
	gomath "math"

	"github.com/Faultbox/terra/pkg/math"
)

// copyHeightData fills the heightfield from the first component of each pixel.
// Image row 0 is the far edge, so rows are stored bottom-up.
func (t *Terrain) copyHeightData() {
	img := t.heightMap
	t.heightData = make([]float32, t.size.X*t.size.Z)

	row := img.Width * img.Components
	for z := 0; z < t.size.Z; z++ {
		src := img.Data[row*(t.size.Z-1-z):]
		for x := 0; x < t.size.X; x++ {
			t.heightData[z*t.size.X+x] = float32(src[img.Components*x]) * t.spacing.Y
		}
	}
}

// RawHeight returns the stored height at vertex (x, z), clamping to the heightfield.
// Returns 0 when there is no height data.
func (t *Terrain) RawHeight(x, z int) float32 {
	if len(t.heightData) == 0 {
		return 0
	}
	x = math.ClampInt(x, 0, t.size.X-1)
	z = math.ClampInt(z, 0, t.size.Z-1)
	return t.heightData[z*t.size.X+x]
}

// Normal returns the smoothed normal at vertex (x, z), built from the slopes
// to all eight neighbours.
func (t *Terrain) Normal(x, z int) math.Vec3 {
	base := t.RawHeight(x, z)
	n := t.RawHeight(x, z-1) - base
	ne := t.RawHeight(x+1, z-1) - base
	e := t.RawHeight(x+1, z) - base
	se := t.RawHeight(x+1, z+1) - base
	s := t.RawHeight(x, z+1) - base
	sw := t.RawHeight(x-1, z+1) - base
	w := t.RawHeight(x-1, z) - base
	nw := t.RawHeight(x-1, z-1) - base

	sum := math.Vec3{X: 0, Y: 1, Z: n}.
		Add(math.Vec3{X: -ne, Y: 1, Z: ne}).
		Add(math.Vec3{X: -e, Y: 1, Z: 0}).
		Add(math.Vec3{X: -se, Y: 1, Z: -se}).
		Add(math.Vec3{X: 0, Y: 1, Z: -s}).
		Add(math.Vec3{X: sw, Y: 1, Z: -sw}).
		Add(math.Vec3{X: w, Y: 1, Z: 0}).
		Add(math.Vec3{X: nw, Y: 1, Z: nw})
	return sum.Normalize()
}

// Height returns the terrain surface height below a world position.
// The quad under the point is split along its diagonal and the height is
// interpolated over the triangle containing the point.
func (t *Terrain) Height(worldPos math.Vec3) float32 {
	tr := t.transform
	if t.spacing.X == 0 || t.spacing.Z == 0 {
		return tr.Position.Y
	}

	local := tr.WorldToLocal(worldPos)
	xPos := (local.X - t.patchWorldOrigin.X) / t.spacing.X
	zPos := (local.Z - t.patchWorldOrigin.Y) / t.spacing.Z
	xFloor := float32(gomath.Floor(float64(xPos)))
	zFloor := float32(gomath.Floor(float64(zPos)))
	xFrac := xPos - xFloor
	zFrac := zPos - zFloor
	x, z := int(xFloor), int(zFloor)

	var h1, h2, h3 float32
	if xFrac+zFrac >= 1 {
		h1 = t.RawHeight(x+1, z+1)
		h2 = t.RawHeight(x, z+1)
		h3 = t.RawHeight(x+1, z)
		xFrac = 1 - xFrac
		zFrac = 1 - zFrac
	} else {
		h1 = t.RawHeight(x, z)
		h2 = t.RawHeight(x+1, z)
		h3 = t.RawHeight(x, z+1)
	}

	h := h1*(1-xFrac-zFrac) + h2*xFrac + h3*zFrac
	return tr.Scale.Y*h + tr.Position.Y
}
