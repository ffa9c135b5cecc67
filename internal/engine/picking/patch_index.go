package picking

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/logger"
	"github.com/Faultbox/terra/pkg/math"
)

// Marching parameters for PickPoint.
const (
	marchStepFactor  = 0.5 // step as a fraction of the smaller horizontal spacing
	refineIterations = 16
)

// Hit describes a ray hitting a patch bounding box.
type Hit struct {
	PatchX, PatchZ int
	Distance       float32 // along the ray to the box entry, or exit if the origin is inside
	Bounds         terrain.Bounds
}

type patchEntry struct {
	x, z   int
	bounds terrain.Bounds
}

// PatchIndex holds the world bounds of every patch as of the last terrain rebuild.
// Register it with Terrain.AddListener so it follows patch size and heightmap changes.
type PatchIndex struct {
	entries  []patchEntry
	rebuilds int
}

// NewPatchIndex creates an empty index.
func NewPatchIndex() *PatchIndex {
	return &PatchIndex{}
}

// OnTerrainRebuilt snapshots the patch bounds of the rebuilt terrain.
func (pi *PatchIndex) OnTerrainRebuilt(e terrain.RebuildEvent) {
	pi.rebuilds++
	pi.Refresh(e.Terrain)
	logger.Debug("patch index rebuilt",
		zap.Int("patches", len(pi.entries)),
		zap.Int("rebuilds", pi.rebuilds),
	)
}

// Refresh re-reads patch bounds from t. Call it after changing the terrain
// transform, which does not trigger a rebuild.
func (pi *PatchIndex) Refresh(t *terrain.Terrain) {
	pi.entries = pi.entries[:0]
	if t == nil {
		return
	}
	for _, p := range t.Patches() {
		pi.entries = append(pi.entries, patchEntry{x: p.X, z: p.Z, bounds: p.WorldBounds()})
	}
}

// Len returns the number of indexed patches.
func (pi *PatchIndex) Len() int { return len(pi.entries) }

// Rebuilds returns how many rebuild notifications were received.
func (pi *PatchIndex) Rebuilds() int { return pi.rebuilds }

// Bounds returns the indexed bounds of the patch at grid coordinates (x, z).
func (pi *PatchIndex) Bounds(x, z int) (terrain.Bounds, bool) {
	for _, e := range pi.entries {
		if e.x == x && e.z == z {
			return e.bounds, true
		}
	}
	return terrain.Bounds{}, false
}

// Pick returns the nearest patch whose bounds the ray hits.
func (pi *PatchIndex) Pick(r Ray) (Hit, bool) {
	hits := pi.hits(r)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// hits returns every patch hit sorted by distance.
func (pi *PatchIndex) hits(r Ray) []Hit {
	var hits []Hit
	for _, e := range pi.entries {
		if t, ok := r.IntersectAABB(e.bounds); ok {
			hits = append(hits, Hit{PatchX: e.x, PatchZ: e.z, Distance: t, Bounds: e.bounds})
		}
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// PickPoint finds where the ray first meets the terrain surface. Patches hit by
// the ray are visited front to back and the ray is marched through each box
// against t.Height, then refined by bisection.
func (pi *PatchIndex) PickPoint(r Ray, t *terrain.Terrain) (math.Vec3, bool) {
	if t == nil {
		return math.Vec3{}, false
	}
	step := marchStep(t)

	for _, h := range pi.hits(r) {
		tmin, tmax, ok := r.slabs(h.Bounds)
		if !ok {
			continue
		}
		// One step past the box absorbs rounding on flat boxes.
		tmin = max(tmin, 0)
		if p, ok := march(r, t, tmin, tmax+step, step); ok {
			return p, true
		}
	}
	return math.Vec3{}, false
}

func marchStep(t *terrain.Terrain) float32 {
	sp := t.Spacing()
	tr := t.Transform()
	s := min(math.Abs(sp.X*tr.Scale.X), math.Abs(sp.Z*tr.Scale.Z))
	if s == 0 {
		s = 1
	}
	return s * marchStepFactor
}

// march walks the ray from tmin to tmax and returns the first surface crossing.
func march(r Ray, t *terrain.Terrain, tmin, tmax, step float32) (math.Vec3, bool) {
	above := func(d float32) bool {
		p := r.At(d)
		return p.Y > t.Height(p)
	}

	if !above(tmin) {
		p := r.At(tmin)
		p.Y = t.Height(p)
		return p, true
	}

	prev := tmin
	for d := tmin + step; ; d += step {
		d = min(d, tmax)
		if !above(d) {
			lo, hi := prev, d
			for i := 0; i < refineIterations; i++ {
				mid := (lo + hi) / 2
				if above(mid) {
					lo = mid
				} else {
					hi = mid
				}
			}
			p := r.At(hi)
			p.Y = t.Height(p)
			return p, true
		}
		if d >= tmax {
			return math.Vec3{}, false
		}
		prev = d
	}
}
