// Package terrain builds tiled heightfield geometry from 8-bit heightmap images.
package terrain

import (
	gomath "math"

	"github.com/Faultbox/terra/internal/engine/texture"
	"github.com/Faultbox/terra/pkg/math"
)

// Vertex represents a terrain patch vertex with all attributes.
type Vertex struct {
	Position [3]float32 // relative to the patch origin
	Normal   [3]float32
	TexCoord [2]float32
	Tangent  [4]float32 // xyz tangent, w handedness
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns an inverted box that any merged point will replace.
func EmptyBounds() Bounds {
	inf := float32(gomath.Inf(1))
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

// Defined reports whether at least one point was merged.
func (b Bounds) Defined() bool {
	return b.Min[0] <= b.Max[0]
}

// Merge grows the box to contain p.
func (b *Bounds) Merge(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns the smallest box containing b and other.
func (b Bounds) Union(other Bounds) Bounds {
	if !other.Defined() {
		return b
	}
	b.Merge(other.Min)
	b.Merge(other.Max)
	return b
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Material is the surface assigned to every patch.
type Material struct {
	Name    string
	Texture *texture.Image
	Tiling  float32 // texture repeats across the whole terrain
}

// Mask defaults: every bit set.
const (
	DefaultViewMask   uint32 = 0xffffffff
	DefaultLightMask  uint32 = 0xffffffff
	DefaultShadowMask uint32 = 0xffffffff
	DefaultZoneMask   uint32 = 0xffffffff
)

// DrawableSettings are the render parameters copied from the terrain to each patch.
type DrawableSettings struct {
	Visible        bool
	CastShadows    bool
	Occluder       bool
	Occludee       bool
	DrawDistance   float32 // 0 = unlimited
	ShadowDistance float32 // 0 = unlimited
	LodBias        float32
	MaxLights      uint32 // 0 = unlimited
	ViewMask       uint32
	LightMask      uint32
	ShadowMask     uint32
	ZoneMask       uint32
}

// DefaultDrawableSettings returns the settings of a freshly created terrain.
func DefaultDrawableSettings() DrawableSettings {
	return DrawableSettings{
		Visible:    true,
		Occludee:   true,
		LodBias:    1,
		ViewMask:   DefaultViewMask,
		LightMask:  DefaultLightMask,
		ShadowMask: DefaultShadowMask,
		ZoneMask:   DefaultZoneMask,
	}
}

// Transform places the terrain node in the world. The node is assumed upright.
type Transform struct {
	Position math.Vec3
	Scale    math.Vec3
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// WorldToLocal converts a world position into terrain node space.
func (t Transform) WorldToLocal(p math.Vec3) math.Vec3 {
	return p.Sub(t.Position).Div(t.Scale)
}

// LocalToWorld converts a terrain node space position into world space.
func (t Transform) LocalToWorld(p math.Vec3) math.Vec3 {
	return p.Mul(t.Scale).Add(t.Position)
}

// GridSize is an integer extent on the X and Z axes.
type GridSize struct {
	X, Z int
}

// RebuildEvent is delivered to listeners after the geometry was regenerated.
type RebuildEvent struct {
	Terrain     *Terrain
	NumPatches  int
	PrevPatches int
}

// Listener receives terrain rebuild notifications.
type Listener interface {
	OnTerrainRebuilt(e RebuildEvent)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e RebuildEvent)

// OnTerrainRebuilt calls f(e).
func (f ListenerFunc) OnTerrainRebuilt(e RebuildEvent) {
	f(e)
}
