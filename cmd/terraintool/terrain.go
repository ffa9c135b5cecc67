package main

import (
	"fmt"

	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/engine/texture"
	"github.com/Faultbox/terra/pkg/math"
)

// loadTerrain reads a heightmap and builds it with the global flags.
func loadTerrain(path string) (*terrain.Terrain, *texture.Image, error) {
	img, err := texture.Load(path)
	if err != nil {
		return nil, nil, err
	}
	t, err := buildTerrain(img, flagPatchSize, flagSpacing)
	if err != nil {
		return nil, nil, err
	}
	return t, img, nil
}

func buildTerrain(img *texture.Image, patchSize int, spacing []float32) (*terrain.Terrain, error) {
	if patchSize < terrain.MinPatchSize || patchSize > terrain.MaxPatchSize || !math.IsPowerOfTwo(patchSize) {
		return nil, fmt.Errorf("patch size %d is not a power of two in [%d, %d]",
			patchSize, terrain.MinPatchSize, terrain.MaxPatchSize)
	}
	if len(spacing) != 3 {
		return nil, fmt.Errorf("spacing needs x,y,z, got %d values", len(spacing))
	}

	t := terrain.New()
	t.SetPatchSizeAttr(patchSize)
	t.SetSpacingAttr(math.Vec3{X: spacing[0], Y: spacing[1], Z: spacing[2]})
	if !t.SetHeightMapAttr(img) {
		return nil, fmt.Errorf("image %dx%d can not be used as a heightmap", img.Width, img.Height)
	}
	t.ApplyAttributes()
	if t.NumPatches() == 0 {
		return nil, fmt.Errorf("heightmap %dx%d is smaller than one patch of %d", img.Width, img.Height, patchSize)
	}
	return t, nil
}
