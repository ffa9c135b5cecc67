package game

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/config"
	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/engine/texture"
	"github.com/Faultbox/terra/internal/logger"
	"github.com/Faultbox/terra/pkg/math"
)

// newTerrain creates a terrain with the configured attributes. Geometry is
// built once a heightmap is set.
func newTerrain(cfg config.TerrainConfig) (*terrain.Terrain, error) {
	t := terrain.New()
	t.SetPatchSizeAttr(cfg.PatchSize)
	t.SetSpacingAttr(math.Vec3{X: cfg.Spacing.X, Y: cfg.Spacing.Y, Z: cfg.Spacing.Z})
	t.SetDrawDistance(cfg.DrawDistance)
	t.SetLodBias(cfg.LodBias)
	t.SetCastShadows(cfg.CastShadows)

	if cfg.MaterialTexture != "" {
		img, err := texture.Load(cfg.MaterialTexture)
		if err != nil {
			return nil, fmt.Errorf("terrain material: %w", err)
		}
		t.SetMaterial(&terrain.Material{
			Name:    filepath.Base(cfg.MaterialTexture),
			Texture: img,
			Tiling:  cfg.Tiling,
		})
	}
	return t, nil
}

// loadHeightMap replaces the terrain heightmap and frames it with the camera.
func (v *Viewer) loadHeightMap(path string) error {
	img, err := texture.Load(path)
	if err != nil {
		return fmt.Errorf("heightmap: %w", err)
	}
	if !v.terrain.SetHeightMapAttr(img) {
		return fmt.Errorf("heightmap %s can not be used", path)
	}
	v.terrain.ApplyAttributes()

	v.heightMapName = filepath.Base(path)
	v.picked = ""
	v.camera.FitToBounds(v.terrain.Bounds())
	if v.window != nil {
		v.window.SetTitle("Terra - " + v.heightMapName)
	}

	logger.Info("heightmap loaded",
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("patches", v.terrain.NumPatches()),
	)
	return nil
}

// queueHeightMap hands a path to the frame loop. Only the latest path is kept.
func (v *Viewer) queueHeightMap(path string) {
	for {
		select {
		case v.pendingHeightMap <- path:
			return
		default:
		}
		select {
		case <-v.pendingHeightMap:
		default:
		}
	}
}

func (v *Viewer) applyPendingHeightMap() {
	select {
	case path := <-v.pendingHeightMap:
		if err := v.loadHeightMap(path); err != nil {
			logger.Error("failed to load heightmap", zap.String("path", path), zap.Error(err))
		}
	default:
	}
}
