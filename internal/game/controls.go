package game

import (
	"fmt"
	"path/filepath"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/config"
	"github.com/Faultbox/terra/internal/engine/input"
	"github.com/Faultbox/terra/internal/engine/picking"
	"github.com/Faultbox/terra/internal/logger"
)

// Camera tuning for touch and keyboard control.
const (
	pinchZoomFactor = 10
	moveSpeed       = 50 // HandleMovement steps per second
)

// handleEvent reacts to one input event.
func (v *Viewer) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventKeyDown:
		if !e.Repeat {
			v.handleKey(e.Key)
		}
	case input.EventMouseMove:
		if e.Buttons&input.MouseButtonLeft != 0 {
			v.camera.HandleDrag(float32(e.DX), float32(e.DY))
		}
	case input.EventMouseButtonDown:
		if e.Button == input.MouseButtonRight {
			v.pick(float32(e.X), float32(e.Y))
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(float32(e.Wheel))
	case input.EventTouchMove:
		// Single free touches orbit; touches on screen joystick elements drive the joystick
		if t := v.input.TouchByID(e.TouchID); t != nil && t.Element() == nil && v.input.NumTouches() == 1 {
			v.camera.HandleDrag(float32(e.DX), float32(e.DY))
		}
	case input.EventMultiGesture:
		v.camera.HandleZoom(e.DDist * pinchZoomFactor)
	case input.EventGestureRecorded:
		v.saveGestures(e.GestureID)
	case input.EventGestureInput:
		logger.Info("gesture recognized",
			zap.Int64("gesture", e.GestureID),
			zap.Float32("error", e.Error),
		)
	case input.EventDropFile:
		v.queueHeightMap(e.File)
	case input.EventInputFocus:
		logger.Debug("input focus changed", zap.Bool("focus", e.Focus), zap.Bool("minimized", e.Minimized))
	}
}

func (v *Viewer) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		v.running = false
	case 'O':
		v.openDialog()
	case '[':
		v.setPatchSize(v.terrain.PatchSize() / 2)
	case ']':
		v.setPatchSize(v.terrain.PatchSize() * 2)
	case 'F':
		v.input.SetTouchEmulation(!v.input.TouchEmulation())
		v.cfg.Input.TouchEmulation = v.input.TouchEmulation()
		logger.Info("touch emulation toggled", zap.Bool("enabled", v.input.TouchEmulation()))
		v.persistConfig()
	case 'G':
		v.input.RecordGesture()
	}
}

func (v *Viewer) setPatchSize(size int) {
	v.terrain.SetPatchSize(size)
	if v.terrain.PatchSize() == v.cfg.Terrain.PatchSize {
		return
	}
	v.cfg.Terrain.PatchSize = v.terrain.PatchSize()
	v.persistConfig()
}

// persistConfig saves settings changed from the keyboard so the next start
// uses them.
func (v *Viewer) persistConfig() {
	if err := v.saveConfig(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
		return
	}
	logger.Debug("config saved", zap.String("path", config.SavePath()))
}

// update moves the camera center from held keys. The screen joystick hat
// feeds the same keys.
func (v *Viewer) update(dt float32) {
	var forward, right, up float32
	if v.input.KeyDown('W') || v.input.KeyDown(sdl.K_UP) {
		forward++
	}
	if v.input.KeyDown('S') || v.input.KeyDown(sdl.K_DOWN) {
		forward--
	}
	if v.input.KeyDown('D') || v.input.KeyDown(sdl.K_RIGHT) {
		right++
	}
	if v.input.KeyDown('A') || v.input.KeyDown(sdl.K_LEFT) {
		right--
	}
	if v.input.KeyDown('E') {
		up++
	}
	if v.input.KeyDown('Q') {
		up--
	}
	if forward == 0 && right == 0 && up == 0 {
		return
	}
	scale := dt * moveSpeed
	v.camera.HandleMovement(forward*scale, right*scale, up*scale)
}

// pick finds the terrain point under a screen position.
func (v *Viewer) pick(x, y float32) {
	invViewProj := v.camera.ViewProjection(v.aspect()).Inverse()
	ray := picking.ScreenToRay(x, y, float32(v.screenW), float32(v.screenH), invViewProj)

	hit, ok := v.index.Pick(ray)
	if !ok {
		v.picked = ""
		return
	}
	p, ok := v.index.PickPoint(ray, v.terrain)
	if !ok {
		v.picked = fmt.Sprintf("patch %d,%d", hit.PatchX, hit.PatchZ)
		return
	}
	v.picked = fmt.Sprintf("patch %d,%d at %.1f %.1f %.1f", hit.PatchX, hit.PatchZ, p.X, p.Y, p.Z)
	logger.Debug("terrain picked",
		zap.Int("patch_x", hit.PatchX),
		zap.Int("patch_z", hit.PatchZ),
		zap.Float32("x", p.X),
		zap.Float32("y", p.Y),
		zap.Float32("z", p.Z),
	)
}

// openHeightMapDialog shows a native file dialog without blocking the frame loop.
func (v *Viewer) openHeightMapDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Heightmaps", "png", "bmp", "tga", "tif", "tiff", "jpg", "jpeg", "gif").
			Filter("All Files", "*").
			Title("Open Heightmap").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		v.queueHeightMap(filename)
	}()
}

func (v *Viewer) saveGestures(id int64) {
	path := filepath.Join(config.ConfigDir(), gestureFile)
	n, err := v.input.SaveGestures(path)
	if err != nil {
		logger.Error("failed to save gestures", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("gesture recorded", zap.Int64("gesture", id), zap.Int("saved", n))
}

// hudLines returns the status lines drawn by the overlay.
func (v *Viewer) hudLines() []string {
	name := v.heightMapName
	if name == "" {
		name = "no heightmap (press O to open)"
	}
	lines := []string{
		fmt.Sprintf("%s  patch size %d  patches %d", name, v.terrain.PatchSize(), v.terrain.NumPatches()),
	}
	if v.cfg.Graphics.ShowFPS {
		lines = append(lines, fmt.Sprintf("fps %d", v.fps))
	}
	if v.picked != "" {
		lines = append(lines, v.picked)
	}
	if v.input.TouchEmulation() {
		lines = append(lines, "touch emulation")
	}
	return lines
}
