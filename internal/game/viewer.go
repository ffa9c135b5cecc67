// Package game implements the terrain viewer frame loop.
package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/config"
	"github.com/Faultbox/terra/internal/engine/camera"
	"github.com/Faultbox/terra/internal/engine/input"
	"github.com/Faultbox/terra/internal/engine/picking"
	"github.com/Faultbox/terra/internal/engine/renderer"
	"github.com/Faultbox/terra/internal/engine/terrain"
	"github.com/Faultbox/terra/internal/engine/ui2d"
	"github.com/Faultbox/terra/internal/engine/window"
	"github.com/Faultbox/terra/internal/logger"
)

const gestureFile = "gestures.bin"

// Viewer is the interactive terrain viewer.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Renderer
	overlay  *ui2d.Overlay
	platform *input.SDLPlatform
	input    *input.Input

	terrain *terrain.Terrain
	index   *picking.PatchIndex
	camera  *camera.OrbitCamera

	screenW, screenH int

	heightMapName string
	picked        string
	fps           int

	// Heightmap paths chosen outside the frame loop, applied on the next frame
	pendingHeightMap chan string
	openDialog       func()
	saveConfig       func() error
	removeListeners  []func()
}

// New creates the window, renderer, input and terrain described by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	v := &Viewer{
		cfg:              cfg,
		camera:           camera.NewOrbitCamera(),
		index:            picking.NewPatchIndex(),
		screenW:          cfg.Graphics.Width,
		screenH:          cfg.Graphics.Height,
		pendingHeightMap: make(chan string, 1),
	}
	v.openDialog = v.openHeightMapDialog
	v.saveConfig = cfg.Save

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "Terra",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	v.screenW, v.screenH = v.window.GetSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{Width: v.screenW, Height: v.screenH})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.ui, err = ui2d.New(v.screenW, v.screenH)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create overlay renderer: %w", err)
	}
	v.overlay = ui2d.NewOverlay(v.ui)

	v.platform = input.NewSDLPlatform(v.window)
	v.input = input.New(v.platform,
		input.WithMouseVisible(cfg.Input.MouseVisible),
		input.WithTouchEmulation(cfg.Input.TouchEmulation),
		input.WithToggleFullscreen(cfg.Input.ToggleFullscreen),
	)
	v.input.Initialize()
	if err := v.setupScreenJoystick(cfg.Input); err != nil {
		v.Close()
		return nil, err
	}
	v.loadGestures()

	v.terrain, err = newTerrain(cfg.Terrain)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.removeListeners = append(v.removeListeners,
		v.terrain.AddListener(v.renderer.Terrain()),
		v.terrain.AddListener(v.index),
	)

	if cfg.Terrain.HeightMap != "" {
		if err := v.loadHeightMap(cfg.Terrain.HeightMap); err != nil {
			v.Close()
			return nil, err
		}
	}

	logger.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) setupScreenJoystick(cfg config.InputConfig) error {
	if !cfg.ScreenJoystick {
		return nil
	}
	var layout *input.Layout
	if cfg.ScreenJoystickLayout != "" {
		var err error
		layout, err = input.LoadLayout(cfg.ScreenJoystickLayout)
		if err != nil {
			return fmt.Errorf("screen joystick: %w", err)
		}
	}
	if _, err := v.input.AddScreenJoystick(layout); err != nil {
		return fmt.Errorf("screen joystick: %w", err)
	}
	return nil
}

func (v *Viewer) loadGestures() {
	path := filepath.Join(config.ConfigDir(), gestureFile)
	if _, err := os.Stat(path); err != nil {
		return
	}
	n, err := v.input.LoadGestures(path)
	if err != nil {
		if !errors.Is(err, input.ErrNoTouchDevice) {
			logger.Warn("failed to load gestures", zap.String("path", path), zap.Error(err))
		}
		return
	}
	logger.Info("gestures loaded", zap.Int("count", n))
}

// Run starts the frame loop and returns when the viewer quits.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, e := range v.input.Events() {
			if e.Type == input.EventWindowResize {
				v.resize(e.Width, e.Height)
				continue
			}
			v.handleEvent(e)
		}

		// 2. Update viewer state
		v.applyPendingHeightMap()
		v.update(float32(dt))

		// 3. Render
		v.render()

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.fps = frameCount
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if limit := v.cfg.Graphics.FPSLimit; limit > 0 {
			budget := time.Second / time.Duration(limit)
			if spent := time.Since(frameStart); spent < budget {
				time.Sleep(budget - spent)
			}
		}
	}

	return nil
}

func (v *Viewer) resize(width, height int) {
	v.screenW, v.screenH = width, height
	v.renderer.Resize(width, height)
	v.ui.Resize(width, height)
}

// render draws the current frame.
func (v *Viewer) render() {
	v.renderer.Begin()

	viewProj := v.camera.ViewProjection(v.aspect())
	v.renderer.Terrain().Render(viewProj, v.camera.Position())

	v.ui.Begin()
	v.overlay.Draw(v.input, v.screenW, v.screenH, v.hudLines())
	v.ui.End()

	v.renderer.End()
}

func (v *Viewer) aspect() float32 {
	if v.screenH == 0 {
		return 1
	}
	return float32(v.screenW) / float32(v.screenH)
}

// Close releases everything New created.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	for _, remove := range v.removeListeners {
		remove()
	}
	v.removeListeners = nil

	if v.ui != nil {
		v.ui.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.platform != nil {
		v.platform.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
