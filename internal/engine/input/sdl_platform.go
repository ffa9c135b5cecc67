package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/engine/window"
	"github.com/Faultbox/terra/internal/logger"
)

// SDLPlatform reads input from SDL for one window.
type SDLPlatform struct {
	win         *window.Window
	joysticks   map[sdl.JoystickID]*sdl.Joystick
	controllers map[sdl.JoystickID]*sdl.GameController
}

// NewSDLPlatform creates a platform for win. SDL must already be initialized.
func NewSDLPlatform(win *window.Window) *SDLPlatform {
	return &SDLPlatform{
		win:         win,
		joysticks:   make(map[sdl.JoystickID]*sdl.Joystick),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
	}
}

func (p *SDLPlatform) PollEvent() sdl.Event { return sdl.PollEvent() }

func (p *SDLPlatform) WindowFlags() uint32 { return p.win.SDLWindow().GetFlags() }

func (p *SDLPlatform) WindowSize() (int, int) { return p.win.GetSize() }

func (p *SDLPlatform) MouseState() (int, int) {
	x, y, _ := sdl.GetMouseState()
	return int(x), int(y)
}

func (p *SDLPlatform) WarpMouse(x, y int) {
	p.win.SDLWindow().WarpMouseInWindow(int32(x), int32(y))
}

func (p *SDLPlatform) ShowCursor(show bool) {
	toggle := sdl.DISABLE
	if show {
		toggle = sdl.ENABLE
	}
	if _, err := sdl.ShowCursor(toggle); err != nil {
		logger.Warn("failed to change cursor visibility", zap.Error(err))
	}
}

func (p *SDLPlatform) Fullscreen() bool { return p.win.Fullscreen() }

func (p *SDLPlatform) ToggleFullscreen() {
	if err := p.win.ToggleFullscreen(); err != nil {
		logger.Error("failed to toggle fullscreen", zap.Error(err))
	}
}

func (p *SDLPlatform) ExternalWindow() bool { return false }

func (p *SDLPlatform) NumJoysticks() int { return sdl.NumJoysticks() }

// OpenJoystick opens the device at index, as a game controller when SDL
// recognizes it as one.
func (p *SDLPlatform) OpenJoystick(index int) (JoystickInfo, error) {
	joy := sdl.JoystickOpen(index)
	if joy == nil {
		return JoystickInfo{}, fmt.Errorf("open joystick %d: %w", index, sdl.GetError())
	}

	id := joy.InstanceID()
	info := JoystickInfo{
		ID:         id,
		Name:       joy.Name(),
		NumButtons: joy.NumButtons(),
		NumAxes:    joy.NumAxes(),
		NumHats:    joy.NumHats(),
	}
	p.joysticks[id] = joy

	if sdl.IsGameController(index) {
		if c := sdl.GameControllerOpen(index); c != nil {
			p.controllers[id] = c
			info.Controller = true
		}
	}
	return info, nil
}

func (p *SDLPlatform) CloseJoystick(id sdl.JoystickID) {
	if c, ok := p.controllers[id]; ok {
		c.Close()
		delete(p.controllers, id)
	}
	if j, ok := p.joysticks[id]; ok {
		j.Close()
		delete(p.joysticks, id)
	}
}

func (p *SDLPlatform) StartTextInput() { sdl.StartTextInput() }

func (p *SDLPlatform) StopTextInput() { sdl.StopTextInput() }

func (p *SDLPlatform) ScreenKeyboardSupport() bool { return sdl.HasScreenKeyboardSupport() }

func (p *SDLPlatform) ScreenKeyboardShown() bool {
	return sdl.IsScreenKeyboardShown(p.win.SDLWindow())
}

func (p *SDLPlatform) NumTouchDevices() int { return sdl.GetNumTouchDevices() }

// RecordGesture starts recording on all touch devices.
func (p *SDLPlatform) RecordGesture() bool { return sdl.RecordGesture(-1) != 0 }

func (p *SDLPlatform) SaveAllGestures(path string) (int, error) {
	rw := sdl.RWFromFile(path, "wb")
	if rw == nil {
		return 0, fmt.Errorf("open %s: %w", path, sdl.GetError())
	}
	defer rw.Close()
	return sdl.SaveAllDollarTemplates(rw), nil
}

func (p *SDLPlatform) SaveGesture(id int64, path string) error {
	rw := sdl.RWFromFile(path, "wb")
	if rw == nil {
		return fmt.Errorf("open %s: %w", path, sdl.GetError())
	}
	defer rw.Close()
	if sdl.SaveDollarTemplate(sdl.GestureID(id), rw) == 0 {
		return fmt.Errorf("save gesture %d: %w", id, sdl.GetError())
	}
	return nil
}

func (p *SDLPlatform) LoadGestures(path string) (int, error) {
	rw := sdl.RWFromFile(path, "rb")
	if rw == nil {
		return 0, fmt.Errorf("open %s: %w", path, sdl.GetError())
	}
	defer rw.Close()
	n := sdl.LoadDollarTemplates(-1, rw)
	if n < 0 {
		return 0, fmt.Errorf("load gestures from %s: %w", path, sdl.GetError())
	}
	return n, nil
}

// Close closes every opened joystick.
func (p *SDLPlatform) Close() {
	for id := range p.joysticks {
		p.CloseJoystick(id)
	}
}
