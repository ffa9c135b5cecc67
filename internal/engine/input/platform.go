package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// JoystickInfo describes a joystick opened by a Platform.
type JoystickInfo struct {
	ID         sdl.JoystickID
	Name       string
	NumButtons int
	NumAxes    int
	NumHats    int
	Controller bool
}

// Platform is the window system Input reads from. SDLPlatform is the real one.
type Platform interface {
	PollEvent() sdl.Event

	// WindowFlags returns the SDL window flags.
	WindowFlags() uint32
	WindowSize() (width, height int)
	MouseState() (x, y int)
	WarpMouse(x, y int)
	ShowCursor(show bool)
	Fullscreen() bool
	ToggleFullscreen()
	// ExternalWindow reports whether the window is owned by the host application.
	ExternalWindow() bool

	NumJoysticks() int
	OpenJoystick(index int) (JoystickInfo, error)
	CloseJoystick(id sdl.JoystickID)

	StartTextInput()
	StopTextInput()
	ScreenKeyboardSupport() bool
	ScreenKeyboardShown() bool

	NumTouchDevices() int
	RecordGesture() bool
	SaveAllGestures(path string) (int, error)
	SaveGesture(id int64, path string) error
	LoadGestures(path string) (int, error)
}
