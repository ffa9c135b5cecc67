package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a normalized input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventInputFocus
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseMove
	EventMouseWheel
	EventMouseVisibleChanged
	EventTouchBegin
	EventTouchMove
	EventTouchEnd
	EventGestureRecorded
	EventGestureInput
	EventMultiGesture
	EventJoystickConnected
	EventJoystickDisconnected
	EventJoystickButtonDown
	EventJoystickButtonUp
	EventJoystickAxisMove
	EventJoystickHatMove
	EventDropFile
)

var eventTypeNames = [...]string{
	EventNone:                 "None",
	EventQuit:                 "Quit",
	EventWindowResize:         "WindowResize",
	EventInputFocus:           "InputFocus",
	EventKeyDown:              "KeyDown",
	EventKeyUp:                "KeyUp",
	EventTextInput:            "TextInput",
	EventMouseButtonDown:      "MouseButtonDown",
	EventMouseButtonUp:        "MouseButtonUp",
	EventMouseMove:            "MouseMove",
	EventMouseWheel:           "MouseWheel",
	EventMouseVisibleChanged:  "MouseVisibleChanged",
	EventTouchBegin:           "TouchBegin",
	EventTouchMove:            "TouchMove",
	EventTouchEnd:             "TouchEnd",
	EventGestureRecorded:      "GestureRecorded",
	EventGestureInput:         "GestureInput",
	EventMultiGesture:         "MultiGesture",
	EventJoystickConnected:    "JoystickConnected",
	EventJoystickDisconnected: "JoystickDisconnected",
	EventJoystickButtonDown:   "JoystickButtonDown",
	EventJoystickButtonUp:     "JoystickButtonUp",
	EventJoystickAxisMove:     "JoystickAxisMove",
	EventJoystickHatMove:      "JoystickHatMove",
	EventDropFile:             "DropFile",
}

func (t EventType) String() string {
	if int(t) >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// Event represents a processed input event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	// Keyboard
	Key      sdl.Keycode // uppercased for letters
	Scancode sdl.Scancode
	Repeat   bool
	Text     string

	// Mouse; Button is a single MouseButton mask, Buttons the held set.
	Button     MouseButton
	Buttons    MouseButton
	Qualifiers Qualifier
	X, Y       int
	DX, DY     int
	Wheel      int
	Visible    bool

	// Touch
	TouchID  int
	Pressure float32

	// Gestures, X and Y hold the gesture center.
	GestureID  int64
	NumFingers int
	Error      float32
	DTheta     float32 // degrees
	DDist      float32

	// Joystick
	JoystickID  sdl.JoystickID
	JoyButton   int
	Axis        int
	Position    float32 // axis position in [-1, 1]
	Hat         int
	HatPosition uint8

	// Window
	Width, Height int
	Focus         bool
	Minimized     bool
	File          string
}
