// Package input normalizes SDL2 input into per-frame state and events.
package input

import (
	"image"
	"sort"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/logger"
)

// FocusState is the input focus of the window.
type FocusState int

const (
	Unfocused FocusState = iota
	Focused
	Minimized
)

func (s FocusState) String() string {
	switch s {
	case Focused:
		return "Focused"
	case Minimized:
		return "Minimized"
	default:
		return "Unfocused"
	}
}

// TouchState is one active touch.
type TouchState struct {
	ID           int
	Position     image.Point
	LastPosition image.Point
	Delta        image.Point
	Pressure     float32

	// element is the screen joystick element the touch began on.
	element *Element
}

// Element returns the screen joystick element the touch began on, or nil.
func (t *TouchState) Element() *Element { return t.element }

// Option configures an Input before Initialize.
type Option func(*Input)

// WithMouseVisible sets the initial cursor visibility.
func WithMouseVisible(visible bool) Option {
	return func(in *Input) { in.mouseVisible = visible }
}

// WithTouchEmulation turns mouse buttons into touches from the start.
func WithTouchEmulation(enable bool) Option {
	return func(in *Input) { in.touchEmulation = enable }
}

// WithToggleFullscreen sets whether Alt+Enter toggles fullscreen. Default true.
func WithToggleFullscreen(enable bool) Option {
	return func(in *Input) { in.toggleFullscreen = enable }
}

// Input handles all input processing.
// It is single threaded and must be driven from the frame loop.
type Input struct {
	platform Platform
	events   []Event
	pending  []fingerEvent

	keyDown       map[sdl.Keycode]bool
	keyPress      map[sdl.Keycode]bool
	scancodeDown  map[sdl.Scancode]bool
	scancodePress map[sdl.Scancode]bool

	mouseButtonDown   MouseButton
	mouseButtonPress  MouseButton
	lastMousePosition image.Point
	mouseMove         image.Point
	mouseMoveWheel    int

	touches   map[int]*TouchState
	joysticks map[sdl.JoystickID]*JoystickState

	mouseVisible          bool
	mouseGrabbed          bool
	toggleFullscreen      bool
	touchEmulation        bool
	inputFocus            bool
	minimized             bool
	focusedThisFrame      bool
	suppressNextMouseMove bool
	initialized           bool
	quit                  bool
}

// New creates an input handler reading from p. Call Initialize before the first Update.
func New(p Platform, opts ...Option) *Input {
	in := &Input{
		platform:         p,
		events:           make([]Event, 0, 16),
		keyDown:          make(map[sdl.Keycode]bool),
		keyPress:         make(map[sdl.Keycode]bool),
		scancodeDown:     make(map[sdl.Scancode]bool),
		scancodePress:    make(map[sdl.Scancode]bool),
		touches:          make(map[int]*TouchState),
		joysticks:        make(map[sdl.JoystickID]*JoystickState),
		toggleFullscreen: true,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.touchEmulation {
		in.mouseVisible = true
	}
	return in
}

// Initialize opens the connected joysticks and resets state. Focus is
// evaluated on the next Update.
func (in *Input) Initialize() {
	if in.platform.ExternalWindow() {
		in.mouseVisible = true
	}

	in.focusedThisFrame = true
	in.initialized = true

	in.resetJoysticks()
	in.ResetState()

	logger.Info("initialized input",
		zap.Int("joysticks", len(in.joysticks)),
		zap.Bool("mouseVisible", in.mouseVisible),
		zap.Bool("touchEmulation", in.touchEmulation),
	)
}

// Update polls events and converts them to per-frame state and events.
// Returns true if a quit was requested this frame.
func (in *Input) Update() bool {
	in.events = in.events[:0]
	in.quit = false

	clear(in.keyPress)
	clear(in.scancodePress)
	in.mouseButtonPress = 0
	in.mouseMove = image.Point{}
	in.mouseMoveWheel = 0
	for _, j := range in.joysticks {
		clear(j.ButtonPress)
	}
	for _, t := range in.touches {
		t.LastPosition = t.Position
		t.Delta = image.Point{}
	}

	// Synthetic events queue behind platform events and drain in the same pass.
	for {
		if ev := in.platform.PollEvent(); ev != nil {
			in.handleSDLEvent(ev)
			continue
		}
		if len(in.pending) == 0 {
			break
		}
		fe := in.pending[0]
		in.pending = in.pending[1:]
		in.handleFinger(fe)
	}

	in.checkFocus()
	return in.quit
}

func (in *Input) checkFocus() {
	flags := in.platform.WindowFlags()
	hasInputFocus := flags&sdl.WINDOW_INPUT_FOCUS != 0
	hasMouseFocus := flags&sdl.WINDOW_MOUSE_FOCUS != 0

	if !in.inputFocus && hasInputFocus {
		in.focusedThisFrame = true
	}
	if in.focusedThisFrame {
		in.gainFocus()
	}
	if in.inputFocus && !hasInputFocus {
		in.loseFocus()
	}

	external := in.platform.ExternalWindow()
	if in.touchEmulation || !(external || (!in.mouseVisible && in.inputFocus && hasMouseFocus)) {
		return
	}

	pos := in.MousePosition()
	in.mouseMove = pos.Sub(in.lastMousePosition)

	if external {
		in.lastMousePosition = pos
	} else {
		center := in.windowCenter()
		if pos != center {
			in.platform.WarpMouse(center.X, center.Y)
			in.lastMousePosition = center
		}
	}

	if in.mouseMove == (image.Point{}) {
		return
	}
	if in.suppressNextMouseMove {
		in.mouseMove = image.Point{}
		in.suppressNextMouseMove = false
		return
	}

	e := Event{
		Type:       EventMouseMove,
		DX:         in.mouseMove.X,
		DY:         in.mouseMove.Y,
		Buttons:    in.mouseButtonDown,
		Qualifiers: in.Qualifiers(),
	}
	if in.mouseVisible {
		e.X, e.Y = pos.X, pos.Y
	}
	in.emit(e)
}

func (in *Input) gainFocus() {
	in.ResetState()

	in.inputFocus = true
	in.focusedThisFrame = false

	if !in.mouseVisible {
		in.platform.ShowCursor(false)
		in.suppressNextMouseMove = true
	} else {
		in.lastMousePosition = in.MousePosition()
	}

	in.emitFocus()
}

func (in *Input) loseFocus() {
	in.ResetState()

	in.inputFocus = false
	in.focusedThisFrame = false
	in.platform.ShowCursor(true)

	in.emitFocus()
}

func (in *Input) emitFocus() {
	in.emit(Event{Type: EventInputFocus, Focus: in.inputFocus, Minimized: in.minimized})
}

// ScreenModeChanged re-reads window state after a fullscreen switch or mode change.
func (in *Input) ScreenModeChanged() {
	in.ResetState()
	if !in.mouseVisible && in.inputFocus {
		center := in.windowCenter()
		in.platform.WarpMouse(center.X, center.Y)
		in.lastMousePosition = center
	}
	in.focusedThisFrame = true
	in.minimized = in.platform.WindowFlags()&sdl.WINDOW_MINIMIZED != 0
}

// ResetState releases every key, button and touch.
func (in *Input) ResetState() {
	clear(in.keyDown)
	clear(in.keyPress)
	clear(in.scancodeDown)
	clear(in.scancodePress)

	for _, j := range in.joysticks {
		j.reset()
	}

	in.resetTouches()

	// Released through the normal path so listeners see the button ups.
	for _, b := range []MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle, MouseButtonX1, MouseButtonX2} {
		in.setMouseButton(b, false)
	}

	in.mouseButtonPress = 0
	in.mouseMove = image.Point{}
	in.mouseMoveWheel = 0
}

func (in *Input) resetTouches() {
	for _, t := range in.sortedTouches() {
		in.emit(Event{
			Type:    EventTouchEnd,
			TouchID: t.ID,
			X:       t.Position.X,
			Y:       t.Position.Y,
		})
		in.screenJoystickTouch(EventTouchEnd, t)
	}
	clear(in.touches)
}

func (in *Input) resetJoysticks() {
	for id, j := range in.joysticks {
		if j.screen == nil {
			in.platform.CloseJoystick(id)
			delete(in.joysticks, id)
		}
	}

	n := in.platform.NumJoysticks()
	for i := 0; i < n; i++ {
		in.openJoystick(i)
	}
}

func (in *Input) emit(e Event) {
	in.events = append(in.events, e)
}

// Events returns the events from the last Update.
func (in *Input) Events() []Event {
	return in.events
}

// SetMouseVisible shows or hides the cursor. Hidden cursors report relative motion.
func (in *Input) SetMouseVisible(visible bool) {
	if in.touchEmulation {
		visible = true
	}
	if visible == in.mouseVisible {
		return
	}

	if !in.initialized {
		in.mouseVisible = visible
		in.emit(Event{Type: EventMouseVisibleChanged, Visible: visible})
		return
	}

	if in.platform.ExternalWindow() {
		in.mouseVisible = true
		return
	}

	in.mouseVisible = visible
	if !visible && in.inputFocus {
		in.platform.ShowCursor(false)
		center := in.windowCenter()
		in.platform.WarpMouse(center.X, center.Y)
		in.lastMousePosition = center
	} else {
		in.platform.ShowCursor(true)
	}

	in.emit(Event{Type: EventMouseVisibleChanged, Visible: in.mouseVisible})
}

// SetMouseGrabbed records whether the application wants the mouse confined.
func (in *Input) SetMouseGrabbed(grab bool) {
	in.mouseGrabbed = grab
}

// SetToggleFullscreen enables or disables Alt+Enter fullscreen switching.
func (in *Input) SetToggleFullscreen(enable bool) {
	in.toggleFullscreen = enable
}

// SetTouchEmulation turns mouse buttons into touches. Disabling ends every touch.
func (in *Input) SetTouchEmulation(enable bool) {
	if enable == in.touchEmulation {
		return
	}
	if enable {
		in.SetMouseVisible(true)
		in.touchEmulation = true
		return
	}
	in.touchEmulation = false
	in.resetTouches()
}

// SetMousePosition warps the cursor and treats the new position as the reference.
func (in *Input) SetMousePosition(p image.Point) {
	in.platform.WarpMouse(p.X, p.Y)
	in.lastMousePosition = p
}

// SetScreenKeyboardVisible shows or hides the on-screen keyboard.
func (in *Input) SetScreenKeyboardVisible(enable bool) {
	if enable == in.IsScreenKeyboardVisible() {
		return
	}
	if enable {
		in.platform.StartTextInput()
	} else {
		in.platform.StopTextInput()
	}
}

// ScreenKeyboardSupport reports whether the platform has an on-screen keyboard.
func (in *Input) ScreenKeyboardSupport() bool {
	return in.platform.ScreenKeyboardSupport()
}

// IsScreenKeyboardVisible reports whether the on-screen keyboard is shown.
func (in *Input) IsScreenKeyboardVisible() bool {
	return in.platform.ScreenKeyboardShown()
}

// KeyDown reports whether a key is held. Letters match either case.
func (in *Input) KeyDown(key sdl.Keycode) bool {
	return in.keyDown[upperKey(key)]
}

// KeyPress reports whether a key went down this frame.
func (in *Input) KeyPress(key sdl.Keycode) bool {
	return in.keyPress[upperKey(key)]
}

func (in *Input) ScancodeDown(scancode sdl.Scancode) bool {
	return in.scancodeDown[scancode]
}

func (in *Input) ScancodePress(scancode sdl.Scancode) bool {
	return in.scancodePress[scancode]
}

// MouseButtonDown reports whether any of the buttons in b is held.
func (in *Input) MouseButtonDown(b MouseButton) bool {
	return in.mouseButtonDown&b != 0
}

// MouseButtonPress reports whether any of the buttons in b went down this frame.
func (in *Input) MouseButtonPress(b MouseButton) bool {
	return in.mouseButtonPress&b != 0
}

func (in *Input) QualifierDown(q Qualifier) bool {
	switch q {
	case QualShift:
		return in.KeyDown(sdl.K_LSHIFT) || in.KeyDown(sdl.K_RSHIFT)
	case QualCtrl:
		return in.KeyDown(sdl.K_LCTRL) || in.KeyDown(sdl.K_RCTRL)
	case QualAlt:
		return in.KeyDown(sdl.K_LALT) || in.KeyDown(sdl.K_RALT)
	}
	return false
}

func (in *Input) QualifierPress(q Qualifier) bool {
	switch q {
	case QualShift:
		return in.KeyPress(sdl.K_LSHIFT) || in.KeyPress(sdl.K_RSHIFT)
	case QualCtrl:
		return in.KeyPress(sdl.K_LCTRL) || in.KeyPress(sdl.K_RCTRL)
	case QualAlt:
		return in.KeyPress(sdl.K_LALT) || in.KeyPress(sdl.K_RALT)
	}
	return false
}

// Qualifiers returns the held modifier keys.
func (in *Input) Qualifiers() Qualifier {
	var q Qualifier
	for _, bit := range []Qualifier{QualShift, QualCtrl, QualAlt} {
		if in.QualifierDown(bit) {
			q |= bit
		}
	}
	return q
}

// MousePosition returns the cursor position in window pixels.
func (in *Input) MousePosition() image.Point {
	if !in.initialized {
		return image.Point{}
	}
	x, y := in.platform.MouseState()
	return image.Point{X: x, Y: y}
}

// MouseMove returns the mouse motion accumulated this frame.
func (in *Input) MouseMove() image.Point { return in.mouseMove }

// MouseMoveWheel returns the wheel motion accumulated this frame.
func (in *Input) MouseMoveWheel() int { return in.mouseMoveWheel }

func (in *Input) MouseVisible() bool { return in.mouseVisible }
func (in *Input) MouseGrabbed() bool { return in.mouseGrabbed }
func (in *Input) TouchEmulation() bool { return in.touchEmulation }
func (in *Input) FullscreenToggleOn() bool { return in.toggleFullscreen }

// NumTouches returns the number of active touches.
func (in *Input) NumTouches() int { return len(in.touches) }

// Touch returns the active touch at index, ordered by touch id, or nil.
func (in *Input) Touch(index int) *TouchState {
	ts := in.sortedTouches()
	if index < 0 || index >= len(ts) {
		return nil
	}
	return ts[index]
}

// TouchByID returns the active touch with the given id, or nil.
func (in *Input) TouchByID(id int) *TouchState {
	return in.touches[id]
}

func (in *Input) sortedTouches() []*TouchState {
	ts := make([]*TouchState, 0, len(in.touches))
	for _, t := range in.touches {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(a, b int) bool { return ts[a].ID < ts[b].ID })
	return ts
}

// HasFocus reports whether the window has input focus.
func (in *Input) HasFocus() bool { return in.inputFocus }

// IsMinimized reports whether the window is minimized. An unfocused
// fullscreen window counts as minimized.
func (in *Input) IsMinimized() bool {
	if !in.inputFocus && in.platform.Fullscreen() {
		return true
	}
	return in.minimized
}

// Focus returns the current focus state.
func (in *Input) Focus() FocusState {
	switch {
	case in.IsMinimized():
		return Minimized
	case in.inputFocus:
		return Focused
	default:
		return Unfocused
	}
}

func (in *Input) windowCenter() image.Point {
	w, h := in.platform.WindowSize()
	return image.Point{X: w / 2, Y: h / 2}
}
