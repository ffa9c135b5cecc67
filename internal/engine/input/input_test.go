package input

import (
	"errors"
	"image"
	"math"
	"slices"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

type fakePlatform struct {
	queue []sdl.Event

	flags        uint32
	w, h         int
	mx, my       int
	cursorShown  bool
	fullscreen   bool
	toggles      int
	warps        []image.Point
	external     bool
	touchDevices int

	devices []JoystickInfo
	openErr map[int]error
	closed  []sdl.JoystickID
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		flags:       uint32(sdl.WINDOW_INPUT_FOCUS | sdl.WINDOW_MOUSE_FOCUS),
		w:           1024,
		h:           1024,
		cursorShown: true,
		openErr:     make(map[int]error),
	}
}

func (p *fakePlatform) push(evs ...sdl.Event) { p.queue = append(p.queue, evs...) }

func (p *fakePlatform) PollEvent() sdl.Event {
	if len(p.queue) == 0 {
		return nil
	}
	ev := p.queue[0]
	p.queue = p.queue[1:]
	return ev
}

func (p *fakePlatform) WindowFlags() uint32 { return p.flags }
func (p *fakePlatform) WindowSize() (int, int) { return p.w, p.h }
func (p *fakePlatform) MouseState() (int, int) { return p.mx, p.my }

func (p *fakePlatform) WarpMouse(x, y int) {
	p.mx, p.my = x, y
	p.warps = append(p.warps, image.Pt(x, y))
}

func (p *fakePlatform) ShowCursor(show bool) { p.cursorShown = show }
func (p *fakePlatform) Fullscreen() bool { return p.fullscreen }
func (p *fakePlatform) ToggleFullscreen() {
	p.toggles++
	p.fullscreen = !p.fullscreen
}

func (p *fakePlatform) ExternalWindow() bool { return p.external }
func (p *fakePlatform) NumJoysticks() int { return len(p.devices) }

func (p *fakePlatform) OpenJoystick(index int) (JoystickInfo, error) {
	if err := p.openErr[index]; err != nil {
		return JoystickInfo{}, err
	}
	if index < 0 || index >= len(p.devices) {
		return JoystickInfo{}, errors.New("no such device")
	}
	return p.devices[index], nil
}

func (p *fakePlatform) CloseJoystick(id sdl.JoystickID) { p.closed = append(p.closed, id) }
func (p *fakePlatform) StartTextInput() {}
func (p *fakePlatform) StopTextInput() {}
func (p *fakePlatform) ScreenKeyboardSupport() bool { return false }
func (p *fakePlatform) ScreenKeyboardShown() bool { return false }
func (p *fakePlatform) NumTouchDevices() int { return p.touchDevices }
func (p *fakePlatform) RecordGesture() bool { return true }

func (p *fakePlatform) SaveAllGestures(path string) (int, error) { return 0, nil }
func (p *fakePlatform) SaveGesture(id int64, path string) error { return nil }
func (p *fakePlatform) LoadGestures(path string) (int, error) { return 2, nil }

// focusedInput returns an initialized Input that has processed its first
// frame and holds focus. The cursor is visible unless opts say otherwise.
func focusedInput(t *testing.T, p *fakePlatform, opts ...Option) *Input {
	t.Helper()
	in := New(p, append([]Option{WithMouseVisible(true)}, opts...)...)
	in.Initialize()
	in.Update()
	if !in.HasFocus() {
		t.Fatal("expected input focus after first update")
	}
	return in
}

func eventTypes(evs []Event) []EventType {
	out := make([]EventType, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.Type)
	}
	return out
}

func countEvents(evs []Event, typ EventType) int {
	n := 0
	for _, e := range evs {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func keyEvent(down bool, sym sdl.Keycode, scancode sdl.Scancode) *sdl.KeyboardEvent {
	typ := uint32(sdl.KEYUP)
	if down {
		typ = uint32(sdl.KEYDOWN)
	}
	return &sdl.KeyboardEvent{Type: typ, Keysym: sdl.Keysym{Sym: sym, Scancode: scancode}}
}

func mouseButtonEvent(down bool, button uint8) *sdl.MouseButtonEvent {
	return &sdl.MouseButtonEvent{Type: mouseButtonEventType(down), Button: button}
}

// finger builds a touch event at pixel coordinates on a 1024x1024 window.
func finger(typ uint32, id int, x, y int) *sdl.TouchFingerEvent {
	return &sdl.TouchFingerEvent{
		Type:     typ,
		TouchID:  1,
		FingerID: sdl.FingerID(id),
		X:        float32(x) / 1024,
		Y:        float32(y) / 1024,
		Pressure: 1,
	}
}

func TestKeyPressAndHold(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	// Frame 1: press
	p.push(keyEvent(true, 'a', sdl.SCANCODE_A))
	in.Update()

	evs := in.Events()
	if countEvents(evs, EventKeyDown) != 1 {
		t.Fatalf("expected 1 KeyDown, got %v", eventTypes(evs))
	}
	if evs[0].Key != 'A' || evs[0].Repeat {
		t.Errorf("expected non-repeat KeyDown of 'A', got key %d repeat %v", evs[0].Key, evs[0].Repeat)
	}
	if !in.KeyDown('a') || !in.KeyDown('A') {
		t.Error("expected key down in either case")
	}
	if !in.KeyPress('A') {
		t.Error("expected key press in the first frame")
	}
	if !in.ScancodeDown(sdl.SCANCODE_A) || !in.ScancodePress(sdl.SCANCODE_A) {
		t.Error("expected scancode down and pressed")
	}

	// Frame 2: OS key repeat while held
	p.push(keyEvent(true, 'a', sdl.SCANCODE_A))
	in.Update()

	evs = in.Events()
	if len(evs) != 1 || evs[0].Type != EventKeyDown || !evs[0].Repeat {
		t.Fatalf("expected one repeat KeyDown, got %+v", evs)
	}
	if !in.KeyDown('A') {
		t.Error("expected key still down")
	}
	if in.KeyPress('A') {
		t.Error("key press must only be reported in the first frame")
	}

	// Frame 3: held, no events
	in.Update()
	if len(in.Events()) != 0 {
		t.Errorf("expected no events, got %v", eventTypes(in.Events()))
	}
	if !in.KeyDown('A') || in.KeyPress('A') {
		t.Error("expected level-triggered down without press")
	}

	// Frame 4: release
	p.push(keyEvent(false, 'a', sdl.SCANCODE_A))
	in.Update()
	if got := eventTypes(in.Events()); !slices.Equal(got, []EventType{EventKeyUp}) {
		t.Fatalf("expected one KeyUp, got %v", got)
	}
	if in.KeyDown('A') || in.ScancodeDown(sdl.SCANCODE_A) {
		t.Error("expected key released")
	}

	// Frame 5: a stray release is dropped
	p.push(keyEvent(false, 'a', sdl.SCANCODE_A))
	in.Update()
	if len(in.Events()) != 0 {
		t.Errorf("expected stray release dropped, got %v", eventTypes(in.Events()))
	}
}

func TestBackButtonIsEscape(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(keyEvent(true, sdl.K_AC_BACK, sdl.SCANCODE_AC_BACK))
	in.Update()

	if !in.KeyDown(sdl.K_ESCAPE) {
		t.Error("expected back button to report as escape")
	}
}

func TestKeyIgnoredWithoutFocus(t *testing.T) {
	p := newFakePlatform()
	p.flags = 0
	in := New(p, WithMouseVisible(true))
	in.Initialize()
	in.Update()

	p.push(keyEvent(true, 'w', sdl.SCANCODE_W))
	in.Update()

	if in.KeyDown('W') {
		t.Error("key press must be ignored without focus")
	}
	if countEvents(in.Events(), EventKeyDown) != 0 {
		t.Error("expected no KeyDown without focus")
	}
}

func TestQualifiers(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(keyEvent(true, sdl.K_LSHIFT, sdl.SCANCODE_LSHIFT))
	p.push(keyEvent(true, sdl.K_RCTRL, sdl.SCANCODE_RCTRL))
	in.Update()

	if q := in.Qualifiers(); q != QualShift|QualCtrl {
		t.Errorf("expected shift|ctrl, got %d", q)
	}
	if !in.QualifierPress(QualShift) {
		t.Error("expected shift pressed this frame")
	}
	if in.QualifierDown(QualAlt) {
		t.Error("alt is not held")
	}
	last := in.Events()[len(in.Events())-1]
	if last.Qualifiers != QualShift|QualCtrl {
		t.Errorf("expected event qualifiers shift|ctrl, got %d", last.Qualifiers)
	}
}

func TestAltEnterTogglesFullscreen(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(keyEvent(true, sdl.K_LALT, sdl.SCANCODE_LALT))
	p.push(keyEvent(true, sdl.K_RETURN, sdl.SCANCODE_RETURN))
	in.Update()

	if p.toggles != 1 {
		t.Fatalf("expected one fullscreen toggle, got %d", p.toggles)
	}

	in.SetToggleFullscreen(false)
	p.push(keyEvent(true, sdl.K_LALT, sdl.SCANCODE_LALT))
	p.push(keyEvent(true, sdl.K_KP_ENTER, sdl.SCANCODE_KP_ENTER))
	in.Update()
	if p.toggles != 1 {
		t.Errorf("toggle disabled, expected no further toggles, got %d", p.toggles)
	}
}

func TestMouseButtons(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(mouseButtonEvent(true, sdl.BUTTON_LEFT))
	in.Update()

	if !in.MouseButtonDown(MouseButtonLeft) || !in.MouseButtonPress(MouseButtonLeft) {
		t.Error("expected left button down and pressed")
	}
	evs := in.Events()
	if len(evs) != 1 || evs[0].Button != MouseButtonLeft || evs[0].Buttons != MouseButtonLeft {
		t.Fatalf("unexpected events %+v", evs)
	}

	in.Update()
	if !in.MouseButtonDown(MouseButtonLeft) || in.MouseButtonPress(MouseButtonLeft) {
		t.Error("expected held without press in the second frame")
	}

	p.push(mouseButtonEvent(false, sdl.BUTTON_LEFT))
	p.push(mouseButtonEvent(false, sdl.BUTTON_LEFT))
	in.Update()
	if got := countEvents(in.Events(), EventMouseButtonUp); got != 1 {
		t.Errorf("expected one MouseButtonUp, got %d", got)
	}
	if in.MouseButtonDown(MouseButtonLeft) {
		t.Error("expected left button released")
	}
}

func TestMouseButtonMasks(t *testing.T) {
	tests := []struct {
		button uint8
		want   MouseButton
	}{
		{sdl.BUTTON_LEFT, MouseButtonLeft},
		{sdl.BUTTON_MIDDLE, MouseButtonMiddle},
		{sdl.BUTTON_RIGHT, MouseButtonRight},
		{sdl.BUTTON_X1, MouseButtonX1},
		{sdl.BUTTON_X2, MouseButtonX2},
	}
	for _, tt := range tests {
		if got := mouseButtonMask(tt.button); got != tt.want {
			t.Errorf("mouseButtonMask(%d) = %d, want %d", tt.button, got, tt.want)
		}
		if got := sdlMouseButton(tt.want); got != tt.button {
			t.Errorf("sdlMouseButton(%d) = %d, want %d", tt.want, got, tt.button)
		}
	}
}

func TestMouseWheelAndMove(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1})
	p.push(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2})
	p.push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: 3, YRel: -4})
	p.push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 12, Y: 21, XRel: 2, YRel: 1})
	in.Update()

	if in.MouseMoveWheel() != 3 {
		t.Errorf("expected wheel 3, got %d", in.MouseMoveWheel())
	}
	if in.MouseMove() != image.Pt(5, -3) {
		t.Errorf("expected move (5,-3), got %v", in.MouseMove())
	}
	if countEvents(in.Events(), EventMouseMove) != 2 {
		t.Errorf("expected 2 MouseMove events, got %v", eventTypes(in.Events()))
	}

	in.Update()
	if in.MouseMoveWheel() != 0 || in.MouseMove() != (image.Point{}) {
		t.Error("expected per-frame mouse state cleared")
	}
}

func TestRelativeMouseWhenHidden(t *testing.T) {
	p := newFakePlatform()
	p.mx, p.my = 100, 100
	in := New(p)
	in.Initialize()
	in.Update()

	if p.cursorShown {
		t.Error("expected cursor hidden after gaining focus")
	}
	center := image.Pt(512, 512)
	if p.mx != center.X || p.my != center.Y {
		t.Fatalf("expected mouse warped to center, got (%d,%d)", p.mx, p.my)
	}
	if countEvents(in.Events(), EventMouseMove) != 0 {
		t.Error("first move after gaining focus must be suppressed")
	}

	p.mx += 20
	in.Update()

	if in.MouseMove() != image.Pt(20, 0) {
		t.Errorf("expected relative move (20,0), got %v", in.MouseMove())
	}
	evs := in.Events()
	if len(evs) != 1 || evs[0].Type != EventMouseMove || evs[0].DX != 20 {
		t.Fatalf("expected one relative MouseMove, got %+v", evs)
	}
	if evs[0].X != 0 || evs[0].Y != 0 {
		t.Error("hidden cursor must not report an absolute position")
	}
	if p.mx != center.X {
		t.Error("expected mouse re-centered")
	}
}

func TestSetMouseVisible(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	in.SetMouseVisible(false)
	if in.MouseVisible() || p.cursorShown {
		t.Error("expected cursor hidden")
	}
	evs := in.Events()
	if evs[len(evs)-1].Type != EventMouseVisibleChanged || evs[len(evs)-1].Visible {
		t.Error("expected MouseVisibleChanged(false)")
	}

	in.SetTouchEmulation(true)
	in.SetMouseVisible(false)
	if !in.MouseVisible() {
		t.Error("touch emulation forces the cursor visible")
	}
}

func TestTouchLifecycle(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(finger(sdl.FINGERDOWN, 3, 256, 512))
	in.Update()

	if in.NumTouches() != 1 {
		t.Fatalf("expected 1 touch, got %d", in.NumTouches())
	}
	ts := in.TouchByID(3)
	if ts == nil || ts.Position != image.Pt(256, 512) {
		t.Fatalf("unexpected touch state %+v", ts)
	}

	p.push(finger(sdl.FINGERMOTION, 3, 512, 512))
	in.Update()
	ts = in.Touch(0)
	if ts.Delta != image.Pt(256, 0) || ts.LastPosition != image.Pt(256, 512) {
		t.Errorf("unexpected delta %v last %v", ts.Delta, ts.LastPosition)
	}

	// The release position is ignored in favor of the stored one.
	p.push(finger(sdl.FINGERUP, 3, 0, 0))
	in.Update()
	evs := in.Events()
	if len(evs) != 1 || evs[0].Type != EventTouchEnd || evs[0].X != 512 || evs[0].Y != 512 {
		t.Fatalf("expected TouchEnd at stored position, got %+v", evs)
	}
	if in.NumTouches() != 0 {
		t.Error("expected touch removed")
	}
}

func TestTouchRepressIsNewLifecycle(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(finger(sdl.FINGERDOWN, 7, 100, 100))
	p.push(finger(sdl.FINGERUP, 7, 100, 100))
	p.push(finger(sdl.FINGERDOWN, 7, 200, 200))
	p.push(finger(sdl.FINGERUP, 7, 200, 200))
	in.Update()

	want := []EventType{EventTouchBegin, EventTouchEnd, EventTouchBegin, EventTouchEnd}
	if got := eventTypes(in.Events()); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, e := range in.Events() {
		if e.TouchID != 7 {
			t.Errorf("expected touch id 7, got %d", e.TouchID)
		}
	}
	if in.Events()[3].X != 200 {
		t.Error("second lifecycle must not reuse the first touch position")
	}
}

func TestMouseSourcedTouchIgnored(t *testing.T) {
	for _, id := range []sdl.TouchID{touchMouseID, touchMouseIDLegacy} {
		p := newFakePlatform()
		in := focusedInput(t, p)

		for _, kind := range []uint32{sdl.FINGERDOWN, sdl.FINGERMOTION, sdl.FINGERUP} {
			ev := finger(kind, 0, 10, 10)
			ev.TouchID = id
			p.push(ev)
		}
		in.Update()

		if in.NumTouches() != 0 || len(in.Events()) != 0 {
			t.Errorf("touch id %d: expected mouse-sourced touch to be ignored", id)
		}
	}

	if isMouseTouch(1) || isMouseTouch(0) {
		t.Error("real touch devices must not be filtered")
	}
}

func TestTouchEmulation(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p, WithTouchEmulation(true))

	if !in.MouseVisible() {
		t.Error("touch emulation forces the cursor visible")
	}

	p.mx, p.my = 100, 50
	p.push(mouseButtonEvent(true, sdl.BUTTON_LEFT))
	in.Update()

	evs := in.Events()
	if len(evs) != 1 || evs[0].Type != EventTouchBegin || evs[0].TouchID != 0 {
		t.Fatalf("expected TouchBegin for finger 0, got %+v", evs)
	}
	if evs[0].X != 100 || evs[0].Y != 50 {
		t.Errorf("expected touch at mouse position, got (%d,%d)", evs[0].X, evs[0].Y)
	}
	if in.MouseButtonDown(MouseButtonLeft) {
		t.Error("emulated mouse buttons must not be reported as buttons")
	}

	p.push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 110, Y: 50, XRel: 10})
	in.Update()
	if got := eventTypes(in.Events()); !slices.Equal(got, []EventType{EventTouchMove}) {
		t.Fatalf("expected TouchMove, got %v", got)
	}
	if in.TouchByID(0).Delta != image.Pt(10, 0) {
		t.Errorf("unexpected delta %v", in.TouchByID(0).Delta)
	}

	in.SetTouchEmulation(false)
	if in.NumTouches() != 0 {
		t.Error("disabling emulation must end all touches")
	}
	if countEvents(in.Events(), EventTouchEnd) != 1 {
		t.Error("expected TouchEnd when emulation was disabled")
	}
}

func TestTouchEmulationMotionWithoutTouch(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p, WithTouchEmulation(true))

	p.push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 110, Y: 50, XRel: 10})
	p.push(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1})
	in.Update()

	if len(in.Events()) != 0 {
		t.Errorf("expected no events, got %v", eventTypes(in.Events()))
	}
}

func TestLoseFocusClearsState(t *testing.T) {
	p := newFakePlatform()
	p.devices = []JoystickInfo{{ID: 2, Name: "stick", NumButtons: 4, NumAxes: 2, NumHats: 1}}
	in := focusedInput(t, p)

	p.push(keyEvent(true, 'w', sdl.SCANCODE_W))
	p.push(mouseButtonEvent(true, sdl.BUTTON_RIGHT))
	p.push(finger(sdl.FINGERDOWN, 1, 10, 10))
	p.push(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 2, Button: 1})
	p.push(&sdl.JoyHatEvent{Type: sdl.JOYHATMOTION, Which: 2, Hat: 0, Value: HatUp})
	in.Update()

	j := in.Joystick(2)
	if !in.KeyDown('W') || !in.MouseButtonDown(MouseButtonRight) || in.NumTouches() != 1 || !j.ButtonDown(1) {
		t.Fatal("expected input held before losing focus")
	}

	p.flags = 0
	in.Update()

	if in.HasFocus() || in.Focus() != Unfocused {
		t.Error("expected focus lost")
	}
	if in.KeyDown('W') || in.MouseButtonDown(MouseButtonRight) || in.NumTouches() != 0 {
		t.Error("expected keys, buttons and touches cleared")
	}
	if j.ButtonDown(1) || j.HatPosition(0) != HatCenter {
		t.Error("expected joystick reset")
	}

	evs := in.Events()
	if countEvents(evs, EventMouseButtonUp) != 1 || countEvents(evs, EventTouchEnd) != 1 {
		t.Errorf("expected button up and touch end, got %v", eventTypes(evs))
	}
	last := evs[len(evs)-1]
	if last.Type != EventInputFocus || last.Focus {
		t.Errorf("expected InputFocus(false) last, got %+v", last)
	}
	if !p.cursorShown {
		t.Error("expected cursor shown after losing focus")
	}

	// Regaining focus
	p.flags = uint32(sdl.WINDOW_INPUT_FOCUS | sdl.WINDOW_MOUSE_FOCUS)
	in.Update()
	if !in.HasFocus() || in.Focus() != Focused {
		t.Error("expected focus regained")
	}
}

func TestWindowEvents(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MINIMIZED})
	in.Update()
	if !in.IsMinimized() || in.Focus() != Minimized {
		t.Error("expected minimized")
	}
	evs := in.Events()
	if len(evs) != 1 || evs[0].Type != EventInputFocus || !evs[0].Minimized {
		t.Fatalf("expected InputFocus(minimized), got %+v", evs)
	}

	p.push(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESTORED})
	p.push(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480})
	in.Update()
	if in.IsMinimized() {
		t.Error("expected restored")
	}
	evs = in.Events()
	if evs[1].Type != EventWindowResize || evs[1].Width != 640 || evs[1].Height != 480 {
		t.Errorf("expected resize to 640x480, got %+v", evs[1])
	}
}

func TestUnfocusedFullscreenIsMinimized(t *testing.T) {
	p := newFakePlatform()
	p.flags = 0
	p.fullscreen = true
	in := New(p)
	in.Initialize()
	in.Update()

	if !in.IsMinimized() {
		t.Error("unfocused fullscreen window counts as minimized")
	}
}

func TestQuit(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(&sdl.QuitEvent{Type: sdl.QUIT})
	if !in.Update() {
		t.Error("expected Update to report quit")
	}
	if in.Update() {
		t.Error("quit must only be reported for one frame")
	}
}

func TestJoystickOpenFailureSkipped(t *testing.T) {
	p := newFakePlatform()
	p.devices = []JoystickInfo{{ID: 1, NumButtons: 2}, {ID: 2, NumButtons: 2}}
	p.openErr[0] = errors.New("device busy")
	in := focusedInput(t, p)

	if in.NumJoysticks() != 1 || in.Joystick(2) == nil {
		t.Fatalf("expected only joystick 2 opened, got %d", in.NumJoysticks())
	}
}

func TestControllerPadding(t *testing.T) {
	p := newFakePlatform()
	p.devices = []JoystickInfo{{ID: 5, Name: "pad", NumButtons: 4, NumAxes: 2, NumHats: 1, Controller: true}}
	in := focusedInput(t, p)

	j := in.Joystick(5)
	if j.NumButtons() != int(sdl.CONTROLLER_BUTTON_MAX) || j.NumAxes() != int(sdl.CONTROLLER_AXIS_MAX) {
		t.Errorf("expected controller padding, got %d buttons %d axes", j.NumButtons(), j.NumAxes())
	}

	// Raw joystick events are skipped for controllers
	p.push(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 5, Button: 0})
	p.push(&sdl.JoyAxisEvent{Type: sdl.JOYAXISMOTION, Which: 5, Axis: 0, Value: 32767})
	in.Update()
	if j.ButtonDown(0) || j.AxisPosition(0) != 0 {
		t.Error("raw joystick events must be skipped for controllers")
	}

	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Which: 5, Button: 6})
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Which: 5, Axis: 4, Value: -32768})
	in.Update()
	if !j.ButtonDown(6) || !j.ButtonPressed(6) {
		t.Error("expected controller button 6 down")
	}
	if j.AxisPosition(4) != -1 {
		t.Errorf("expected axis clamped to -1, got %f", j.AxisPosition(4))
	}

	in.Update()
	if j.ButtonPressed(6) {
		t.Error("button press must clear next frame")
	}
}

func TestJoystickBounds(t *testing.T) {
	p := newFakePlatform()
	p.devices = []JoystickInfo{{ID: 3, NumButtons: 2, NumAxes: 1, NumHats: 1}}
	in := focusedInput(t, p)

	p.push(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 3, Button: 9})
	p.push(&sdl.JoyAxisEvent{Type: sdl.JOYAXISMOTION, Which: 3, Axis: 4, Value: 100})
	p.push(&sdl.JoyHatEvent{Type: sdl.JOYHATMOTION, Which: 3, Hat: 2, Value: HatLeft})
	p.push(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 99, Button: 0})
	in.Update()
	if len(in.Events()) != 0 {
		t.Errorf("expected out of range input ignored, got %v", eventTypes(in.Events()))
	}

	p.push(&sdl.JoyAxisEvent{Type: sdl.JOYAXISMOTION, Which: 3, Axis: 0, Value: 16384})
	in.Update()
	if got := in.Joystick(3).AxisPosition(0); math.Abs(float64(got)-0.5) > 0.001 {
		t.Errorf("expected axis near 0.5, got %f", got)
	}
}

func TestJoystickHotplug(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.devices = []JoystickInfo{{ID: 8, Name: "late", NumButtons: 1}}
	p.push(&sdl.JoyDeviceAddedEvent{Type: sdl.JOYDEVICEADDED, Which: 0})
	in.Update()

	evs := in.Events()
	if len(evs) != 1 || evs[0].Type != EventJoystickConnected || evs[0].JoystickID != 8 {
		t.Fatalf("expected JoystickConnected(8), got %+v", evs)
	}
	if in.JoystickByName("late") == nil || in.JoystickByIndex(0) == nil {
		t.Error("expected joystick lookup by name and index")
	}

	p.push(&sdl.JoyDeviceRemovedEvent{Type: sdl.JOYDEVICEREMOVED, Which: 8})
	in.Update()
	if got := eventTypes(in.Events()); !slices.Equal(got, []EventType{EventJoystickDisconnected}) {
		t.Fatalf("expected JoystickDisconnected, got %v", got)
	}
	if in.NumJoysticks() != 0 || !slices.Contains(p.closed, sdl.JoystickID(8)) {
		t.Error("expected joystick closed and forgotten")
	}
}

func TestMultiGestureDegrees(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	p.push(&sdl.MultiGestureEvent{Type: sdl.MULTIGESTURE, DTheta: math.Pi / 2, X: 0.5, Y: 0.25, NumFingers: 2})
	in.Update()

	e := in.Events()[0]
	if e.Type != EventMultiGesture || e.X != 512 || e.Y != 256 || e.NumFingers != 2 {
		t.Fatalf("unexpected gesture %+v", e)
	}
	if math.Abs(float64(e.DTheta)-90) > 0.01 {
		t.Errorf("expected 90 degrees, got %f", e.DTheta)
	}
}

func TestGesturesNeedTouchDevice(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)

	if in.RecordGesture() {
		t.Error("recording must fail without touch devices")
	}
	if _, err := in.LoadGestures("gestures.bin"); !errors.Is(err, ErrNoTouchDevice) {
		t.Errorf("expected ErrNoTouchDevice, got %v", err)
	}

	p.touchDevices = 1
	if !in.RecordGesture() {
		t.Error("expected recording to start")
	}
	if n, err := in.LoadGestures("gestures.bin"); err != nil || n != 2 {
		t.Errorf("expected 2 gestures loaded, got %d, %v", n, err)
	}
}
