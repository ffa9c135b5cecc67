package input

import (
	"image"
	"slices"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/terra/internal/logger"
)

const testLayout = `
name: TestPad
elements:
  - name: Hat0
    width: 128
    height: 128
    key_binding: WSAD
  - name: Hat1
    x: 256
    width: 128
    height: 128
  - name: Button0
    x: -128
    width: 128
    height: 128
    h_align: right
  - name: Button1
    x: -128
    y: 256
    width: 128
    height: 128
    h_align: right
    key_binding: SPACE
  - name: Button2
    x: -128
    y: 512
    width: 128
    height: 128
    h_align: right
    mouse_button_binding: RIGHT
`

func addTestPad(t *testing.T, in *Input) sdl.JoystickID {
	t.Helper()
	l, err := ParseLayout([]byte(testLayout))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	id, err := in.AddScreenJoystick(l)
	if err != nil {
		t.Fatalf("AddScreenJoystick: %v", err)
	}
	return id
}

func TestScreenJoystickCounts(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)
	id := addTestPad(t, in)

	if id != screenJoystickStartID {
		t.Errorf("expected first screen joystick id %#x, got %#x", screenJoystickStartID, id)
	}
	j := in.Joystick(id)
	if j.Name != "TestPad" || j.NumButtons() != 3 || j.NumHats() != 2 || j.NumAxes() != 0 {
		t.Errorf("unexpected joystick %q: %d buttons %d hats %d axes", j.Name, j.NumButtons(), j.NumHats(), j.NumAxes())
	}
	if j.Screen() == nil || !in.IsScreenJoystickVisible(id) {
		t.Error("expected a visible screen joystick")
	}

	id2 := addTestPad(t, in)
	if id2 != screenJoystickStartID+1 {
		t.Errorf("expected next free id, got %#x", id2)
	}
	if len(in.ScreenJoysticks()) != 2 {
		t.Errorf("expected 2 screen joysticks, got %d", len(in.ScreenJoysticks()))
	}
}

func TestRemoveScreenJoystick(t *testing.T) {
	p := newFakePlatform()
	p.devices = []JoystickInfo{{ID: 4, NumButtons: 1}}
	in := focusedInput(t, p)
	id := addTestPad(t, in)

	if err := in.RemoveScreenJoystick(4); err == nil {
		t.Error("expected error removing a hardware joystick")
	}
	if err := in.RemoveScreenJoystick(id); err != nil {
		t.Fatalf("RemoveScreenJoystick: %v", err)
	}
	if err := in.RemoveScreenJoystick(id); err == nil {
		t.Error("expected error removing a missing joystick")
	}
	if in.Joystick(id) != nil || in.Joystick(4) == nil {
		t.Error("expected only the screen joystick removed")
	}
}

func TestScreenJoystickHatKeys(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)
	addTestPad(t, in)

	// Above the hat center (64, 64)
	p.push(finger(sdl.FINGERDOWN, 1, 64, 16))
	in.Update()
	if !in.KeyDown('W') {
		t.Fatalf("expected W down, got %v", eventTypes(in.Events()))
	}

	// Dragging into the left quadrant releases W before pressing A.
	p.push(finger(sdl.FINGERMOTION, 1, 16, 64))
	in.Update()

	var keys []string
	for _, e := range in.Events() {
		switch e.Type {
		case EventKeyDown:
			keys = append(keys, "down "+string(rune(e.Key)))
		case EventKeyUp:
			keys = append(keys, "up "+string(rune(e.Key)))
		}
	}
	if want := []string{"up W", "down A"}; !slices.Equal(keys, want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	if in.KeyDown('W') || !in.KeyDown('A') {
		t.Error("expected only A held")
	}

	// Moving within the same quadrant repeats the key.
	p.push(finger(sdl.FINGERMOTION, 1, 8, 64))
	in.Update()
	if evs := in.Events(); countEvents(evs, EventKeyUp) != 0 || !evs[len(evs)-1].Repeat {
		t.Errorf("expected a repeat without release, got %+v", evs)
	}

	p.push(finger(sdl.FINGERUP, 1, 8, 64))
	in.Update()
	if in.KeyDown('A') {
		t.Error("touch end must release the last key")
	}
	if countEvents(in.Events(), EventKeyUp) != 1 {
		t.Errorf("expected one KeyUp, got %v", eventTypes(in.Events()))
	}
}

func TestScreenJoystickHatMotion(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)
	id := addTestPad(t, in)

	// Right of Hat1 center (320, 64)
	p.push(finger(sdl.FINGERDOWN, 2, 368, 64))
	in.Update()
	j := in.Joystick(id)
	if j.HatPosition(1) != HatRight {
		t.Errorf("expected hat right, got %d", j.HatPosition(1))
	}

	p.push(finger(sdl.FINGERUP, 2, 368, 64))
	in.Update()
	if j.HatPosition(1) != HatCenter {
		t.Errorf("expected hat centered on release, got %d", j.HatPosition(1))
	}
}

func TestRemoveScreenJoystickReleasesHeldInput(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)
	id := addTestPad(t, in)

	p.push(finger(sdl.FINGERDOWN, 1, 64, 16))   // Hat0 up: W
	p.push(finger(sdl.FINGERDOWN, 2, 960, 320)) // Button1: space
	p.push(finger(sdl.FINGERDOWN, 3, 960, 576)) // Button2: right mouse button
	in.Update()
	if !in.KeyDown('W') || !in.KeyDown(sdl.K_SPACE) || !in.MouseButtonDown(MouseButtonRight) {
		t.Fatalf("expected W, space and the right button held, got %v", eventTypes(in.Events()))
	}
	in.Update()

	if err := in.RemoveScreenJoystick(id); err != nil {
		t.Fatalf("RemoveScreenJoystick: %v", err)
	}
	if in.KeyDown('W') || in.KeyDown(sdl.K_SPACE) || in.MouseButtonDown(MouseButtonRight) {
		t.Error("removing the joystick must release its keys and buttons")
	}
	evs := in.Events()
	if countEvents(evs, EventKeyUp) != 2 || countEvents(evs, EventMouseButtonUp) != 1 {
		t.Errorf("expected two KeyUp and one MouseButtonUp, got %v", eventTypes(evs))
	}
	for _, tid := range []int{1, 2, 3} {
		if tc := in.TouchByID(tid); tc == nil || tc.Element() != nil {
			t.Errorf("touch %d must stay down without an element", tid)
		}
	}

	// Lifting the fingers afterwards has nothing left to release.
	p.push(finger(sdl.FINGERUP, 1, 64, 16))
	p.push(finger(sdl.FINGERUP, 2, 960, 320))
	in.Update()
	if n := countEvents(in.Events(), EventKeyUp); n != 0 {
		t.Errorf("expected no further KeyUp, got %d", n)
	}
}

func TestScreenJoystickButtons(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)
	id := addTestPad(t, in)
	j := in.Joystick(id)

	// Button0 has no binding and drives joystick button 0.
	p.push(finger(sdl.FINGERDOWN, 1, 960, 64))
	in.Update()
	if !j.ButtonDown(0) || !j.ButtonPressed(0) {
		t.Error("expected joystick button 0 down")
	}
	p.push(finger(sdl.FINGERMOTION, 1, 970, 64))
	in.Update()
	if countEvents(in.Events(), EventJoystickButtonDown) != 0 {
		t.Error("button moves must be ignored")
	}
	p.push(finger(sdl.FINGERUP, 1, 970, 64))
	in.Update()
	if j.ButtonDown(0) {
		t.Error("expected joystick button 0 released")
	}

	// Button1 is bound to space.
	p.push(finger(sdl.FINGERDOWN, 2, 960, 320))
	in.Update()
	if !in.KeyDown(sdl.K_SPACE) {
		t.Error("expected space down")
	}
	p.push(finger(sdl.FINGERUP, 2, 960, 320))
	in.Update()
	if in.KeyDown(sdl.K_SPACE) {
		t.Error("expected space released")
	}

	// Button2 is bound to the right mouse button, also under touch emulation.
	in.SetTouchEmulation(true)
	p.push(finger(sdl.FINGERDOWN, 3, 960, 576))
	in.Update()
	if !in.MouseButtonDown(MouseButtonRight) {
		t.Error("expected right mouse button down")
	}
	if !in.TouchEmulation() {
		t.Error("touch emulation must be restored after the mouse event")
	}
	p.push(finger(sdl.FINGERUP, 3, 960, 576))
	in.Update()
	if in.MouseButtonDown(MouseButtonRight) {
		t.Error("expected right mouse button released")
	}
}

func TestHiddenScreenJoystickIgnoresTouches(t *testing.T) {
	p := newFakePlatform()
	in := focusedInput(t, p)
	id := addTestPad(t, in)
	in.SetScreenJoystickVisible(id, false)

	p.push(finger(sdl.FINGERDOWN, 1, 64, 16))
	in.Update()
	if in.KeyDown('W') {
		t.Error("hidden screen joystick must not react")
	}
	if in.NumTouches() != 1 {
		t.Error("the touch itself is still tracked")
	}
}

func TestHatDirection(t *testing.T) {
	tests := []struct {
		rel  image.Point
		want uint8
		quad int
	}{
		{image.Pt(0, -10), HatUp, 0},
		{image.Pt(0, 10), HatDown, 1},
		{image.Pt(-10, 0), HatLeft, 2},
		{image.Pt(10, 0), HatRight, 3},
		{image.Pt(6, -10), HatUp, 0},
		{image.Pt(10, -10), HatCenter, -1},
		{image.Pt(0, 0), HatCenter, -1},
	}
	for _, tt := range tests {
		if got := hatDirection(tt.rel); got != tt.want {
			t.Errorf("hatDirection(%v) = %d, want %d", tt.rel, got, tt.want)
		}
		if got := hatQuadrant(tt.rel); got != tt.quad {
			t.Errorf("hatQuadrant(%v) = %d, want %d", tt.rel, got, tt.quad)
		}
	}
}

func TestParseHatBinding(t *testing.T) {
	tests := []struct {
		in   string
		want []sdl.Keycode
		ok   bool
	}{
		{"WSAD", []sdl.Keycode{'W', 'S', 'A', 'D'}, true},
		{"UP DOWN LEFT RIGHT", []sdl.Keycode{sdl.K_UP, sdl.K_DOWN, sdl.K_LEFT, sdl.K_RIGHT}, true},
		{"I K J L", []sdl.Keycode{'I', 'K', 'J', 'L'}, true},
		{"UP DOWN", nil, false},
		{"UP DOWN LEFT NOPE", nil, false},
		{"ABC", nil, false},
	}
	for _, tt := range tests {
		got, ok := parseHatBinding(tt.in)
		if ok != tt.ok || !slices.Equal(got, tt.want) {
			t.Errorf("parseHatBinding(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestInvalidBindings(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	defer logger.Replace(zap.New(core))()
	sj := &ScreenJoystick{}

	hat := newElement(ElementLayout{Name: "Hat0", KeyBinding: "XY"}, sj)
	if !slices.Equal(hat.Keys, []sdl.Keycode{'W', 'S', 'A', 'D'}) {
		t.Errorf("expected WSAD fallback, got %v", hat.Keys)
	}
	hatLogs := logs.FilterMessage("invalid hat key binding, fallback to WSAD").All()
	if len(hatLogs) != 1 {
		t.Fatalf("expected one fallback log, got %d", len(hatLogs))
	}
	if f := hatLogs[0].ContextMap(); f["element"] != "Hat0" || f["binding"] != "XY" {
		t.Errorf("fallback log fields = %v", f)
	}

	btn := newElement(ElementLayout{Name: "Button3", KeyBinding: "NOPE", MouseButtonBinding: "X9"}, sj)
	if btn.Index != 3 || len(btn.Keys) != 0 || btn.MouseButton != 0 {
		t.Errorf("expected unbound button 3, got %+v", btn)
	}

	axis := newElement(ElementLayout{Name: "Axis1"}, sj)
	if axis.Kind != ElementAxis || axis.Index != 1 {
		t.Errorf("expected axis 1, got %+v", axis)
	}
}

func TestElementRect(t *testing.T) {
	e := &Element{layout: ElementLayout{X: -10, Y: -20, Width: 100, Height: 50, HAlign: "right", VAlign: "bottom"}}
	if got, want := e.Rect(800, 600), image.Rect(690, 530, 790, 580); got != want {
		t.Errorf("Rect = %v, want %v", got, want)
	}
	e.layout.HAlign, e.layout.VAlign = "center", "center"
	if got, want := e.Rect(800, 600), image.Rect(340, 255, 440, 305); got != want {
		t.Errorf("Rect = %v, want %v", got, want)
	}
}

func TestParseLayoutErrors(t *testing.T) {
	if _, err := ParseLayout([]byte("elements:\n  - width: 10\n    height: 10\n")); err == nil {
		t.Error("expected error for unnamed element")
	}
	if _, err := ParseLayout([]byte("elements:\n  - name: Button0\n")); err == nil {
		t.Error("expected error for empty element")
	}
	if _, err := ParseLayout([]byte("elements: [")); err == nil {
		t.Error("expected YAML error")
	}
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	var buttons, hats int
	for _, e := range l.Elements {
		switch {
		case e.Name == "Hat0":
			hats++
		case len(e.Name) > 6 && e.Name[:6] == "Button":
			buttons++
		}
	}
	if buttons != 3 || hats != 1 {
		t.Errorf("expected 3 buttons and 1 hat, got %d and %d", buttons, hats)
	}
}
