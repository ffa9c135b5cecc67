package input

import (
	"image"
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

type fingerKind int

const (
	fingerDown fingerKind = iota
	fingerUp
	fingerMotion
)

// fingerEvent is a touch in window pixels, either from SDL or synthesized
// by touch emulation.
type fingerEvent struct {
	kind     fingerKind
	id       int
	x, y     int
	dx, dy   int
	pressure float32
}

func (in *Input) handleSDLEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.KeyboardEvent:
		key := convertKeyCode(e.Keysym.Sym, e.Keysym.Scancode)
		in.setKey(key, e.Keysym.Scancode, e.Type == sdl.KEYDOWN)

	case *sdl.TextInputEvent:
		if text := e.GetText(); text != "" {
			in.emit(Event{Type: EventTextInput, Text: text})
		}

	case *sdl.MouseButtonEvent:
		down := e.Type == sdl.MOUSEBUTTONDOWN
		if !in.touchEmulation {
			in.setMouseButton(mouseButtonMask(e.Button), down)
			return
		}
		x, y := in.platform.MouseState()
		fe := fingerEvent{kind: fingerUp, id: int(e.Button) - 1, x: x, y: y}
		if down {
			fe.kind = fingerDown
			fe.pressure = 1
		}
		in.pending = append(in.pending, fe)

	case *sdl.MouseMotionEvent:
		switch {
		case in.mouseVisible && !in.touchEmulation:
			in.mouseMove.X += int(e.XRel)
			in.mouseMove.Y += int(e.YRel)
			in.emit(Event{
				Type:       EventMouseMove,
				X:          int(e.X),
				Y:          int(e.Y),
				DX:         int(e.XRel),
				DY:         int(e.YRel),
				Buttons:    in.mouseButtonDown,
				Qualifiers: in.Qualifiers(),
			})
		case in.touchEmulation && in.touches[0] != nil:
			in.pending = append(in.pending, fingerEvent{
				kind:     fingerMotion,
				x:        int(e.X),
				y:        int(e.Y),
				dx:       int(e.XRel),
				dy:       int(e.YRel),
				pressure: 1,
			})
		}

	case *sdl.MouseWheelEvent:
		if !in.touchEmulation {
			in.setMouseWheel(int(e.Y))
		}

	case *sdl.TouchFingerEvent:
		if isMouseTouch(e.TouchID) {
			return
		}
		w, h := in.platform.WindowSize()
		fe := fingerEvent{
			id:       int(int64(e.FingerID) & 0x7ffffff),
			x:        int(e.X * float32(w)),
			y:        int(e.Y * float32(h)),
			dx:       int(e.DX * float32(w)),
			dy:       int(e.DY * float32(h)),
			pressure: e.Pressure,
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			fe.kind = fingerDown
		case sdl.FINGERUP:
			fe.kind = fingerUp
		default:
			fe.kind = fingerMotion
		}
		in.handleFinger(fe)

	case *sdl.DollarGestureEvent:
		if e.Type == sdl.DOLLARRECORD {
			in.emit(Event{Type: EventGestureRecorded, GestureID: int64(e.GestureID)})
			return
		}
		w, h := in.platform.WindowSize()
		in.emit(Event{
			Type:       EventGestureInput,
			GestureID:  int64(e.GestureID),
			X:          int(e.X * float32(w)),
			Y:          int(e.Y * float32(h)),
			NumFingers: int(e.NumFingers),
			Error:      e.Error,
		})

	case *sdl.MultiGestureEvent:
		w, h := in.platform.WindowSize()
		in.emit(Event{
			Type:       EventMultiGesture,
			X:          int(e.X * float32(w)),
			Y:          int(e.Y * float32(h)),
			NumFingers: int(e.NumFingers),
			DTheta:     e.DTheta * (180 / math.Pi),
			DDist:      e.DDist,
		})

	case *sdl.JoyDeviceAddedEvent:
		if id, ok := in.openJoystick(int(e.Which)); ok {
			in.emit(Event{Type: EventJoystickConnected, JoystickID: id})
		}

	case *sdl.JoyDeviceRemovedEvent:
		id := sdl.JoystickID(e.Which)
		if j, ok := in.joysticks[id]; ok && j.screen == nil {
			in.platform.CloseJoystick(id)
			delete(in.joysticks, id)
			in.emit(Event{Type: EventJoystickDisconnected, JoystickID: id})
		}

	case *sdl.JoyButtonEvent:
		id := sdl.JoystickID(e.Which)
		if j, ok := in.joysticks[id]; ok && !j.Controller {
			in.joyButton(id, int(e.Button), e.Type == sdl.JOYBUTTONDOWN)
		}

	case *sdl.JoyAxisEvent:
		id := sdl.JoystickID(e.Which)
		if j, ok := in.joysticks[id]; ok && !j.Controller {
			in.joyAxis(id, int(e.Axis), int(e.Value))
		}

	case *sdl.JoyHatEvent:
		in.joyHat(sdl.JoystickID(e.Which), int(e.Hat), e.Value)

	case *sdl.ControllerButtonEvent:
		in.joyButton(sdl.JoystickID(e.Which), int(e.Button), e.Type == sdl.CONTROLLERBUTTONDOWN)

	case *sdl.ControllerAxisEvent:
		in.joyAxis(sdl.JoystickID(e.Which), int(e.Axis), int(e.Value))

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_MINIMIZED:
			in.minimized = true
			in.emitFocus()
		case sdl.WINDOWEVENT_MAXIMIZED, sdl.WINDOWEVENT_RESTORED:
			in.minimized = false
			in.emitFocus()
		case sdl.WINDOWEVENT_RESIZED:
			in.emit(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
		}

	case *sdl.DropEvent:
		if e.Type == sdl.DROPFILE {
			in.emit(Event{Type: EventDropFile, File: e.File})
		}

	case *sdl.QuitEvent:
		in.quit = true
		in.emit(Event{Type: EventQuit})
	}
}

// setKey records a key transition. Presses are dropped while the window is
// unfocused and releases of keys that are not down are dropped.
func (in *Input) setKey(key sdl.Keycode, scancode sdl.Scancode, down bool) {
	if down && !in.inputFocus && !in.platform.ExternalWindow() {
		return
	}

	repeat := false
	if down {
		in.scancodeDown[scancode] = true
		in.scancodePress[scancode] = true

		if !in.keyDown[key] {
			in.keyDown[key] = true
			in.keyPress[key] = true
		} else {
			repeat = true
		}
	} else {
		delete(in.scancodeDown, scancode)
		if !in.keyDown[key] {
			return
		}
		delete(in.keyDown, key)
	}

	t := EventKeyUp
	if down {
		t = EventKeyDown
	}
	in.emit(Event{
		Type:       t,
		Key:        key,
		Scancode:   scancode,
		Repeat:     repeat,
		Buttons:    in.mouseButtonDown,
		Qualifiers: in.Qualifiers(),
	})

	if down && !repeat && in.toggleFullscreen && in.QualifierDown(QualAlt) &&
		(key == sdl.K_RETURN || key == sdl.K_RETURN2 || key == sdl.K_KP_ENTER) {
		in.platform.ToggleFullscreen()
		in.ScreenModeChanged()
	}
}

func (in *Input) setMouseButton(button MouseButton, down bool) {
	if down {
		if !in.inputFocus && !in.platform.ExternalWindow() {
			return
		}
		if in.mouseButtonDown&button == 0 {
			in.mouseButtonPress |= button
		}
		in.mouseButtonDown |= button
	} else {
		if in.mouseButtonDown&button == 0 {
			return
		}
		in.mouseButtonDown &^= button
	}

	t := EventMouseButtonUp
	if down {
		t = EventMouseButtonDown
	}
	in.emit(Event{
		Type:       t,
		Button:     button,
		Buttons:    in.mouseButtonDown,
		Qualifiers: in.Qualifiers(),
	})
}

func (in *Input) setMouseWheel(delta int) {
	if !in.inputFocus && !in.platform.ExternalWindow() {
		return
	}
	if delta == 0 {
		return
	}
	in.mouseMoveWheel += delta
	in.emit(Event{
		Type:       EventMouseWheel,
		Wheel:      delta,
		Buttons:    in.mouseButtonDown,
		Qualifiers: in.Qualifiers(),
	})
}

func (in *Input) handleFinger(fe fingerEvent) {
	pos := image.Point{X: fe.x, Y: fe.y}

	switch fe.kind {
	case fingerDown:
		t := &TouchState{
			ID:           fe.id,
			Position:     pos,
			LastPosition: pos,
			Pressure:     fe.pressure,
		}
		in.touches[fe.id] = t
		in.emit(Event{
			Type:     EventTouchBegin,
			TouchID:  fe.id,
			X:        pos.X,
			Y:        pos.Y,
			Pressure: fe.pressure,
		})
		in.screenJoystickTouch(EventTouchBegin, t)

	case fingerUp:
		t, ok := in.touches[fe.id]
		if !ok {
			return
		}
		// The release position is unreliable; report the last stored one.
		in.emit(Event{
			Type:    EventTouchEnd,
			TouchID: fe.id,
			X:       t.Position.X,
			Y:       t.Position.Y,
		})
		in.screenJoystickTouch(EventTouchEnd, t)
		delete(in.touches, fe.id)

	case fingerMotion:
		t, ok := in.touches[fe.id]
		if !ok {
			if in.touchEmulation {
				return
			}
			t = &TouchState{ID: fe.id}
			in.touches[fe.id] = t
		}
		t.Position = pos
		t.Delta = pos.Sub(t.LastPosition)
		t.Pressure = fe.pressure
		in.emit(Event{
			Type:     EventTouchMove,
			TouchID:  fe.id,
			X:        pos.X,
			Y:        pos.Y,
			DX:       fe.dx,
			DY:       fe.dy,
			Pressure: fe.pressure,
		})
		in.screenJoystickTouch(EventTouchMove, t)
	}
}
