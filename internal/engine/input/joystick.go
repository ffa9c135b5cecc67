package input

import (
	"sort"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/logger"
	"github.com/Faultbox/terra/pkg/math"
)

// JoystickState holds the buttons, axes and hats of one joystick.
// Screen joysticks use the same state with a layout attached.
type JoystickState struct {
	ID          sdl.JoystickID
	Name        string
	Controller  bool
	Buttons     []bool
	ButtonPress []bool
	Axes        []float32
	Hats        []uint8

	screen *ScreenJoystick
}

func newJoystickState(id sdl.JoystickID, name string, buttons, axes, hats int) *JoystickState {
	j := &JoystickState{
		ID:          id,
		Name:        name,
		Buttons:     make([]bool, buttons),
		ButtonPress: make([]bool, buttons),
		Axes:        make([]float32, axes),
		Hats:        make([]uint8, hats),
	}
	j.reset()
	return j
}

func (j *JoystickState) reset() {
	clear(j.Buttons)
	clear(j.ButtonPress)
	clear(j.Axes)
	for i := range j.Hats {
		j.Hats[i] = HatCenter
	}
}

func (j *JoystickState) NumButtons() int { return len(j.Buttons) }
func (j *JoystickState) NumAxes() int { return len(j.Axes) }
func (j *JoystickState) NumHats() int { return len(j.Hats) }

// ButtonDown reports whether button i is held. Out of range is false.
func (j *JoystickState) ButtonDown(i int) bool {
	return i >= 0 && i < len(j.Buttons) && j.Buttons[i]
}

// ButtonPressed reports whether button i went down this frame.
func (j *JoystickState) ButtonPressed(i int) bool {
	return i >= 0 && i < len(j.ButtonPress) && j.ButtonPress[i]
}

// AxisPosition returns axis i in [-1, 1], or 0 when out of range.
func (j *JoystickState) AxisPosition(i int) float32 {
	if i < 0 || i >= len(j.Axes) {
		return 0
	}
	return j.Axes[i]
}

// HatPosition returns hat i, or HatCenter when out of range.
func (j *JoystickState) HatPosition(i int) uint8 {
	if i < 0 || i >= len(j.Hats) {
		return HatCenter
	}
	return j.Hats[i]
}

// Screen returns the screen joystick layout, or nil for a hardware device.
func (j *JoystickState) Screen() *ScreenJoystick { return j.screen }

// openJoystick opens device index. Failures are logged and skipped.
func (in *Input) openJoystick(index int) (sdl.JoystickID, bool) {
	info, err := in.platform.OpenJoystick(index)
	if err != nil {
		logger.Error("cannot open joystick", zap.Int("index", index), zap.Error(err))
		return 0, false
	}

	buttons, axes := info.NumButtons, info.NumAxes
	if info.Controller {
		// Controller events use the standard layout whatever the device reports.
		buttons = max(buttons, int(sdl.CONTROLLER_BUTTON_MAX))
		axes = max(axes, int(sdl.CONTROLLER_AXIS_MAX))
	}

	j := newJoystickState(info.ID, info.Name, buttons, axes, info.NumHats)
	j.Controller = info.Controller
	in.joysticks[info.ID] = j

	logger.Debug("opened joystick",
		zap.Int32("id", int32(info.ID)),
		zap.String("name", info.Name),
		zap.Bool("controller", info.Controller),
		zap.Int("buttons", buttons),
		zap.Int("axes", axes),
		zap.Int("hats", info.NumHats),
	)
	return info.ID, true
}

func (in *Input) joyButton(id sdl.JoystickID, button int, down bool) {
	j, ok := in.joysticks[id]
	if !ok || button < 0 || button >= len(j.Buttons) {
		return
	}

	t := EventJoystickButtonUp
	if down {
		t = EventJoystickButtonDown
		if !j.Buttons[button] {
			j.ButtonPress[button] = true
		}
	}
	j.Buttons[button] = down
	in.emit(Event{Type: t, JoystickID: id, JoyButton: button})
}

func (in *Input) joyAxis(id sdl.JoystickID, axis, value int) {
	j, ok := in.joysticks[id]
	if !ok || axis < 0 || axis >= len(j.Axes) {
		return
	}

	pos := math.Clamp(float32(value)/32767, -1, 1)
	j.Axes[axis] = pos
	in.emit(Event{Type: EventJoystickAxisMove, JoystickID: id, Axis: axis, Position: pos})
}

func (in *Input) joyHat(id sdl.JoystickID, hat int, value uint8) {
	j, ok := in.joysticks[id]
	if !ok || hat < 0 || hat >= len(j.Hats) {
		return
	}

	j.Hats[hat] = value
	in.emit(Event{Type: EventJoystickHatMove, JoystickID: id, Hat: hat, HatPosition: value})
}

// NumJoysticks returns the number of open joysticks, screen joysticks included.
func (in *Input) NumJoysticks() int { return len(in.joysticks) }

// Joystick returns the joystick with the given id, or nil.
func (in *Input) Joystick(id sdl.JoystickID) *JoystickState { return in.joysticks[id] }

// JoystickByIndex returns the joystick at index ordered by id, or nil.
func (in *Input) JoystickByIndex(index int) *JoystickState {
	js := in.sortedJoysticks()
	if index < 0 || index >= len(js) {
		return nil
	}
	return js[index]
}

// JoystickByName returns the first joystick with the given name, or nil.
func (in *Input) JoystickByName(name string) *JoystickState {
	for _, j := range in.sortedJoysticks() {
		if j.Name == name {
			return j
		}
	}
	return nil
}

func (in *Input) sortedJoysticks() []*JoystickState {
	js := make([]*JoystickState, 0, len(in.joysticks))
	for _, j := range in.joysticks {
		js = append(js, j)
	}
	sort.Slice(js, func(a, b int) bool { return js[a].ID < js[b].ID })
	return js
}
