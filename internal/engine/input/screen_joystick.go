package input

import (
	_ "embed"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terra/internal/logger"
)

// screenJoystickStartID is the first id given to screen joysticks, above the
// range SDL uses for devices.
const screenJoystickStartID sdl.JoystickID = 0x40000000

//go:embed layouts/screen_joystick.yaml
var defaultLayoutYAML []byte

// Layout describes a screen joystick overlay. Element names decide their role:
// Button<n>, Axis<n> or Hat<n>.
type Layout struct {
	Name     string          `yaml:"name"`
	Elements []ElementLayout `yaml:"elements"`
}

// ElementLayout places one element relative to a screen edge.
type ElementLayout struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// HAlign is left, center or right; VAlign is top, center or bottom.
	HAlign string `yaml:"h_align"`
	VAlign string `yaml:"v_align"`

	// KeyBinding is one key for a button, four keys (up down left right) for a hat.
	KeyBinding         string `yaml:"key_binding"`
	MouseButtonBinding string `yaml:"mouse_button_binding"`
}

// ParseLayout decodes a YAML screen joystick layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing screen joystick layout: %w", err)
	}
	for i, e := range l.Elements {
		if e.Name == "" {
			return nil, fmt.Errorf("screen joystick element %d has no name", i)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("screen joystick element %s has empty size", e.Name)
		}
	}
	return &l, nil
}

// LoadLayout reads a YAML screen joystick layout from disk.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLayout(data)
}

// DefaultLayout returns the built-in layout: a WSAD hat and three buttons.
func DefaultLayout() *Layout {
	l, err := ParseLayout(defaultLayoutYAML)
	if err != nil {
		panic(err)
	}
	return l
}

// ElementKind is the role of a screen joystick element.
type ElementKind int

const (
	ElementOther ElementKind = iota
	ElementButton
	ElementAxis
	ElementHat
)

func (k ElementKind) String() string {
	switch k {
	case ElementButton:
		return "button"
	case ElementAxis:
		return "axis"
	case ElementHat:
		return "hat"
	}
	return "other"
}

// Element is a touchable region of a screen joystick.
type Element struct {
	Name  string
	Kind  ElementKind
	Index int // from the name suffix

	// Keys holds one key for a button or up, down, left, right for a hat.
	Keys        []sdl.Keycode
	MouseButton MouseButton

	layout  ElementLayout
	owner   *ScreenJoystick
	lastKey sdl.Keycode
}

// Rect returns the element rectangle on a screen of the given size.
func (e *Element) Rect(screenW, screenH int) image.Rectangle {
	l := e.layout
	x := l.X
	switch l.HAlign {
	case "center":
		x += (screenW - l.Width) / 2
	case "right":
		x += screenW - l.Width
	}
	y := l.Y
	switch l.VAlign {
	case "center":
		y += (screenH - l.Height) / 2
	case "bottom":
		y += screenH - l.Height
	}
	return image.Rect(x, y, x+l.Width, y+l.Height)
}

// Joystick returns the screen joystick the element belongs to.
func (e *Element) Joystick() *ScreenJoystick { return e.owner }

// ScreenJoystick is a touch overlay that feeds a virtual joystick.
type ScreenJoystick struct {
	ID       sdl.JoystickID
	Name     string
	Visible  bool
	Elements []*Element
}

// elementAt returns the topmost element containing p.
func (s *ScreenJoystick) elementAt(p image.Point, screenW, screenH int) *Element {
	for i := len(s.Elements) - 1; i >= 0; i-- {
		e := s.Elements[i]
		if p.In(e.Rect(screenW, screenH)) {
			return e
		}
	}
	return nil
}

func newElement(l ElementLayout, owner *ScreenJoystick) *Element {
	e := &Element{Name: l.Name, layout: l, owner: owner}

	switch {
	case strings.HasPrefix(l.Name, "Button"):
		e.Kind = ElementButton
		e.Index = nameIndex(l.Name, "Button")

		if l.KeyBinding != "" {
			if k, ok := parseKeyBinding(l.KeyBinding); ok {
				e.Keys = []sdl.Keycode{k}
			} else {
				logger.Error("unsupported key binding", zap.String("binding", l.KeyBinding))
			}
		}
		if l.MouseButtonBinding != "" {
			if b, ok := mouseButtonBindings[l.MouseButtonBinding]; ok {
				e.MouseButton = b
			} else {
				logger.Error("unsupported mouse button binding", zap.String("binding", l.MouseButtonBinding))
			}
		}

	case strings.HasPrefix(l.Name, "Axis"):
		e.Kind = ElementAxis
		e.Index = nameIndex(l.Name, "Axis")
		logger.Warn("axis emulation for screen joystick is not fully supported yet", zap.String("element", l.Name))

	case strings.HasPrefix(l.Name, "Hat"):
		e.Kind = ElementHat
		e.Index = nameIndex(l.Name, "Hat")

		if l.KeyBinding != "" {
			keys, ok := parseHatBinding(l.KeyBinding)
			if !ok {
				logger.Error("invalid hat key binding, fallback to WSAD",
					zap.String("element", l.Name),
					zap.String("binding", l.KeyBinding),
				)
				keys = []sdl.Keycode{'W', 'S', 'A', 'D'}
			}
			e.Keys = keys
		}
	}
	return e
}

// nameIndex parses the number after prefix. A missing or bad number is 0.
func nameIndex(name, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseHatBinding accepts four space separated keys ("UP DOWN LEFT RIGHT")
// or exactly four characters ("WSAD").
func parseHatBinding(s string) ([]sdl.Keycode, bool) {
	if strings.Contains(s, " ") {
		parts := strings.Split(s, " ")
		if len(parts) != 4 {
			return nil, false
		}
		keys := make([]sdl.Keycode, 0, 4)
		for _, p := range parts {
			k, ok := parseKeyBinding(p)
			if !ok {
				return nil, false
			}
			keys = append(keys, k)
		}
		return keys, true
	}

	if len(s) != 4 {
		return nil, false
	}
	keys := make([]sdl.Keycode, 4)
	for i := 0; i < 4; i++ {
		keys[i] = sdl.Keycode(s[i])
	}
	return keys, true
}

// AddScreenJoystick adds a touch overlay joystick. A nil layout uses DefaultLayout.
func (in *Input) AddScreenJoystick(layout *Layout) (sdl.JoystickID, error) {
	if layout == nil {
		layout = DefaultLayout()
	}

	id := screenJoystickStartID
	for in.joysticks[id] != nil {
		id++
	}

	sj := &ScreenJoystick{ID: id, Name: layout.Name, Visible: true}
	var buttons, axes, hats int
	for _, l := range layout.Elements {
		e := newElement(l, sj)
		switch e.Kind {
		case ElementButton:
			buttons++
		case ElementAxis:
			axes++
		case ElementHat:
			hats++
		}
		sj.Elements = append(sj.Elements, e)
	}

	j := newJoystickState(id, layout.Name, buttons, axes, hats)
	j.screen = sj
	in.joysticks[id] = j

	logger.Debug("added screen joystick",
		zap.Int32("id", int32(id)),
		zap.String("name", layout.Name),
		zap.Int("buttons", buttons),
		zap.Int("axes", axes),
		zap.Int("hats", hats),
	)
	return id, nil
}

// RemoveScreenJoystick removes a screen joystick added by AddScreenJoystick.
func (in *Input) RemoveScreenJoystick(id sdl.JoystickID) error {
	j, ok := in.joysticks[id]
	if !ok {
		return fmt.Errorf("remove screen joystick: no joystick with id %d", id)
	}
	if j.screen == nil {
		return fmt.Errorf("remove screen joystick: joystick %d is not a screen joystick", id)
	}

	// Ending the touches releases the keys and buttons they hold.
	for _, t := range in.touches {
		if t.element != nil && t.element.owner == j.screen {
			in.screenJoystickTouch(EventTouchEnd, t)
		}
	}
	delete(in.joysticks, id)
	return nil
}

// SetScreenJoystickVisible shows or hides a screen joystick. Hidden ones ignore touches.
func (in *Input) SetScreenJoystickVisible(id sdl.JoystickID, visible bool) {
	if j, ok := in.joysticks[id]; ok && j.screen != nil {
		j.screen.Visible = visible
	}
}

// IsScreenJoystickVisible reports whether a screen joystick is shown.
func (in *Input) IsScreenJoystickVisible(id sdl.JoystickID) bool {
	j, ok := in.joysticks[id]
	return ok && j.screen != nil && j.screen.Visible
}

// ScreenJoysticks returns the screen joysticks in id order.
func (in *Input) ScreenJoysticks() []*ScreenJoystick {
	var out []*ScreenJoystick
	for _, j := range in.sortedJoysticks() {
		if j.screen != nil {
			out = append(out, j.screen)
		}
	}
	return out
}

// screenElementAt returns the topmost visible screen joystick element at p.
func (in *Input) screenElementAt(p image.Point) *Element {
	w, h := in.platform.WindowSize()
	sjs := in.ScreenJoysticks()
	for i := len(sjs) - 1; i >= 0; i-- {
		if !sjs[i].Visible {
			continue
		}
		if e := sjs[i].elementAt(p, w, h); e != nil {
			return e
		}
	}
	return nil
}

// screenJoystickTouch turns touches on screen joystick elements into joystick,
// key and mouse button input.
func (in *Input) screenJoystickTouch(kind EventType, t *TouchState) {
	var e *Element
	if kind == EventTouchBegin {
		e = in.screenElementAt(t.Position)
	} else {
		e = t.element
	}
	if e == nil {
		return
	}
	if kind == EventTouchEnd {
		t.element = nil
	} else {
		t.element = e
	}

	id := e.owner.ID
	switch e.Kind {
	case ElementButton:
		if kind == EventTouchMove {
			return
		}
		down := kind == EventTouchBegin
		if len(e.Keys) == 0 && e.MouseButton == 0 {
			in.joyButton(id, e.Index, down)
			return
		}
		if len(e.Keys) > 0 {
			in.setKey(convertKeyCode(e.Keys[0], sdl.SCANCODE_UNKNOWN), sdl.SCANCODE_UNKNOWN, down)
		}
		if e.MouseButton != 0 {
			// Sent as a real mouse button even while touches are emulated.
			emulating := in.touchEmulation
			in.touchEmulation = false
			in.handleSDLEvent(&sdl.MouseButtonEvent{
				Type:   mouseButtonEventType(down),
				Button: sdlMouseButton(e.MouseButton),
			})
			in.touchEmulation = emulating
		}

	case ElementHat:
		if len(e.Keys) == 0 {
			value := HatCenter
			if kind != EventTouchEnd {
				value = hatDirection(in.relativeToCenter(e, t.Position))
			}
			in.joyHat(id, e.Index, value)
			return
		}
		in.hatKeys(kind, e, t.Position)
	}
}

func (in *Input) hatKeys(kind EventType, e *Element, pos image.Point) {
	if kind == EventTouchEnd {
		if e.lastKey == 0 {
			return
		}
		in.setKey(convertKeyCode(e.lastKey, sdl.SCANCODE_UNKNOWN), sdl.SCANCODE_UNKNOWN, false)
		e.lastKey = 0
		return
	}

	q := hatQuadrant(in.relativeToCenter(e, pos))
	if q < 0 {
		return
	}
	key := e.Keys[q]

	// Crossing into another direction releases the previous key first.
	if kind == EventTouchMove && key != e.lastKey {
		if e.lastKey != 0 {
			in.setKey(convertKeyCode(e.lastKey, sdl.SCANCODE_UNKNOWN), sdl.SCANCODE_UNKNOWN, false)
		}
		e.lastKey = 0
	}

	e.lastKey = key
	in.setKey(convertKeyCode(key, sdl.SCANCODE_UNKNOWN), sdl.SCANCODE_UNKNOWN, true)
}

func (in *Input) relativeToCenter(e *Element, p image.Point) image.Point {
	w, h := in.platform.WindowSize()
	r := e.Rect(w, h)
	return p.Sub(r.Min).Sub(image.Pt(r.Dx()/2, r.Dy()/2))
}

// hatDirection returns the hat bits for an offset from the hat center.
// An axis wins only when it dominates the other by 3:2.
func hatDirection(rel image.Point) uint8 {
	value := HatCenter
	if rel.Y < 0 && abs(rel.X*3/2) < abs(rel.Y) {
		value |= HatUp
	}
	if rel.Y > 0 && abs(rel.X*3/2) < abs(rel.Y) {
		value |= HatDown
	}
	if rel.X < 0 && abs(rel.Y*3/2) < abs(rel.X) {
		value |= HatLeft
	}
	if rel.X > 0 && abs(rel.Y*3/2) < abs(rel.X) {
		value |= HatRight
	}
	return value
}

// hatQuadrant returns 0 up, 1 down, 2 left, 3 right, or -1 near a diagonal.
func hatQuadrant(rel image.Point) int {
	switch {
	case rel.Y < 0 && abs(rel.X*3/2) < abs(rel.Y):
		return 0
	case rel.Y > 0 && abs(rel.X*3/2) < abs(rel.Y):
		return 1
	case rel.X < 0 && abs(rel.Y*3/2) < abs(rel.X):
		return 2
	case rel.X > 0 && abs(rel.Y*3/2) < abs(rel.X):
		return 3
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mouseButtonEventType(down bool) uint32 {
	if down {
		return sdl.MOUSEBUTTONDOWN
	}
	return sdl.MOUSEBUTTONUP
}
