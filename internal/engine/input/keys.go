package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// MouseButton is a bit mask of mouse buttons.
type MouseButton int

// Mouse button masks. SDL button n maps to bit n-1.
const (
	MouseButtonLeft   MouseButton = 1 << 0
	MouseButtonMiddle MouseButton = 1 << 1
	MouseButtonRight  MouseButton = 1 << 2
	MouseButtonX1     MouseButton = 1 << 3
	MouseButtonX2     MouseButton = 1 << 4
)

// Qualifier is a bit mask of held modifier keys.
type Qualifier int

const (
	QualShift Qualifier = 1 << iota
	QualCtrl
	QualAlt
)

// Joystick hat positions.
const (
	HatCenter uint8 = 0
	HatUp     uint8 = 1
	HatRight  uint8 = 2
	HatDown   uint8 = 4
	HatLeft   uint8 = 8
)

// Touch device ids SDL gives touch events synthesized from the mouse. SDL 2.0.10
// and later use -1; older releases used the 32-bit all-ones value.
const (
	touchMouseID       = -1
	touchMouseIDLegacy = 0xFFFFFFFF
)

func isMouseTouch(id sdl.TouchID) bool {
	return int64(id) == touchMouseID || int64(id) == touchMouseIDLegacy
}

// mouseButtonMask converts an SDL button number to its mask.
func mouseButtonMask(button uint8) MouseButton {
	if button == 0 {
		return 0
	}
	return 1 << (button - 1)
}

// convertKeyCode maps an SDL key to the stored key: letters are uppercased and
// the Android back button reports as Escape.
func convertKeyCode(sym sdl.Keycode, scancode sdl.Scancode) sdl.Keycode {
	if scancode == sdl.SCANCODE_AC_BACK {
		return sdl.K_ESCAPE
	}
	return upperKey(sym)
}

func upperKey(key sdl.Keycode) sdl.Keycode {
	if key >= 'a' && key <= 'z' {
		return key - ('a' - 'A')
	}
	return key
}

// keyBindings maps binding names used by screen joystick layouts to keys.
var keyBindings = map[string]sdl.Keycode{
	"SPACE":    sdl.K_SPACE,
	"LCTRL":    sdl.K_LCTRL,
	"RCTRL":    sdl.K_RCTRL,
	"LSHIFT":   sdl.K_LSHIFT,
	"RSHIFT":   sdl.K_RSHIFT,
	"LALT":     sdl.K_LALT,
	"RALT":     sdl.K_RALT,
	"LGUI":     sdl.K_LGUI,
	"RGUI":     sdl.K_RGUI,
	"TAB":      sdl.K_TAB,
	"RETURN":   sdl.K_RETURN,
	"RETURN2":  sdl.K_RETURN2,
	"ENTER":    sdl.K_KP_ENTER,
	"SELECT":   sdl.K_SELECT,
	"LEFT":     sdl.K_LEFT,
	"RIGHT":    sdl.K_RIGHT,
	"UP":       sdl.K_UP,
	"DOWN":     sdl.K_DOWN,
	"PAGEUP":   sdl.K_PAGEUP,
	"PAGEDOWN": sdl.K_PAGEDOWN,
	"F1":       sdl.K_F1,
	"F2":       sdl.K_F2,
	"F3":       sdl.K_F3,
	"F4":       sdl.K_F4,
	"F5":       sdl.K_F5,
	"F6":       sdl.K_F6,
	"F7":       sdl.K_F7,
	"F8":       sdl.K_F8,
	"F9":       sdl.K_F9,
	"F10":      sdl.K_F10,
	"F11":      sdl.K_F11,
	"F12":      sdl.K_F12,
}

var mouseButtonBindings = map[string]MouseButton{
	"LEFT":   MouseButtonLeft,
	"MIDDLE": MouseButtonMiddle,
	"RIGHT":  MouseButtonRight,
	"X1":     MouseButtonX1,
	"X2":     MouseButtonX2,
}

// sdlMouseButton converts a single mask bit back to an SDL button number.
func sdlMouseButton(b MouseButton) uint8 {
	for n := uint8(1); n <= 5; n++ {
		if mouseButtonMask(n) == b {
			return n
		}
	}
	return 0
}

// parseKeyBinding resolves a single character or a binding name.
func parseKeyBinding(s string) (sdl.Keycode, bool) {
	if len(s) == 1 {
		return sdl.Keycode(s[0]), true
	}
	k, ok := keyBindings[s]
	return k, ok
}

// KeyFromName returns the key with the given SDL name, or K_UNKNOWN.
func KeyFromName(name string) sdl.Keycode {
	return sdl.GetKeyFromName(name)
}

// KeyName returns the SDL name of a key.
func KeyName(key sdl.Keycode) string {
	return sdl.GetKeyName(key)
}

// KeyFromScancode returns the key a scancode produces in the current layout.
func KeyFromScancode(scancode sdl.Scancode) sdl.Keycode {
	return sdl.GetKeyFromScancode(scancode)
}

// ScancodeFromKey returns the scancode that produces a key in the current layout.
func ScancodeFromKey(key sdl.Keycode) sdl.Scancode {
	return sdl.GetScancodeFromKey(key)
}

// ScancodeFromName returns the scancode with the given SDL name.
func ScancodeFromName(name string) sdl.Scancode {
	return sdl.GetScancodeFromName(name)
}

// ScancodeName returns the SDL name of a scancode.
func ScancodeName(scancode sdl.Scancode) string {
	return sdl.GetScancodeName(scancode)
}
