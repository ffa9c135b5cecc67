package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Overlay palette.
var (
	ColorText      = Color{0.9, 0.9, 0.9, 1}
	ColorHighlight = Color{0.2, 0.6, 0.9, 1}

	ColorElement       = ColorText.WithAlpha(0.15)
	ColorElementBorder = ColorText.WithAlpha(0.5)
	ColorElementActive = ColorHighlight.WithAlpha(0.45)
	ColorHUDBg         = Color{0, 0, 0, 0.5}
)

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}
