package ui2d

import (
	"image"

	"github.com/Faultbox/terra/internal/engine/input"
)

const (
	hudPadding = 6
	hudScale   = 1.5
)

// Canvas is the drawing surface the overlay renders into.
type Canvas interface {
	DrawRect(x, y, width, height float32, color Color)
	DrawRectOutline(x, y, width, height, thickness float32, color Color)
	DrawPanel(x, y, width, height float32, bg, border Color)
	DrawText(x, y float32, text string, scale float32, color Color)
	MeasureText(text string, scale float32) (float32, float32)
}

var _ Canvas = (*Renderer)(nil)

// Overlay draws screen joysticks and a status line.
type Overlay struct {
	canvas Canvas
}

// NewOverlay creates an overlay drawing into c.
func NewOverlay(c Canvas) *Overlay {
	return &Overlay{canvas: c}
}

// Draw renders every visible screen joystick of in and the status lines.
func (o *Overlay) Draw(in *input.Input, screenW, screenH int, hud []string) {
	active := activeElements(in)
	for _, sj := range in.ScreenJoysticks() {
		if !sj.Visible {
			continue
		}
		for _, e := range sj.Elements {
			o.drawElement(e, e.Rect(screenW, screenH), active[e])
		}
	}
	o.drawHUD(hud)
}

func (o *Overlay) drawElement(e *input.Element, r image.Rectangle, pressed bool) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())

	fill := ColorElement
	if pressed {
		fill = ColorElementActive
	}
	o.canvas.DrawRect(x, y, w, h, fill)
	o.canvas.DrawRectOutline(x, y, w, h, 2, ColorElementBorder)

	if e.Kind == input.ElementHat {
		// Cross marking the four directions
		o.canvas.DrawRect(x+w/2-1, y+4, 2, h-8, ColorElementBorder)
		o.canvas.DrawRect(x+4, y+h/2-1, w-8, 2, ColorElementBorder)
	}

	tw, th := o.canvas.MeasureText(e.Name, 1)
	o.canvas.DrawText(x+(w-tw)/2, y+(h-th)/2, e.Name, 1, ColorText)
}

func (o *Overlay) drawHUD(lines []string) {
	y := float32(hudPadding)
	for _, l := range lines {
		if l == "" {
			continue
		}
		tw, th := o.canvas.MeasureText(l, hudScale)
		o.canvas.DrawPanel(hudPadding, y, tw+2*hudPadding, th+hudPadding, ColorHUDBg, ColorElementBorder)
		o.canvas.DrawText(2*hudPadding, y+hudPadding/2, l, hudScale, ColorText)
		y += th + hudPadding*2
	}
}

// activeElements returns the screen joystick elements currently held by a touch.
func activeElements(in *input.Input) map[*input.Element]bool {
	active := make(map[*input.Element]bool)
	for i := 0; i < in.NumTouches(); i++ {
		if e := in.Touch(i).Element(); e != nil {
			active[e] = true
		}
	}
	return active
}
