package ui2d

import (
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII range baked into the atlas.
const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasCols    = 16
	fallbackRune = '?'
)

// Font is a fixed-width bitmap font baked into a texture atlas.
type Font struct {
	atlas  *image.Alpha
	glyphW int
	glyphH int
	texID  uint32
}

// NewFont bakes the 7x13 basic font into an atlas. The GL texture is created
// on the first TextureID call.
func NewFont() *Font {
	face := basicfont.Face7x13
	f := &Font{
		glyphW: face.Advance,
		glyphH: face.Height,
	}

	n := int(lastGlyph-firstGlyph) + 1
	rows := (n + atlasCols - 1) / atlasCols
	f.atlas = image.NewAlpha(image.Rect(0, 0, atlasCols*f.glyphW, rows*f.glyphH))

	d := &font.Drawer{Dst: f.atlas, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		x, y := f.cell(r)
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
	}
	return f
}

// cell returns the top-left atlas pixel of glyph r.
func (f *Font) cell(r rune) (int, int) {
	if r < firstGlyph || r > lastGlyph {
		r = fallbackRune
	}
	i := int(r - firstGlyph)
	return (i % atlasCols) * f.glyphW, (i / atlasCols) * f.glyphH
}

// GlyphSize returns the glyph cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GetGlyphUV returns the atlas texture coordinates of r.
// Runes outside printable ASCII map to '?'.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	x, y := f.cell(r)
	w := float32(f.atlas.Rect.Dx())
	h := float32(f.atlas.Rect.Dy())
	return float32(x) / w, float32(y) / h, float32(x+f.glyphW) / w, float32(y+f.glyphH) / h
}

// MeasureText returns the width of the longest line and the total height.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	return float32(widest*f.glyphW) * scale, float32(len(lines)*f.glyphH) * scale
}

// TextureID returns the atlas texture, uploading it on first use.
func (f *Font) TextureID() uint32 {
	if f.texID != 0 {
		return f.texID
	}

	// White RGB with the glyph coverage in alpha
	b := f.atlas.Rect
	pix := make([]byte, b.Dx()*b.Dy()*4)
	for i, a := range f.atlas.Pix {
		pix[i*4] = 255
		pix[i*4+1] = 255
		pix[i*4+2] = 255
		pix[i*4+3] = a
	}

	gl.GenTextures(1, &f.texID)
	gl.BindTexture(gl.TEXTURE_2D, f.texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return f.texID
}

// Close deletes the atlas texture.
func (f *Font) Close() {
	if f.texID != 0 {
		gl.DeleteTextures(1, &f.texID)
		f.texID = 0
	}
}
