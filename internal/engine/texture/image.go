// Package texture provides image decoding for heightmaps and material textures.
package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// Image is a decoded image that keeps its native component count.
// Row 0 is the top row of the source file.
type Image struct {
	Width      int
	Height     int
	Components int    // 1 = grey, 2 = grey+alpha, 3 = RGB, 4 = RGBA
	Data       []byte // Width*Height*Components bytes, empty when Compressed
	Compressed bool   // GPU block-compressed container, pixels not accessible
	Format     string
}

// Pixel returns component c of the pixel at (x, y).
func (img *Image) Pixel(x, y, c int) byte {
	return img.Data[(y*img.Width+x)*img.Components+c]
}

// Load reads and decodes an image file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	img, err := Decode(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image data. The name is used only for its extension.
func Decode(data []byte, name string) (*Image, error) {
	if img, ok, err := decodeCompressed(data); ok {
		return img, err
	}

	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	img := FromImage(src)
	img.Format = format
	return img, nil
}

// FromImage converts a standard library image, keeping grey images single-channel.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		img := &Image{Width: w, Height: h, Components: 1, Data: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			copy(img.Data[y*w:(y+1)*w], s.Pix[y*s.Stride:y*s.Stride+w])
		}
		return img
	case *image.Gray16:
		img := &Image{Width: w, Height: h, Components: 1, Data: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Data[y*w+x] = uint8(s.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return img
	}

	comps := 4
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		comps = 3
	}

	img := &Image{Width: w, Height: h, Components: comps, Data: make([]byte, w*h*comps)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * comps
			img.Data[i] = c.R
			img.Data[i+1] = c.G
			img.Data[i+2] = c.B
			if comps == 4 {
				img.Data[i+3] = c.A
			}
		}
	}
	return img
}

// ToRGBA expands the image to RGBA for texture upload.
func (img *Image) ToRGBA() (*image.RGBA, error) {
	if img.Compressed {
		return nil, fmt.Errorf("%s image is block-compressed", img.Format)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var c color.RGBA
			switch img.Components {
			case 1:
				v := img.Pixel(x, y, 0)
				c = color.RGBA{R: v, G: v, B: v, A: 255}
			case 2:
				v := img.Pixel(x, y, 0)
				c = color.RGBA{R: v, G: v, B: v, A: img.Pixel(x, y, 1)}
			case 3:
				c = color.RGBA{R: img.Pixel(x, y, 0), G: img.Pixel(x, y, 1), B: img.Pixel(x, y, 2), A: 255}
			default:
				c = color.RGBA{R: img.Pixel(x, y, 0), G: img.Pixel(x, y, 1), B: img.Pixel(x, y, 2), A: img.Pixel(x, y, 3)}
			}
			// Premultiply to satisfy image.RGBA.
			if c.A != 255 {
				c.R = uint8(uint16(c.R) * uint16(c.A) / 255)
				c.G = uint8(uint16(c.G) * uint16(c.A) / 255)
				c.B = uint8(uint16(c.B) * uint16(c.A) / 255)
			}
			rgba.SetRGBA(x, y, c)
		}
	}
	return rgba, nil
}

var (
	ddsMagic = []byte("DDS ")
	ktxMagic = []byte{0xAB, 'K', 'T', 'X', ' ', '1', '1', 0xBB, '\r', '\n', 0x1A, '\n'}
	pvrMagic = []byte{'P', 'V', 'R', 3}
)

// decodeCompressed recognizes GPU texture containers. Only the header is read;
// ok is false when data is not one of the known containers.
func decodeCompressed(data []byte) (img *Image, ok bool, err error) {
	le := binary.LittleEndian

	switch {
	case bytes.HasPrefix(data, ddsMagic):
		// magic(4) + DDS_HEADER(124); pixel format flags at 80, DDPF_FOURCC = 0x4
		if len(data) < 128 {
			return nil, true, fmt.Errorf("DDS header truncated")
		}
		if le.Uint32(data[80:])&0x4 == 0 {
			return nil, true, fmt.Errorf("uncompressed DDS not supported")
		}
		return &Image{
			Width:      int(le.Uint32(data[16:])),
			Height:     int(le.Uint32(data[12:])),
			Compressed: true,
			Format:     "dds",
		}, true, nil

	case bytes.HasPrefix(data, ktxMagic):
		if len(data) < 64 {
			return nil, true, fmt.Errorf("KTX header truncated")
		}
		if le.Uint32(data[16:]) != 0 {
			return nil, true, fmt.Errorf("uncompressed KTX not supported")
		}
		return &Image{
			Width:      int(le.Uint32(data[36:])),
			Height:     int(le.Uint32(data[40:])),
			Compressed: true,
			Format:     "ktx",
		}, true, nil

	case bytes.HasPrefix(data, pvrMagic):
		if len(data) < 52 {
			return nil, true, fmt.Errorf("PVR header truncated")
		}
		if le.Uint32(data[12:]) != 0 {
			return nil, true, fmt.Errorf("uncompressed PVR not supported")
		}
		return &Image{
			Width:      int(le.Uint32(data[28:])),
			Height:     int(le.Uint32(data[24:])),
			Compressed: true,
			Format:     "pvr",
		}, true, nil
	}
	return nil, false, nil
}
