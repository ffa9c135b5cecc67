package texture

import (
	"fmt"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGrey         = 3  // Uncompressed greyscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeGreyRLE      = 11 // RLE compressed greyscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// DecodeTGA decodes a TGA image file.
// Supports true-color (24/32 bit) and greyscale (8 bit) images, raw or RLE compressed.
// Greyscale images decode to a single component, which is what heightmaps use.
func DecodeTGA(data []byte) (*Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA image has empty size %dx%d", width, height)
	}
	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	grey := imageType == TGATypeGrey || imageType == TGATypeGreyRLE
	switch imageType {
	case TGATypeUncompressed, TGATypeRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
		}
	case TGATypeGrey, TGATypeGreyRLE:
		if bpp != 8 {
			return nil, fmt.Errorf("unsupported greyscale TGA bit depth %d", bpp)
		}
	default:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	bytesPerPixel := bpp / 8
	img := &Image{
		Width:      width,
		Height:     height,
		Components: bytesPerPixel,
		Data:       make([]byte, width*height*bytesPerPixel),
		Format:     "tga",
	}
	topToBottom := descriptor&tgaDescriptorTopToBottom != 0

	// put stores one source pixel (BGR[A] or grey) at linear index i.
	put := func(i int, src []byte) {
		x := i % width
		y := i / width
		if !topToBottom {
			y = height - 1 - y
		}
		dst := img.Data[(y*width+x)*bytesPerPixel:]
		if grey {
			dst[0] = src[0]
			return
		}
		dst[0], dst[1], dst[2] = src[2], src[1], src[0]
		if bytesPerPixel == 4 {
			dst[3] = src[3]
		}
	}

	pixelCount := width * height
	if imageType == TGATypeUncompressed || imageType == TGATypeGrey {
		if len(pixelData) < pixelCount*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < pixelCount; i++ {
			put(i, pixelData[i*bytesPerPixel:])
		}
		return img, nil
	}

	pixelIdx, dataIdx := 0, 0
	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated
			if dataIdx+bytesPerPixel > len(pixelData) {
				break
			}
			src := pixelData[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, src)
				pixelIdx++
			}
			continue
		}

		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				break
			}
			put(pixelIdx, pixelData[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}
	if pixelIdx < pixelCount {
		return nil, fmt.Errorf("TGA RLE data truncated")
	}
	return img, nil
}
