package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// ImageData is decoded RGBA staging data ready for texture upload.
type ImageData struct {
	// Pixels holds tightly packed RGBA rows, 4 bytes per texel.
	Pixels []byte

	// Width and Height are the texel dimensions.
	Width  uint32
	Height uint32
}

// loadImage decodes a PNG or JPEG file into RGBA pixels, rescaling by the
// given factor when it is not 1. Rescaling uses Catmull-Rom resampling, which
// holds up for both up- and downscaling of sprite art.
func loadImage(path string, scale float32) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if scale > 0 && scale != 1 {
		width = int(float32(width) * scale)
		height = int(float32(height) * scale)
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() && height == bounds.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	}

	// NewRGBA strides rows at 4*width, so Pix is already tightly packed.
	return &ImageData{
		Pixels: dst.Pix,
		Width:  uint32(width),
		Height: uint32(height),
	}, nil
}
