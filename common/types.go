// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// Decoded images, tile atlases and glyph atlas pages are staged through this type
// before the renderer creates the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
}

// CoverageStagingData holds single-channel coverage data (anti-aliased glyph
// alpha) pending GPU upload as an R8Unorm texture. The text pipeline samples
// this channel and multiplies it into the tint alpha.
type CoverageStagingData struct {
	// Pixels is one byte per texel, row-major.
	Pixels []byte
	// Width is the texture width in texels.
	Width uint32
	// Height is the texture height in texels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DecodeImageFile decodes a PNG or JPEG file into RGBA staging data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - path: filesystem path of the image
//
// Returns:
//   - *TextureStagingData: decoded RGBA pixels with dimensions
//   - error: error if the file cannot be opened or decoded
func DecodeImageFile(path string) (*TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}
	return stageImage(img), nil
}

// DecodeImageBytes decodes in-memory PNG or JPEG data into RGBA staging data.
//
// Parameters:
//   - data: raw image bytes
//
// Returns:
//   - *TextureStagingData: decoded RGBA pixels with dimensions
//   - error: error if decoding fails
func DecodeImageBytes(data []byte) (*TextureStagingData, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded image: %w", err)
	}
	return stageImage(img), nil
}

// ScaleStagingData resamples RGBA staging data by the given factor using
// Catmull-Rom interpolation. Used to rescale glyph atlas pages when the
// display scale factor is not 1.
//
// Parameters:
//   - src: the staging data to resample
//   - factor: scale multiplier (must be > 0)
//
// Returns:
//   - *TextureStagingData: the resampled staging data
//   - error: error if the factor or source dimensions are invalid
func ScaleStagingData(src *TextureStagingData, factor float32) (*TextureStagingData, error) {
	if src == nil || src.Width == 0 || src.Height == 0 {
		return nil, fmt.Errorf("cannot scale empty staging data")
	}
	if factor <= 0 {
		return nil, fmt.Errorf("scale factor must be positive, got %v", factor)
	}
	if factor == 1 {
		return src, nil
	}

	srcImg := &image.RGBA{
		Pix:    src.Pixels,
		Stride: int(src.Width) * 4,
		Rect:   image.Rect(0, 0, int(src.Width), int(src.Height)),
	}
	dstW := int(float32(src.Width) * factor)
	dstH := int(float32(src.Height) * factor)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), xdraw.Over, nil)

	return &TextureStagingData{
		Pixels: dst.Pix,
		Width:  uint32(dstW),
		Height: uint32(dstH),
	}, nil
}

func stageImage(img image.Image) *TextureStagingData {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return &TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
