package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes, std140 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer,
// shared read-only by every pipeline. Matches the WGSL CameraUniform struct layout
// exactly (see GPUCameraUniformSource).
// Size: 144 bytes (std140 / WGSL aligned).
type GPUCameraUniform struct {
	View        [16]float32 // offset   0: view matrix (mat4x4<f32>, column-major)
	Projection  [16]float32 // offset  64: projection matrix (mat4x4<f32>, column-major)
	Position    [3]float32  // offset 128: world-space camera position (vec3<f32>)
	ScaleFactor float32     // offset 140: display content scale (DPI multiplier)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], math.Float32bits(g.ScaleFactor))
	return buf
}

// GPUViewportSource is the canonical WGSL definition of the Viewport struct.
// Matches GPUViewport layout exactly (32 bytes, std140 aligned).
//
//go:embed assets/viewport.wgsl
var GPUViewportSource string

// GPUViewport is the GPU-aligned representation of the logical viewport uniform.
// The anchor resolver running in the UI and text vertex stages reads this block
// to convert pixel margins into normalized device coordinates.
// Matches the WGSL Viewport struct layout exactly (see GPUViewportSource).
// Size: 32 bytes (std140 / WGSL aligned).
type GPUViewport struct {
	X      float32 // offset  0: viewport origin x in pixels
	Y      float32 // offset  4: viewport origin y in pixels
	Width  float32 // offset  8: viewport width in pixels
	Height float32 // offset 12: viewport height in pixels
	MinZ   float32 // offset 16: minimum depth, typically 0
	MaxZ   float32 // offset 20: maximum depth, typically 1
	_pad0  float32 // offset 24: padding to 32 bytes
	_pad1  float32 // offset 28: padding to 32 bytes
}

// Size returns the size of the GPUViewport struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUViewport) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUViewport struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUViewport) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.X))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Y))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.Width))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.Height))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.MinZ))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.MaxZ))
	binary.LittleEndian.PutUint32(buf[24:], 0) // _pad0
	binary.LittleEndian.PutUint32(buf[28:], 0) // _pad1
	return buf
}
