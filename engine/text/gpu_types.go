// package text implements the glyph pipeline. Glyph quads size themselves from
// the hosting panel's pixel height (resolved through the anchor math), not a
// fixed screen size, so text scales with its panel across resolutions and DPI
// changes. The fragment stage samples a single-channel coverage texture into
// the tint alpha.
package text

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/lumen2d/lumen/engine/transform"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderSource is the text pipeline WGSL with its includes unexpanded.
//
//go:embed assets/text.wgsl
var ShaderSource string

// GPUSection is the GPU-aligned uniform for one text section: the group
// transform, the hosting panel's anchor and margin, and the section tint.
// Matches the WGSL TextSection struct layout exactly.
// Size: 112 bytes (std140 aligned).
type GPUSection struct {
	Transform [16]float32 // offset  0: section transform applied after glyph placement
	Anchor    [4]float32  // offset 64: panel anchor as (top, left, bottom, right)
	Margin    [4]int32    // offset 80: panel margin as (top, left, bottom, right), logical pixels
	Color     [4]float32  // offset 96: section tint, multiplied into glyph color
}

// SectionSize is the byte size of the section uniform block.
const SectionSize = int(unsafe.Sizeof(GPUSection{}))

// Size returns the size of the GPUSection struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (s *GPUSection) Size() int {
	return SectionSize
}

// Marshal serializes the GPUSection into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload
func (s *GPUSection) Marshal() []byte {
	buf := make([]byte, s.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s.Transform[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(s.Anchor[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[80+i*4:], uint32(s.Margin[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[96+i*4:], math.Float32bits(s.Color[i]))
	}
	return buf
}

// Instance is the per-glyph instance record. The transform's translation is
// the pen position in glyph-height units; Size is (aspect, height fraction of
// the panel). Matches the WGSL GlyphInstance vertex input layout exactly.
// Size: 88 bytes, tightly packed.
type Instance struct {
	Transform transform.Transform // offset  0: locations 0-3
	Color     [4]float32          // offset 64: glyph tint, location 4
	Size      [2]float32          // offset 80: (width/height aspect, height fraction), location 5
}

// InstanceSize is the byte stride of one glyph instance.
const InstanceSize = int(unsafe.Sizeof(Instance{}))

// Marshal serializes the Instance into a byte buffer suitable for writing into
// the instance vertex buffer.
//
// Returns:
//   - []byte: 88-byte buffer
func (i *Instance) Marshal() []byte {
	buf := make([]byte, InstanceSize)
	i.marshalInto(buf)
	return buf
}

func (i *Instance) marshalInto(buf []byte) {
	off := 0
	for col := range 4 {
		for row := range 4 {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(i.Transform.Cols[col][row]))
			off += 4
		}
	}
	for c := range 4 {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(i.Color[c]))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(i.Size[0]))
	binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(i.Size[1]))
}

// MarshalInstances serializes a batch of glyph instances into one contiguous
// buffer in slice order.
//
// Parameters:
//   - instances: the batch to serialize
//
// Returns:
//   - []byte: len(instances) * 88 bytes
func MarshalInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceSize)
	for n := range instances {
		instances[n].marshalInto(buf[n*InstanceSize:])
	}
	return buf
}

// InstanceLayout returns the vertex buffer layout for the glyph instance
// buffer, stepped per instance.
//
// Returns:
//   - wgpu.VertexBufferLayout: the instance layout
func InstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(InstanceSize),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 80, ShaderLocation: 5},
		},
	}
}
