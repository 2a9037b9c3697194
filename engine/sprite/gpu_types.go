// package sprite implements the lit sprite pipeline: one textured quad per
// instance, transformed by a per-instance transform plus the shared camera,
// with additive point-light accumulation over the sampled color. Sprites bind
// a texture array and select a layer per instance, so one draw batch can span
// many atlas pages.
package sprite

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/lumen2d/lumen/engine/transform"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderSource is the sprite pipeline WGSL with its includes unexpanded.
//
//go:embed assets/sprite.wgsl
var ShaderSource string

// Instance is the per-sprite instance record. Matches the WGSL SpriteInstance
// vertex input layout exactly.
// Size: 92 bytes, tightly packed (vertex buffers have no std140 padding).
type Instance struct {
	Transform transform.Transform // offset  0: 4 columns, locations 0-3
	Color     [4]float32          // offset 64: tint multiplied into the sample, location 4
	Size      [2]float32          // offset 80: quad size in world units, location 5
	TexIndex  uint32              // offset 88: texture array layer, location 6
}

// InstanceSize is the byte stride of one sprite instance.
const InstanceSize = int(unsafe.Sizeof(Instance{}))

// Marshal serializes the Instance into a byte buffer suitable for writing into
// the instance vertex buffer.
//
// Returns:
//   - []byte: 92-byte buffer
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
	binary.LittleEndian.PutUint32(buf[off+8:], i.TexIndex)
}

// MarshalInstances serializes a batch of instances into one contiguous buffer
// in slice order.
//
// Parameters:
//   - instances: the batch to serialize
//
// Returns:
//   - []byte: len(instances) * 92 bytes
func MarshalInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceSize)
	for n := range instances {
		instances[n].marshalInto(buf[n*InstanceSize:])
	}
	return buf
}

// InstanceLayout returns the vertex buffer layout for the sprite instance
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
			{Format: wgpu.VertexFormatUint32, Offset: 88, ShaderLocation: 6},
		},
	}
}
