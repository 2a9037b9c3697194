// package tile implements the lit tile pipeline: one atlas-mapped quad per
// instance with a per-instance UV rectangle, so a whole tiled background draws
// from a single atlas texture in one batch. Lighting matches the sprite
// pipeline's world-space accumulation.
package tile

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/lumen2d/lumen/engine/transform"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderSource is the tile pipeline WGSL with its includes unexpanded.
//
//go:embed assets/tile.wgsl
var ShaderSource string

// Instance is the per-tile instance record. Matches the WGSL TileInstance
// vertex input layout exactly.
// Size: 104 bytes, tightly packed.
type Instance struct {
	Transform transform.Transform // offset  0: 4 columns, locations 0-3
	// UVRect selects the atlas region as (top, left, bottom, right) in
	// texture coordinates. Location 4.
	UVRect [4]float32
	Color  [4]float32 // offset 80: flat base color multiplied into the sample, location 5
	Size   [2]float32 // offset 96: quad size in world units, location 6
}

// InstanceSize is the byte stride of one tile instance.
const InstanceSize = int(unsafe.Sizeof(Instance{}))

// Marshal serializes the Instance into a byte buffer suitable for writing into
// the instance vertex buffer.
//
// Returns:
//   - []byte: 104-byte buffer
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
	for n := range 4 {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(i.UVRect[n]))
		off += 4
	}
	for n := range 4 {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(i.Color[n]))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(i.Size[0]))
	binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(i.Size[1]))
}

// MarshalInstances serializes a batch of instances into one contiguous buffer
// in slice order.
//
// Parameters:
//   - instances: the batch to serialize
//
// Returns:
//   - []byte: len(instances) * 104 bytes
func MarshalInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceSize)
	for n := range instances {
		instances[n].marshalInto(buf[n*InstanceSize:])
	}
	return buf
}

// InstanceLayout returns the vertex buffer layout for the tile instance
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
			{Format: wgpu.VertexFormatFloat32x4, Offset: 80, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 96, ShaderLocation: 6},
		},
	}
}
