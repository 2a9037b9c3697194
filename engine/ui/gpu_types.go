// package ui implements the two unlit interface pipelines. Absolute panels
// anchor directly to the viewport and live in clip space; relative panels
// carry a second transform so they can ride along inside another panel or a
// world-space parent. Both sample one texture per batch and apply the instance
// tint as a straight multiply.
package ui

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/lumen2d/lumen/engine/layout"
	"github.com/lumen2d/lumen/engine/transform"

	"github.com/cogentcore/webgpu/wgpu"
)

// AbsoluteShaderSource is the viewport-anchored panel WGSL with its includes
// unexpanded.
//
//go:embed assets/ui_absolute.wgsl
var AbsoluteShaderSource string

// RelativeShaderSource is the parent-relative panel WGSL with its includes
// unexpanded.
//
//go:embed assets/ui_relative.wgsl
var RelativeShaderSource string

// Instance is the per-panel record for the absolute pipeline. Matches the WGSL
// UiInstance vertex input layout exactly.
// Size: 112 bytes, tightly packed.
type Instance struct {
	Transform transform.Transform // offset  0: 4 columns, locations 0-3
	Anchor    [4]float32          // offset 64: top/left/bottom/right in [0,1], location 4
	Margin    [4]int32            // offset 80: pixel insets, location 5
	Color     [4]float32          // offset 96: tint multiplied into the sample, location 6
}

// InstanceSize is the byte stride of one absolute panel instance.
const InstanceSize = int(unsafe.Sizeof(Instance{}))

// RelativeInstance is the per-panel record for the relative pipeline: the
// anchor resolves inside the parent's space, Local places the quad within it
// and Global carries the whole panel. Matches the WGSL UiRelativeInstance
// layout exactly.
// Size: 176 bytes, tightly packed.
type RelativeInstance struct {
	Local  transform.Transform // offset   0: 4 columns, locations 0-3
	Global transform.Transform // offset  64: 4 columns, locations 4-7
	Anchor [4]float32          // offset 128: location 8
	Margin [4]int32            // offset 144: location 9
	Color  [4]float32          // offset 160: location 10
}

// RelativeInstanceSize is the byte stride of one relative panel instance.
const RelativeInstanceSize = int(unsafe.Sizeof(RelativeInstance{}))

// Size returns the size of the Instance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (i *Instance) Size() int {
	return InstanceSize
}

// Marshal serializes the Instance into a byte buffer suitable for writing into
// the instance vertex buffer.
//
// Returns:
//   - []byte: 112-byte buffer
func (i *Instance) Marshal() []byte {
	buf := make([]byte, InstanceSize)
	i.marshalInto(buf)
	return buf
}

func (i *Instance) marshalInto(buf []byte) {
	off := marshalTransform(buf, 0, i.Transform)
	off = marshalVec4(buf, off, i.Anchor)
	for c := range 4 {
		binary.LittleEndian.PutUint32(buf[off:], uint32(i.Margin[c]))
		off += 4
	}
	marshalVec4(buf, off, i.Color)
}

// Size returns the size of the RelativeInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (176)
func (i *RelativeInstance) Size() int {
	return RelativeInstanceSize
}

// Marshal serializes the RelativeInstance into a byte buffer suitable for
// writing into the instance vertex buffer.
//
// Returns:
//   - []byte: 176-byte buffer
func (i *RelativeInstance) Marshal() []byte {
	buf := make([]byte, RelativeInstanceSize)
	i.marshalInto(buf)
	return buf
}

func (i *RelativeInstance) marshalInto(buf []byte) {
	off := marshalTransform(buf, 0, i.Local)
	off = marshalTransform(buf, off, i.Global)
	off = marshalVec4(buf, off, i.Anchor)
	for c := range 4 {
		binary.LittleEndian.PutUint32(buf[off:], uint32(i.Margin[c]))
		off += 4
	}
	marshalVec4(buf, off, i.Color)
}

func marshalTransform(buf []byte, off int, t transform.Transform) int {
	for col := range 4 {
		for row := range 4 {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(t.Cols[col][row]))
			off += 4
		}
	}
	return off
}

func marshalVec4(buf []byte, off int, v [4]float32) int {
	for c := range 4 {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v[c]))
		off += 4
	}
	return off
}

// MarshalInstances serializes a batch of absolute instances into one
// contiguous buffer in slice order.
//
// Parameters:
//   - instances: the batch to serialize
//
// Returns:
//   - []byte: len(instances) * 112 bytes
func MarshalInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceSize)
	for n := range instances {
		instances[n].marshalInto(buf[n*InstanceSize:])
	}
	return buf
}

// MarshalRelativeInstances serializes a batch of relative instances into one
// contiguous buffer in slice order.
//
// Parameters:
//   - instances: the batch to serialize
//
// Returns:
//   - []byte: len(instances) * 176 bytes
func MarshalRelativeInstances(instances []RelativeInstance) []byte {
	buf := make([]byte, len(instances)*RelativeInstanceSize)
	for n := range instances {
		instances[n].marshalInto(buf[n*RelativeInstanceSize:])
	}
	return buf
}

// LayoutAnchor converts a resolved layout anchor and margin into the packed
// vec4 forms the instance records carry.
//
// Parameters:
//   - anchor: the fractional anchor
//   - margin: the pixel margin
//
// Returns:
//   - [4]float32: anchor as (top, left, bottom, right)
//   - [4]int32: margin as (top, left, bottom, right)
func LayoutAnchor(anchor layout.Anchor, margin layout.Margin) ([4]float32, [4]int32) {
	return [4]float32{anchor.Top, anchor.Left, anchor.Bottom, anchor.Right},
		[4]int32{margin.Top, margin.Left, margin.Bottom, margin.Right}
}

// InstanceLayout returns the vertex buffer layout for the absolute panel
// instance buffer, stepped per instance.
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
			{Format: wgpu.VertexFormatSint32x4, Offset: 80, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 96, ShaderLocation: 6},
		},
	}
}

// RelativeInstanceLayout returns the vertex buffer layout for the relative
// panel instance buffer, stepped per instance.
//
// Returns:
//   - wgpu.VertexBufferLayout: the instance layout
func RelativeInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(RelativeInstanceSize),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 80, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 96, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 112, ShaderLocation: 7},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 128, ShaderLocation: 8},
			{Format: wgpu.VertexFormatSint32x4, Offset: 144, ShaderLocation: 9},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 160, ShaderLocation: 10},
		},
	}
}
