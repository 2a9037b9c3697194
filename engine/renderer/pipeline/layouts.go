package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group layout labels. The renderer scans these when registering a
// pipeline: groups it recognizes are bound automatically from the shared
// frame buffers, the rest are created by the caller (textures, section
// uniforms).
const (
	// LayoutLabelCameraViewport marks the shared camera + viewport uniform
	// group. Always group 0.
	LayoutLabelCameraViewport = "camera_viewport"

	// LayoutLabelLightBlock marks the shared light block uniform group.
	LayoutLabelLightBlock = "light_block"

	// LayoutLabelTextureSampler marks a caller-provided texture + sampler
	// group.
	LayoutLabelTextureSampler = "texture_sampler"

	// LayoutLabelSectionUniform marks a caller-provided per-batch uniform
	// group.
	LayoutLabelSectionUniform = "section_uniform"
)

// CameraViewportLayout returns the layout descriptor for the shared camera
// and viewport uniforms: binding 0 the camera block, binding 1 the viewport
// block, both visible to vertex and fragment stages.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 0 layout descriptor
func CameraViewportLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: LayoutLabelCameraViewport,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 144,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 32,
				},
			},
		},
	}
}

// LightBlockLayout returns the layout descriptor for the shared light block
// uniform at binding 0, visible to the fragment stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the light group layout descriptor
func LightBlockLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: LayoutLabelLightBlock,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 3088,
				},
			},
		},
	}
}

// TextureSamplerLayout returns the layout descriptor for a filterable texture
// at binding 0 and its sampler at binding 1, visible to the fragment stage.
//
// Parameters:
//   - dimension: the texture view dimension (2D or 2D-array)
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the texture group layout descriptor
func TextureSamplerLayout(dimension wgpu.TextureViewDimension) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: LayoutLabelTextureSampler,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: dimension,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// SectionUniformLayout returns the layout descriptor for a per-batch uniform
// at binding 0, visible to vertex and fragment stages.
//
// Parameters:
//   - size: the uniform block size in bytes
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the uniform group layout descriptor
func SectionUniformLayout(size uint64) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: LayoutLabelSectionUniform,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	}
}
