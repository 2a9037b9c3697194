package sprite

import (
	"fmt"

	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

// DistanceBasis selects which position the fragment stage measures light
// distance from. The two bases are not equivalent: clip space is
// post-projection and non-linear in depth.
type DistanceBasis int

const (
	// DistanceWorldSpace measures light distance from the world-space fragment
	// position. This is the physically meaningful basis and the default; it
	// matches the tile pipeline.
	DistanceWorldSpace DistanceBasis = iota

	// DistanceClipSpace measures light distance from the clip-space position,
	// the historical sprite behavior. Scenes with attenuation coefficients
	// tuned against that falloff can pin it with this basis.
	DistanceClipSpace
)

// PipelineKey is the cache key for the sprite render pipeline.
const PipelineKey = "sprite"

// NewPipeline builds the sprite pipeline configuration: shader with the
// selected distance basis, instance layout, alpha blend, triangle strip.
//
// Bind groups: group 0 is the camera and viewport uniforms, group 1 the light
// block, group 2 the texture array and sampler.
//
// Parameters:
//   - basis: the light distance basis for the fragment stage
//   - opts: additional pipeline options applied after the defaults
//
// Returns:
//   - pipeline.Pipeline: the configured pipeline
//   - error: an error if the shader fails to build
func NewPipeline(basis DistanceBasis, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	var shaderOpts []shader.ShaderBuilderOption
	if basis == DistanceClipSpace {
		shaderOpts = append(shaderOpts, shader.WithFragmentEntryPoint("fs_main_legacy"))
	}
	s, err := shader.NewShader(PipelineKey, ShaderSource, shaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("sprite pipeline: %w", err)
	}

	defaults := []pipeline.PipelineBuilderOption{
		pipeline.WithInstanceLayout(InstanceLayout()),
		pipeline.WithLayoutDescriptors(
			pipeline.CameraViewportLayout(),
			pipeline.LightBlockLayout(),
			pipeline.TextureSamplerLayout(wgpu.TextureViewDimension2DArray),
		),
	}
	return pipeline.NewPipeline(PipelineKey, s, append(defaults, opts...)...), nil
}
