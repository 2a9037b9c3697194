package ui

import (
	"fmt"

	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

// AbsolutePipelineKey is the cache key for the viewport-anchored panel
// pipeline.
const AbsolutePipelineKey = "ui_absolute"

// RelativePipelineKey is the cache key for the parent-relative panel pipeline.
const RelativePipelineKey = "ui_relative"

// NewAbsolutePipeline builds the viewport-anchored panel pipeline.
//
// Bind groups: group 0 is the camera and viewport uniforms, group 1 the panel
// texture and sampler. Panels are unlit; no light block is bound.
//
// Parameters:
//   - opts: additional pipeline options applied after the defaults
//
// Returns:
//   - pipeline.Pipeline: the configured pipeline
//   - error: an error if the shader fails to build
func NewAbsolutePipeline(opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	s, err := shader.NewShader(AbsolutePipelineKey, AbsoluteShaderSource)
	if err != nil {
		return nil, fmt.Errorf("ui absolute pipeline: %w", err)
	}

	defaults := []pipeline.PipelineBuilderOption{
		pipeline.WithInstanceLayout(InstanceLayout()),
		pipeline.WithLayoutDescriptors(
			pipeline.CameraViewportLayout(),
			pipeline.TextureSamplerLayout(wgpu.TextureViewDimension2D),
		),
	}
	return pipeline.NewPipeline(AbsolutePipelineKey, s, append(defaults, opts...)...), nil
}

// NewRelativePipeline builds the parent-relative panel pipeline.
//
// Bind groups match the absolute pipeline; only the instance layout and the
// vertex stage differ.
//
// Parameters:
//   - opts: additional pipeline options applied after the defaults
//
// Returns:
//   - pipeline.Pipeline: the configured pipeline
//   - error: an error if the shader fails to build
func NewRelativePipeline(opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	s, err := shader.NewShader(RelativePipelineKey, RelativeShaderSource)
	if err != nil {
		return nil, fmt.Errorf("ui relative pipeline: %w", err)
	}

	defaults := []pipeline.PipelineBuilderOption{
		pipeline.WithInstanceLayout(RelativeInstanceLayout()),
		pipeline.WithLayoutDescriptors(
			pipeline.CameraViewportLayout(),
			pipeline.TextureSamplerLayout(wgpu.TextureViewDimension2D),
		),
	}
	return pipeline.NewPipeline(RelativePipelineKey, s, append(defaults, opts...)...), nil
}
