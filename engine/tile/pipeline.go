package tile

import (
	"fmt"

	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineKey is the cache key for the tile render pipeline.
const PipelineKey = "tile"

// NewPipeline builds the tile pipeline configuration.
//
// Bind groups: group 0 is the camera and viewport uniforms, group 1 the light
// block, group 2 the atlas texture and sampler. Batches must be grouped by
// atlas texture.
//
// Parameters:
//   - opts: additional pipeline options applied after the defaults
//
// Returns:
//   - pipeline.Pipeline: the configured pipeline
//   - error: an error if the shader fails to build
func NewPipeline(opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	s, err := shader.NewShader(PipelineKey, ShaderSource)
	if err != nil {
		return nil, fmt.Errorf("tile pipeline: %w", err)
	}

	defaults := []pipeline.PipelineBuilderOption{
		pipeline.WithInstanceLayout(InstanceLayout()),
		pipeline.WithLayoutDescriptors(
			pipeline.CameraViewportLayout(),
			pipeline.LightBlockLayout(),
			pipeline.TextureSamplerLayout(wgpu.TextureViewDimension2D),
		),
	}
	return pipeline.NewPipeline(PipelineKey, s, append(defaults, opts...)...), nil
}
