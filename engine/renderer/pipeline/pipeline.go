// package pipeline holds the render pipeline abstraction shared by the five
// draw pipelines (sprite, tile, text, ui-absolute, ui-relative). Each draw
// pipeline package declares its instance layout and shader; this package owns
// the common configuration surface (blend, cull, depth, topology) and the
// created wgpu objects.
package pipeline

import (
	"github.com/lumen2d/lumen/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	shader shader.Shader

	// instanceLayout describes the per-instance vertex buffer all five draw
	// pipelines feed; the unit-quad corners are generated in the vertex stage
	// so there is no per-vertex buffer.
	instanceLayout []wgpu.VertexBufferLayout

	// layoutDescriptors, in group order, declare the pipeline's bind group
	// contract; the renderer creates the layouts from these at registration.
	layoutDescriptors []wgpu.BindGroupLayoutDescriptor

	// bindGroupLayouts, in group order, used for pipeline layout creation.
	bindGroupLayouts []*wgpu.BindGroupLayout

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a configured render pipeline: its shader
// module, instance-vertex layout and fixed-function state, plus the created
// wgpu.RenderPipeline once the renderer has built it.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader module for this pipeline.
	//
	// Returns:
	//   - shader.Shader: the shader, holding both vertex and fragment stages
	Shader() shader.Shader

	// InstanceLayout returns the per-instance vertex buffer layouts.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the instance buffer layouts
	InstanceLayout() []wgpu.VertexBufferLayout

	// LayoutDescriptors returns the bind group layout descriptors in group
	// order, as declared by the pipeline package.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the layout descriptors
	LayoutDescriptors() []wgpu.BindGroupLayoutDescriptor

	// BindGroupLayouts returns the bind group layouts in group order.
	//
	// Returns:
	//   - []*wgpu.BindGroupLayout: the layouts used for pipeline layout creation
	BindGroupLayouts() []*wgpu.BindGroupLayout

	// Pipeline returns the underlying render pipeline, or nil before the
	// renderer has created it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created pipeline object
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, or nil if blending is disabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the created render pipeline object.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// SetBindGroupLayouts stores the created bind group layouts in group order.
	//
	// Parameters:
	//   - layouts: the bind group layouts
	SetBindGroupLayouts(layouts []*wgpu.BindGroupLayout)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline configuration. Quad pipelines default
// to a 4-vertex triangle strip with alpha blending enabled and depth disabled,
// matching how the 2D pipelines composite back to front.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader module for both stages
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		depthTestEnabled:  false,
		depthWriteEnabled: false,
		blendEnabled:      true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleStrip,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) InstanceLayout() []wgpu.VertexBufferLayout {
	return p.instanceLayout
}

func (p *pipeline) LayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	return p.layoutDescriptors
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) SetBindGroupLayouts(layouts []*wgpu.BindGroupLayout) {
	p.bindGroupLayouts = layouts
}
