// package renderer owns the WebGPU device, surface, and frame lifecycle for
// the 2D pipelines. The draw model is uniform across pipelines: upload the
// shared camera/viewport and light blocks once per frame, then issue one
// instanced quad draw per batch. Surface reconfiguration happens strictly
// between frames.
package renderer

import (
	"fmt"

	"github.com/lumen2d/lumen/engine/logger"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the top-level rendering interface. One renderer drives one
// window surface.
type Renderer interface {
	// RegisterPipelines creates GPU pipeline objects for the given pipelines
	// and caches them by key.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first registration error, if any
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Pipeline looks up a registered pipeline by key.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil if not registered
	Pipeline(key string) pipeline.Pipeline

	// Resize reconfigures the surface for a new drawable size. Must be called
	// between frames, never while a frame is open.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	Resize(width, height int)

	// SetPresentMode sets how frames are delivered to the display. Takes
	// effect at the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// UploadShared writes the frame-global camera, viewport and light blocks.
	// Call once per frame before any draw.
	//
	// Parameters:
	//   - camera: the 144-byte camera block
	//   - viewport: the 32-byte viewport block
	//   - lights: the 3088-byte light block
	UploadShared(camera, viewport, lights []byte)

	// BeginFrame opens the frame's render pass.
	//
	// Returns:
	//   - error: an error if the surface texture cannot be acquired
	BeginFrame() error

	// DrawBatch issues one instanced quad draw for a registered pipeline.
	//
	// Parameters:
	//   - key: the pipeline key
	//   - instances: the packed instance records
	//   - instanceCount: the number of instances
	//   - groups: caller-provided bind groups by group index (textures,
	//     section uniforms); shared groups are bound automatically
	//
	// Returns:
	//   - error: an error if the pipeline is unknown
	DrawBatch(key string, instances []byte, instanceCount uint32, groups map[uint32]*wgpu.BindGroup) error

	// EndFrame closes the render pass and submits the frame.
	EndFrame()

	// Present presents the frame to the display.
	Present()

	// CreateTextureRGBA creates and uploads an RGBA8 texture (optionally an
	// array) and returns its view.
	//
	// Parameters:
	//   - label: debug label
	//   - width, height: texel dimensions
	//   - layers: array layer count (1 for a plain 2D texture)
	//   - pixels: tightly packed RGBA rows, layer-major
	//
	// Returns:
	//   - *wgpu.TextureView: the created view
	//   - error: an error if creation fails
	CreateTextureRGBA(label string, width, height, layers uint32, pixels []byte) (*wgpu.TextureView, error)

	// CreateCoverageTexture creates and uploads a single-channel glyph
	// coverage texture and returns its view.
	//
	// Parameters:
	//   - label: debug label
	//   - width, height: texel dimensions
	//   - pixels: tightly packed coverage rows
	//
	// Returns:
	//   - *wgpu.TextureView: the created view
	//   - error: an error if creation fails
	CreateCoverageTexture(label string, width, height uint32, pixels []byte) (*wgpu.TextureView, error)

	// CreateSampler creates a linear-filtering sampler.
	//
	// Parameters:
	//   - label: debug label
	//
	// Returns:
	//   - *wgpu.Sampler: the created sampler
	//   - error: an error if creation fails
	CreateSampler(label string) (*wgpu.Sampler, error)

	// CreateTextureBindGroup creates a texture + sampler bind group against a
	// registered pipeline's group layout.
	//
	// Parameters:
	//   - key: the pipeline key
	//   - group: the group index
	//   - view: the texture view
	//   - sampler: the sampler
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if the pipeline or group is unknown
	CreateTextureBindGroup(key string, group int, view *wgpu.TextureView, sampler *wgpu.Sampler) (*wgpu.BindGroup, error)

	// CreateUniformBindGroup creates a uniform buffer and a bind group
	// exposing it at binding 0 of the given group. Used for per-batch
	// uniforms such as text sections.
	//
	// Parameters:
	//   - key: the pipeline key
	//   - group: the group index
	//   - size: the uniform size in bytes
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - *wgpu.Buffer: the backing buffer
	//   - error: an error if the pipeline or group is unknown
	CreateUniformBindGroup(key string, group int, size uint64) (*wgpu.BindGroup, *wgpu.Buffer, error)

	// WriteBuffer writes bytes into a buffer created by this renderer.
	//
	// Parameters:
	//   - buf: the target buffer
	//   - offset: the byte offset
	//   - data: the bytes to write
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte)

	// Release frees all GPU resources held by the renderer.
	Release()
}

type renderer struct {
	backend RendererBackend

	pipelines map[string]pipeline.Pipeline

	pendingPresentMode *PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer for a window surface and configures the
// swapchain for the given drawable size.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor (from the window)
//   - width, height: the initial drawable size in pixels
//   - opts: functional options to further configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, opts ...RendererBuilderOption) Renderer {
	r := &renderer{
		pipelines: make(map[string]pipeline.Pipeline),
	}

	cfg := rendererConfig{
		backendType: BackendTypeWGPU,
		sampleCount: MSAA4x,
		clearColor:  [4]float64{0.1, 0.1, 0.1, 1.0},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.backendType {
	case BackendTypeWGPU:
		r.backend = newWGPURendererBackend(surfaceDescriptor, cfg.forceFallbackAdapter, cfg.sampleCount)
	default:
		panic(fmt.Sprintf("renderer: unknown backend type %d", cfg.backendType))
	}

	r.backend.SetClearColor(cfg.clearColor[0], cfg.clearColor[1], cfg.clearColor[2], cfg.clearColor[3])
	if cfg.presentMode != nil {
		r.backend.SetPresentMode(*cfg.presentMode)
	}
	r.backend.ConfigureSurface(width, height)

	return r
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if _, exists := r.pipelines[p.PipelineKey()]; exists {
			logger.Warn("pipeline %q already registered, skipping", p.PipelineKey())
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", p.PipelineKey(), err)
		}
		r.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	return r.pipelines[key]
}

func (r *renderer) Resize(width, height int) {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
		r.pendingPresentMode = nil
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.pendingPresentMode = &mode
}

func (r *renderer) UploadShared(camera, viewport, lights []byte) {
	r.backend.UploadShared(camera, viewport, lights)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawBatch(key string, instances []byte, instanceCount uint32, groups map[uint32]*wgpu.BindGroup) error {
	p, ok := r.pipelines[key]
	if !ok {
		return fmt.Errorf("draw batch: unknown pipeline %q", key)
	}
	return r.backend.DrawInstanced(p, instances, instanceCount, groups)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) CreateTextureRGBA(label string, width, height, layers uint32, pixels []byte) (*wgpu.TextureView, error) {
	return r.backend.CreateTextureRGBA(label, width, height, layers, pixels)
}

func (r *renderer) CreateCoverageTexture(label string, width, height uint32, pixels []byte) (*wgpu.TextureView, error) {
	return r.backend.CreateCoverageTexture(label, width, height, pixels)
}

func (r *renderer) CreateSampler(label string) (*wgpu.Sampler, error) {
	return r.backend.CreateSampler(label)
}

func (r *renderer) CreateTextureBindGroup(key string, group int, view *wgpu.TextureView, sampler *wgpu.Sampler) (*wgpu.BindGroup, error) {
	p, ok := r.pipelines[key]
	if !ok {
		return nil, fmt.Errorf("unknown pipeline %q", key)
	}
	return r.backend.CreateTextureBindGroup(p, group, view, sampler)
}

func (r *renderer) CreateUniformBindGroup(key string, group int, size uint64) (*wgpu.BindGroup, *wgpu.Buffer, error) {
	p, ok := r.pipelines[key]
	if !ok {
		return nil, nil, fmt.Errorf("unknown pipeline %q", key)
	}
	return r.backend.CreateUniformBindGroup(p, group, size)
}

func (r *renderer) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	r.backend.WriteBuffer(buf, offset, data)
}

func (r *renderer) Release() {
	r.backend.Release()
}
