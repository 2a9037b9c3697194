package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"

	"github.com/cogentcore/webgpu/wgpu"
)

// sharedBlockSizes for the frame-global uniform buffers.
const (
	cameraBlockSize   = 144
	viewportBlockSize = 32
	lightBlockSize    = 3088
)

// wgpuRendererBackend is the WebGPU implementation surface of the renderer.
type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and rebuilds the MSAA and
	// depth attachments. Must only be called between frames.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect at the next
	// ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the render pass clear color.
	//
	// Parameters:
	//   - r, g, b, a: the clear color components in [0,1]
	SetClearColor(r, g, b, a float64)

	// RegisterRenderPipeline creates the GPU pipeline object for a configured
	// pipeline: bind group layouts from the pipeline's layout descriptors, the
	// pipeline layout, and the render pipeline itself. Groups whose layout
	// label names a shared frame block are bound automatically on every draw.
	//
	// Parameters:
	//   - p: the pipeline to register
	//
	// Returns:
	//   - error: an error if any GPU object fails to create
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// UploadShared writes the camera, viewport, and light blocks for this
	// frame. Call once per frame, before the draw calls.
	//
	// Parameters:
	//   - camera: the 144-byte camera block
	//   - viewport: the 32-byte viewport block
	//   - lights: the 3088-byte light block
	UploadShared(camera, viewport, lights []byte)

	// BeginFrame acquires the swapchain texture and opens the render pass.
	//
	// Returns:
	//   - error: an error if the surface texture cannot be acquired
	BeginFrame() error

	// DrawInstanced uploads one marshaled instance batch and issues an
	// instanced quad draw with the given pipeline. Shared groups are bound
	// automatically; the caller provides the rest by group index.
	//
	// Parameters:
	//   - p: the registered pipeline to draw with
	//   - instances: the packed instance records
	//   - instanceCount: the number of instances
	//   - groups: caller-provided bind groups by group index
	//
	// Returns:
	//   - error: an error if the pipeline was never registered
	DrawInstanced(p pipeline.Pipeline, instances []byte, instanceCount uint32, groups map[uint32]*wgpu.BindGroup) error

	// EndFrame closes the render pass and submits the frame's commands.
	// Does not present the surface — call Present() after EndFrame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain
	// texture.
	Present()

	// WriteBuffer writes data into a GPU buffer at the given offset.
	//
	// Parameters:
	//   - buf: the target buffer
	//   - offset: the byte offset
	//   - data: the bytes to write
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte)

	// CreateTextureRGBA creates and uploads an RGBA8 texture with one or more
	// array layers and returns its view.
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

	// CreateCoverageTexture creates and uploads a single-channel coverage
	// texture (glyph atlases) and returns its view.
	//
	// Parameters:
	//   - label: debug label
	//   - width, height: texel dimensions
	//   - pixels: tightly packed single-byte coverage rows
	//
	// Returns:
	//   - *wgpu.TextureView: the created view
	//   - error: an error if creation fails
	CreateCoverageTexture(label string, width, height uint32, pixels []byte) (*wgpu.TextureView, error)

	// CreateSampler creates a linear-filtering repeat sampler.
	//
	// Parameters:
	//   - label: debug label
	//
	// Returns:
	//   - *wgpu.Sampler: the created sampler
	//   - error: an error if creation fails
	CreateSampler(label string) (*wgpu.Sampler, error)

	// CreateTextureBindGroup creates a bind group for a registered pipeline's
	// texture + sampler group.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - group: the group index
	//   - view: the texture view for binding 0
	//   - sampler: the sampler for binding 1
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if the group index has no layout
	CreateTextureBindGroup(p pipeline.Pipeline, group int, view *wgpu.TextureView, sampler *wgpu.Sampler) (*wgpu.BindGroup, error)

	// CreateUniformBindGroup creates a uniform buffer of the given size plus a
	// bind group exposing it at binding 0 of the given group.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - group: the group index
	//   - size: the uniform size in bytes
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - *wgpu.Buffer: the backing buffer, written via WriteBuffer
	//   - error: an error if creation fails
	CreateUniformBindGroup(p pipeline.Pipeline, group int, size uint64) (*wgpu.BindGroup, *wgpu.Buffer, error)

	// Release frees the backend's GPU resources.
	Release()
}

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	sampleCount   MSAASampleCount
	clearColor    wgpu.Color

	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Shared frame-global uniform buffers, written once per frame.
	cameraBuffer   *wgpu.Buffer
	viewportBuffer *wgpu.Buffer
	lightBuffer    *wgpu.Buffer

	// autoBindGroups holds, per pipeline key, the bind groups backed by the
	// shared frame buffers, keyed by group index.
	autoBindGroups map[string]map[uint32]*wgpu.BindGroup

	// instanceBuffers holds growable per-pipeline vertex buffers. A cursor per
	// key, reset each frame, lets one pipeline draw several batches per frame
	// (text sections) without clobbering earlier writes.
	instanceBuffers map[string][]*wgpu.Buffer
	instanceCaps    map[string][]uint64
	bufferCursor    map[string]int
}

var _ wgpuRendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:              &sync.Mutex{},
		instance:        wgpu.CreateInstance(nil),
		presentMode:     wgpu.PresentModeImmediate,
		sampleCount:     sampleCount,
		clearColor:      wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		autoBindGroups:  make(map[string]map[uint32]*wgpu.BindGroup),
		instanceBuffers: make(map[string][]*wgpu.Buffer),
		instanceCaps:    make(map[string][]uint64),
		bufferCursor:    make(map[string]int),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	w.createSharedBuffers()

	return w
}

// createSharedBuffers allocates the camera, viewport and light uniform
// buffers. They live for the backend's lifetime and are rewritten each frame.
func (b *wgpuRendererBackendImpl) createSharedBuffers() {
	mk := func(label string, size uint64) *wgpu.Buffer {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			panic(fmt.Sprintf("renderer: failed to create %s buffer: %v", label, err))
		}
		return buf
	}
	b.cameraBuffer = mk("Camera Block", cameraBlockSize)
	b.viewportBuffer = mk("Viewport Block", viewportBlockSize)
	b.lightBuffer = mk("Light Block", lightBlockSize)
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		b.msaaTextureView = nil
	}

	// Depth texture sample count must match the color attachment. The 2D
	// pipelines leave the depth test off but the attachment is always present
	// so a depth-enabled pipeline can be mixed in.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue:    b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(r, g, blue, a float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = wgpu.Color{R: r, G: g, B: blue, A: a}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering pipelines")
	}
	if p.Shader() == nil {
		return errors.New("pipeline has no shader")
	}

	module, err := b.device.CreateShaderModule(p.Shader().Module())
	if err != nil {
		return fmt.Errorf("failed to create shader module %q: %w", p.Shader().Key(), err)
	}

	descriptors := p.LayoutDescriptors()
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	autoGroups := make(map[uint32]*wgpu.BindGroup)
	for g := range descriptors {
		layout, layoutErr := b.device.CreateBindGroupLayout(&descriptors[g])
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout

		// Shared frame blocks are bound automatically on every draw; the
		// layout label says which block a group wants.
		switch descriptors[g].Label {
		case pipeline.LayoutLabelCameraViewport:
			bg, bgErr := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
				Label:  p.PipelineKey() + " camera bind group",
				Layout: layout,
				Entries: []wgpu.BindGroupEntry{
					{Binding: 0, Buffer: b.cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
					{Binding: 1, Buffer: b.viewportBuffer, Offset: 0, Size: wgpu.WholeSize},
				},
			})
			if bgErr != nil {
				return fmt.Errorf("failed to create camera bind group: %w", bgErr)
			}
			autoGroups[uint32(g)] = bg
		case pipeline.LayoutLabelLightBlock:
			bg, bgErr := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
				Label:  p.PipelineKey() + " light bind group",
				Layout: layout,
				Entries: []wgpu.BindGroupEntry{
					{Binding: 0, Buffer: b.lightBuffer, Offset: 0, Size: wgpu.WholeSize},
				},
			})
			if bgErr != nil {
				return fmt.Errorf("failed to create light bind group: %w", bgErr)
			}
			autoGroups[uint32(g)] = bg
		}
	}
	p.SetBindGroupLayouts(bindGroupLayouts)
	b.autoBindGroups[p.PipelineKey()] = autoGroups

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.Shader().VertexEntryPoint(),
			Buffers:    p.InstanceLayout(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.Shader().FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				func() wgpu.ColorTargetState {
					state := wgpu.ColorTargetState{
						Format:    *b.surfaceFormat,
						WriteMask: p.WriteMask(),
					}
					if p.BlendEnabled() {
						state.Blend = p.BlendState()
					}
					return state
				}(),
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)

	return nil
}

func (b *wgpuRendererBackendImpl) UploadShared(camera, viewport, lights []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(b.cameraBuffer, 0, camera)
	b.queue.WriteBuffer(b.viewportBuffer, 0, viewport)
	b.queue.WriteBuffer(b.lightBuffer, 0, lights)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If a previous frame's surface texture is still held, avoid acquiring
	// another one; wgpu-native rejects overlapping acquisitions.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	for key := range b.bufferCursor {
		b.bufferCursor[key] = 0
	}

	return nil
}

// nextInstanceBuffer returns a vertex buffer for the pipeline's next batch
// this frame, growing or creating one as needed.
func (b *wgpuRendererBackendImpl) nextInstanceBuffer(key string, size uint64) (*wgpu.Buffer, error) {
	cursor := b.bufferCursor[key]
	bufs := b.instanceBuffers[key]
	caps := b.instanceCaps[key]

	if cursor < len(bufs) && caps[cursor] >= size {
		b.bufferCursor[key] = cursor + 1
		return bufs[cursor], nil
	}

	// Grow with headroom so steady-state batch growth settles quickly.
	capacity := max(size*2, 4096)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Instance Buffer",
		Size:  capacity,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance buffer for %q: %w", key, err)
	}
	if cursor < len(bufs) {
		bufs[cursor].Release()
		bufs[cursor] = buf
		caps[cursor] = capacity
	} else {
		bufs = append(bufs, buf)
		caps = append(caps, capacity)
	}
	b.instanceBuffers[key] = bufs
	b.instanceCaps[key] = caps
	b.bufferCursor[key] = cursor + 1
	return buf, nil
}

func (b *wgpuRendererBackendImpl) DrawInstanced(p pipeline.Pipeline, instances []byte, instanceCount uint32, groups map[uint32]*wgpu.BindGroup) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if instanceCount == 0 {
		return nil
	}
	renderPipeline := p.Pipeline()
	if renderPipeline == nil {
		return fmt.Errorf("pipeline %q was never registered", p.PipelineKey())
	}

	buf, err := b.nextInstanceBuffer(p.PipelineKey(), uint64(len(instances)))
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, instances)

	b.framePass.SetPipeline(renderPipeline)
	for g, bg := range b.autoBindGroups[p.PipelineKey()] {
		b.framePass.SetBindGroup(g, bg, nil)
	}
	for g, bg := range groups {
		b.framePass.SetBindGroup(g, bg, nil)
	}
	b.framePass.SetVertexBuffer(0, buf, 0, wgpu.WholeSize)
	// Unit-quad corners are generated in the vertex stage from the vertex
	// index; four strip vertices per instance.
	b.framePass.Draw(4, instanceCount, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()
	b.frameView.Release()
	b.frameSurface.Release()
	b.frameView = nil
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(buf, offset, data)
}

func (b *wgpuRendererBackendImpl) CreateTextureRGBA(label string, width, height, layers uint32, pixels []byte) (*wgpu.TextureView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if layers == 0 {
		layers = 1
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label,
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: layers,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: layers,
		},
	)

	viewDimension := wgpu.TextureViewDimension2D
	if layers > 1 {
		viewDimension = wgpu.TextureViewDimension2DArray
	}
	return tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           label + " View",
		Format:          wgpu.TextureFormatRGBA8UnormSrgb,
		Dimension:       viewDimension,
		MipLevelCount:   1,
		ArrayLayerCount: layers,
		Aspect:          wgpu.TextureAspectAll,
	})
}

func (b *wgpuRendererBackendImpl) CreateCoverageTexture(label string, width, height uint32, pixels []byte) (*wgpu.TextureView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label,
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatR8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)

	return tex.CreateView(nil)
}

func (b *wgpuRendererBackendImpl) CreateSampler(label string) (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         common.Coalesce(label, "linear_sampler"),
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
}

func (b *wgpuRendererBackendImpl) CreateTextureBindGroup(p pipeline.Pipeline, group int, view *wgpu.TextureView, sampler *wgpu.Sampler) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	layouts := p.BindGroupLayouts()
	if group < 0 || group >= len(layouts) || layouts[group] == nil {
		return nil, fmt.Errorf("pipeline %q has no layout for group %d", p.PipelineKey(), group)
	}
	return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  fmt.Sprintf("%s texture bind group %d", p.PipelineKey(), group),
		Layout: layouts[group],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
		},
	})
}

func (b *wgpuRendererBackendImpl) CreateUniformBindGroup(p pipeline.Pipeline, group int, size uint64) (*wgpu.BindGroup, *wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	layouts := p.BindGroupLayouts()
	if group < 0 || group >= len(layouts) || layouts[group] == nil {
		return nil, nil, fmt.Errorf("pipeline %q has no layout for group %d", p.PipelineKey(), group)
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s uniform %d", p.PipelineKey(), group),
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, nil, err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  fmt.Sprintf("%s uniform bind group %d", p.PipelineKey(), group),
		Layout: layouts[group],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return bg, buf, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, bufs := range b.instanceBuffers {
		for _, buf := range bufs {
			buf.Release()
		}
	}
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
	}
	if b.viewportBuffer != nil {
		b.viewportBuffer.Release()
	}
	if b.lightBuffer != nil {
		b.lightBuffer.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
