package renderer

// RendererBackendType selects the GPU API implementation behind the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU is the WebGPU backend. Currently the only backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how finished frames reach the display surface.
type PresentMode int

const (
	// PresentModeVSync presents on the next vertical blank. Frame rate is
	// capped to the monitor refresh; no tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Lowest latency, may tear.
	PresentModeUncapped
)

// MSAASampleCount is the multisample anti-aliasing sample count. WebGPU
// guarantees 1 and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	// MSAAOff renders without multisampling.
	MSAAOff MSAASampleCount = 1

	// MSAA4x is the default sample count, supported everywhere.
	MSAA4x MSAASampleCount = 4

	// MSAA8x is adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x is adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// RendererBackend is the backend interface the Renderer drives. It embeds the
// concrete interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
