package renderer

// rendererConfig holds construction-time settings collected by the builder
// options before the backend is created.
type rendererConfig struct {
	backendType          RendererBackendType
	presentMode          *PresentMode
	sampleCount          MSAASampleCount
	clearColor           [4]float64
	forceFallbackAdapter bool
}

// RendererBuilderOption is a functional option for configuring a Renderer.
// Use the With* functions to create options.
type RendererBuilderOption func(*rendererConfig)

// WithBackendType selects the GPU backend implementation.
//
// Parameters:
//   - t: the backend type
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithBackendType(t RendererBackendType) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.backendType = t
	}
}

// WithPresentMode sets the initial surface present mode.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.presentMode = &mode
	}
}

// WithMSAA sets the multisample count. Defaults to MSAA4x.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.sampleCount = count
	}
}

// WithClearColor sets the render pass clear color.
//
// Parameters:
//   - r, g, b, a: the clear color components in [0,1]
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithClearColor(r, g, b, a float64) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.clearColor = [4]float64{r, g, b, a}
	}
}

// WithForceFallbackAdapter forces the software fallback adapter, useful in
// headless environments.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.forceFallbackAdapter = force
	}
}
