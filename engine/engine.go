package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/lumen2d/lumen/engine/logger"
	"github.com/lumen2d/lumen/engine/profiler"
	"github.com/lumen2d/lumen/engine/renderer"
	"github.com/lumen2d/lumen/engine/scene"
	"github.com/lumen2d/lumen/engine/sprite"
	"github.com/lumen2d/lumen/engine/text"
	"github.com/lumen2d/lumen/engine/tile"
	"github.com/lumen2d/lumen/engine/ui"
	"github.com/lumen2d/lumen/engine/window"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextSlot is one per-section uniform binding for the text pipeline. Each
// concurrently drawn text section needs its own slot, because writes to a
// shared uniform buffer would all land before the frame's draws execute.
type TextSlot struct {
	// Group is the section uniform bind group (text pipeline group 1).
	Group *wgpu.BindGroup

	// Buffer is the backing uniform buffer the engine writes each frame.
	Buffer *wgpu.Buffer
}

// SceneBindings holds the texture and uniform bind groups a scene's batches
// draw with. The engine binds shared camera and light groups automatically;
// everything here is per-scene content.
type SceneBindings struct {
	// SpriteAtlas is the sprite sheet array texture (sprite pipeline group 2).
	SpriteAtlas *wgpu.BindGroup

	// TileAtlas is the tile atlas texture (tile pipeline group 2).
	TileAtlas *wgpu.BindGroup

	// PanelTexture is the absolute panel texture (ui pipeline group 1).
	PanelTexture *wgpu.BindGroup

	// RelativeTexture is the relative panel texture (ui pipeline group 1).
	RelativeTexture *wgpu.BindGroup

	// FontTexture is the glyph coverage texture (text pipeline group 2).
	FontTexture *wgpu.BindGroup

	// TextSlots provides one section uniform per concurrently drawn text
	// section, matched to sections by index.
	TextSlots []TextSlot
}

// engine implements the Engine interface.
// Coordinates tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes   map[int]scene.Scene
	bindings map[int]SceneBindings

	// Surface changes land here from window callbacks and are applied by the
	// render loop strictly between frames.
	surfaceMu     sync.Mutex
	pendingWidth  int
	pendingHeight int
	pendingResize bool
	pendingScale  float32

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer driving the window surface.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic, input processing, and animation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// SetSceneBindings installs the texture and uniform bind groups the scene
	// at the given key draws with.
	//
	// Parameters:
	//   - key: the scene's z-index key
	//   - b: the bindings to install
	SetSceneBindings(key int, b SceneBindings)

	// Run starts the main engine loop (blocks until window closes).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// If a window is provided but no renderer, a default renderer is created for
// the window's surface. Window resize and DPI-change events are queued and
// applied by the render loop between frames.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, scenes, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		bindings:         make(map[int]SceneBindings),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		if e.renderer == nil {
			e.renderer = renderer.NewRenderer(e.window.SurfaceDescriptor(), e.window.Width(), e.window.Height())
		}

		e.window.SetResizeCallback(func(width, height int) {
			e.surfaceMu.Lock()
			e.pendingWidth = width
			e.pendingHeight = height
			e.pendingResize = true
			e.surfaceMu.Unlock()
		})
		e.window.SetContentScaleCallback(func(scale float32) {
			e.surfaceMu.Lock()
			e.pendingScale = scale
			e.surfaceMu.Unlock()
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleTick()
	go e.handleRender()
	go e.handleQuit()
}

// handleTick runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic
// rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own
// goroutine. Each iteration applies queued surface changes, composes the
// active scenes in ascending z-index order, and executes the frame lifecycle:
// UploadShared once, BeginFrame, one instanced draw per batch, EndFrame,
// Present. Recovers from panics to avoid crashing the process and signals
// quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.applySurfaceChanges()
			e.renderScenes()

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// applySurfaceChanges drains queued resize and DPI-change events and applies
// them to the renderer and scenes. Runs with no frame open, so the swapchain
// and scene viewports change atomically from the GPU's point of view.
func (e *engine) applySurfaceChanges() {
	e.surfaceMu.Lock()
	resize := e.pendingResize
	width, height := e.pendingWidth, e.pendingHeight
	scale := e.pendingScale
	e.pendingResize = false
	e.pendingScale = 0
	e.surfaceMu.Unlock()

	if resize && width > 0 && height > 0 {
		e.renderer.Resize(width, height)
		for _, s := range e.scenes {
			if c := s.Camera(); c != nil {
				v := c.Viewport()
				v.Width = float32(width)
				v.Height = float32(height)
				if err := s.SetViewport(v); err != nil {
					logger.Error("scene %q: apply resize: %v", s.Name(), err)
				}
			}
		}
	}

	if scale > 0 {
		for _, s := range e.scenes {
			if err := s.SetScaleFactor(scale); err != nil {
				logger.Error("scene %q: apply content scale: %v", s.Name(), err)
			}
		}
	}
}

// renderScenes composes and draws all active scenes for one frame. Layered
// scenes share the frame's camera, viewport, and light blocks, which come
// from the lowest z-index active scene.
func (e *engine) renderScenes() {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	type composed struct {
		key   int
		scene scene.Scene
		frame *scene.Frame
	}
	var frames []composed
	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}
		f, err := s.ComposeFrame()
		if err != nil {
			logger.Error("scene %q: compose frame: %v", s.Name(), err)
			continue
		}
		frames = append(frames, composed{key: k, scene: s, frame: f})
	}

	if len(frames) == 0 {
		return
	}

	base := frames[0].frame
	e.renderer.UploadShared(base.Camera, base.Viewport, base.Lights)

	if err := e.renderer.BeginFrame(); err != nil {
		logger.Error("begin frame: %v", err)
		return
	}

	for _, c := range frames {
		e.drawFrame(c.scene.Name(), c.frame, e.bindings[c.key])
	}

	e.renderer.EndFrame()
	e.renderer.Present()
}

// drawFrame issues the per-batch draws for one composed scene frame. Batches
// with no content are skipped; batches whose bind groups are missing are
// skipped with a warning so a half-configured scene degrades instead of
// erroring every frame.
func (e *engine) drawFrame(name string, f *scene.Frame, b SceneBindings) {
	draw := func(key string, instances []byte, count int, groups map[uint32]*wgpu.BindGroup) {
		if count == 0 {
			return
		}
		for _, g := range groups {
			if g == nil {
				logger.Warn("scene %q: pipeline %q has no bindings installed, skipping batch", name, key)
				return
			}
		}
		if err := e.renderer.DrawBatch(key, instances, uint32(count), groups); err != nil {
			logger.Error("scene %q: draw %q: %v", name, key, err)
		}
	}

	draw(sprite.PipelineKey, f.Sprites, f.SpriteCount, map[uint32]*wgpu.BindGroup{2: b.SpriteAtlas})
	draw(tile.PipelineKey, f.Tiles, f.TileCount, map[uint32]*wgpu.BindGroup{2: b.TileAtlas})

	for i, tb := range f.Text {
		if i >= len(b.TextSlots) {
			logger.Warn("scene %q: %d text sections but only %d uniform slots, dropping the rest", name, len(f.Text), len(b.TextSlots))
			break
		}
		slot := b.TextSlots[i]
		if slot.Group == nil || slot.Buffer == nil || b.FontTexture == nil {
			logger.Warn("scene %q: text slot %d not fully bound, skipping section", name, i)
			continue
		}
		e.renderer.WriteBuffer(slot.Buffer, 0, tb.Section)
		draw(text.PipelineKey, tb.Glyphs, tb.GlyphCount, map[uint32]*wgpu.BindGroup{1: slot.Group, 2: b.FontTexture})
	}

	// UI draws last so panels composite over world content.
	draw(ui.AbsolutePipelineKey, f.Panels, f.PanelCount, map[uint32]*wgpu.BindGroup{1: b.PanelTexture})
	draw(ui.RelativePipelineKey, f.RelativePanels, f.RelativePanelCount, map[uint32]*wgpu.BindGroup{1: b.RelativeTexture})
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called after each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
	delete(e.bindings, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) SetSceneBindings(key int, b SceneBindings) {
	e.bindings[key] = b
}
