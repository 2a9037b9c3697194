// package scene implements the composer that owns everything the renderer
// draws: the camera and viewport block, the light arena, and the per-pipeline
// instance collections. All contract checks happen here, before any bytes are
// marshaled; the arithmetic layers below assume validated input.
//
// Concurrency model: single writer before the frame, many readers during it.
// Mutations take the write lock; ComposeFrame takes the read lock and marshals
// every batch on the worker pool into one immutable Frame.
package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/camera"
	"github.com/lumen2d/lumen/engine/layout"
	"github.com/lumen2d/lumen/engine/light"
	"github.com/lumen2d/lumen/engine/logger"
	"github.com/lumen2d/lumen/engine/sprite"
	"github.com/lumen2d/lumen/engine/text"
	"github.com/lumen2d/lumen/engine/tile"
	"github.com/lumen2d/lumen/engine/transform"
	"github.com/lumen2d/lumen/engine/ui"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/google/uuid"
)

// TextSection groups the glyphs drawn inside one anchored panel. The section's
// anchor, margin, transform and tint become the pipeline's section uniform;
// the glyphs become its instance batch.
type TextSection struct {
	Anchor    layout.Anchor
	Margin    layout.Margin
	Transform transform.Transform
	Color     [4]float32
	Glyphs    []text.Instance
}

// TextBatch is one marshaled section: the 112-byte uniform plus the packed
// glyph instances.
type TextBatch struct {
	Section    []byte
	Glyphs     []byte
	GlyphCount int
}

// Frame is one composed frame, ready for upload. The shared blocks appear
// exactly once; batch buffers are packed in insertion order.
type Frame struct {
	Camera   []byte
	Viewport []byte
	Lights   []byte

	Sprites     []byte
	SpriteCount int

	Tiles     []byte
	TileCount int

	Panels     []byte
	PanelCount int

	RelativePanels     []byte
	RelativePanelCount int

	Text []TextBatch
}

// Scene composes CPU-side state into per-frame GPU batches. It is the only
// layer that validates the render contract; everything it hands out has
// already passed Validate.
type Scene interface {
	// ID returns the scene's handle.
	ID() uuid.UUID

	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently composed each frame.
	Active() bool

	// SetActive sets whether this scene is composed each frame.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// SetViewport replaces the camera's viewport between frames.
	//
	// Parameters:
	//   - v: the new viewport
	//
	// Returns:
	//   - error: an error if the viewport has non-positive dimensions
	SetViewport(v common.Viewport) error

	// SetScaleFactor replaces the DPI scale factor between frames.
	//
	// Parameters:
	//   - f: the new scale factor
	//
	// Returns:
	//   - error: an error if the factor is not positive
	SetScaleFactor(f float32) error

	// AddLight registers a point light.
	//
	// Parameters:
	//   - l: the light to add
	//
	// Returns:
	//   - uuid.UUID: the light's handle
	//   - error: an error if the light's constant term is not positive
	AddLight(l light.PointLight) (uuid.UUID, error)

	// RemoveLight removes a light by handle. Unknown handles are ignored.
	//
	// Parameters:
	//   - id: the light's handle
	RemoveLight(id uuid.UUID)

	// Lights returns the registered lights in insertion order.
	//
	// Returns:
	//   - []light.PointLight: a copy of the light list
	Lights() []light.PointLight

	// AddSprite registers a sprite instance.
	//
	// Parameters:
	//   - inst: the instance
	//
	// Returns:
	//   - uuid.UUID: the sprite's handle
	AddSprite(inst sprite.Instance) uuid.UUID

	// SetSprite replaces a sprite instance by handle.
	//
	// Parameters:
	//   - id: the sprite's handle
	//   - inst: the new instance
	//
	// Returns:
	//   - error: an error if the handle is unknown
	SetSprite(id uuid.UUID, inst sprite.Instance) error

	// RemoveSprite removes a sprite by handle. Unknown handles are ignored.
	//
	// Parameters:
	//   - id: the sprite's handle
	RemoveSprite(id uuid.UUID)

	// AddTile registers a tile instance.
	//
	// Parameters:
	//   - inst: the instance
	//
	// Returns:
	//   - uuid.UUID: the tile's handle
	AddTile(inst tile.Instance) uuid.UUID

	// SetTile replaces a tile instance by handle.
	//
	// Parameters:
	//   - id: the tile's handle
	//   - inst: the new instance
	//
	// Returns:
	//   - error: an error if the handle is unknown
	SetTile(id uuid.UUID, inst tile.Instance) error

	// RemoveTile removes a tile by handle. Unknown handles are ignored.
	//
	// Parameters:
	//   - id: the tile's handle
	RemoveTile(id uuid.UUID)

	// AddPanel registers a viewport-anchored panel instance.
	//
	// Parameters:
	//   - inst: the instance
	//
	// Returns:
	//   - uuid.UUID: the panel's handle
	AddPanel(inst ui.Instance) uuid.UUID

	// SetPanel replaces a panel instance by handle.
	//
	// Parameters:
	//   - id: the panel's handle
	//   - inst: the new instance
	//
	// Returns:
	//   - error: an error if the handle is unknown
	SetPanel(id uuid.UUID, inst ui.Instance) error

	// RemovePanel removes a panel by handle. Unknown handles are ignored.
	//
	// Parameters:
	//   - id: the panel's handle
	RemovePanel(id uuid.UUID)

	// AddRelativePanel registers a parent-relative panel instance.
	//
	// Parameters:
	//   - inst: the instance
	//
	// Returns:
	//   - uuid.UUID: the panel's handle
	AddRelativePanel(inst ui.RelativeInstance) uuid.UUID

	// SetRelativePanel replaces a relative panel instance by handle.
	//
	// Parameters:
	//   - id: the panel's handle
	//   - inst: the new instance
	//
	// Returns:
	//   - error: an error if the handle is unknown
	SetRelativePanel(id uuid.UUID, inst ui.RelativeInstance) error

	// RemoveRelativePanel removes a relative panel by handle. Unknown handles
	// are ignored.
	//
	// Parameters:
	//   - id: the panel's handle
	RemoveRelativePanel(id uuid.UUID)

	// AddTextSection registers a text section with its glyphs.
	//
	// Parameters:
	//   - section: the section to add
	//
	// Returns:
	//   - uuid.UUID: the section's handle
	AddTextSection(section TextSection) uuid.UUID

	// SetTextSection replaces a text section by handle.
	//
	// Parameters:
	//   - id: the section's handle
	//   - section: the new section
	//
	// Returns:
	//   - error: an error if the handle is unknown
	SetTextSection(id uuid.UUID, section TextSection) error

	// RemoveTextSection removes a text section by handle. Unknown handles are
	// ignored.
	//
	// Parameters:
	//   - id: the section's handle
	RemoveTextSection(id uuid.UUID)

	// Validate checks the render contract: positive viewport dimensions,
	// positive scale factor and positive light constants. Over-capacity light
	// counts are not an error; they truncate by priority at compose time.
	//
	// Returns:
	//   - error: the first contract violation found, or nil
	Validate() error

	// ComposeFrame validates the scene and marshals every shared block and
	// instance batch into one Frame. Batches are marshaled concurrently on the
	// scene's worker pool; the returned Frame is immutable.
	//
	// Returns:
	//   - *Frame: the composed frame
	//   - error: an error if validation fails
	ComposeFrame() (*Frame, error)
}

type entry[T any] struct {
	id   uuid.UUID
	item T
}

// arena is an insertion-ordered collection addressed by handle. Removal keeps
// order, matching how batches must stay stable across frames.
type arena[T any] struct {
	entries []entry[T]
	index   map[uuid.UUID]int
}

func newArena[T any]() *arena[T] {
	return &arena[T]{index: make(map[uuid.UUID]int)}
}

func (a *arena[T]) add(item T) uuid.UUID {
	id := uuid.New()
	a.index[id] = len(a.entries)
	a.entries = append(a.entries, entry[T]{id: id, item: item})
	return id
}

func (a *arena[T]) set(id uuid.UUID, item T) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	a.entries[i].item = item
	return true
}

func (a *arena[T]) remove(id uuid.UUID) {
	i, ok := a.index[id]
	if !ok {
		return
	}
	delete(a.index, id)
	a.entries = append(a.entries[:i], a.entries[i+1:]...)
	for j := i; j < len(a.entries); j++ {
		a.index[a.entries[j].id] = j
	}
}

func (a *arena[T]) items() []T {
	out := make([]T, len(a.entries))
	for i := range a.entries {
		out[i] = a.entries[i].item
	}
	return out
}

type scene struct {
	mu *sync.RWMutex

	id     uuid.UUID
	name   string
	active bool

	cam camera.Camera

	lights *arena[light.PointLight]

	sprites        *arena[sprite.Instance]
	tiles          *arena[tile.Instance]
	panels         *arena[ui.Instance]
	relativePanels *arena[ui.RelativeInstance]
	sections       *arena[TextSection]

	// marshalPool manages a bounded set of reusable goroutines for the batch
	// marshal phase of ComposeFrame. Workers persist across frames.
	marshalPool    worker.DynamicWorkerPool
	marshalWorkers int
}

var _ Scene = &scene{}

// NewScene creates a scene composer around a camera. The camera is required
// and NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		id:             uuid.New(),
		name:           name,
		active:         false,
		cam:            cam,
		lights:         newArena[light.PointLight](),
		sprites:        newArena[sprite.Instance](),
		tiles:          newArena[tile.Instance](),
		panels:         newArena[ui.Instance](),
		relativePanels: newArena[ui.RelativeInstance](),
		sections:       newArena[TextSection](),
		marshalWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithMarshalWorkers can override the
	// default. Queue size of 64 covers the fixed batch kinds plus one task per
	// text section with headroom.
	s.marshalPool = worker.NewDynamicWorkerPool(s.marshalWorkers, 64, 1*time.Second)

	return s
}

func (s *scene) ID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) SetViewport(v common.Viewport) error {
	if !v.Valid() {
		return fmt.Errorf("scene %q: viewport dimensions must be positive, got %gx%g", s.Name(), v.Width, v.Height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam.SetViewport(v)
	return nil
}

func (s *scene) SetScaleFactor(f float32) error {
	if f <= 0 {
		return fmt.Errorf("scene %q: scale factor must be positive, got %g", s.Name(), f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam.SetScaleFactor(f)
	return nil
}

func (s *scene) AddLight(l light.PointLight) (uuid.UUID, error) {
	if l.Constant() <= 0 {
		return uuid.Nil, fmt.Errorf("scene %q: light constant attenuation must be positive, got %g", s.Name(), l.Constant())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lights.add(l), nil
}

func (s *scene) RemoveLight(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights.remove(id)
}

func (s *scene) Lights() []light.PointLight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights.items()
}

func (s *scene) AddSprite(inst sprite.Instance) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sprites.add(inst)
}

func (s *scene) SetSprite(id uuid.UUID, inst sprite.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sprites.set(id, inst) {
		return fmt.Errorf("scene %q: unknown sprite %s", s.name, id)
	}
	return nil
}

func (s *scene) RemoveSprite(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sprites.remove(id)
}

func (s *scene) AddTile(inst tile.Instance) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tiles.add(inst)
}

func (s *scene) SetTile(id uuid.UUID, inst tile.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tiles.set(id, inst) {
		return fmt.Errorf("scene %q: unknown tile %s", s.name, id)
	}
	return nil
}

func (s *scene) RemoveTile(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiles.remove(id)
}

func (s *scene) AddPanel(inst ui.Instance) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels.add(inst)
}

func (s *scene) SetPanel(id uuid.UUID, inst ui.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.panels.set(id, inst) {
		return fmt.Errorf("scene %q: unknown panel %s", s.name, id)
	}
	return nil
}

func (s *scene) RemovePanel(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels.remove(id)
}

func (s *scene) AddRelativePanel(inst ui.RelativeInstance) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.relativePanels.add(inst)
}

func (s *scene) SetRelativePanel(id uuid.UUID, inst ui.RelativeInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.relativePanels.set(id, inst) {
		return fmt.Errorf("scene %q: unknown relative panel %s", s.name, id)
	}
	return nil
}

func (s *scene) RemoveRelativePanel(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relativePanels.remove(id)
}

func (s *scene) AddTextSection(section TextSection) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.add(section)
}

func (s *scene) SetTextSection(id uuid.UUID, section TextSection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sections.set(id, section) {
		return fmt.Errorf("scene %q: unknown text section %s", s.name, id)
	}
	return nil
}

func (s *scene) RemoveTextSection(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections.remove(id)
}

func (s *scene) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validateLocked()
}

// validateLocked enforces the render contract. Caller must hold at least the
// read lock.
func (s *scene) validateLocked() error {
	if s.cam == nil {
		return fmt.Errorf("scene %q: no camera attached", s.name)
	}
	v := s.cam.Viewport()
	if !v.Valid() {
		return fmt.Errorf("scene %q: viewport dimensions must be positive, got %gx%g", s.name, v.Width, v.Height)
	}
	if sf := s.cam.ScaleFactor(); sf <= 0 {
		return fmt.Errorf("scene %q: scale factor must be positive, got %g", s.name, sf)
	}
	for _, l := range s.lights.items() {
		if l.Constant() <= 0 {
			return fmt.Errorf("scene %q: light constant attenuation must be positive, got %g", s.name, l.Constant())
		}
	}

	// Inverted anchors are legal and flip the quad; worth a trace when
	// debugging layout, never an error.
	for _, sec := range s.sections.items() {
		if sec.Anchor.Left > sec.Anchor.Right || sec.Anchor.Bottom > sec.Anchor.Top {
			logger.Debug("scene %q: text section anchor is inverted (top %g left %g bottom %g right %g)",
				s.name, sec.Anchor.Top, sec.Anchor.Left, sec.Anchor.Bottom, sec.Anchor.Right)
		}
	}
	for _, p := range s.panels.items() {
		if p.Anchor[1] > p.Anchor[3] || p.Anchor[2] > p.Anchor[0] {
			logger.Debug("scene %q: panel anchor is inverted (top %g left %g bottom %g right %g)",
				s.name, p.Anchor[0], p.Anchor[1], p.Anchor[2], p.Anchor[3])
		}
	}
	return nil
}

func (s *scene) ComposeFrame() (*Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.validateLocked(); err != nil {
		return nil, fmt.Errorf("compose frame: %w", err)
	}

	lights := s.lights.items()
	enabled := 0
	for _, l := range lights {
		if l.Enabled() {
			enabled++
		}
	}
	if enabled > light.MaxLights {
		logger.Debug("scene %q: %d enabled lights exceed capacity %d, truncating by priority",
			s.name, enabled, light.MaxLights)
	}

	sprites := s.sprites.items()
	tiles := s.tiles.items()
	panels := s.panels.items()
	relativePanels := s.relativePanels.items()
	sections := s.sections.items()

	frame := &Frame{
		SpriteCount:        len(sprites),
		TileCount:          len(tiles),
		PanelCount:         len(panels),
		RelativePanelCount: len(relativePanels),
		Text:               make([]TextBatch, len(sections)),
	}

	// The shared blocks are cheap; marshal them inline. Instance batches go to
	// the pool, one task per batch kind plus one per text section.
	camUniform := s.cam.Uniform()
	frame.Camera = camUniform.Marshal()
	vpUniform := s.cam.ViewportUniform()
	frame.Viewport = vpUniform.Marshal()
	frame.Lights = light.BuildLightBlock(lights).Marshal()

	var wg sync.WaitGroup
	taskID := 0
	submit := func(do func()) {
		wg.Add(1)
		id := taskID
		taskID++
		s.marshalPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				do()
				return nil, nil
			},
		})
	}

	submit(func() { frame.Sprites = sprite.MarshalInstances(sprites) })
	submit(func() { frame.Tiles = tile.MarshalInstances(tiles) })
	submit(func() { frame.Panels = ui.MarshalInstances(panels) })
	submit(func() { frame.RelativePanels = ui.MarshalRelativeInstances(relativePanels) })
	for i := range sections {
		sec := sections[i]
		idx := i
		submit(func() {
			uniform := text.GPUSection{
				Transform: sec.Transform.Matrix(),
				Anchor:    [4]float32{sec.Anchor.Top, sec.Anchor.Left, sec.Anchor.Bottom, sec.Anchor.Right},
				Margin:    [4]int32{sec.Margin.Top, sec.Margin.Left, sec.Margin.Bottom, sec.Margin.Right},
				Color:     sec.Color,
			}
			frame.Text[idx] = TextBatch{
				Section:    uniform.Marshal(),
				Glyphs:     text.MarshalInstances(sec.Glyphs),
				GlyphCount: len(sec.Glyphs),
			}
		})
	}
	wg.Wait()

	return frame, nil
}
