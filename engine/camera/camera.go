package camera

import (
	"math"

	"github.com/lumen2d/lumen/common"
)

// ProjectionKind selects how the camera projects world space to clip space.
type ProjectionKind int

const (
	// ProjectionPerspective projects with a vertical field of view; used for
	// 2.5D scenes where sprites at different depths should shrink with
	// distance.
	ProjectionPerspective ProjectionKind = iota

	// ProjectionOrthographic projects without perspective; used for flat 2D
	// scenes and pixel-exact tile maps.
	ProjectionOrthographic
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	position    [3]float32
	target      [3]float32
	up          [3]float32
	projection  ProjectionKind
	fovYDegrees float32
	near        float32
	far         float32
	zoom        float32
	viewport    common.Viewport
	scaleFactor float32
}

// Camera owns the view/projection pair, the logical viewport and the display
// scale factor, and produces the GPU uniform blocks every pipeline binds at
// group 0. It is written only by the scene composer between frames; pipelines
// read it through the marshaled uniforms.
type Camera interface {
	// Position returns the world-space camera position.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// SetPosition moves the camera, keeping the look target offset fixed so a
	// 2D camera pans rather than pivots.
	//
	// Parameters:
	//   - x, y, z: the new position components
	SetPosition(x, y, z float32)

	// SetTarget sets the world-space point the camera looks at.
	//
	// Parameters:
	//   - x, y, z: the target components
	SetTarget(x, y, z float32)

	// Viewport returns the current logical viewport.
	//
	// Returns:
	//   - common.Viewport: the viewport geometry
	Viewport() common.Viewport

	// SetViewport replaces the viewport geometry. Intended to be called by the
	// window layer strictly between frames, never mid-submission.
	//
	// Parameters:
	//   - v: the new viewport
	SetViewport(v common.Viewport)

	// ScaleFactor returns the display content scale (DPI multiplier).
	//
	// Returns:
	//   - float32: the scale factor
	ScaleFactor() float32

	// SetScaleFactor replaces the display content scale. Like SetViewport this
	// must happen between frames.
	//
	// Parameters:
	//   - factor: the new scale factor
	SetScaleFactor(factor float32)

	// ViewMatrix returns the current view matrix, column-major.
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current projection matrix, column-major,
	// targeting WebGPU clip space (Z in [0, 1]).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// Uniform builds the camera uniform block for GPU upload.
	//
	// Returns:
	//   - *GPUCameraUniform: the populated uniform
	Uniform() *GPUCameraUniform

	// ViewportUniform builds the viewport uniform block for GPU upload.
	//
	// Returns:
	//   - *GPUViewport: the populated uniform
	ViewportUniform() *GPUViewport

	// ToWorldCoordinates unprojects a window-space point onto the world z=0
	// plane, the plane 2D gameplay lives on. Used for cursor picking.
	//
	// Parameters:
	//   - winX, winY: the window-space point in pixels, y-down from the top-left
	//
	// Returns:
	//   - x, y: the world-space intersection with the z=0 plane
	//   - bool: false if the viewport is degenerate or the ray is parallel to the plane
	ToWorldCoordinates(winX, winY float32) (float32, float32, bool)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with sensible 2D defaults (orthographic, looking
// down -Z from z=10, unit zoom, scale factor 1) and any provided options
// applied.
//
// Parameters:
//   - opts: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:    [3]float32{0, 0, 10},
		target:      [3]float32{0, 0, 0},
		up:          [3]float32{0, 1, 0},
		projection:  ProjectionOrthographic,
		fovYDegrees: 60,
		near:        0.1,
		far:         100,
		zoom:        1,
		viewport:    common.Viewport{Width: 1280, Height: 720, MinZ: 0, MaxZ: 1},
		scaleFactor: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	return c.position
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	dx := c.target[0] - c.position[0]
	dy := c.target[1] - c.position[1]
	dz := c.target[2] - c.position[2]
	c.position = [3]float32{x, y, z}
	c.target = [3]float32{x + dx, y + dy, z + dz}
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.target = [3]float32{x, y, z}
}

func (c *cameraImpl) Viewport() common.Viewport {
	return c.viewport
}

func (c *cameraImpl) SetViewport(v common.Viewport) {
	c.viewport = v
}

func (c *cameraImpl) ScaleFactor() float32 {
	return c.scaleFactor
}

func (c *cameraImpl) SetScaleFactor(factor float32) {
	c.scaleFactor = factor
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	var view [16]float32
	common.LookAt(view[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)
	return view
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	var proj [16]float32
	switch c.projection {
	case ProjectionPerspective:
		aspect := float32(1)
		if c.viewport.Height > 0 {
			aspect = c.viewport.Width / c.viewport.Height
		}
		fovRad := c.fovYDegrees * math.Pi / 180.0
		common.Perspective(proj[:], fovRad, aspect, c.near, c.far)
	case ProjectionOrthographic:
		// World-units-per-pixel is 1/zoom, so zoom = 2 shows half as much
		// world per axis.
		halfW := c.viewport.Width * 0.5 / c.zoom
		halfH := c.viewport.Height * 0.5 / c.zoom
		common.Ortho(proj[:], -halfW, halfW, -halfH, halfH, c.near, c.far)
	}
	return proj
}

func (c *cameraImpl) Uniform() *GPUCameraUniform {
	return &GPUCameraUniform{
		View:        c.ViewMatrix(),
		Projection:  c.ProjectionMatrix(),
		Position:    c.position,
		ScaleFactor: c.scaleFactor,
	}
}

func (c *cameraImpl) ViewportUniform() *GPUViewport {
	return &GPUViewport{
		X:      c.viewport.X,
		Y:      c.viewport.Y,
		Width:  c.viewport.Width,
		Height: c.viewport.Height,
		MinZ:   c.viewport.MinZ,
		MaxZ:   c.viewport.MaxZ,
	}
}

func (c *cameraImpl) ToWorldCoordinates(winX, winY float32) (float32, float32, bool) {
	if !c.viewport.Valid() {
		return 0, 0, false
	}

	ndcX := 2.0*(winX-c.viewport.X)/c.viewport.Width - 1.0
	ndcY := 1.0 - 2.0*(winY-c.viewport.Y)/c.viewport.Height

	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	var viewProj, inv [16]float32
	common.Mul4(viewProj[:], proj[:], view[:])
	if !common.Invert4(inv[:], viewProj[:]) {
		return 0, 0, false
	}

	nearPt := common.MulVec4(inv[:], ndcX, ndcY, 0, 1)
	farPt := common.MulVec4(inv[:], ndcX, ndcY, 1, 1)
	if nearPt[3] == 0 || farPt[3] == 0 {
		return 0, 0, false
	}
	for i := range 3 {
		nearPt[i] /= nearPt[3]
		farPt[i] /= farPt[3]
	}

	dirZ := farPt[2] - nearPt[2]
	if dirZ == 0 {
		// Ray parallel to the z=0 plane; fall back to the near point if it
		// already lies on the plane.
		if nearPt[2] == 0 {
			return nearPt[0], nearPt[1], true
		}
		return 0, 0, false
	}
	t := -nearPt[2] / dirZ
	x := nearPt[0] + t*(farPt[0]-nearPt[0])
	y := nearPt[1] + t*(farPt[1]-nearPt[1])
	return x, y, true
}
