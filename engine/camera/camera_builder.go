package camera

import "github.com/lumen2d/lumen/common"

// CameraBuilderOption is a function that configures a Camera instance during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the world-space camera position.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a cameraImpl
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the world-space point the camera
// looks at.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option to a cameraImpl
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp is an option builder that sets the camera's up vector.
//
// Parameters:
//   - x: the x up component
//   - y: the y up component
//   - z: the z up component
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option to a cameraImpl
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithPerspective is an option builder that switches the camera to a
// perspective projection.
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the projection option to a cameraImpl
func WithPerspective(fovYDegrees, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = ProjectionPerspective
		c.fovYDegrees = fovYDegrees
		c.near = near
		c.far = far
	}
}

// WithOrthographic is an option builder that switches the camera to an
// orthographic projection sized from the viewport.
//
// Parameters:
//   - zoom: world-to-pixel zoom; 1 maps one world unit to one pixel
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the projection option to a cameraImpl
func WithOrthographic(zoom, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = ProjectionOrthographic
		c.zoom = zoom
		c.near = near
		c.far = far
	}
}

// WithViewport is an option builder that sets the logical viewport geometry.
//
// Parameters:
//   - v: the viewport
//
// Returns:
//   - CameraBuilderOption: a function that applies the viewport option to a cameraImpl
func WithViewport(v common.Viewport) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = v
	}
}

// WithScaleFactor is an option builder that sets the display content scale.
//
// Parameters:
//   - factor: the DPI scale factor
//
// Returns:
//   - CameraBuilderOption: a function that applies the scale factor option to a cameraImpl
func WithScaleFactor(factor float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.scaleFactor = factor
	}
}
