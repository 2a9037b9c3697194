package common

// Viewport describes the logical render area in window coordinates plus the
// depth range. Width and Height are in physical pixels; the scale factor that
// relates logical to physical pixels lives on the camera uniform, not here.
type Viewport struct {
	// X and Y are the origin of the viewport within the surface, in pixels.
	X float32
	Y float32
	// Width and Height are the viewport dimensions in pixels. Both must be
	// positive; the scene composer rejects zero or negative dimensions before
	// any upload happens.
	Width  float32
	Height float32
	// MinZ and MaxZ bound the depth range, typically 0 and 1.
	MinZ float32
	MaxZ float32
}

// Valid reports whether the viewport has positive dimensions.
//
// Returns:
//   - bool: true if Width > 0 and Height > 0
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}
