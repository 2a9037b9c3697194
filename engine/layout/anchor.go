// package layout implements the anchor-based UI layout math shared by the UI
// and text pipelines. The resolver here is the CPU reference for the identical
// math in the UI vertex shaders; both read the same viewport block, so a
// window resize moves CPU hit-testing and GPU geometry together.
package layout

// Anchor places a rectangle inside the viewport by edge fractions. Each field
// is a fraction of the viewport size in the matching axis, typically in [0, 1]
// but intentionally unclamped: values outside the range push the edge off
// screen, which is valid for slide-in panels.
type Anchor struct {
	Top    float32
	Left   float32
	Bottom float32
	Right  float32
}

// Margin offsets each anchored edge by logical pixels. Margins are multiplied
// by the display scale factor and divided by the viewport dimension in the
// matching axis, which is what makes them resolution and DPI independent.
type Margin struct {
	Top    int32
	Left   int32
	Bottom int32
	Right  int32
}

// Rect is a resolved anchor rectangle in normalized device coordinates.
// Derived per frame, never stored across frames. The resolver does not clamp:
// an anchor configuration with left > right yields a negative Width and a
// mirrored quad.
type Rect struct {
	Top    float32
	Left   float32
	Bottom float32
	Right  float32
}

// CenterX returns the horizontal center of the rect in NDC.
//
// Returns:
//   - float32: the x center
func (r Rect) CenterX() float32 {
	return 0.5 * (r.Left + r.Right)
}

// CenterY returns the vertical center of the rect in NDC.
//
// Returns:
//   - float32: the y center
func (r Rect) CenterY() float32 {
	return 0.5 * (r.Top + r.Bottom)
}

// Width returns the horizontal extent of the rect in NDC. Negative when the
// anchors are inverted.
//
// Returns:
//   - float32: right minus left
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rect in NDC. Negative when the
// anchors are inverted.
//
// Returns:
//   - float32: top minus bottom
func (r Rect) Height() float32 {
	return r.Top - r.Bottom
}
