package layout

import "github.com/lumen2d/lumen/common"

// Resolve maps an anchor/margin pair onto the viewport and returns the
// resulting rectangle in normalized device coordinates.
//
// Each edge is the viewport minimum in NDC, plus twice the anchor fraction,
// plus the margin converted from logical pixels: margin * scaleFactor scaled
// into NDC by the viewport dimension in the matching axis.
//
// Pure arithmetic with no error states. The caller guarantees positive
// viewport dimensions; a zero-size viewport produces Inf/NaN edges, which the
// scene composer's precondition checks reject before anything reaches the GPU.
// No clamping is performed, see Rect.
//
// Parameters:
//   - anchor: edge fractions of viewport size
//   - margin: per-edge offsets in logical pixels
//   - viewport: the logical viewport geometry
//   - scaleFactor: display content scale (DPI multiplier)
//
// Returns:
//   - Rect: the resolved rectangle in NDC
func Resolve(anchor Anchor, margin Margin, viewport common.Viewport, scaleFactor float32) Rect {
	minX := 2.0*viewport.X/viewport.Width - 1.0
	minY := 2.0*viewport.Y/viewport.Height - 1.0

	return Rect{
		Top:    minY + 2.0*anchor.Top + 2.0*float32(margin.Top)*scaleFactor/viewport.Height,
		Left:   minX + 2.0*anchor.Left + 2.0*float32(margin.Left)*scaleFactor/viewport.Width,
		Bottom: minY + 2.0*anchor.Bottom + 2.0*float32(margin.Bottom)*scaleFactor/viewport.Height,
		Right:  minX + 2.0*anchor.Right + 2.0*float32(margin.Right)*scaleFactor/viewport.Width,
	}
}

// WindowRect converts a resolved NDC rect into a window-space bounding box,
// y-down from the viewport's top-left, for cursor hit-testing. The box is
// normalized so inverted anchor configurations still hit-test over their
// visible (mirrored) area.
//
// Parameters:
//   - rect: the resolved rect in NDC
//   - viewport: the viewport the rect was resolved against
//
// Returns:
//   - common.AABB2D: the window-space bounds in pixels
func WindowRect(rect Rect, viewport common.Viewport) common.AABB2D {
	x0 := viewport.X + (rect.Left+1.0)*0.5*viewport.Width
	x1 := viewport.X + (rect.Right+1.0)*0.5*viewport.Width
	// NDC y is up, window y is down, so top maps to the smaller window y.
	y0 := viewport.Y + (1.0-rect.Top)*0.5*viewport.Height
	y1 := viewport.Y + (1.0-rect.Bottom)*0.5*viewport.Height

	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return common.AABB2D{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

// HitTest reports whether a window-space point lies inside the anchored rect.
//
// Parameters:
//   - anchor: edge fractions of viewport size
//   - margin: per-edge offsets in logical pixels
//   - viewport: the logical viewport geometry
//   - scaleFactor: display content scale
//   - winX, winY: the window-space point in pixels
//
// Returns:
//   - bool: true if the point is inside the resolved rect
func HitTest(anchor Anchor, margin Margin, viewport common.Viewport, scaleFactor, winX, winY float32) bool {
	if !viewport.Valid() {
		return false
	}
	rect := Resolve(anchor, margin, viewport, scaleFactor)
	return WindowRect(rect, viewport).Contains(winX, winY)
}
