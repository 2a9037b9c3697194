package common

// AABB2D is an axis-aligned bounding box in 2D window or world coordinates.
// Used for anchored-rect hit testing and coarse scene culling.
type AABB2D struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Contains reports whether the point (x, y) lies inside the box, inclusive of
// the edges.
//
// Parameters:
//   - x, y: the point to test
//
// Returns:
//   - bool: true if the point is inside or on the boundary
func (b AABB2D) Contains(x, y float32) bool {
	return b.MinX <= x && x <= b.MaxX && b.MinY <= y && y <= b.MaxY
}

// Intersects reports whether two boxes overlap, inclusive of touching edges.
//
// Parameters:
//   - other: the box to test against
//
// Returns:
//   - bool: true if the boxes overlap
func (b AABB2D) Intersects(other AABB2D) bool {
	return b.MinX <= other.MaxX && other.MinX <= b.MaxX &&
		b.MinY <= other.MaxY && other.MinY <= b.MaxY
}
