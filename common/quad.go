package common

// The unit-quad corner table shared by every render pipeline. All quads in the
// engine are drawn as a four-vertex triangle strip (no vertex buffer); the
// vertex shader selects a corner by vertex index and scales it by the instance
// size. Keeping the table in one place keeps the five pipelines' winding and
// UV orientation from drifting apart.
//
// Strip order (front face CW, matching the sprite pipeline's cull state):
//
//	0: top-left     (-0.5, +0.5)  uv (0, 0)
//	1: bottom-left  (-0.5, -0.5)  uv (0, 1)
//	2: top-right    (+0.5, +0.5)  uv (1, 0)
//	3: bottom-right (+0.5, -0.5)  uv (1, 1)

// QuadVertexCount is the number of vertices in the unit-quad triangle strip.
const QuadVertexCount = 4

var quadCorners = [QuadVertexCount][2]float32{
	{-0.5, 0.5},
	{-0.5, -0.5},
	{0.5, 0.5},
	{0.5, -0.5},
}

var quadUVs = [QuadVertexCount][2]float32{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
}

// CornerOffset returns the position offset and texture coordinate for one
// corner of a unit quad scaled to the given size. The quad is centered on the
// origin. This is the CPU mirror of the corner table in quad.wgsl; both must
// stay in the same strip order.
//
// Parameters:
//   - index: vertex index in [0, QuadVertexCount)
//   - sizeX, sizeY: quad dimensions
//
// Returns:
//   - x, y: position offset of the corner
//   - u, v: texture coordinate of the corner (v grows downward)
func CornerOffset(index uint32, sizeX, sizeY float32) (x, y, u, v float32) {
	i := index % QuadVertexCount
	return quadCorners[i][0] * sizeX, quadCorners[i][1] * sizeY, quadUVs[i][0], quadUVs[i][1]
}

// CornerOffsetUV is CornerOffset with the texture coordinate remapped into a
// per-instance UV rectangle, as used by the tile pipeline.
//
// Parameters:
//   - index: vertex index in [0, QuadVertexCount)
//   - sizeX, sizeY: quad dimensions
//   - uvTop, uvLeft, uvBottom, uvRight: UV rectangle edges
//
// Returns:
//   - x, y: position offset of the corner
//   - u, v: texture coordinate interpolated inside the UV rectangle
func CornerOffsetUV(index uint32, sizeX, sizeY, uvTop, uvLeft, uvBottom, uvRight float32) (x, y, u, v float32) {
	x, y, cu, cv := CornerOffset(index, sizeX, sizeY)
	u = uvLeft + cu*(uvRight-uvLeft)
	v = uvTop + cv*(uvBottom-uvTop)
	return x, y, u, v
}
