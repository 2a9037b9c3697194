// package transform provides the per-instance affine transform used by every
// draw pipeline. A Transform is a column-major 4x4 matrix decomposed into four
// vec4 columns so it can be uploaded directly as four instance-vertex
// attributes without repacking.
package transform

import (
	"math"

	"github.com/lumen2d/lumen/common"
)

// Transform is a column-major 4x4 affine transform stored as four columns.
// Column 3 holds the translation. The zero value is NOT the identity; use
// Identity or one of the constructors.
type Transform struct {
	Cols [4][4]float32
}

// Identity returns the identity transform.
//
// Returns:
//   - Transform: a transform that maps every point to itself
func Identity() Transform {
	var t Transform
	t.Cols[0][0] = 1
	t.Cols[1][1] = 1
	t.Cols[2][2] = 1
	t.Cols[3][3] = 1
	return t
}

// New builds a transform from scale, rotation and translation, composed as
// translation * rotation * scale (scale applied first).
//
// Parameters:
//   - scaleX, scaleY, scaleZ: per-axis scale factors
//   - quat: rotation quaternion as (x, y, z, w); need not be normalized
//   - transX, transY, transZ: translation components
//
// Returns:
//   - Transform: the composed transform
func New(scaleX, scaleY, scaleZ float32, quat [4]float32, transX, transY, transZ float32) Transform {
	t := FromQuaternion(quat)
	for col := 0; col < 3; col++ {
		s := [3]float32{scaleX, scaleY, scaleZ}[col]
		for row := 0; row < 4; row++ {
			t.Cols[col][row] *= s
		}
	}
	t.Cols[3][0] = transX
	t.Cols[3][1] = transY
	t.Cols[3][2] = transZ
	return t
}

// FromTranslation returns a pure translation transform.
//
// Parameters:
//   - x, y, z: translation components
//
// Returns:
//   - Transform: the translation transform
func FromTranslation(x, y, z float32) Transform {
	t := Identity()
	t.Cols[3][0] = x
	t.Cols[3][1] = y
	t.Cols[3][2] = z
	return t
}

// FromScale returns a pure scale transform.
//
// Parameters:
//   - x, y, z: per-axis scale factors
//
// Returns:
//   - Transform: the scale transform
func FromScale(x, y, z float32) Transform {
	var t Transform
	t.Cols[0][0] = x
	t.Cols[1][1] = y
	t.Cols[2][2] = z
	t.Cols[3][3] = 1
	return t
}

// FromQuaternion returns a pure rotation transform from a quaternion.
// The quaternion is normalized before conversion; a zero quaternion yields
// the identity rotation.
//
// Parameters:
//   - quat: rotation quaternion as (x, y, z, w)
//
// Returns:
//   - Transform: the rotation transform
func FromQuaternion(quat [4]float32) Transform {
	x, y, z, w := quat[0], quat[1], quat[2], quat[3]
	length := float32(math.Sqrt(float64(x*x + y*y + z*z + w*w)))
	if length == 0 {
		return Identity()
	}
	inv := 1.0 / length
	x, y, z, w = x*inv, y*inv, z*inv, w*inv

	var t Transform
	t.Cols[0] = [4]float32{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0}
	t.Cols[1] = [4]float32{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0}
	t.Cols[2] = [4]float32{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0}
	t.Cols[3] = [4]float32{0, 0, 0, 1}
	return t
}

// FromRotationZ returns a rotation transform about the Z axis, the common case
// for 2D sprites and UI.
//
// Parameters:
//   - radians: counter-clockwise rotation angle
//
// Returns:
//   - Transform: the rotation transform
func FromRotationZ(radians float32) Transform {
	s := float32(math.Sin(float64(radians)))
	c := float32(math.Cos(float64(radians)))
	t := Identity()
	t.Cols[0][0], t.Cols[0][1] = c, s
	t.Cols[1][0], t.Cols[1][1] = -s, c
	return t
}

// FromMatrix builds a transform from a flat column-major 16-element matrix.
//
// Parameters:
//   - m: the source matrix, at least 16 elements, column-major
//
// Returns:
//   - Transform: the transform holding the same matrix
func FromMatrix(m []float32) Transform {
	var t Transform
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			t.Cols[col][row] = m[col*4+row]
		}
	}
	return t
}

// Matrix flattens the transform back into a column-major 16-element array.
//
// Returns:
//   - [16]float32: the flat column-major matrix
func (t Transform) Matrix() [16]float32 {
	var m [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			m[col*4+row] = t.Cols[col][row]
		}
	}
	return m
}

// Mul composes two transforms, applying other first and then t
// (standard matrix composition t * other).
//
// Parameters:
//   - other: the transform applied first
//
// Returns:
//   - Transform: the composed transform
func (t Transform) Mul(other Transform) Transform {
	a := t.Matrix()
	b := other.Matrix()
	var out [16]float32
	common.Mul4(out[:], a[:], b[:])
	return FromMatrix(out[:])
}

// Apply transforms a homogeneous point.
//
// Parameters:
//   - x, y, z, w: the point, with w = 1 for positions and w = 0 for directions
//
// Returns:
//   - [4]float32: the transformed point
func (t Transform) Apply(x, y, z, w float32) [4]float32 {
	m := t.Matrix()
	return common.MulVec4(m[:], x, y, z, w)
}

// Position returns the translation column.
//
// Returns:
//   - x, y, z: the translation components
func (t Transform) Position() (x, y, z float32) {
	return t.Cols[3][0], t.Cols[3][1], t.Cols[3][2]
}

// SetPosition overwrites the translation column, leaving rotation and scale
// untouched.
//
// Parameters:
//   - x, y, z: the new translation components
func (t *Transform) SetPosition(x, y, z float32) {
	t.Cols[3][0] = x
	t.Cols[3][1] = y
	t.Cols[3][2] = z
}

// RotationZ extracts the rotation angle about the Z axis, assuming the upper
// 2x2 block is a uniform-scale rotation. Useful for 2D gameplay code that
// steers sprites by angle.
//
// Returns:
//   - float32: the counter-clockwise rotation in radians
func (t Transform) RotationZ() float32 {
	return float32(math.Atan2(float64(t.Cols[0][1]), float64(t.Cols[0][0])))
}

// Scale extracts per-axis scale as the length of each basis column.
//
// Returns:
//   - x, y, z: the per-axis scale factors (always non-negative)
func (t Transform) Scale() (x, y, z float32) {
	length := func(c [4]float32) float32 {
		return float32(math.Sqrt(float64(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])))
	}
	return length(t.Cols[0]), length(t.Cols[1]), length(t.Cols[2])
}
