package layout

import "github.com/lumen2d/lumen/engine/transform"

// Section2D wraps a batch of UI instances with a shared anchor, transform pair
// and tint. The parent/local split is explicit so the composition order is a
// contract, not an accident of call order: a corner is transformed by the
// local transform, offset by the resolved anchor center, then transformed by
// the parent. This is the two-level special case of a scene graph that
// anchored UI needs, and all it gets.
type Section2D struct {
	Anchor Anchor
	Margin Margin
	// Local positions content within the section, in the section's own space.
	Local transform.Transform
	// Parent places the whole section, e.g. a screen-shake or slide transform.
	Parent transform.Transform
	// Tint multiplies sampled color per channel. Never additive.
	Tint [4]float32
}

// NewSection2D returns a section with identity transforms and a white tint.
//
// Returns:
//   - Section2D: the default section
func NewSection2D() Section2D {
	return Section2D{
		Local:  transform.Identity(),
		Parent: transform.Identity(),
		Tint:   [4]float32{1, 1, 1, 1},
	}
}

// Compose applies the section's composition contract to a point:
// parent * (local * point + anchorOffset). The anchor offset is the resolved
// rect's center in NDC. This is the CPU reference for the parent-relative UI
// vertex stage.
//
// Parameters:
//   - x, y, z: the point in section-local space
//   - anchorOffsetX, anchorOffsetY: the resolved anchor center in NDC
//
// Returns:
//   - [4]float32: the composed position
func (s Section2D) Compose(x, y, z, anchorOffsetX, anchorOffsetY float32) [4]float32 {
	local := s.Local.Apply(x, y, z, 1)
	local[0] += anchorOffsetX
	local[1] += anchorOffsetY
	return s.Parent.Apply(local[0], local[1], local[2], local[3])
}

// Section3D anchors a group of instances in world space rather than viewport
// space: the anchor/margin pair still resolves against the viewport, but the
// parent transform is a world transform so the group follows a world object
// (e.g. a label floating over a character).
type Section3D struct {
	Anchor Anchor
	Margin Margin
	Local  transform.Transform
	Parent transform.Transform
	Tint   [4]float32
}

// NewSection3D returns a section with identity transforms and a white tint.
//
// Returns:
//   - Section3D: the default section
func NewSection3D() Section3D {
	return Section3D{
		Local:  transform.Identity(),
		Parent: transform.Identity(),
		Tint:   [4]float32{1, 1, 1, 1},
	}
}

// Compose applies the same composition contract as Section2D.Compose.
//
// Parameters:
//   - x, y, z: the point in section-local space
//   - anchorOffsetX, anchorOffsetY: the resolved anchor center in NDC
//
// Returns:
//   - [4]float32: the composed position
func (s Section3D) Compose(x, y, z, anchorOffsetX, anchorOffsetY float32) [4]float32 {
	local := s.Local.Apply(x, y, z, 1)
	local[0] += anchorOffsetX
	local[1] += anchorOffsetY
	return s.Parent.Apply(local[0], local[1], local[2], local[3])
}
