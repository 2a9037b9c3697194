package transform

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func closeF32(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func TestIdentityMapsPoint(t *testing.T) {
	id := Identity()
	got := id.Apply(3, -2, 7, 1)
	want := [4]float32{3, -2, 7, 1}
	for i := range want {
		if !closeF32(got[i], want[i]) {
			t.Fatalf("Identity().Apply = %v, want %v", got, want)
		}
	}
}

func TestNewComposesScaleRotationTranslation(t *testing.T) {
	// 90 degrees about Z: quat (0, 0, sin45, cos45).
	s := float32(math.Sqrt(0.5))
	tr := New(2, 2, 1, [4]float32{0, 0, s, s}, 10, 0, 0)

	// Point (1, 0, 0): scale -> (2, 0, 0), rotate 90deg -> (0, 2, 0),
	// translate -> (10, 2, 0).
	got := tr.Apply(1, 0, 0, 1)
	want := [4]float32{10, 2, 0, 1}
	for i := range want {
		if !closeF32(got[i], want[i]) {
			t.Fatalf("composed Apply = %v, want %v", got, want)
		}
	}
}

func TestFromQuaternionZeroIsIdentity(t *testing.T) {
	tr := FromQuaternion([4]float32{0, 0, 0, 0})
	m := tr.Matrix()
	id := Identity().Matrix()
	for i := range m {
		if !closeF32(m[i], id[i]) {
			t.Fatalf("zero quaternion matrix = %v, want identity", m)
		}
	}
}

func TestFromRotationZMatchesQuaternion(t *testing.T) {
	angle := float32(0.7)
	half := float64(angle) / 2
	quat := [4]float32{0, 0, float32(math.Sin(half)), float32(math.Cos(half))}

	a := FromRotationZ(angle).Matrix()
	b := FromQuaternion(quat).Matrix()
	for i := range a {
		if !closeF32(a[i], b[i]) {
			t.Fatalf("FromRotationZ = %v, FromQuaternion = %v", a, b)
		}
	}
}

func TestMulCompositionOrder(t *testing.T) {
	translate := FromTranslation(5, 0, 0)
	scale := FromScale(2, 2, 2)

	// translate.Mul(scale) applies scale first.
	got := translate.Mul(scale).Apply(1, 1, 0, 1)
	want := [4]float32{7, 2, 0, 1}
	for i := range want {
		if !closeF32(got[i], want[i]) {
			t.Fatalf("translate*scale Apply = %v, want %v", got, want)
		}
	}

	// scale.Mul(translate) applies translation first.
	got = scale.Mul(translate).Apply(1, 1, 0, 1)
	want = [4]float32{12, 2, 0, 1}
	for i := range want {
		if !closeF32(got[i], want[i]) {
			t.Fatalf("scale*translate Apply = %v, want %v", got, want)
		}
	}
}

func TestPositionAccessors(t *testing.T) {
	tr := FromTranslation(1, 2, 3)
	x, y, z := tr.Position()
	if x != 1 || y != 2 || z != 3 {
		t.Fatalf("Position = (%v, %v, %v), want (1, 2, 3)", x, y, z)
	}
	tr.SetPosition(-4, 5, -6)
	x, y, z = tr.Position()
	if x != -4 || y != 5 || z != -6 {
		t.Fatalf("after SetPosition: Position = (%v, %v, %v), want (-4, 5, -6)", x, y, z)
	}
}

func TestRotationZAndScaleExtraction(t *testing.T) {
	angle := float32(1.1)
	tr := New(3, 3, 1, [4]float32{0, 0, float32(math.Sin(float64(angle) / 2)), float32(math.Cos(float64(angle) / 2))}, 0, 0, 0)
	if !closeF32(tr.RotationZ(), angle) {
		t.Errorf("RotationZ = %v, want %v", tr.RotationZ(), angle)
	}
	sx, sy, sz := tr.Scale()
	if !closeF32(sx, 3) || !closeF32(sy, 3) || !closeF32(sz, 1) {
		t.Errorf("Scale = (%v, %v, %v), want (3, 3, 1)", sx, sy, sz)
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	tr := New(1.5, 0.5, 2, [4]float32{0.1, 0.2, 0.3, 0.9}, 4, 5, 6)
	m := tr.Matrix()
	back := FromMatrix(m[:])
	if back != tr {
		t.Fatalf("FromMatrix(Matrix()) = %v, want %v", back, tr)
	}
}
