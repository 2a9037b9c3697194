package common

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func matricesClose(a, b []float32) bool {
	for i := 0; i < 16; i++ {
		if math.Abs(float64(a[i]-b[i])) > tolerance {
			return false
		}
	}
	return true
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i) * 0.5
	}

	Mul4(out[:], id[:], m[:])
	if !matricesClose(out[:], m[:]) {
		t.Errorf("identity * m = %v, want %v", out, m)
	}
	Mul4(out[:], m[:], id[:])
	if !matricesClose(out[:], m[:]) {
		t.Errorf("m * identity = %v, want %v", out, m)
	}
}

func TestMul4AliasedOutput(t *testing.T) {
	// Mul4 must tolerate out aliasing one of its inputs.
	a := [16]float32{}
	b := [16]float32{}
	Identity(a[:])
	a[12] = 3 // translation
	Identity(b[:])
	b[0], b[5] = 2, 2 // scale

	want := [16]float32{}
	Mul4(want[:], a[:], b[:])

	Mul4(a[:], a[:], b[:])
	if !matricesClose(a[:], want[:]) {
		t.Errorf("aliased Mul4 = %v, want %v", a, want)
	}
}

func TestMulVec4Translation(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	m[12], m[13], m[14] = 10, -5, 2

	got := MulVec4(m[:], 1, 2, 3, 1)
	want := [4]float32{11, -3, 5, 1}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > tolerance {
			t.Fatalf("MulVec4 = %v, want %v", got, want)
		}
	}
}

func TestOrthoMapsExtentsToClipSpace(t *testing.T) {
	var m [16]float32
	Ortho(m[:], -2, 2, -1, 1, 0, 10)

	corners := []struct {
		x, y, z                float32
		wantX, wantY, wantZ    float32
	}{
		{-2, -1, 0, -1, -1, 0},
		{2, 1, 0, 1, 1, 0},
		{0, 0, 10, 0, 0, -1},
	}
	for _, c := range corners {
		got := MulVec4(m[:], c.x, c.y, c.z, 1)
		if math.Abs(float64(got[0]-c.wantX)) > tolerance ||
			math.Abs(float64(got[1]-c.wantY)) > tolerance ||
			math.Abs(float64(got[2]-c.wantZ)) > tolerance {
			t.Errorf("Ortho(%v,%v,%v) = (%v,%v,%v), want (%v,%v,%v)",
				c.x, c.y, c.z, got[0], got[1], got[2], c.wantX, c.wantY, c.wantZ)
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, out, id [16]float32
	Identity(id[:])
	LookAt(m[:], 3, 4, 5, 0, 0, 0, 0, 1, 0)

	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported a look-at matrix as singular")
	}
	Mul4(out[:], m[:], inv[:])
	if !matricesClose(out[:], id[:]) {
		t.Errorf("m * m^-1 = %v, want identity", out)
	}
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	out[3] = 42
	if Invert4(out[:], zero[:]) {
		t.Error("Invert4 inverted a singular matrix")
	}
	if out[3] != 42 {
		t.Error("Invert4 modified the output for a singular input")
	}
}

func TestAABB2D(t *testing.T) {
	box := AABB2D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	if !box.Contains(0, 0) || !box.Contains(10, 5) || !box.Contains(5, 2.5) {
		t.Error("Contains should include interior and edges")
	}
	if box.Contains(10.01, 2) || box.Contains(5, -0.01) {
		t.Error("Contains should exclude exterior points")
	}
	if !box.Intersects(AABB2D{MinX: 10, MinY: 5, MaxX: 20, MaxY: 10}) {
		t.Error("touching boxes should intersect")
	}
	if box.Intersects(AABB2D{MinX: 11, MinY: 0, MaxX: 20, MaxY: 5}) {
		t.Error("disjoint boxes should not intersect")
	}
}
