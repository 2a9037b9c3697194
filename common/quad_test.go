package common

import (
	"testing"
)

func TestCornerOffsetScalesBySize(t *testing.T) {
	tests := []struct {
		name       string
		index      uint32
		sizeX      float32
		sizeY      float32
		wantX      float32
		wantY      float32
		wantU      float32
		wantV      float32
	}{
		{"top-left", 0, 100, 50, -50, 25, 0, 0},
		{"bottom-left", 1, 100, 50, -50, -25, 0, 1},
		{"top-right", 2, 100, 50, 50, 25, 1, 0},
		{"bottom-right", 3, 100, 50, 50, -25, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, u, v := CornerOffset(tt.index, tt.sizeX, tt.sizeY)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("CornerOffset(%d) position = (%v, %v), want (%v, %v)", tt.index, x, y, tt.wantX, tt.wantY)
			}
			if u != tt.wantU || v != tt.wantV {
				t.Errorf("CornerOffset(%d) uv = (%v, %v), want (%v, %v)", tt.index, u, v, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestCornerOffsetWrapsIndex(t *testing.T) {
	x0, y0, u0, v0 := CornerOffset(0, 2, 2)
	x4, y4, u4, v4 := CornerOffset(4, 2, 2)
	if x0 != x4 || y0 != y4 || u0 != u4 || v0 != v4 {
		t.Errorf("index 4 should wrap to index 0: got (%v,%v,%v,%v) want (%v,%v,%v,%v)", x4, y4, u4, v4, x0, y0, u0, v0)
	}
}

func TestCornerOffsetUVMapsRectangle(t *testing.T) {
	// UV rect covering the right half of a texture, V flipped.
	uvTop, uvLeft, uvBottom, uvRight := float32(0.0), float32(0.5), float32(1.0), float32(1.0)

	_, _, u, v := CornerOffsetUV(0, 1, 1, uvTop, uvLeft, uvBottom, uvRight)
	if u != 0.5 || v != 0.0 {
		t.Errorf("top-left uv = (%v, %v), want (0.5, 0)", u, v)
	}
	_, _, u, v = CornerOffsetUV(3, 1, 1, uvTop, uvLeft, uvBottom, uvRight)
	if u != 1.0 || v != 1.0 {
		t.Errorf("bottom-right uv = (%v, %v), want (1, 1)", u, v)
	}
}

func TestCornerOffsetUVDegenerateRectCollapses(t *testing.T) {
	// A zero-area UV rect pins every corner to the same texel.
	for i := uint32(0); i < QuadVertexCount; i++ {
		_, _, u, v := CornerOffsetUV(i, 1, 1, 0.25, 0.75, 0.25, 0.75)
		if u != 0.75 || v != 0.25 {
			t.Errorf("corner %d uv = (%v, %v), want (0.75, 0.25)", i, u, v)
		}
	}
}
