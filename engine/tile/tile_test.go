package tile

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/lumen2d/lumen/engine/transform"
)

func TestInstanceSize(t *testing.T) {
	if InstanceSize != 104 {
		t.Fatalf("InstanceSize = %d, want 104", InstanceSize)
	}
}

func TestInstanceMarshalOffsets(t *testing.T) {
	inst := Instance{
		Transform: transform.FromTranslation(1, 2, 3),
		UVRect:    [4]float32{0, 0.25, 0.5, 0.75},
		Color:     [4]float32{0.9, 0.8, 0.7, 0.6},
		Size:      [2]float32{16, 16},
	}
	buf := inst.Marshal()
	if len(buf) != 104 {
		t.Fatalf("len(Marshal()) = %d, want 104", len(buf))
	}
	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if readF32(64) != 0 || readF32(68) != 0.25 || readF32(72) != 0.5 || readF32(76) != 0.75 {
		t.Errorf("uv rect at offset 64 = (%v, %v, %v, %v)", readF32(64), readF32(68), readF32(72), readF32(76))
	}
	if readF32(80) != 0.9 || readF32(92) != 0.6 {
		t.Errorf("color at offset 80 = %v..%v", readF32(80), readF32(92))
	}
	if readF32(96) != 16 || readF32(100) != 16 {
		t.Errorf("size at offset 96 = (%v, %v)", readF32(96), readF32(100))
	}
}

func TestInstanceLayoutMatchesStruct(t *testing.T) {
	layout := InstanceLayout()
	if layout.ArrayStride != 104 {
		t.Errorf("ArrayStride = %d, want 104", layout.ArrayStride)
	}
	wantOffsets := []uint64{0, 16, 32, 48, 64, 80, 96}
	if len(layout.Attributes) != len(wantOffsets) {
		t.Fatalf("attribute count = %d, want %d", len(layout.Attributes), len(wantOffsets))
	}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
	}
}

func TestNewPipelineShader(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline error: %v", err)
	}
	src := p.Shader().Source()
	// Tile measures light distance in world space and samples via the
	// per-instance UV rect.
	if !strings.Contains(src, "world_position, lights") {
		t.Error("tile fragment stage should accumulate over the world position")
	}
	if !strings.Contains(src, "corner_offset_uv") {
		t.Error("tile vertex stage should use the UV-rect corner table")
	}
}
