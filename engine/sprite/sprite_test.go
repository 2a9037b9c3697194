package sprite

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/lumen2d/lumen/engine/transform"
)

func TestInstanceSize(t *testing.T) {
	if InstanceSize != 92 {
		t.Fatalf("InstanceSize = %d, want 92", InstanceSize)
	}
}

func TestInstanceMarshalOffsets(t *testing.T) {
	inst := Instance{
		Transform: transform.FromTranslation(7, 8, 9),
		Color:     [4]float32{0.1, 0.2, 0.3, 0.4},
		Size:      [2]float32{32, 64},
		TexIndex:  5,
	}
	buf := inst.Marshal()
	if len(buf) != 92 {
		t.Fatalf("len(Marshal()) = %d, want 92", len(buf))
	}
	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	// Column 3 (translation) starts at offset 48.
	if readF32(48) != 7 || readF32(52) != 8 || readF32(56) != 9 {
		t.Errorf("translation column = (%v, %v, %v), want (7, 8, 9)", readF32(48), readF32(52), readF32(56))
	}
	if readF32(64) != 0.1 || readF32(76) != 0.4 {
		t.Errorf("color at offset 64 = %v..%v", readF32(64), readF32(76))
	}
	if readF32(80) != 32 || readF32(84) != 64 {
		t.Errorf("size at offset 80 = (%v, %v)", readF32(80), readF32(84))
	}
	if got := binary.LittleEndian.Uint32(buf[88:]); got != 5 {
		t.Errorf("tex index at offset 88 = %d, want 5", got)
	}
}

func TestMarshalInstancesContiguous(t *testing.T) {
	batch := []Instance{
		{Transform: transform.Identity(), TexIndex: 1},
		{Transform: transform.Identity(), TexIndex: 2},
	}
	buf := MarshalInstances(batch)
	if len(buf) != 2*InstanceSize {
		t.Fatalf("len = %d, want %d", len(buf), 2*InstanceSize)
	}
	if got := binary.LittleEndian.Uint32(buf[88:]); got != 1 {
		t.Errorf("first instance tex index = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(buf[InstanceSize+88:]); got != 2 {
		t.Errorf("second instance tex index = %d, want 2", got)
	}
}

func TestInstanceLayoutMatchesStruct(t *testing.T) {
	layout := InstanceLayout()
	if layout.ArrayStride != 92 {
		t.Errorf("ArrayStride = %d, want 92", layout.ArrayStride)
	}
	if len(layout.Attributes) != 7 {
		t.Fatalf("attribute count = %d, want 7", len(layout.Attributes))
	}
	wantOffsets := []uint64{0, 16, 32, 48, 64, 80, 88}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d location = %d, want %d", i, attr.ShaderLocation, i)
		}
	}
}

func TestNewPipelineDistanceBasis(t *testing.T) {
	world, err := NewPipeline(DistanceWorldSpace)
	if err != nil {
		t.Fatalf("NewPipeline(world) error: %v", err)
	}
	if got := world.Shader().FragmentEntryPoint(); got != "fs_main" {
		t.Errorf("world-space entry point = %q, want fs_main", got)
	}

	legacy, err := NewPipeline(DistanceClipSpace)
	if err != nil {
		t.Fatalf("NewPipeline(legacy) error: %v", err)
	}
	if got := legacy.Shader().FragmentEntryPoint(); got != "fs_main_legacy" {
		t.Errorf("clip-space entry point = %q, want fs_main_legacy", got)
	}

	// The includes must have expanded into real WGSL.
	src := world.Shader().Source()
	for _, want := range []string{"struct CameraUniform", "struct LightBlock", "fn corner_offset", "fn accumulate_lights"} {
		if !strings.Contains(src, want) {
			t.Errorf("processed source missing %q", want)
		}
	}
}
