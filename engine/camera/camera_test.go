package camera

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/lumen2d/lumen/common"
)

const tolerance = 1e-5

// wgslMemberOffsets computes each member's byte offset for a struct declared in
// WGSL source, per the uniform address-space layout rules: scalars align to 4,
// vec3 aligns to 16 with size 12, mat4x4 aligns to 16 with size 64, and every
// member starts at the first multiple of its alignment past the previous
// member's end. Returns the name-to-offset map and the rounded struct size.
func wgslMemberOffsets(t *testing.T, source, name string) (map[string]int, int) {
	t.Helper()
	layouts := map[string][2]int{
		"f32":         {4, 4},
		"u32":         {4, 4},
		"vec3<f32>":   {16, 12},
		"vec4<f32>":   {16, 16},
		"mat4x4<f32>": {16, 64},
	}
	start := strings.Index(source, "struct "+name+" {")
	if start < 0 {
		t.Fatalf("struct %s not found in shader source", name)
	}
	body := source[start:]
	body = body[strings.IndexByte(body, '{')+1 : strings.IndexByte(body, '}')]

	offsets := make(map[string]int)
	cursor, maxAlign := 0, 4
	for _, member := range strings.Split(body, ",") {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		parts := strings.SplitN(member, ":", 2)
		if len(parts) != 2 {
			t.Fatalf("malformed struct member %q", member)
		}
		layout, ok := layouts[strings.TrimSpace(parts[1])]
		if !ok {
			t.Fatalf("unsupported member type in %q", member)
		}
		align, size := layout[0], layout[1]
		cursor = (cursor + align - 1) / align * align
		offsets[strings.TrimSpace(parts[0])] = cursor
		cursor += size
		if align > maxAlign {
			maxAlign = align
		}
	}
	return offsets, (cursor + maxAlign - 1) / maxAlign * maxAlign
}

// scale_factor packs into the position vec3's tail slot rather than a fresh
// 16-byte row; deriving the offsets from the WGSL declaration pins that.
func TestGPUCameraUniformMatchesShaderLayout(t *testing.T) {
	offsets, size := wgslMemberOffsets(t, GPUCameraUniformSource, "CameraUniform")

	u := &GPUCameraUniform{
		Position:    [3]float32{1.5, -2.5, 3.5},
		ScaleFactor: 1.75,
	}
	u.View[5] = 11
	u.Projection[5] = 22
	if got := u.Size(); got != size {
		t.Fatalf("GPUCameraUniform.Size() = %d, shader struct is %d bytes", got, size)
	}
	buf := u.Marshal()
	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	want := map[string][]float32{
		"view":         {0, 0, 0, 0, 0, 11},
		"projection":   {0, 0, 0, 0, 0, 22},
		"position":     {1.5, -2.5, 3.5},
		"scale_factor": {1.75},
	}
	for member, values := range want {
		off, ok := offsets[member]
		if !ok {
			t.Fatalf("shader struct has no member %q", member)
		}
		for i, w := range values {
			if got := readF32(off + i*4); got != w {
				t.Errorf("%s[%d]: shader reads offset %d as %v, want %v", member, i, off+i*4, got, w)
			}
		}
	}
}

func TestGPUViewportMatchesShaderLayout(t *testing.T) {
	offsets, _ := wgslMemberOffsets(t, GPUViewportSource, "Viewport")

	v := &GPUViewport{X: 1, Y: 2, Width: 1920, Height: 1080, MinZ: 0.25, MaxZ: 1}
	buf := v.Marshal()
	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	want := map[string]float32{
		"x": 1, "y": 2, "width": 1920, "height": 1080, "min_z": 0.25, "max_z": 1,
	}
	for member, w := range want {
		off, ok := offsets[member]
		if !ok {
			t.Fatalf("shader struct has no member %q", member)
		}
		if got := readF32(off); got != w {
			t.Errorf("%s: shader reads offset %d as %v, want %v", member, off, got, w)
		}
	}
}

func TestGPUCameraUniformSize(t *testing.T) {
	if got := (&GPUCameraUniform{}).Size(); got != 144 {
		t.Fatalf("GPUCameraUniform.Size() = %d, want 144", got)
	}
	if got := len((&GPUCameraUniform{}).Marshal()); got != 144 {
		t.Fatalf("len(Marshal()) = %d, want 144", got)
	}
}

func TestGPUCameraUniformOffsets(t *testing.T) {
	u := &GPUCameraUniform{
		Position:    [3]float32{1.5, -2.5, 3.5},
		ScaleFactor: 2,
	}
	u.View[0] = 11
	u.Projection[0] = 22
	buf := u.Marshal()

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if readF32(0) != 11 {
		t.Errorf("view at offset 0 = %v, want 11", readF32(0))
	}
	if readF32(64) != 22 {
		t.Errorf("projection at offset 64 = %v, want 22", readF32(64))
	}
	if readF32(128) != 1.5 || readF32(132) != -2.5 || readF32(136) != 3.5 {
		t.Errorf("position at offset 128 = (%v, %v, %v)", readF32(128), readF32(132), readF32(136))
	}
	if readF32(140) != 2 {
		t.Errorf("scale factor at offset 140 = %v, want 2", readF32(140))
	}
}

func TestGPUViewportSizeAndOffsets(t *testing.T) {
	v := &GPUViewport{X: 1, Y: 2, Width: 1920, Height: 1080, MinZ: 0, MaxZ: 1}
	if got := v.Size(); got != 32 {
		t.Fatalf("GPUViewport.Size() = %d, want 32", got)
	}
	buf := v.Marshal()
	if len(buf) != 32 {
		t.Fatalf("len(Marshal()) = %d, want 32", len(buf))
	}
	want := []float32{1, 2, 1920, 1080, 0, 1, 0, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Errorf("field %d = %v, want %v", i, got, w)
		}
	}
}

func TestOrthographicUnprojectRoundTrip(t *testing.T) {
	c := NewCamera(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
		WithOrthographic(1, 0.1, 100),
		WithViewport(common.Viewport{Width: 800, Height: 600, MaxZ: 1}),
	)

	// Window center maps to the camera's world xy.
	x, y, ok := c.ToWorldCoordinates(400, 300)
	if !ok {
		t.Fatal("ToWorldCoordinates failed for window center")
	}
	if math.Abs(float64(x)) > tolerance || math.Abs(float64(y)) > tolerance {
		t.Errorf("center unprojects to (%v, %v), want (0, 0)", x, y)
	}

	// With zoom 1 the top-left corner is half the viewport away in world units.
	x, y, ok = c.ToWorldCoordinates(0, 0)
	if !ok {
		t.Fatal("ToWorldCoordinates failed for window corner")
	}
	if math.Abs(float64(x+400)) > 1e-3 || math.Abs(float64(y-300)) > 1e-3 {
		t.Errorf("corner unprojects to (%v, %v), want (-400, 300)", x, y)
	}
}

func TestUnprojectRejectsDegenerateViewport(t *testing.T) {
	c := NewCamera(WithViewport(common.Viewport{Width: 0, Height: 600}))
	if _, _, ok := c.ToWorldCoordinates(10, 10); ok {
		t.Error("expected failure for a zero-width viewport")
	}
}

func TestSetPositionPansLookTarget(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	c.SetPosition(5, 3, 10)

	// After panning, the window center still unprojects to the camera xy.
	x, y, ok := c.ToWorldCoordinates(640, 360)
	if !ok {
		t.Fatal("ToWorldCoordinates failed after pan")
	}
	if math.Abs(float64(x-5)) > 1e-3 || math.Abs(float64(y-3)) > 1e-3 {
		t.Errorf("center unprojects to (%v, %v), want (5, 3)", x, y)
	}
}

func TestPerspectiveProjectionDepthRange(t *testing.T) {
	c := NewCamera(
		WithPerspective(60, 1, 100),
		WithViewport(common.Viewport{Width: 800, Height: 800, MaxZ: 1}),
	)
	proj := c.ProjectionMatrix()

	// A point on the near plane lands at z=0 after perspective divide (WebGPU
	// convention), and a far-plane point lands at z=1.
	nearClip := common.MulVec4(proj[:], 0, 0, -1, 1)
	if math.Abs(float64(nearClip[2]/nearClip[3])) > tolerance {
		t.Errorf("near plane depth = %v, want 0", nearClip[2]/nearClip[3])
	}
	farClip := common.MulVec4(proj[:], 0, 0, -100, 1)
	if math.Abs(float64(farClip[2]/farClip[3]-1)) > tolerance {
		t.Errorf("far plane depth = %v, want 1", farClip[2]/farClip[3])
	}
}
