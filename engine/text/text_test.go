package text

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/layout"

	"github.com/fzipp/bmfont"
)

const tolerance = 1e-5

var fullHD = common.Viewport{Width: 1920, Height: 1080, MaxZ: 1}

func closeF32(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func testFont(t *testing.T) *Font {
	t.Helper()
	desc := &bmfont.Descriptor{
		Info:   bmfont.Info{Face: "test", Size: 32},
		Common: bmfont.Common{LineHeight: 40, Base: 32, ScaleW: 256, ScaleH: 256},
		Chars: map[rune]bmfont.Char{
			'A': {ID: 'A', X: 0, Y: 0, Width: 20, Height: 30, XOffset: 1, YOffset: 5, XAdvance: 22, Page: 0},
			'V': {ID: 'V', X: 20, Y: 0, Width: 20, Height: 30, XOffset: 1, YOffset: 5, XAdvance: 22, Page: 0},
			' ': {ID: ' ', X: 0, Y: 0, Width: 0, Height: 0, XAdvance: 10, Page: 0},
		},
		Kerning: map[bmfont.CharPair]bmfont.Kerning{
			{First: 'A', Second: 'V'}: {Amount: -3},
		},
	}
	f, err := NewFont(desc)
	if err != nil {
		t.Fatalf("NewFont error: %v", err)
	}
	return f
}

func TestGPUSectionSizeAndOffsets(t *testing.T) {
	s := &GPUSection{
		Anchor: [4]float32{1, 0.25, 0.5, 0.75},
		Margin: [4]int32{-10, 20, -30, 40},
		Color:  [4]float32{0.5, 0.5, 0.5, 1},
	}
	s.Transform[0] = 3
	if got := s.Size(); got != 112 {
		t.Fatalf("GPUSection.Size() = %d, want 112", got)
	}
	buf := s.Marshal()
	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if readF32(0) != 3 {
		t.Errorf("transform at offset 0 = %v, want 3", readF32(0))
	}
	if readF32(64) != 1 || readF32(76) != 0.75 {
		t.Errorf("anchor at offset 64 = %v..%v", readF32(64), readF32(76))
	}
	if got := int32(binary.LittleEndian.Uint32(buf[80:])); got != -10 {
		t.Errorf("margin top at offset 80 = %d, want -10", got)
	}
	if readF32(96) != 0.5 || readF32(108) != 1 {
		t.Errorf("color at offset 96 = %v..%v", readF32(96), readF32(108))
	}
}

func TestInstanceSizeAndLayout(t *testing.T) {
	if InstanceSize != 88 {
		t.Fatalf("InstanceSize = %d, want 88", InstanceSize)
	}
	layout := InstanceLayout()
	if layout.ArrayStride != 88 {
		t.Errorf("ArrayStride = %d, want 88", layout.ArrayStride)
	}
	wantOffsets := []uint64{0, 16, 32, 48, 64, 80}
	if len(layout.Attributes) != len(wantOffsets) {
		t.Fatalf("attribute count = %d, want %d", len(layout.Attributes), len(wantOffsets))
	}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
	}
}

func TestLayoutSizesAreLineRelative(t *testing.T) {
	f := testFont(t)
	placed := f.Layout("A", [4]float32{1, 1, 1, 1})
	if len(placed) != 1 {
		t.Fatalf("placed %d glyphs, want 1", len(placed))
	}
	inst := placed[0].Instance
	// Height 30 over line height 40; aspect 20/30.
	if !closeF32(inst.Size[1], 0.75) {
		t.Errorf("Size.y = %v, want 0.75", inst.Size[1])
	}
	if !closeF32(inst.Size[0], 20.0/30.0) {
		t.Errorf("Size.x = %v, want %v", inst.Size[0], 20.0/30.0)
	}
}

func TestLayoutPenAdvanceAndKerning(t *testing.T) {
	f := testFont(t)
	placed := f.Layout("AV", [4]float32{1, 1, 1, 1})
	if len(placed) != 2 {
		t.Fatalf("placed %d glyphs, want 2", len(placed))
	}
	// Second glyph pen: xadvance 22 + kerning -3 + xoffset 1, in units of the
	// glyph's height (30).
	x, _, _ := placed[1].Instance.Transform.Position()
	if !closeF32(x, (22.0-3.0+1.0)/30.0) {
		t.Errorf("second glyph pen x = %v, want %v", x, (22.0-3.0+1.0)/30.0)
	}
}

func TestLayoutSkipsMissingAndZeroAreaGlyphs(t *testing.T) {
	f := testFont(t)
	placed := f.Layout("A ￿A", [4]float32{1, 1, 1, 1})
	// Space has zero area, U+FFFF is missing: both produce no quad.
	if len(placed) != 2 {
		t.Fatalf("placed %d glyphs, want 2", len(placed))
	}
	// But the space still advanced the pen.
	x0, _, _ := placed[0].Instance.Transform.Position()
	x1, _, _ := placed[1].Instance.Transform.Position()
	if x1 <= x0 {
		t.Errorf("pen did not advance across the space: %v -> %v", x0, x1)
	}
}

func TestLayoutNewlineResetsPen(t *testing.T) {
	f := testFont(t)
	placed := f.Layout("A\nA", [4]float32{1, 1, 1, 1})
	if len(placed) != 2 {
		t.Fatalf("placed %d glyphs, want 2", len(placed))
	}
	x0, y0, _ := placed[0].Instance.Transform.Position()
	x1, y1, _ := placed[1].Instance.Transform.Position()
	if !closeF32(x0, x1) {
		t.Errorf("pen x should reset after newline: %v vs %v", x0, x1)
	}
	if y1 >= y0 {
		t.Errorf("second line should sit below the first: %v vs %v", y1, y0)
	}
}

func TestGlyphPlacementScalesWithPanel(t *testing.T) {
	// A panel occupying the top half of the screen.
	rect := layout.Resolve(
		layout.Anchor{Top: 1, Left: 0, Bottom: 0.5, Right: 1},
		layout.Margin{}, fullHD, 1,
	)
	size := [2]float32{0.5, 0.75}

	_, _, w1, h1 := GlyphPlacement(size, 0, 0, rect, fullHD)

	// Panel pixel height: NDC height 1 * viewport height.
	pxPanel := rect.Height() * fullHD.Height
	wantH := size[1] * pxPanel / fullHD.Height
	wantW := size[0] * size[1] * pxPanel / fullHD.Width
	if !closeF32(h1, wantH) {
		t.Errorf("glyph NDC height = %v, want %v", h1, wantH)
	}
	if !closeF32(w1, wantW) {
		t.Errorf("glyph NDC width = %v, want %v", w1, wantW)
	}

	// Doubling the panel's height doubles the glyph.
	taller := layout.Resolve(
		layout.Anchor{Top: 1, Left: 0, Bottom: 0, Right: 1},
		layout.Margin{}, fullHD, 1,
	)
	_, _, _, h2 := GlyphPlacement(size, 0, 0, taller, fullHD)
	if !closeF32(h2, 2*h1) {
		t.Errorf("glyph height did not scale with panel: %v vs %v", h2, h1)
	}
}

func TestGlyphPlacementPenInGlyphHeightUnits(t *testing.T) {
	rect := layout.Resolve(
		layout.Anchor{Top: 0.75, Left: 0.25, Bottom: 0.25, Right: 0.75},
		layout.Margin{}, fullHD, 1,
	)
	size := [2]float32{1, 0.5}

	x0, _, _, _ := GlyphPlacement(size, 0, 0, rect, fullHD)
	x1, _, _, _ := GlyphPlacement(size, 2, 0, rect, fullHD)

	// Advancing the pen by 2 glyph heights moves the quad by
	// 2 * pxHeight / viewportWidth in NDC.
	pxHeight := size[1] * rect.Height() * fullHD.Height
	want := 2 * pxHeight / fullHD.Width
	if !closeF32(x1-x0, want) {
		t.Errorf("pen advance in NDC = %v, want %v", x1-x0, want)
	}
}
