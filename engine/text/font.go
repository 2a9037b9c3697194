package text

import (
	"fmt"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/layout"
	"github.com/lumen2d/lumen/engine/transform"

	"github.com/fzipp/bmfont"
)

// Font wraps a bitmap font descriptor and lays glyph quads out in the
// panel-relative units the text pipeline consumes.
type Font struct {
	desc *bmfont.Descriptor
}

// PlacedGlyph pairs a ready glyph instance with the atlas metadata the asset
// layer needs to bind the right coverage texture: the page index and the
// glyph's pixel rectangle within that page.
type PlacedGlyph struct {
	Instance Instance
	Rune     rune
	Page     int
	// PageRect is the glyph's region within its atlas page, in texels.
	PageRect common.AABB2D
}

// LoadFont reads a BMFont descriptor (.fnt) from disk.
//
// Parameters:
//   - path: the descriptor file path
//
// Returns:
//   - *Font: the loaded font
//   - error: an error if the descriptor cannot be read or has no line height
func LoadFont(path string) (*Font, error) {
	desc, err := bmfont.LoadDescriptor(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load font descriptor %s: %w", path, err)
	}
	return NewFont(desc)
}

// NewFont wraps an already-parsed descriptor.
//
// Parameters:
//   - desc: the BMFont descriptor
//
// Returns:
//   - *Font: the font
//   - error: an error if the descriptor has a zero line height
func NewFont(desc *bmfont.Descriptor) (*Font, error) {
	if desc.Common.LineHeight <= 0 {
		return nil, fmt.Errorf("font %q has non-positive line height", desc.Info.Face)
	}
	return &Font{desc: desc}, nil
}

// LineHeight returns the font's line height in font pixels.
//
// Returns:
//   - float32: the line height
func (f *Font) LineHeight() float32 {
	return float32(f.desc.Common.LineHeight)
}

// Layout places a string as glyph instances. Sizes come out panel-relative:
// Size.y is the glyph height as a fraction of the line height (which the
// shader scales by the panel's pixel height), Size.x is the glyph's
// width-to-height aspect. The pen advances in font pixels and each glyph's
// translation is that pen position re-expressed in its own glyph-height
// units, matching the vertex stage's un-scaling.
//
// Newlines advance the pen one line down and reset the horizontal position.
// Runes missing from the font are skipped.
//
// Parameters:
//   - s: the text to lay out
//   - color: per-glyph tint applied on top of the section tint
//
// Returns:
//   - []PlacedGlyph: one entry per drawable glyph, in string order
func (f *Font) Layout(s string, color [4]float32) []PlacedGlyph {
	lineHeight := float32(f.desc.Common.LineHeight)
	placed := make([]PlacedGlyph, 0, len(s))

	penX := float32(0)
	penY := float32(0)
	var prev rune
	havePrev := false

	for _, r := range s {
		if r == '\n' {
			penX = 0
			penY -= lineHeight
			havePrev = false
			continue
		}
		g, ok := f.desc.Chars[r]
		if !ok {
			continue
		}
		if havePrev {
			if k, ok := f.desc.Kerning[bmfont.CharPair{First: prev, Second: r}]; ok {
				penX += float32(k.Amount)
			}
		}

		if g.Width > 0 && g.Height > 0 {
			gw := float32(g.Width)
			gh := float32(g.Height)
			// Baseline-relative vertical offset: the descriptor's YOffset is
			// y-down from the line top.
			glyphTop := penY - float32(g.YOffset)
			inst := Instance{
				Transform: transform.FromTranslation(
					(penX+float32(g.XOffset))/gh,
					(glyphTop-gh)/gh,
					0,
				),
				Color: color,
				Size:  [2]float32{gw / gh, gh / lineHeight},
			}
			placed = append(placed, PlacedGlyph{
				Instance: inst,
				Rune:     r,
				Page:     g.Page,
				PageRect: common.AABB2D{
					MinX: float32(g.X),
					MinY: float32(g.Y),
					MaxX: float32(g.X + g.Width),
					MaxY: float32(g.Y + g.Height),
				},
			})
		}

		penX += float32(g.XAdvance)
		prev = r
		havePrev = true
	}
	return placed
}

// GlyphPlacement is the CPU reference for the vertex stage's glyph math: given
// a glyph instance's size and pen translation plus the resolved panel rect, it
// returns the glyph quad's NDC center and extent. Used by tests and by
// hit-testing over text.
//
// Parameters:
//   - size: the instance size as (aspect, height fraction)
//   - transX, transY: the instance translation (pen position, glyph-height units)
//   - rect: the panel's resolved anchor rect
//   - viewport: the viewport the rect was resolved against
//
// Returns:
//   - posX, posY: the quad center in NDC
//   - width, height: the quad extent in NDC
func GlyphPlacement(size [2]float32, transX, transY float32, rect layout.Rect, viewport common.Viewport) (posX, posY, width, height float32) {
	pxUIHeight := rect.Height() * viewport.Height
	pxHeight := size[1] * pxUIHeight
	pxWidth := size[0] * pxHeight
	width = pxWidth / viewport.Width
	height = pxHeight / viewport.Height
	posX = rect.CenterX() + pxHeight*transX/viewport.Width + 0.5*width
	posY = rect.CenterY() + pxHeight*transY/viewport.Height + 0.5*height
	return posX, posY, width, height
}
