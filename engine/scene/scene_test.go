package scene

import (
	"encoding/binary"
	"testing"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/camera"
	"github.com/lumen2d/lumen/engine/layout"
	"github.com/lumen2d/lumen/engine/light"
	"github.com/lumen2d/lumen/engine/sprite"
	"github.com/lumen2d/lumen/engine/text"
	"github.com/lumen2d/lumen/engine/tile"
	"github.com/lumen2d/lumen/engine/transform"
	"github.com/lumen2d/lumen/engine/ui"

	"github.com/google/uuid"
)

func testCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithOrthographic(1, 0.1, 100),
		camera.WithViewport(common.Viewport{Width: 800, Height: 600, MaxZ: 1}),
	)
}

func testScene(t *testing.T) Scene {
	t.Helper()
	return NewScene(t.Name(), testCamera(), WithMarshalWorkers(2))
}

func TestValidateAcceptsDefaultScene(t *testing.T) {
	s := testScene(t)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestSetViewportRejectsDegenerateDimensions(t *testing.T) {
	s := testScene(t)
	for _, v := range []common.Viewport{
		{Width: 0, Height: 600},
		{Width: 800, Height: 0},
		{Width: -800, Height: 600},
	} {
		if err := s.SetViewport(v); err == nil {
			t.Errorf("SetViewport(%gx%g) accepted a degenerate viewport", v.Width, v.Height)
		}
	}
	if err := s.SetViewport(common.Viewport{Width: 1920, Height: 1080, MaxZ: 1}); err != nil {
		t.Errorf("SetViewport rejected a valid viewport: %v", err)
	}
	if got := s.Camera().Viewport().Width; got != 1920 {
		t.Errorf("viewport width = %g, want 1920", got)
	}
}

func TestSetScaleFactorRejectsNonPositive(t *testing.T) {
	s := testScene(t)
	if err := s.SetScaleFactor(0); err == nil {
		t.Errorf("SetScaleFactor(0) accepted")
	}
	if err := s.SetScaleFactor(-1); err == nil {
		t.Errorf("SetScaleFactor(-1) accepted")
	}
	if err := s.SetScaleFactor(2); err != nil {
		t.Errorf("SetScaleFactor(2) rejected: %v", err)
	}
}

func TestAddLightRejectsNonPositiveConstant(t *testing.T) {
	s := testScene(t)
	bad := light.NewPointLight(light.WithAttenuation(0, 0.09, 0.032))
	if _, err := s.AddLight(bad); err == nil {
		t.Errorf("AddLight accepted a zero constant term")
	}
	good := light.NewPointLight()
	if _, err := s.AddLight(good); err != nil {
		t.Errorf("AddLight rejected a default light: %v", err)
	}
	if got := len(s.Lights()); got != 1 {
		t.Errorf("light count = %d, want 1", got)
	}
}

func TestSpriteHandleLifecycle(t *testing.T) {
	s := testScene(t)
	id := s.AddSprite(sprite.Instance{TexIndex: 1})

	if err := s.SetSprite(id, sprite.Instance{TexIndex: 2}); err != nil {
		t.Fatalf("SetSprite error: %v", err)
	}
	if err := s.SetSprite(uuid.New(), sprite.Instance{}); err == nil {
		t.Errorf("SetSprite accepted an unknown handle")
	}

	s.RemoveSprite(id)
	if err := s.SetSprite(id, sprite.Instance{}); err == nil {
		t.Errorf("SetSprite accepted a removed handle")
	}
	// Removing again is a no-op.
	s.RemoveSprite(id)
}

func TestComposeFrameBlockAndBatchSizes(t *testing.T) {
	s := testScene(t)
	if _, err := s.AddLight(light.NewPointLight()); err != nil {
		t.Fatalf("AddLight error: %v", err)
	}
	s.AddSprite(sprite.Instance{})
	s.AddSprite(sprite.Instance{})
	s.AddTile(tile.Instance{})
	s.AddPanel(ui.Instance{})
	s.AddRelativePanel(ui.RelativeInstance{})
	s.AddTextSection(TextSection{
		Anchor:    layout.Anchor{Top: 1, Right: 1},
		Transform: transform.Identity(),
		Color:     [4]float32{1, 1, 1, 1},
		Glyphs:    []text.Instance{{}, {}, {}},
	})

	frame, err := s.ComposeFrame()
	if err != nil {
		t.Fatalf("ComposeFrame error: %v", err)
	}

	if len(frame.Camera) != 144 {
		t.Errorf("camera block = %d bytes, want 144", len(frame.Camera))
	}
	if len(frame.Viewport) != 32 {
		t.Errorf("viewport block = %d bytes, want 32", len(frame.Viewport))
	}
	if len(frame.Lights) != 3088 {
		t.Errorf("light block = %d bytes, want 3088", len(frame.Lights))
	}
	if frame.SpriteCount != 2 || len(frame.Sprites) != 2*sprite.InstanceSize {
		t.Errorf("sprite batch = %d instances, %d bytes", frame.SpriteCount, len(frame.Sprites))
	}
	if frame.TileCount != 1 || len(frame.Tiles) != tile.InstanceSize {
		t.Errorf("tile batch = %d instances, %d bytes", frame.TileCount, len(frame.Tiles))
	}
	if frame.PanelCount != 1 || len(frame.Panels) != ui.InstanceSize {
		t.Errorf("panel batch = %d instances, %d bytes", frame.PanelCount, len(frame.Panels))
	}
	if frame.RelativePanelCount != 1 || len(frame.RelativePanels) != ui.RelativeInstanceSize {
		t.Errorf("relative panel batch = %d instances, %d bytes", frame.RelativePanelCount, len(frame.RelativePanels))
	}
	if len(frame.Text) != 1 {
		t.Fatalf("text batches = %d, want 1", len(frame.Text))
	}
	if len(frame.Text[0].Section) != 112 {
		t.Errorf("section uniform = %d bytes, want 112", len(frame.Text[0].Section))
	}
	if frame.Text[0].GlyphCount != 3 || len(frame.Text[0].Glyphs) != 3*text.InstanceSize {
		t.Errorf("glyph batch = %d instances, %d bytes", frame.Text[0].GlyphCount, len(frame.Text[0].Glyphs))
	}
}

func TestComposeFrameRejectsInvalidState(t *testing.T) {
	s := NewScene("invalid", camera.NewCamera(
		camera.WithOrthographic(1, 0.1, 100),
	), WithMarshalWorkers(1))
	// No viewport was ever set.
	if _, err := s.ComposeFrame(); err == nil {
		t.Fatalf("ComposeFrame accepted a zero viewport")
	}
}

func TestComposeFrameTruncatesLightsByPriority(t *testing.T) {
	s := testScene(t)
	for i := range light.MaxLights + 8 {
		l := light.NewPointLight(light.WithPriority(float32(i)))
		if _, err := s.AddLight(l); err != nil {
			t.Fatalf("AddLight error: %v", err)
		}
	}

	frame, err := s.ComposeFrame()
	if err != nil {
		t.Fatalf("ComposeFrame error: %v", err)
	}
	count := binary.LittleEndian.Uint32(frame.Lights[3072:])
	if count != light.MaxLights {
		t.Errorf("uploaded light count = %d, want %d", count, light.MaxLights)
	}
}

func TestBatchOrderSurvivesRemoval(t *testing.T) {
	s := testScene(t)
	s.AddSprite(sprite.Instance{TexIndex: 1})
	mid := s.AddSprite(sprite.Instance{TexIndex: 2})
	s.AddSprite(sprite.Instance{TexIndex: 3})
	s.RemoveSprite(mid)

	frame, err := s.ComposeFrame()
	if err != nil {
		t.Fatalf("ComposeFrame error: %v", err)
	}
	if frame.SpriteCount != 2 {
		t.Fatalf("sprite count = %d, want 2", frame.SpriteCount)
	}
	// TexIndex sits at offset 88 within each record.
	first := binary.LittleEndian.Uint32(frame.Sprites[88:])
	second := binary.LittleEndian.Uint32(frame.Sprites[sprite.InstanceSize+88:])
	if first != 1 || second != 3 {
		t.Errorf("batch order after removal = %d,%d, want 1,3", first, second)
	}
}
