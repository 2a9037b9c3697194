package ui

import (
	"github.com/lumen2d/lumen/engine/transform"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade tweens a panel tint's alpha between two values over a fixed duration.
// The RGB channels are left alone so a faded panel keeps its color.
type Fade struct {
	tween *gween.Tween
}

// NewFade creates an alpha fade.
//
// Parameters:
//   - from: the starting alpha
//   - to: the ending alpha
//   - duration: the fade duration in seconds
//   - easing: the easing curve, ease.Linear when nil
//
// Returns:
//   - *Fade: the fade
func NewFade(from, to, duration float32, easing ease.TweenFunc) *Fade {
	if easing == nil {
		easing = ease.Linear
	}
	return &Fade{tween: gween.New(from, to, duration, easing)}
}

// Update advances the fade and writes the current alpha into the tint.
//
// Parameters:
//   - dt: elapsed time in seconds since the last update
//   - color: the tint to write into
//
// Returns:
//   - bool: true once the fade has finished
func (f *Fade) Update(dt float32, color *[4]float32) bool {
	alpha, finished := f.tween.Update(dt)
	color[3] = alpha
	return finished
}

// Reset rewinds the fade to its starting value.
func (f *Fade) Reset() {
	f.tween.Reset()
}

// Slide tweens a panel's translation between two clip-space positions. The
// panel's scale and rotation columns are untouched; only the translation
// column moves.
type Slide struct {
	x *gween.Tween
	y *gween.Tween
}

// NewSlide creates a translation slide.
//
// Parameters:
//   - fromX, fromY: the starting translation
//   - toX, toY: the ending translation
//   - duration: the slide duration in seconds
//   - easing: the easing curve, ease.Linear when nil
//
// Returns:
//   - *Slide: the slide
func NewSlide(fromX, fromY, toX, toY, duration float32, easing ease.TweenFunc) *Slide {
	if easing == nil {
		easing = ease.Linear
	}
	return &Slide{
		x: gween.New(fromX, toX, duration, easing),
		y: gween.New(fromY, toY, duration, easing),
	}
}

// Update advances the slide and writes the current position into the
// transform's translation column.
//
// Parameters:
//   - dt: elapsed time in seconds since the last update
//   - t: the transform to write into
//
// Returns:
//   - bool: true once the slide has finished
func (s *Slide) Update(dt float32, t *transform.Transform) bool {
	x, doneX := s.x.Update(dt)
	y, doneY := s.y.Update(dt)
	_, _, z := t.Position()
	t.SetPosition(x, y, z)
	return doneX && doneY
}

// Reset rewinds the slide to its starting position.
func (s *Slide) Reset() {
	s.x.Reset()
	s.y.Reset()
}
