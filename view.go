package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewScaleReference is the viewport size at which the requested scale equals
// the effective scale. A requested scale of 1 shows roughly viewScaleReference
// world units across the smaller viewport axis. Tunable.
const viewScaleReference = 600.0

// scrollAnim holds active scroll-to tweens for translation X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View maps world space to screen space with a uniform zoom scale and a
// world-space translation.
//
// The stored Scale is the requested scale; the scale actually applied is
// derived from it and the viewport so that the same requested scale shows the
// same slice of the world regardless of window size:
//
//	effective = Scale * min(Viewport.Width, Viewport.Height) / viewScaleReference
//
// Fields may be mutated directly; call MarkDirty afterwards so the effective
// scale is recomputed. The setters do this for you.
type View struct {
	// Scale is the requested zoom scale. Zero or negative values degenerate
	// the transform but never error.
	Scale float64
	// Translation is the world-space offset added before scaling. Panning
	// adds world-space deltas directly to it.
	Translation Vec2
	// Viewport is the screen-space rectangle the view projects into.
	Viewport Rect

	effective float64
	dirty     bool

	zoomTween   *gween.Tween
	scrollTween *scrollAnim
}

// newView creates a View with the given viewport and a requested scale of 1.
func newView(viewport Rect) *View {
	return &View{
		Scale:    1,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetScale sets the requested zoom scale and recomputes the effective scale.
func (v *View) SetScale(scale float64) {
	v.Scale = scale
	v.dirty = true
}

// Pan adds a world-space delta to the translation. The delta is applied as-is;
// it is not scaled by the current zoom.
func (v *View) Pan(delta Vec2) {
	v.Translation.X += delta.X
	v.Translation.Y += delta.Y
}

// SetTranslation replaces the world-space translation.
func (v *View) SetTranslation(t Vec2) {
	v.Translation = t
}

// SetViewport replaces the viewport rectangle and re-derives the effective
// scale, so a resized surface keeps showing the same slice of the world.
func (v *View) SetViewport(viewport Rect) {
	v.Viewport = viewport
	v.dirty = true
}

// MarkDirty forces a recomputation of the effective scale on next use.
// Call after mutating Scale or Viewport directly.
func (v *View) MarkDirty() {
	v.dirty = true
}

// EffectiveScale returns the scale actually applied to world coordinates:
// the requested scale normalized by the smaller viewport axis.
func (v *View) EffectiveScale() float64 {
	if v.dirty {
		side := v.Viewport.Width
		if v.Viewport.Height < side {
			side = v.Viewport.Height
		}
		v.effective = v.Scale * side / viewScaleReference
		v.dirty = false
	}
	return v.effective
}

// WorldToScreen converts a world-space point to screen coordinates.
func (v *View) WorldToScreen(p Vec2) Vec2 {
	s := v.EffectiveScale()
	return Vec2{
		X: v.Viewport.X + (p.X+v.Translation.X)*s,
		Y: v.Viewport.Y + (p.Y+v.Translation.Y)*s,
	}
}

// ScreenToWorld converts a screen-space point to world coordinates. It is the
// exact inverse of WorldToScreen. A degenerate (zero) scale maps every screen
// point to the negated translation.
func (v *View) ScreenToWorld(p Vec2) Vec2 {
	s := v.EffectiveScale()
	if s > -1e-12 && s < 1e-12 {
		return Vec2{X: -v.Translation.X, Y: -v.Translation.Y}
	}
	return Vec2{
		X: (p.X-v.Viewport.X)/s - v.Translation.X,
		Y: (p.Y-v.Viewport.Y)/s - v.Translation.Y,
	}
}

// VisibleBounds returns the axis-aligned bounding rect of the visible area in
// world space.
func (v *View) VisibleBounds() Rect {
	tl := v.ScreenToWorld(Vec2{X: v.Viewport.X, Y: v.Viewport.Y})
	br := v.ScreenToWorld(Vec2{
		X: v.Viewport.X + v.Viewport.Width,
		Y: v.Viewport.Y + v.Viewport.Height,
	})
	minX, maxX := tl.X, br.X
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	minY, maxY := tl.Y, br.Y
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ZoomTo animates the requested scale to the given value over duration seconds.
func (v *View) ZoomTo(scale float64, duration float32, easeFn ease.TweenFunc) {
	v.zoomTween = gween.New(float32(v.Scale), float32(scale), duration, easeFn)
}

// ScrollTo animates the translation to the given world offset over duration
// seconds.
func (v *View) ScrollTo(t Vec2, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.Translation.X), float32(t.X), duration, easeFn),
		tweenY: gween.New(float32(v.Translation.Y), float32(t.Y), duration, easeFn),
	}
}

// step advances active tweens. Called once per Viewer.Update.
func (v *View) step(dt float32) {
	if v.zoomTween != nil {
		val, done := v.zoomTween.Update(dt)
		v.Scale = float64(val)
		v.dirty = true
		if done {
			v.zoomTween = nil
		}
	}
	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.Translation.X = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.Translation.Y = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}
}
