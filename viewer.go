package rowan

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Config configures a Viewer. Zero values select sensible defaults where a
// default exists; all overlay toggles start as given, so a zero Config starts
// with every overlay off. DefaultConfig returns the usual starting set.
type Config struct {
	// Viewport size in pixels. Nonpositive dimensions default to 800x600.
	Width, Height float64
	// Background fill. A fully transparent color selects DefaultBackground.
	Background Color
	// Initial view. Scale 0 defaults to 1.
	Scale       float64
	Translation Vec2

	// Per-entity color callbacks. Nil callbacks select palette defaults.
	ShapeFill    func(Shape) Color
	ShapeOutline func(Shape) Color
	JointColor   func(Joint) Color

	// Device overrides the input backend. Nil polls Ebitengine.
	Device DeviceSource

	// Overlay toggles.
	DrawSleeping   bool
	DrawCollisions bool
	DrawJoints     bool
	DrawSensors    bool
	DrawAABBs      bool
	DrawPositions  bool
	ShowStatus     bool
	DrawBroadphase bool
}

// DefaultConfig returns a Config with the usual starting overlays: sleeping
// dim, joints, sensors and the status readout on, the heavier diagnostic
// overlays off.
func DefaultConfig() Config {
	return Config{
		DrawSleeping: true,
		DrawJoints:   true,
		DrawSensors:  true,
		ShowStatus:   true,
	}
}

// Viewer mirrors one simulation source onto an Ebitengine frame. The host
// drives it with Update(dt) then Draw(screen), one pair per tick, from a
// single goroutine; neither call is reentrant.
type Viewer struct {
	source Source
	view   *View
	ptr    *PointerController
	debug  bool

	root       *Node
	shapeLayer *Node
	jointLayer *Node

	sync    *synchronizer
	scratch scratchCanvas
	status  *statusReadout
	script  *ScriptRunner

	background Color

	drawSleeping   bool
	drawCollisions bool
	drawJoints     bool
	drawSensors    bool
	drawAABBs      bool
	drawPositions  bool
	showStatus     bool
	drawBroadphase bool

	// ScreenshotDir is where queued screenshots are written. Empty selects
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
}

// New creates a Viewer mirroring src.
func New(src Source, cfg Config) *Viewer {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	v := &Viewer{
		source:         src,
		background:     cfg.Background,
		drawSleeping:   cfg.DrawSleeping,
		drawCollisions: cfg.DrawCollisions,
		drawJoints:     cfg.DrawJoints,
		drawSensors:    cfg.DrawSensors,
		drawAABBs:      cfg.DrawAABBs,
		drawPositions:  cfg.DrawPositions,
		showStatus:     cfg.ShowStatus,
		drawBroadphase: cfg.DrawBroadphase,
	}
	if v.background.A == 0 {
		v.background = DefaultBackground
	}

	v.view = newView(Rect{Width: w, Height: h})
	if cfg.Scale != 0 {
		v.view.SetScale(cfg.Scale)
	}
	v.view.SetTranslation(cfg.Translation)

	v.ptr = NewPointerController(v.view, cfg.Device)

	v.root = NewContainer("root")
	v.shapeLayer = NewContainer("shapes")
	v.jointLayer = NewContainer("joints")
	v.root.AddChild(v.shapeLayer)
	v.root.AddChild(v.jointLayer)
	v.jointLayer.SetZIndex(1)

	v.sync = newSynchronizer(src, v.shapeLayer, v.jointLayer, cfg.ShapeFill, cfg.ShapeOutline, cfg.JointColor)
	v.status = newStatusReadout()

	v.installBuiltins()
	return v
}

// installBuiltins subscribes the built-in camera interactions: a drag with
// the secondary button (or two touches) pans, the wheel zooms about the
// current scale.
func (v *Viewer) installBuiltins() {
	v.ptr.OnPointerMove(func(e PointerEvent) {
		if e.Pointer.Secondary {
			v.view.Pan(e.Pointer.WorldDelta)
		}
	})
	v.ptr.OnWheel(func(e PointerEvent) {
		s := v.view.Scale
		v.view.SetScale(s - e.Pointer.Wheel.Y*s/1000)
	})
}

// Update advances the viewer by dt seconds: it polls and dispatches pointer
// input, steps view tweens, synchronizes entity handles, and records the
// enabled overlay passes. The scratch overlay list is cleared exactly once
// here and flushed exactly once in Draw.
func (v *Viewer) Update(dt float64) {
	if v.script != nil {
		v.script.step(v)
	}
	v.ptr.poll()
	v.view.step(float32(dt))

	var stats debugStats
	var t0 time.Time

	if v.debug {
		t0 = time.Now()
	}

	v.scratch.reset()
	v.sync.pass(v.drawSleeping, v.drawSensors, v.drawJoints)

	if v.debug {
		stats.syncTime = time.Since(t0)
		t0 = time.Now()
	}

	if v.drawCollisions {
		if cs, ok := v.source.(ContactSource); ok {
			drawContacts(&v.scratch, cs, v.view)
		}
	}
	if v.drawAABBs {
		drawAABBs(&v.scratch, v.source, v.view)
	}
	if v.drawPositions {
		drawPositions(&v.scratch, v.source, v.view)
	}
	if v.drawBroadphase {
		if bs, ok := v.source.(BroadphaseSource); ok {
			drawBroadphase(&v.scratch, bs, v.view)
		}
	}
	if v.showStatus {
		v.status.tick(dt, v.source)
	}

	if v.debug {
		stats.overlayTime = time.Since(t0)
		stats.shapeHandles = len(v.sync.shapes)
		stats.jointHandles = len(v.sync.joints)
		stats.scratchLines = len(v.scratch.lines)
		stats.scratchRects = len(v.scratch.rects)
		stats.scratchDots = len(v.scratch.dots)
		v.debugLog(stats)
	}
}

// Draw renders the frame in fixed order: background, shape layer, joint
// layer, overlay scratch, status text.
func (v *Viewer) Draw(screen *ebiten.Image) {
	vp := v.view.Viewport
	vector.FillRect(screen, float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height), v.background.toRGBA(), false)

	drawTree(screen, v.root, v.view, 1)
	flushScratch(screen, &v.scratch, v.view)
	if v.showStatus {
		v.status.draw(screen, vp)
	}
	v.flushScreenshots(screen)
}

// --- Toggles ---

// SetDrawSleeping toggles dimming of sleeping bodies. Disabling restores full
// opacity immediately.
func (v *Viewer) SetDrawSleeping(on bool) {
	if v.drawSleeping && !on {
		v.sync.resetSleepingDim()
	}
	v.drawSleeping = on
}

// SetDrawCollisions toggles the contact-point overlay.
func (v *Viewer) SetDrawCollisions(on bool) {
	v.drawCollisions = on
}

// SetDrawJoints toggles joint drawables. Disabling clears and hides them
// immediately; their handles stay live and refill on re-enable.
func (v *Viewer) SetDrawJoints(on bool) {
	if v.drawJoints && !on {
		v.sync.clearJoints()
	}
	v.drawJoints = on
}

// SetDrawSensors toggles sensor shape visibility.
func (v *Viewer) SetDrawSensors(on bool) {
	v.drawSensors = on
}

// SetDrawAABBs toggles the bounding-box overlay.
func (v *Viewer) SetDrawAABBs(on bool) {
	v.drawAABBs = on
}

// SetDrawPositions toggles the origin and center-of-mass markers.
func (v *Viewer) SetDrawPositions(on bool) {
	v.drawPositions = on
}

// SetShowStatus toggles the status readout. Disabling clears its text
// immediately.
func (v *Viewer) SetShowStatus(on bool) {
	if v.showStatus && !on {
		v.status.reset()
	}
	v.showStatus = on
}

// SetDrawBroadphase toggles the broadphase structure overlay.
func (v *Viewer) SetDrawBroadphase(on bool) {
	v.drawBroadphase = on
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-update sync and overlay stats are logged to stderr.
func (v *Viewer) SetDebugMode(enabled bool) {
	v.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Viewer debug flag so that node
// operations (which lack a Viewer pointer) can check it cheaply. Only valid
// with a single Viewer; multiple Viewers with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// --- Accessors ---

// View returns the view transform for direct camera control.
func (v *Viewer) View() *View {
	return v.view
}

// SetScale sets the requested view scale.
func (v *Viewer) SetScale(scale float64) {
	v.view.SetScale(scale)
}

// SetViewport resizes the viewer's viewport, re-deriving the effective scale.
func (v *Viewer) SetViewport(w, h float64) {
	vp := v.view.Viewport
	vp.Width, vp.Height = w, h
	v.view.SetViewport(vp)
}

// Pointer returns the live pointer state.
func (v *Viewer) Pointer() *Pointer {
	return v.ptr.Pointer()
}

// Controller returns the pointer controller, for event subscriptions and
// input injection.
func (v *Viewer) Controller() *PointerController {
	return v.ptr
}

// RemoveListeners tears down every subscription the viewer installed: all
// pointer callbacks and the source removal listener. Safe to call repeatedly.
func (v *Viewer) RemoveListeners() {
	v.ptr.RemoveListeners()
	v.sync.close()
}
