package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TouchPoint is one active touch in device client coordinates.
type TouchPoint struct {
	ID   int64
	X, Y float64
}

// DeviceSample is one raw input reading, taken once per tick. The controller
// synthesizes pointer events by comparing consecutive samples.
type DeviceSample struct {
	// CursorX and CursorY are the mouse position in viewport-local pixels.
	CursorX, CursorY float64
	// Held mouse buttons.
	Left, Right, Middle bool
	// Wheel deltas since the previous sample. Forwarded to subscribers
	// unmodified.
	WheelX, WheelY float64
	// Active touches, in client coordinates relative to Bounds.
	Touches []TouchPoint
	// Bounds is the client-space rectangle touch coordinates are relative
	// to. Touches are remapped from it into the viewport's intrinsic size,
	// so samples stay correct when the device surface is scaled. A zero
	// Bounds means coordinates are already viewport-local.
	Bounds Rect
	// TouchReport marks a sample produced by a touch backend. A touch
	// report with no touch data and no prior touches is malformed and is
	// ignored without any state change.
	TouchReport bool
}

// DeviceSource supplies one raw input sample per tick.
type DeviceSource interface {
	Sample() DeviceSample
}

// ebitenDevice is the default DeviceSource, polling Ebitengine directly.
// Ebitengine reports logical coordinates, so no touch remapping is needed.
type ebitenDevice struct {
	touchBuf   []ebiten.TouchID
	hadTouches bool
}

func (d *ebitenDevice) Sample() DeviceSample {
	mx, my := ebiten.CursorPosition()
	wheelX, wheelY := ebiten.Wheel()
	s := DeviceSample{
		CursorX: float64(mx),
		CursorY: float64(my),
		Left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		WheelX:  wheelX,
		WheelY:  wheelY,
	}
	d.touchBuf = ebiten.AppendTouchIDs(d.touchBuf[:0])
	if len(d.touchBuf) > 0 {
		s.TouchReport = true
		s.Touches = make([]TouchPoint, len(d.touchBuf))
		for i, id := range d.touchBuf {
			tx, ty := ebiten.TouchPosition(id)
			s.Touches[i] = TouchPoint{ID: int64(id), X: float64(tx), Y: float64(ty)}
		}
	} else if d.hadTouches {
		// The sample that ends a touch is still a touch report, so the
		// release happens at the last touch position instead of jumping
		// to the mouse cursor.
		s.TouchReport = true
	}
	d.hadTouches = len(d.touchBuf) > 0
	return s
}

// Pointer is the controller's live pointer state, mutated in place as device
// samples are applied.
type Pointer struct {
	// Pressed is true while any button or touch is held. It clears only
	// when the device reports zero buttons and zero touches.
	Pressed bool
	// Per-button held flags. Touch input sets Primary, plus Secondary while
	// more than one touch is active.
	Primary, Secondary, Auxiliary bool
	// Local is the pointer position in viewport pixels; World the same
	// position through the view transform.
	Local, World Vec2
	// LocalDelta is the movement since the previous sample in pixels;
	// WorldDelta is that movement divided by the effective scale, so a
	// handler can pan world content under a dragging pointer one-to-one.
	LocalDelta, WorldDelta Vec2
	// Wheel holds the deltas of the most recent wheel event, unmodified.
	Wheel Vec2
	// TouchCount is the number of active touches, 0 for mouse input.
	TouchCount int
}

// PointerEvent is delivered to subscribers. Pointer is the state snapshot
// after the event was applied; Device is the raw sample that produced it.
type PointerEvent struct {
	Type    EventType
	Button  MouseButton // the edge button for down/up events
	Pointer Pointer
	Device  DeviceSample
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	down   []pointerHandler
	up     []pointerHandler
	move   []pointerHandler
	wheel  []pointerHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing a handle
// twice is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.down = removeHandler(h.reg.down, h.id)
	case EventPointerUp:
		h.reg.up = removeHandler(h.reg.up, h.id)
	case EventPointerMove:
		h.reg.move = removeHandler(h.reg.move, h.id)
	case EventWheel:
		h.reg.wheel = removeHandler(h.reg.wheel, h.id)
	}
}

// removeHandler removes the entry with the given id, compacting the slice.
// The vacated tail slot is zeroed so the removed callback is not retained.
func removeHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(list *[]pointerHandler, event EventType, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	*list = append(*list, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// --- Controller ---

// PointerController converts raw device samples into pointer state and a
// stream of down/up/move/wheel events. One controller serves one view.
type PointerController struct {
	device DeviceSource
	view   *View

	pointer  Pointer
	handlers handlerRegistry

	injectQueue []DeviceSample
	lastInject  DeviceSample
	holding     bool // an injected sample left buttons or touches held
	seeded      bool // first sample only establishes position
}

// NewPointerController creates a controller reading from device and converting
// coordinates through view. A nil device polls Ebitengine.
func NewPointerController(view *View, device DeviceSource) *PointerController {
	if device == nil {
		device = &ebitenDevice{}
	}
	return &PointerController{device: device, view: view}
}

// Pointer returns the live pointer state. The returned pointer is mutated in
// place by each poll; callers must not retain it across ticks expecting a
// snapshot.
func (c *PointerController) Pointer() *Pointer {
	return &c.pointer
}

// OnPointerDown registers a callback fired when a button or touch goes down.
func (c *PointerController) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(&c.handlers.down, EventPointerDown, fn)
}

// OnPointerUp registers a callback fired when a button or touch is released.
func (c *PointerController) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(&c.handlers.up, EventPointerUp, fn)
}

// OnPointerMove registers a callback fired when the pointer position changes,
// with or without buttons held.
func (c *PointerController) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(&c.handlers.move, EventPointerMove, fn)
}

// OnWheel registers a callback fired on wheel input. Wheel deltas are
// forwarded exactly as the device reported them; interpreting them is the
// subscriber's job.
func (c *PointerController) OnWheel(fn func(PointerEvent)) CallbackHandle {
	return c.handlers.add(&c.handlers.wheel, EventWheel, fn)
}

// RemoveListeners unregisters every callback. Safe to call repeatedly.
func (c *PointerController) RemoveListeners() {
	c.handlers.down = nil
	c.handlers.up = nil
	c.handlers.move = nil
	c.handlers.wheel = nil
}

// poll consumes one sample per tick: the oldest injected sample if any are
// queued, otherwise a fresh device reading. While an injected gesture holds a
// button or touch, the device stays masked and the held sample is replayed, so
// idle ticks between injections cannot release or move the pointer.
func (c *PointerController) poll() {
	var sample DeviceSample
	switch {
	case len(c.injectQueue) > 0:
		sample = c.injectQueue[0]
		copy(c.injectQueue, c.injectQueue[1:])
		c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
		c.lastInject = sample
		c.holding = sampleHeld(sample)
	case c.holding:
		sample = c.lastInject
		// Wheel deltas are one-shot, not held state.
		sample.WheelX, sample.WheelY = 0, 0
	default:
		sample = c.device.Sample()
	}
	c.apply(sample)
}

func sampleHeld(s DeviceSample) bool {
	return s.Left || s.Right || s.Middle || len(s.Touches) > 0
}

// apply runs the pointer state machine for a single sample.
func (c *PointerController) apply(sample DeviceSample) {
	// A touch report with no touch data is malformed; ignore it entirely
	// unless it ends an ongoing touch.
	if sample.TouchReport && len(sample.Touches) == 0 && c.pointer.TouchCount == 0 {
		return
	}

	var local Vec2
	var primary, secondary, auxiliary bool
	touchCount := len(sample.Touches)

	if touchCount > 0 {
		// The first touch point drives the pointer. More than one active
		// touch additionally sets the secondary flag, giving two-finger
		// drags the same meaning as a secondary-button drag.
		local = remapTouch(sample.Touches[0], sample.Bounds, c.view.Viewport)
		primary = true
		secondary = touchCount > 1
	} else if sample.TouchReport {
		// A touch just ended. The pointer keeps its last touch position;
		// only the held state clears.
		local = c.pointer.Local
	} else {
		local = Vec2{X: sample.CursorX, Y: sample.CursorY}
		primary = sample.Left
		secondary = sample.Right
		auxiliary = sample.Middle
	}

	moved := false
	if !c.seeded {
		c.seeded = true
		c.pointer.Local = local
	} else if local != c.pointer.Local {
		moved = true
		c.pointer.LocalDelta = Vec2{X: local.X - c.pointer.Local.X, Y: local.Y - c.pointer.Local.Y}
		s := c.view.EffectiveScale()
		if s > 1e-12 || s < -1e-12 {
			c.pointer.WorldDelta = Vec2{X: c.pointer.LocalDelta.X / s, Y: c.pointer.LocalDelta.Y / s}
		} else {
			c.pointer.WorldDelta = Vec2{}
		}
		c.pointer.Local = local
	}
	c.pointer.World = c.view.ScreenToWorld(c.pointer.Local)

	// Move fires before button edges, with the previous button flags still
	// in place.
	if moved {
		c.fire(c.handlers.move, PointerEvent{Type: EventPointerMove, Device: sample})
	}

	prevPrimary, prevSecondary, prevAuxiliary := c.pointer.Primary, c.pointer.Secondary, c.pointer.Auxiliary
	c.pointer.Primary = primary
	c.pointer.Secondary = secondary
	c.pointer.Auxiliary = auxiliary
	c.pointer.TouchCount = touchCount
	c.pointer.Pressed = primary || secondary || auxiliary

	if primary && !prevPrimary {
		c.fire(c.handlers.down, PointerEvent{Type: EventPointerDown, Button: MouseButtonLeft, Device: sample})
	}
	if secondary && !prevSecondary {
		c.fire(c.handlers.down, PointerEvent{Type: EventPointerDown, Button: MouseButtonRight, Device: sample})
	}
	if auxiliary && !prevAuxiliary {
		c.fire(c.handlers.down, PointerEvent{Type: EventPointerDown, Button: MouseButtonMiddle, Device: sample})
	}
	if !primary && prevPrimary {
		c.fire(c.handlers.up, PointerEvent{Type: EventPointerUp, Button: MouseButtonLeft, Device: sample})
	}
	if !secondary && prevSecondary {
		c.fire(c.handlers.up, PointerEvent{Type: EventPointerUp, Button: MouseButtonRight, Device: sample})
	}
	if !auxiliary && prevAuxiliary {
		c.fire(c.handlers.up, PointerEvent{Type: EventPointerUp, Button: MouseButtonMiddle, Device: sample})
	}

	if sample.WheelX != 0 || sample.WheelY != 0 {
		c.pointer.Wheel = Vec2{X: sample.WheelX, Y: sample.WheelY}
		c.fire(c.handlers.wheel, PointerEvent{Type: EventWheel, Device: sample})
	}
}

// fire dispatches an event to a handler list with the current state snapshot.
func (c *PointerController) fire(handlers []pointerHandler, evt PointerEvent) {
	evt.Pointer = c.pointer
	for _, h := range handlers {
		h.fn(evt)
	}
}

// remapTouch converts a client-space touch position into viewport-local
// coordinates by scaling against the device bounds and the viewport's
// intrinsic size.
func remapTouch(t TouchPoint, bounds Rect, viewport Rect) Vec2 {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return Vec2{X: t.X, Y: t.Y}
	}
	return Vec2{
		X: (t.X - bounds.X) * viewport.Width / bounds.Width,
		Y: (t.Y - bounds.Y) * viewport.Height / bounds.Height,
	}
}
