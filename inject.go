package rowan

// InjectSample queues a raw device sample. Queued samples are consumed one per
// tick, before any real device input; this makes scripted interaction
// deterministic regardless of the actual mouse state. An injected sample that
// leaves a button or touch held keeps the real device masked until a later
// injected sample releases it, so a gesture may idle across ticks without
// being disturbed.
func (c *PointerController) InjectSample(s DeviceSample) {
	c.injectQueue = append(c.injectQueue, s)
}

// InjectPress queues a primary-button press at the given viewport coordinates.
// The sample is consumed on the next tick's poll.
func (c *PointerController) InjectPress(x, y float64) {
	c.InjectSample(DeviceSample{CursorX: x, CursorY: y, Left: true})
}

// InjectMove queues a pointer move at the given viewport coordinates with the
// primary button held. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (c *PointerController) InjectMove(x, y float64) {
	c.InjectSample(DeviceSample{CursorX: x, CursorY: y, Left: true})
}

// InjectRelease queues a primary-button release at the given viewport
// coordinates.
func (c *PointerController) InjectRelease(x, y float64) {
	c.InjectSample(DeviceSample{CursorX: x, CursorY: y})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two ticks.
func (c *PointerController) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over ticks-2 intermediate samples, and release at
// (toX, toY). The total sequence consumes `ticks` ticks. Minimum is 2
// (press + release).
func (c *PointerController) InjectDrag(fromX, fromY, toX, toY float64, ticks int) {
	if ticks < 2 {
		ticks = 2
	}
	c.InjectPress(fromX, fromY)
	steps := ticks - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectSecondaryDrag queues a drag performed with the secondary button, the
// gesture the built-in pan responds to.
func (c *PointerController) InjectSecondaryDrag(fromX, fromY, toX, toY float64, ticks int) {
	if ticks < 2 {
		ticks = 2
	}
	c.InjectSample(DeviceSample{CursorX: fromX, CursorY: fromY, Right: true})
	steps := ticks - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectSample(DeviceSample{
			CursorX: fromX + (toX-fromX)*t,
			CursorY: fromY + (toY-fromY)*t,
			Right:   true,
		})
	}
	c.InjectSample(DeviceSample{CursorX: toX, CursorY: toY})
}

// InjectWheel queues a wheel sample at the pointer's current position. Deltas
// reach subscribers exactly as given here.
func (c *PointerController) InjectWheel(dx, dy float64) {
	c.InjectSample(DeviceSample{
		CursorX: c.pointer.Local.X,
		CursorY: c.pointer.Local.Y,
		WheelX:  dx,
		WheelY:  dy,
	})
}

// InjectTouches queues a touch report with the given touch points in viewport
// coordinates. An empty call queues a malformed touch report, which the
// controller ignores unless it ends an ongoing touch.
func (c *PointerController) InjectTouches(points ...Vec2) {
	s := DeviceSample{TouchReport: true}
	for i, p := range points {
		s.Touches = append(s.Touches, TouchPoint{ID: int64(i + 1), X: p.X, Y: p.Y})
	}
	c.InjectSample(s)
}

// InjectedPending reports how many injected samples are waiting to be
// consumed. Script steps use this to wait for a gesture to finish.
func (c *PointerController) InjectedPending() int {
	return len(c.injectQueue)
}
