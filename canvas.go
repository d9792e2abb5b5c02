package rowan

// Scratch primitives are recorded in world space during the overlay passes
// and projected through the view at flush time.

type scratchLine struct {
	a, b  Vec2
	color Color
}

type scratchRect struct {
	rect  Rect
	color Color
}

type scratchDot struct {
	p     Vec2
	size  float64 // screen pixels, zoom-independent
	color Color
}

// scratchCanvas is the shared per-frame primitive buffer. Every overlay pass
// appends into it; it is cleared exactly once per update and flushed exactly
// once per draw. Slices grow to a high-water mark and are reused.
type scratchCanvas struct {
	lines []scratchLine
	rects []scratchRect
	dots  []scratchDot
}

func (c *scratchCanvas) reset() {
	c.lines = c.lines[:0]
	c.rects = c.rects[:0]
	c.dots = c.dots[:0]
}

func (c *scratchCanvas) empty() bool {
	return len(c.lines) == 0 && len(c.rects) == 0 && len(c.dots) == 0
}

// line records a world-space segment.
func (c *scratchCanvas) line(a, b Vec2, color Color) {
	c.lines = append(c.lines, scratchLine{a: a, b: b, color: color})
}

// rectOutline records the outline of a world-space rectangle.
func (c *scratchCanvas) rectOutline(r Rect, color Color) {
	c.rects = append(c.rects, scratchRect{rect: r, color: color})
}

// dot records a square marker centered on a world-space point. size is in
// screen pixels so markers stay legible at any zoom.
func (c *scratchCanvas) dot(p Vec2, size float64, color Color) {
	c.dots = append(c.dots, scratchDot{p: p, size: size, color: color})
}
