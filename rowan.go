package rowan

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stroke color.
var ColorWhite = Color{1, 1, 1, 1}

// withAlpha returns the color with its alpha scaled by a.
func (c Color) withAlpha(a float64) Color {
	c.A *= a
	return c
}

// toRGBA converts a rowan Color to a premultiplied color value.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for draw submission.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, deltas, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// EntityID identifies a body, shape, or joint in the simulation. An identifier
// is unique per live entity, stable for the entity's lifetime, and is never
// reused while a drawable handle for the entity is still live. An identifier
// that reappears after a removal notification names a brand-new entity.
type EntityID uint64

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerDown EventType = iota // fires when a button or touch goes down
	EventPointerUp                    // fires when a button or touch is released
	EventPointerMove                  // fires when the pointer position changes
	EventWheel                        // fires on wheel/scroll input, deltas unmodified
)

// MouseButton identifies a mouse button. Left is the primary button, right the
// secondary, middle the auxiliary. Touch input maps to the primary button, or
// to the secondary when more than one touch is active.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary
	MouseButtonRight                     // secondary
	MouseButtonMiddle                    // auxiliary
)

// Default debug palette. Config color callbacks override the shape and joint
// entries; the overlay passes use the rest directly.
var (
	DefaultBackground   = Color{R: 0.06, G: 0.06, B: 0.09, A: 1}
	DefaultShapeFill    = Color{R: 0.23, G: 0.42, B: 0.78, A: 0.6}
	DefaultShapeOutline = Color{R: 0.85, G: 0.89, B: 0.95, A: 1}
	DefaultJointColor   = Color{R: 1, G: 0.75, B: 0, A: 1}

	colorContact     = Color{R: 1, G: 0.2, B: 0.2, A: 1}
	colorAABB        = Color{R: 0.3, G: 0.9, B: 0.4, A: 0.7}
	colorBodyOrigin  = Color{R: 1, G: 0.3, B: 0.9, A: 1}
	colorBodyCOM     = Color{R: 1, G: 0.9, B: 0.2, A: 1}
	colorShapeOrigin = Color{R: 0.3, G: 0.9, B: 0.9, A: 1}
	colorGridCell    = Color{R: 0.5, G: 0.5, B: 0.55, A: 0.5}
	colorTreeNode    = Color{R: 0.2, G: 0.7, B: 0.65, A: 0.6}
	colorTreeLink    = Color{R: 0.2, G: 0.7, B: 0.65, A: 0.35}
)

// sleepingAlpha is the opacity applied to handles of sleeping bodies while the
// sleeping overlay is enabled.
const sleepingAlpha = 0.35

// sensorAlpha is the opacity applied to sensor shapes while sensor
// visualization is enabled. With it disabled, sensor shapes are hidden.
const sensorAlpha = 0.25
