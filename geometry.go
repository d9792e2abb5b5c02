package rowan

import (
	"fmt"
	"math"
)

// circleSegments returns the outline sample count for a circle of the given
// radius. Sampling grows with radius so curvature error stays roughly constant
// on screen, clamped to keep tiny and huge shapes bounded.
func circleSegments(radius float64) int {
	n := int(math.Ceil(radius * 16))
	if n < 8 {
		n = 8
	}
	if n > 128 {
		n = 128
	}
	return n
}

// ShapeOutline converts world-space shape geometry into a closed polygon in
// body-local space: every input point is translated by -origin and rotated by
// -angle, so a node positioned at origin and rotated by angle reproduces the
// world pose exactly. origin is typically the owning body's center of mass.
//
// The output is deterministic: identical inputs yield identical vertex
// sequences. Outlines are built once per handle creation and reused; only the
// node transform changes per frame.
//
// An unrecognized Kind is a programming error on the source's side and panics.
func ShapeOutline(g ShapeGeometry, origin Vec2, angle float64) []Vec2 {
	sin, cos := math.Sincos(-angle)
	toLocal := func(p Vec2) Vec2 {
		dx := p.X - origin.X
		dy := p.Y - origin.Y
		return Vec2{X: dx*cos - dy*sin, Y: dx*sin + dy*cos}
	}

	switch g.Kind {
	case ShapeCircle:
		c := toLocal(g.Center)
		n := circleSegments(g.Radius)
		pts := make([]Vec2, n)
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			pts[i] = Vec2{
				X: c.X + g.Radius*math.Cos(a),
				Y: c.Y + g.Radius*math.Sin(a),
			}
		}
		return pts

	case ShapeConvex:
		ring := make([]Vec2, len(g.Verts))
		for i, p := range g.Verts {
			ring[i] = toLocal(p)
		}
		if g.Rounding <= 0 || len(ring) < 2 {
			return ring
		}
		return roundOutline(ring, g.Rounding)

	case ShapeEdge:
		ring := []Vec2{toLocal(g.A), toLocal(g.B)}
		if g.Rounding <= 0 {
			return ring
		}
		return roundOutline(ring, g.Rounding)

	default:
		panic(fmt.Sprintf("rowan: unknown shape kind %d", g.Kind))
	}
}

// roundOutline expands a convex ring outward by radius r, joining the offset
// edges with arcs at each vertex. A two-vertex ring degenerates to a capsule:
// each endpoint turns a half circle between the segment normal and its
// negation.
func roundOutline(ring []Vec2, r float64) []Vec2 {
	n := len(ring)

	// Winding sign from the signed area; outward normals depend on it.
	// A two-vertex ring has zero area and either sign works.
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	sign := 1.0
	if area < 0 {
		sign = -1.0
	}

	out := make([]Vec2, 0, n*4)
	for i := 0; i < n; i++ {
		prev := ring[(i+n-1)%n]
		cur := ring[i]
		next := ring[(i+1)%n]

		n1 := outwardNormal(prev, cur, sign)
		n2 := outwardNormal(cur, next, sign)

		// Signed turn between the incident edge normals: cos from the dot
		// product, sin from the 2D cross product. Antiparallel normals
		// (straight-through edges, capsule caps) resolve to a half turn.
		cross := n1.X*n2.Y - n1.Y*n2.X
		dot := n1.X*n2.X + n1.Y*n2.Y
		turn := math.Atan2(cross, dot)

		steps := int(math.Ceil(math.Abs(turn) / (2 * math.Pi) * float64(circleSegments(r))))
		if steps < 1 {
			steps = 1
		}
		for k := 0; k <= steps; k++ {
			a := turn * float64(k) / float64(steps)
			s, c := math.Sincos(a)
			// Rotate n1 by a.
			nx := n1.X*c - n1.Y*s
			ny := n1.X*s + n1.Y*c
			out = append(out, Vec2{X: cur.X + nx*r, Y: cur.Y + ny*r})
		}
	}
	return out
}

// outwardNormal returns the unit normal of the edge a->b pointing away from
// the ring interior for the given winding sign. A degenerate edge falls back
// to a fixed direction so rounding never divides by zero.
func outwardNormal(a, b Vec2, sign float64) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-12 {
		return Vec2{X: 0, Y: -sign}
	}
	return Vec2{X: sign * dy / ln, Y: -sign * dx / ln}
}
