package rowan

import "fmt"

// Overlay marker sizes, in screen pixels.
const (
	contactMarkerPx     = 4
	contactNormalPx     = 16
	originMarkerPx      = 5
	comMarkerPx         = 5
	shapeOriginMarkerPx = 4
)

// drawContacts records the collision overlay: a marker at each contact point
// of every active non-sensor pair, plus the pair normal drawn at a fixed
// on-screen length regardless of zoom. Points outside the visible world
// bounds are skipped.
func drawContacts(sc *scratchCanvas, src ContactSource, view *View) {
	s := view.EffectiveScale()
	if s < 1e-12 && s > -1e-12 {
		return
	}
	bounds := view.VisibleBounds()
	normalLen := contactNormalPx / s
	src.EachContactPair(func(p ContactPair) {
		if p.Sensor {
			return
		}
		for _, pt := range p.Points {
			if !bounds.Contains(pt.X, pt.Y) {
				continue
			}
			sc.dot(pt, contactMarkerPx, colorContact)
			tip := Vec2{X: pt.X + p.Normal.X*normalLen, Y: pt.Y + p.Normal.Y*normalLen}
			sc.line(pt, tip, colorContact)
		}
	})
}

// drawAABBs records each shape's axis-aligned bounding rectangle, skipping
// rectangles that do not intersect the visible world bounds.
func drawAABBs(sc *scratchCanvas, src Source, view *View) {
	bounds := view.VisibleBounds()
	src.EachShape(func(sh Shape) {
		bb := sh.BB()
		if !bounds.Intersects(bb) {
			return
		}
		sc.rectOutline(bb, colorAABB)
	})
}

// drawPositions records three marker families: the body reference point, the
// body center of mass, and each shape's own origin, in distinct colors.
func drawPositions(sc *scratchCanvas, src Source, view *View) {
	bounds := view.VisibleBounds()
	src.EachBody(func(b Body) {
		p := b.Position()
		if bounds.Contains(p.X, p.Y) {
			sc.dot(p, originMarkerPx, colorBodyOrigin)
		}
		c := b.CenterOfMass()
		if bounds.Contains(c.X, c.Y) {
			sc.dot(c, comMarkerPx, colorBodyCOM)
		}
	})
	src.EachShape(func(sh Shape) {
		o := shapeOrigin(sh.Geometry())
		if bounds.Contains(o.X, o.Y) {
			sc.dot(o, shapeOriginMarkerPx, colorShapeOrigin)
		}
	})
}

// shapeOrigin returns the representative origin point of a shape's geometry:
// the circle center, the convex hull's vertex mean, or the edge midpoint.
func shapeOrigin(g ShapeGeometry) Vec2 {
	switch g.Kind {
	case ShapeCircle:
		return g.Center
	case ShapeConvex:
		if len(g.Verts) == 0 {
			return Vec2{}
		}
		var sum Vec2
		for _, v := range g.Verts {
			sum.X += v.X
			sum.Y += v.Y
		}
		n := float64(len(g.Verts))
		return Vec2{X: sum.X / n, Y: sum.Y / n}
	case ShapeEdge:
		return Vec2{X: (g.A.X + g.B.X) / 2, Y: (g.A.Y + g.B.Y) / 2}
	default:
		panic(fmt.Sprintf("rowan: unknown shape kind %d", g.Kind))
	}
}
