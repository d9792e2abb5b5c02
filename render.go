package rowan

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// jointMarkerPx is the screen size of the square drawn at each joint anchor.
const jointMarkerPx = 4

// drawTree renders a node subtree in ZIndex order with inherited alpha.
func drawTree(dst *ebiten.Image, n *Node, view *View, parentAlpha float64) {
	if !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha

	switch n.Type {
	case NodeTypeOutline:
		drawOutlineNode(dst, n, view, alpha)
	case NodeTypeSegment:
		drawSegmentNode(dst, n, view, alpha)
	}

	for _, child := range n.childrenInOrder() {
		drawTree(dst, child, view, alpha)
	}
}

// drawOutlineNode fills and strokes the node's closed local-space ring,
// projected through the node transform and the view.
func drawOutlineNode(dst *ebiten.Image, n *Node, view *View, alpha float64) {
	if len(n.Points) < 2 {
		return
	}

	sin, cos := math.Sincos(n.Rotation)
	var p vector.Path
	for i, pt := range n.Points {
		world := Vec2{
			X: n.X + pt.X*cos - pt.Y*sin,
			Y: n.Y + pt.X*sin + pt.Y*cos,
		}
		s := view.WorldToScreen(world)
		if i == 0 {
			p.MoveTo(float32(s.X), float32(s.Y))
		} else {
			p.LineTo(float32(s.X), float32(s.Y))
		}
	}
	if len(n.Points) > 2 {
		p.Close()
	}

	fill := n.Fill.withAlpha(alpha)
	if fill.A > 0 && len(n.Points) > 2 {
		dpo := &vector.DrawPathOptions{}
		dpo.ColorScale.Scale(
			float32(fill.R*fill.A), float32(fill.G*fill.A), float32(fill.B*fill.A),
			float32(fill.A))
		vector.FillPath(dst, &p, &vector.FillOptions{}, dpo)
	}

	stroke := n.Stroke.withAlpha(alpha)
	if stroke.A > 0 && n.StrokeWidth > 0 {
		dpo := &vector.DrawPathOptions{}
		dpo.ColorScale.Scale(
			float32(stroke.R*stroke.A), float32(stroke.G*stroke.A), float32(stroke.B*stroke.A),
			float32(stroke.A))
		vector.StrokePath(dst, &p, &vector.StrokeOptions{Width: float32(n.StrokeWidth)}, dpo)
	}
}

// drawSegmentNode strokes the node's open polyline and draws a square marker
// at each point. Segment points are world-space joint anchors.
func drawSegmentNode(dst *ebiten.Image, n *Node, view *View, alpha float64) {
	if len(n.Points) < 2 {
		return
	}
	clr := n.Stroke.withAlpha(alpha).toRGBA()

	prev := view.WorldToScreen(n.Points[0])
	for _, pt := range n.Points[1:] {
		cur := view.WorldToScreen(pt)
		vector.StrokeLine(dst,
			float32(prev.X), float32(prev.Y), float32(cur.X), float32(cur.Y),
			float32(n.StrokeWidth), clr, false)
		prev = cur
	}
	for _, pt := range n.Points {
		s := view.WorldToScreen(pt)
		vector.FillRect(dst,
			float32(s.X)-jointMarkerPx/2, float32(s.Y)-jointMarkerPx/2,
			jointMarkerPx, jointMarkerPx, clr, false)
	}
}

// flushScratch projects and draws every recorded overlay primitive.
func flushScratch(dst *ebiten.Image, c *scratchCanvas, view *View) {
	for i := range c.rects {
		r := &c.rects[i]
		tl := view.WorldToScreen(Vec2{X: r.rect.X, Y: r.rect.Y})
		br := view.WorldToScreen(Vec2{X: r.rect.X + r.rect.Width, Y: r.rect.Y + r.rect.Height})
		x0, y0 := float32(tl.X), float32(tl.Y)
		x1, y1 := float32(br.X), float32(br.Y)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		clr := r.color.toRGBA()
		vector.FillRect(dst, x0, y0, x1-x0, 1, clr, false)
		vector.FillRect(dst, x0, y1-1, x1-x0, 1, clr, false)
		vector.FillRect(dst, x0, y0, 1, y1-y0, clr, false)
		vector.FillRect(dst, x1-1, y0, 1, y1-y0, clr, false)
	}
	for i := range c.lines {
		l := &c.lines[i]
		a := view.WorldToScreen(l.a)
		b := view.WorldToScreen(l.b)
		vector.StrokeLine(dst,
			float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			1, l.color.toRGBA(), false)
	}
	for i := range c.dots {
		d := &c.dots[i]
		s := view.WorldToScreen(d.p)
		half := float32(d.size / 2)
		vector.FillRect(dst,
			float32(s.X)-half, float32(s.Y)-half,
			float32(d.size), float32(d.size), d.color.toRGBA(), false)
	}
}
