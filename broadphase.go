package rowan

import "math"

// gridScanLimit bounds the ranged grid scan: when the visible world area
// spans more than this many cells on an axis, probing every visible cell
// would dominate the frame, so the overlay walks the occupied set instead.
const gridScanLimit = 50

// drawBroadphase records the broadphase overlay for whichever structure the
// source exposes this frame. Values that are neither a grid nor a tree root
// are ignored.
func drawBroadphase(sc *scratchCanvas, src BroadphaseSource, view *View) {
	switch bp := src.Broadphase().(type) {
	case GridBroadphase:
		drawGridBroadphase(sc, bp, view)
	case TreeNode:
		drawTreeBroadphase(sc, bp)
	}
}

// drawGridBroadphase outlines every occupied grid cell that intersects the
// visible world bounds.
func drawGridBroadphase(sc *scratchCanvas, g GridBroadphase, view *View) {
	cell := g.CellSize()
	if cell <= 0 {
		return
	}
	bounds := view.VisibleBounds()
	minCol := int(math.Floor(bounds.X / cell))
	maxCol := int(math.Floor((bounds.X + bounds.Width) / cell))
	minRow := int(math.Floor(bounds.Y / cell))
	maxRow := int(math.Floor((bounds.Y + bounds.Height) / cell))

	if maxCol-minCol+1 > gridScanLimit || maxRow-minRow+1 > gridScanLimit {
		g.EachOccupiedCell(func(col, row int) {
			r := cellRect(col, row, cell)
			if bounds.Intersects(r) {
				sc.rectOutline(r, colorGridCell)
			}
		})
		return
	}
	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			if g.Occupied(col, row) {
				sc.rectOutline(cellRect(col, row, cell), colorGridCell)
			}
		}
	}
}

func cellRect(col, row int, cell float64) Rect {
	return Rect{X: float64(col) * cell, Y: float64(row) * cell, Width: cell, Height: cell}
}

// drawTreeBroadphase walks a bounding-volume tree depth first, outlining each
// node's box and linking its center to its parent's.
func drawTreeBroadphase(sc *scratchCanvas, n TreeNode) {
	if n == nil {
		return
	}
	bb := n.BB()
	sc.rectOutline(bb, colorTreeNode)
	if p := n.Parent(); p != nil {
		sc.line(rectCenter(bb), rectCenter(p.BB()), colorTreeLink)
	}
	if !n.IsLeaf() {
		drawTreeBroadphase(sc, n.ChildA())
		drawTreeBroadphase(sc, n.ChildB())
	}
}

func rectCenter(r Rect) Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
