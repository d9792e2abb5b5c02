package rowan

import "testing"

// Fakes shared by the synchronizer, overlay, status and viewer tests. They
// mirror the Source contract: enumeration over current slices, removal
// delivered through listeners only.

type fakeBody struct {
	id       EntityID
	com      Vec2
	pos      Vec2
	angle    float64
	sleeping bool
}

func (b *fakeBody) ID() EntityID       { return b.id }
func (b *fakeBody) CenterOfMass() Vec2 { return b.com }
func (b *fakeBody) Position() Vec2     { return b.pos }
func (b *fakeBody) Angle() float64     { return b.angle }
func (b *fakeBody) Sleeping() bool     { return b.sleeping }

type fakeShape struct {
	id     EntityID
	body   *fakeBody
	geom   ShapeGeometry
	sensor bool
	bb     Rect
}

func (s *fakeShape) ID() EntityID            { return s.id }
func (s *fakeShape) Body() Body              { return s.body }
func (s *fakeShape) Geometry() ShapeGeometry { return s.geom }
func (s *fakeShape) Sensor() bool            { return s.sensor }
func (s *fakeShape) BB() Rect                { return s.bb }

type fakeJoint struct {
	id   EntityID
	a, b Vec2
}

func (j *fakeJoint) ID() EntityID          { return j.id }
func (j *fakeJoint) Anchors() (Vec2, Vec2) { return j.a, j.b }

type fakeSource struct {
	bodies    []*fakeBody
	shapes    []*fakeShape
	joints    []*fakeJoint
	listeners []SourceListener
}

func (f *fakeSource) EachBody(fn func(Body)) {
	for _, b := range f.bodies {
		fn(b)
	}
}

func (f *fakeSource) EachShape(fn func(Shape)) {
	for _, s := range f.shapes {
		fn(s)
	}
}

func (f *fakeSource) EachJoint(fn func(Joint)) {
	for _, j := range f.joints {
		fn(j)
	}
}

func (f *fakeSource) Listen(l SourceListener) func() {
	f.listeners = append(f.listeners, l)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, x := range f.listeners {
			if x == l {
				f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
				break
			}
		}
	}
}

// dropShape removes the shape from enumeration without notifying listeners.
func (f *fakeSource) dropShape(id EntityID) {
	for i, s := range f.shapes {
		if s.id == id {
			f.shapes = append(f.shapes[:i], f.shapes[i+1:]...)
			return
		}
	}
}

// removeShape removes the shape and delivers the removal notification.
func (f *fakeSource) removeShape(id EntityID) {
	f.dropShape(id)
	for _, l := range f.listeners {
		l.ShapeRemoved(id)
	}
}

func (f *fakeSource) removeJoint(id EntityID) {
	for i, j := range f.joints {
		if j.id == id {
			f.joints = append(f.joints[:i], f.joints[i+1:]...)
			break
		}
	}
	for _, l := range f.listeners {
		l.JointRemoved(id)
	}
}

func (f *fakeSource) removeBody(id EntityID) {
	for i, b := range f.bodies {
		if b.id == id {
			f.bodies = append(f.bodies[:i], f.bodies[i+1:]...)
			break
		}
	}
	for _, l := range f.listeners {
		l.BodyRemoved(id)
	}
}

// fakeContactSource upgrades fakeSource with contact pairs.
type fakeContactSource struct {
	fakeSource
	pairs  []ContactPair
	counts PairCounts
}

func (f *fakeContactSource) EachContactPair(fn func(ContactPair)) {
	for _, p := range f.pairs {
		fn(p)
	}
}

func (f *fakeContactSource) PairCounts() PairCounts { return f.counts }

// fakeGrid is a grid broadphase that counts how it was queried, so tests can
// tell the ranged scan from the full-enumeration fallback.
type fakeGrid struct {
	cell          float64
	cells         map[[2]int]bool
	occupiedCalls int
	eachCalls     int
}

func (g *fakeGrid) CellSize() float64 { return g.cell }

func (g *fakeGrid) Occupied(col, row int) bool {
	g.occupiedCalls++
	return g.cells[[2]int{col, row}]
}

func (g *fakeGrid) EachOccupiedCell(fn func(col, row int)) {
	g.eachCalls++
	for c := range g.cells {
		fn(c[0], c[1])
	}
}

// fakeBroadphaseSource upgrades fakeSource with a broadphase structure.
type fakeBroadphaseSource struct {
	fakeSource
	bp any
}

func (f *fakeBroadphaseSource) Broadphase() any { return f.bp }

type fakeTreeNode struct {
	bb     Rect
	parent *fakeTreeNode
	a, b   *fakeTreeNode
}

func (n *fakeTreeNode) BB() Rect     { return n.bb }
func (n *fakeTreeNode) IsLeaf() bool { return n.a == nil && n.b == nil }

func (n *fakeTreeNode) ChildA() TreeNode {
	if n.a == nil {
		return nil
	}
	return n.a
}

func (n *fakeTreeNode) ChildB() TreeNode {
	if n.b == nil {
		return nil
	}
	return n.b
}

func (n *fakeTreeNode) Parent() TreeNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// --- Listen contract ---

type nopListener struct{}

func (nopListener) BodyRemoved(EntityID)  {}
func (nopListener) ShapeRemoved(EntityID) {}
func (nopListener) JointRemoved(EntityID) {}

func TestListenCancelIdempotent(t *testing.T) {
	src := &fakeSource{}
	c1 := src.Listen(nopListener{})
	c2 := src.Listen(nopListener{})
	if len(src.listeners) != 2 {
		t.Fatalf("expected 2 listeners, got %d", len(src.listeners))
	}
	c1()
	c1()
	if len(src.listeners) != 1 {
		t.Errorf("expected 1 listener after double cancel of first, got %d", len(src.listeners))
	}
	c2()
	if len(src.listeners) != 0 {
		t.Errorf("expected 0 listeners, got %d", len(src.listeners))
	}
}
