package rowan

import (
	"strings"
	"testing"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewOutlineDefaults(t *testing.T) {
	pts := []Vec2{{0, 0}, {1, 0}, {0, 1}}
	n := NewOutline("tri", pts)
	assertNodeDefaults(t, n, "tri", NodeTypeOutline)
	if len(n.Points) != 3 {
		t.Errorf("Points length = %d, want 3", len(n.Points))
	}
}

func TestNewSegmentDefaults(t *testing.T) {
	n := NewSegment("joint")
	assertNodeDefaults(t, n, "joint", NodeTypeSegment)
	if len(n.Points) != 0 {
		t.Errorf("Points length = %d, want 0", len(n.Points))
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should default to true")
	}
	if n.StrokeWidth != 1 {
		t.Errorf("StrokeWidth = %v, want 1", n.StrokeWidth)
	}
	if n.Stroke != ColorWhite {
		t.Errorf("Stroke = %v, want white", n.Stroke)
	}
}

func TestNodeIDsUnique(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("consecutive nodes share ID %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildSetsParent(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("c")

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent != b {
		t.Error("child should have moved to b")
	}
	if a.NumChildren() != 0 {
		t.Errorf("a.NumChildren = %d, want 0", a.NumChildren())
	}
	if b.NumChildren() != 1 {
		t.Errorf("b.NumChildren = %d, want 1", b.NumChildren())
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on nil child")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.AddChild(child)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on cycle")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "rowan:") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	child.AddChild(parent)
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(c)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic removing child from non-parent")
		}
	}()
	b.RemoveChild(c)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.AddChild(child)

	child.RemoveFromParent()
	if child.Parent != nil {
		t.Error("Parent should be nil after RemoveFromParent")
	}
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}

	// Detached node: no-op.
	child.RemoveFromParent()
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("children should be detached")
	}
}

// --- Z ordering ---

func TestChildrenInOrderSortsByZIndex(t *testing.T) {
	parent := NewContainer("p")
	low := NewContainer("low")
	mid := NewContainer("mid")
	high := NewContainer("high")

	parent.AddChild(high)
	parent.AddChild(low)
	parent.AddChild(mid)
	high.SetZIndex(10)
	mid.SetZIndex(5)

	got := parent.childrenInOrder()
	if got[0] != low || got[1] != mid || got[2] != high {
		t.Errorf("order = [%s %s %s], want [low mid high]",
			got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestChildrenInOrderStableForEqualZ(t *testing.T) {
	parent := NewContainer("p")
	first := NewContainer("first")
	second := NewContainer("second")
	parent.AddChild(first)
	parent.AddChild(second)

	got := parent.childrenInOrder()
	if got[0] != first || got[1] != second {
		t.Error("equal z-index children should keep insertion order")
	}
}

// --- Dispose ---

func TestDisposeDetachesAndRecurses(t *testing.T) {
	parent := NewContainer("p")
	child := NewOutline("c", []Vec2{{0, 0}, {1, 0}, {0, 1}})
	grand := NewSegment("g")
	parent.AddChild(child)
	child.AddChild(grand)

	child.Dispose()

	if parent.NumChildren() != 0 {
		t.Error("disposed child should be detached from parent")
	}
	if !child.IsDisposed() || !grand.IsDisposed() {
		t.Error("dispose should mark the whole subtree")
	}
	if child.Points != nil {
		t.Error("dispose should release Points")
	}
}

func TestAddChildToDisposedPanicsInDebug(t *testing.T) {
	v := testViewer(&fakeSource{}, Config{})
	v.SetDebugMode(true)
	defer v.SetDebugMode(false)

	n := NewContainer("n")
	n.Dispose()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic adding to disposed node in debug mode")
		}
	}()
	n.AddChild(NewContainer("c"))
}
