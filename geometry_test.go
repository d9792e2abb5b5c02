package rowan

import (
	"math"
	"strings"
	"testing"
)

// --- circleSegments ---

func TestCircleSegmentsBounds(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   int
	}{
		{"tiny radius clamps low", 0.01, 8},
		{"half unit", 0.5, 8},
		{"unit", 1, 16},
		{"large", 4, 64},
		{"huge clamps high", 1000, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := circleSegments(tt.radius); got != tt.want {
				t.Errorf("circleSegments(%v) = %d, want %d", tt.radius, got, tt.want)
			}
		})
	}
}

// --- ShapeOutline: circles ---

func TestCircleOutlineSampleCount(t *testing.T) {
	g := ShapeGeometry{Kind: ShapeCircle, Center: Vec2{X: 3, Y: 4}, Radius: 0.5}
	pts := ShapeOutline(g, Vec2{X: 3, Y: 4}, 0)
	if len(pts) != 8 {
		t.Fatalf("expected 8 samples for radius 0.5, got %d", len(pts))
	}
	// All samples on the circle, centered at the body-local origin.
	for i, p := range pts {
		r := math.Hypot(p.X, p.Y)
		if math.Abs(r-0.5) > epsilon {
			t.Errorf("sample %d radius = %v, want 0.5", i, r)
		}
	}
}

func TestCircleOutlineOffsetCenter(t *testing.T) {
	// Circle center offset from the body origin stays offset in local space.
	g := ShapeGeometry{Kind: ShapeCircle, Center: Vec2{X: 5, Y: 2}, Radius: 1}
	pts := ShapeOutline(g, Vec2{X: 4, Y: 2}, 0)
	assertVec2(t, "first sample", pts[0], Vec2{X: 2, Y: 0})
}

func TestOutlineDeterministic(t *testing.T) {
	g := ShapeGeometry{
		Kind:     ShapeConvex,
		Verts:    []Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		Rounding: 0.3,
	}
	a := ShapeOutline(g, Vec2{X: 0.25, Y: -0.5}, 0.7)
	b := ShapeOutline(g, Vec2{X: 0.25, Y: -0.5}, 0.7)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// --- ShapeOutline: convex ---

func TestConvexOutlineBodyLocal(t *testing.T) {
	g := ShapeGeometry{
		Kind:  ShapeConvex,
		Verts: []Vec2{{1, 1}, {2, 1}, {2, 2}, {1, 2}},
	}
	pts := ShapeOutline(g, Vec2{X: 1.5, Y: 1.5}, 0)
	want := []Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	if len(pts) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		assertVec2(t, "vertex", pts[i], want[i])
	}
}

func TestConvexOutlineInverseRotation(t *testing.T) {
	// A body rotated by angle must see its world vertices rotated back, so
	// that applying the node transform reproduces the world pose.
	g := ShapeGeometry{Kind: ShapeConvex, Verts: []Vec2{{1, 0}}}
	pts := ShapeOutline(g, Vec2{}, math.Pi/2)
	assertVec2(t, "rotated back", pts[0], Vec2{X: 0, Y: -1})
}

func TestConvexOutlineRoundingExpands(t *testing.T) {
	g := ShapeGeometry{
		Kind:     ShapeConvex,
		Verts:    []Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		Rounding: 0.25,
	}
	pts := ShapeOutline(g, Vec2{}, 0)
	// Four corners, quarter turn each at 2 steps: 3 points per corner.
	if len(pts) != 12 {
		t.Fatalf("expected 12 points, got %d", len(pts))
	}
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range pts {
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	assertNear(t, "max X", maxX, 1.25)
	assertNear(t, "max Y", maxY, 1.25)
}

func TestConvexOutlineClockwiseWinding(t *testing.T) {
	// Same square wound the other way must still expand outward.
	g := ShapeGeometry{
		Kind:     ShapeConvex,
		Verts:    []Vec2{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}},
		Rounding: 0.25,
	}
	pts := ShapeOutline(g, Vec2{}, 0)
	maxX := -math.MaxFloat64
	for _, p := range pts {
		maxX = math.Max(maxX, p.X)
	}
	assertNear(t, "max X", maxX, 1.25)
}

// --- ShapeOutline: edges ---

func TestEdgeOutlineBare(t *testing.T) {
	g := ShapeGeometry{Kind: ShapeEdge, A: Vec2{X: 0, Y: 0}, B: Vec2{X: 2, Y: 0}}
	pts := ShapeOutline(g, Vec2{}, 0)
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	assertVec2(t, "A", pts[0], Vec2{X: 0, Y: 0})
	assertVec2(t, "B", pts[1], Vec2{X: 2, Y: 0})
}

func TestEdgeOutlineCapsule(t *testing.T) {
	g := ShapeGeometry{Kind: ShapeEdge, A: Vec2{X: 0, Y: 0}, B: Vec2{X: 2, Y: 0}, Rounding: 0.5}
	pts := ShapeOutline(g, Vec2{}, 0)
	// Two half-circle caps at 4 steps each: 5 points per cap.
	if len(pts) != 10 {
		t.Fatalf("expected 10 points, got %d", len(pts))
	}
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	assertNear(t, "min X", minX, -0.5)
	assertNear(t, "max X", maxX, 2.5)
	assertNear(t, "min Y", minY, -0.5)
	assertNear(t, "max Y", maxY, 0.5)
}

// --- Contract violations and degenerate input ---

func TestUnknownShapeKindPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown shape kind")
		}
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "rowan: unknown shape kind") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	ShapeOutline(ShapeGeometry{Kind: ShapeKind(99)}, Vec2{}, 0)
}

func TestDegenerateGeometryTolerated(t *testing.T) {
	// Single-vertex hull with rounding: too short to round, returned as-is.
	one := ShapeOutline(ShapeGeometry{Kind: ShapeConvex, Verts: []Vec2{{1, 2}}, Rounding: 0.5}, Vec2{}, 0)
	if len(one) != 1 {
		t.Errorf("expected 1 point, got %d", len(one))
	}

	// Zero-length edge with rounding: the normal fallback keeps it finite.
	pts := ShapeOutline(ShapeGeometry{Kind: ShapeEdge, A: Vec2{X: 1, Y: 1}, B: Vec2{X: 1, Y: 1}, Rounding: 0.5}, Vec2{}, 0)
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("point %d is not finite: %v", i, p)
		}
	}
}

// --- Benchmarks ---

func BenchmarkShapeOutlineCircle(b *testing.B) {
	g := ShapeGeometry{Kind: ShapeCircle, Center: Vec2{X: 1, Y: 2}, Radius: 4}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ShapeOutline(g, Vec2{X: 1, Y: 2}, 0.3)
	}
}

func BenchmarkShapeOutlineRoundedHull(b *testing.B) {
	g := ShapeGeometry{
		Kind:     ShapeConvex,
		Verts:    []Vec2{{-1, -1}, {1, -1}, {1.5, 0}, {1, 1}, {-1, 1}, {-1.5, 0}},
		Rounding: 0.4,
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ShapeOutline(g, Vec2{X: 0.5, Y: -0.25}, 1.2)
	}
}
