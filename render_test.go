package rowan

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeFullSource feeds every overlay at once: shapes, joints, contact pairs
// and a grid broadphase.
type fakeFullSource struct {
	fakeContactSource
	bp any
}

func (f *fakeFullSource) Broadphase() any { return f.bp }

// drawScene builds a source with n discs on a grid, a handful of joints, two
// contact pairs and an occupied broadphase cell, enough to light up every
// draw path.
func drawScene(n int) *fakeFullSource {
	src := &fakeFullSource{bp: occupiedGrid(2, [2]int{0, 0}, [2]int{1, 1})}
	for i := 0; i < n; i++ {
		b := &fakeBody{
			id:  EntityID(i*2 + 1),
			com: Vec2{X: float64(i%32) * 3, Y: float64(i/32) * 3},
		}
		b.sleeping = i%5 == 0
		sh := circleShape(EntityID(i*2+2), b, 1)
		sh.sensor = i%7 == 0
		sh.bb = Rect{X: b.com.X - 1, Y: b.com.Y - 1, Width: 2, Height: 2}
		src.bodies = append(src.bodies, b)
		src.shapes = append(src.shapes, sh)
	}
	for i := 0; i+1 < len(src.bodies); i += 16 {
		src.joints = append(src.joints, &fakeJoint{
			id: EntityID(100000 + i),
			a:  src.bodies[i].com,
			b:  src.bodies[i+1].com,
		})
	}
	src.pairs = []ContactPair{
		{Normal: Vec2{Y: -1}, Points: []Vec2{{X: 3, Y: 3}}},
		{Normal: Vec2{X: 1}, Points: []Vec2{{X: 6, Y: 3}}},
	}
	src.counts = PairCounts{Broad: 9, Mid: 4, Narrow: 2}
	return src
}

func allOverlaysConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	cfg.Scale = 6
	cfg.DrawCollisions = true
	cfg.DrawAABBs = true
	cfg.DrawPositions = true
	cfg.DrawBroadphase = true
	return cfg
}

// --- Draw smoke ---

func TestDrawAllOverlays(t *testing.T) {
	v := testViewer(drawScene(64), allOverlaysConfig())
	v.Update(tick)

	if v.scratch.empty() {
		t.Fatal("overlays recorded nothing")
	}

	screen := ebiten.NewImage(640, 480)
	v.Draw(screen)
	v.Draw(screen) // a second draw between updates must be safe
}

func TestDrawEmptyScene(t *testing.T) {
	v := testViewer(&fakeSource{}, Config{})
	v.Update(tick)

	screen := ebiten.NewImage(64, 64)
	v.Draw(screen)
}

func TestDrawDegenerateNodes(t *testing.T) {
	screen := ebiten.NewImage(64, 64)
	view := newView(Rect{Width: 64, Height: 64})

	drawOutlineNode(screen, NewOutline("empty", nil), view, 1)
	drawOutlineNode(screen, NewOutline("point", []Vec2{{X: 1, Y: 1}}), view, 1)

	seg := NewSegment("lonely")
	seg.Points = append(seg.Points, Vec2{X: 2, Y: 2})
	drawSegmentNode(screen, seg, view, 1)
}

func TestDrawFlippedScaleNormalizesRects(t *testing.T) {
	view := newView(Rect{Width: 64, Height: 64})
	view.SetScale(-1) // a mirrored view swaps rect corners on screen

	var sc scratchCanvas
	sc.rectOutline(Rect{X: 1, Y: 1, Width: 3, Height: 2}, colorAABB)

	screen := ebiten.NewImage(64, 64)
	flushScratch(screen, &sc, view)
}

// --- Benchmarks ---

func BenchmarkDraw_512Shapes_AllOverlays(b *testing.B) {
	v := testViewer(drawScene(512), allOverlaysConfig())
	v.Update(tick)
	screen := ebiten.NewImage(1280, 720)

	v.Draw(screen) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Draw(screen)
	}
}
