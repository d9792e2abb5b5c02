// playground runs a toy circle-stack simulation and mirrors it through rowan
// with every overlay wired to the keyboard. Bodies spawn in waves, settle to
// sleep, and despawn below the kill line, so handle creation and removal are
// both visible live. No external assets are required.
package main

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/rowan"
)

const (
	windowTitle = "Rowan — Playground"

	screenW = 1280
	screenH = 720

	// World extent in simulation units; scale 25 on a 720-high viewport shows
	// all of it.
	worldW = 42.0
	worldH = 23.0

	gravity     = 30.0
	restitution = 0.3
	damping     = 0.999
	spawnEvery  = 0.6
	maxBodies   = 90

	// The floor stops short of the walls; discs drain through the gaps, fall
	// past the kill line and are despawned with a removal notification.
	floorGap  = 4.0
	killLineY = 40.0

	// Bodies below this speed for a full second are put to sleep.
	sleepSpeed = 0.08
	sleepAfter = 1.0

	gridCell = 2.0

	blastRadius = 8.0
	blastSpeed  = 25.0
)

func main() {
	w := newWorld()

	viewer := rowan.New(w, rowan.Config{
		Width:        screenW,
		Height:       screenH,
		Scale:        25,
		DrawSleeping: true,
		DrawJoints:   true,
		DrawSensors:  true,
		ShowStatus:   true,
	})

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(windowTitle)
	if err := ebiten.RunGame(newGame(w, viewer)); err != nil {
		log.Fatal(err)
	}
}

// --- Game host ---

type toggles struct {
	sleeping, collisions, joints, sensors bool
	aabbs, positions, status, broadphase  bool
}

type game struct {
	world  *world
	viewer *rowan.Viewer
	on     toggles
}

func newGame(w *world, v *rowan.Viewer) *game {
	return &game{
		world:  w,
		viewer: v,
		on:     toggles{sleeping: true, joints: true, sensors: true, status: true},
	}
}

func (g *game) Update() error {
	tps := float64(ebiten.TPS())
	if tps <= 0 {
		tps = 60
	}
	dt := 1.0 / tps

	g.handleKeys()
	g.world.step(dt)
	g.viewer.Update(dt)
	return nil
}

func (g *game) handleKeys() {
	v := g.viewer
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.on.sleeping = !g.on.sleeping
		v.SetDrawSleeping(g.on.sleeping)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.on.collisions = !g.on.collisions
		v.SetDrawCollisions(g.on.collisions)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.on.joints = !g.on.joints
		v.SetDrawJoints(g.on.joints)
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		g.on.sensors = !g.on.sensors
		v.SetDrawSensors(g.on.sensors)
	case inpututil.IsKeyJustPressed(ebiten.Key5):
		g.on.aabbs = !g.on.aabbs
		v.SetDrawAABBs(g.on.aabbs)
	case inpututil.IsKeyJustPressed(ebiten.Key6):
		g.on.positions = !g.on.positions
		v.SetDrawPositions(g.on.positions)
	case inpututil.IsKeyJustPressed(ebiten.Key7):
		g.on.status = !g.on.status
		v.SetShowStatus(g.on.status)
	case inpututil.IsKeyJustPressed(ebiten.Key8):
		g.on.broadphase = !g.on.broadphase
		v.SetDrawBroadphase(g.on.broadphase)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.world.spawnWave(10)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.world.explode(v.Pointer().World)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.Screenshot("playground")
	}
}

const helpText = "1 sleep  2 contacts  3 joints  4 sensors  5 aabbs  6 origins  7 status  8 grid\n" +
	"space spawn   E explode at cursor   P screenshot   right-drag pan   wheel zoom"

func (g *game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)
	ebitenutil.DebugPrintAt(screen, helpText, 8, screenH-36)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// --- Toy simulation ---

// body is one simulated disc, or a static wall segment. Each body carries
// exactly one shape; ids are never reused.
type body struct {
	id      rowan.EntityID
	shapeID rowan.EntityID

	pos    rowan.Vec2
	vel    rowan.Vec2
	angle  float64
	angVel float64

	radius float64
	mass   float64

	static  bool
	sensor  bool
	edgeA   rowan.Vec2 // static wall endpoints, world space
	edgeB   rowan.Vec2
	asleep  bool
	calmFor float64
}

func (b *body) ID() rowan.EntityID       { return b.id }
func (b *body) CenterOfMass() rowan.Vec2 { return b.pos }
func (b *body) Position() rowan.Vec2     { return b.pos }
func (b *body) Angle() float64           { return b.angle }
func (b *body) Sleeping() bool           { return b.asleep }

// shape adapts a body to rowan.Shape. Geometry is rebuilt on read so it always
// reflects the current world-space state.
type shape struct {
	b *body
}

func (s shape) ID() rowan.EntityID { return s.b.shapeID }
func (s shape) Body() rowan.Body   { return s.b }
func (s shape) Sensor() bool       { return s.b.sensor }

func (s shape) Geometry() rowan.ShapeGeometry {
	if s.b.static && !s.b.sensor {
		return rowan.ShapeGeometry{Kind: rowan.ShapeEdge, A: s.b.edgeA, B: s.b.edgeB, Rounding: 0.05}
	}
	return rowan.ShapeGeometry{Kind: rowan.ShapeCircle, Center: s.b.pos, Radius: s.b.radius}
}

func (s shape) BB() rowan.Rect {
	if s.b.static && !s.b.sensor {
		minX := math.Min(s.b.edgeA.X, s.b.edgeB.X)
		minY := math.Min(s.b.edgeA.Y, s.b.edgeB.Y)
		return rowan.Rect{
			X:      minX,
			Y:      minY,
			Width:  math.Abs(s.b.edgeA.X-s.b.edgeB.X) + 0.1,
			Height: math.Abs(s.b.edgeA.Y-s.b.edgeB.Y) + 0.1,
		}
	}
	r := s.b.radius
	return rowan.Rect{X: s.b.pos.X - r, Y: s.b.pos.Y - r, Width: 2 * r, Height: 2 * r}
}

// spring is a distance joint between two discs.
type spring struct {
	id   rowan.EntityID
	a, b *body
	rest float64
}

func (s *spring) ID() rowan.EntityID                { return s.id }
func (s *spring) Anchors() (rowan.Vec2, rowan.Vec2) { return s.a.pos, s.b.pos }

type world struct {
	bodies  []*body
	springs []*spring

	nextID     rowan.EntityID
	spawnClock float64

	grid      *grid
	pairs     []rowan.ContactPair
	counts    rowan.PairCounts
	listeners []rowan.SourceListener
}

func newWorld() *world {
	w := &world{grid: newGrid(gridCell)}

	// Side walls plus a floor that leaves drain gaps at both ends.
	w.addEdge(rowan.Vec2{X: floorGap, Y: worldH}, rowan.Vec2{X: worldW - floorGap, Y: worldH})
	w.addEdge(rowan.Vec2{X: 0, Y: 0}, rowan.Vec2{X: 0, Y: worldH})
	w.addEdge(rowan.Vec2{X: worldW, Y: 0}, rowan.Vec2{X: worldW, Y: worldH})

	// A still overlap zone in the middle of the floor.
	zone := w.newBody()
	zone.static = true
	zone.sensor = true
	zone.pos = rowan.Vec2{X: worldW / 2, Y: worldH - 3}
	zone.radius = 3
	w.bodies = append(w.bodies, zone)

	w.spawnWave(16)

	// Chain three discs with springs so the joint overlay has work.
	if len(w.bodies) >= 7 {
		w.link(w.bodies[4], w.bodies[5])
		w.link(w.bodies[5], w.bodies[6])
	}
	return w
}

func (w *world) newBody() *body {
	w.nextID++
	b := &body{id: w.nextID}
	w.nextID++
	b.shapeID = w.nextID
	return b
}

func (w *world) addEdge(a, bp rowan.Vec2) {
	b := w.newBody()
	b.static = true
	b.edgeA, b.edgeB = a, bp
	b.pos = rowan.Vec2{X: (a.X + bp.X) / 2, Y: (a.Y + bp.Y) / 2}
	w.bodies = append(w.bodies, b)
}

func (w *world) link(a, b *body) {
	w.nextID++
	dx := b.pos.X - a.pos.X
	dy := b.pos.Y - a.pos.Y
	w.springs = append(w.springs, &spring{
		id:   w.nextID,
		a:    a,
		b:    b,
		rest: math.Max(math.Hypot(dx, dy), a.radius+b.radius),
	})
}

func (w *world) spawnWave(n int) {
	for i := 0; i < n && w.dynamicCount() < maxBodies; i++ {
		b := w.newBody()
		b.radius = 0.4 + rand.Float64()*0.6
		b.mass = b.radius * b.radius
		b.pos = rowan.Vec2{
			X: 2 + rand.Float64()*(worldW-4),
			Y: -1 - rand.Float64()*4,
		}
		b.vel = rowan.Vec2{X: (rand.Float64() - 0.5) * 4}
		b.angVel = (rand.Float64() - 0.5) * 3
		w.bodies = append(w.bodies, b)
	}
}

func (w *world) dynamicCount() int {
	n := 0
	for _, b := range w.bodies {
		if !b.static {
			n++
		}
	}
	return n
}

// explode shoves every disc near p away from it. Sleeping discs wake up.
func (w *world) explode(p rowan.Vec2) {
	for _, b := range w.bodies {
		if b.static {
			continue
		}
		dx := b.pos.X - p.X
		dy := b.pos.Y - p.Y
		dist := math.Hypot(dx, dy)
		if dist > blastRadius || dist < 1e-6 {
			continue
		}
		strength := blastSpeed * (1 - dist/blastRadius) / b.mass
		b.vel.X += dx / dist * strength
		b.vel.Y += dy / dist * strength
		w.wake(b)
	}
}

func (w *world) wake(b *body) {
	b.asleep = false
	b.calmFor = 0
}

func (w *world) step(dt float64) {
	w.spawnClock += dt
	if w.spawnClock >= spawnEvery {
		w.spawnClock = 0
		w.spawnWave(1)
	}

	w.pairs = w.pairs[:0]
	w.counts = rowan.PairCounts{}

	// Integrate.
	for _, b := range w.bodies {
		if b.static || b.asleep {
			continue
		}
		b.vel.Y += gravity * dt
		b.vel.X *= damping
		b.vel.Y *= damping
		b.pos.X += b.vel.X * dt
		b.pos.Y += b.vel.Y * dt
		b.angle += b.angVel * dt
	}

	w.bounceWalls()
	w.grid.rebuild(w.bodies)
	w.solveContacts()
	w.applySprings(dt)
	w.senseZone()
	w.updateSleep(dt)
	w.despawnFallen()
}

func (w *world) bounceWalls() {
	for _, b := range w.bodies {
		if b.static || b.asleep {
			continue
		}
		r := b.radius
		if b.pos.X < r {
			b.pos.X = r
			b.vel.X = math.Abs(b.vel.X) * restitution
		} else if b.pos.X > worldW-r {
			b.pos.X = worldW - r
			b.vel.X = -math.Abs(b.vel.X) * restitution
		}
		onFloor := b.pos.X > floorGap && b.pos.X < worldW-floorGap
		if onFloor && b.pos.Y > worldH-r {
			b.pos.Y = worldH - r
			b.vel.Y = -math.Abs(b.vel.Y) * restitution
			b.angVel *= 0.9
		}
	}
}

// solveContacts runs the narrowphase over grid candidate pairs: positional
// correction plus a restitution impulse, recording each touching pair for the
// collision overlay.
func (w *world) solveContacts() {
	w.grid.eachCandidate(func(a, b *body) {
		w.counts.Broad++

		dx := b.pos.X - a.pos.X
		dy := b.pos.Y - a.pos.Y
		minDist := a.radius + b.radius
		if math.Abs(dx) >= minDist || math.Abs(dy) >= minDist {
			return
		}
		w.counts.Mid++

		distSq := dx*dx + dy*dy
		if distSq >= minDist*minDist || distSq < 1e-9 {
			return
		}
		w.counts.Narrow++

		dist := math.Sqrt(distSq)
		nx, ny := dx/dist, dy/dist
		overlap := minDist - dist
		total := a.mass + b.mass

		a.pos.X -= nx * overlap * (b.mass / total)
		a.pos.Y -= ny * overlap * (b.mass / total)
		b.pos.X += nx * overlap * (a.mass / total)
		b.pos.Y += ny * overlap * (a.mass / total)

		dvx := a.vel.X - b.vel.X
		dvy := a.vel.Y - b.vel.Y
		dvn := dvx*nx + dvy*ny
		if dvn > 0 {
			impulse := (1 + restitution) * dvn / total
			a.vel.X -= impulse * b.mass * nx
			a.vel.Y -= impulse * b.mass * ny
			b.vel.X += impulse * a.mass * nx
			b.vel.Y += impulse * a.mass * ny
		}
		// Resting contact leaves sleepers alone; only a real hit wakes them.
		if (a.asleep || b.asleep) && dvn > 1.0 {
			w.wake(a)
			w.wake(b)
		}

		mid := rowan.Vec2{X: a.pos.X + nx*a.radius, Y: a.pos.Y + ny*a.radius}
		w.pairs = append(w.pairs, rowan.ContactPair{
			Normal: rowan.Vec2{X: nx, Y: ny},
			Points: []rowan.Vec2{mid},
		})
	})
}

func (w *world) applySprings(dt float64) {
	const stiffness = 40.0
	for _, s := range w.springs {
		dx := s.b.pos.X - s.a.pos.X
		dy := s.b.pos.Y - s.a.pos.Y
		dist := math.Hypot(dx, dy)
		if dist < 1e-9 {
			continue
		}
		force := stiffness * (dist - s.rest)
		fx := dx / dist * force * dt
		fy := dy / dist * force * dt
		if !s.a.static && !s.a.asleep {
			s.a.vel.X += fx / s.a.mass
			s.a.vel.Y += fy / s.a.mass
		}
		if !s.b.static && !s.b.asleep {
			s.b.vel.X -= fx / s.b.mass
			s.b.vel.Y -= fy / s.b.mass
		}
	}
}

// senseZone reports discs overlapping the sensor zone as sensor pairs, which
// the collision overlay ignores but the pair counts include.
func (w *world) senseZone() {
	var zone *body
	for _, b := range w.bodies {
		if b.sensor {
			zone = b
			break
		}
	}
	if zone == nil {
		return
	}
	for _, b := range w.bodies {
		if b.static {
			continue
		}
		dx := b.pos.X - zone.pos.X
		dy := b.pos.Y - zone.pos.Y
		reach := b.radius + zone.radius
		if dx*dx+dy*dy >= reach*reach {
			continue
		}
		w.counts.Narrow++
		w.pairs = append(w.pairs, rowan.ContactPair{
			Normal: rowan.Vec2{X: 0, Y: -1},
			Points: []rowan.Vec2{b.pos},
			Sensor: true,
		})
	}
}

func (w *world) updateSleep(dt float64) {
	for _, b := range w.bodies {
		if b.static || b.asleep {
			continue
		}
		speed := math.Hypot(b.vel.X, b.vel.Y)
		if speed < sleepSpeed {
			b.calmFor += dt
			if b.calmFor >= sleepAfter {
				b.asleep = true
				b.vel = rowan.Vec2{}
				b.angVel = 0
			}
		} else {
			b.calmFor = 0
		}
	}
}

// despawnFallen removes discs past the kill line and notifies listeners. Their
// identifiers are retired with them.
func (w *world) despawnFallen() {
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if b.static || b.pos.Y < killLineY {
			kept = append(kept, b)
			continue
		}
		w.unlink(b)
		for _, l := range w.listeners {
			l.ShapeRemoved(b.shapeID)
			l.BodyRemoved(b.id)
		}
	}
	w.bodies = kept
}

// unlink drops any spring attached to b, notifying listeners.
func (w *world) unlink(b *body) {
	kept := w.springs[:0]
	for _, s := range w.springs {
		if s.a != b && s.b != b {
			kept = append(kept, s)
			continue
		}
		for _, l := range w.listeners {
			l.JointRemoved(s.id)
		}
	}
	w.springs = kept
}

// --- rowan.Source ---

func (w *world) EachBody(fn func(rowan.Body)) {
	for _, b := range w.bodies {
		fn(b)
	}
}

func (w *world) EachShape(fn func(rowan.Shape)) {
	for _, b := range w.bodies {
		fn(shape{b: b})
	}
}

func (w *world) EachJoint(fn func(rowan.Joint)) {
	for _, s := range w.springs {
		fn(s)
	}
}

func (w *world) Listen(l rowan.SourceListener) func() {
	w.listeners = append(w.listeners, l)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, x := range w.listeners {
			if x == l {
				w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

// --- rowan.ContactSource ---

func (w *world) EachContactPair(fn func(rowan.ContactPair)) {
	for _, p := range w.pairs {
		fn(p)
	}
}

func (w *world) PairCounts() rowan.PairCounts { return w.counts }

// --- rowan.BroadphaseSource ---

func (w *world) Broadphase() any { return w.grid }

// grid is a uniform hash grid over dynamic discs. It doubles as the broadphase
// overlay's data source.
type grid struct {
	cell  float64
	cells map[[2]int][]*body
}

func newGrid(cell float64) *grid {
	return &grid{cell: cell, cells: make(map[[2]int][]*body)}
}

func (g *grid) rebuild(bodies []*body) {
	for k := range g.cells {
		delete(g.cells, k)
	}
	for _, b := range bodies {
		if b.static {
			continue
		}
		k := [2]int{int(math.Floor(b.pos.X / g.cell)), int(math.Floor(b.pos.Y / g.cell))}
		g.cells[k] = append(g.cells[k], b)
	}
}

// eachCandidate visits every distinct pair sharing a cell or adjacent cells.
func (g *grid) eachCandidate(fn func(a, b *body)) {
	for k, occupants := range g.cells {
		for i := 0; i < len(occupants); i++ {
			for j := i + 1; j < len(occupants); j++ {
				fn(occupants[i], occupants[j])
			}
		}
		// Half the neighborhood avoids visiting a pair from both sides.
		for _, d := range [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}} {
			for _, other := range g.cells[[2]int{k[0] + d[0], k[1] + d[1]}] {
				for _, b := range occupants {
					fn(b, other)
				}
			}
		}
	}
}

func (g *grid) CellSize() float64 { return g.cell }

func (g *grid) Occupied(col, row int) bool {
	return len(g.cells[[2]int{col, row}]) > 0
}

func (g *grid) EachOccupiedCell(fn func(col, row int)) {
	for k := range g.cells {
		fn(k[0], k[1])
	}
}
