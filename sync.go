package rowan

import "fmt"

// synchronizer mirrors live simulation shapes and joints into the node tree.
//
// It owns two handle maps, shape id to node and joint id to node. Each map is
// injective and total over the live entities it covers: a handle is created
// the first time an entity is seen in an enumeration pass and destroyed
// exactly once, on the source's removal notification. Absence from a pass
// never destroys a handle; a removal for an unknown identifier is a no-op; an
// identifier seen again after its removal is a fresh entity and gets a fresh
// handle.
type synchronizer struct {
	source     Source
	shapeLayer *Node
	jointLayer *Node

	shapes map[EntityID]*Node
	joints map[EntityID]*Node

	fill       func(Shape) Color
	outline    func(Shape) Color
	jointColor func(Joint) Color

	cancel func()
}

func newSynchronizer(src Source, shapeLayer, jointLayer *Node, fill, outline func(Shape) Color, jointColor func(Joint) Color) *synchronizer {
	if fill == nil {
		fill = func(Shape) Color { return DefaultShapeFill }
	}
	if outline == nil {
		outline = func(Shape) Color { return DefaultShapeOutline }
	}
	if jointColor == nil {
		jointColor = func(Joint) Color { return DefaultJointColor }
	}
	s := &synchronizer{
		source:     src,
		shapeLayer: shapeLayer,
		jointLayer: jointLayer,
		shapes:     make(map[EntityID]*Node),
		joints:     make(map[EntityID]*Node),
		fill:       fill,
		outline:    outline,
		jointColor: jointColor,
	}
	s.cancel = src.Listen(s)
	return s
}

// pass runs one synchronization sweep: it creates handles for newly seen
// entities and refreshes every live handle from current simulation state.
func (s *synchronizer) pass(dimSleeping, showSensors, showJoints bool) {
	s.source.EachShape(func(sh Shape) {
		id := sh.ID()
		n, ok := s.shapes[id]
		if !ok {
			n = s.createShapeNode(sh)
			s.shapes[id] = n
		}
		b := sh.Body()
		com := b.CenterOfMass()
		n.X, n.Y = com.X, com.Y
		n.Rotation = b.Angle()
		if sh.Sensor() {
			n.Visible = showSensors
			n.Alpha = sensorAlpha
		} else {
			n.Visible = true
			if dimSleeping && b.Sleeping() {
				n.Alpha = sleepingAlpha
			} else {
				n.Alpha = 1
			}
		}
	})

	// Joint anchors move independently, so joint drawables carry no rigid
	// transform and are rebuilt from the anchors every sweep.
	if showJoints {
		s.source.EachJoint(func(j Joint) {
			id := j.ID()
			n, ok := s.joints[id]
			if !ok {
				n = NewSegment(fmt.Sprintf("joint-%d", id))
				n.Entity = id
				n.Stroke = s.jointColor(j)
				s.jointLayer.AddChild(n)
				s.joints[id] = n
			}
			a, b := j.Anchors()
			n.Points = append(n.Points[:0], a, b)
			n.Visible = true
		})
	}
}

// createShapeNode builds the outline drawable for a newly observed shape. The
// outline ring is built once here, in body-local space; afterwards only the
// node's position and rotation track the body.
func (s *synchronizer) createShapeNode(sh Shape) *Node {
	b := sh.Body()
	n := NewOutline(fmt.Sprintf("shape-%d", sh.ID()), ShapeOutline(sh.Geometry(), b.CenterOfMass(), b.Angle()))
	n.Entity = sh.ID()
	n.Fill = s.fill(sh)
	n.Stroke = s.outline(sh)
	s.shapeLayer.AddChild(n)
	return n
}

// resetSleepingDim restores full opacity on every handle the sleeping dim had
// reduced. The sleeping sweep is the only writer of that alpha value.
func (s *synchronizer) resetSleepingDim() {
	for _, n := range s.shapes {
		if n.Alpha == sleepingAlpha {
			n.Alpha = 1
		}
	}
}

// clearJoints empties and hides every joint drawable. Handles stay alive so
// re-enabling the joint overlay rebuilds them on the next sweep.
func (s *synchronizer) clearJoints() {
	for _, n := range s.joints {
		n.Points = n.Points[:0]
		n.Visible = false
	}
}

// close cancels the removal subscription. Safe to call more than once.
func (s *synchronizer) close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// --- SourceListener ---

// BodyRemoved is a no-op; bodies have no dedicated drawable.
func (s *synchronizer) BodyRemoved(EntityID) {}

// ShapeRemoved destroys the shape's handle. Unknown identifiers are ignored.
func (s *synchronizer) ShapeRemoved(id EntityID) {
	if n, ok := s.shapes[id]; ok {
		delete(s.shapes, id)
		n.Dispose()
	}
}

// JointRemoved destroys the joint's handle. Unknown identifiers are ignored.
func (s *synchronizer) JointRemoved(id EntityID) {
	if n, ok := s.joints[id]; ok {
		delete(s.joints, id)
		n.Dispose()
	}
}
