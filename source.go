package rowan

// ShapeKind tags the geometry variant carried by a ShapeGeometry.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota // Center + Radius
	ShapeConvex                  // Verts ring + Rounding
	ShapeEdge                    // A, B endpoints + Rounding
)

// ShapeGeometry describes a shape's geometry in world space at the moment it
// is read. Kind selects which fields are meaningful; the set of kinds is
// closed, and a value outside it is a fatal programming error on the source's
// side (the geometry builder panics).
type ShapeGeometry struct {
	Kind ShapeKind

	// Circle fields.
	Center Vec2
	Radius float64

	// Convex fields. Verts is the hull ring in world space, either winding.
	Verts []Vec2

	// Edge fields, world space.
	A, B Vec2

	// Rounding is the corner radius applied to convex and edge outlines.
	Rounding float64
}

// Body is a rigid body exposed by the simulation.
type Body interface {
	ID() EntityID
	// CenterOfMass returns the body's center of mass in world space.
	CenterOfMass() Vec2
	// Position returns the body's reference point (the origin of the body
	// frame) in world space. For most bodies it coincides with the center
	// of mass.
	Position() Vec2
	// Angle returns the body's rotation in radians.
	Angle() float64
	Sleeping() bool
}

// Shape is a collision shape attached to a body.
type Shape interface {
	ID() EntityID
	Body() Body
	Geometry() ShapeGeometry
	// Sensor reports whether the shape detects overlaps without colliding.
	Sensor() bool
	// BB returns the shape's current axis-aligned bounding rectangle in
	// world space.
	BB() Rect
}

// Joint is a constraint between two bodies. Anchors returns both attachment
// points in world space; because the two ends move independently, joint
// drawables are rebuilt from the anchors every frame.
type Joint interface {
	ID() EntityID
	Anchors() (Vec2, Vec2)
}

// SourceListener receives entity removal notifications from a Source.
//
// Removal is the only way a live entity leaves the renderer: a handle is never
// destroyed just because its entity was absent from an enumeration pass.
// Sources must never deliver a removal for an identifier before every creation
// observation of that identifier within the same logical frame.
type SourceListener interface {
	BodyRemoved(EntityID)
	ShapeRemoved(EntityID)
	JointRemoved(EntityID)
}

// Source is the read-only view of a physics simulation that the renderer
// mirrors. Enumeration callbacks run synchronously on the caller's goroutine.
type Source interface {
	EachBody(func(Body))
	EachShape(func(Shape))
	EachJoint(func(Joint))
	// Listen registers a removal listener. The returned cancel function
	// unregisters it; calling cancel more than once is a no-op.
	Listen(SourceListener) (cancel func())
}

// ContactPair is one active contact between two shapes: a shared normal and
// the current contact points, all in world space.
type ContactPair struct {
	Normal Vec2
	Points []Vec2
	// Sensor is true when either shape of the pair is a sensor. Sensor pairs
	// are skipped by the collision overlay.
	Sensor bool
}

// PairCounts reports how many candidate pairs survived each collision phase
// during the simulation's last step.
type PairCounts struct {
	Broad  int
	Mid    int
	Narrow int
}

// ContactSource is an optional Source upgrade exposing the simulation's
// collision manager. The renderer type-asserts for it; sources without
// contact data simply never satisfy it and the collision overlay and pair
// counts degrade gracefully.
type ContactSource interface {
	Source
	EachContactPair(func(ContactPair))
	PairCounts() PairCounts
}

// GridBroadphase is a uniform-grid broadphase view: a cell size and a
// cell-keyed occupancy map.
type GridBroadphase interface {
	CellSize() float64
	// Occupied reports whether the cell at (col, row) holds at least one
	// entry. Cell (0, 0) covers world [0,CellSize) on both axes.
	Occupied(col, row int) bool
	// EachOccupiedCell enumerates every occupied cell. Used as the bounded
	// fallback when the visible cell range is implausibly large.
	EachOccupiedCell(func(col, row int))
}

// TreeNode is one node of a bounding-volume-tree broadphase.
type TreeNode interface {
	BB() Rect
	IsLeaf() bool
	// ChildA and ChildB return the children of an internal node, nil for
	// leaves.
	ChildA() TreeNode
	ChildB() TreeNode
	// Parent returns the parent node, nil for the root.
	Parent() TreeNode
}

// BroadphaseSource is an optional Source upgrade exposing the broadphase
// structure. Broadphase returns a GridBroadphase, a TreeNode (the tree root),
// or nil when nothing is available this frame; any other value is ignored.
type BroadphaseSource interface {
	Source
	Broadphase() any
}
