package collision

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"
)

// Shape is the capability every collidable kind provides. Third party kinds
// embed Base, call Base.Init from their constructor and register narrow phase
// handlers for their TypeID.
type Shape interface {
	ID() uint64
	TypeID() TypeID
	BoundingBox() cp.BB
	Radius() float64
	Center() cp.Vector
	CollisionFlags() Mask
	SetCollisionFlags(Mask)
	// World returns the World the shape is registered in, or nil.
	World() *World
	// UserData returns the value attached with SetUserData.
	UserData() any
	SetUserData(any)
	DebugDraw(d DebugDrawer, opacity float64)

	base() *Base
}

var nextShapeID atomic.Uint64

// Base holds the state shared by all shapes: identity, collision flags, cached
// bounds and grid membership. The world pointer does not own the World; it is
// only compared against to validate membership.
type Base struct {
	id     uint64
	self   Shape
	flags  Mask
	bb     cp.BB
	radius float64

	world      *World
	cells      CellRange
	registered bool

	userData any
}

// Init binds b to the shape embedding it and assigns a fresh ID.
func (b *Base) Init(self Shape) {
	b.id = nextShapeID.Add(1)
	b.self = self
	b.flags = MaskAll
}

func (b *Base) ID() uint64 {
	return b.id
}

func (b *Base) BoundingBox() cp.BB {
	return b.bb
}

func (b *Base) Radius() float64 {
	return b.radius
}

func (b *Base) CollisionFlags() Mask {
	return b.flags
}

// SetCollisionFlags does not move the shape in the grid; flags are checked per query.
func (b *Base) SetCollisionFlags(m Mask) {
	b.flags = m
}

func (b *Base) World() *World {
	return b.world
}

func (b *Base) UserData() any {
	return b.userData
}

// SetUserData attaches host bookkeeping; the World never reads it.
func (b *Base) SetUserData(v any) {
	b.userData = v
}

// SetBounds stores freshly computed bounds and notifies the owning World.
func (b *Base) SetBounds(bb cp.BB, radius float64) {
	b.bb = bb
	b.radius = radius
	b.shapeChanged()
}

// shapeChanged queues a deferred grid update; the World relocates the shape
// on its next flush so several edits in one frame cost one relocation.
func (b *Base) shapeChanged() {
	if b.world != nil && b.self != nil {
		b.world.queueUpdate(b.self)
	}
}

func (b *Base) base() *Base {
	return b
}
