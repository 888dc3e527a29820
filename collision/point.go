package collision

import (
	"github.com/jakecoffman/cp"
)

// Point is a dimensionless shape. Point tests report the point as the contact position.
type Point struct {
	Base
	position cp.Vector
}

func NewPoint(position cp.Vector) *Point {
	p := &Point{}
	p.Init(p)
	p.SetPosition(position)
	return p
}

func (p *Point) TypeID() TypeID {
	return TypePoint
}

func (p *Point) Position() cp.Vector {
	return p.position
}

func (p *Point) SetPosition(position cp.Vector) {
	p.position = position
	p.SetBounds(cp.BB{L: position.X, B: position.Y, R: position.X, T: position.Y}, 0)
}

func (p *Point) Center() cp.Vector {
	return p.position
}
