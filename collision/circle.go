package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

type Circle struct {
	Base
	circle common.Circle
}

func NewCircle(c common.Circle) *Circle {
	s := &Circle{}
	s.Init(s)
	s.SetShape(c)
	return s
}

func (s *Circle) TypeID() TypeID {
	return TypeCircle
}

func (s *Circle) Shape() common.Circle {
	return s.circle
}

func (s *Circle) SetShape(c common.Circle) {
	s.circle = c
	s.SetBounds(c.BB(), c.Radius)
}

func (s *Circle) Center() cp.Vector {
	return s.circle.Center
}
