package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// Rectangle is an axis-aligned box. Its radius is the circumscribed circle's,
// which overestimates reach along the axes.
type Rectangle struct {
	Base
	rect common.Rect
}

func NewRectangle(r common.Rect) *Rectangle {
	s := &Rectangle{}
	s.Init(s)
	s.SetShape(r)
	return s
}

func (s *Rectangle) TypeID() TypeID {
	return TypeRect
}

func (s *Rectangle) Shape() common.Rect {
	return s.rect
}

func (s *Rectangle) SetShape(r common.Rect) {
	s.rect = r
	s.SetBounds(r.BB(), r.HalfDiagonal())
}

func (s *Rectangle) Center() cp.Vector {
	return s.rect.Center()
}
