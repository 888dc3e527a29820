package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// Lines is a set of segments tested as one shape, e.g. level outlines.
// An empty set has a degenerate bounding box at the origin and never collides.
type Lines struct {
	Base
	lines []common.Line
}

func NewLines(lines ...common.Line) *Lines {
	s := &Lines{}
	s.Init(s)
	s.SetLines(lines...)
	return s
}

func (s *Lines) TypeID() TypeID {
	return TypeLines
}

// Lines returns a copy of the segments.
func (s *Lines) Lines() []common.Line {
	out := make([]common.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Lines) AddLines(lines ...common.Line) {
	s.lines = append(s.lines, lines...)
	s.updateBounds()
}

// AddPolyline appends the segments joining consecutive points, closing the
// chain back to the first point when loop is set.
func (s *Lines) AddPolyline(points []cp.Vector, loop bool) {
	if len(points) < 2 {
		return
	}
	lines := make([]common.Line, 0, len(points))
	for i := 0; i+1 < len(points); i++ {
		lines = append(lines, common.Line{From: points[i], To: points[i+1]})
	}
	if loop && len(points) > 2 {
		lines = append(lines, common.Line{From: points[len(points)-1], To: points[0]})
	}
	s.AddLines(lines...)
}

// SetLines replaces every segment.
func (s *Lines) SetLines(lines ...common.Line) {
	s.lines = append(s.lines[:0:0], lines...)
	s.updateBounds()
}

func (s *Lines) Center() cp.Vector {
	return s.bb.Center()
}

func (s *Lines) updateBounds() {
	if len(s.lines) == 0 {
		s.SetBounds(cp.BB{}, 0)
		return
	}
	bb := s.lines[0].BB()
	for _, l := range s.lines[1:] {
		bb = bb.Merge(l.BB())
	}
	s.SetBounds(bb, common.RectFromBB(bb).HalfDiagonal())
}
