package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Tolerance is the distance under which two points, or a point and a line, touch.
const Tolerance = 0.5

// Line is a finite segment between two points.
type Line struct {
	From, To cp.Vector
}

func (l Line) BB() cp.BB {
	return cp.BB{
		L: math.Min(l.From.X, l.To.X),
		B: math.Min(l.From.Y, l.To.Y),
		R: math.Max(l.From.X, l.To.X),
		T: math.Max(l.From.Y, l.To.Y),
	}
}

// ClosestPoint returns the point on l nearest to p.
func (l Line) ClosestPoint(p cp.Vector) cp.Vector {
	d := l.To.Sub(l.From)
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return l.From
	}
	t := cp.Clamp(p.Sub(l.From).Dot(d)/lenSq, 0, 1)
	return l.From.Add(d.Mult(t))
}

func (l Line) DistanceTo(p cp.Vector) float64 {
	return l.ClosestPoint(p).Distance(p)
}

// Contains reports whether p is within tolerance of l.
func (l Line) Contains(p cp.Vector, tolerance float64) bool {
	return l.DistanceTo(p) <= tolerance
}

func (l Line) IntersectsCircle(c Circle) bool {
	return l.ClosestPoint(c.Center).DistanceSq(c.Center) <= c.Radius*c.Radius
}

func (l Line) IntersectsRect(r Rect) bool {
	return r.IntersectsLine(l)
}

// Intersects reports whether two segments share at least one point,
// including collinear overlaps and touching endpoints.
func (l Line) Intersects(other Line) bool {
	p1, p2 := l.From, l.To
	p3, p4 := other.From, other.To

	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}
	return false
}

func orientation(a, b, c cp.Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment assumes p is collinear with a and b.
func onSegment(a, b, p cp.Vector) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
