package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned rectangle anchored at its minimum corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromBB converts a chipmunk bounding box into a Rect.
func RectFromBB(bb cp.BB) Rect {
	return Rect{X: bb.L, Y: bb.B, Width: bb.R - bb.L, Height: bb.T - bb.B}
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// HalfDiagonal is the radius of the circle circumscribing r.
func (r Rect) HalfDiagonal() float64 {
	return math.Hypot(r.Width, r.Height) / 2
}

// Intersects reports a strict overlap; rectangles sharing only an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: cp.Clamp(p.X, r.X, r.X+r.Width),
		Y: cp.Clamp(p.Y, r.Y, r.Y+r.Height),
	}
}

func (r Rect) IntersectsCircle(c Circle) bool {
	return r.ClosestPoint(c.Center).DistanceSq(c.Center) <= c.Radius*c.Radius
}

func (r Rect) IntersectsLine(l Line) bool {
	if r.Contains(l.From) || r.Contains(l.To) {
		return true
	}
	for _, edge := range r.Edges() {
		if edge.Intersects(l) {
			return true
		}
	}
	return false
}

// Edges returns the four borders of r: top, right, bottom, left.
func (r Rect) Edges() [4]Line {
	tl := cp.Vector{X: r.X, Y: r.Y}
	tr := cp.Vector{X: r.X + r.Width, Y: r.Y}
	br := cp.Vector{X: r.X + r.Width, Y: r.Y + r.Height}
	bl := cp.Vector{X: r.X, Y: r.Y + r.Height}
	return [4]Line{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}
