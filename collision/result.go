package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Result describes a confirmed collision between the query shape (First) and
// another shape (Second). Position is only present for tests that produce a
// concrete contact point; area overlaps leave it absent.
type Result struct {
	position    cp.Vector
	hasPosition bool
	first       Shape
	second      Shape
}

func newResult(c Contact, first, second Shape) Result {
	return Result{position: c.point, hasPosition: c.hasPoint, first: first, second: second}
}

func (r Result) Position() (cp.Vector, bool) {
	return r.position, r.hasPosition
}

func (r Result) First() Shape {
	return r.first
}

func (r Result) Second() Shape {
	return r.second
}

func (r Result) String() string {
	if r.hasPosition {
		return fmt.Sprintf("collision{%d x %d at %v}", r.first.ID(), r.second.ID(), r.position)
	}
	return fmt.Sprintf("collision{%d x %d}", r.first.ID(), r.second.ID())
}

// Contact is what a narrow phase Handler reports: a miss, a hit, or a hit at
// a specific point.
type Contact struct {
	point    cp.Vector
	hasPoint bool
	hit      bool
}

func Miss() Contact {
	return Contact{}
}

func Hit() Contact {
	return Contact{hit: true}
}

func HitAt(p cp.Vector) Contact {
	return Contact{point: p, hasPoint: true, hit: true}
}

func (c Contact) IsHit() bool {
	return c.hit
}

func (c Contact) Point() (cp.Vector, bool) {
	return c.point, c.hasPoint
}
