package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// RegisterBuiltins installs the handlers for every pair of built-in kinds
// except tilemap/tilemap.
func RegisterBuiltins(r *Resolver) {
	r.SetHandler(TypePoint, TypePoint, Handle(pointPoint))
	r.SetHandler(TypePoint, TypeCircle, Handle(pointCircle))
	r.SetHandler(TypePoint, TypeRect, Handle(pointRect))
	r.SetHandler(TypePoint, TypeLines, Handle(pointLines))
	r.SetHandler(TypePoint, TypeTilemap, Handle(pointTilemap))

	r.SetHandler(TypeCircle, TypeCircle, Handle(circleCircle))
	r.SetHandler(TypeCircle, TypeRect, Handle(circleRect))
	r.SetHandler(TypeCircle, TypeLines, Handle(circleLines))
	r.SetHandler(TypeCircle, TypeTilemap, Handle(circleTilemap))

	r.SetHandler(TypeRect, TypeRect, Handle(rectRect))
	r.SetHandler(TypeRect, TypeLines, Handle(rectLines))
	r.SetHandler(TypeRect, TypeTilemap, Handle(rectTilemap))

	r.SetHandler(TypeLines, TypeLines, Handle(linesLines))
	r.SetHandler(TypeLines, TypeTilemap, Handle(linesTilemap))
}

func pointPoint(a, b *Point) Contact {
	if a.position.DistanceSq(b.position) <= common.Tolerance*common.Tolerance {
		return HitAt(a.position)
	}
	return Miss()
}

func pointCircle(a *Point, b *Circle) Contact {
	if b.circle.Contains(a.position) {
		return HitAt(a.position)
	}
	return Miss()
}

func pointRect(a *Point, b *Rectangle) Contact {
	if b.rect.Contains(a.position) {
		return HitAt(a.position)
	}
	return Miss()
}

func pointLines(a *Point, b *Lines) Contact {
	for _, l := range b.lines {
		if l.Contains(a.position, common.Tolerance) {
			return HitAt(a.position)
		}
	}
	return Miss()
}

func pointTilemap(a *Point, b *Tilemap) Contact {
	hit := false
	b.eachCollider(a.bb, a.flags, func(r common.Rect) bool {
		hit = r.Contains(a.position)
		return !hit
	})
	if hit {
		return HitAt(a.position)
	}
	return Miss()
}

func circleCircle(a, b *Circle) Contact {
	return hitIf(a.circle.Intersects(b.circle))
}

func circleRect(a *Circle, b *Rectangle) Contact {
	return hitIf(b.rect.IntersectsCircle(a.circle))
}

func circleLines(a *Circle, b *Lines) Contact {
	for _, l := range b.lines {
		if l.IntersectsCircle(a.circle) {
			return Hit()
		}
	}
	return Miss()
}

func circleTilemap(a *Circle, b *Tilemap) Contact {
	return hitIf(!b.eachCollider(a.bb, a.flags, func(r common.Rect) bool {
		return !r.IntersectsCircle(a.circle)
	}))
}

func rectRect(a, b *Rectangle) Contact {
	return hitIf(a.rect.Intersects(b.rect))
}

func rectLines(a *Rectangle, b *Lines) Contact {
	for _, l := range b.lines {
		if a.rect.IntersectsLine(l) {
			return Hit()
		}
	}
	return Miss()
}

func rectTilemap(a *Rectangle, b *Tilemap) Contact {
	return hitIf(!b.eachCollider(a.bb, a.flags, func(r common.Rect) bool {
		return !r.Intersects(a.rect)
	}))
}

func linesLines(a, b *Lines) Contact {
	for _, la := range a.lines {
		for _, lb := range b.lines {
			if la.Intersects(lb) {
				return Hit()
			}
		}
	}
	return Miss()
}

func linesTilemap(a *Lines, b *Tilemap) Contact {
	for _, l := range a.lines {
		hit := !b.eachCollider(l.BB(), a.flags, func(r common.Rect) bool {
			return !r.IntersectsLine(l)
		})
		if hit {
			return Hit()
		}
	}
	return Miss()
}

func hitIf(ok bool) Contact {
	if ok {
		return Hit()
	}
	return Miss()
}

// distanceMetric underestimates the distance from p to s using s's bounding
// circle. For rectangles and tilemaps this can tie or invert the true surface
// order.
func distanceMetric(p cp.Vector, s Shape) float64 {
	return p.Distance(s.Center()) - s.Radius()
}
