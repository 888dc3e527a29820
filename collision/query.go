package collision

import (
	"cmp"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// Predicate filters broad phase candidates after the mask test.
type Predicate func(Shape) bool

// QueryOptions tune a query. The zero value tests every shape in grid order.
type QueryOptions struct {
	// SortByDistance orders candidates by distance to the query shape's
	// center minus their bounding radius before the narrow phase.
	SortByDistance bool
	// Mask is intersected with each candidate's flags. Zero selects MaskAll.
	Mask      Mask
	Predicate Predicate
}

func (o QueryOptions) mask() Mask {
	if o.Mask == 0 {
		return MaskAll
	}
	return o.Mask
}

// TestCollision returns the first collision between s and another shape in
// the World. Without SortByDistance "first" means first in grid order, not nearest.
func (w *World) TestCollision(s Shape, opts QueryOptions) (Result, bool) {
	handlers := w.resolver.handlersFor(s.TypeID())

	if opts.SortByDistance {
		for _, c := range w.sortedCandidates(s, opts) {
			if res, ok := w.narrowPhase(s, c, handlers); ok {
				return res, true
			}
		}
		return Result{}, false
	}

	var (
		found Result
		hit   bool
	)
	w.eachCandidate(s, opts.mask(), opts.Predicate, func(c Shape) bool {
		found, hit = w.narrowPhase(s, c, handlers)
		return !hit
	})
	return found, hit
}

// TestCollisionMany returns every collision between s and other shapes.
// onHit, when set, runs for each result as it is found; returning false stops
// the query. With SortByDistance results arrive nearest first.
func (w *World) TestCollisionMany(s Shape, opts QueryOptions, onHit func(Result) bool) []Result {
	handlers := w.resolver.handlersFor(s.TypeID())

	var results []Result
	visit := func(c Shape) bool {
		res, ok := w.narrowPhase(s, c, handlers)
		if !ok {
			return true
		}
		results = append(results, res)
		return onHit == nil || onHit(res)
	}

	if opts.SortByDistance {
		for _, c := range w.sortedCandidates(s, opts) {
			if c.World() != w {
				continue
			}
			if !visit(c) {
				break
			}
		}
		return results
	}

	w.eachCandidate(s, opts.mask(), opts.Predicate, visit)
	return results
}

// Pick returns the shapes touching position, probing with a Point when
// radius <= 1 and with a Circle otherwise. The mask also selects which
// tilemap tiles count.
func (w *World) Pick(position cp.Vector, radius float64, opts QueryOptions) []Shape {
	results := w.TestCollisionMany(probe(position, radius, opts.mask()), opts, nil)
	shapes := make([]Shape, len(results))
	for i, res := range results {
		shapes[i] = res.Second()
	}
	return shapes
}

// PickFirst is Pick stopping at the first match.
func (w *World) PickFirst(position cp.Vector, radius float64, opts QueryOptions) (Shape, bool) {
	res, ok := w.TestCollision(probe(position, radius, opts.mask()), opts)
	if !ok {
		return nil, false
	}
	return res.Second(), true
}

// probe builds the throwaway query shape for Pick. It carries the query mask
// as its own flags so tilemaps filter their tiles the same way.
func probe(position cp.Vector, radius float64, mask Mask) Shape {
	var s Shape
	if radius <= 1 {
		s = NewPoint(position)
	} else {
		s = NewCircle(common.Circle{Center: position, Radius: radius})
	}
	s.SetCollisionFlags(mask)
	return s
}

// eachCandidate is the broad phase: it visits the cells overlapped by s's
// bounding box and calls fn once per distinct shape other than s that passes
// the mask and predicate, until fn returns false.
func (w *World) eachCandidate(s Shape, mask Mask, pred Predicate, fn func(Shape) bool) {
	w.Flush()
	w.stats.BroadPhaseCalls++

	r := cellRangeFor(s.BoundingBox(), w.cellSize)
	self := s.ID()
	visited := make(map[uint64]struct{}, 16)

	// fn may add or remove shapes, so each cell is copied before visiting.
	buf := w.takeScratch()
	defer func() { w.putScratch(buf) }()

	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			cell, ok := w.cells[CellKey{X: x, Y: y}]
			if !ok {
				continue
			}
			buf = append(buf[:0], cell.Shapes()...)
			for _, c := range buf {
				id := c.ID()
				if id == self || c.World() != w {
					continue
				}
				if _, seen := visited[id]; seen {
					continue
				}
				visited[id] = struct{}{}
				w.stats.Candidates++

				if c.CollisionFlags()&mask == 0 {
					continue
				}
				if pred != nil && !pred(c) {
					continue
				}
				w.stats.CandidatesAccepted++

				if !fn(c) {
					return
				}
			}
		}
	}
}

// takeScratch hands out the World's candidate buffer. A nested query made
// from a callback finds it taken and allocates its own.
func (w *World) takeScratch() []Shape {
	buf := w.scratch
	w.scratch = nil
	return buf[:0]
}

func (w *World) putScratch(buf []Shape) {
	clear(buf[:cap(buf)])
	w.scratch = buf[:0]
}

type rankedShape struct {
	shape Shape
	dist  float64
}

// sortedCandidates collects every broad phase candidate and orders them by
// distanceMetric. Ties keep grid order.
func (w *World) sortedCandidates(s Shape, opts QueryOptions) []Shape {
	center := s.Center()
	var ranked []rankedShape
	w.eachCandidate(s, opts.mask(), opts.Predicate, func(c Shape) bool {
		ranked = append(ranked, rankedShape{shape: c, dist: distanceMetric(center, c)})
		return true
	})
	slices.SortStableFunc(ranked, func(a, b rankedShape) int {
		return cmp.Compare(a.dist, b.dist)
	})

	out := make([]Shape, len(ranked))
	for i, rs := range ranked {
		out[i] = rs.shape
	}
	return out
}

// narrowPhase confirms a candidate using the query type's handler row.
func (w *World) narrowPhase(s, c Shape, handlers map[TypeID]Handler) (Result, bool) {
	fn, ok := handlers[c.TypeID()]
	if !ok {
		w.resolver.warnMissing(s.TypeID(), c.TypeID())
		return Result{}, false
	}
	w.stats.NarrowPhaseTests++
	res, hit := w.resolver.TestWithHandler(s, c, fn)
	if hit {
		w.stats.Matches++
	}
	return res, hit
}
