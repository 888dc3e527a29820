package collision

import (
	"go.uber.org/zap"
)

// Handler is a narrow phase test between two shapes, called with shapes whose
// TypeIDs match the pair it was registered for.
type Handler func(a, b Shape) Contact

// Handle adapts a typed test into a Handler. Shapes of unexpected concrete
// types yield a miss.
func Handle[A, B Shape](fn func(a A, b B) Contact) Handler {
	return func(a, b Shape) Contact {
		x, ok := a.(A)
		if !ok {
			return Miss()
		}
		y, ok := b.(B)
		if !ok {
			return Miss()
		}
		return fn(x, y)
	}
}

type typePair struct {
	a, b TypeID
}

// Resolver maps pairs of shape types to narrow phase handlers.
type Resolver struct {
	handlers map[TypeID]map[TypeID]Handler
	warned   map[typePair]struct{}
	log      *zap.Logger
}

func NewResolver(opts ...Option) *Resolver {
	o := buildOptions(opts)
	return &Resolver{
		handlers: make(map[TypeID]map[TypeID]Handler),
		warned:   make(map[typePair]struct{}),
		log:      o.logger,
	}
}

// SetHandler registers fn for (a, b). For a != b the reversed pair (b, a) gets
// a wrapper that swaps the arguments. A nil fn removes both directions.
func (r *Resolver) SetHandler(a, b TypeID, fn Handler) {
	if fn == nil {
		r.remove(a, b)
		r.remove(b, a)
		return
	}
	r.put(a, b, fn)
	if a != b {
		r.put(b, a, func(x, y Shape) Contact {
			return fn(y, x)
		})
	}
}

// Handler returns the handler registered for (a, b).
func (r *Resolver) Handler(a, b TypeID) (Handler, bool) {
	fn, ok := r.handlers[a][b]
	return fn, ok
}

// Test runs the handler registered for the types of x and y. A missing
// handler is a configuration gap: it is logged and treated as no collision.
func (r *Resolver) Test(x, y Shape) (Result, bool) {
	fn, ok := r.Handler(x.TypeID(), y.TypeID())
	if !ok {
		r.warnMissing(x.TypeID(), y.TypeID())
		return Result{}, false
	}
	return r.TestWithHandler(x, y, fn)
}

// TestWithHandler runs fn on x and y with the same contract as Test.
func (r *Resolver) TestWithHandler(x, y Shape, fn Handler) (Result, bool) {
	if fn == nil {
		return Result{}, false
	}
	c := fn(x, y)
	if !c.hit {
		return Result{}, false
	}
	return newResult(c, x, y), true
}

// handlersFor returns every handler whose first type is a. The map must not be modified.
func (r *Resolver) handlersFor(a TypeID) map[TypeID]Handler {
	return r.handlers[a]
}

func (r *Resolver) put(a, b TypeID, fn Handler) {
	row, ok := r.handlers[a]
	if !ok {
		row = make(map[TypeID]Handler)
		r.handlers[a] = row
	}
	row[b] = fn
	delete(r.warned, typePair{a, b})
}

func (r *Resolver) remove(a, b TypeID) {
	row, ok := r.handlers[a]
	if !ok {
		return
	}
	delete(row, b)
	if len(row) == 0 {
		delete(r.handlers, a)
	}
}

// warnMissing logs once per pair so a missing rule does not flood every frame.
func (r *Resolver) warnMissing(a, b TypeID) {
	key := typePair{a, b}
	if _, ok := r.warned[key]; ok {
		return
	}
	r.warned[key] = struct{}{}
	r.log.Warn("collision: no handler registered for shape pair",
		zap.String("type_a", string(a)),
		zap.String("type_b", string(b)),
	)
}
