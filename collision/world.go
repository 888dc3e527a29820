package collision

import (
	"fmt"

	"go.uber.org/zap"
)

// World indexes shapes in a uniform hash grid. Membership changes are applied
// immediately; geometry changes are queued and applied on the next flush,
// which runs before every query.
type World struct {
	resolver *Resolver
	cellSize float64
	cells    map[CellKey]*shapeSet
	shapes   *shapeSet

	pendingUpdate *shapeSet
	pendingDelete map[CellKey]struct{}

	scratch []Shape

	stats Stats
	log   *zap.Logger
}

// NewWorld creates an empty World. resolver must not be nil. A non-positive
// cellSize selects DefaultCellSize.
func NewWorld(resolver *Resolver, cellSize float64, opts ...Option) *World {
	if resolver == nil {
		panic("collision: NewWorld requires a resolver")
	}
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	o := buildOptions(opts)
	return &World{
		resolver:      resolver,
		cellSize:      cellSize,
		cells:         make(map[CellKey]*shapeSet),
		shapes:        newShapeSet(),
		pendingUpdate: newShapeSet(),
		pendingDelete: make(map[CellKey]struct{}),
		log:           o.logger,
	}
}

func (w *World) Resolver() *Resolver {
	return w.resolver
}

func (w *World) CellSize() float64 {
	return w.cellSize
}

// Len returns the number of registered shapes.
func (w *World) Len() int {
	return w.shapes.Len()
}

// AddShape registers s. A shape can belong to one World at a time; adding an
// owned shape fails with ErrShapeOwned and leaves every World untouched.
func (w *World) AddShape(s Shape) error {
	b := s.base()
	if b.self == nil {
		return ErrShapeNotInitialized
	}
	if b.world != nil {
		return fmt.Errorf("%w: shape %d", ErrShapeOwned, b.id)
	}

	b.world = w
	w.shapes.Add(s)
	w.stats.ShapesAdded++

	r := cellRangeFor(b.bb, w.cellSize)
	for _, k := range r.Keys() {
		w.insertInto(k, s)
	}
	b.cells = r
	b.registered = true
	return nil
}

// RemoveShape unregisters s from the grid. Removing a shape that is not a
// member of w logs a warning and does nothing.
func (w *World) RemoveShape(s Shape) {
	b := s.base()
	if b.world != w {
		w.log.Warn("collision: remove of shape not in world", zap.Uint64("shape_id", b.id))
		return
	}

	if b.registered {
		for _, k := range b.cells.Keys() {
			w.removeFrom(k, s)
		}
	}
	w.shapes.Remove(s)
	w.pendingUpdate.Remove(s)
	w.stats.ShapesRemoved++

	b.world = nil
	b.cells = CellRange{}
	b.registered = false
}

// Flush applies pending relocations and reclaims cells left empty.
func (w *World) Flush() {
	if w.pendingUpdate.Len() > 0 {
		for _, s := range w.pendingUpdate.Shapes() {
			w.relocate(s)
		}
		w.pendingUpdate.Clear()
	}

	if len(w.pendingDelete) > 0 {
		for k := range w.pendingDelete {
			if cell, ok := w.cells[k]; ok && cell.Len() == 0 {
				delete(w.cells, k)
				w.stats.CellsDeleted++
			}
		}
		clear(w.pendingDelete)
	}
}

// IterateShapes calls fn for every registered shape until fn returns false.
// fn must not add or remove shapes.
func (w *World) IterateShapes(fn func(Shape) bool) {
	for _, s := range w.shapes.Shapes() {
		if !fn(s) {
			return
		}
	}
}

// ShapesInCell returns the shapes registered in cell (x, y) after a flush.
func (w *World) ShapesInCell(x, y int) []Shape {
	w.Flush()
	cell, ok := w.cells[CellKey{X: x, Y: y}]
	if !ok {
		return nil
	}
	out := make([]Shape, cell.Len())
	copy(out, cell.Shapes())
	return out
}

// CellCount returns the number of live cells after a flush.
func (w *World) CellCount() int {
	w.Flush()
	return len(w.cells)
}

// CellRangeOf returns the cells s occupies after a flush.
func (w *World) CellRangeOf(s Shape) (CellRange, bool) {
	w.Flush()
	b := s.base()
	if b.world != w || !b.registered {
		return CellRange{}, false
	}
	return b.cells, true
}

func (w *World) queueUpdate(s Shape) {
	w.pendingUpdate.Add(s)
}

// relocate moves s from its previous cells to the cells of its current
// bounds, touching only the cells that differ.
func (w *World) relocate(s Shape) {
	b := s.base()
	if b.world != w {
		return
	}
	w.stats.ShapesUpdated++

	next := cellRangeFor(b.bb, w.cellSize)
	prev := b.cells
	if next == prev {
		return
	}
	for _, k := range prev.Keys() {
		if !next.Contains(k) {
			w.removeFrom(k, s)
		}
	}
	for _, k := range next.Keys() {
		if !prev.Contains(k) {
			w.insertInto(k, s)
		}
	}
	b.cells = next
}

func (w *World) insertInto(k CellKey, s Shape) {
	cell, ok := w.cells[k]
	if !ok {
		cell = newShapeSet()
		w.cells[k] = cell
		w.stats.CellsCreated++
	}
	cell.Add(s)
}

func (w *World) removeFrom(k CellKey, s Shape) {
	cell, ok := w.cells[k]
	if !ok {
		return
	}
	cell.Remove(s)
	if cell.Len() == 0 {
		w.pendingDelete[k] = struct{}{}
	}
}
