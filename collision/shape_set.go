package collision

// shapeSet is an insertion ordered set of shapes keyed by ID. The dense slice
// keeps iteration cache friendly; removal swaps the last element in.
type shapeSet struct {
	dense  []Shape
	sparse map[uint64]int
}

func newShapeSet() *shapeSet {
	return &shapeSet{sparse: make(map[uint64]int)}
}

func (s *shapeSet) Has(id uint64) bool {
	_, ok := s.sparse[id]
	return ok
}

// Add inserts sh and reports whether it was absent.
func (s *shapeSet) Add(sh Shape) bool {
	id := sh.ID()
	if _, ok := s.sparse[id]; ok {
		return false
	}
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, sh)
	return true
}

// Remove deletes sh and reports whether it was present.
func (s *shapeSet) Remove(sh Shape) bool {
	id := sh.ID()
	idx, ok := s.sparse[id]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[idx] = moved
	s.sparse[moved.ID()] = idx
	s.dense[last] = nil
	s.dense = s.dense[:last]
	delete(s.sparse, id)
	return true
}

func (s *shapeSet) Len() int {
	return len(s.dense)
}

// Shapes returns the dense slice. Callers must not keep it across mutations.
func (s *shapeSet) Shapes() []Shape {
	return s.dense
}

func (s *shapeSet) Clear() {
	clear(s.dense)
	s.dense = s.dense[:0]
	clear(s.sparse)
}
