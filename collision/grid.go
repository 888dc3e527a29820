package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// CellKey identifies one grid cell: floor(coordinate / cellSize) on each axis.
type CellKey struct {
	X, Y int
}

// CellRange is an inclusive rectangle of cells.
type CellRange struct {
	MinX, MinY int
	MaxX, MaxY int
}

func cellRangeFor(bb cp.BB, cellSize float64) CellRange {
	return CellRange{
		MinX: common.CellIndex(bb.L, cellSize),
		MinY: common.CellIndex(bb.B, cellSize),
		MaxX: common.CellIndex(bb.R, cellSize),
		MaxY: common.CellIndex(bb.T, cellSize),
	}
}

func (r CellRange) Contains(k CellKey) bool {
	return k.X >= r.MinX && k.X <= r.MaxX && k.Y >= r.MinY && k.Y <= r.MaxY
}

// Len is the number of cells in the range.
func (r CellRange) Len() int {
	if r.MaxX < r.MinX || r.MaxY < r.MinY {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// Keys lists the cells in row-major order.
func (r CellRange) Keys() []CellKey {
	keys := make([]CellKey, 0, r.Len())
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			keys = append(keys, CellKey{X: x, Y: y})
		}
	}
	return keys
}

// cellRect is the world space area covered by cell k.
func cellRect(k CellKey, cellSize float64) common.Rect {
	return common.Rect{
		X:      float64(k.X) * cellSize,
		Y:      float64(k.Y) * cellSize,
		Width:  cellSize,
		Height: cellSize,
	}
}
