package common

import "math"

// TileSize is the default edge length of a level tile in world units.
const TileSize = 32

// CellIndex converts a world coordinate into the index of the cell of the given
// size containing it. Negative coordinates map to negative indices.
func CellIndex(v, size float64) int {
	return int(math.Floor(v / size))
}
