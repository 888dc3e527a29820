package collision

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// TilemapConfig describes the fixed layout of a Tilemap.
type TilemapConfig struct {
	// Offset is the world position of the top-left corner of tile (0, 0).
	Offset   cp.Vector
	Columns  int
	Rows     int
	TileSize cp.Vector
	// BorderThickness, when positive, surrounds the grid with four solid
	// rectangles of that thickness.
	BorderThickness float64
}

// Tilemap is a grid of optional solid tiles. Tiles are Rectangle shapes owned
// by the Tilemap; they are never registered in a World themselves.
//
// Each tile keeps its own collision flags. A shape tested against the
// Tilemap only meets tiles whose flags share a bit with its own, so a probe
// created by Pick sees the tiles its query mask selects.
type Tilemap struct {
	Base
	cfg     TilemapConfig
	tiles   []*Rectangle
	borders []*Rectangle
}

func NewTilemap(cfg TilemapConfig) (*Tilemap, error) {
	if cfg.Columns <= 0 || cfg.Rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidTilemap, cfg.Columns, cfg.Rows)
	}
	if cfg.TileSize.X <= 0 || cfg.TileSize.Y <= 0 {
		return nil, fmt.Errorf("%w: tile size %vx%v", ErrInvalidTilemap, cfg.TileSize.X, cfg.TileSize.Y)
	}
	if cfg.BorderThickness < 0 {
		cfg.BorderThickness = 0
	}

	t := &Tilemap{
		cfg:   cfg,
		tiles: make([]*Rectangle, cfg.Columns*cfg.Rows),
	}
	t.Init(t)
	t.buildBorders()

	grid := t.gridRect()
	outer := grid.Expand(cfg.BorderThickness)
	t.SetBounds(outer.BB(), outer.HalfDiagonal())
	return t, nil
}

func (t *Tilemap) TypeID() TypeID {
	return TypeTilemap
}

func (t *Tilemap) Config() TilemapConfig {
	return t.cfg
}

func (t *Tilemap) Center() cp.Vector {
	return t.bb.Center()
}

// SetTile makes tile (x, y) solid with the given flags, replacing any previous
// tile shape, or removes it when collide is false. Zero flags select MaskAll.
func (t *Tilemap) SetTile(x, y int, collide bool, flags Mask) error {
	if !t.inBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrTileOutOfRange, x, y, t.cfg.Columns, t.cfg.Rows)
	}

	idx := y*t.cfg.Columns + x
	if !collide {
		t.tiles[idx] = nil
		t.shapeChanged()
		return nil
	}

	tile := NewRectangle(common.Rect{
		X:      t.cfg.Offset.X + float64(x)*t.cfg.TileSize.X,
		Y:      t.cfg.Offset.Y + float64(y)*t.cfg.TileSize.Y,
		Width:  t.cfg.TileSize.X,
		Height: t.cfg.TileSize.Y,
	})
	if flags != 0 {
		tile.SetCollisionFlags(flags)
	}
	t.tiles[idx] = tile
	t.shapeChanged()
	return nil
}

// Tile returns the solid tile at (x, y), if any.
func (t *Tilemap) Tile(x, y int) (*Rectangle, bool) {
	if !t.inBounds(x, y) {
		return nil, false
	}
	tile := t.tiles[y*t.cfg.Columns+x]
	return tile, tile != nil
}

// TileAt converts a world position into tile indices. ok is false outside the grid.
func (t *Tilemap) TileAt(p cp.Vector) (x, y int, ok bool) {
	x = common.CellIndex(p.X-t.cfg.Offset.X, t.cfg.TileSize.X)
	y = common.CellIndex(p.Y-t.cfg.Offset.Y, t.cfg.TileSize.Y)
	return x, y, t.inBounds(x, y)
}

// CollidableTiles returns every solid tile in row-major order.
func (t *Tilemap) CollidableTiles() []*Rectangle {
	out := make([]*Rectangle, 0, len(t.tiles))
	for _, tile := range t.tiles {
		if tile != nil {
			out = append(out, tile)
		}
	}
	return out
}

// Borders returns the border rectangles; empty without a border.
func (t *Tilemap) Borders() []*Rectangle {
	return t.borders
}

// eachCollider calls fn for the solid tiles and border pieces touching bb
// whose flags share a bit with mask, until fn returns false. Tile tests are
// inclusive of edges, so a box ending exactly on a tile boundary also visits
// the tile before it.
func (t *Tilemap) eachCollider(bb cp.BB, mask Mask, fn func(r common.Rect) bool) bool {
	minX := firstTouching(bb.L-t.cfg.Offset.X, t.cfg.TileSize.X)
	maxX := common.CellIndex(bb.R-t.cfg.Offset.X, t.cfg.TileSize.X)
	minY := firstTouching(bb.B-t.cfg.Offset.Y, t.cfg.TileSize.Y)
	maxY := common.CellIndex(bb.T-t.cfg.Offset.Y, t.cfg.TileSize.Y)
	minX, maxX = max(minX, 0), min(maxX, t.cfg.Columns-1)
	minY, maxY = max(minY, 0), min(maxY, t.cfg.Rows-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tile := t.tiles[y*t.cfg.Columns+x]
			if tile == nil || tile.flags&mask == 0 {
				continue
			}
			if !fn(tile.rect) {
				return false
			}
		}
	}

	for _, border := range t.borders {
		if border.flags&mask == 0 || !border.bb.Intersects(bb) {
			continue
		}
		if !fn(border.rect) {
			return false
		}
	}
	return true
}

// firstTouching is the lowest tile index whose closed span [i*size, (i+1)*size]
// contains v.
func firstTouching(v, size float64) int {
	return int(math.Ceil(v/size)) - 1
}

func (t *Tilemap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.cfg.Columns && y < t.cfg.Rows
}

func (t *Tilemap) gridRect() common.Rect {
	return common.Rect{
		X:      t.cfg.Offset.X,
		Y:      t.cfg.Offset.Y,
		Width:  float64(t.cfg.Columns) * t.cfg.TileSize.X,
		Height: float64(t.cfg.Rows) * t.cfg.TileSize.Y,
	}
}

func (t *Tilemap) buildBorders() {
	bt := t.cfg.BorderThickness
	if bt <= 0 {
		return
	}
	g := t.gridRect()
	pieces := []common.Rect{
		{X: g.X - bt, Y: g.Y - bt, Width: g.Width + 2*bt, Height: bt}, // top
		{X: g.X - bt, Y: g.Bottom(), Width: g.Width + 2*bt, Height: bt}, // bottom
		{X: g.X - bt, Y: g.Y, Width: bt, Height: g.Height},             // left
		{X: g.Right(), Y: g.Y, Width: bt, Height: g.Height},            // right
	}
	t.borders = make([]*Rectangle, 0, len(pieces))
	for _, r := range pieces {
		t.borders = append(t.borders, NewRectangle(r))
	}
}
