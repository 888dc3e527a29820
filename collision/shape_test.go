package collision

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/collide/common"
)

func TestShapeBounds(t *testing.T) {
	cases := []struct {
		name   string
		shape  Shape
		typeID TypeID
		bb     cp.BB
		radius float64
		center cp.Vector
	}{
		{
			name:   "point",
			shape:  NewPoint(vec(5, 7)),
			typeID: TypePoint,
			bb:     cp.BB{L: 5, B: 7, R: 5, T: 7},
			radius: 0,
			center: vec(5, 7),
		},
		{
			name:   "circle",
			shape:  NewCircle(common.Circle{Center: vec(10, 10), Radius: 4}),
			typeID: TypeCircle,
			bb:     cp.BB{L: 6, B: 6, R: 14, T: 14},
			radius: 4,
			center: vec(10, 10),
		},
		{
			name:   "rect",
			shape:  NewRectangle(common.Rect{X: 0, Y: 0, Width: 6, Height: 8}),
			typeID: TypeRect,
			bb:     cp.BB{L: 0, B: 0, R: 6, T: 8},
			radius: 5,
			center: vec(3, 4),
		},
		{
			name: "lines",
			shape: NewLines(
				common.Line{From: vec(0, 0), To: vec(6, 0)},
				common.Line{From: vec(6, 0), To: vec(6, 8)},
			),
			typeID: TypeLines,
			bb:     cp.BB{L: 0, B: 0, R: 6, T: 8},
			radius: 5,
			center: vec(3, 4),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.typeID, c.shape.TypeID())
			assert.Equal(t, c.bb, c.shape.BoundingBox())
			assert.InDelta(t, c.radius, c.shape.Radius(), 1e-9)
			assert.Equal(t, c.center, c.shape.Center())
			assert.Equal(t, MaskAll, c.shape.CollisionFlags())
			assert.Nil(t, c.shape.World())
			assert.NotZero(t, c.shape.ID())
		})
	}
}

func TestShapeIDsAreUnique(t *testing.T) {
	a := NewPoint(vec(0, 0))
	b := NewPoint(vec(0, 0))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestMutatorsRecomputeBounds(t *testing.T) {
	p := NewPoint(vec(0, 0))
	p.SetPosition(vec(3, 4))
	assert.Equal(t, vec(3, 4), p.Position())
	assert.Equal(t, cp.BB{L: 3, B: 4, R: 3, T: 4}, p.BoundingBox())

	c := NewCircle(common.Circle{Center: vec(0, 0), Radius: 1})
	c.SetShape(common.Circle{Center: vec(10, 0), Radius: 2})
	assert.Equal(t, cp.BB{L: 8, B: -2, R: 12, T: 2}, c.BoundingBox())
	assert.Equal(t, 2.0, c.Radius())

	r := NewRectangle(common.Rect{Width: 1, Height: 1})
	r.SetShape(common.Rect{X: -4, Y: -4, Width: 8, Height: 8})
	assert.Equal(t, vec(0, 0), r.Center())
	assert.InDelta(t, math.Sqrt(128)/2, r.Radius(), 1e-9)
}

func TestLinesPolyline(t *testing.T) {
	l := NewLines()
	assert.Equal(t, cp.BB{}, l.BoundingBox())
	assert.Empty(t, l.Lines())

	l.AddPolyline([]cp.Vector{vec(0, 0), vec(10, 0), vec(10, 10)}, true)
	segs := l.Lines()
	require.Len(t, segs, 3)
	assert.Equal(t, common.Line{From: vec(10, 10), To: vec(0, 0)}, segs[2])
	assert.Equal(t, cp.BB{L: 0, B: 0, R: 10, T: 10}, l.BoundingBox())

	l.AddPolyline([]cp.Vector{vec(20, 20)}, true)
	assert.Len(t, l.Lines(), 3)

	l.AddLines(common.Line{From: vec(10, 10), To: vec(30, 5)})
	assert.Equal(t, cp.BB{L: 0, B: 0, R: 30, T: 10}, l.BoundingBox())

	segs[0] = common.Line{}
	assert.Equal(t, vec(10, 0), l.Lines()[0].To, "Lines must return a copy")

	l.SetLines(common.Line{From: vec(1, 1), To: vec(2, 2)})
	assert.Len(t, l.Lines(), 1)
	assert.Equal(t, cp.BB{L: 1, B: 1, R: 2, T: 2}, l.BoundingBox())
}

func newTestTilemap(t *testing.T, border float64) *Tilemap {
	t.Helper()
	tm, err := NewTilemap(TilemapConfig{
		Offset:          vec(0, 0),
		Columns:         4,
		Rows:            4,
		TileSize:        vec(16, 16),
		BorderThickness: border,
	})
	require.NoError(t, err)
	return tm
}

func TestTilemapTiles(t *testing.T) {
	tm := newTestTilemap(t, 0)
	assert.Equal(t, cp.BB{L: 0, B: 0, R: 64, T: 64}, tm.BoundingBox())
	assert.Equal(t, vec(32, 32), tm.Center())
	assert.Empty(t, tm.Borders())

	require.NoError(t, tm.SetTile(1, 1, true, 4))
	tile, ok := tm.Tile(1, 1)
	require.True(t, ok)
	assert.Equal(t, common.Rect{X: 16, Y: 16, Width: 16, Height: 16}, tile.Shape())
	assert.Equal(t, Mask(4), tile.CollisionFlags())
	assert.Nil(t, tile.World())

	require.NoError(t, tm.SetTile(1, 1, true, 0))
	replaced, ok := tm.Tile(1, 1)
	require.True(t, ok)
	assert.NotSame(t, tile, replaced)
	assert.Equal(t, MaskAll, replaced.CollisionFlags())

	require.NoError(t, tm.SetTile(3, 0, true, 0))
	assert.Len(t, tm.CollidableTiles(), 2)

	require.NoError(t, tm.SetTile(1, 1, false, 0))
	_, ok = tm.Tile(1, 1)
	assert.False(t, ok)
	assert.Len(t, tm.CollidableTiles(), 1)

	x, y, ok := tm.TileAt(vec(20, 40))
	assert.True(t, ok)
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)
	_, _, ok = tm.TileAt(vec(-1, 5))
	assert.False(t, ok)
}

func TestTilemapSetTileOutOfRange(t *testing.T) {
	tm := newTestTilemap(t, 0)
	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		err := tm.SetTile(idx[0], idx[1], true, 0)
		require.ErrorIs(t, err, ErrTileOutOfRange)
	}
	assert.Empty(t, tm.CollidableTiles())
}

func TestTilemapInvalidConfig(t *testing.T) {
	_, err := NewTilemap(TilemapConfig{Columns: 0, Rows: 2, TileSize: vec(1, 1)})
	require.ErrorIs(t, err, ErrInvalidTilemap)
	_, err = NewTilemap(TilemapConfig{Columns: 2, Rows: 2, TileSize: vec(0, 1)})
	require.ErrorIs(t, err, ErrInvalidTilemap)
}

func TestTilemapBorder(t *testing.T) {
	tm := newTestTilemap(t, 2)
	assert.Equal(t, cp.BB{L: -2, B: -2, R: 66, T: 66}, tm.BoundingBox())
	require.Len(t, tm.Borders(), 4)
	assert.Equal(t, common.Rect{X: -2, Y: -2, Width: 68, Height: 2}, tm.Borders()[0].Shape())
	assert.Equal(t, common.Rect{X: 64, Y: 0, Width: 2, Height: 64}, tm.Borders()[3].Shape())
}

// diamond is a shape kind defined outside the built-in set.
type diamond struct {
	Base
	center cp.Vector
	reach  float64
}

func newDiamond(center cp.Vector, reach float64) *diamond {
	d := &diamond{reach: reach}
	d.Init(d)
	d.moveTo(center)
	return d
}

func (d *diamond) TypeID() TypeID                 { return "diamond" }
func (d *diamond) Center() cp.Vector              { return d.center }
func (d *diamond) DebugDraw(DebugDrawer, float64) {}

func (d *diamond) moveTo(center cp.Vector) {
	d.center = center
	d.SetBounds(cp.BB{L: center.X - d.reach, B: center.Y - d.reach, R: center.X + d.reach, T: center.Y + d.reach}, d.reach)
}

func (d *diamond) touchesCircle(c common.Circle) bool {
	dx := math.Max(math.Abs(c.Center.X-d.center.X)-c.Radius, 0)
	dy := math.Max(math.Abs(c.Center.Y-d.center.Y)-c.Radius, 0)
	return dx+dy <= d.reach
}

func TestCustomShapeKind(t *testing.T) {
	w := newTestWorld(t, 32)
	w.Resolver().SetHandler("diamond", TypeCircle, Handle(func(d *diamond, c *Circle) Contact {
		if d.touchesCircle(c.Shape()) {
			return Hit()
		}
		return Miss()
	}))

	d := newDiamond(vec(0, 0), 10)
	c := NewCircle(common.Circle{Center: vec(12, 0), Radius: 3})
	mustAdd(t, w, d, c)

	res, ok := w.TestCollision(c, QueryOptions{})
	require.True(t, ok)
	assert.Same(t, c, res.First())
	assert.Same(t, d, res.Second())

	d.moveTo(vec(100, 100))
	_, ok = w.TestCollision(c, QueryOptions{})
	assert.False(t, ok)
	requireGridConsistent(t, w)
}

func TestUninitializedShapeRejected(t *testing.T) {
	w := newTestWorld(t, 32)
	d := &diamond{}
	require.ErrorIs(t, w.AddShape(d), ErrShapeNotInitialized)
	assert.Zero(t, w.Len())
}
