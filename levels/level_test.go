package levels

import (
	"testing"
	"testing/fstest"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRoom(t *testing.T) {
	lvl, err := LoadLevelFromFS(LevelsFS, "levels/sample_room.json")
	require.NoError(t, err)
	assert.Equal(t, 12, lvl.Width)
	assert.Equal(t, 8, lvl.Height)

	assert.True(t, lvl.SolidAt(0, 0))
	assert.True(t, lvl.SolidAt(6, 3))
	assert.False(t, lvl.SolidAt(2, 2), "decoration layer has no physics")
	assert.False(t, lvl.SolidAt(-1, 0))
	assert.False(t, lvl.SolidAt(12, 0))

	opts := TilemapOptions{Offset: cp.Vector{X: 100, Y: 0}, TileSize: 16}
	tm, err := lvl.Tilemap(opts)
	require.NoError(t, err)
	assert.Len(t, tm.CollidableTiles(), 12*2+6*2+3+2)

	x, y, ok := tm.TileAt(cp.Vector{X: 100 + 5*16 + 1, Y: 3*16 + 1})
	require.True(t, ok)
	_, solid := tm.Tile(x, y)
	assert.True(t, solid)

	assert.Equal(t, cp.Vector{X: 100 + 2.5*16, Y: 5.5 * 16}, lvl.Spawn(opts))
}

func TestParseRejectsBadLevels(t *testing.T) {
	cases := map[string]string{
		"zero size":   `{"width": 0, "height": 3}`,
		"short layer": `{"width": 2, "height": 2, "layers": [[1, 0, 1]]}`,
		"not json":    `{width}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)
		})
	}

	_, err := Parse([]byte(`{"width": 0, "height": 3}`))
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestLegacyPhysicsFlag(t *testing.T) {
	fsys := fstest.MapFS{
		"tiny.json": {Data: []byte(`{"width": 2, "height": 1, "layers": [[0, 7]], "layer_meta": [{"physics": true}]}`)},
	}
	lvl, err := LoadLevelFromFS(fsys, "tiny.json")
	require.NoError(t, err)
	assert.True(t, lvl.SolidAt(1, 0))

	tm, err := lvl.Tilemap(TilemapOptions{})
	require.NoError(t, err)
	assert.Equal(t, cp.Vector{X: 32, Y: 32}, tm.Config().TileSize)
}

func TestMissingMetaIsNotSolid(t *testing.T) {
	lvl, err := Parse([]byte(`{"width": 1, "height": 1, "layers": [[1]]}`))
	require.NoError(t, err)
	require.Len(t, lvl.LayerMeta, 1)
	assert.False(t, lvl.SolidAt(0, 0))
}
