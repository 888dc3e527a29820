package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/collide/collision"
)

func newEngine() *collision.Engine {
	return collision.NewEngine(collision.WithLogger(zap.NewNop()))
}

func TestLoadEmbeddedPlayground(t *testing.T) {
	spec, err := LoadSceneSpec("scenes/playground.yaml")
	require.NoError(t, err)
	assert.Equal(t, "playground", spec.Name)
	assert.Equal(t, 128.0, spec.CellSize)
	require.NotNil(t, spec.Debug.GridColor)
	assert.Equal(t, color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0x80}, spec.Debug.GridColor.Color)
	assert.Equal(t, "solid", spec.Probe.Filter)

	s, err := Build(spec, newEngine(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(spec.Shapes), s.World.Len())
	assert.Equal(t, []string{"ground", "ball", "crate", "marker", "ramp", "cage", "room"}, s.Names())

	ball, ok := s.Shape("ball")
	require.True(t, ok)
	assert.Equal(t, collision.Mask(3), ball.CollisionFlags())
	assert.Equal(t, "crate", ball.UserData())

	ramp, ok := s.Shape("ramp")
	require.True(t, ok)
	assert.Len(t, ramp.(*collision.Lines).Lines(), 2)

	cage, ok := s.Shape("cage")
	require.True(t, ok)
	assert.Len(t, cage.(*collision.Tilemap).CollidableTiles(), 8*2+3*2+2)
	assert.Len(t, cage.(*collision.Tilemap).Borders(), 4)
}

func TestProbeOptions(t *testing.T) {
	spec, err := LoadSceneSpec("playground.yaml")
	require.NoError(t, err)
	s, err := Build(spec, newEngine(), zap.NewNop())
	require.NoError(t, err)

	opts := s.ProbeOptions()
	assert.True(t, opts.SortByDistance)
	require.NotNil(t, opts.Predicate)

	// The crate only carries flag 2, so the solid filter skips it.
	picked := s.World.Pick(cp.Vector{X: 450, Y: 410}, 0, opts)
	assert.Empty(t, picked)

	picked = s.World.Pick(cp.Vector{X: 450, Y: 410}, 0, collision.QueryOptions{})
	require.Len(t, picked, 1)
	crate, _ := s.Shape("crate")
	assert.Same(t, crate, picked[0])

	dbg := s.DebugOptions()
	assert.Equal(t, 0.9, dbg.Opacity)
	assert.NotNil(t, dbg.HighlightColor)
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]struct {
		spec SceneSpec
		err  error
	}{
		"unknown kind": {
			spec: SceneSpec{Shapes: []ShapeSpec{{Name: "x", Kind: "hexagon"}}},
			err:  ErrUnknownKind,
		},
		"duplicate": {
			spec: SceneSpec{Shapes: []ShapeSpec{{Name: "a", Kind: "point"}, {Name: "a", Kind: "point"}}},
			err:  ErrDuplicateName,
		},
		"missing probe filter": {
			spec: SceneSpec{Probe: ProbeSpec{Filter: "nope"}},
			err:  ErrUnknownFilter,
		},
		"empty tilemap": {
			spec: SceneSpec{Shapes: []ShapeSpec{{Name: "t", Kind: "tilemap", Tilemap: &TilemapSpec{}}}},
			err:  collision.ErrInvalidTilemap,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			spec := c.spec
			_, err := Build(&spec, newEngine(), nil)
			require.ErrorIs(t, err, c.err)
		})
	}

	_, err := Build(&SceneSpec{Filters: map[string]string{"bad": "kind =="}}, newEngine(), nil)
	require.Error(t, err)
}

func TestDestroyReleasesShapes(t *testing.T) {
	spec := &SceneSpec{Shapes: []ShapeSpec{{Name: "p", Kind: "point"}, {Kind: "circle", Radius: 3}}}
	s, err := Build(spec, newEngine(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "circle#1"}, s.Names())

	s.Destroy()
	assert.Zero(t, s.World.Len())
	p, _ := s.Shape("p")
	assert.Nil(t, p.World())
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		A YAMLColor `yaml:"a"`
		B YAMLColor `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: \"#ff8000\"\nb: \"10203040\"\n"), &out))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, out.A.Color)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, out.B.Color)

	for _, bad := range []string{"a: \"#fff\"", "a: \"#zzzzzz\"", "a: [1, 2]"} {
		require.Error(t, yaml.Unmarshal([]byte(bad), &out), bad)
	}
}

func TestDiskSceneWins(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "playground.yaml"), []byte("cell_size: 7\n"), 0o644))
	spec, err := LoadSceneSpec("playground.yaml")
	require.NoError(t, err)
	assert.Equal(t, 7.0, spec.CellSize)
	assert.Equal(t, "playground", spec.Name)

	_, ok := ModTime("playground.yaml")
	assert.True(t, ok)
	_, ok = ModTime("missing.yaml")
	assert.False(t, ok)

	_, err = LoadSceneSpec("missing.yaml")
	require.Error(t, err)
}

func TestWatcherBatchesEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zap.NewNop(), 50*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	sceneFile := filepath.Join(dir, "edit.yaml")
	levelFile := filepath.Join(dir, "room.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(sceneFile, []byte("name: x\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(levelFile, []byte("{}"), 0o644))

	seen := map[string]ChangeKind{}
	deadline := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case batch, ok := <-w.Batches():
			require.True(t, ok, "watcher stopped early")
			require.True(t, slices.IsSortedFunc(batch, func(a, b Change) int { return strings.Compare(a.Path, b.Path) }))
			for _, c := range batch {
				seen[c.Path] = c.Kind
			}
		case <-deadline:
			t.Fatalf("edits not reported, got %v", seen)
		}
	}
	assert.Equal(t, map[string]ChangeKind{sceneFile: ChangeScene, levelFile: ChangeLevel}, seen)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, ok := <-w.Batches()
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"a/b.yaml", ChangeScene, true},
		{"B.YML", ChangeScene, true},
		{"room.json", ChangeLevel, true},
		{"solid.tengo", ChangeFilter, true},
		{"notes.txt", 0, false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			kind, ok := classify(c.path)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.kind, kind)
		})
	}

	b := Batch{{Path: "x.json", Kind: ChangeLevel}}
	assert.True(t, b.Has(ChangeLevel))
	assert.False(t, b.Has(ChangeFilter))
	assert.Equal(t, "filter", ChangeFilter.String())
}
