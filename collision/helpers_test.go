package collision

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/collide/common"
)

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

func newTestWorld(t *testing.T, cellSize float64) *World {
	t.Helper()
	r := NewResolver(WithLogger(zap.NewNop()))
	RegisterBuiltins(r)
	return NewWorld(r, cellSize, WithLogger(zap.NewNop()))
}

func newObservedWorld(t *testing.T, cellSize float64) (*World, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	r := NewResolver(WithLogger(logger))
	RegisterBuiltins(r)
	return NewWorld(r, cellSize, WithLogger(logger)), logs
}

func mustAdd(t *testing.T, w *World, shapes ...Shape) {
	t.Helper()
	for _, s := range shapes {
		require.NoError(t, w.AddShape(s))
	}
}

// requireGridConsistent checks that every shape sits in exactly the cells its
// bounding box overlaps and that no empty cell survives a flush.
func requireGridConsistent(t *testing.T, w *World) {
	t.Helper()
	w.Flush()
	for k, cell := range w.cells {
		require.NotZero(t, cell.Len(), "empty cell %v not reclaimed", k)
		for _, s := range cell.Shapes() {
			expected := cellRangeFor(s.BoundingBox(), w.cellSize)
			require.True(t, expected.Contains(k), "shape %d in foreign cell %v", s.ID(), k)
		}
	}
	w.IterateShapes(func(s Shape) bool {
		expected := cellRangeFor(s.BoundingBox(), w.cellSize)
		for _, k := range expected.Keys() {
			cell, ok := w.cells[k]
			require.True(t, ok, "missing cell %v for shape %d", k, s.ID())
			require.True(t, cell.Has(s.ID()), "shape %d missing from cell %v", s.ID(), k)
		}
		got, ok := w.CellRangeOf(s)
		require.True(t, ok)
		require.Equal(t, expected, got)
		return true
	})
}

type drawCall struct {
	kind  string
	rect  common.Rect
	color color.NRGBA
}

type recordingDrawer struct {
	calls []drawCall
}

func (d *recordingDrawer) DrawRect(r common.Rect, c color.Color) {
	d.calls = append(d.calls, drawCall{kind: "rect", rect: r, color: Fade(c, 1)})
}

func (d *recordingDrawer) DrawCircle(c common.Circle, col color.Color) {
	d.calls = append(d.calls, drawCall{kind: "circle", rect: common.RectFromBB(c.BB()), color: Fade(col, 1)})
}

func (d *recordingDrawer) DrawLine(l common.Line, c color.Color) {
	d.calls = append(d.calls, drawCall{kind: "line", rect: common.RectFromBB(l.BB()), color: Fade(c, 1)})
}

func (d *recordingDrawer) count(kind string) int {
	n := 0
	for _, c := range d.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}
