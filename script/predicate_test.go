package script

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
)

type enemy struct{ name string }

func (e enemy) Tag() string { return e.name }

func TestFilterEval(t *testing.T) {
	circle := collision.NewCircle(common.Circle{Center: cp.Vector{X: 3, Y: -4}, Radius: 2})
	circle.SetCollisionFlags(2)
	circle.SetUserData("crate")
	rect := collision.NewRectangle(common.Rect{X: 0, Y: 0, Width: 4, Height: 4})
	rect.SetUserData(enemy{name: "bat"})

	cases := []struct {
		expr   string
		circle bool
		rect   bool
	}{
		{`flags & 2 != 0 && kind == "circle"`, true, false},
		{`kind == "rect"`, false, true},
		{`radius > 2.5`, false, true},
		{`import("math").abs(y) == 4`, true, false},
		{`tag == "bat"`, false, true},
		{`tag == "crate"`, true, false},
		{`id > 0`, true, true},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			f, err := Compile(c.expr, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, c.expr, f.Source())

			got, err := f.Eval(circle)
			require.NoError(t, err)
			assert.Equal(t, c.circle, got, "circle")

			got, err = f.Eval(rect)
			require.NoError(t, err)
			assert.Equal(t, c.rect, got, "rect")
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("   ", nil)
	require.ErrorIs(t, err, ErrEmptyFilter)

	_, err = Compile("kind ==", zap.NewNop())
	require.Error(t, err)

	_, err = Compile("unknown_var > 1", zap.NewNop())
	require.Error(t, err)
}

func TestPredicateInQuery(t *testing.T) {
	r := collision.NewResolver(collision.WithLogger(zap.NewNop()))
	collision.RegisterBuiltins(r)
	w := collision.NewWorld(r, 64, collision.WithLogger(zap.NewNop()))

	a := collision.NewCircle(common.Circle{Center: cp.Vector{X: 0, Y: 0}, Radius: 5})
	b := collision.NewRectangle(common.Rect{X: -2, Y: -2, Width: 4, Height: 4})
	require.NoError(t, w.AddShape(a))
	require.NoError(t, w.AddShape(b))

	f, err := Compile(`kind == "rect"`, zap.NewNop())
	require.NoError(t, err)

	picked := w.Pick(cp.Vector{}, 0, collision.QueryOptions{Predicate: f.Predicate()})
	require.Len(t, picked, 1)
	assert.Same(t, b, picked[0])
}

func TestPredicateRuntimeErrorLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f, err := Compile(`flags / 0 > 0`, zap.New(core))
	require.NoError(t, err)

	pred := f.Predicate()
	p := collision.NewPoint(cp.Vector{})
	assert.False(t, pred(p))
	assert.False(t, pred(p))
	assert.Equal(t, 1, logs.FilterMessage("script: filter failed").Len())
}
