package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/collide/common"
)

func TestEngineLifecycle(t *testing.T) {
	e := NewEngine(WithLogger(zap.NewNop()))
	_, ok := e.Resolver().Handler(TypePoint, TypeCircle)
	assert.False(t, ok, "handlers are installed by Setup")

	e.Setup()
	e.Setup()
	_, ok = e.Resolver().Handler(TypeCircle, TypePoint)
	assert.True(t, ok)

	a := e.NewWorld(0)
	b := e.NewWorld(32)
	assert.Same(t, a.Resolver(), b.Resolver())
	assert.Equal(t, DefaultCellSize, a.CellSize())

	p := NewPoint(vec(1, 1))
	mustAdd(t, b, p, NewCircle(common.Circle{Center: vec(1, 1), Radius: 2}))

	e.StartFrame()
	_, ok = b.TestCollision(p, QueryOptions{})
	require.True(t, ok)
	e.EndFrame()
	e.Destroy()
}
