package collision

import "sync"

// Engine is the collision module as seen by the frame loop. All real work
// happens on demand in World queries, so the frame hooks do nothing.
type Engine struct {
	resolver  *Resolver
	opts      []Option
	setupOnce sync.Once
}

func NewEngine(opts ...Option) *Engine {
	return &Engine{
		resolver: NewResolver(opts...),
		opts:     opts,
	}
}

// Setup registers the built-in handlers. Calling it again is a no-op.
func (e *Engine) Setup() {
	e.setupOnce.Do(func() {
		RegisterBuiltins(e.resolver)
	})
}

func (e *Engine) StartFrame() {}

func (e *Engine) EndFrame() {}

// Destroy is a no-op; Worlds are owned by their creators.
func (e *Engine) Destroy() {}

func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// NewWorld creates a World sharing the engine's resolver and logger.
func (e *Engine) NewWorld(cellSize float64) *World {
	return NewWorld(e.resolver, cellSize, e.opts...)
}
