// Package collision answers "what does this shape touch?" for a dynamic
// population of 2D shapes.
//
// Shapes (Point, Circle, Rectangle, Lines, Tilemap) are registered in a World,
// an incremental uniform hash grid. Queries run a broad phase over the grid
// cells overlapped by the query shape's bounding box and confirm each candidate
// with the narrow phase test registered in the World's Resolver for the pair
// of shape types.
//
// Nothing in this package is safe for concurrent use. Independent Worlds may
// be queried from different goroutines.
package collision

import (
	"errors"

	"go.uber.org/zap"

	"github.com/milk9111/collide/logging"
)

// TypeID identifies a shape kind in the Resolver dispatch table.
type TypeID string

const (
	TypePoint   TypeID = "point"
	TypeCircle  TypeID = "circle"
	TypeRect    TypeID = "rect"
	TypeLines   TypeID = "lines"
	TypeTilemap TypeID = "tilemap"
)

// Mask is a bitset of collision categories.
type Mask uint32

// MaskAll matches every category. New shapes start with it.
const MaskAll Mask = ^Mask(0)

// DefaultCellSize is used when a World is created with a non-positive cell size.
const DefaultCellSize = 512.0

var (
	ErrShapeOwned          = errors.New("collision: shape already owned by a world")
	ErrShapeNotInitialized = errors.New("collision: shape base not initialized")
	ErrTileOutOfRange      = errors.New("collision: tile index out of range")
	ErrInvalidTilemap      = errors.New("collision: invalid tilemap")
)

type options struct {
	logger *zap.Logger
}

// Option configures a Resolver, World or Engine.
type Option func(*options)

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}
	return o
}
