// Package levels reads tile levels saved as JSON and turns their solid
// layers into collision tilemaps.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a tile map stored as JSON. Each layer is a flat row-major array
// of Width*Height tile values; zero is empty.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	SpawnX    int         `json:"spawn_x,omitempty"`
	SpawnY    int         `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color,omitempty"`
	// Physics is the older spelling of HasPhysics.
	Physics bool `json:"physics,omitempty"`
}

func (m LayerMeta) solid() bool {
	return m.HasPhysics || m.Physics
}

// LoadLevel loads a level from disk, falling back to the embedded levels.
func LoadLevel(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return LoadLevelFromFS(LevelsFS, path)
	}
	return Parse(b)
}

// LoadLevelFromFS loads a level JSON from fsys (e.g. the embedded levels).
func LoadLevelFromFS(fsys fs.FS, path string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	lvl, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes and validates a level. Missing layer metadata is filled in
// as non-physics layers.
func Parse(b []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if len(lvl.LayerMeta) < len(lvl.Layers) {
		meta := make([]LayerMeta, len(lvl.Layers))
		copy(meta, lvl.LayerMeta)
		lvl.LayerMeta = meta
	}
	return &lvl, nil
}

// SolidAt reports whether any physics layer has a tile at (x, y).
func (l *Level) SolidAt(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	idx := y*l.Width + x
	for i, layer := range l.Layers {
		if layer[idx] != 0 && l.LayerMeta[i].solid() {
			return true
		}
	}
	return false
}

// TilemapOptions places a level in world space.
type TilemapOptions struct {
	Offset          cp.Vector
	TileSize        float64
	BorderThickness float64
	Flags           collision.Mask
}

// Tilemap builds a collision tilemap whose solid tiles are the level's
// physics tiles. A zero TileSize selects common.TileSize.
func (l *Level) Tilemap(opts TilemapOptions) (*collision.Tilemap, error) {
	size := opts.TileSize
	if size <= 0 {
		size = common.TileSize
	}
	tm, err := collision.NewTilemap(collision.TilemapConfig{
		Offset:          opts.Offset,
		Columns:         l.Width,
		Rows:            l.Height,
		TileSize:        cp.Vector{X: size, Y: size},
		BorderThickness: opts.BorderThickness,
	})
	if err != nil {
		return nil, err
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !l.SolidAt(x, y) {
				continue
			}
			if err := tm.SetTile(x, y, true, opts.Flags); err != nil {
				return nil, err
			}
		}
	}
	return tm, nil
}

// Spawn returns the world position of the spawn tile's center.
func (l *Level) Spawn(opts TilemapOptions) cp.Vector {
	size := opts.TileSize
	if size <= 0 {
		size = common.TileSize
	}
	return cp.Vector{
		X: opts.Offset.X + (float64(l.SpawnX)+0.5)*size,
		Y: opts.Offset.Y + (float64(l.SpawnY)+0.5)*size,
	}
}
