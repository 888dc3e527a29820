package scene

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
	"github.com/milk9111/collide/levels"
	"github.com/milk9111/collide/script"
)

const solidTile = '#'

// Scene is a SceneSpec instantiated into a World.
type Scene struct {
	Spec  *SceneSpec
	World *collision.World

	shapes  map[string]collision.Shape
	names   []string
	filters map[string]*script.Filter
}

// Build creates a World from spec using engine's resolver and registers every
// shape in declaration order.
func Build(spec *SceneSpec, engine *collision.Engine, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	engine.Setup()

	s := &Scene{
		Spec:    spec,
		World:   engine.NewWorld(spec.CellSize),
		shapes:  make(map[string]collision.Shape, len(spec.Shapes)),
		filters: make(map[string]*script.Filter, len(spec.Filters)),
	}

	for name, src := range spec.Filters {
		f, err := script.Compile(src, log)
		if err != nil {
			return nil, fmt.Errorf("scene: filter %q: %w", name, err)
		}
		s.filters[name] = f
	}
	if spec.Probe.Filter != "" {
		if _, ok := s.filters[spec.Probe.Filter]; !ok {
			return nil, fmt.Errorf("%w: probe filter %q", ErrUnknownFilter, spec.Probe.Filter)
		}
	}

	for i, ss := range spec.Shapes {
		name := ss.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", ss.Kind, i)
		}
		if _, dup := s.shapes[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}

		shape, err := buildShape(ss)
		if err != nil {
			return nil, fmt.Errorf("scene: build shape %q: %w", name, err)
		}
		if ss.Flags != 0 {
			shape.SetCollisionFlags(collision.Mask(ss.Flags))
		}
		if ss.Tag != "" {
			shape.SetUserData(ss.Tag)
		}
		if err := s.World.AddShape(shape); err != nil {
			return nil, fmt.Errorf("scene: add shape %q: %w", name, err)
		}
		s.shapes[name] = shape
		s.names = append(s.names, name)
	}

	log.Info("scene: built",
		zap.String("scene", spec.Name),
		zap.Int("shapes", s.World.Len()),
		zap.Float64("cell_size", s.World.CellSize()),
	)
	return s, nil
}

func buildShape(ss ShapeSpec) (collision.Shape, error) {
	pos := cp.Vector{X: ss.X, Y: ss.Y}
	switch collision.TypeID(strings.ToLower(ss.Kind)) {
	case collision.TypePoint:
		return collision.NewPoint(pos), nil
	case collision.TypeCircle:
		return collision.NewCircle(common.Circle{Center: pos, Radius: ss.Radius}), nil
	case collision.TypeRect:
		return collision.NewRectangle(common.Rect{X: ss.X, Y: ss.Y, Width: ss.Width, Height: ss.Height}), nil
	case collision.TypeLines:
		points := make([]cp.Vector, len(ss.Points))
		for i, p := range ss.Points {
			points[i] = cp.Vector{X: ss.X + p.X, Y: ss.Y + p.Y}
		}
		l := collision.NewLines()
		l.AddPolyline(points, ss.Loop)
		return l, nil
	case collision.TypeTilemap:
		if ss.Tilemap == nil {
			return nil, fmt.Errorf("scene: tilemap %q has no tilemap section", ss.Name)
		}
		return buildTilemap(pos, *ss.Tilemap)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, ss.Kind)
}

func buildTilemap(offset cp.Vector, ts TilemapSpec) (*collision.Tilemap, error) {
	if ts.Level != "" {
		lvl, err := levels.LoadLevel(ts.Level)
		if err != nil {
			return nil, err
		}
		return lvl.Tilemap(levels.TilemapOptions{
			Offset:          offset,
			TileSize:        ts.TileSize,
			BorderThickness: ts.Border,
			Flags:           collision.Mask(ts.TileFlags),
		})
	}

	size := ts.TileSize
	if size <= 0 {
		size = common.TileSize
	}
	cols := 0
	for _, row := range ts.Grid {
		cols = max(cols, len(row))
	}
	tm, err := collision.NewTilemap(collision.TilemapConfig{
		Offset:          offset,
		Columns:         cols,
		Rows:            len(ts.Grid),
		TileSize:        cp.Vector{X: size, Y: size},
		BorderThickness: ts.Border,
	})
	if err != nil {
		return nil, err
	}
	for y, row := range ts.Grid {
		for x := 0; x < len(row); x++ {
			if row[x] != solidTile {
				continue
			}
			if err := tm.SetTile(x, y, true, collision.Mask(ts.TileFlags)); err != nil {
				return nil, err
			}
		}
	}
	return tm, nil
}

// Shape returns the shape declared under name.
func (s *Scene) Shape(name string) (collision.Shape, bool) {
	shape, ok := s.shapes[name]
	return shape, ok
}

// Names lists shape names in declaration order.
func (s *Scene) Names() []string {
	return s.names
}

func (s *Scene) Filter(name string) (*script.Filter, bool) {
	f, ok := s.filters[name]
	return f, ok
}

// ProbeOptions turns the probe section into query options.
func (s *Scene) ProbeOptions() collision.QueryOptions {
	opts := collision.QueryOptions{
		SortByDistance: s.Spec.Probe.Sort,
		Mask:           collision.Mask(s.Spec.Probe.Mask),
	}
	if f, ok := s.filters[s.Spec.Probe.Filter]; ok {
		opts.Predicate = f.Predicate()
	}
	return opts
}

func (s *Scene) DebugOptions() collision.DebugOptions {
	return collision.DebugOptions{
		GridColor:      colorOrNil(s.Spec.Debug.GridColor),
		HighlightColor: colorOrNil(s.Spec.Debug.HighlightColor),
		Opacity:        s.Spec.Debug.Opacity,
	}
}

// Destroy unregisters every shape so the scene's shapes can be reused.
func (s *Scene) Destroy() {
	for _, name := range s.names {
		s.World.RemoveShape(s.shapes[name])
	}
}
