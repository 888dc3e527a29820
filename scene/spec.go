package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKind   = errors.New("scene: unknown shape kind")
	ErrDuplicateName = errors.New("scene: duplicate shape name")
	ErrUnknownFilter = errors.New("scene: unknown filter")
)

// SceneSpec is the YAML description of a collision playground.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	CellSize float64           `yaml:"cell_size"`
	Debug    DebugSpec         `yaml:"debug"`
	Probe    ProbeSpec         `yaml:"probe"`
	Shapes   []ShapeSpec       `yaml:"shapes"`
	Filters  map[string]string `yaml:"filters"`
}

type DebugSpec struct {
	GridColor      *YAMLColor `yaml:"grid_color"`
	HighlightColor *YAMLColor `yaml:"highlight_color"`
	Opacity        float64    `yaml:"opacity"`
}

// ProbeSpec configures the query shape driven by the viewer.
type ProbeSpec struct {
	Radius float64 `yaml:"radius"`
	Mask   uint32  `yaml:"mask"`
	Sort   bool    `yaml:"sort"`
	// Filter names an entry of SceneSpec.Filters.
	Filter string `yaml:"filter"`
}

type ShapeSpec struct {
	Name  string  `yaml:"name"`
	Kind  string  `yaml:"kind"`
	Flags uint32  `yaml:"flags"`
	Tag   string  `yaml:"tag"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`

	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Points []PointSpec `yaml:"points"`
	Loop   bool        `yaml:"loop"`

	Tilemap *TilemapSpec `yaml:"tilemap"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TilemapSpec describes tiles either inline, one string per row with '#'
// marking solid tiles, or by referencing a level JSON file.
type TilemapSpec struct {
	TileSize  float64  `yaml:"tile_size"`
	Border    float64  `yaml:"border"`
	TileFlags uint32   `yaml:"tile_flags"`
	Grid      []string `yaml:"grid"`
	Level     string   `yaml:"level"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scene: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scene: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanScenePath(filename), ".yaml")
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}
	a := uint8(0xff)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// colorOrNil unwraps c for DebugOptions, where nil selects the default.
func colorOrNil(c *YAMLColor) color.Color {
	if c == nil {
		return nil
	}
	return c.Color
}
