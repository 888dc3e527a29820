package collision

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// DebugDrawer is the renderer capability used for debug visualization.
type DebugDrawer interface {
	DrawRect(r common.Rect, c color.Color)
	DrawCircle(c common.Circle, col color.Color)
	DrawLine(l common.Line, c color.Color)
}

// DebugOptions controls World.DebugDraw.
type DebugOptions struct {
	GridColor      color.Color
	HighlightColor color.Color
	// Opacity scales every color's alpha. Zero is treated as 1.
	Opacity float64
	// View limits drawing to an area, typically the camera. Nil draws only
	// the live cells.
	View *common.Rect
}

var (
	defaultGridColor      = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	defaultHighlightColor = color.NRGBA{R: 0x30, G: 0xc0, B: 0x30, A: 0xff}

	pointColor   = color.NRGBA{R: 0xff, G: 0xe0, B: 0x30, A: 0xff}
	circleColor  = color.NRGBA{R: 0x30, G: 0xd0, B: 0xff, A: 0xff}
	rectColor    = color.NRGBA{R: 0x40, G: 0xff, B: 0x60, A: 0xff}
	linesColor   = color.NRGBA{R: 0xff, G: 0x50, B: 0xe0, A: 0xff}
	tilemapColor = color.NRGBA{R: 0x66, G: 0xb3, B: 0xff, A: 0xff}
	borderColor  = color.NRGBA{R: 0xff, G: 0x90, B: 0x30, A: 0xff}
)

const pointDebugSize = 3

// DebugDraw renders the grid, then every registered shape. With a View every
// cell inside it is drawn, occupied ones in the highlight color; without one
// only the occupied cells are drawn.
func (w *World) DebugDraw(d DebugDrawer, opts DebugOptions) {
	if d == nil {
		return
	}
	w.Flush()

	opacity := opts.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	gridColor := opts.GridColor
	if gridColor == nil {
		gridColor = defaultGridColor
	}
	highlight := opts.HighlightColor
	if highlight == nil {
		highlight = defaultHighlightColor
	}

	lit := Fade(highlight, opacity)
	if opts.View != nil {
		base := Fade(gridColor, opacity)
		r := cellRangeFor(opts.View.BB(), w.cellSize)
		for y := r.MinY; y <= r.MaxY; y++ {
			for x := r.MinX; x <= r.MaxX; x++ {
				k := CellKey{X: x, Y: y}
				c := base
				if cell, ok := w.cells[k]; ok && cell.Len() > 0 {
					c = lit
				}
				d.DrawRect(cellRect(k, w.cellSize), c)
			}
		}
	} else {
		// Without a view only live cells are drawn; their span can be huge.
		for _, k := range w.liveCells() {
			d.DrawRect(cellRect(k, w.cellSize), lit)
		}
	}

	var view cp.BB
	if opts.View != nil {
		view = opts.View.BB()
	}
	for _, s := range w.shapes.Shapes() {
		if opts.View != nil && !s.BoundingBox().Intersects(view) {
			continue
		}
		s.DebugDraw(d, opacity)
	}
}

// liveCells returns the keys of non-empty cells in row-major order.
func (w *World) liveCells() []CellKey {
	keys := make([]CellKey, 0, len(w.cells))
	for k, cell := range w.cells {
		if cell.Len() > 0 {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b CellKey) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return keys
}

// Fade returns c with its alpha multiplied by opacity, clamped to [0, 1].
func Fade(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * cp.Clamp(opacity, 0, 1))
	return n
}

func (p *Point) DebugDraw(d DebugDrawer, opacity float64) {
	c := Fade(pointColor, opacity)
	pos := p.position
	d.DrawLine(common.Line{
		From: cp.Vector{X: pos.X - pointDebugSize, Y: pos.Y},
		To:   cp.Vector{X: pos.X + pointDebugSize, Y: pos.Y},
	}, c)
	d.DrawLine(common.Line{
		From: cp.Vector{X: pos.X, Y: pos.Y - pointDebugSize},
		To:   cp.Vector{X: pos.X, Y: pos.Y + pointDebugSize},
	}, c)
}

func (s *Circle) DebugDraw(d DebugDrawer, opacity float64) {
	d.DrawCircle(s.circle, Fade(circleColor, opacity))
}

func (s *Rectangle) DebugDraw(d DebugDrawer, opacity float64) {
	d.DrawRect(s.rect, Fade(rectColor, opacity))
}

func (s *Lines) DebugDraw(d DebugDrawer, opacity float64) {
	c := Fade(linesColor, opacity)
	for _, l := range s.lines {
		d.DrawLine(l, c)
	}
}

func (t *Tilemap) DebugDraw(d DebugDrawer, opacity float64) {
	c := Fade(tilemapColor, opacity)
	for _, tile := range t.tiles {
		if tile != nil {
			d.DrawRect(tile.rect, c)
		}
	}
	bc := Fade(borderColor, opacity)
	for _, border := range t.borders {
		d.DrawRect(border.rect, bc)
	}
}
