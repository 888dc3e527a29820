package debugdraw

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
)

const defaultStrokeWidth = 1

// Screen draws collision shapes onto an ebiten image through a Camera.
type Screen struct {
	img         *ebiten.Image
	cam         Camera
	StrokeWidth float32
	AntiAlias   bool
}

func NewScreen(img *ebiten.Image, cam Camera) *Screen {
	return &Screen{img: img, cam: cam, StrokeWidth: defaultStrokeWidth}
}

// DrawWorld draws w limited to what the camera sees unless opts.View is set.
func (s *Screen) DrawWorld(w *collision.World, opts collision.DebugOptions) {
	if s.img == nil || w == nil {
		return
	}
	if opts.View == nil {
		b := s.img.Bounds()
		view := s.cam.View(b.Dx(), b.Dy())
		opts.View = &view
	}
	w.DebugDraw(s, opts)
}

func (s *Screen) DrawRect(r common.Rect, c color.Color) {
	x, y := s.cam.ToScreen(cp.Vector{X: r.X, Y: r.Y})
	z := s.cam.zoom()
	vector.StrokeRect(s.img, float32(x), float32(y), float32(r.Width*z), float32(r.Height*z), s.StrokeWidth, c, s.AntiAlias)
}

func (s *Screen) DrawCircle(ci common.Circle, c color.Color) {
	x, y := s.cam.ToScreen(ci.Center)
	vector.StrokeCircle(s.img, float32(x), float32(y), float32(ci.Radius*s.cam.zoom()), s.StrokeWidth, c, s.AntiAlias)
}

func (s *Screen) DrawLine(l common.Line, c color.Color) {
	x1, y1 := s.cam.ToScreen(l.From)
	x2, y2 := s.cam.ToScreen(l.To)
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), s.StrokeWidth, c, s.AntiAlias)
}
