package debugdraw

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
)

// Image draws collision shapes into an offscreen gg context. It needs no
// window, so it backs snapshots and tests.
type Image struct {
	dc        *gg.Context
	cam       Camera
	LineWidth float64
}

func NewImage(width, height int, cam Camera) *Image {
	return &Image{dc: gg.NewContext(width, height), cam: cam, LineWidth: defaultStrokeWidth}
}

// Clear fills the whole image with bg.
func (im *Image) Clear(bg color.Color) {
	im.dc.SetColor(bg)
	im.dc.Clear()
}

// DrawWorld draws w limited to the camera view unless opts.View is set.
func (im *Image) DrawWorld(w *collision.World, opts collision.DebugOptions) {
	if w == nil {
		return
	}
	if opts.View == nil {
		view := im.cam.View(im.dc.Width(), im.dc.Height())
		opts.View = &view
	}
	w.DebugDraw(im, opts)
}

func (im *Image) DrawRect(r common.Rect, c color.Color) {
	z := im.cam.zoom()
	x, y := im.cam.ToScreen(r.Center())
	w, h := r.Width*z, r.Height*z
	im.dc.DrawRectangle(x-w/2, y-h/2, w, h)
	im.stroke(c)
}

func (im *Image) DrawCircle(ci common.Circle, c color.Color) {
	x, y := im.cam.ToScreen(ci.Center)
	im.dc.DrawCircle(x, y, ci.Radius*im.cam.zoom())
	im.stroke(c)
}

func (im *Image) DrawLine(l common.Line, c color.Color) {
	x1, y1 := im.cam.ToScreen(l.From)
	x2, y2 := im.cam.ToScreen(l.To)
	im.dc.DrawLine(x1, y1, x2, y2)
	im.stroke(c)
}

func (im *Image) stroke(c color.Color) {
	im.dc.SetColor(c)
	im.dc.SetLineWidth(im.LineWidth)
	im.dc.Stroke()
}

// Image returns the rendered pixels.
func (im *Image) Image() image.Image {
	return im.dc.Image()
}

// EncodePNG writes the rendered pixels as a PNG.
func (im *Image) EncodePNG(w io.Writer) error {
	if err := im.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("debugdraw: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the rendered pixels to path.
func (im *Image) SavePNG(path string) error {
	if err := im.dc.SavePNG(path); err != nil {
		return fmt.Errorf("debugdraw: save %s: %w", path, err)
	}
	return nil
}
