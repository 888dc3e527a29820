// Package debugdraw renders collision debug output, either to an ebiten
// screen during play or to an offscreen gg context for snapshots.
package debugdraw

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/collide/common"
)

// Camera maps world coordinates to screen pixels. X and Y are the world
// position of the screen's top-left corner.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ToScreen converts a world position into screen pixels.
func (c Camera) ToScreen(v cp.Vector) (float64, float64) {
	z := c.zoom()
	return (v.X - c.X) * z, (v.Y - c.Y) * z
}

// ToWorld converts screen pixels into a world position.
func (c Camera) ToWorld(x, y float64) cp.Vector {
	z := c.zoom()
	return cp.Vector{X: x/z + c.X, Y: y/z + c.Y}
}

// View returns the world area visible on a screen of the given size.
func (c Camera) View(screenW, screenH int) common.Rect {
	z := c.zoom()
	return common.Rect{X: c.X, Y: c.Y, Width: float64(screenW) / z, Height: float64(screenH) / z}
}

// CenterOn moves the camera so p sits at the middle of the screen.
func (c *Camera) CenterOn(p cp.Vector, screenW, screenH int) {
	z := c.zoom()
	c.X = p.X - float64(screenW)/z/2
	c.Y = p.Y - float64(screenH)/z/2
}
