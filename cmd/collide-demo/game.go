package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
	"github.com/milk9111/collide/debugdraw"
	"github.com/milk9111/collide/metrics"
	"github.com/milk9111/collide/scene"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	panSpeed   = 8
)

var (
	background = color.NRGBA{R: 0x12, G: 0x12, B: 0x1c, A: 0xff}
	hitColor   = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	probeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	hiddenGrid = color.NRGBA{}
)

type Game struct {
	log       *zap.Logger
	engine    *collision.Engine
	sceneName string
	scene     *scene.Scene
	collector *metrics.Collector

	cam      debugdraw.Camera
	probePos cp.Vector
	hits     []collision.Shape

	showGrid  bool
	sortHits  bool
	clipboard bool

	ui      *ebitenui.UI
	reload  <-chan scene.Batch
	lastErr string
}

func NewGame(sceneName string, log *zap.Logger, collector *metrics.Collector) (*Game, error) {
	g := &Game{
		log:       log,
		engine:    collision.NewEngine(collision.WithLogger(log)),
		sceneName: sceneName,
		collector: collector,
		cam:       debugdraw.Camera{Zoom: 1},
		showGrid:  true,
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}

	g.ui = NewOverlayUI(g)
	return g, nil
}

// Watch reloads the scene whenever w reports an edit.
func (g *Game) Watch(w *scene.Watcher) {
	g.reload = w.Batches()
}

func (g *Game) loadScene() error {
	spec, err := scene.LoadSceneSpec(g.sceneName)
	if err != nil {
		return err
	}
	s, err := scene.Build(spec, g.engine, g.log)
	if err != nil {
		return err
	}
	if g.scene != nil {
		g.scene.Destroy()
	}
	g.scene = s
	g.sortHits = spec.Probe.Sort
	g.lastErr = ""
	return nil
}

func (g *Game) Reload() {
	if err := g.loadScene(); err != nil {
		g.lastErr = err.Error()
		g.log.Error("scene reload failed", zap.String("scene", g.sceneName), zap.Error(err))
		return
	}
	g.log.Info("scene reloaded", zap.String("scene", g.sceneName))
}

func (g *Game) CopyStats() {
	if !g.clipboard {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.scene.World.Stats().String()))
}

func (g *Game) Update() error {
	if g.reload != nil {
		select {
		case batch, ok := <-g.reload:
			if !ok {
				g.reload = nil
				break
			}
			for _, c := range batch {
				g.log.Debug("scene file changed", zap.String("file", c.Path), zap.Stringer("kind", c.Kind))
			}
			g.Reload()
		default:
		}
	}

	g.ui.Update()

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.cam.X -= panSpeed
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.cam.X += panSpeed
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.cam.Y -= panSpeed
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.cam.Y += panSpeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.CopyStats()
	}

	mx, my := ebiten.CursorPosition()
	g.probePos = g.cam.ToWorld(float64(mx), float64(my))

	opts := g.scene.ProbeOptions()
	opts.SortByDistance = g.sortHits
	start := time.Now()
	g.hits = g.scene.World.Pick(g.probePos, g.scene.Spec.Probe.Radius, opts)
	g.collector.ObserveQuery(time.Since(start))
	g.collector.Observe(g.scene.World)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	d := debugdraw.NewScreen(screen, g.cam)
	opts := g.scene.DebugOptions()
	if !g.showGrid {
		opts.GridColor, opts.HighlightColor = hiddenGrid, hiddenGrid
	}
	d.DrawWorld(g.scene.World, opts)

	d.StrokeWidth = 2
	for _, hit := range g.hits {
		d.DrawRect(common.RectFromBB(hit.BoundingBox()), hitColor)
	}
	if r := g.scene.Spec.Probe.Radius; r > 1 {
		d.DrawCircle(common.Circle{Center: g.probePos, Radius: r}, probeColor)
	} else {
		collision.NewPoint(g.probePos).DebugDraw(d, 1)
	}

	status := fmt.Sprintf("FPS: %.1f  shapes: %d  cells: %d  hits: %d\n%s",
		ebiten.ActualFPS(), g.scene.World.Len(), g.scene.World.CellCount(), len(g.hits),
		g.scene.World.Stats())
	if g.lastErr != "" {
		status += "\nreload failed: " + g.lastErr
	}
	ebitenutil.DebugPrint(screen, status)

	g.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
