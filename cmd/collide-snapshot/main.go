// Command collide-snapshot renders a scene's collision debug view to a PNG
// without opening a window.
package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/common"
	"github.com/milk9111/collide/debugdraw"
	"github.com/milk9111/collide/logging"
	"github.com/milk9111/collide/scene"
)

var (
	background = color.NRGBA{R: 0x12, G: 0x12, B: 0x1c, A: 0xff}
	hitColor   = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	probeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func main() {
	sceneName := flag.String("scene", "playground.yaml", "scene file in scene/scenes/ (disk first, then embedded)")
	out := flag.String("out", "snapshot.png", "output PNG path")
	width := flag.Int("width", 1280, "image width in pixels")
	height := flag.Int("height", 720, "image height in pixels")
	zoom := flag.Float64("zoom", 1, "camera zoom")
	camX := flag.Float64("cam-x", 0, "world x of the image's left edge")
	camY := flag.Float64("cam-y", 0, "world y of the image's top edge")
	probeX := flag.Float64("probe-x", 200, "probe world x")
	probeY := flag.Float64("probe-y", 200, "probe world y")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	spec, err := scene.LoadSceneSpec(*sceneName)
	if err != nil {
		logger.Fatal("load scene", zap.String("scene", *sceneName), zap.Error(err))
	}
	s, err := scene.Build(spec, collision.NewEngine(collision.WithLogger(logger)), logger)
	if err != nil {
		logger.Fatal("build scene", zap.String("scene", *sceneName), zap.Error(err))
	}

	probe := cp.Vector{X: *probeX, Y: *probeY}
	hits := s.World.Pick(probe, spec.Probe.Radius, s.ProbeOptions())

	img := debugdraw.NewImage(*width, *height, debugdraw.Camera{X: *camX, Y: *camY, Zoom: *zoom})
	img.Clear(background)
	img.DrawWorld(s.World, s.DebugOptions())

	img.LineWidth = 2
	for _, hit := range hits {
		img.DrawRect(common.RectFromBB(hit.BoundingBox()), hitColor)
	}
	if r := spec.Probe.Radius; r > 1 {
		img.DrawCircle(common.Circle{Center: probe, Radius: r}, probeColor)
	} else {
		collision.NewPoint(probe).DebugDraw(img, 1)
	}

	if err := img.SavePNG(*out); err != nil {
		logger.Fatal("write snapshot", zap.Error(err))
	}

	names := make([]string, 0, len(hits))
	for _, hit := range hits {
		names = append(names, describe(s, hit))
	}
	logger.Info("snapshot written",
		zap.String("out", *out),
		zap.Strings("hits", names),
		zap.Stringer("stats", s.World.Stats()),
	)
}

// describe names a shape by its scene name when it has one.
func describe(s *scene.Scene, shape collision.Shape) string {
	for _, name := range s.Names() {
		if candidate, _ := s.Shape(name); candidate == shape {
			return name
		}
	}
	return string(shape.TypeID())
}
