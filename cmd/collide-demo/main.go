package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/collide/logging"
	"github.com/milk9111/collide/metrics"
	"github.com/milk9111/collide/scene"
)

func main() {
	sceneName := flag.String("scene", "playground.yaml", "scene file in scene/scenes/ (disk first, then embedded)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:6060")
	watch := flag.Bool("watch", true, "reload the scene when files in the scene directory change")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	collector := metrics.NewCollector()
	if *metricsAddr != "" {
		reg := metrics.NewRegistry(collector)
		go func() {
			if err := metrics.Serve(ctx, *metricsAddr, reg, logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	game, err := NewGame(*sceneName, logger, collector)
	if err != nil {
		logger.Fatal("load scene", zap.String("scene", *sceneName), zap.Error(err))
	}

	if *watch {
		w, err := scene.NewWatcher(logger, scene.DefaultSettle, scene.DiskDir)
		if err != nil {
			logger.Warn("scene watcher disabled", zap.String("dir", scene.DiskDir), zap.Error(err))
		} else {
			defer w.Close()
			game.Watch(w)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("collide")

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("run game", zap.Error(err))
	}
}
