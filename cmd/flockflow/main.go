// Command flockflow is the desktop Flock Flow game.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flockflow/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file. Defaults are used when empty.")
	debug := flag.Bool("debug", false, "Enable development logging and the ImGui debug overlay.")
	seed := flag.Uint64("seed", 0, "RNG seed. Zero keeps the config value.")
	flag.Parse()

	log := newLogger(*debug)
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	a, err := newApp(cfg, *debug, log)
	if err != nil {
		log.Fatal("failed to start game", zap.Error(err))
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("starting", zap.Bool("debug", *debug), zap.Uint64("seed", cfg.Game.Seed))
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal("game exited with error", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return log
}
