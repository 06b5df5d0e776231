// Command flockflow-term plays Flock Flow in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flockflow/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "RNG seed. Zero keeps the config value.")
	logPath := flag.String("log", "", "Write JSON logs to this file. Logging is off when empty.")
	fps := flag.Int("fps", 30, "Frames per second.")
	flag.Parse()

	log, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	s, err := newSession(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start game: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	log.Info("starting", zap.Uint64("seed", cfg.Game.Seed), zap.Int("fps", *fps))
	s.run(screen, max(*fps, 1))
}

// newLogger logs to path, or nowhere when path is empty, so that output never lands on the
// game screen.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
