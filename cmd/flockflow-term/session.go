package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flockflow/config"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/game"
	"go.uber.org/zap"
)

// session owns one running game and the terminal controls that drive it.
type session struct {
	log       *zap.Logger
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[game.Input]
	builder   *game.SceneBuilder
	scene     game.Scene
	controls  controls
	grid      grid
}

func newSession(cfg config.Config, log *zap.Logger) (*session, error) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	if err := game.Setup(storage, cfg.Flock, cfg.Game); err != nil {
		return nil, err
	}

	s := &session{
		log:       log,
		scheduler: game.NewScheduler(storage, log),
		input:     ecs.NewSingleton[game.Input](storage),
		builder:   game.NewSceneBuilder(storage),
	}
	s.builder.Build(&s.scene)
	return s, nil
}

// resize fits the arena to a width by height terminal.
func (s *session) resize(width, height int) {
	s.grid = newGrid(s.scene.Bounds, width, height)
}

// step feeds the controls into the game, advances it by dt and refreshes the scene.
func (s *session) step(now time.Time, dt float64) {
	s.controls.apply(s.input.Get(), s.grid, &s.scene, now)
	s.scheduler.Once(dt)
	s.builder.Build(&s.scene)
}

func (s *session) draw(screen tcell.Screen) {
	drawScene(screen, &s.scene, s.grid)
	screen.Show()
}

func (s *session) run(screen tcell.Screen, fps int) {
	s.resize(screen.Size())

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if s.controls.handleKey(ev, time.Now()) {
					s.log.Info("quit")
					return
				}
			case *tcell.EventMouse:
				s.controls.handleMouse(ev)
			case *tcell.EventResize:
				s.resize(ev.Size())
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last), 4*interval)
			last = now
			s.step(now, dt.Seconds())
			s.draw(screen)
		}
	}
}
