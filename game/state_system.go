package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/flock"
	"go.uber.org/zap"
)

// StateSystem handles pause and restart input and keeps the flock gate in step with the
// game phase. It runs first in the tick.
type StateSystem struct {
	Log *zap.Logger

	Input    ecs.Singleton[Input]
	State    ecs.Singleton[State]
	Gate     ecs.Singleton[flock.Gate]
	Config   ecs.Singleton[Config]
	Tunables ecs.Singleton[flock.Tunables]
	Points   ecs.Singleton[Points]
	Waves    ecs.Singleton[Waves]
	Queue    ecs.Singleton[SpawnQueue]
	Rng      ecs.Singleton[Rng]

	Boids ecs.Query[struct {
		ecs.EntityId
		*flock.Boid
	}]
	Shockwaves ecs.Query[struct {
		ecs.EntityId
		*Shockwave
	}]
}

func (s *StateSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	state := s.State.Get()

	switch {
	case in.Pause && state.Phase == Playing:
		state.Phase = Paused
		logger(s.Log).Info("game paused")
	case in.Pause && state.Phase == Paused:
		state.Phase = Playing
		logger(s.Log).Info("game resumed")
	case in.Restart && state.Phase == GameOver:
		s.restart(frame, state)
	}

	s.Gate.Get().Paused = state.Phase == Paused
}

func (s *StateSystem) restart(frame *ecs.UpdateFrame, state *State) {
	for b := range s.Boids.Iter() {
		frame.Commands.Delete(b.EntityId)
	}
	for w := range s.Shockwaves.Iter() {
		frame.Commands.Delete(w.EntityId)
	}

	points := s.Points.Get()
	points.Remove(points.Value)
	s.Waves.Get().reset()
	s.Queue.Get().drain()

	cfg := s.Config.Get()
	settings := s.Tunables.Get().Settings()
	frame.Commands.Spawn(NewPlayer(s.Rng.Get().InRect(settings.Bounds), *cfg, settings)...)
	s.Waves.Get().Request(mgl32.Vec2{}, mgl32.Vec2{})

	state.Phase = Playing
	state.Round++
	logger(s.Log).Info("round started", zap.Int("round", state.Round))
}
