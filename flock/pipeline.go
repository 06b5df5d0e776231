package flock

import (
	"github.com/plus3/flockflow/ecs"
	"go.uber.org/zap"
)

// Setup registers the flock components and adds the Tunables, SpatialIndex and Gate
// singletons to storage.
func Setup(storage *ecs.Storage, settings Settings) error {
	tunables, err := NewTunables(settings)
	if err != nil {
		return err
	}
	RegisterComponents(storage.Registry())
	storage.AddSingleton(tunables)
	storage.AddSingleton(NewSpatialIndex(DefaultCellSize))
	storage.AddSingleton(Gate{})
	return nil
}

// RegisterForces adds the systems that promote staged settings, rebuild the spatial index
// and compute every force accumulator. They only read positions and velocities, so they
// can run in any order relative to each other once the index is built.
func RegisterForces(scheduler *ecs.Scheduler, targets Targets, log *zap.Logger) {
	scheduler.Register(&SettingsSystem{Log: log})
	scheduler.Register(&IndexSystem{})
	scheduler.Register(&CohesionSystem{})
	scheduler.Register(&SeparationSystem{})
	scheduler.Register(&AlignmentSystem{})
	scheduler.Register(&HomingSystem{Targets: targets})
}

// RegisterMotion adds force application followed by integration. Systems that adjust
// velocity directly belong between RegisterForces and RegisterMotion.
func RegisterMotion(scheduler *ecs.Scheduler) {
	scheduler.Register(&ApplySystem{})
	scheduler.Register(&IntegrateSystem{})
}

// Register installs the whole pipeline with nothing in between.
func Register(scheduler *ecs.Scheduler, targets Targets, log *zap.Logger) {
	RegisterForces(scheduler, targets, log)
	RegisterMotion(scheduler)
}
