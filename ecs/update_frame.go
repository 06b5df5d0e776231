package ecs

// UpdateFrame is passed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	// Tick numbers Once calls from 1.
	Tick uint64
	// DeltaTime is the simulated time step in seconds.
	DeltaTime float64
	// Elapsed is the simulated time up to the end of this tick.
	Elapsed  float64
	Commands *Commands
	Storage  *Storage
}
