package ecs

// System is one step of the per-tick pipeline. Exported Query and Singleton fields are bound
// by Scheduler.Register; any other fields are the system's own state and persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
