// Package debugui renders Dear ImGui debug windows for an ECS world. Windows are entities
// carrying an ImguiItem; ImguiSystem defers their render functions so they draw after every
// other system has run for the frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flockflow/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this frame. Front-ends
// check it before turning raw input into game input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queues every ImguiItem render function and refreshes ImguiInputState.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// RegisterComponents registers the debug UI component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Install adds the input state singleton, spawns the standard windows and registers
// ImguiSystem. It should be called after every other system is registered.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	storage.AddSingleton(ImguiInputState{})

	perf := NewPerformanceStats(scheduler, 120)
	archetypes := NewArchetypeViewer()
	inspector := NewEntityInspector(100)

	storage.Spawn(ImguiItem{Render: func() { perf.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() {
		if id, ok := archetypes.Render(storage); ok {
			inspector.FilterArchetype(id)
		}
	}})
	storage.Spawn(ImguiItem{Render: func() { inspector.Render(storage) }})

	scheduler.Register(&ImguiSystem{})
}
