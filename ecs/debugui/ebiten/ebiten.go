// Package ebiten provides the Dear ImGui backend for Ebiten front-ends.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flockflow/ecs"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend. It is stored as a singleton so the game
// loop can bracket scheduler ticks with BeginFrame and EndFrame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend window. The imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// RegisterComponents registers the backend singleton type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiBackend](registry)
}

// Tick runs one scheduler step inside an ImGui frame.
func (b ImguiBackend) Tick(scheduler *ecs.Scheduler, dt float64) {
	b.BeginFrame()
	scheduler.Once(dt)
	b.EndFrame()
}

// Overlay draws the ImGui frame on top of screen.
func (b ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
