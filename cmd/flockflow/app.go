package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/flockflow/config"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/ecs/debugui"
	debugui_ebiten "github.com/plus3/flockflow/ecs/debugui/ebiten"
	"github.com/plus3/flockflow/game"
	"go.uber.org/zap"
)

// app implements ebiten.Game on top of the game scheduler.
type app struct {
	log       *zap.Logger
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[game.Input]

	// nil unless the debug overlay is enabled
	imgui      *ecs.Singleton[debugui_ebiten.ImguiBackend]
	imguiInput *ecs.Singleton[debugui.ImguiInputState]

	builder *game.SceneBuilder
	scene   game.Scene
	cam     camera
}

func newApp(cfg config.Config, debug bool, log *zap.Logger) (*app, error) {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)
	if err := game.Setup(storage, cfg.Flock, cfg.Game); err != nil {
		return nil, err
	}
	scheduler := game.NewScheduler(storage, log)

	a := &app{
		log:       log,
		storage:   storage,
		scheduler: scheduler,
		input:     ecs.NewSingleton[game.Input](storage),
		builder:   game.NewSceneBuilder(storage),
	}

	if debug {
		debugui.RegisterComponents(registry)
		debugui_ebiten.RegisterComponents(registry)
		storage.AddSingleton(debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))

		panel := newSettingsPanel(storage, cfg, log)
		storage.Spawn(debugui.ImguiItem{Render: panel.Render})
		debugui.Install(storage, scheduler)

		a.imgui = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage)
		a.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](storage)
	}
	return a, nil
}

func (a *app) Update() error {
	a.readInput()

	dt := 1.0 / float64(ebiten.TPS())
	if a.imgui != nil {
		a.imgui.Get().Tick(a.scheduler, dt)
	} else {
		a.scheduler.Once(dt)
	}
	return nil
}

func (a *app) readInput() {
	var mouseCaptured, keysCaptured bool
	if a.imguiInput != nil {
		state := a.imguiInput.Get()
		mouseCaptured, keysCaptured = state.WantCaptureMouse, state.WantCaptureKeyboard
	}

	in := a.input.Get()
	if !keysCaptured {
		pressed := func(keys ...ebiten.Key) bool {
			for _, k := range keys {
				if ebiten.IsKeyPressed(k) {
					return true
				}
			}
			return false
		}
		if pressed(ebiten.KeyArrowLeft, ebiten.KeyA) {
			in.Turn--
		}
		if pressed(ebiten.KeyArrowRight, ebiten.KeyD) {
			in.Turn++
		}
		in.Brake = pressed(ebiten.KeyArrowDown, ebiten.KeyS, ebiten.KeyShift)
		in.Boost = pressed(ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW)
		in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
		in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
		in.NextWave = inpututil.IsKeyJustPressed(ebiten.KeyN)
	}
	if !mouseCaptured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.Shockwave = true
		in.ShockwaveAt = a.cam.toWorld(float32(x), float32(y))
	}
}

func (a *app) Draw(screen *ebiten.Image) {
	a.builder.Build(&a.scene)
	a.cam.fit(a.scene.Bounds, screen.Bounds().Dx(), screen.Bounds().Dy())
	drawScene(screen, &a.scene, a.cam)
	drawHUD(screen, &a.scene.HUD)

	if a.imgui != nil {
		a.imgui.Get().Overlay(screen)
	}
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.imgui != nil {
		a.imgui.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
