package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/atotto/clipboard"
	"github.com/plus3/flockflow/config"
	"github.com/plus3/flockflow/ecs"
	"github.com/plus3/flockflow/ecs/debugui"
	"github.com/plus3/flockflow/flock"
	"go.uber.org/zap"
)

// settingsPanel edits the live boid settings. Valid edits are staged and take effect on the
// next tick; an invalid draft is kept so the user can fix it.
type settingsPanel struct {
	log      *zap.Logger
	cfg      config.Config
	tunables *ecs.Singleton[flock.Tunables]

	draft  flock.Settings
	dirty  bool
	err    error
	status string
}

func newSettingsPanel(storage *ecs.Storage, cfg config.Config, log *zap.Logger) *settingsPanel {
	return &settingsPanel{
		log:      log,
		cfg:      cfg,
		tunables: ecs.NewSingleton[flock.Tunables](storage),
	}
}

func (p *settingsPanel) Render() {
	t := p.tunables.Get()
	if !p.dirty {
		p.draft = t.Settings()
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(750, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 460), imgui.CondOnce)
	if !imgui.BeginV("Boid Settings", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text(fmt.Sprintf("Version %d", t.Version()))
	if t.Pending() {
		imgui.SameLine()
		imgui.Text("(staged)")
	}
	imgui.Separator()

	if debugui.EditStruct("settings", &p.draft) {
		p.stage(t, p.draft)
	}
	if p.err != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.35, 0.35, 1), p.err.Error())
	}

	imgui.Separator()
	if imgui.Button("Defaults") {
		p.stage(t, flock.DefaultSettings())
	}
	imgui.SameLine()
	if imgui.Button("Revert") {
		p.dirty, p.err = false, nil
	}
	imgui.SameLine()
	if imgui.Button("Copy JSON") {
		p.copyJSON(t.Settings())
	}
	if p.status != "" {
		imgui.Text(p.status)
	}
}

func (p *settingsPanel) stage(t *flock.Tunables, s flock.Settings) {
	p.draft = s
	p.err = t.Stage(s)
	p.dirty = p.err != nil
	if p.err != nil {
		p.log.Debug("rejected settings edit", zap.Error(p.err))
	}
}

func (p *settingsPanel) copyJSON(active flock.Settings) {
	cfg := p.cfg
	cfg.Flock = active
	data, err := config.Marshal(cfg)
	if err == nil {
		err = clipboard.WriteAll(string(data))
	}
	if err != nil {
		p.status = "copy failed: " + err.Error()
		p.log.Warn("failed to copy config", zap.Error(err))
		return
	}
	p.status = fmt.Sprintf("copied %d bytes", len(data))
}
