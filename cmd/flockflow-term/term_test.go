package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/config"
	"github.com/plus3/flockflow/flock"
	"github.com/plus3/flockflow/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	runes := cells[y*w+x].Runes
	if len(runes) == 0 {
		return ' '
	}
	return runes[0]
}

func row(screen tcell.SimulationScreen, y int) string {
	_, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := range w {
		sb.WriteRune(cellAt(screen, x, y))
	}
	return sb.String()
}

func TestArrowOctants(t *testing.T) {
	tests := []struct {
		dir  mgl32.Vec2
		want rune
	}{
		{mgl32.Vec2{1, 0}, '→'},
		{mgl32.Vec2{1, 1}, '↗'},
		{mgl32.Vec2{0, 1}, '↑'},
		{mgl32.Vec2{-1, 0.1}, '←'},
		{mgl32.Vec2{-1, -0.1}, '←'},
		{mgl32.Vec2{0, -1}, '↓'},
		{mgl32.Vec2{1, -1}, '↘'},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(arrow(tt.dir)), "direction %v", tt.dir)
	}

	assert.Equal(t, '↑', glyph(game.Sprite{Kind: flock.KindBoi, Heading: flock.Heading(mgl32.Vec2{0, 5})}))
	assert.Equal(t, 'x', glyph(game.Sprite{Kind: flock.KindAngryBoi}))
}

func TestGridRoundTrip(t *testing.T) {
	g := newGrid(flock.NewRect(-500, -300, 500, 300), 110, 34)

	x, y, ok := g.toCell(mgl32.Vec2{0, 0})
	require.True(t, ok)
	assert.Equal(t, 55, x)
	assert.Equal(t, 17, y)

	_, top, ok := g.toCell(mgl32.Vec2{0, 300})
	require.True(t, ok)
	assert.Less(t, top, y, "world y grows upward")

	_, _, ok = g.toCell(mgl32.Vec2{5000, 0})
	assert.False(t, ok)

	p := g.toWorld(x, y)
	cx, cy, _ := g.toCell(p)
	assert.Equal(t, x, cx)
	assert.Equal(t, y, cy)
}

func TestDrawScene(t *testing.T) {
	screen := newScreen(t, 80, 24)
	scene := &game.Scene{
		Bounds:  flock.NewRect(-500, -300, 500, 300),
		Boids:   []game.Sprite{{Kind: flock.KindPlayer, Position: mgl32.Vec2{0, 0}}},
		Pickups: []game.Pickup{{Position: mgl32.Vec2{400, 0}}},
		HUD:     game.HUD{Phase: game.GameOver, Points: 12, Wave: 3, Round: 2},
	}
	g := newGrid(scene.Bounds, 80, 24)

	drawScene(screen, scene, g)
	screen.Show()

	px, py, _ := g.toCell(scene.Boids[0].Position)
	assert.Equal(t, '@', cellAt(screen, px, py))
	cx, cy, _ := g.toCell(scene.Pickups[0].Position)
	assert.Equal(t, '$', cellAt(screen, cx, cy))

	hud := row(screen, 0)
	assert.Contains(t, hud, "Points 12")
	assert.Contains(t, hud, "Wave 3")
	assert.Contains(t, hud, "GAME OVER")
}

func TestControlsHoldAndOneShot(t *testing.T) {
	var c controls
	now := time.Unix(100, 0)
	g := newGrid(flock.NewRect(-500, -300, 500, 300), 80, 24)
	scene := &game.Scene{Boids: []game.Sprite{{Kind: flock.KindPlayer, Position: mgl32.Vec2{7, 8}}}}

	assert.False(t, c.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now))
	assert.False(t, c.handleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), now))
	assert.False(t, c.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), now))

	var in game.Input
	c.apply(&in, g, scene, now.Add(holdFor/2))
	assert.Equal(t, float32(-1), in.Turn)
	assert.True(t, in.Pause)
	assert.True(t, in.Shockwave)
	assert.Equal(t, mgl32.Vec2{7, 8}, in.ShockwaveAt)

	in = game.Input{}
	c.apply(&in, g, scene, now.Add(2*holdFor))
	assert.Zero(t, in.Turn, "held keys expire")
	assert.False(t, in.Pause, "one-shot actions fire once")
	assert.False(t, in.Shockwave)

	assert.True(t, c.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), now))
	assert.True(t, c.handleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), now))
}

func TestControlsMouseShockwave(t *testing.T) {
	var c controls
	g := newGrid(flock.NewRect(-500, -300, 500, 300), 80, 24)
	c.handleMouse(tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone))

	var in game.Input
	c.apply(&in, g, &game.Scene{}, time.Now())
	require.True(t, in.Shockwave)
	assert.Equal(t, g.toWorld(40, 12), in.ShockwaveAt)

	in = game.Input{}
	c.handleMouse(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone))
	c.apply(&in, g, &game.Scene{}, time.Now())
	assert.False(t, in.Shockwave)
}

func TestSessionStepsAndDraws(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 3
	s, err := newSession(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	screen := newScreen(t, 100, 30)
	s.resize(screen.Size())

	now := time.Unix(0, 0)
	for i := range 5 {
		s.step(now.Add(time.Duration(i)*33*time.Millisecond), 1.0/30.0)
	}
	s.draw(screen)

	assert.NotEmpty(t, s.scene.Boids)
	assert.GreaterOrEqual(t, s.scene.HUD.Wave, 1)
	assert.True(t, strings.HasPrefix(row(screen, 0), "Points "))
}
