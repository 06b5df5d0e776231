package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/flock"
)

// Phase is the top-level game state.
type Phase uint8

const (
	Playing Phase = iota
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is the game-state singleton. Round counts restarts.
type State struct {
	Phase Phase
	Round int
}

// Points is the player's score.
type Points struct {
	Value uint32
}

func (p *Points) Add(n uint32) {
	p.Value += n
}

// Remove subtracts n, stopping at zero.
func (p *Points) Remove(n uint32) {
	p.Value -= min(n, p.Value)
}

// WaveRequest asks for the next wave to be centred on a collector.
type WaveRequest struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// Waves counts the waves spawned so far and holds requests waiting for WaveSystem.
type Waves struct {
	Count   int
	pending []WaveRequest
}

func (w *Waves) Request(position, velocity mgl32.Vec2) {
	w.pending = append(w.pending, WaveRequest{Position: position, Velocity: velocity})
}

// Pending returns the number of requests not yet turned into spawns.
func (w *Waves) Pending() int {
	return len(w.pending)
}

func (w *Waves) reset() {
	w.Count = 0
	w.pending = w.pending[:0]
}

// SpawnQueue collects spawn requests until SpawnSystem turns them into entities.
type SpawnQueue struct {
	requests []flock.SpawnRequest
}

func (q *SpawnQueue) Push(r flock.SpawnRequest) {
	q.requests = append(q.requests, r)
}

func (q *SpawnQueue) Len() int {
	return len(q.requests)
}

func (q *SpawnQueue) drain() []flock.SpawnRequest {
	out := q.requests
	q.requests = nil
	return out
}

// Input is written by a front-end before each tick and cleared by ClearInputSystem after it.
type Input struct {
	// Turn is -1 for left, +1 for right and 0 when not turning.
	Turn        float32
	Brake       bool
	Boost       bool
	Pause       bool
	Restart     bool
	NextWave    bool
	Shockwave   bool
	ShockwaveAt mgl32.Vec2
}

// Rng is the game's random source. A fixed seed replays the same game.
type Rng struct {
	r *rand.Rand
}

// NewRng seeds a PCG generator. Seed 0 derives one from the clock.
func NewRng(seed uint64) Rng {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return Rng{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Rng) Float32() float32 {
	return g.r.Float32()
}

// Range returns a uniform value in [lo, hi).
func (g *Rng) Range(lo, hi float32) float32 {
	return lo + g.r.Float32()*(hi-lo)
}

// OnRing returns a uniformly random point on the circle of the given radius.
func (g *Rng) OnRing(radius float32) mgl32.Vec2 {
	a := g.r.Float64() * 2 * math.Pi
	return mgl32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}.Mul(radius)
}

// InRect returns a uniformly random point inside r.
func (g *Rng) InRect(r flock.Rect) mgl32.Vec2 {
	return mgl32.Vec2{g.Range(r.Min[0], r.Max[0]), g.Range(r.Min[1], r.Max[1])}
}
