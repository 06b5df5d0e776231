package flock

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flockflow/ecs"
	"go.uber.org/zap"
)

// ErrInvalidSettings is matched by every error returned from Settings.Validate.
var ErrInvalidSettings = errors.New("invalid boid settings")

// FieldError reports one settings field that violates its constraint.
type FieldError struct {
	Field  string
	Value  float32
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// Rect is an axis-aligned rectangle. Contains is inclusive on every edge.
type Rect struct {
	Min mgl32.Vec2 `json:"min"`
	Max mgl32.Vec2 `json:"max"`
}

// NewRect builds a Rect from two corners.
func NewRect(x0, y0, x1, y1 float32) Rect {
	return Rect{Min: mgl32.Vec2{x0, y0}, Max: mgl32.Vec2{x1, y1}}
}

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

func (r Rect) Width() float32  { return r.Max[0] - r.Min[0] }
func (r Rect) Height() float32 { return r.Max[1] - r.Min[1] }

// Settings are the tunable flocking parameters. A Settings value is never mutated while a
// tick is running; replacements go through Tunables.Stage.
type Settings struct {
	Cohesion   float32 `json:"cohesion"`
	Separation float32 `json:"separation"`
	Alignment  float32 `json:"alignment"`

	VisualRange float32 `json:"visual_range"`
	AvoidRange  float32 `json:"avoid_range"`
	HomeRange   float32 `json:"home_range"`
	HomeEffect  float32 `json:"home_effect"`

	MaxSpeed float32 `json:"max_speed"`
	// OutOfBoundsSpeed multiplies MaxSpeed for entities outside Bounds.
	OutOfBoundsSpeed float32 `json:"out_of_bounds_speed"`
	CenteringForce   float32 `json:"centering_force"`
	Bounds           Rect    `json:"bounds"`
}

// DefaultSettings returns the tuning the game ships with.
func DefaultSettings() Settings {
	return Settings{
		Cohesion:         0.192,
		Separation:       0.487,
		Alignment:        0.435,
		VisualRange:      15,
		AvoidRange:       10,
		HomeRange:        300,
		HomeEffect:       2,
		MaxSpeed:         200,
		OutOfBoundsSpeed: 5,
		CenteringForce:   20,
		Bounds:           NewRect(-500, -300, 500, 300),
	}
}

// Validate checks every field and returns all violations joined together.
func (s Settings) Validate() error {
	var errs []error

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"cohesion", s.Cohesion},
		{"separation", s.Separation},
		{"alignment", s.Alignment},
		{"visual_range", s.VisualRange},
		{"avoid_range", s.AvoidRange},
		{"home_range", s.HomeRange},
		{"home_effect", s.HomeEffect},
		{"max_speed", s.MaxSpeed},
		{"centering_force", s.CenteringForce},
	}
	for _, f := range nonNegative {
		switch {
		case !isFinite(f.value):
			errs = append(errs, &FieldError{Field: f.name, Value: f.value, Reason: "must be finite"})
		case f.value < 0:
			errs = append(errs, &FieldError{Field: f.name, Value: f.value, Reason: "must not be negative"})
		}
	}

	switch {
	case !isFinite(s.OutOfBoundsSpeed):
		errs = append(errs, &FieldError{Field: "out_of_bounds_speed", Value: s.OutOfBoundsSpeed, Reason: "must be finite"})
	case s.OutOfBoundsSpeed < 1:
		errs = append(errs, &FieldError{Field: "out_of_bounds_speed", Value: s.OutOfBoundsSpeed, Reason: "must be at least 1"})
	}

	for axis, name := range []string{"x", "y"} {
		lo, hi := s.Bounds.Min[axis], s.Bounds.Max[axis]
		switch {
		case !isFinite(lo):
			errs = append(errs, &FieldError{Field: "bounds.min." + name, Value: lo, Reason: "must be finite"})
		case !isFinite(hi):
			errs = append(errs, &FieldError{Field: "bounds.max." + name, Value: hi, Reason: "must be finite"})
		case lo > hi:
			errs = append(errs, &FieldError{
				Field:  "bounds.min." + name,
				Value:  lo,
				Reason: fmt.Sprintf("must not exceed bounds.max.%s (%g)", name, hi),
			})
		}
	}

	return errors.Join(errs...)
}

func isNaN(f float32) bool {
	return f != f
}

func isFinite(f float32) bool {
	return !isNaN(f) && !math.IsInf(float64(f), 0)
}

// Tunables holds the active Settings and at most one staged replacement. It lives in the
// storage as a singleton; SettingsSystem promotes the staged value at the start of a tick.
type Tunables struct {
	current Settings
	pending *Settings
	version uint64
}

// NewTunables validates s and wraps it.
func NewTunables(s Settings) (Tunables, error) {
	if err := s.Validate(); err != nil {
		return Tunables{}, err
	}
	return Tunables{current: s, version: 1}, nil
}

// Settings returns a copy of the active settings.
func (t *Tunables) Settings() Settings {
	return t.current
}

// Version increases every time a staged replacement becomes active.
func (t *Tunables) Version() uint64 {
	return t.version
}

// Stage validates s and queues it to replace the active settings before the next tick.
// A later Stage before that tick wins.
func (t *Tunables) Stage(s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("stage settings: %w", err)
	}
	t.pending = &s
	return nil
}

// Pending reports whether a staged replacement is waiting.
func (t *Tunables) Pending() bool {
	return t.pending != nil
}

func (t *Tunables) commit() bool {
	if t.pending == nil {
		return false
	}
	t.current = *t.pending
	t.pending = nil
	t.version++
	return true
}

// SettingsSystem makes staged settings active. Register it before every other flock system.
type SettingsSystem struct {
	Tunables ecs.Singleton[Tunables]
	Log      *zap.Logger
}

func (s *SettingsSystem) Execute(frame *ecs.UpdateFrame) {
	t := s.Tunables.Get()
	if t == nil || !t.commit() {
		return
	}
	if s.Log != nil {
		s.Log.Info("boid settings applied", zap.Uint64("version", t.version))
	}
}
