package game

import (
	"errors"
	"fmt"
)

// PlayerConfig tunes the player-controlled boid.
type PlayerConfig struct {
	Health          uint32  `json:"health"`
	TurnSpeed       float32 `json:"turn_speed"`
	BoostMultiplier float32 `json:"boost_multiplier"`
	BoostCooldown   float32 `json:"boost_cooldown"`
	BrakePower      float32 `json:"brake_power"`
}

// ShockwaveConfig describes one kind of shockwave.
type ShockwaveConfig struct {
	Radius   float32 `json:"radius"`
	Duration float32 `json:"duration"`
}

// Config holds the game rules layered on top of the flock settings. It is stored as a
// singleton and read by every game system.
type Config struct {
	// Seed feeds the game RNG. Zero picks a time-derived seed.
	Seed uint64 `json:"seed"`

	WaveBoi     int     `json:"wave_boi"`
	WaveCalmBoi int     `json:"wave_calmboi"`
	SpawnRing   float32 `json:"spawn_ring"`

	CollectRadius       float32 `json:"collect_radius"`
	CollectibleValue    uint32  `json:"collectible_value"`
	CollectibleCooldown float32 `json:"collectible_cooldown"`
	DamageRadius        float32 `json:"damage_radius"`

	ShockwavePush   float32         `json:"shockwave_push"`
	CollectWave     ShockwaveConfig `json:"collect_wave"`
	BoostWave       ShockwaveConfig `json:"boost_wave"`
	DeathWave       ShockwaveConfig `json:"death_wave"`
	ManualWave      ShockwaveConfig `json:"manual_wave"`
	AngryInfluence  float32         `json:"angry_influence"`
	CalmInfluence   float32         `json:"calm_influence"`
	InvulnerableFor float32         `json:"invulnerable_for"`

	Player PlayerConfig `json:"player"`
}

// DefaultConfig returns the rules the game ships with.
func DefaultConfig() Config {
	return Config{
		WaveBoi:     40,
		WaveCalmBoi: 10,
		SpawnRing:   1000,

		CollectRadius:       32,
		CollectibleValue:    1,
		CollectibleCooldown: 2,
		DamageRadius:        16,

		ShockwavePush:   100,
		CollectWave:     ShockwaveConfig{Radius: 100, Duration: 1},
		BoostWave:       ShockwaveConfig{Radius: 100, Duration: 0.5},
		DeathWave:       ShockwaveConfig{Radius: 1000, Duration: 1},
		ManualWave:      ShockwaveConfig{Radius: 100, Duration: 1},
		AngryInfluence:  10,
		CalmInfluence:   1,
		InvulnerableFor: 1,

		Player: PlayerConfig{
			Health:          1,
			TurnSpeed:       1.5,
			BoostMultiplier: 4,
			BoostCooldown:   1,
			BrakePower:      2000,
		},
	}
}

// Validate reports rule values that would break the simulation.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.WaveBoi >= 0, "wave_boi must not be negative, got %d", c.WaveBoi)
	check(c.WaveCalmBoi >= 0, "wave_calmboi must not be negative, got %d", c.WaveCalmBoi)
	check(c.CollectRadius > 0, "collect_radius must be positive, got %g", c.CollectRadius)
	check(c.DamageRadius > 0, "damage_radius must be positive, got %g", c.DamageRadius)
	check(c.CollectibleCooldown >= 0, "collectible_cooldown must not be negative, got %g", c.CollectibleCooldown)
	waves := []struct {
		name string
		ShockwaveConfig
	}{
		{"collect_wave", c.CollectWave},
		{"boost_wave", c.BoostWave},
		{"death_wave", c.DeathWave},
		{"manual_wave", c.ManualWave},
	}
	for _, w := range waves {
		check(w.Duration > 0, "%s.duration must be positive, got %g", w.name, w.Duration)
		check(w.Radius >= 0, "%s.radius must not be negative, got %g", w.name, w.Radius)
	}
	check(c.Player.Health > 0, "player.health must be at least 1")
	check(c.Player.BoostMultiplier >= 0.5, "player.boost_multiplier must be at least 0.5, got %g", c.Player.BoostMultiplier)

	return errors.Join(errs...)
}
