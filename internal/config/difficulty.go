package config

import (
	"errors"
	"fmt"
	"math"
)

// ForDay returns the run speed for a sprint day.
// The speed is a function of the day number alone, so replaying a day always
// yields the same speed: min(Max, Base + Increment*day).
func (s SpeedConfig) ForDay(day int) float64 {
	return math.Min(s.Max, s.Base+s.Increment*float64(day))
}

// ValueFor returns the popup value for a pickup name.
func (s ScoringConfig) ValueFor(name string) int {
	if v, ok := s.PickupValues[name]; ok {
		return v
	}
	return s.DefaultValue
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Max = math.Min(cfg.Speed.Max, 350)
		cfg.Spawn.ChainChance = 0.15
		cfg.Spawn.ChainAfterDay = 4
	case DifficultyHard:
		cfg.Speed.Increment = 12
		cfg.Spawn.ChainChance = 0.45
		cfg.Spawn.ChainAfterDay = 1
	case DifficultyFixed:
		cfg.Speed.Increment = 0
	}
}

// Validate reports configuration values the game cannot run with.
func (c RunnerConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.World.GroundOffset < 0 || c.World.GroundOffset >= c.World.Height {
		errs = append(errs, fmt.Errorf("world.ground_offset %v outside world height", c.World.GroundOffset))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.MaxBoostMs < 0 {
		errs = append(errs, errors.New("player.max_boost_ms must not be negative"))
	}
	if c.Speed.Base <= 0 || c.Speed.Max < c.Speed.Base {
		errs = append(errs, fmt.Errorf("speed range invalid: base %v, max %v", c.Speed.Base, c.Speed.Max))
	}
	if c.Speed.DayMs <= 0 || c.Spawn.ObstacleMs <= 0 || c.Spawn.PickupMs <= 0 {
		errs = append(errs, errors.New("timer periods must be positive"))
	}
	if c.Spawn.ChainChance < 0 || c.Spawn.ChainChance > 1 {
		errs = append(errs, fmt.Errorf("spawn.chain_chance %v outside [0, 1]", c.Spawn.ChainChance))
	}
	if c.Spawn.PickupMinHeight > c.Spawn.PickupMaxHeight {
		errs = append(errs, errors.New("spawn.pickup_min_height exceeds pickup_max_height"))
	}
	if c.Scoring.DistanceDivisor <= 0 {
		errs = append(errs, errors.New("scoring.distance_divisor must be positive"))
	}

	return errors.Join(errs...)
}
