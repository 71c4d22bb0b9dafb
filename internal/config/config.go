// Package config provides YAML-based configuration loading, difficulty
// presets and the speed ramp for the sprint runner.
package config

// RunnerConfig contains all tunables for the sprint runner.
// Distances are world units, times are milliseconds, speeds are units/second.
type RunnerConfig struct {
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Speed   SpeedConfig   `yaml:"speed"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Scoring ScoringConfig `yaml:"scoring"`
	Input   InputConfig   `yaml:"input"`
}

// WorldConfig defines the play field.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Ground line distance from the bottom edge
	Gravity      float64 `yaml:"gravity"`
	SpawnOffset  float64 `yaml:"spawn_offset"` // How far past the right edge entities appear
	DespawnX     float64 `yaml:"despawn_x"`    // Entities left of this are reaped
}

// GroundY returns the world y-coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundOffset
}

// PlayerConfig defines the runner's body and jump physics.
type PlayerConfig struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	JumpForce  float64 `yaml:"jump_force"`   // Initial vertical velocity, negative = up
	BoostForce float64 `yaml:"boost_force"`  // Extra velocity per tick while holding
	MaxBoostMs float64 `yaml:"max_boost_ms"` // Length of the boost window
}

// SpeedConfig defines the day-based speed ramp.
type SpeedConfig struct {
	Base      float64 `yaml:"base"`
	Max       float64 `yaml:"max"`
	Increment float64 `yaml:"increment"` // Added per sprint day
	DayMs     float64 `yaml:"day_ms"`    // Length of one sprint day
}

// SpawnConfig defines obstacle and pickup generation.
type SpawnConfig struct {
	ObstacleMs        float64 `yaml:"obstacle_ms"`
	PickupMs          float64 `yaml:"pickup_ms"`
	ChainChance       float64 `yaml:"chain_chance"`    // Probability of a follow-up obstacle
	ChainDelayMs      float64 `yaml:"chain_delay_ms"`  // Delay before the follow-up spawns
	ChainAfterDay     int     `yaml:"chain_after_day"` // Chains only once sprint day exceeds this
	ObstacleWidth     float64 `yaml:"obstacle_width"`
	ObstacleHeight    float64 `yaml:"obstacle_height"`
	PickupSize        float64 `yaml:"pickup_size"`
	PickupMinHeight   int     `yaml:"pickup_min_height"` // Above ground
	PickupMaxHeight   int     `yaml:"pickup_max_height"`
	FloatAmplitude    float64 `yaml:"float_amplitude"`
	FloatHalfPeriodMs float64 `yaml:"float_half_period_ms"`
}

// ScoringConfig defines how distance and pickups turn into score.
type ScoringConfig struct {
	DistanceDivisor float64        `yaml:"distance_divisor"`
	FeaturePoints   int            `yaml:"feature_points"`
	PickupValues    map[string]int `yaml:"pickup_values"` // Popup value per pickup name
	DefaultValue    int            `yaml:"default_value"`
}

// InputConfig defines platform input handling.
type InputConfig struct {
	// ReleaseAfterMs is how long after the last jump key event the TUI
	// reports the key as released. Terminals do not send key-up events.
	ReleaseAfterMs int `yaml:"release_after_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown or empty strings
// return "" which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
