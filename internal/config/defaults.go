package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// Used when the embedded YAML cannot be parsed and as the base that partial
// user configs are merged onto.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:        800,
			Height:       300,
			GroundOffset: 24,
			Gravity:      800,
			SpawnOffset:  20,
			DespawnX:     -50,
		},
		Player: PlayerConfig{
			X:          60,
			Width:      28,
			Height:     28,
			JumpForce:  -280,
			BoostForce: -25,
			MaxBoostMs: 300,
		},
		Speed: SpeedConfig{
			Base:      200,
			Max:       450,
			Increment: 8,
			DayMs:     5000,
		},
		Spawn: SpawnConfig{
			ObstacleMs:        1500,
			PickupMs:          2500,
			ChainChance:       0.3,
			ChainDelayMs:      300,
			ChainAfterDay:     2,
			ObstacleWidth:     16,
			ObstacleHeight:    24,
			PickupSize:        12,
			PickupMinHeight:   60,
			PickupMaxHeight:   100,
			FloatAmplitude:    8,
			FloatHalfPeriodMs: 400,
		},
		Scoring: ScoringConfig{
			DistanceDivisor: 10,
			FeaturePoints:   25,
			PickupValues: map[string]int{
				"Offer Letter":    100,
				"Feature Shipped": 50,
			},
			DefaultValue: 25,
		},
		Input: InputConfig{
			ReleaseAfterMs: 200,
		},
	}
}

// DefaultYAML returns the embedded default config. `sprint config` prints it
// as a template for user configs.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
