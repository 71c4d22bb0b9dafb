package runner

import (
	"math"

	"github.com/krackeddevs/sprint-runner/internal/config"
)

// Phase is the run's position in the Idle -> Running -> GameOver cycle.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting for the first jump
	PhaseRunning               // Timers live, field scrolling
	PhaseGameOver              // Field frozen, waiting for restart
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// GameState holds every counter of one run. It is a plain value: each
// transition takes a state and returns the next one plus whether the
// transition was allowed. A rejected transition returns the input unchanged.
type GameState struct {
	Score           int
	Distance        float64
	FeaturesShipped int
	SprintDay       int
	GameSpeed       float64
	Phase           Phase
}

// NewGameState returns the state at scene start: day 1, base speed, idle.
func NewGameState(speed config.SpeedConfig) GameState {
	return GameState{
		SprintDay: 1,
		GameSpeed: speed.Base,
		Phase:     PhaseIdle,
	}
}

// HasStarted reports whether the run left the start screen.
func (s GameState) HasStarted() bool {
	return s.Phase != PhaseIdle
}

// IsGameOver reports whether the run has ended.
func (s GameState) IsGameOver() bool {
	return s.Phase == PhaseGameOver
}

// IsRunning reports whether the run is live.
func (s GameState) IsRunning() bool {
	return s.Phase == PhaseRunning
}

// Start moves Idle to Running.
func (s GameState) Start() (GameState, bool) {
	if s.Phase != PhaseIdle {
		return s, false
	}
	s.Phase = PhaseRunning
	return s, true
}

// Travel advances the distance by the current speed over deltaMs and
// recomputes the score.
func (s GameState) Travel(deltaMs float64, scoring config.ScoringConfig) (GameState, bool) {
	if s.Phase != PhaseRunning || deltaMs < 0 {
		return s, false
	}
	s.Distance += s.GameSpeed * deltaMs / 1000
	return s.rescore(scoring), true
}

// ShipFeature counts one collected pickup. Every pickup is worth the same
// flat feature points regardless of its popup value.
func (s GameState) ShipFeature(scoring config.ScoringConfig) (GameState, bool) {
	if s.Phase != PhaseRunning {
		return s, false
	}
	s.FeaturesShipped++
	return s.rescore(scoring), true
}

// AdvanceDay moves to the next sprint day and derives the speed from it.
func (s GameState) AdvanceDay(speed config.SpeedConfig) (GameState, bool) {
	if s.Phase != PhaseRunning {
		return s, false
	}
	s.SprintDay++
	s.GameSpeed = speed.ForDay(s.SprintDay)
	return s, true
}

// End moves Running to GameOver.
func (s GameState) End() (GameState, bool) {
	if s.Phase != PhaseRunning {
		return s, false
	}
	s.Phase = PhaseGameOver
	return s, true
}

// rescore applies score = floor(distance/divisor) + shipped*featurePoints.
func (s GameState) rescore(scoring config.ScoringConfig) GameState {
	s.Score = int(math.Floor(s.Distance/scoring.DistanceDivisor)) + s.FeaturesShipped*scoring.FeaturePoints
	return s
}
