// Package runner implements Sprint Runner, a side-scrolling endless runner:
// jump over legacy bugs and prod incidents, collect shipped features, and
// survive as many sprint days as possible while the pace keeps rising.
package runner

import (
	"math/rand"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/krackeddevs/sprint-runner/internal/config"
	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/physics"
	"github.com/krackeddevs/sprint-runner/internal/registry"
)

// GameID is the registry and score-storage identifier.
const GameID = "sprint"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sessionLogger    *log.Logger
)

// SetConfigPath sets the custom config path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	sessionLogger = l
}

// worldHost adapts the physics world to the rule engine's Host interface.
type worldHost struct {
	world  *physics.World
	player config.PlayerConfig
}

func (h *worldHost) SpawnMoving(x, y, width, height, vx float64) MovingBody {
	return h.world.SpawnMoving(x, y, width, height, vx)
}

func (h *worldHost) Despawn(b MovingBody) {
	if pb, ok := b.(*physics.Body); ok {
		h.world.Despawn(pb)
	}
}

func (h *worldHost) SpawnPlayer() RigidBody {
	return h.world.NewPlayer(h.player.X, h.player.Width, h.player.Height)
}

// popup is a rising "+N" label left by a collected pickup.
type popup struct {
	text  string
	x, y  float64 // world position where it appeared
	ageMs float64
}

const (
	popupLifeMs = 500
	popupRise   = 20
	flashMs     = 200
)

// Session runs one Game inside the arcade platform: it owns the physics
// world, turns input frames into game calls and reports collisions.
type Session struct {
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	world   *physics.World
	game    *Game
	paused  bool
	frame   int
	popups  []popup
	flash   float64
}

// New creates an unstarted session; Reset must be called before Step.
func New() *Session {
	return &Session{}
}

// ID returns the unique identifier for this game.
func (s *Session) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (s *Session) Title() string {
	return "Sprint Runner"
}

// Reset builds a fresh world and game for the given runtime.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime

	logger := sessionLogger
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("using default runner config", "error", err)
		cfg = config.DefaultRunnerConfig()
	}
	preset := difficultyPreset
	if runtime.Difficulty != "" {
		preset = config.ParsePreset(runtime.Difficulty)
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	s.ResetWithConfig(runtime, cfg, logger)
}

// ResetWithConfig is Reset with an explicit configuration, bypassing the
// config search path.
func (s *Session) ResetWithConfig(runtime core.RuntimeConfig, cfg config.RunnerConfig, logger *log.Logger) {
	s.runtime = runtime
	s.cfg = cfg
	s.world = physics.NewWorld(cfg.World.Gravity, cfg.World.GroundY())
	host := &worldHost{world: s.world, player: cfg.Player}

	rng := rand.New(rand.NewSource(runtime.Seed))
	s.game = NewGame(cfg, host, rng, WithLogger(logger))

	s.paused = false
	s.frame = 0
	s.popups = nil
	s.flash = 0
}

// Game exposes the rule engine, mainly for tests and tooling.
func (s *Session) Game() *Game {
	return s.game
}

// Step advances the session by one tick.
// Per frame: input, physics, collisions, then the game's own tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && s.game.Restart() {
		s.world.Clear()
		s.paused = false
		s.popups = nil
	}

	// A release only re-arms the jump, so it is honoured while paused too;
	// the key mapper reports it once.
	if in.Has(core.ActionJumpRelease) {
		s.game.ReleaseJump()
	}

	if in.Has(core.ActionPause) && s.game.State().IsRunning() {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionJump) {
		s.game.PressJump()
	}

	dt := s.runtime.FrameMillis()
	s.frame++

	switch s.game.State().Phase {
	case PhaseRunning:
		s.world.Step(dt)
		s.detectCollisions()
		s.game.Tick(dt)
	case PhaseIdle:
		s.world.Step(dt)
	}

	events := s.game.DrainEvents()
	s.applyEvents(events)
	s.agePopups(dt)

	return core.StepResult{State: s.State(), Events: events}
}

// detectCollisions reports overlaps to the game. Obstacles are checked first,
// so a frame touching both a hazard and a pickup ends the run uncounted.
func (s *Session) detectCollisions() {
	for _, o := range s.game.Obstacles() {
		if s.touchesPlayer(o.Body) {
			s.game.OnObstacleHit(o.Kind)
			return
		}
	}
	for _, p := range slices.Clone(s.game.Pickups()) {
		if s.touchesPlayer(p.Body) {
			s.game.OnPickupCollected(p)
		}
	}
}

// touchesPlayer reports whether a live world body overlaps the player.
func (s *Session) touchesPlayer(b MovingBody) bool {
	pb, ok := b.(*physics.Body)
	return ok && physics.Overlapping(s.world.Player(), pb)
}

func (s *Session) applyEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventCollected:
			b := s.world.Player().Bounds()
			s.popups = append(s.popups, popup{
				text: "+" + strconv.Itoa(e.Value),
				x:    b.Right(),
				y:    b.Y - 10,
			})
		case core.EventDayAdvanced:
			s.flash = flashMs
		}
	}
}

func (s *Session) agePopups(dt float64) {
	if s.flash > 0 {
		s.flash -= dt
	}
	s.popups = slices.DeleteFunc(s.popups, func(p popup) bool {
		return p.ageMs >= popupLifeMs
	})
	for i := range s.popups {
		s.popups[i].ageMs += dt
	}
}

// State returns the platform-visible state.
func (s *Session) State() core.GameState {
	if s.game == nil {
		return core.GameState{}
	}
	st := s.game.State()
	sum := s.game.Summary()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.IsGameOver(),
		Paused:   s.paused,
		Started:  st.HasStarted(),
		Day:      st.SprintDay,
		Shipped:  st.FeaturesShipped,
		Cause:    sum.Cause,
		Elapsed:  int64(s.game.ElapsedMs()),
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
