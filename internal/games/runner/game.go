package runner

import (
	"io"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/krackeddevs/sprint-runner/internal/config"
	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/sched"
)

// Host is everything the rule engine needs from the world it runs in.
type Host interface {
	EntitySpawner

	// SpawnPlayer places a fresh player body at its start position.
	SpawnPlayer() RigidBody
}

// Summary is what the game over screen and the run history show.
type Summary struct {
	DaysSurvived    int
	FeaturesShipped int
	FinalScore      int
	Cause           string
}

// Game is the runner's rule engine: it owns the GameState, the three
// repeating timers, the live entities and the Idle/Running/GameOver cycle.
// Physics, collision detection and drawing belong to the host.
type Game struct {
	cfg     config.RunnerConfig
	host    Host
	rng     *rand.Rand
	sched   *sched.Scheduler
	logger  *log.Logger
	state   GameState
	player  *PlayerController
	prompt  bool
	elapsed float64

	obstacles []*Obstacle
	pickups   []*Pickup

	cause    ObstacleKind
	hasCause bool

	events []core.Event
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGame creates a game in the Idle phase with its player already placed.
func NewGame(cfg config.RunnerConfig, host Host, rng *rand.Rand, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		host:   host,
		rng:    rng,
		sched:  sched.New(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.resetScene()
	return g
}

// resetScene puts the game in its scene-start configuration.
func (g *Game) resetScene() {
	g.state = NewGameState(g.cfg.Speed)
	g.player = NewPlayerController(g.host.SpawnPlayer(), g.cfg.Player)
	g.prompt = true
	g.elapsed = 0
	g.hasCause = false
	g.cause = 0
}

// State returns the current game state value.
func (g *Game) State() GameState {
	return g.state
}

// Player returns the player controller.
func (g *Game) Player() *PlayerController {
	return g.player
}

// Obstacles returns the live obstacles. The slice must not be modified.
func (g *Game) Obstacles() []*Obstacle {
	return g.obstacles
}

// Pickups returns the live pickups. The slice must not be modified.
func (g *Game) Pickups() []*Pickup {
	return g.pickups
}

// ShowStartPrompt reports whether the "press to start" prompt is visible.
func (g *Game) ShowStartPrompt() bool {
	return g.prompt
}

// ElapsedMs returns the time spent Running in this run.
func (g *Game) ElapsedMs() float64 {
	return g.elapsed
}

// Cause returns the obstacle that ended the run, if any.
func (g *Game) Cause() (ObstacleKind, bool) {
	return g.cause, g.hasCause
}

// Summary returns the stats for the game over screen.
func (g *Game) Summary() Summary {
	s := Summary{
		DaysSurvived:    g.state.SprintDay,
		FeaturesShipped: g.state.FeaturesShipped,
		FinalScore:      g.state.Score,
	}
	if g.hasCause {
		s.Cause = g.cause.String()
	}
	return s
}

// DrainEvents returns and clears the events raised since the last call.
func (g *Game) DrainEvents() []core.Event {
	ev := g.events
	g.events = nil
	return ev
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// PressJump handles the jump input. The first press starts the run. It
// returns whether the player actually jumped.
func (g *Game) PressJump() bool {
	if g.state.IsGameOver() {
		return false
	}
	if !g.state.HasStarted() {
		g.start()
	}

	jumped := g.player.Jump()
	if jumped {
		g.emit(core.Event{Kind: core.EventJumped})
	}
	return jumped
}

// ReleaseJump handles the jump key being let go.
func (g *Game) ReleaseJump() {
	if !g.state.IsRunning() {
		return
	}
	g.player.ReleaseJump()
}

// start moves Idle to Running and arms the spawn and day timers.
func (g *Game) start() bool {
	next, ok := g.state.Start()
	if !ok {
		return false
	}
	g.state = next
	g.prompt = false

	g.sched.Every(g.cfg.Spawn.ObstacleMs, func() { g.SpawnObstacle() })
	g.sched.Every(g.cfg.Spawn.PickupMs, func() { g.SpawnPickup() })
	g.sched.Every(g.cfg.Speed.DayMs, func() { g.AdvanceDay() })

	g.logger.Debug("run started", "speed", g.state.GameSpeed)
	return true
}

// Tick advances the run by deltaMs. The host must have stepped physics and
// reported collisions for this frame before calling it.
func (g *Game) Tick(deltaMs float64) {
	if !g.state.IsRunning() {
		return
	}

	g.player.UpdateJump(deltaMs)

	g.sched.Advance(deltaMs)
	if !g.state.IsRunning() {
		return
	}

	g.state, _ = g.state.Travel(deltaMs, g.cfg.Scoring)
	g.elapsed += deltaMs

	g.reap()

	// Entities already on screen follow a speed change mid-flight
	for _, o := range g.obstacles {
		o.Body.SetVelocityX(-g.state.GameSpeed)
	}
	for _, p := range g.pickups {
		p.Body.SetVelocityX(-g.state.GameSpeed)
		p.AgeMs += deltaMs
	}
}

// reap despawns entities whose centre scrolled past the left threshold.
func (g *Game) reap() {
	limit := g.cfg.World.DespawnX

	g.obstacles = slices.DeleteFunc(g.obstacles, func(o *Obstacle) bool {
		if o.Body.Bounds().CenterX() < limit {
			g.host.Despawn(o.Body)
			return true
		}
		return false
	})
	g.pickups = slices.DeleteFunc(g.pickups, func(p *Pickup) bool {
		if p.Body.Bounds().CenterX() < limit {
			g.host.Despawn(p.Body)
			return true
		}
		return false
	})
}

// SpawnObstacle places a random hazard at the right edge on the ground.
// Past the chain day it may queue a second obstacle shortly after; the
// queued spawn does nothing if the run has ended by then.
func (g *Game) SpawnObstacle() bool {
	if !g.state.IsRunning() {
		return false
	}

	sc := g.cfg.Spawn
	kind := ObstacleKinds[g.rng.Intn(len(ObstacleKinds))]
	x := g.cfg.World.Width + g.cfg.World.SpawnOffset
	y := g.cfg.World.GroundY() - sc.ObstacleHeight

	body := g.host.SpawnMoving(x, y, sc.ObstacleWidth, sc.ObstacleHeight, -g.state.GameSpeed)
	g.obstacles = append(g.obstacles, &Obstacle{Kind: kind, Body: body})

	if g.state.SprintDay > sc.ChainAfterDay && g.rng.Float64() < sc.ChainChance {
		g.sched.After(sc.ChainDelayMs, func() {
			if g.state.IsRunning() {
				g.SpawnObstacle()
			}
		})
	}
	return true
}

// SpawnPickup places a random collectible at a random height above the ground.
func (g *Game) SpawnPickup() bool {
	if !g.state.IsRunning() {
		return false
	}

	sc := g.cfg.Spawn
	kind := PickupKinds[g.rng.Intn(len(PickupKinds))]
	height := sc.PickupMinHeight
	if sc.PickupMaxHeight > sc.PickupMinHeight {
		height += g.rng.Intn(sc.PickupMaxHeight - sc.PickupMinHeight + 1)
	}

	centerY := g.cfg.World.GroundY() - float64(height)
	x := g.cfg.World.Width + g.cfg.World.SpawnOffset
	body := g.host.SpawnMoving(x, centerY-sc.PickupSize/2, sc.PickupSize, sc.PickupSize, -g.state.GameSpeed)

	g.pickups = append(g.pickups, &Pickup{
		Kind:  kind,
		Value: g.cfg.Scoring.ValueFor(kind.String()),
		Body:  body,
	})
	return true
}

// AdvanceDay moves to the next sprint day and raises the speed.
func (g *Game) AdvanceDay() bool {
	next, ok := g.state.AdvanceDay(g.cfg.Speed)
	if !ok {
		return false
	}
	g.state = next
	g.emit(core.Event{Kind: core.EventDayAdvanced, Value: g.state.SprintDay})
	g.logger.Debug("day advanced", "day", g.state.SprintDay, "speed", g.state.GameSpeed)
	return true
}

// OnObstacleHit ends the run. Timers are cancelled before anything else so no
// spawn or day callback can run afterwards; the field freezes in place and
// the player keeps its pose.
func (g *Game) OnObstacleHit(kind ObstacleKind) bool {
	next, ok := g.state.End()
	if !ok {
		return false
	}
	g.state = next
	g.sched.CancelAll()

	for _, o := range g.obstacles {
		o.Body.Stop()
	}
	for _, p := range g.pickups {
		p.Body.Stop()
	}

	g.cause = kind
	g.hasCause = true
	g.emit(core.Event{Kind: core.EventGameOver, Label: kind.String(), Value: g.state.Score})
	g.logger.Info("burnout",
		"cause", kind.String(),
		"day", g.state.SprintDay,
		"shipped", g.state.FeaturesShipped,
		"score", g.state.Score,
	)
	return true
}

// OnPickupCollected counts a feature and removes the pickup at once, so the
// same pickup can never be counted twice.
func (g *Game) OnPickupCollected(p *Pickup) bool {
	if !g.state.IsRunning() {
		return false
	}
	idx := slices.Index(g.pickups, p)
	if idx < 0 {
		return false
	}

	g.state, _ = g.state.ShipFeature(g.cfg.Scoring)
	g.pickups = slices.Delete(g.pickups, idx, idx+1)
	g.host.Despawn(p.Body)

	g.emit(core.Event{Kind: core.EventCollected, Value: p.Value, Label: p.Kind.String()})
	return true
}

// Restart rebuilds the scene after a game over: every entity is destroyed,
// the state and player start fresh and the start prompt returns.
func (g *Game) Restart() bool {
	if !g.state.IsGameOver() {
		return false
	}

	for _, o := range g.obstacles {
		g.host.Despawn(o.Body)
	}
	for _, p := range g.pickups {
		g.host.Despawn(p.Body)
	}
	g.obstacles = nil
	g.pickups = nil
	g.sched.Reset()
	g.events = nil

	g.resetScene()
	g.emit(core.Event{Kind: core.EventRestarted})
	g.logger.Debug("scene restarted")
	return true
}
