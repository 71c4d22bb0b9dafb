package runner

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/krackeddevs/sprint-runner/internal/config"
	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/registry"
)

func newTestSession(seed int64) *Session {
	rt := core.DefaultConfig()
	rt.Seed = seed
	s := New()
	s.ResetWithConfig(rt, config.DefaultRunnerConfig(), log.New(io.Discard))
	return s
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// runUntilGameOver steps without input until the run ends or the frame budget
// is exhausted.
func runUntilGameOver(s *Session, maxFrames int) core.StepResult {
	var res core.StepResult
	for i := 0; i < maxFrames; i++ {
		res = s.Step(frame())
		if res.State.GameOver {
			break
		}
	}
	return res
}

func TestSessionRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("sprint runner should register itself")
	}
	if registry.Title(GameID) != "Sprint Runner" {
		t.Errorf("Title = %q", registry.Title(GameID))
	}
}

func TestSessionIdleUntilJump(t *testing.T) {
	s := newTestSession(1)

	for i := 0; i < 120; i++ {
		res := s.Step(frame())
		if res.State.Started || res.State.Score != 0 {
			t.Fatal("session should stay idle without input")
		}
	}

	res := s.Step(frame(core.ActionJump))
	if !res.State.Started {
		t.Fatal("jump should start the run")
	}
	if !hasEvent(res.Events, core.EventJumped) {
		t.Error("start jump should be reported")
	}
	if s.world.Player().Bounds().Bottom() >= s.world.GroundY() {
		t.Error("player should be airborne after the first frame")
	}
}

func TestSessionJumpArc(t *testing.T) {
	s := newTestSession(1)
	s.Step(frame(core.ActionJump))
	s.Step(frame(core.ActionJumpRelease))

	airborne := 0
	for i := 0; i < 120; i++ {
		s.Step(frame())
		if s.world.Player().OnGround() {
			break
		}
		airborne++
	}
	if airborne == 0 || airborne >= 120 {
		t.Fatalf("player airborne for %d frames, expected a finite arc", airborne)
	}
	if s.Game().Player().State().IsJumping {
		t.Error("landing should clear the jump")
	}

	// Released and grounded: the next press jumps again
	res := s.Step(frame(core.ActionJump))
	if !hasEvent(res.Events, core.EventJumped) {
		t.Error("second jump after landing should succeed")
	}
}

func TestSessionCollisionEndsRun(t *testing.T) {
	s := newTestSession(2)
	s.Step(frame(core.ActionJump))
	s.Step(frame(core.ActionJumpRelease))

	// Standing still, the first obstacle reaches the player within a few seconds
	res := runUntilGameOver(s, 60*10)
	if !res.State.GameOver {
		t.Fatal("expected the run to end on an obstacle")
	}
	if res.State.Cause == "" {
		t.Error("game over should name its cause")
	}
	if !hasEvent(res.Events, core.EventGameOver) {
		t.Error("game over frame should carry EventGameOver")
	}

	// Frozen: further frames change nothing
	frozen := res.State
	for i := 0; i < 30; i++ {
		res = s.Step(frame(core.ActionJump))
	}
	if res.State != frozen {
		t.Errorf("state changed after game over: %+v -> %+v", frozen, res.State)
	}

	res = s.Step(frame(core.ActionRestart))
	if res.State.Started || res.State.GameOver || res.State.Score != 0 || res.State.Day != 1 {
		t.Errorf("restart should return to the start screen: %+v", res.State)
	}
	if len(s.game.Obstacles()) != 0 || len(s.game.Pickups()) != 0 {
		t.Error("restart should clear the field")
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(1)

	// Pause is ignored before the run starts
	if res := s.Step(frame(core.ActionPause)); res.State.Paused {
		t.Error("pause should be ignored while idle")
	}

	s.Step(frame(core.ActionJump))
	res := s.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause should toggle on while running")
	}
	elapsed := res.State.Elapsed

	for i := 0; i < 60; i++ {
		res = s.Step(frame())
	}
	if res.State.Elapsed != elapsed {
		t.Error("paused session must not advance")
	}

	res = s.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestSessionReleaseWhilePaused(t *testing.T) {
	s := newTestSession(1)

	s.Step(frame(core.ActionJump))
	s.Step(frame(core.ActionPause))
	// The key mapper times the key out while the game is paused
	s.Step(frame(core.ActionJumpRelease))
	if res := s.Step(frame(core.ActionPause)); res.State.Paused {
		t.Fatal("second pause should resume")
	}

	landed := false
	for i := 0; i < 120; i++ {
		res := s.Step(frame())
		if res.State.GameOver {
			t.Fatal("run ended before the player landed")
		}
		if i > 0 && s.world.Player().OnGround() {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("player should land after the jump")
	}
	if s.game.Player().State().MustReleaseBeforeNextJump {
		t.Fatal("release delivered while paused should re-arm the jump")
	}

	res := s.Step(frame(core.ActionJump))
	if !hasEvent(res.Events, core.EventJumped) {
		t.Error("first press after resuming should jump")
	}
}

func TestSessionIgnoresDespawnedBodies(t *testing.T) {
	s := newTestSession(1)
	p := s.world.Player().Bounds()

	live := s.world.SpawnMoving(p.X, p.Y, p.W, p.H, 0)
	gone := s.world.SpawnMoving(p.X, p.Y, p.W, p.H, 0)
	s.world.Despawn(gone)

	if !s.touchesPlayer(live) {
		t.Error("a live body on the player should collide")
	}
	if s.touchesPlayer(gone) {
		t.Error("a despawned body must not collide")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() core.GameState {
		s := newTestSession(12345)
		var st core.GameState
		for i := 0; i < 600; i++ {
			in := frame()
			switch i % 40 {
			case 0:
				in.Set(core.ActionJump)
			case 12:
				in.Set(core.ActionJumpRelease)
			}
			st = s.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and input gave different results: %+v vs %+v", a, b)
	}
}

func TestSessionRender(t *testing.T) {
	s := newTestSession(2)
	scr := core.NewScreen(80, 24)

	s.Render(scr)
	out := scr.String()
	for _, want := range []string{"DAY 1 OF SPRINT", "SCORE: 0", "SHIPPED: 0", "PRESS SPACE TO START"} {
		if !strings.Contains(out, want) {
			t.Errorf("idle screen missing %q", want)
		}
	}
	if !strings.ContainsRune(out, PlayerChar) || !strings.ContainsRune(out, GroundChar) {
		t.Error("idle screen should show the player and the ground")
	}

	s.Step(frame(core.ActionJump))
	s.Step(frame(core.ActionJumpRelease))
	runUntilGameOver(s, 60*10)

	s.Render(scr)
	out = scr.String()
	for _, want := range []string{"BURNOUT!", "Hit by: ", "You survived ", "FINAL SCORE:", "Press R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}
