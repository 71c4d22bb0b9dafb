package runner

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/krackeddevs/sprint-runner/internal/config"
	"github.com/krackeddevs/sprint-runner/internal/core"
)

// fakeBody is a body whose position and ground contact tests set directly.
type fakeBody struct {
	box      core.Box
	vx, vy   float64
	grounded bool
	removed  bool
}

func (b *fakeBody) Bounds() core.Box       { return b.box }
func (b *fakeBody) VelocityX() float64     { return b.vx }
func (b *fakeBody) SetVelocityX(v float64) { b.vx = v }
func (b *fakeBody) VelocityY() float64     { return b.vy }
func (b *fakeBody) SetVelocityY(v float64) { b.vy = v }
func (b *fakeBody) OnGround() bool         { return b.grounded }
func (b *fakeBody) Stop()                  { b.vx, b.vy = 0, 0 }

// fakeHost records spawns without simulating anything.
type fakeHost struct {
	player    *fakeBody
	spawned   []*fakeBody
	despawned int
}

func (h *fakeHost) SpawnMoving(x, y, width, height, vx float64) MovingBody {
	b := &fakeBody{box: core.NewBox(x, y, width, height), vx: vx}
	h.spawned = append(h.spawned, b)
	return b
}

func (h *fakeHost) Despawn(b MovingBody) {
	fb := b.(*fakeBody)
	if !fb.removed {
		fb.removed = true
		h.despawned++
	}
}

func (h *fakeHost) SpawnPlayer() RigidBody {
	h.player = &fakeBody{grounded: true}
	return h.player
}

func newTestGame(seed int64) (*Game, *fakeHost) {
	host := &fakeHost{}
	g := NewGame(config.DefaultRunnerConfig(), host, rand.New(rand.NewSource(seed)),
		WithLogger(log.New(io.Discard)))
	return g, host
}

// startedGame returns a running game whose start jump has been released.
func startedGame(seed int64) (*Game, *fakeHost) {
	g, host := newTestGame(seed)
	g.PressJump()
	g.ReleaseJump()
	g.DrainEvents()
	return g, host
}
