// Package physics is a minimal arcade physics host: rectangular bodies with
// velocity, optional gravity, ground contact and overlap tests. It plays the
// part a 2D engine would in a browser build of the runner.
package physics

import (
	"github.com/krackeddevs/sprint-runner/internal/core"
)

// Body is a rectangular physics body. Y grows downward.
type Body struct {
	box      core.Box
	velX     float64
	velY     float64
	gravity  bool
	onGround bool
	removed  bool
}

// Bounds returns the body's current bounding box.
func (b *Body) Bounds() core.Box {
	return b.box
}

// VelocityX returns the horizontal velocity in units per second.
func (b *Body) VelocityX() float64 {
	return b.velX
}

// SetVelocityX sets the horizontal velocity in units per second.
func (b *Body) SetVelocityX(vx float64) {
	b.velX = vx
}

// VelocityY returns the vertical velocity; negative is upward.
func (b *Body) VelocityY() float64 {
	return b.velY
}

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(vy float64) {
	b.velY = vy
}

// Stop zeroes both velocity components.
func (b *Body) Stop() {
	b.velX = 0
	b.velY = 0
}

// OnGround reports whether the body rested on the ground after the last step.
func (b *Body) OnGround() bool {
	return b.onGround
}

// World owns every live body and advances them together.
type World struct {
	gravity float64
	groundY float64
	player  *Body
	bodies  []*Body
}

// NewWorld creates a world with the given gravity (units/s²) and ground line.
func NewWorld(gravity, groundY float64) *World {
	return &World{
		gravity: gravity,
		groundY: groundY,
	}
}

// GroundY returns the y-coordinate of the ground line.
func (w *World) GroundY() float64 {
	return w.groundY
}

// NewPlayer creates the gravity-affected player body standing on the ground at x.
func (w *World) NewPlayer(x, width, height float64) *Body {
	w.player = &Body{
		box:      core.NewBox(x, w.groundY-height, width, height),
		gravity:  true,
		onGround: true,
	}
	return w.player
}

// Player returns the player body, or nil before NewPlayer.
func (w *World) Player() *Body {
	return w.player
}

// SpawnMoving creates a gravity-exempt body moving horizontally at vx.
func (w *World) SpawnMoving(x, y, width, height, vx float64) *Body {
	b := &Body{
		box:  core.NewBox(x, y, width, height),
		velX: vx,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Despawn removes a body from the world. Removing twice is a no-op.
func (w *World) Despawn(b *Body) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Clear removes every moving body. The player is kept.
func (w *World) Clear() {
	for _, b := range w.bodies {
		b.removed = true
	}
	w.bodies = w.bodies[:0]
}

// Step integrates all bodies over deltaMs. Gravity bodies are clamped onto the
// ground and flagged as grounded when they reach it.
func (w *World) Step(deltaMs float64) {
	dt := deltaMs / 1000

	if p := w.player; p != nil {
		w.integrate(p, dt)
	}
	for _, b := range w.bodies {
		w.integrate(b, dt)
	}
}

func (w *World) integrate(b *Body, dt float64) {
	if b.gravity {
		b.velY += w.gravity * dt
	}
	b.box = b.box.Translate(b.velX*dt, b.velY*dt)

	if !b.gravity {
		return
	}
	if b.box.Bottom() >= w.groundY && b.velY >= 0 {
		b.box.Y = w.groundY - b.box.H
		b.velY = 0
		b.onGround = true
	} else {
		b.onGround = false
	}
}

// Overlapping reports whether two bodies overlap. Removed bodies never overlap.
func Overlapping(a, b *Body) bool {
	if a == nil || b == nil || a.removed || b.removed {
		return false
	}
	return a.box.Intersects(b.box)
}
