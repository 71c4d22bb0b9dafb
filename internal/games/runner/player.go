package runner

import "github.com/krackeddevs/sprint-runner/internal/config"

// RigidBody is the part of a host physics body the player controller needs.
type RigidBody interface {
	VelocityY() float64
	SetVelocityY(vy float64)
	OnGround() bool
}

// PlayerState is the jump/boost bookkeeping for the runner.
type PlayerState struct {
	IsJumping      bool
	IsHoldingJump  bool
	CanBoost       bool
	BoostElapsedMs float64

	// MustReleaseBeforeNextJump is set by every successful jump and cleared
	// only by ReleaseJump, so a held key cannot auto-repeat jumps.
	MustReleaseBeforeNextJump bool
}

// PlayerController implements a launch impulse plus hold-to-boost on top of
// any host body.
type PlayerController struct {
	body  RigidBody
	cfg   config.PlayerConfig
	state PlayerState
}

// NewPlayerController binds a controller to a body.
func NewPlayerController(body RigidBody, cfg config.PlayerConfig) *PlayerController {
	return &PlayerController{body: body, cfg: cfg}
}

// State returns a copy of the jump state.
func (p *PlayerController) State() PlayerState {
	return p.state
}

// VelocityY returns the body's vertical velocity.
func (p *PlayerController) VelocityY() float64 {
	return p.body.VelocityY()
}

// Jump launches the player. It returns false without touching anything when
// the jump key has not been released since the last jump or the player is
// airborne; callers use the result to decide whether to play jump effects.
func (p *PlayerController) Jump() bool {
	if p.state.MustReleaseBeforeNextJump {
		return false
	}
	if !p.body.OnGround() {
		return false
	}

	p.body.SetVelocityY(p.cfg.JumpForce)
	p.state.IsJumping = true
	p.state.IsHoldingJump = true
	p.state.CanBoost = true
	p.state.BoostElapsedMs = 0
	p.state.MustReleaseBeforeNextJump = true
	return true
}

// ReleaseJump ends the boost window and re-arms the next jump.
func (p *PlayerController) ReleaseJump() {
	p.state.IsHoldingJump = false
	p.state.CanBoost = false
	p.state.MustReleaseBeforeNextJump = false
}

// UpdateJump runs once per tick. While the key is held inside the boost
// window it adds boostForce*(1 - 0.5*elapsed/maxBoost) to the vertical
// velocity; at the cutoff boosting stops even if the key stays down.
// Landing clears the jump regardless of the boost timer.
func (p *PlayerController) UpdateJump(deltaMs float64) {
	if p.state.IsHoldingJump && p.state.CanBoost && p.state.IsJumping {
		p.state.BoostElapsedMs += deltaMs

		if p.state.BoostElapsedMs < p.cfg.MaxBoostMs {
			strength := 1 - 0.5*p.state.BoostElapsedMs/p.cfg.MaxBoostMs
			p.body.SetVelocityY(p.body.VelocityY() + p.cfg.BoostForce*strength)
		} else {
			p.state.CanBoost = false
		}
	}

	if p.landed() {
		p.state.IsJumping = false
		p.state.CanBoost = false
		p.state.BoostElapsedMs = 0
	}
}

// landed reports ground contact. A body that still carries the upward launch
// velocity has not been stepped off the ground yet and does not count.
func (p *PlayerController) landed() bool {
	return p.body.OnGround() && p.body.VelocityY() >= 0
}
