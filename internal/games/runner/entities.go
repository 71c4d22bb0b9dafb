package runner

import (
	"math"

	"github.com/krackeddevs/sprint-runner/internal/core"
)

// ObstacleKind names a hazard. Touching any of them ends the run.
type ObstacleKind int

const (
	LegacyBug ObstacleKind = iota
	MergeConflict
	ProdIncident
	TechDebt
)

// ObstacleKinds lists every obstacle kind in spawn-table order.
var ObstacleKinds = []ObstacleKind{LegacyBug, MergeConflict, ProdIncident, TechDebt}

// String returns the display name shown on the game over screen.
func (k ObstacleKind) String() string {
	switch k {
	case LegacyBug:
		return "Legacy Bug"
	case MergeConflict:
		return "Merge Conflict"
	case ProdIncident:
		return "Prod Incident"
	case TechDebt:
		return "Tech Debt"
	default:
		return "Unknown"
	}
}

// PickupKind names a collectible.
type PickupKind int

const (
	PRMerged PickupKind = iota
	FeatureShipped
	OfferLetter
	CodeReview
)

// PickupKinds lists every pickup kind in spawn-table order.
var PickupKinds = []PickupKind{PRMerged, FeatureShipped, OfferLetter, CodeReview}

// String returns the display name; it is also the key for popup values in config.
func (k PickupKind) String() string {
	switch k {
	case PRMerged:
		return "PR Merged"
	case FeatureShipped:
		return "Feature Shipped"
	case OfferLetter:
		return "Offer Letter"
	case CodeReview:
		return "Code Review"
	default:
		return "Unknown"
	}
}

// MovingBody is a host body that scrolls horizontally without gravity.
type MovingBody interface {
	Bounds() core.Box
	VelocityX() float64
	SetVelocityX(vx float64)
	Stop()
}

// EntitySpawner creates and destroys moving bodies in the host world.
type EntitySpawner interface {
	SpawnMoving(x, y, width, height, vx float64) MovingBody
	Despawn(b MovingBody)
}

// Obstacle is a live hazard on the field.
type Obstacle struct {
	Kind ObstacleKind
	Body MovingBody
}

// Pickup is a live collectible on the field.
type Pickup struct {
	Kind  PickupKind
	Value int // Popup value only; score counts features, not values
	Body  MovingBody
	AgeMs float64
}

// FloatOffset returns the cosmetic vertical bob for rendering: a sine-eased
// yoyo between 0 and -amplitude. It never feeds back into collisions.
func (p *Pickup) FloatOffset(amplitude, halfPeriodMs float64) float64 {
	if halfPeriodMs <= 0 {
		return 0
	}
	phase := math.Mod(p.AgeMs, 2*halfPeriodMs) / halfPeriodMs
	if phase > 1 {
		phase = 2 - phase
	}
	eased := (1 - math.Cos(math.Pi*phase)) / 2
	return -amplitude * eased
}
