// Package physics simulates the tumbling body: gravity, spin, wall bounce
// and the click impulse. Coordinates are play-area units with y growing
// downward; the body has no knowledge of terminals or sound.
package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Params are the tunables of the simulation. Zero values are not usable;
// start from DefaultParams.
type Params struct {
	Width        float64 // Play-area width; the right wall
	Height       float64 // Play-area height; the floor threshold
	Size         float64 // Sprite side length; radius is Size/2
	Gravity      float64 // Added to direction.y every frame
	ClickImpulse float64 // Length of the impulse a hit adds to direction
	WallDamping  float64 // Factor applied to direction.x on a bounce
	SpinNudgeMin int     // Smallest random spin change on hit/bounce
	SpinNudgeMax int     // Largest random spin change on hit/bounce
	InitialSpin  float64 // rotationSpeed of a fresh body
}

// DefaultParams returns the classic tuning: 600x800 play area, 100 unit
// sprite, gravity 0.2, impulse 15, damping 0.75, nudges in [3,6], spin 5.
func DefaultParams() Params {
	return Params{
		Width:        600,
		Height:       800,
		Size:         100,
		Gravity:      0.2,
		ClickImpulse: 15,
		WallDamping:  0.75,
		SpinNudgeMin: 3,
		SpinNudgeMax: 6,
		InitialSpin:  5,
	}
}

// SpawnPoint is the canonical spawn position: horizontal center, one
// quarter of the height from the top.
func (p Params) SpawnPoint() r2.Point {
	return r2.Point{X: p.Width / 2, Y: p.Height / 4}
}

// Outcome is the result of one Update call.
type Outcome int

const (
	Alive   Outcome = iota // Moved freely
	HitWall                // Moved and bounced off the left or right wall
	Died                   // Past the floor; nothing moved
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Alive:
		return "Alive"
	case HitWall:
		return "HitWall"
	case Died:
		return "Died"
	default:
		return "Unknown"
	}
}

// zeroLength is the distance below which a click counts as dead center.
const zeroLength = 1e-9

// up is the impulse direction used for a dead-center click.
var up = r2.Point{X: 0, Y: -1}

// Body is the falling, tumbling object.
type Body struct {
	params Params
	rng    RNG

	position      r2.Point // Top-left of the rotated bounding box
	direction     r2.Point // Per-frame displacement
	angle         float64  // Degrees in [0, 360)
	rotationSpeed float64  // Degrees per frame, signed
	radius        float64
	alive         bool
}

// NewBody creates a live body whose bounding box starts at position.
func NewBody(params Params, rng RNG, position r2.Point) *Body {
	return &Body{
		params:        params,
		rng:           rng,
		position:      position,
		rotationSpeed: params.InitialSpin,
		radius:        params.Size / 2,
		alive:         true,
	}
}

// Spawn creates a body at the canonical spawn position.
func Spawn(params Params, rng RNG) *Body {
	return NewBody(params, rng, params.SpawnPoint())
}

// Click resolves a pointer press at p. It returns true on a hit, in which
// case the body receives an upward impulse and a spin nudge.
func (b *Body) Click(p r2.Point) bool {
	if !b.alive {
		return false
	}

	toCenter := b.Center().Sub(p)
	dist := toCenter.Norm()
	if dist < zeroLength {
		toCenter, dist = up, 1
	}
	if dist > b.radius {
		return false
	}

	n := toCenter.Normalize()
	// Always push upward, even when clicked from above.
	if n.Y > 0 {
		n.Y = -n.Y
	}

	nudge := float64(b.nudge())
	if n.X > 0 {
		b.rotationSpeed -= nudge
	} else {
		b.rotationSpeed += nudge
	}

	b.direction = b.direction.Add(n.Mul(b.params.ClickImpulse))
	return true
}

// Update advances the body by one frame.
func (b *Body) Update() Outcome {
	if !b.alive {
		return Died
	}
	if b.position.Y >= b.params.Height {
		b.alive = false
		return Died
	}

	// Rotate around the visual center; the bounding box grows or shrinks
	// with the angle but the center stays put.
	center := b.Center()
	b.angle = NormalizeAngle(b.angle + b.rotationSpeed)
	b.position = center.Sub(b.halfExtent())

	b.direction.Y += b.params.Gravity

	next := b.position.Add(b.direction)
	nextCenter := next.Add(b.halfExtent())
	offLeft := nextCenter.X-b.radius <= 0
	offRight := nextCenter.X+b.radius >= b.params.Width

	// The tentative position is committed even on a bounce: the body may
	// overlap a wall for a frame before the reversed velocity pulls it out.
	b.position = next

	if !offLeft && !offRight {
		return Alive
	}

	if offLeft {
		b.direction.X = math.Abs(b.direction.X)
	} else {
		b.direction.X = -math.Abs(b.direction.X)
	}
	b.direction.X *= b.params.WallDamping

	nudge := float64(b.nudge())
	if offLeft {
		b.rotationSpeed -= nudge
	} else {
		b.rotationSpeed += nudge
	}
	return HitWall
}

// nudge draws a random spin change.
func (b *Body) nudge() int {
	return b.rng.IntRange(b.params.SpinNudgeMin, b.params.SpinNudgeMax)
}

// extent is the side of the bounding box of the sprite rotated by angle.
func (b *Body) extent() float64 {
	rad := b.angle * math.Pi / 180
	return b.params.Size * (math.Abs(math.Cos(rad)) + math.Abs(math.Sin(rad)))
}

func (b *Body) halfExtent() r2.Point {
	h := b.extent() / 2
	return r2.Point{X: h, Y: h}
}

// Center returns the visual center of the body.
func (b *Body) Center() r2.Point {
	return b.position.Add(b.halfExtent())
}

// Bounds returns the rotated bounding box.
func (b *Body) Bounds() r2.Rect {
	e := b.extent()
	return r2.RectFromCenterSize(b.Center(), r2.Point{X: e, Y: e})
}

// Position returns the top-left of the bounding box.
func (b *Body) Position() r2.Point { return b.position }

// Direction returns the per-frame displacement.
func (b *Body) Direction() r2.Point { return b.direction }

// Angle returns the rotation in degrees, always in [0, 360).
func (b *Body) Angle() float64 { return b.angle }

// RotationSpeed returns the signed spin in degrees per frame.
func (b *Body) RotationSpeed() float64 { return b.rotationSpeed }

// Radius returns the hit radius.
func (b *Body) Radius() float64 { return b.radius }

// Alive reports whether the body is still in play.
func (b *Body) Alive() bool { return b.alive }

// SetGravity changes the gravity applied from the next Update on.
func (b *Body) SetGravity(g float64) { b.params.Gravity = g }

// NormalizeAngle folds degrees into [0, 360), including negative input.
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds to 360 in float64.
	if a >= 360 {
		a = 0
	}
	return a
}
