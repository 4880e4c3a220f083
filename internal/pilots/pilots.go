// Package pilots implements the built-in autopilots used by headless runs.
// Each pilot registers itself with the registry on import.
package pilots

import (
	"github.com/vovakirdan/tuber-tapper/internal/core"
	"github.com/vovakirdan/tuber-tapper/internal/game"
	"github.com/vovakirdan/tuber-tapper/internal/physics"
	"github.com/vovakirdan/tuber-tapper/internal/registry"
)

func init() {
	registry.Register("idle", func(physics.RNG) registry.Pilot { return Idle{} })
	registry.Register("center", func(physics.RNG) registry.Pilot { return Center{} })
	registry.Register("jitter", func(rng physics.RNG) registry.Pilot { return &Jitter{rng: rng} })
}

// menuClick starts the game from the title screen and retries after a
// game over. It clicks the top-left corner, which the body never covers
// there.
func menuClick(v game.View) (core.Event, bool) {
	if v.State == game.StatePlay {
		return core.NoEvent, false
	}
	return core.ClickAt(0, 0), true
}

// falling reports whether the body is dropping through the lower half.
func falling(v game.View) bool {
	return v.Direction.Y > 0 && v.Center.Y > v.Height/2
}

// Idle starts every run and then lets the body fall.
type Idle struct{}

func (Idle) ID() string          { return "idle" }
func (Idle) Description() string { return "Starts the game and never touches the potato" }

func (Idle) Next(v game.View) core.Event {
	ev, _ := menuClick(v)
	return ev
}

// Center clicks dead center whenever the body falls into the lower half.
// A dead-center hit pushes straight up, so the body never drifts.
type Center struct{}

func (Center) ID() string          { return "center" }
func (Center) Description() string { return "Taps dead center whenever the potato drops below halfway" }

func (Center) Next(v game.View) core.Event {
	if ev, ok := menuClick(v); ok {
		return ev
	}
	if falling(v) {
		return core.ClickAt(v.Center.X, v.Center.Y)
	}
	return core.NoEvent
}

// jitterSpread is how far from the center Jitter aims, as a fraction of
// the radius on each axis. Its diagonal stays inside the hit disc.
const jitterSpread = 0.7

// Jitter clicks a random point of the body while it falls, so spin and
// sideways drift build up and the walls come into play.
type Jitter struct {
	rng physics.RNG
}

func (*Jitter) ID() string          { return "jitter" }
func (*Jitter) Description() string { return "Taps a random spot on the potato when it drops below halfway" }

func (j *Jitter) Next(v game.View) core.Event {
	if ev, ok := menuClick(v); ok {
		return ev
	}
	if !falling(v) {
		return core.NoEvent
	}
	reach := int(v.Radius * jitterSpread)
	dx := j.rng.IntRange(-reach, reach)
	dy := j.rng.IntRange(-reach, reach)
	return core.ClickAt(v.Center.X+float64(dx), v.Center.Y+float64(dy))
}
