// Package game holds the session state machine: title screen, play and
// game over. A Session is the only writer of the body, the score and the
// state; everything outside sees it through Step results and View.
package game

import (
	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tuber-tapper/internal/audio"
	"github.com/vovakirdan/tuber-tapper/internal/core"
	"github.com/vovakirdan/tuber-tapper/internal/physics"
)

// State is the session's phase.
type State int

const (
	StateStart State = iota // Title screen, waiting for the first click
	StatePlay               // Body in flight
	StateDead               // Body fell off; final score shown
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePlay:
		return "PLAY"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Difficulty supplies the gravity for the current point of a run.
// config.DifficultyManager implements it.
type Difficulty interface {
	Gravity(base float64, score int, ticks int) float64
}

// Stats are counters for the current run.
type Stats struct {
	Hits    int // Clicks that landed
	Bounces int // Wall bounces
	Frames  int // Physics updates while in play
}

// Frame is the result of one Step.
type Frame struct {
	State   State           // State after the step
	Score   int             // Score after the step
	Hit     bool            // A click landed this step
	Outcome physics.Outcome // Physics result; only meaningful when Played is set
	Played  bool            // A physics update ran this step
	Ended   bool            // The run finished this step
	Sounds  []audio.Sound   // Cues requested this step
}

// Options configure a Session.
type Options struct {
	Params     physics.Params
	RNG        physics.RNG // Defaults to physics.NewRand(0)
	TickRate   int         // Ticks per second; drives the title animation clock
	Difficulty Difficulty  // Optional gravity ramp
}

// Session is one player's game.
type Session struct {
	params     physics.Params
	rng        physics.RNG
	tickRate   int
	difficulty Difficulty

	state               State
	score               int
	terminalSoundPlayed bool
	body                *physics.Body
	stats               Stats
	ticks               int
}

// NewSession creates a session on the title screen with a body at the
// spawn point.
func NewSession(opts Options) *Session {
	if opts.RNG == nil {
		opts.RNG = physics.NewRand(0)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	s := &Session{
		params:     opts.Params,
		rng:        opts.RNG,
		tickRate:   opts.TickRate,
		difficulty: opts.Difficulty,
	}
	s.body = physics.Spawn(s.params, s.rng)
	return s
}

// Step advances the session by one tick. At most one event is consumed;
// quit events are ignored here and handled by the frame driver.
func (s *Session) Step(ev core.Event) Frame {
	s.ticks++
	f := Frame{}

	switch s.state {
	case StateStart:
		if ev.IsClick() {
			s.state = StatePlay
		}

	case StatePlay:
		if ev.IsClick() && s.body.Click(ev.Pos) {
			s.score++
			s.stats.Hits++
			f.Hit = true
			f.Sounds = append(f.Sounds, physics.Choose(s.rng, audio.PopSounds))
		}

		if s.difficulty != nil {
			s.body.SetGravity(s.difficulty.Gravity(s.params.Gravity, s.score, s.stats.Frames))
		}

		f.Played = true
		f.Outcome = s.body.Update()
		switch f.Outcome {
		case physics.HitWall:
			s.stats.Bounces++
			f.Sounds = append(f.Sounds, physics.Choose(s.rng, audio.BumpSounds))
		case physics.Died:
			s.state = StateDead
			f.Ended = true
		}
		if f.Outcome != physics.Died {
			s.stats.Frames++
		}

	case StateDead:
		if !s.terminalSoundPlayed {
			f.Sounds = append(f.Sounds, audio.Beep)
			s.terminalSoundPlayed = true
		}
		if ev.IsClick() {
			s.restart()
		}
	}

	f.State = s.state
	f.Score = s.score
	return f
}

// restart begins a new run straight into play.
func (s *Session) restart() {
	s.state = StatePlay
	s.score = 0
	s.stats = Stats{}
	s.terminalSoundPlayed = false
	s.body = physics.Spawn(s.params, s.rng)
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Score returns the current run's score.
func (s *Session) Score() int { return s.score }

// Stats returns the current run's counters.
func (s *Session) Stats() Stats { return s.stats }

// TerminalSoundPlayed reports whether the death cue was requested for the
// current game over.
func (s *Session) TerminalSoundPlayed() bool { return s.terminalSoundPlayed }

// Body returns the simulated body. Callers must not mutate it.
func (s *Session) Body() *physics.Body { return s.body }

// Params returns the simulation parameters.
func (s *Session) Params() physics.Params { return s.params }

// Ticks returns the number of steps taken since the session was created.
func (s *Session) Ticks() int { return s.ticks }

// ElapsedMillis converts the tick counter to milliseconds of game time.
func (s *Session) ElapsedMillis() float64 {
	return float64(s.ticks) * 1000 / float64(s.tickRate)
}

// View is a read-only snapshot for input sources.
type View struct {
	State     State
	Score     int
	Ticks     int
	Center    r2.Point
	Direction r2.Point
	Radius    float64
	Width     float64
	Height    float64
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	return View{
		State:     s.state,
		Score:     s.score,
		Ticks:     s.ticks,
		Center:    s.body.Center(),
		Direction: s.body.Direction(),
		Radius:    s.body.Radius(),
		Width:     s.params.Width,
		Height:    s.params.Height,
	}
}
