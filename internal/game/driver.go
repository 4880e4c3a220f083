package game

import (
	"context"
	"time"

	"github.com/vovakirdan/tuber-tapper/internal/core"
)

// InputSource produces at most one event per tick. It sees the session
// as it was before the step.
type InputSource interface {
	Next(v View) core.Event
}

// InputFunc adapts a function to InputSource.
type InputFunc func(v View) core.Event

// Next calls f.
func (f InputFunc) Next(v View) core.Event { return f(v) }

// Run is the summary of one finished run.
type Run struct {
	Score int
	Stats Stats
}

// Result is what a Driver produced before it stopped.
type Result struct {
	Runs  []Run
	Ticks int
	Quit  bool // The input source asked to quit
}

// Best returns the highest score among the runs, or 0.
func (r Result) Best() int {
	best := 0
	for _, run := range r.Runs {
		best = max(best, run.Score)
	}
	return best
}

// Driver runs a session without a terminal.
type Driver struct {
	Session *Session
	Input   InputSource

	// TickRate paces the loop in ticks per second. Zero runs as fast as
	// possible.
	TickRate int

	// Runs stops the driver after this many finished runs. Zero means no
	// limit.
	Runs int

	// MaxTicks stops the driver after this many steps. Zero means no limit.
	MaxTicks int

	// OnFrame, if set, is called after every step.
	OnFrame func(Frame)
}

// Run steps the session until a stop condition is met or ctx is done. The
// partial result is returned together with ctx.Err() on cancellation.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	var res Result

	var tick <-chan time.Time
	if d.TickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(d.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if d.MaxTicks > 0 && res.Ticks >= d.MaxTicks {
			return res, nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return res, err
		}

		ev := d.Input.Next(d.Session.View())
		if ev.Kind == core.EventQuit {
			res.Quit = true
			return res, nil
		}

		f := d.Session.Step(ev)
		res.Ticks++
		if d.OnFrame != nil {
			d.OnFrame(f)
		}

		// Stats survive until the next restart, so they still describe
		// the run that just ended.
		if f.Ended {
			res.Runs = append(res.Runs, Run{Score: f.Score, Stats: d.Session.Stats()})
			if d.Runs > 0 && len(res.Runs) >= d.Runs {
				return res, nil
			}
		}
	}
}
