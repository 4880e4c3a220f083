package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Dispatcher plays cues on background goroutines. Dispatch returns
// immediately; playback errors and panics are logged at debug level and
// otherwise dropped.
type Dispatcher struct {
	player Player
	logger *log.Logger
	muted  atomic.Bool
	wg     sync.WaitGroup
}

// NewDispatcher wraps a player. A nil logger discards log output.
func NewDispatcher(p Player, logger *log.Logger) *Dispatcher {
	if p == nil {
		p = Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{player: p, logger: logger}
}

// Dispatch starts playback of each cue and returns without waiting.
func (d *Dispatcher) Dispatch(sounds ...Sound) {
	if d.muted.Load() {
		return
	}
	for _, s := range sounds {
		d.wg.Add(1)
		go d.play(s)
	}
}

func (d *Dispatcher) play(s Sound) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("sound playback panicked", "sound", s, "panic", fmt.Sprint(r))
		}
	}()

	if err := d.player.Play(s); err != nil {
		d.logger.Debug("sound playback failed", "sound", s, "error", err)
	}
}

// ToggleMute flips the mute state and returns true if sound is now on.
func (d *Dispatcher) ToggleMute() bool {
	for {
		old := d.muted.Load()
		if d.muted.CompareAndSwap(old, !old) {
			return old
		}
	}
}

// Muted reports whether cues are being dropped.
func (d *Dispatcher) Muted() bool {
	return d.muted.Load()
}

// Wait blocks until every dispatched cue has been handed to the player.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
