package audio

import (
	"errors"
	"sync/atomic"
)

// ErrUnknownSound is returned by players for a cue they cannot produce.
var ErrUnknownSound = errors.New("audio: unknown sound")

// Player produces a cue. Implementations may block until the cue is
// queued; the Dispatcher calls them off the game loop.
type Player interface {
	Play(s Sound) error
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) error { return nil }

// Bell counts cues instead of playing them. The frontend drains the count
// with Take and rings the terminal bell in its own output, so a BEL never
// lands in the middle of another escape sequence.
type Bell struct {
	pending atomic.Int64
}

// Play records one ring.
func (b *Bell) Play(Sound) error {
	b.pending.Add(1)
	return nil
}

// Take returns the rings recorded since the last call and clears them.
func (b *Bell) Take() int {
	return int(b.pending.Swap(0))
}
