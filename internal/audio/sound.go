// Package audio turns the game's sound requests into noise. Requests are
// fire-and-forget: the game never waits on playback and never sees its
// failures.
package audio

// Sound identifies one cue.
type Sound string

// Cues requested by the game.
const (
	Pop1 Sound = "pop1"
	Pop2 Sound = "pop2"
	Pop3 Sound = "pop3"
	Pop4 Sound = "pop4"

	Bump1 Sound = "bump1"
	Bump2 Sound = "bump2"
	Bump3 Sound = "bump3"
	Bump4 Sound = "bump4"

	Beep Sound = "beep"
)

// PopSounds is the bank a hit picks from.
var PopSounds = []Sound{Pop1, Pop2, Pop3, Pop4}

// BumpSounds is the bank a wall bounce picks from.
var BumpSounds = []Sound{Bump1, Bump2, Bump3, Bump4}

// All returns every known cue.
func All() []Sound {
	all := make([]Sound, 0, len(PopSounds)+len(BumpSounds)+1)
	all = append(all, PopSounds...)
	all = append(all, BumpSounds...)
	return append(all, Beep)
}
