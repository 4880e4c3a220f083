// Package synth renders the game's cues as synthesized tones and plays
// them on the system speaker. It is the only package that needs an audio
// backend.
package synth

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tuber-tapper/internal/audio"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// voice describes one synthesized cue: a frequency sweep from From to To
// with a linear attack and release.
type voice struct {
	wave     WaveType
	from, to float64 // Hz
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// voices maps each cue to its synthesis recipe. Pops chirp upward, bumps
// are low thuds, the death cue is a long square beep.
var voices = map[audio.Sound]voice{
	audio.Pop1: {WaveSine, 520, 980, 70 * time.Millisecond, 5 * time.Millisecond, 40 * time.Millisecond, 0.8},
	audio.Pop2: {WaveSine, 600, 1100, 70 * time.Millisecond, 5 * time.Millisecond, 40 * time.Millisecond, 0.8},
	audio.Pop3: {WaveSine, 680, 1240, 65 * time.Millisecond, 5 * time.Millisecond, 35 * time.Millisecond, 0.8},
	audio.Pop4: {WaveSine, 760, 1400, 60 * time.Millisecond, 5 * time.Millisecond, 30 * time.Millisecond, 0.8},

	audio.Bump1: {WaveSquare, 140, 90, 110 * time.Millisecond, 2 * time.Millisecond, 80 * time.Millisecond, 0.5},
	audio.Bump2: {WaveSquare, 160, 100, 110 * time.Millisecond, 2 * time.Millisecond, 80 * time.Millisecond, 0.5},
	audio.Bump3: {WaveSquare, 180, 110, 100 * time.Millisecond, 2 * time.Millisecond, 70 * time.Millisecond, 0.5},
	audio.Bump4: {WaveSquare, 200, 120, 100 * time.Millisecond, 2 * time.Millisecond, 70 * time.Millisecond, 0.5},

	audio.Beep: {WaveSquare, 880, 880, 400 * time.Millisecond, 10 * time.Millisecond, 60 * time.Millisecond, 0.4},
}

// sweep is a beep.Streamer producing a shaped tone.
type sweep struct {
	v        voice
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	attack   int
	release  int
}

func newSweep(v voice, rate beep.SampleRate) *sweep {
	return &sweep{
		v:       v,
		rate:    rate,
		total:   rate.N(v.duration),
		attack:  rate.N(v.attack),
		release: rate.N(v.release),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}

		progress := float64(s.position) / float64(s.total)
		freq := s.v.from + (s.v.to-s.v.from)*progress

		var val float64
		switch s.v.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		}
		val *= s.envelope() * s.v.gain

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

// envelope returns the attack/release gain at the current position.
func (s *sweep) envelope() float64 {
	if s.attack > 0 && s.position < s.attack {
		return float64(s.position) / float64(s.attack)
	}
	if remaining := s.total - s.position; s.release > 0 && remaining < s.release {
		return float64(remaining) / float64(s.release)
	}
	return 1
}

func (s *sweep) Err() error { return nil }

// Synth plays cues through the system speaker. It implements audio.Player.
type Synth struct {
	volume float64

	mu          sync.Mutex
	initialized bool
}

// NewSynth creates a synth with master volume in [0, 1].
func NewSynth(volume float64) *Synth {
	return &Synth{volume: volume}
}

// Init opens the speaker. It must succeed before Play produces sound.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("synth: cannot open speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// Streamer builds the stream for a cue without playing it.
func (s *Synth) Streamer(snd audio.Sound) (beep.Streamer, error) {
	v, ok := voices[snd]
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnknownSound, snd)
	}
	return withVolume(newSweep(v, SampleRate), s.volume), nil
}

// Play queues the cue on the speaker mixer and returns.
func (s *Synth) Play(snd audio.Sound) error {
	st, err := s.Streamer(snd)
	if err != nil {
		return err
	}

	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		return errors.New("synth: speaker not initialized")
	}

	speaker.Play(st)
	return nil
}

// Close stops all cues and releases the speaker.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// withVolume scales a stream by a linear factor. math.Log2(0) is -Inf,
// so zero volume is mapped to silence.
func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol), Silent: false}
}
