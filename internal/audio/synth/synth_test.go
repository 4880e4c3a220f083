package synth

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tuber-tapper/internal/audio"
)

func TestStreamerForEveryCue(t *testing.T) {
	s := NewSynth(1)

	for _, snd := range audio.All() {
		t.Run(string(snd), func(t *testing.T) {
			st, err := s.Streamer(snd)
			if err != nil {
				t.Fatalf("Streamer(%q) failed: %v", snd, err)
			}

			total, peak := drain(st)
			want := SampleRate.N(voices[snd].duration)
			if total != want {
				t.Errorf("stream length = %d samples, expected %d", total, want)
			}
			if peak <= 0 || peak > 1 {
				t.Errorf("peak amplitude = %v, expected within (0, 1]", peak)
			}
		})
	}
}

func TestSilentAtZeroVolume(t *testing.T) {
	st, err := NewSynth(0).Streamer(audio.Beep)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(st); peak != 0 {
		t.Errorf("zero volume should be silent, peak = %v", peak)
	}
}

func TestUnknownSound(t *testing.T) {
	_, err := NewSynth(1).Streamer("kazoo")
	if !errors.Is(err, audio.ErrUnknownSound) {
		t.Errorf("expected ErrUnknownSound, got %v", err)
	}
}

func TestPlayBeforeInit(t *testing.T) {
	if err := NewSynth(1).Play(audio.Pop1); err == nil {
		t.Error("Play without Init should fail")
	}
}

func TestSweepEnvelope(t *testing.T) {
	v := voice{wave: WaveSquare, from: 100, to: 100, duration: 10 * time.Millisecond,
		attack: 2 * time.Millisecond, release: 2 * time.Millisecond, gain: 1}
	s := newSweep(v, SampleRate)

	if s.envelope() != 0 {
		t.Errorf("envelope at start = %v, expected 0", s.envelope())
	}
	s.position = s.total / 2
	if s.envelope() != 1 {
		t.Errorf("envelope at sustain = %v, expected 1", s.envelope())
	}
	s.position = s.total - 1
	if e := s.envelope(); e <= 0 || e >= 1 {
		t.Errorf("envelope near end = %v, expected in (0, 1)", e)
	}
}

// drain reads a stream to the end and returns its length and peak.
func drain(st beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}
