package physics

import "math/rand"

// RNG is the randomness the simulation consumes. It is injected so tests
// can script exact sequences.
type RNG interface {
	// IntRange returns a uniform integer in [low, high], both inclusive.
	IntRange(low, high int) int
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// Rand is the production RNG, a seeded math/rand source.
type Rand struct {
	rng *rand.Rand
}

// NewRand creates a seeded RNG. The same seed yields the same sequence.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [low, high].
func (r *Rand) IntRange(low, high int) int {
	if high <= low {
		return low
	}
	return low + r.rng.Intn(high-low+1)
}

// Intn returns a uniform integer in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Choose picks one item uniformly. items must not be empty.
func Choose[T any](rng RNG, items []T) T {
	return items[rng.Intn(len(items))]
}

// SequenceRNG replays a fixed list of values, cycling when exhausted.
// Values outside the requested range are clamped into it.
type SequenceRNG struct {
	Values []int
	next   int
}

// NewSequenceRNG creates an RNG that yields values in order.
func NewSequenceRNG(values ...int) *SequenceRNG {
	return &SequenceRNG{Values: values}
}

func (s *SequenceRNG) take() int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// IntRange returns the next value clamped into [low, high].
func (s *SequenceRNG) IntRange(low, high int) int {
	v := s.take()
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// Intn returns the next value folded into [0, n).
func (s *SequenceRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := s.take() % n
	if v < 0 {
		v += n
	}
	return v
}

// Draws returns how many values have been consumed.
func (s *SequenceRNG) Draws() int {
	return s.next
}
