package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source is the randomness consumed by squad generation and the match
// engine. Everything that rolls dice takes a Source so simulations are
// replayable with a fixed seed under test.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// LockedSource wraps math/rand behind a mutex so one Source can be
// shared across concurrent match simulations.
type LockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed int64) *LockedSource {
	return &LockedSource{rng: rand.New(rand.NewSource(seed))}
}

// NewSeeded returns a source seeded from crypto/rand.
func NewSeeded() *LockedSource {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Degenerate fallback, still usable.
		return New(1)
	}
	return New(int64(binary.LittleEndian.Uint64(buf[:])))
}

func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *LockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
