package random

import (
	"math/rand"
	"time"
)

// Source provides the randomness used by stage services, so tests can
// force specific branches (held draws, city pairs, generated ids).
type Source interface {
	Float64() float64
	Intn(n int) int
	Int63n(n int64) int64
}

type mathSource struct {
	rng *rand.Rand
}

// New returns a Source backed by math/rand. A zero seed falls back to
// the current time.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &mathSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *mathSource) Float64() float64     { return s.rng.Float64() }
func (s *mathSource) Intn(n int) int       { return s.rng.Intn(n) }
func (s *mathSource) Int63n(n int64) int64 { return s.rng.Int63n(n) }
