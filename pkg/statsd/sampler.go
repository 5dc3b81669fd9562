package statsd

import (
	"math/rand"
	"sync"
	"time"
)

// sampler owns the per-call transmit decision. One decision covers the whole
// batch of a Send, so multi-stat calls are sampled in lockstep: either every
// stat goes out annotated with the rate, or none do.
type sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newSampler(src rand.Source) *sampler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano()) // #nosec G404
	}
	return &sampler{rnd: rand.New(src)}
}

// shouldSend reports whether a call with the given sample rate transmits.
// Rates >= 1 always transmit and consume no randomness. Rates <= 0 are not
// rejected and almost never transmit; supplying a rate in (0, 1] is the
// caller's responsibility.
func (s *sampler) shouldSend(rate float64) bool {
	if rate >= 1 {
		return true
	}
	s.mu.Lock()
	draw := s.rnd.Float64()
	s.mu.Unlock()
	return draw <= rate
}
