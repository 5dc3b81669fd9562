// Package sink implements a local debug receiver for statsd wire lines: a
// UDP listener feeding a bounded in-memory ring, exposed over HTTP for
// inspection. It stores raw lines only; aggregation stays the daemon's job.
package sink

import (
	"sync"
	"time"
)

// Line is one received wire line.
type Line struct {
	Raw  string    `json:"raw"`
	From string    `json:"from"`
	At   time.Time `json:"at"`
}

// Store keeps the most recent lines in a fixed-capacity ring.
type Store struct {
	mu    sync.RWMutex
	ring  []Line
	next  int
	size  int
	total uint64
}

// NewStore creates a Store holding up to capacity lines. Capacities below 1
// fall back to 1.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{ring: make([]Line, capacity)}
}

// Add records a line, evicting the oldest when full.
func (s *Store) Add(l Line) {
	s.mu.Lock()
	s.ring[s.next] = l
	s.next = (s.next + 1) % len(s.ring)
	if s.size < len(s.ring) {
		s.size++
	}
	s.total++
	s.mu.Unlock()
}

// Recent returns the buffered lines, oldest first.
func (s *Store) Recent() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, 0, s.size)
	start := s.next - s.size
	if start < 0 {
		start += len(s.ring)
	}
	for i := 0; i < s.size; i++ {
		out = append(out, s.ring[(start+i)%len(s.ring)])
	}
	return out
}

// Len returns the number of buffered lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Total returns the number of lines received since start, including evicted
// ones.
func (s *Store) Total() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
