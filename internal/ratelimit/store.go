// Package ratelimit bounds repeated intake submissions with a keyed
// attempt counter. It sits outside the pure calculation engine; the
// clock is injected so tests never depend on wall time.
package ratelimit

import (
	"sync"
	"time"
)

// Defaults for the submission limiter.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = time.Hour
)

// Clock returns the current time. Production code passes nil to New and
// gets time.Now.
type Clock func() time.Time

type entry struct {
	count       int
	windowStart time.Time
}

// Store counts attempts per key within a fixed window. Safe for
// concurrent use; each Allow is a single read-modify-write on one key.
type Store struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	now         Clock
	entries     map[string]entry
}

// New creates a Store allowing maxAttempts per key per window. A nil
// clock uses time.Now.
func New(maxAttempts int, window time.Duration, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		maxAttempts: maxAttempts,
		window:      window,
		now:         clock,
		entries:     make(map[string]entry),
	}
}

// Allow records an attempt for key and reports whether it is within the
// limit. Expired windows reset transparently.
func (s *Store) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) >= s.window {
		e = entry{windowStart: now}
	}

	e.count++
	s.entries[key] = e
	return e.count <= s.maxAttempts
}

// Remaining reports how many attempts are left for key in the current
// window without recording one.
func (s *Store) Remaining(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.windowStart) >= s.window {
		return s.maxAttempts
	}
	if e.count >= s.maxAttempts {
		return 0
	}
	return s.maxAttempts - e.count
}

// Reset clears the counter for key.
func (s *Store) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Prune drops entries whose window has expired, bounding memory for
// long-running servers.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var pruned int
	for key, e := range s.entries {
		if now.Sub(e.windowStart) >= s.window {
			delete(s.entries, key)
			pruned++
		}
	}
	return pruned
}
