package cart

import (
	"sync"
	"time"
)

// Store maps session ids to carts. The map itself is guarded because it is
// shared across sessions; individual carts are not, matching the
// single-request-per-visitor model (concurrent requests of one visitor are
// last-write-wins).
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session, creating it on first use, and bumps
// its activity timestamp.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	c.Touch()
	return c
}

// Len returns the number of live carts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Sweep drops carts idle for longer than ttl and returns how many were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-ttl)
	removed := 0
	for id, c := range s.carts {
		if c.LastActive.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}
