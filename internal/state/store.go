package state

import (
	"fmt"
	"sync"
	"time"
)

// Health is the latest result of probing the restaurants API.
type Health struct {
	Checked             bool
	Reachable           bool
	Latency             time.Duration
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive probe failures
}

// IsOffline returns true when the API has been unreachable for multiple probes.
func (h Health) IsOffline() bool {
	return h.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the health snapshot.
type Store struct {
	mu     sync.RWMutex
	health Health
}

// Record stores the outcome of one probe. A failure keeps Reachable until the
// API counts as offline, so a single dropped probe does not flap the header.
func (s *Store) Record(latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.health.Checked = true
	s.health.LastChecked = time.Now()

	if err != nil {
		s.health.LastError = err
		s.health.ConsecutiveFailures++
		if s.health.IsOffline() {
			s.health.Reachable = false
		}
		return
	}

	s.health.Reachable = true
	s.health.Latency = latency
	s.health.LastError = nil
	s.health.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current health.
func (s *Store) Snapshot() Health {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.health
	if s.health.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.health.LastError)
	}
	return snap
}
