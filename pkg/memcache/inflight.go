package memcache

import (
	"sync"
	"time"
)

// InFlightGuard tracks keys that have an operation running.
type InFlightGuard interface {
	// TryAcquire marks key busy. It returns false if key is already busy.
	TryAcquire(key string) bool

	Release(key string)

	// Active reports whether key is busy.
	Active(key string) bool
}

type InFlight struct {
	mu   sync.Mutex
	data map[string]time.Time
}

func NewInFlight() *InFlight {
	return &InFlight{
		data: make(map[string]time.Time),
	}
}

func (s *InFlight) TryAcquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.data[key]; busy {
		return false
	}
	s.data[key] = time.Now()
	return true
}

func (s *InFlight) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *InFlight) Active(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.data[key]
	return busy
}
