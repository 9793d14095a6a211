// Package memory provides an in-process counter store for rate
// limiting. It is a single-instance fallback: counters are local to the
// process, so deployments with more than one replica must use the Redis
// store instead.
package memory

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type entry struct {
	count     int64
	expiresAt time.Time
}

// CounterStore is a mutex-guarded fixed-window counter map. Expired
// windows are reset lazily on access; Start adds a periodic sweep so
// keys that stop being hit do not accumulate forever.
type CounterStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewCounterStore() *CounterStore {
	return &CounterStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Increment bumps the counter for key, starting a new window when none
// is active or the previous one has elapsed.
func (s *CounterStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !now.Before(e.expiresAt) {
		e = &entry{expiresAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	return e.count, e.expiresAt.Sub(now), nil
}

// Start launches the background sweep. It returns immediately; the
// sweep stops when ctx is cancelled.
func (s *CounterStore) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *CounterStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
