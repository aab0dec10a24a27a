// Package ratelimit provides fixed-window rate limiting for the login
// endpoint. The store is pluggable: in-process memory for a single node,
// Redis when running more than one replica.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store answers whether one more event is allowed for a key.
type Store interface {
	// Allow records an attempt for key and reports whether it stays
	// within limit events per window.
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryStore is a fixed-window in-process limiter.
type MemoryStore struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string]*windowCount

	now func() time.Time // test hook
}

type windowCount struct {
	start time.Time
	n     int
}

// NewMemoryStore builds a limiter allowing limit events per window.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:  limit,
		window: window,
		hits:   make(map[string]*windowCount),
		now:    time.Now,
	}
}

// Allow implements Store.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.hits[key]
	if !ok || now.Sub(w.start) >= s.window {
		// Expired windows for other keys pile up slowly; sweep on rollover.
		if len(s.hits) > 1024 {
			for k, v := range s.hits {
				if now.Sub(v.start) >= s.window {
					delete(s.hits, k)
				}
			}
		}
		s.hits[key] = &windowCount{start: now, n: 1}
		return true, nil
	}
	w.n++
	return w.n <= s.limit, nil
}
