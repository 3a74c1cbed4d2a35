package viewtrack

import (
	"context"
	"sync"
	"time"
)

// memoryMarkerStore is the in-process fallback used in tests and when
// Redis is unavailable. Markers expire lazily on access after ttl.
type memoryMarkerStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
}

// NewMemoryMarkerStore creates an in-memory MarkerStore.
func NewMemoryMarkerStore(ttl time.Duration) MarkerStore {
	if ttl <= 0 {
		ttl = DefaultMarkerTTL
	}
	return &memoryMarkerStore{seen: make(map[string]time.Time), ttl: ttl}
}

func (s *memoryMarkerStore) MarkSeen(_ context.Context, sessionID string, topicID uint64) (bool, error) {
	key := markerKey(sessionID, topicID)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if expiry, ok := s.seen[key]; ok && now.Before(expiry) {
		return false, nil
	}
	s.seen[key] = now.Add(s.ttl)

	// Sweep a handful of expired markers per write to bound growth
	// without a background task.
	swept := 0
	for k, exp := range s.seen {
		if now.After(exp) {
			delete(s.seen, k)
		}
		swept++
		if swept >= 32 {
			break
		}
	}
	return true, nil
}
