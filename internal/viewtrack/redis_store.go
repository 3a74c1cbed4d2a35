package viewtrack

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisMarkerStore keeps view markers in Redis. SETNX decides a single
// winner under concurrent duplicate requests; the key expires with the
// browsing session, so the set never grows without bound.
type redisMarkerStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMarkerStore creates a Redis-backed MarkerStore. ttl should equal
// the session lifetime; zero falls back to DefaultMarkerTTL.
func NewRedisMarkerStore(client *redis.Client, ttl time.Duration) MarkerStore {
	if ttl <= 0 {
		ttl = DefaultMarkerTTL
	}
	return &redisMarkerStore{client: client, ttl: ttl}
}

func (s *redisMarkerStore) MarkSeen(ctx context.Context, sessionID string, topicID uint64) (bool, error) {
	return s.client.SetNX(ctx, markerKey(sessionID, topicID), 1, s.ttl).Result()
}
