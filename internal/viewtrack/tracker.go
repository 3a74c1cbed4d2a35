// Package viewtrack counts topic views at most once per browsing session.
// A marker keyed by (session, topic) lives in Redis for the session
// lifetime; whichever concurrent request sets the marker first wins the
// right to increment, so retried requests never double count.
package viewtrack

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var viewsCounted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "forum_topic_views_counted_total",
		Help: "Total number of deduplicated topic view increments",
	},
)

// MarkerStore records "session S has seen topic T" markers. MarkSeen is
// the serializing guard: it must return true for exactly one caller per
// (sessionID, topicID) pair within the marker's lifetime.
type MarkerStore interface {
	MarkSeen(ctx context.Context, sessionID string, topicID uint64) (first bool, err error)
}

// ViewCounter is the slice of the entity store the tracker needs.
type ViewCounter interface {
	IncrementViews(topicID uint64) error
}

// Tracker deduplicates view-count increments per session.
type Tracker interface {
	// RecordView bumps the topic's view counter if this session has not
	// viewed the topic yet. Returns whether an increment happened.
	RecordView(ctx context.Context, sessionID string, topicID uint64) (bool, error)
}

type tracker struct {
	markers MarkerStore
	counter ViewCounter
}

// New creates a Tracker over the given marker store and counter.
func New(markers MarkerStore, counter ViewCounter) Tracker {
	return &tracker{markers: markers, counter: counter}
}

func (t *tracker) RecordView(ctx context.Context, sessionID string, topicID uint64) (bool, error) {
	first, err := t.markers.MarkSeen(ctx, sessionID, topicID)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}
	if err := t.counter.IncrementViews(topicID); err != nil {
		return false, err
	}
	viewsCounted.Inc()
	return true, nil
}

// markerKey builds the Redis key for a (session, topic) pair.
func markerKey(sessionID string, topicID uint64) string {
	return fmt.Sprintf("seen:%s:%d", sessionID, topicID)
}

// DefaultMarkerTTL bounds marker lifetime when no session TTL is
// configured. Matches the default browsing-session lifetime.
const DefaultMarkerTTL = 30 * time.Minute
