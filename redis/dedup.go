// Package redis provides a Redis-backed idempotency check for handling
// reports: the same (cargo, event type, completion time) reported twice
// within the TTL is dropped before it reaches the event store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cargotracker/shipping/cargo"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides idempotency checks backed by Redis.
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact handling report has already been
// processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, id cargo.TrackingID, eventType cargo.HandlingEventType, completed time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(id, eventType, completed)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this handling report has been processed.
func (d *DedupChecker) Mark(ctx context.Context, id cargo.TrackingID, eventType cargo.HandlingEventType, completed time.Time) error {
	return d.client.Set(ctx, d.key(id, eventType, completed), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(id cargo.TrackingID, eventType cargo.HandlingEventType, completed time.Time) string {
	return fmt.Sprintf("dedup:%s:%d:%d", id, eventType, completed.Unix())
}
