package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist invalidates session tokens ahead of their natural expiry, backed
// by Redis. Key format: session:denied:<jti>
//
// Entries expire with the same TTL as the tokens they invalidate: once the
// token itself has expired, the denylist entry is dead weight.
type Denylist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDenylist creates a Denylist whose entries live as long as ttl.
func NewDenylist(client *redis.Client, ttl time.Duration) *Denylist {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Denylist{client: client, ttl: ttl}
}

// Invalidate marks the token id as logged out.
func (d *Denylist) Invalidate(ctx context.Context, tokenID string) error {
	if err := d.client.Set(ctx, d.key(tokenID), "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}

// IsInvalidated reports whether the token id has been logged out.
func (d *Denylist) IsInvalidated(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return "session:denied:" + tokenID
}
