package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker is the Redis-backed revocation list for session tokens.
// Key format: revoked:<token_id>. Each entry expires at the token's natural
// expiry, so the list never grows beyond the set of live-but-revoked tokens.
type SessionRevoker struct {
	client *redis.Client
}

// NewSessionRevoker creates a SessionRevoker wrapping the given Redis client.
func NewSessionRevoker(client *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: client}
}

// Revoke records tokenID as revoked until expiresAt (unix seconds). Tokens
// already past expiry need no entry at all.
func (r *SessionRevoker) Revoke(ctx context.Context, tokenID string, expiresAt int64) error {
	ttl := time.Until(time.Unix(expiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (r *SessionRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session revocation check: %w", err)
	}
	return n > 0, nil
}

func (r *SessionRevoker) key(tokenID string) string {
	return "revoked:" + tokenID
}
