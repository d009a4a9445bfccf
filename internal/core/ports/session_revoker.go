package ports

import "context"

// SessionRevoker records revoked session token IDs until their natural
// expiry. Logout is a real state transition only because of this list: a
// signed token that is still within its validity window must stop
// authenticating once revoked.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt int64) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
