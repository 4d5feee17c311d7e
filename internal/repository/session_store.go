package repository

import (
	"context"
	"time"
)

// SessionStore tracks live admin sessions by token ID so a session can be
// revoked before its token expires.
// Implementations: Redis (multi-instance) or in-memory (local dev / single instance).
type SessionStore interface {
	Save(ctx context.Context, tokenID, subject string, ttl time.Duration) error
	// Lookup returns the session subject, or "" when the session is unknown or expired.
	Lookup(ctx context.Context, tokenID string) (string, error)
	Revoke(ctx context.Context, tokenID string) error
}

const sessionKeyPrefix = "admin_session:"

func sessionKey(tokenID string) string {
	return sessionKeyPrefix + tokenID
}
