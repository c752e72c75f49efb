package domain

import "time"

// RevokedToken records an access token invalidated by logout, keyed by the
// token's jti claim. Rows past ExpiresAt are safe to delete: the token would
// be rejected on expiry alone.
type RevokedToken struct {
	JTI       string
	AccountID string
	ExpiresAt time.Time
	RevokedAt time.Time
}
