// Package keystore provides the small local key-value store the BillPoint
// client uses to persist the signed-in user and access token across restarts.
package keystore

import "context"

// Store is a minimal key-value store. Get returns (nil, nil) for an absent
// key so callers can distinguish "not set" from a storage failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
