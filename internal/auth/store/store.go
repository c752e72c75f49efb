package store

import (
	"context"
	"errors"

	"github.com/billpoint/billpoint/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Accounts() Accounts
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login; email is matched case-insensitively.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateProfile mutates the optional profile fields and bumps updated_at.
	UpdateProfile(ctx context.Context, accountID, phoneNumber, address, profileImage string) error

	// DeleteAccount removes the account.
	DeleteAccount(ctx context.Context, accountID string) error
}

type RevokedTokens interface {
	// RevokeToken records a token's jti so verification rejects it from now on.
	RevokeToken(ctx context.Context, t domain.RevokedToken) error

	// IsRevoked reports whether the jti has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpiredRevocations is housekeeping; rows past their token's
	// natural expiry carry no information.
	DeleteExpiredRevocations(ctx context.Context) error
}
