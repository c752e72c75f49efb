package service

import (
	"context"
	"errors"
	"time"

	"github.com/billpoint/billpoint/internal/auth/domain"
	"github.com/billpoint/billpoint/internal/auth/store"
	"github.com/billpoint/billpoint/pkg/jwtx"
)

var ErrTokenRevoked = errors.New("token_revoked")

// TokenService mints and verifies the access tokens handed out on login and
// signup, and revokes them on logout. Revocation is tracked by jti so a
// logged-out token is rejected even before it expires.
type TokenService struct {
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Store    store.Store
	Issuer   string
	TTL      time.Duration
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultAccessTokenTTL
}

// Mint issues a signed access token for the account.
func (s *TokenService) Mint(account domain.Account) (string, error) {
	claims := jwtx.NewAccessClaims(
		account.ID, account.Username, account.Email,
		s.Issuer, s.ttl(), time.Now(),
	)
	return s.Signer.Sign(claims)
}

// Verify checks the token's signature and claims, then rejects tokens whose
// jti has been revoked.
func (s *TokenService) Verify(ctx context.Context, token string) (*jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.Store.RevokedTokens().IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke records the token's jti so further Verify calls reject it. Already
// expired or invalid tokens yield the verifier's error.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return err
	}

	expires := time.Now().Add(s.ttl())
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return s.Store.RevokedTokens().RevokeToken(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		AccountID: claims.Subject,
		ExpiresAt: expires,
	})
}
