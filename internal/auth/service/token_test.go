package service

import (
	"context"
	"testing"
	"time"

	"github.com/billpoint/billpoint/internal/auth/domain"
	"github.com/billpoint/billpoint/pkg/idx"
	"github.com/billpoint/billpoint/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()

	signer, verifier, err := jwtx.NewKeyPair("billpoint-auth")
	require.NoError(t, err)

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Store:    newTestStore(t),
		Issuer:   "billpoint-auth",
	}
}

func tokenAccount() domain.Account {
	return domain.Account{
		ID:       idx.New().String(),
		Username: "jess",
		Email:    "jess@example.com",
	}
}

func TestMintAndVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTokenService(t)

	account := tokenAccount()
	token, err := svc.Mint(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.Subject)
	require.Equal(t, account.Username, claims.Username)
	require.Equal(t, account.Email, claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsRevoked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTokenService(t)

	account := tokenAccount()
	require.NoError(t, svc.Store.Accounts().CreateAccount(ctx, domain.Account{
		ID: account.ID, Username: account.Username, Email: account.Email,
		PasswordHash: "x",
	}))

	token, err := svc.Mint(account)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, token))

	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// Revoking again is a no-op.
	require.NoError(t, svc.Revoke(ctx, token))
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTokenService(t)

	otherSigner, _, err := jwtx.NewKeyPair("someone-else")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("acct", "u", "u@x.com", "someone-else", time.Minute, time.Now())
	token, err := otherSigner.Sign(claims)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTokenService(t)

	claims := jwtx.NewAccessClaims("acct", "u", "u@x.com", svc.Issuer, time.Minute, time.Now().Add(-time.Hour))
	token, err := svc.Signer.Sign(claims)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	require.Error(t, err)
}

func TestRevokeRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc := newTokenService(t)

	require.Error(t, svc.Revoke(context.Background(), "not-a-jwt"))
}
