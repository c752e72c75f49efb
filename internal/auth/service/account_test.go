package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/billpoint/billpoint/internal/auth/store"
	"github.com/billpoint/billpoint/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func validSignup() SignupParams {
	return SignupParams{
		Username: "jess",
		Email:    "jess@example.com",
		Password: "correct horse battery",
	}
}

func TestSignup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &AccountService{Store: newTestStore(t)}

	t.Run("creates account with hashed password", func(t *testing.T) {
		account, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)
		require.NotEmpty(t, account.ID)
		require.Equal(t, "jess", account.Username)
		require.NotEqual(t, "correct horse battery", account.PasswordHash)
		require.True(t, strings.HasPrefix(account.PasswordHash, "$argon2id$"))
		require.False(t, account.CreatedAt.IsZero())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		params := validSignup()
		params.Username = "second"
		_, err := svc.Signup(ctx, params)
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects duplicate email case-insensitively", func(t *testing.T) {
		params := validSignup()
		params.Email = "JESS@EXAMPLE.COM"
		_, err := svc.Signup(ctx, params)
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &AccountService{Store: newTestStore(t)}

	cases := []struct {
		name   string
		mutate func(*SignupParams)
		reason string
	}{
		{
			name:   "missing username",
			mutate: func(p *SignupParams) { p.Username = " " },
			reason: "Username is required",
		},
		{
			name:   "missing email",
			mutate: func(p *SignupParams) { p.Email = "" },
			reason: "Email is required",
		},
		{
			name:   "malformed email",
			mutate: func(p *SignupParams) { p.Email = "not-an-email" },
			reason: "Email is not valid",
		},
		{
			name:   "short password",
			mutate: func(p *SignupParams) { p.Password = "1234567" },
			reason: "Password must be at least 8 characters",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validSignup()
			tc.mutate(&params)

			_, err := svc.Signup(ctx, params)
			require.ErrorIs(t, err, ErrValidation)
			require.EqualError(t, err, tc.reason)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &AccountService{Store: newTestStore(t)}

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		account, err := svc.Login(ctx, "jess@example.com", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, created.ID, account.ID)
	})

	t.Run("email is matched case-insensitively", func(t *testing.T) {
		account, err := svc.Login(ctx, "Jess@Example.com", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, created.ID, account.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jess@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "correct horse battery")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
