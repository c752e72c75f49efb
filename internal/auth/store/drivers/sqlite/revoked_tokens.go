package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/billpoint/billpoint/internal/auth/domain"
)

type revokedTokensRepo struct {
	db *sql.DB
}

func (r *revokedTokensRepo) RevokeToken(ctx context.Context, t domain.RevokedToken) error {
	// Revoking an already-revoked token is a no-op, not an error.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (jti, account_id, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (jti) DO NOTHING`,
		t.JTI, t.AccountID, t.ExpiresAt.UTC(),
	)
	return err
}

func (r *revokedTokensRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM revoked_tokens WHERE jti = ?`, jti).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevocations(ctx context.Context) error {
	// Compare against a bound timestamp so both sides use the driver's
	// time encoding rather than CURRENT_TIMESTAMP's text form.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, time.Now().UTC())
	return err
}
