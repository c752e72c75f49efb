package sqlite

import (
	"context"
	"database/sql"

	"github.com/billpoint/billpoint/internal/auth/domain"
	"github.com/billpoint/billpoint/internal/auth/store"
)

type accountsRepo struct {
	db *sql.DB
}

const accountColumns = `id, username, email, password_hash, phone_number, address, profile_image, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, phone_number, address, profile_image)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.Email, a.PasswordHash,
		nullString(a.PhoneNumber), nullString(a.Address), nullString(a.ProfileImage),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, accountID, phoneNumber, address, profileImage string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET phone_number = ?, address = ?, profile_image = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		nullString(phoneNumber), nullString(address), nullString(profileImage), accountID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var phone, address, image sql.NullString

	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash,
		&phone, &address, &image,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.PhoneNumber = phone.String
	a.Address = address.String
	a.ProfileImage = image.String
	return a, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
