package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/billpoint/billpoint/internal/auth/domain"
	"github.com/billpoint/billpoint/internal/auth/store"
	"github.com/billpoint/billpoint/pkg/cryptox"
	"github.com/billpoint/billpoint/pkg/idx"
	"github.com/billpoint/billpoint/pkg/slogx"
)

// MinPasswordLength is the minimum accepted password length on signup.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrValidation         = errors.New("validation_failed")
)

// ValidationError wraps ErrValidation with a user-presentable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
func (e *ValidationError) Unwrap() error { return ErrValidation }

type AccountService struct {
	Store store.Store
}

// SignupParams is the validated input to Signup. Optional fields may be empty.
type SignupParams struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
}

// Signup validates the form, hashes the password and creates the account.
// Returns ErrEmailTaken when the email is already registered and a
// *ValidationError for malformed input.
func (s *AccountService) Signup(ctx context.Context, params SignupParams) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.TrimSpace(params.Email)

	if err := validateSignup(params); err != nil {
		return domain.Account{}, err
	}

	hash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(params.PhoneNumber),
		Address:      strings.TrimSpace(params.Address),
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("signup rejected, email taken", slog.String("email", params.Email))
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, err
	}

	// Timestamps are assigned by the database; reload so callers see them.
	created, err := s.Store.Accounts().GetAccountByID(ctx, account.ID)
	if err != nil {
		return domain.Account{}, err
	}

	l.Info("account created", slog.String("account_id", created.ID))
	return created, nil
}

// Login checks an email/password pair. Unknown emails and wrong passwords
// both collapse to ErrInvalidCredentials so callers cannot probe which.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Account{}, ErrInvalidCredentials
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so a miss is not distinguishable by latency.
			_, _ = cryptox.HashPassword(password)
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login rejected", slog.String("account_id", account.ID))
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, err
	}

	return account, nil
}

// GetAccountByID fetches an account by id.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (domain.Account, error) {
	return s.Store.Accounts().GetAccountByID(ctx, accountID)
}

func validateSignup(params SignupParams) error {
	if params.Username == "" {
		return &ValidationError{Reason: "Username is required"}
	}
	if params.Email == "" {
		return &ValidationError{Reason: "Email is required"}
	}
	if addr, err := mail.ParseAddress(params.Email); err != nil || addr.Address != params.Email {
		return &ValidationError{Reason: "Email is not valid"}
	}
	if len(params.Password) < MinPasswordLength {
		return &ValidationError{Reason: "Password must be at least 8 characters"}
	}
	return nil
}
