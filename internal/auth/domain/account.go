package domain

import "time"

// Account is a registered BillPoint user.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	PhoneNumber  string // optional
	Address      string // optional
	ProfileImage string // optional, URL
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
