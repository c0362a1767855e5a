package domain

import (
	"strings"
	"time"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "Active"
	AccountInactive AccountStatus = "Inactive"
	AccountBanned   AccountStatus = "Banned"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountBanned:
		return true
	}
	return false
}

// Account is a registered user. ID never leaves the service; ExternalID is
// the public identity used in tokens and responses.
type Account struct {
	ID             int64
	ExternalID     string
	Email          string // normalized, see NormalizeEmail
	PasswordHash   string // argon2id PHC string
	FirstName      string
	LastName       string
	Status         AccountStatus
	EmailConfirmed bool
	FailedAttempts int
	LockoutEnd     *time.Time
	SecurityStamp  string
	Roles          []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// IsLockedOut reports whether a lockout is in force at now.
func (a Account) IsLockedOut(now time.Time) bool {
	return a.LockoutEnd != nil && a.LockoutEnd.After(now)
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
