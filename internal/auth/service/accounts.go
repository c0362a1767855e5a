package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/extid"
	"github.com/google/uuid"
)

const (
	DefaultMaxFailedAttempts = 5
	DefaultLockoutDuration   = 15 * time.Minute
	DefaultIDPrefix          = "usr"
)

var ErrEmailTaken = errors.New("email already registered")

// PolicyError carries password or input rule violations back to workflows.
type PolicyError struct {
	Problems []string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy violations: %v", e.Problems)
}

// PasswordHasher is satisfied by cryptox.Argon2id.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// NewAccount is the input to AccountDirectory.Create. When PasswordHash is
// set it was produced by HashNewPassword and Password is ignored.
type NewAccount struct {
	Email        string
	Password     string
	PasswordHash string
	FirstName    string
	LastName     string
}

// AccountDirectory owns account records: creation, password checks, the
// failed attempt lockout and security stamps.
type AccountDirectory struct {
	Store             store.Store
	Hasher            PasswordHasher
	Policy            PasswordPolicy
	IDPrefix          string
	DefaultRoles      []string
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	Now               func() time.Time
}

// WithStore returns a copy bound to s, typically a transaction.
func (d *AccountDirectory) WithStore(s store.Store) *AccountDirectory {
	cp := *d
	cp.Store = s
	return &cp
}

func (d *AccountDirectory) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func (d *AccountDirectory) maxAttempts() int {
	if d.MaxFailedAttempts > 0 {
		return d.MaxFailedAttempts
	}
	return DefaultMaxFailedAttempts
}

func (d *AccountDirectory) lockoutDuration() time.Duration {
	if d.LockoutDuration > 0 {
		return d.LockoutDuration
	}
	return DefaultLockoutDuration
}

func newStamp() string { return uuid.NewString() }

// Create validates the password, assigns an external id and stores the
// account unconfirmed with the default roles.
func (d *AccountDirectory) Create(ctx context.Context, in NewAccount) (domain.Account, error) {
	email := domain.NormalizeEmail(in.Email)

	hash := in.PasswordHash
	if hash == "" {
		var err error
		if hash, err = d.HashNewPassword(in.Password, email, in.FirstName, in.LastName); err != nil {
			return domain.Account{}, err
		}
	}

	prefix := d.IDPrefix
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	externalID, err := extid.Generate(prefix)
	if err != nil {
		return domain.Account{}, err
	}

	now := d.now()
	a, err := d.Store.Accounts().CreateAccount(ctx, domain.Account{
		ExternalID:    externalID,
		Email:         email,
		PasswordHash:  hash,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Status:        domain.AccountActive,
		SecurityStamp: newStamp(),
		Roles:         append([]string(nil), d.DefaultRoles...),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Account{}, ErrEmailTaken
	}
	return a, err
}

// HashNewPassword applies the policy and hashes password. Violations come
// back as *PolicyError.
func (d *AccountDirectory) HashNewPassword(password string, userInputs ...string) (string, error) {
	if problems := d.Policy.Validate(password, userInputs...); len(problems) > 0 {
		return "", &PolicyError{Problems: problems}
	}
	return d.Hasher.Hash(password)
}

func (d *AccountDirectory) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	return d.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
}

func (d *AccountDirectory) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	return d.Store.Accounts().GetAccountByID(ctx, id)
}

func (d *AccountDirectory) FindByExternalID(ctx context.Context, externalID string) (domain.Account, error) {
	return d.Store.Accounts().GetAccountByExternalID(ctx, externalID)
}

// CheckPassword only verifies the hash; lockout bookkeeping is separate.
func (d *AccountDirectory) CheckPassword(a domain.Account, password string) (bool, error) {
	err := d.Hasher.Verify(password, a.PasswordHash)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		return false, nil
	default:
		return false, err
	}
}

// RecordFailedAttempt bumps the counter and reports whether this failure
// locked the account.
func (d *AccountDirectory) RecordFailedAttempt(ctx context.Context, id int64) (bool, error) {
	now := d.now()
	_, locked, err := d.Store.Accounts().RecordFailedAttempt(ctx, id, d.maxAttempts(), now.Add(d.lockoutDuration()), now)
	return locked, err
}

func (d *AccountDirectory) ResetFailedAttempts(ctx context.Context, id int64) error {
	return d.Store.Accounts().ResetFailedAttempts(ctx, id, d.now())
}

func (d *AccountDirectory) IsLockedOut(a domain.Account) bool {
	return a.IsLockedOut(d.now())
}

// LockoutRemainingMinutes rounds the remaining lockout up to whole minutes.
func (d *AccountDirectory) LockoutRemainingMinutes(a domain.Account) int {
	if !d.IsLockedOut(a) {
		return 0
	}
	return int(math.Ceil(a.LockoutEnd.Sub(d.now()).Minutes()))
}

func (d *AccountDirectory) ConfirmEmail(ctx context.Context, id int64) error {
	return d.Store.Accounts().ConfirmEmail(ctx, id, d.now())
}

// SetPasswordHash stores an already validated hash and rotates the stamp.
// It returns the new stamp.
func (d *AccountDirectory) SetPasswordHash(ctx context.Context, id int64, hash string) (string, error) {
	stamp := newStamp()
	if err := d.Store.Accounts().UpdatePassword(ctx, id, hash, stamp, d.now()); err != nil {
		return "", err
	}
	return stamp, nil
}

// InvalidateSecurityStamp rotates the stamp so outstanding access tokens go
// stale. It returns the new stamp.
func (d *AccountDirectory) InvalidateSecurityStamp(ctx context.Context, id int64) (string, error) {
	stamp := newStamp()
	if err := d.Store.Accounts().UpdateSecurityStamp(ctx, id, stamp, d.now()); err != nil {
		return "", err
	}
	return stamp, nil
}
