package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConflict reports a conditional write that lost a race, e.g. a refresh
	// token already rotated by a concurrent request.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Sub-repositories are exposed as
// methods so a Tx can hand out the same repos bound to the transaction.
type Store interface {
	Accounts() Accounts
	RefreshTokens() RefreshTokens
	OTPCodes() OTPCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts the account and its roles and returns it with the
	// assigned internal id. Duplicate email or external id is ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error)

	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)
	GetAccountByExternalID(ctx context.Context, externalID string) (domain.Account, error)

	// GetAccountByEmail expects an already normalized email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ConfirmEmail sets email_confirmed. Returns ErrNotFound for unknown ids.
	ConfirmEmail(ctx context.Context, id int64, at time.Time) error

	// UpdatePassword replaces the hash and security stamp together.
	UpdatePassword(ctx context.Context, id int64, hash, stamp string, at time.Time) error

	UpdateSecurityStamp(ctx context.Context, id int64, stamp string, at time.Time) error
	GetSecurityStamp(ctx context.Context, id int64) (string, error)

	// RecordFailedAttempt atomically increments the failed attempt counter.
	// When the new count reaches threshold the counter restarts at zero and
	// lockout_end is set to lockoutEnd; locked reports that transition.
	RecordFailedAttempt(
		ctx context.Context,
		id int64,
		threshold int,
		lockoutEnd time.Time,
		at time.Time,
	) (attempts int, locked bool, err error)

	ResetFailedAttempts(ctx context.Context, id int64, at time.Time) error
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash looks a token up by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken sets revoked_at and replaced_by on an unrevoked
	// token. It reports whether a row changed; an unknown or already revoked
	// token is not an error.
	RevokeRefreshToken(ctx context.Context, hash string, replacedBy *string, at time.Time) (bool, error)

	// RevokeAllForAccount revokes every active token of the account and
	// returns how many were revoked.
	RevokeAllForAccount(ctx context.Context, accountID int64, at time.Time) (int64, error)

	CountActiveForAccount(ctx context.Context, accountID int64, at time.Time) (int64, error)

	// DeleteExpiredRefreshTokens removes tokens that expired before cutoff.
	DeleteExpiredRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

type OTPCodes interface {
	CreateOTPCode(ctx context.Context, c domain.OTPCode) error

	// CreateOTPCodeIfUnderLimit inserts c only when fewer than limit codes
	// were created for the same account and purpose since windowStart. The
	// check and insert are a single statement. It reports whether c was stored.
	CreateOTPCodeIfUnderLimit(
		ctx context.Context,
		c domain.OTPCode,
		windowStart time.Time,
		limit int,
	) (bool, error)

	// ConsumeOTPCode marks one matching unused, unexpired code as used and
	// reports whether one existed.
	ConsumeOTPCode(
		ctx context.Context,
		accountID int64,
		code string,
		purpose domain.OTPPurpose,
		at time.Time,
	) (bool, error)

	// InvalidateOTPCodes marks every unused code for account+purpose as used.
	InvalidateOTPCodes(ctx context.Context, accountID int64, purpose domain.OTPPurpose) (int64, error)

	CountOTPCodesSince(
		ctx context.Context,
		accountID int64,
		purpose domain.OTPPurpose,
		since time.Time,
	) (int, error)

	// LatestOTPCode returns the newest code for account+purpose.
	LatestOTPCode(ctx context.Context, accountID int64, purpose domain.OTPPurpose) (domain.OTPCode, error)
}
