package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

// CreateAccount is not atomic on its own when roles are given; call it inside
// a transaction to keep the account and its roles together.
func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	id, err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ExternalID:     a.ExternalID,
		Email:          a.Email,
		PasswordHash:   a.PasswordHash,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Status:         string(a.Status),
		EmailConfirmed: a.EmailConfirmed,
		SecurityStamp:  a.SecurityStamp,
		CreatedAt:      toMillis(a.CreatedAt),
		UpdatedAt:      toMillis(a.UpdatedAt),
	})
	if err != nil {
		return domain.Account{}, mapConstraint(err)
	}

	for _, role := range a.Roles {
		if err := r.q.AddAccountRole(ctx, gen.AddAccountRoleParams{AccountID: id, Role: role}); err != nil {
			return domain.Account{}, fmt.Errorf("add role %q: %w", role, mapConstraint(err))
		}
	}

	a.ID = id
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	return r.withRoles(ctx, row, err)
}

func (r *accountsRepo) GetAccountByExternalID(ctx context.Context, externalID string) (domain.Account, error) {
	row, err := r.q.GetAccountByExternalID(ctx, externalID)
	return r.withRoles(ctx, row, err)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	return r.withRoles(ctx, row, err)
}

func (r *accountsRepo) withRoles(ctx context.Context, row gen.Account, err error) (domain.Account, error) {
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	roles, err := r.q.ListAccountRoles(ctx, row.ID)
	if err != nil {
		return domain.Account{}, err
	}
	return mapAccount(row, roles), nil
}

func (r *accountsRepo) ConfirmEmail(ctx context.Context, id int64, at time.Time) error {
	n, err := r.q.ConfirmAccountEmail(ctx, gen.ConfirmAccountEmailParams{UpdatedAt: toMillis(at), ID: id})
	return requireRow(n, err)
}

func (r *accountsRepo) UpdatePassword(ctx context.Context, id int64, hash, stamp string, at time.Time) error {
	n, err := r.q.UpdateAccountPassword(ctx, gen.UpdateAccountPasswordParams{
		PasswordHash:  hash,
		SecurityStamp: stamp,
		UpdatedAt:     toMillis(at),
		ID:            id,
	})
	return requireRow(n, err)
}

func (r *accountsRepo) UpdateSecurityStamp(ctx context.Context, id int64, stamp string, at time.Time) error {
	n, err := r.q.UpdateAccountSecurityStamp(ctx, gen.UpdateAccountSecurityStampParams{
		SecurityStamp: stamp,
		UpdatedAt:     toMillis(at),
		ID:            id,
	})
	return requireRow(n, err)
}

func (r *accountsRepo) GetSecurityStamp(ctx context.Context, id int64) (string, error) {
	stamp, err := r.q.GetAccountSecurityStamp(ctx, id)
	if err != nil {
		return "", mapNotFound(err)
	}
	return stamp, nil
}

func (r *accountsRepo) RecordFailedAttempt(
	ctx context.Context,
	id int64,
	threshold int,
	lockoutEnd time.Time,
	at time.Time,
) (int, bool, error) {
	row, err := r.q.RecordFailedAttempt(ctx, gen.RecordFailedAttemptParams{
		Threshold:  int64(threshold),
		LockoutEnd: nullMillis(lockoutEnd),
		UpdatedAt:  toMillis(at),
		ID:         id,
	})
	if err != nil {
		return 0, false, mapNotFound(err)
	}

	// The counter only reads zero after an increment when it hit the
	// threshold and was restarted.
	if row.FailedAttempts == 0 {
		return threshold, true, nil
	}
	return int(row.FailedAttempts), false, nil
}

func (r *accountsRepo) ResetFailedAttempts(ctx context.Context, id int64, at time.Time) error {
	_, err := r.q.ResetFailedAttempts(ctx, gen.ResetFailedAttemptsParams{UpdatedAt: toMillis(at), ID: id})
	return err
}

func requireRow(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
