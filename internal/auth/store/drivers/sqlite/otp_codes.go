package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite/gen"
)

type otpCodesRepo struct {
	q *gen.Queries
}

func (r *otpCodesRepo) CreateOTPCode(ctx context.Context, c domain.OTPCode) error {
	err := r.q.CreateOTPCode(ctx, gen.CreateOTPCodeParams{
		ID:        c.ID,
		AccountID: c.AccountID,
		Code:      c.Code,
		Purpose:   string(c.Purpose),
		CreatedAt: toMillis(c.CreatedAt),
		ExpiresAt: toMillis(c.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *otpCodesRepo) CreateOTPCodeIfUnderLimit(
	ctx context.Context,
	c domain.OTPCode,
	windowStart time.Time,
	limit int,
) (bool, error) {
	n, err := r.q.CreateOTPCodeIfUnderLimit(ctx, gen.CreateOTPCodeIfUnderLimitParams{
		ID:          c.ID,
		AccountID:   c.AccountID,
		Code:        c.Code,
		Purpose:     string(c.Purpose),
		CreatedAt:   toMillis(c.CreatedAt),
		ExpiresAt:   toMillis(c.ExpiresAt),
		WindowStart: toMillis(windowStart),
		Limit:       int64(limit),
	})
	if err != nil {
		return false, mapConstraint(err)
	}
	return n == 1, nil
}

func (r *otpCodesRepo) ConsumeOTPCode(
	ctx context.Context,
	accountID int64,
	code string,
	purpose domain.OTPPurpose,
	at time.Time,
) (bool, error) {
	n, err := r.q.ConsumeOTPCode(ctx, gen.ConsumeOTPCodeParams{
		AccountID: accountID,
		Code:      code,
		Purpose:   string(purpose),
		Now:       toMillis(at),
	})
	return n == 1, err
}

func (r *otpCodesRepo) InvalidateOTPCodes(ctx context.Context, accountID int64, purpose domain.OTPPurpose) (int64, error) {
	return r.q.InvalidateOTPCodes(ctx, gen.InvalidateOTPCodesParams{AccountID: accountID, Purpose: string(purpose)})
}

func (r *otpCodesRepo) CountOTPCodesSince(
	ctx context.Context,
	accountID int64,
	purpose domain.OTPPurpose,
	since time.Time,
) (int, error) {
	n, err := r.q.CountOTPCodesSince(ctx, gen.CountOTPCodesSinceParams{
		AccountID: accountID,
		Purpose:   string(purpose),
		CreatedAt: toMillis(since),
	})
	return int(n), err
}

func (r *otpCodesRepo) LatestOTPCode(
	ctx context.Context,
	accountID int64,
	purpose domain.OTPPurpose,
) (domain.OTPCode, error) {
	row, err := r.q.GetLatestOTPCode(ctx, gen.GetLatestOTPCodeParams{AccountID: accountID, Purpose: string(purpose)})
	if err != nil {
		return domain.OTPCode{}, mapNotFound(err)
	}
	return mapOTPCode(row), nil
}
