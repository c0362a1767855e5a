package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite/gen"
)

type refreshTokensRepo struct {
	q *gen.Queries
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	err := r.q.CreateRefreshToken(ctx, gen.CreateRefreshTokenParams{
		ID:        t.ID,
		AccountID: t.AccountID,
		TokenHash: t.TokenHash,
		IssuedAt:  toMillis(t.IssuedAt),
		ExpiresAt: toMillis(t.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	row, err := r.q.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return mapRefreshToken(row), nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(
	ctx context.Context,
	hash string,
	replacedBy *string,
	at time.Time,
) (bool, error) {
	n, err := r.q.RevokeRefreshToken(ctx, gen.RevokeRefreshTokenParams{
		RevokedAt:  nullMillis(at),
		ReplacedBy: mapOptionalString(replacedBy),
		TokenHash:  hash,
	})
	return n == 1, err
}

func (r *refreshTokensRepo) RevokeAllForAccount(ctx context.Context, accountID int64, at time.Time) (int64, error) {
	return r.q.RevokeAllAccountRefreshTokens(ctx, gen.RevokeAllAccountRefreshTokensParams{
		RevokedAt: nullMillis(at),
		AccountID: accountID,
	})
}

func (r *refreshTokensRepo) CountActiveForAccount(ctx context.Context, accountID int64, at time.Time) (int64, error) {
	return r.q.CountActiveAccountRefreshTokens(ctx, gen.CountActiveAccountRefreshTokensParams{
		AccountID: accountID,
		ExpiresAt: toMillis(at),
	})
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteExpiredRefreshTokens(ctx, toMillis(cutoff))
}
