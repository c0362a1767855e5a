package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

// RefreshTokenLedger persists refresh tokens by fingerprint and implements
// revocation and rotation.
type RefreshTokenLedger struct {
	Store store.Store
	Now   func() time.Time
}

// WithStore returns a copy bound to s, typically a transaction.
func (l *RefreshTokenLedger) WithStore(s store.Store) *RefreshTokenLedger {
	cp := *l
	cp.Store = s
	return &cp
}

func (l *RefreshTokenLedger) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

// Create records a new active token and returns it unchanged.
func (l *RefreshTokenLedger) Create(
	ctx context.Context,
	accountID int64,
	token string,
	expiresAt time.Time,
) (string, error) {
	now := l.now()
	err := l.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		AccountID: accountID,
		TokenHash: cryptox.FingerprintToken(token),
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("create refresh token: %w", err)
	}
	return token, nil
}

// GetByToken returns store.ErrNotFound for unknown tokens.
func (l *RefreshTokenLedger) GetByToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	return l.Store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(token))
}

// Revoke marks token revoked, recording replacedBy when it was rotated.
// Unknown or already revoked tokens are left alone.
func (l *RefreshTokenLedger) Revoke(ctx context.Context, token string, replacedBy *string) error {
	_, err := l.revoke(ctx, token, replacedBy)
	return err
}

func (l *RefreshTokenLedger) revoke(ctx context.Context, token string, replacedBy *string) (bool, error) {
	var next *string
	if replacedBy != nil {
		fp := cryptox.FingerprintToken(*replacedBy)
		next = &fp
	}
	return l.Store.RefreshTokens().RevokeRefreshToken(ctx, cryptox.FingerprintToken(token), next, l.now())
}

// Rotate stores next and revokes current pointing at it. It must run inside
// a transaction. When current was revoked in the meantime the rotation lost a
// race and store.ErrConflict is returned so the caller rolls back.
func (l *RefreshTokenLedger) Rotate(
	ctx context.Context,
	accountID int64,
	current, next string,
	nextExpiresAt time.Time,
) error {
	if _, err := l.Create(ctx, accountID, next, nextExpiresAt); err != nil {
		return err
	}
	revoked, err := l.revoke(ctx, current, &next)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if !revoked {
		return store.ErrConflict
	}
	return nil
}

// RevokeAllForAccount revokes every active token of the account.
func (l *RefreshTokenLedger) RevokeAllForAccount(ctx context.Context, accountID int64) (int64, error) {
	return l.Store.RefreshTokens().RevokeAllForAccount(ctx, accountID, l.now())
}
