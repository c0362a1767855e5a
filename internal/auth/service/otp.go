package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

const (
	DefaultOTPTTL        = 10 * time.Minute
	DefaultOTPRateWindow = 15 * time.Minute
	DefaultOTPRateLimit  = 5
)

var (
	ErrOTPRateLimited = errors.New("otp rate limit exceeded")
	ErrInvalidPurpose = errors.New("invalid otp purpose")
)

var (
	otpMin   = big.NewInt(100_000)
	otpRange = big.NewInt(900_000) // 100000..999999
)

// OTPManager issues and checks single-use six digit codes.
type OTPManager struct {
	Store      store.Store
	TTL        time.Duration
	RateWindow time.Duration
	RateLimit  int
	Now        func() time.Time
}

// WithStore returns a copy bound to s, typically a transaction.
func (m *OTPManager) WithStore(s store.Store) *OTPManager {
	cp := *m
	cp.Store = s
	return &cp
}

func (m *OTPManager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *OTPManager) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return DefaultOTPTTL
}

func (m *OTPManager) window() time.Duration {
	if m.RateWindow > 0 {
		return m.RateWindow
	}
	return DefaultOTPRateWindow
}

func (m *OTPManager) limit() int {
	if m.RateLimit > 0 {
		return m.RateLimit
	}
	return DefaultOTPRateLimit
}

// GenerateCode draws uniformly from 100000..999999.
func (m *OTPManager) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", err
	}
	return n.Add(n, otpMin).String(), nil
}

func (m *OTPManager) newRecord(accountID int64, purpose domain.OTPPurpose) (domain.OTPCode, error) {
	if !purpose.Valid() {
		return domain.OTPCode{}, ErrInvalidPurpose
	}
	code, err := m.GenerateCode()
	if err != nil {
		return domain.OTPCode{}, err
	}
	now := m.now()
	return domain.OTPCode{
		ID:        idx.NewAt(now).String(),
		AccountID: accountID,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl()),
	}, nil
}

// Create stores a new code without consulting the rate limit and returns the
// plaintext for delivery.
func (m *OTPManager) Create(ctx context.Context, accountID int64, purpose domain.OTPPurpose) (string, error) {
	rec, err := m.newRecord(accountID, purpose)
	if err != nil {
		return "", err
	}
	if err := m.Store.OTPCodes().CreateOTPCode(ctx, rec); err != nil {
		return "", fmt.Errorf("create otp: %w", err)
	}
	return rec.Code, nil
}

// CreateLimited is Create guarded by the rate limit. The count and the insert
// happen in one statement so concurrent requests cannot both slip under the
// limit. Returns ErrOTPRateLimited when the window is full.
func (m *OTPManager) CreateLimited(ctx context.Context, accountID int64, purpose domain.OTPPurpose) (string, error) {
	rec, err := m.newRecord(accountID, purpose)
	if err != nil {
		return "", err
	}
	stored, err := m.Store.OTPCodes().CreateOTPCodeIfUnderLimit(ctx, rec, rec.CreatedAt.Add(-m.window()), m.limit())
	if err != nil {
		return "", fmt.Errorf("create otp: %w", err)
	}
	if !stored {
		return "", ErrOTPRateLimited
	}
	return rec.Code, nil
}

// Validate consumes a matching, unused, unexpired code. A code is rejected
// from its expiry instant onward and never validates twice.
func (m *OTPManager) Validate(
	ctx context.Context,
	accountID int64,
	code string,
	purpose domain.OTPPurpose,
) (bool, error) {
	if code == "" || !purpose.Valid() {
		return false, nil
	}
	return m.Store.OTPCodes().ConsumeOTPCode(ctx, accountID, code, purpose, m.now())
}

// Invalidate burns every outstanding code for account+purpose.
func (m *OTPManager) Invalidate(ctx context.Context, accountID int64, purpose domain.OTPPurpose) error {
	_, err := m.Store.OTPCodes().InvalidateOTPCodes(ctx, accountID, purpose)
	return err
}

// IsRateLimited reports whether RateLimit or more codes were created for
// account+purpose within the trailing RateWindow.
func (m *OTPManager) IsRateLimited(ctx context.Context, accountID int64, purpose domain.OTPPurpose) (bool, error) {
	n, err := m.Store.OTPCodes().CountOTPCodesSince(ctx, accountID, purpose, m.now().Add(-m.window()))
	if err != nil {
		return false, err
	}
	return n >= m.limit(), nil
}
