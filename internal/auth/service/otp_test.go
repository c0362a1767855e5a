package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func newOTPFixture(t *testing.T) (*OTPManager, *fakeClock, int64) {
	t.Helper()
	s := newTestStore(t)
	clock := &fakeClock{now: t0}
	dir := &AccountDirectory{Store: s, Hasher: &plainHasher{}, Now: clock.Now}
	a, err := dir.Create(context.Background(), NewAccount{Email: "a@x.com", Password: testPassword, FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	return &OTPManager{Store: s, Now: clock.Now}, clock, a.ID
}

func TestOTPManager_GenerateCode(t *testing.T) {
	m := &OTPManager{}
	for range 1000 {
		code, err := m.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.GreaterOrEqual(t, code, "100000")
		require.LessOrEqual(t, code, "999999")
	}
}

func TestOTPManager_ValidatesOnce(t *testing.T) {
	m, _, id := newOTPFixture(t)
	ctx := context.Background()

	code, err := m.Create(ctx, id, domain.PurposeEmailVerification)
	require.NoError(t, err)

	ok, err := m.Validate(ctx, id, code, domain.PurposePasswordReset)
	require.NoError(t, err)
	require.False(t, ok, "wrong purpose")

	ok, err = m.Validate(ctx, id, code, domain.PurposeEmailVerification)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.Validate(ctx, id, code, domain.PurposeEmailVerification)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPManager_ExpiryBoundary(t *testing.T) {
	tests := []struct {
		name  string
		after time.Duration
		want  bool
	}{
		{"one second before expiry", DefaultOTPTTL - time.Second, true},
		{"at expiry", DefaultOTPTTL, false},
		{"after expiry", DefaultOTPTTL + time.Minute, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock, id := newOTPFixture(t)
			ctx := context.Background()

			code, err := m.Create(ctx, id, domain.PurposePasswordReset)
			require.NoError(t, err)

			clock.Advance(tt.after)
			ok, err := m.Validate(ctx, id, code, domain.PurposePasswordReset)
			require.NoError(t, err)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestOTPManager_SiblingsCoexist(t *testing.T) {
	m, _, id := newOTPFixture(t)
	ctx := context.Background()

	first, err := m.Create(ctx, id, domain.PurposeEmailVerification)
	require.NoError(t, err)
	second, err := m.Create(ctx, id, domain.PurposeEmailVerification)
	require.NoError(t, err)

	ok, err := m.Validate(ctx, id, second, domain.PurposeEmailVerification)
	require.NoError(t, err)
	require.True(t, ok)

	if first != second {
		ok, err = m.Validate(ctx, id, first, domain.PurposeEmailVerification)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestOTPManager_Invalidate(t *testing.T) {
	m, _, id := newOTPFixture(t)
	ctx := context.Background()

	code, err := m.Create(ctx, id, domain.PurposePasswordReset)
	require.NoError(t, err)
	require.NoError(t, m.Invalidate(ctx, id, domain.PurposePasswordReset))

	ok, err := m.Validate(ctx, id, code, domain.PurposePasswordReset)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPManager_RateLimitWindow(t *testing.T) {
	m, clock, id := newOTPFixture(t)
	ctx := context.Background()

	for range DefaultOTPRateLimit {
		limited, err := m.IsRateLimited(ctx, id, domain.PurposePasswordReset)
		require.NoError(t, err)
		require.False(t, limited)

		_, err = m.Create(ctx, id, domain.PurposePasswordReset)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	limited, err := m.IsRateLimited(ctx, id, domain.PurposePasswordReset)
	require.NoError(t, err)
	require.True(t, limited)

	_, err = m.CreateLimited(ctx, id, domain.PurposePasswordReset)
	require.ErrorIs(t, err, ErrOTPRateLimited)

	other, err := m.IsRateLimited(ctx, id, domain.PurposeEmailVerification)
	require.NoError(t, err)
	require.False(t, other, "limits are per purpose")

	// Now t0+5m; the first code was created at t0.
	clock.Advance(10 * time.Minute)
	limited, err = m.IsRateLimited(ctx, id, domain.PurposePasswordReset)
	require.NoError(t, err)
	require.False(t, limited)

	_, err = m.CreateLimited(ctx, id, domain.PurposePasswordReset)
	require.NoError(t, err)
}

func TestOTPManager_InvalidPurpose(t *testing.T) {
	m, _, id := newOTPFixture(t)

	_, err := m.Create(context.Background(), id, domain.OTPPurpose("Other"))
	require.ErrorIs(t, err, ErrInvalidPurpose)
}
