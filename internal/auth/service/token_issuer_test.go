package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testAccount() domain.Account {
	return domain.Account{
		ID:            42,
		ExternalID:    "usr_AbCdEfGh23456789",
		Email:         "a@x.com",
		FirstName:     "Ada",
		LastName:      "Byron",
		SecurityStamp: "stamp",
		Roles:         []string{"Customer", "Admin"},
	}
}

func testAccountWithHash(hash string) domain.Account {
	a := testAccount()
	a.PasswordHash = hash
	return a
}

func TestTokenIssuer_AccessTokenClaims(t *testing.T) {
	clock := &fakeClock{now: t0}
	issuer := newTokenIssuer(t, clock.Now)

	token, exp, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)
	require.Equal(t, t0.Add(time.Hour), exp)

	claims, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "usr_AbCdEfGh23456789", claims.Subject)
	require.Equal(t, strconv.Itoa(42), claims.UID)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "Ada Byron", claims.Name)
	require.Equal(t, []string{"Customer", "Admin"}, claims.Roles)
	require.Equal(t, StampFingerprint("stamp"), claims.Stamp)
	require.Equal(t, "storefront-auth", claims.Issuer)
	require.NotEmpty(t, claims.ID)

	other, _, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)
	require.NotEqual(t, token, other, "jti makes identical tokens distinct")
}

func TestTokenIssuer_ExpiryHasNoLeeway(t *testing.T) {
	clock := &fakeClock{now: t0}
	issuer := newTokenIssuer(t, clock.Now)

	token, _, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Second)
	_, err = issuer.ValidateAccessToken(token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = issuer.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	claims, err := issuer.ReadExpiredTokenClaims(token)
	require.NoError(t, err)
	require.Equal(t, "usr_AbCdEfGh23456789", claims.Subject)
}

func TestTokenIssuer_FailuresCollapse(t *testing.T) {
	clock := &fakeClock{now: t0}
	issuer := newTokenIssuer(t, clock.Now)

	token, _, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	otherKey, err := jwtx.NewVerifierHS256([]byte("ffffffffffffffffffffffffffffffff"), jwtx.VerifyOptions{Now: clock.Now})
	require.NoError(t, err)
	otherAudience, err := jwtx.NewVerifierHS256(testKey, jwtx.VerifyOptions{Audience: []string{"elsewhere"}, Now: clock.Now})
	require.NoError(t, err)

	for name, v := range map[string]AccessTokenVerifier{
		"wrong key":      otherKey,
		"wrong audience": otherAudience,
	} {
		t.Run(name, func(t *testing.T) {
			cp := *issuer
			cp.Verifier = v
			_, err := cp.ValidateAccessToken(token)
			require.Equal(t, ErrInvalidToken, err)
			_, err = cp.ReadExpiredTokenClaims(token)
			require.Equal(t, ErrInvalidToken, err)
		})
	}

	_, err = issuer.ValidateAccessToken("not.a.jwt")
	require.Equal(t, ErrInvalidToken, err)
}

func TestTokenIssuer_RefreshTokens(t *testing.T) {
	clock := &fakeClock{now: t0}
	issuer := newTokenIssuer(t, clock.Now)

	seen := map[string]bool{}
	for range 100 {
		tok, err := issuer.IssueRefreshToken()
		require.NoError(t, err)
		require.Len(t, tok, 86) // 64 bytes, unpadded base64url
		require.False(t, seen[tok])
		seen[tok] = true
	}

	require.Equal(t, t0.Add(7*24*time.Hour), issuer.RefreshTokenExpiry())
	require.Equal(t, t0.Add(time.Hour), issuer.AccessTokenExpiry())
}
