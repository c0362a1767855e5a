package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewAccessClaims(jwtx.AccessParams{
		InternalID: 42,
		ExternalID: "usr_AbCdEfGh23456789",
		Email:      "a@x.com",
		FullName:   "A B",
		Roles:      []string{"Customer", "Admin"},
		Stamp:      "stamp-fp",
	}, time.Hour, "iss", []string{"aud"}, now)

	require.Equal(t, "usr_AbCdEfGh23456789", c.Subject)
	require.Equal(t, "42", c.UID)
	require.Equal(t, "a@x.com", c.Email)
	require.Equal(t, "A B", c.Name)
	require.Equal(t, []string{"Customer", "Admin"}, c.Roles)
	require.Equal(t, "stamp-fp", c.Stamp)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)

	id, err := c.InternalID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.True(t, c.HasRole("Admin"))
	require.False(t, c.HasRole("Staff"))
}

func TestNewAccessClaims_DistinctJTI(t *testing.T) {
	now := time.Now()
	p := jwtx.AccessParams{InternalID: 1, ExternalID: "usr_x"}
	a := jwtx.NewAccessClaims(p, time.Minute, "", nil, now)
	b := jwtx.NewAccessClaims(p, time.Minute, "", nil, now)
	require.NotEqual(t, a.ID, b.ID)
}

func TestInternalID_Invalid(t *testing.T) {
	for _, uid := range []string{"", "abc", "0", "-3"} {
		c := jwtx.Claims{UID: uid}
		_, err := c.InternalID()
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim, uid)
	}
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "storefront-auth"}}

	require.NoError(t, c.ValidateIssuer("storefront-auth"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"storefront", "admin"}}}

	require.NoError(t, c.ValidateAudience([]string{"storefront"}))
	require.NoError(t, c.ValidateAudience([]string{"other", "admin"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"billing"}), jwtx.ErrAudience)
}

func TestValidateExpiryAt(t *testing.T) {
	exp := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(exp.Add(-time.Hour)),
	}}

	require.NoError(t, c.ValidateExpiryAt(exp.Add(-time.Second)))
	require.ErrorIs(t, c.ValidateExpiryAt(exp), jwtx.ErrExpired)
	require.ErrorIs(t, c.ValidateExpiryAt(exp.Add(time.Second)), jwtx.ErrExpired)
	require.ErrorIs(t, c.ValidateExpiryAt(exp.Add(-2*time.Hour)), jwtx.ErrNotYetValid)

	missing := &jwtx.Claims{}
	require.ErrorIs(t, missing.ValidateExpiryAt(exp), jwtx.ErrInvalidClaim)
}
