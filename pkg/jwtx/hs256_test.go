package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newPair(t *testing.T, now func() time.Time) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	s, err := jwtx.NewSignerHS256(testKey)
	require.NoError(t, err)
	v, err := jwtx.NewVerifierHS256(testKey, jwtx.VerifyOptions{
		Issuer:   "storefront-auth",
		Audience: []string{"storefront"},
		Now:      now,
	})
	require.NoError(t, err)
	return s, v
}

func sampleClaims(issued time.Time, ttl time.Duration) jwtx.Claims {
	return jwtx.NewAccessClaims(jwtx.AccessParams{
		InternalID: 7,
		ExternalID: "usr_AbCdEfGh23456789",
		Email:      "a@x.com",
		Roles:      []string{"Customer"},
	}, ttl, "storefront-auth", []string{"storefront"}, issued)
}

func TestHS256_RoundTrip(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	s, v := newPair(t, func() time.Time { return issued.Add(time.Minute) })
	require.Equal(t, "HS256", s.Alg())

	tok, err := s.Sign(sampleClaims(issued, time.Hour))
	require.NoError(t, err)

	got, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "usr_AbCdEfGh23456789", got.Subject)
	require.Equal(t, "7", got.UID)
	require.Equal(t, []string{"Customer"}, got.Roles)
}

func TestHS256_Expired(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	now := issued.Add(time.Hour)
	s, v := newPair(t, func() time.Time { return now })

	tok, err := s.Sign(sampleClaims(issued, time.Hour))
	require.NoError(t, err)

	_, err = v.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	got, err := v.VerifyIgnoringExpiry(tok)
	require.NoError(t, err)
	require.Equal(t, "7", got.UID)
}

func TestHS256_Rejects(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	s, v := newPair(t, func() time.Time { return issued })

	t.Run("wrong key", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256([]byte(strings.Repeat("z", 32)))
		require.NoError(t, err)
		tok, err := other.Sign(sampleClaims(issued, time.Hour))
		require.NoError(t, err)

		_, err = v.VerifyIgnoringExpiry(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := sampleClaims(issued, time.Hour)
		c.Issuer = "someone-else"
		tok, err := s.Sign(c)
		require.NoError(t, err)

		_, err = v.VerifyIgnoringExpiry(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := sampleClaims(issued, time.Hour)
		c.Audience = jwt.ClaimStrings{"billing"}
		tok, err := s.Sign(c)
		require.NoError(t, err)

		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := v.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg none", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, sampleClaims(issued, time.Hour)).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.Verify(tok)
		require.Error(t, err)
	})
}

func TestHS256_WeakKey(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakKey)
	_, err = jwtx.NewVerifierHS256([]byte("short"), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakKey)
}
