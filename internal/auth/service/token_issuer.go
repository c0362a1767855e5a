package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// ErrInvalidToken is the only error access token validation reports. Bad
// signatures, wrong issuer or audience, expiry and malformed input all
// collapse into it.
var ErrInvalidToken = errors.New("invalid token")

// AccessTokenVerifier is satisfied by *jwtx.HS256Verifier.
type AccessTokenVerifier interface {
	Verify(token string) (jwtx.Claims, error)
	VerifyIgnoringExpiry(token string) (jwtx.Claims, error)
}

// TokenIssuer mints signed access tokens and opaque refresh tokens.
type TokenIssuer struct {
	Signer     jwtx.Signer
	Verifier   AccessTokenVerifier
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (t *TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now().UTC()
	}
	return time.Now().UTC()
}

func (t *TokenIssuer) accessTTL() time.Duration {
	if t.AccessTTL > 0 {
		return t.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (t *TokenIssuer) refreshTTL() time.Duration {
	if t.RefreshTTL > 0 {
		return t.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IssueAccessToken signs an access token for a. The subject is the external
// id; the internal id only travels in the uid claim.
func (t *TokenIssuer) IssueAccessToken(a domain.Account) (string, time.Time, error) {
	now := t.now()
	claims := jwtx.NewAccessClaims(jwtx.AccessParams{
		InternalID: a.ID,
		ExternalID: a.ExternalID,
		Email:      a.Email,
		FullName:   a.FullName(),
		Roles:      a.Roles,
		Stamp:      StampFingerprint(a.SecurityStamp),
	}, t.accessTTL(), t.Issuer, t.Audience, now)

	signed, err := t.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// IssueRefreshToken returns 64 random bytes as base64url.
func (t *TokenIssuer) IssueRefreshToken() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize512)
}

// ValidateAccessToken checks signature, issuer, audience and expiry with no
// clock skew allowance.
func (t *TokenIssuer) ValidateAccessToken(token string) (jwtx.Claims, error) {
	claims, err := t.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// ReadExpiredTokenClaims is ValidateAccessToken without the expiry check. It
// is only for recovering identity during refresh.
func (t *TokenIssuer) ReadExpiredTokenClaims(token string) (jwtx.Claims, error) {
	claims, err := t.Verifier.VerifyIgnoringExpiry(token)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (t *TokenIssuer) AccessTokenExpiry() time.Time { return t.now().Add(t.accessTTL()) }

func (t *TokenIssuer) RefreshTokenExpiry() time.Time { return t.now().Add(t.refreshTTL()) }

// StampFingerprint is the value of the sst claim for a security stamp.
func StampFingerprint(stamp string) string {
	return cryptox.FingerprintToken(stamp)
}
