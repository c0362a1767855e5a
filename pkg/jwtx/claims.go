package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 60 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the access-token claims. The subject is always the external
// account id. UID carries the internal key for server-side joins and must
// never be treated as the public identity.
type Claims struct {
	jwt.RegisteredClaims

	// Internal lookup key (string form of the sequential account id)
	UID string `json:"uid"`

	Email string `json:"email,omitempty"`

	// Display name
	Name string `json:"name,omitempty"`

	// One entry per role membership
	Roles []string `json:"role,omitempty"`

	// Fingerprint of the account security stamp at issue time. Tokens whose
	// fingerprint no longer matches the account are stale.
	Stamp string `json:"sst,omitempty"`
}

// AccessParams is the identity material embedded in an access token.
type AccessParams struct {
	InternalID int64
	ExternalID string
	Email      string
	FullName   string
	Roles      []string
	Stamp      string
}

// NewAccessClaims builds the claim set for an access token issued at now.
func NewAccessClaims(
	p AccessParams,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ExternalID,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UID:   strconv.FormatInt(p.InternalID, 10),
		Email: p.Email,
		Name:  p.FullName,
		Roles: slices.Clone(p.Roles),
		Stamp: p.Stamp,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// InternalID parses the uid claim.
func (c *Claims) InternalID() (int64, error) {
	id, err := strconv.ParseInt(c.UID, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidClaim
	}
	return id, nil
}

// HasRole reports whether the token carries the given role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired and isn't used before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC())
}

// ValidateExpiryAt is ValidateExpiry against an explicit clock. A token is
// already expired at the exact exp instant; there is no leeway.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
