package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinHMACKeySize is the smallest accepted HS256 secret in bytes.
const MinHMACKeySize = 32

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a shared secret.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The key must be at least
// MinHMACKeySize bytes.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < MinHMACKeySize {
		return nil, ErrWeakKey
	}
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// HS256Verifier validates JWTs signed with the same shared secret.
type HS256Verifier struct {
	key  []byte
	opts VerifyOptions
}

// NewVerifierHS256 creates a verifier for tokens produced by an HS256Signer
// using the same key.
func NewVerifierHS256(key []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(key) < MinHMACKeySize {
		return nil, ErrWeakKey
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &HS256Verifier{key: key, opts: opts}, nil
}

// Verify checks signature, issuer, audience and expiry.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	claims, err := v.parse(tokenStr)
	if err != nil {
		return Claims{}, err
	}

	if err := claims.ValidateExpiryAt(v.opts.Now()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// VerifyIgnoringExpiry checks signature, issuer and audience but accepts
// tokens whose exp is in the past.
func (v *HS256Verifier) VerifyIgnoringExpiry(tokenStr string) (Claims, error) {
	claims, err := v.parse(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	return *claims, nil
}

func (v *HS256Verifier) parse(tokenStr string) (*Claims, error) {
	// Time based claims are checked by us so both Verify paths share one parser.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrAlgMismatch
		default:
			return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return nil, err
	}

	return claims, nil
}
