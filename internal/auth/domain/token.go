package domain

import "time"

// RefreshToken is a stored refresh credential. Only the fingerprint of the
// opaque value is kept; ReplacedBy holds the successor's fingerprint.
type RefreshToken struct {
	ID         string
	AccountID  int64
	TokenHash  string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *string
}

// IsActive reports whether the token is unrevoked and unexpired at now.
func (t RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// TokenPair is what a successful sign-in returns.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

// UserProjection is the public view of an account.
type UserProjection struct {
	ID             string   `json:"id"` // external id
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	EmailConfirmed bool     `json:"emailConfirmed"`
	Roles          []string `json:"roles"`
}

func ProjectAccount(a Account) UserProjection {
	roles := a.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserProjection{
		ID:             a.ExternalID,
		Email:          a.Email,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		EmailConfirmed: a.EmailConfirmed,
		Roles:          roles,
	}
}

// AuthSession is returned by workflows that sign the caller in.
type AuthSession struct {
	Tokens TokenPair      `json:"tokens"`
	User   UserProjection `json:"user"`
}
