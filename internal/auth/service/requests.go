package service

import (
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

const maxNameLength = 100

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r RegisterRequest) Validate() []string {
	var problems []string
	problems = appendEmailProblems(problems, r.Email)
	problems = appendRequired(problems, r.Password, "Password")
	problems = appendName(problems, r.FirstName, "First name")
	problems = appendName(problems, r.LastName, "Last name")
	return problems
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r VerifyEmailRequest) Validate() []string {
	return appendCodeProblems(appendEmailProblems(nil, r.Email), r.Code)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []string {
	return appendRequired(appendEmailProblems(nil, r.Email), r.Password, "Password")
}

// RefreshTokenRequest carries the refresh token and, optionally, the access
// token it was issued with. An expired access token is accepted.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken,omitempty"`
}

func (r RefreshTokenRequest) Validate() []string {
	return appendRequired(nil, r.RefreshToken, "Refresh token")
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() []string {
	problems := appendRequired(nil, r.CurrentPassword, "Current password")
	return appendRequired(problems, r.NewPassword, "New password")
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (r ResetPasswordRequest) Validate() []string {
	problems := appendCodeProblems(appendEmailProblems(nil, r.Email), r.Code)
	return appendRequired(problems, r.NewPassword, "New password")
}

// EmailRequest is the body of forgot-password and resend-verification.
type EmailRequest struct {
	Email string `json:"email"`
}

func (r EmailRequest) Validate() []string {
	return appendEmailProblems(nil, r.Email)
}

func appendRequired(problems []string, v, field string) []string {
	if strings.TrimSpace(v) == "" {
		return append(problems, field+" is required.")
	}
	return problems
}

func appendName(problems []string, v, field string) []string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return append(problems, field+" is required.")
	case len(v) > maxNameLength:
		return append(problems, field+" is too long.")
	}
	return problems
}

func appendEmailProblems(problems []string, email string) []string {
	email = strings.TrimSpace(email)
	if email == "" {
		return append(problems, "Email is required.")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return append(problems, "Email is not a valid address.")
	}
	return problems
}

func appendCodeProblems(problems []string, code string) []string {
	code = strings.TrimSpace(code)
	if len(code) != 6 || strings.Trim(code, "0123456789") != "" {
		return append(problems, "Code must be 6 digits.")
	}
	return problems
}

// Caller is the authenticated identity of a request. The zero value is
// anonymous.
type Caller struct {
	AccountID  int64
	ExternalID string
}

func (c Caller) Authenticated() bool { return c.AccountID > 0 && c.ExternalID != "" }

// CallerFromClaims maps verified access token claims to a Caller. A nil or
// inconsistent claim set yields the anonymous caller.
func CallerFromClaims(claims *jwtx.Claims) Caller {
	if claims == nil {
		return Caller{}
	}
	id, err := claims.InternalID()
	if err != nil || claims.Subject == "" {
		return Caller{}
	}
	return Caller{AccountID: id, ExternalID: claims.Subject}
}
